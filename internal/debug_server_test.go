package internal

import (
	"clinic-chat/domain/chat"
	"clinic-chat/infrastructure/storage"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestDebugServer(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	profiles := storage.NewProfileRepository(db, chat.CategoryProvider, log)
	req.NoError(profiles.SaveProfile(chat.Profile{ID: "bob", Category: chat.CategoryProvider, Name: "Dr Bob"}))
	_, _, err = storage.NewRoomRepository(db, log).
		FindOrCreate([]chat.Account{chat.NewPatient("alice"), chat.NewProvider("bob")}, time.Now().UTC())
	req.NoError(err)

	server := NewDebugServer(log, db, 0,
		func() any { return map[string]string{"mode": "test"} },
		func() any { return []string{"hello"} })

	// When only profiles are inspected
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inspect?prefix=profile:", nil))

	// Then only the profile is listed
	req.Equal(http.StatusOK, w.Code)
	var entries []storage.Entry
	req.NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	req.Len(entries, 1)
	req.Equal("PROFILE", entries[0].Kind)
	req.Equal("bob", entries[0].Entity)

	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	req.JSONEq(`{"mode":"test"}`, w.Body.String())

	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tail", nil))
	req.JSONEq(`["hello"]`, w.Body.String())
}
