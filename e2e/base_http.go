package e2e

import (
	"bytes"
	"clinic-chat/auth"
	"clinic-chat/domain/chat"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type BaseHTTPSuite struct {
	suite.Suite
	Config Config
	tokens *auth.Tokens
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("E2E_SERVER_ADDR is not set")
	}
	s.tokens = auth.NewTokens(s.Config.AuthSecret, time.Hour)
	s.client = &http.Client{Timeout: 10 * time.Second}
}

// Step prints a colorized header so steps stand out in verbose logs.
func (s *BaseHTTPSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

// Do sends an authenticated JSON request and decodes the envelope.
func (s *BaseHTTPSuite) Do(account chat.Account, method, path string, body any) (int, map[string]any) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		payload = bytes.NewReader(data)
	}
	r, err := http.NewRequest(method, s.Config.ServerAddr+path, payload)
	s.Require().NoError(err)
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+s.token(account))

	start := time.Now()
	resp, err := s.client.Do(r)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.T().Logf("HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		s.T().Logf("RESPONSE:\n%s", raw)
	}

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

// Dial opens the realtime channel of an account.
func (s *BaseHTTPSuite) Dial(account chat.Account) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.Config.ServerAddr, "http") + "/ws?token=" + s.token(account)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

// ReadFrame waits for the next server frame.
func (s *BaseHTTPSuite) ReadFrame(conn *websocket.Conn) map[string]any {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var frame map[string]any
	s.Require().NoError(conn.ReadJSON(&frame))
	if s.Config.DebugJSON {
		s.T().Logf("FRAME: %v", frame)
	}
	return frame
}

func (s *BaseHTTPSuite) token(account chat.Account) string {
	token, err := s.tokens.GenerateToken(account)
	s.Require().NoError(err)
	return token
}
