package moderation

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func BenchmarkModerator_Censor(b *testing.B) {
	req := require.New(b)
	words := make([]string, 0, 10_000)
	for i := 0; i < 10_000; i++ {
		words = append(words, fmt.Sprintf("forbidden%d", i))
	}
	mod, err := NewModerator(words, replacementChar, logs.GetLoggerFromLevel(slog.LevelError))
	req.NoError(err)
	input := strings.Repeat("the patient said forbidden42 during the consultation ", 20)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mod.Censor(input)
	}
}
