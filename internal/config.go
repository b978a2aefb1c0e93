package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	BufferSize           int           `env:"BUFFER_SIZE,required=true"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,required=true"`

	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`

	DefaultPageLimit int `env:"DEFAULT_PAGE_LIMIT,default=10"`
	MaxPageLimit     int `env:"MAX_PAGE_LIMIT,default=100"`
	MaxContentLength int `env:"MAX_CONTENT_LENGTH,required=true"`

	EnableModeration bool   `env:"ENABLE_MODERATION,default=true"`
	CharReplacement  string `env:"CHARACTER_REPLACEMENT,default=*"`

	AllowedOrigins    string `env:"ALLOWED_ORIGINS,default=*"`
	DirectorySeedFile string `env:"DIRECTORY_SEED_FILE"`
	DebugPort         int    `env:"DEBUG_PORT"`
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c Config) Origins() []string {
	return lo.Compact(lo.Map(strings.Split(c.AllowedOrigins, ","), func(origin string, _ int) string {
		return strings.TrimSpace(origin)
	}))
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
