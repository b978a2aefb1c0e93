// Command token mints a bearer token for local testing. There is no login flow:
// the secret must match the server's AUTH_SECRET.
package main

import (
	"clinic-chat/auth"
	"clinic-chat/domain/chat"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type tokenConfig struct {
	AuthSecret        string        `env:"AUTH_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
}

func main() {
	accountID := flag.String("account", "", "Account id")
	category := flag.String("category", "patient", "Account category (patient or provider)")
	flag.Parse()

	_ = godotenv.Load()
	var config tokenConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		exit(fmt.Errorf("config error: %w", err))
	}
	parsed, err := chat.ParseCategory(*category)
	if err != nil {
		exit(err)
	}
	if *accountID == "" {
		exit(fmt.Errorf("-account is required"))
	}

	token, err := auth.NewTokens(config.AuthSecret, config.AuthTokenDuration).GenerateToken(chat.Account{ID: *accountID, Category: parsed})
	if err != nil {
		exit(err)
	}
	fmt.Println(token)
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "token: %v\n", err)
	os.Exit(2)
}
