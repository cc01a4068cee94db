// Command issue-token mints an operator JWT for local development. In
// production tokens come from the identity provider and share the secret.
//
// Flags:
//
//	--operator  operator id (JWT subject)
//	--company   company the operator acts for
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/heartmarshall/signroom-backend/internal/auth"
	"github.com/heartmarshall/signroom-backend/internal/config"
)

func main() {
	operator := flag.String("operator", "", "operator id")
	company := flag.String("company", "", "company id")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwt.GenerateOperatorToken(*operator, *company)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
