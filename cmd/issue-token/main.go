// Command issue-token mints an access token for development and testing.
//
// Usage:
//
//	issue-token [-user <uuid>] [-ttl 24h]
//
// A random user ID is generated when -user is omitted. Reads AUTH_JWT_SECRET
// and AUTH_JWT_ISSUER from the environment (or .env).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rsimmons/yukawa/internal/auth"
	"github.com/rsimmons/yukawa/internal/config"
)

func main() {
	user := flag.String("user", "", "user ID (UUID); random when empty")
	ttl := flag.Duration("ttl", 0, "token lifetime (default from AUTH_ACCESS_TOKEN_TTL)")
	flag.Parse()

	var cfg config.AuthConfig
	if err := config.LoadSection(&cfg); err != nil {
		log.Fatalf("read auth config: %v", err)
	}

	userID := uuid.New()
	if *user != "" {
		parsed, err := uuid.Parse(*user)
		if err != nil {
			log.Fatalf("invalid -user: %v", err)
		}
		userID = parsed
	}

	lifetime := cfg.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, lifetime).GenerateAccessTokenTTL(userID, lifetime)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "user %s, expires %s\n", userID, time.Now().Add(lifetime).Format(time.RFC3339))
	fmt.Println(token)
}
