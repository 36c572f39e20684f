// Command devtoken mints a participant bearer token for local development,
// signed with the same JWT_SECRET the API verifies against.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"fitstudy/config"
	"fitstudy/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "participant id to put in the token subject")
	roles := flag.String("roles", "participant", "comma-separated roles")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Environment == "production" {
		fmt.Fprintln(os.Stderr, "devtoken: refusing to mint tokens in production")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "devtoken: JWT_SECRET is not set")
		os.Exit(1)
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, roleList, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
