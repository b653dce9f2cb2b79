package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("LOTHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("LOTHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "lothub"
	}

	dur := 24 * time.Hour
	if ttl := os.Getenv("LOTHUB_JWT_TTL_HOURS"); ttl != "" {
		if h, err := strconv.Atoi(ttl); err == nil && h > 0 {
			dur = time.Duration(h) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: dur,
	}
}

// DefaultRecommended is the house recommended supplier set: display names in
// the order category pages feature them when no explicit selection is pinned.
var DefaultRecommended = []string{
	"B-Stock",
	"Liquidation.com",
	"Direct Liquidation",
	"BULQ",
	"888 Lots",
	"Via Trading",
}

type DirectoryConfig struct {
	HTTPAddr    string
	EventsAddr  string
	Recommended []string
}

// LoadDirectoryConfig reads server addresses and the recommended set from the
// environment. LOTHUB_RECOMMENDED is a comma-separated, order-significant
// list of supplier display names; empty entries are skipped.
func LoadDirectoryConfig() DirectoryConfig {
	cfg := DirectoryConfig{
		HTTPAddr:    ":8080",
		EventsAddr:  ":7070",
		Recommended: DefaultRecommended,
	}

	if addr := os.Getenv("LOTHUB_HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if addr := os.Getenv("LOTHUB_EVENTS_ADDR"); addr != "" {
		cfg.EventsAddr = addr
	}

	if raw := os.Getenv("LOTHUB_RECOMMENDED"); raw != "" {
		var names []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		if len(names) > 0 {
			cfg.Recommended = names
		}
	}

	return cfg
}
