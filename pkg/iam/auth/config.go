package auth

import "time"

// Config holds the authentication settings
type Config struct {
	JWT JWTConfig
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
	Issuer         string
	CookieName     string
	SecureCookies  bool
}

// DefaultConfig returns the baseline auth configuration
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTokenTTL: 24 * time.Hour,
			Issuer:         "hirehub",
			CookieName:     "token",
		},
	}
}
