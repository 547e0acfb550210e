package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays environment variables onto the Config. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it, which is godotenv's default.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	envString(&config.EndpointAddr, "ADDRESS")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "JWT_SECRET")
	envDuration(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL")
	envDuration(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL")
	envDuration(&config.ResetTokenValidityDuration, "RESET_TOKEN_TTL")
	envString(&config.FrontendURL, "FRONTEND_URL")
	envString(&config.SendGridAPIKey, "SENDGRID_API_KEY")
	envString(&config.EmailFromName, "EMAIL_FROM_NAME")
	envString(&config.EmailFromAddr, "EMAIL_FROM_ADDR")
	envDuration(&config.EmailSendTimeout, "EMAIL_SEND_TIMEOUT")
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
