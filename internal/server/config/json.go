package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/travelguru/travelguru/internal/flagx"
	"github.com/travelguru/travelguru/internal/timex"
)

// JsonConfig is the intermediate DTO for reading JSON configuration files.
// Duration fields accept either strings such as "15m" or integer nanoseconds
// via timex.Duration. Absent fields leave the current Config value alone.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	ResetTokenValidityDuration   timex.Duration `json:"reset_token_validity_duration"`
	BcryptCost                   int            `json:"bcrypt_cost"`
	FrontendURL                  string         `json:"frontend_url"`
	SendGridAPIKey               string         `json:"sendgrid_api_key"`
	EmailFromName                string         `json:"email_from_name"`
	EmailFromAddr                string         `json:"email_from_addr"`
	EmailSendTimeout             timex.Duration `json:"email_send_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is named it does
// nothing; an unreadable or malformed file panics, startup cannot proceed
// with half-applied configuration.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	setDuration(&config.RefreshTokenValidityDuration, c.RefreshTokenValidityDuration.Duration)
	setDuration(&config.ResetTokenValidityDuration, c.ResetTokenValidityDuration.Duration)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	setString(&config.FrontendURL, c.FrontendURL)
	setString(&config.SendGridAPIKey, c.SendGridAPIKey)
	setString(&config.EmailFromName, c.EmailFromName)
	setString(&config.EmailFromAddr, c.EmailFromAddr)
	setDuration(&config.EmailSendTimeout, c.EmailSendTimeout.Duration)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v time.Duration) {
	if v != 0 {
		*dst = v
	}
}
