package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations accept "1h" style
// strings or integer nanoseconds. Only fields present in the file override
// the current values.
type JsonConfig struct {
	EndpointAddrHTTP                *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC                *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                     *string         `json:"database_dsn"`
	SecretKey                       *string         `json:"secret_key"`
	AccessTokenValidityDuration     *timex.Duration `json:"access_token_validity_duration"`
	RememberMeTokenValidityDuration *timex.Duration `json:"remember_me_token_validity_duration"`
	BcryptCost                      *int            `json:"bcrypt_cost"`
	CORSAllowedOrigin               *string         `json:"cors_allowed_origin"`
	HealthCheckInterval             *timex.Duration `json:"health_check_interval"`
}

// parseJson overlays config with the JSON file named by -c/-config.
// It does nothing when no file is given and panics when the file cannot be
// read or decoded.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CORSAllowedOrigin, c.CORSAllowedOrigin)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RememberMeTokenValidityDuration != nil {
		config.RememberMeTokenValidityDuration = c.RememberMeTokenValidityDuration.Duration
	}
	if c.HealthCheckInterval != nil {
		config.HealthCheckInterval = c.HealthCheckInterval.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
