package config

import "github.com/kelseyhightower/envconfig"

// ReindexServerConfig holds the reindex server configuration.
type ReindexServerConfig struct {
	Environment

	Postgres
	Redis
	ClickHouse
	MeiliSearch
	Server
}

// InitReindexServerConfig initializes the reindex server configuration.
func InitReindexServerConfig() (*ReindexServerConfig, error) {
	var cfg ReindexServerConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
