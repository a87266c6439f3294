package config

import (
	"time"
)

const envPrefix = ""

// Environment holds the deployment environment.
type Environment struct {
	Env string `envconfig:"ENV" default:"development"`
}

// Postgres holds the primary datastore configuration.
type Postgres struct {
	Host        string        `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port        int           `envconfig:"POSTGRES_PORT" default:"5432"`
	User        string        `envconfig:"POSTGRES_USER" default:"postgres"`
	Password    string        `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Database    string        `envconfig:"POSTGRES_DB" default:"searchsync"`
	MaxConns    int32         `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
	MinConns    int32         `envconfig:"POSTGRES_MIN_CONNS" default:"5"`
	MaxConnLife time.Duration `envconfig:"POSTGRES_MAX_CONN_LIFE" default:"1h"`
	MaxConnIdle time.Duration `envconfig:"POSTGRES_MAX_CONN_IDLE" default:"30m"`
	DialTimeout time.Duration `envconfig:"POSTGRES_DIAL_TIMEOUT" default:"5s"`
	SSLMode     string        `envconfig:"POSTGRES_SSL_MODE" default:"disable"`
}

// Redis holds the status cache configuration.
type Redis struct {
	Host         string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port         int           `envconfig:"REDIS_PORT" default:"6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"5"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ClickHouse holds the analytics store configuration.
type ClickHouse struct {
	Hosts           []string      `envconfig:"CLICKHOUSE_HOSTS" default:"localhost:9000"`
	Database        string        `envconfig:"CLICKHOUSE_DB" default:"searchsync"`
	Username        string        `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password        string        `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	MaxOpenConns    int           `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME" default:"1h"`
	DialTimeout     time.Duration `envconfig:"CLICKHOUSE_DIAL_TIMEOUT" default:"5s"`
	Debug           bool          `envconfig:"CLICKHOUSE_DEBUG" default:"false"`
}

// MeiliSearch holds the search engine configuration.
type MeiliSearch struct {
	URI       string `envconfig:"MEILISEARCH_URI" default:"http://localhost:7700"`
	MasterKey string `envconfig:"MEILISEARCH_MASTER_KEY" required:"true"`
	CertFile  string `envconfig:"MEILISEARCH_CERT_FILE" default:""`
	KeyFile   string `envconfig:"MEILISEARCH_KEY_FILE" default:""`
	CAFile    string `envconfig:"MEILISEARCH_CA_FILE" default:""`
}

// Server holds the HTTP server configuration.
type Server struct {
	Host              string        `envconfig:"SERVER_HOST" default:"localhost"`
	Port              int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout       time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"2s"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"1s"`
	WriteTimeout      time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"5s"`
	IdleTimeout       time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"30s"`
	RequestBodyLimit  int64         `envconfig:"SERVER_REQUEST_BODY_LIMIT" default:"4194304"`
	AuthSecret        string        `envconfig:"SERVER_AUTH_SECRET" required:"true"`
}
