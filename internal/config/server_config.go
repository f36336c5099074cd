package config

import (
	"fmt"
	"net/url"
	"time"

	"github/chapool/go-disperse/internal/util"
)

// EchoServer holds the echo specific settings.
type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableRecoverMiddleware        bool
	EnableRequestLoggerMiddleware  bool
	EnableTrailingSlashMiddleware  bool
}

type LoggerServer struct {
	Level              string
	RequestLevel       string
	LogRequestBody     bool
	LogResponseBody    bool
	PrettyPrintConsole bool
}

// Database holds the Postgres connection settings (only used when the
// ledger backend is "postgres").
type Database struct {
	Host             string
	Port             int
	Username         string
	Password         string
	Database         string
	AdditionalParams map[string]string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ConnectionString generates a connection string to be passed to sql.Open.
func (c Database) ConnectionString() string {
	connectionString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s", c.Host, c.Port, c.Username, c.Password, c.Database)

	for k, v := range c.AdditionalParams {
		connectionString += fmt.Sprintf(" %s=%s", k, v)
	}

	return connectionString
}

// Ledger selects and parametrizes the ledger collaborator backing the
// disbursement service.
type Ledger struct {
	// Backend is either "memory" or "postgres".
	Backend string
	// CustodyAddress is the account the disburser pulls funds into before
	// redistributing them (hex, 20 bytes).
	CustodyAddress string
}

type Server struct {
	Echo     EchoServer
	Logger   LoggerServer
	Database Database
	Ledger   Ledger
}

// DefaultServiceConfigFromEnv returns the server config as parsed from
// environment variables and their respective defaults.
// We don't expect that ENV_VARs change while we are running our application,
// thus we save the parsed config in a local var and reuse it.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestLoggerMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_LOGGER_MIDDLEWARE", true),
			EnableTrailingSlashMiddleware:  util.GetEnvAsBool("SERVER_ECHO_ENABLE_TRAILING_SLASH_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              util.GetEnv("SERVER_LOGGER_LEVEL", "info"),
			RequestLevel:       util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", "debug"),
			LogRequestBody:     util.GetEnvAsBool("SERVER_LOGGER_LOG_REQUEST_BODY", false),
			LogResponseBody:    util.GetEnvAsBool("SERVER_LOGGER_LOG_RESPONSE_BODY", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Database: Database{
			Host:     util.GetEnv("PGHOST", "postgres"),
			Port:     util.GetEnvAsInt("PGPORT", 5432),
			Username: util.GetEnv("PGUSER", "dbuser"),
			Password: util.GetEnv("PGPASSWORD", ""),
			Database: util.GetEnv("PGDATABASE", "development"),
			AdditionalParams: map[string]string{
				"sslmode": util.GetEnv("PGSSLMODE", "disable"),
			},
			MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", 30),
			MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 15),
			ConnMaxLifetime: time.Second * time.Duration(util.GetEnvAsInt("DB_CONN_MAX_LIFETIME_SEC", 3600)),
		},
		Ledger: Ledger{
			Backend:        util.GetEnv("SERVER_LEDGER_BACKEND", "memory"),
			CustodyAddress: util.GetEnv("SERVER_LEDGER_CUSTODY_ADDRESS", "0xD15b0000000000000000000000000000D15b0000"),
		},
	}
}

// DatabaseURL returns the database connection in URL form, as expected by
// migration tooling.
func (c Database) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		User:   url.UserPassword(c.Username, c.Password),
		Path:   c.Database,
	}

	q := u.Query()
	for k, v := range c.AdditionalParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String()
}
