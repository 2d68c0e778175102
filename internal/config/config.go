package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv  string
	AppPort string

	MySQLHost   string
	MySQLPort   string
	MySQLDB     string
	MySQLUser   string
	MySQLPass   string
	AutoMigrate bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	IdempTTLSecs int
	PhoneRegion  string

	LogLevel  string
	LogFormat string

	AtRiskThreshold   int
	RecoveryThreshold int

	ReconcileEnabled       bool
	ReconcileHour          int
	ReconcileCheckInterval time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// getenvInt ignores values that do not parse.
func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func Load() *Config {
	return &Config{
		AppEnv:      getenv("APP_ENV", "development"),
		AppPort:     getenv("APP_PORT", "8080"),
		MySQLHost:   getenv("MYSQL_HOST", "mysql"),
		MySQLPort:   getenv("MYSQL_PORT", "3306"),
		MySQLDB:     getenv("MYSQL_DB", "motofinance"),
		MySQLUser:   getenv("MYSQL_USER", "motofinance"),
		MySQLPass:   getenv("MYSQL_PASS", "motofinance"),
		AutoMigrate: getenvBool("DB_AUTO_MIGRATE", false),

		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		PhoneRegion:  strings.ToUpper(getenv("PHONE_REGION", "KE")),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		AtRiskThreshold:   getenvInt("AT_RISK_THRESHOLD", 2),
		RecoveryThreshold: getenvInt("RECOVERY_THRESHOLD", 4),

		ReconcileEnabled:       getenvBool("RECONCILE_ENABLED", true),
		ReconcileHour:          getenvInt("RECONCILE_HOUR", 1),
		ReconcileCheckInterval: time.Duration(getenvInt("RECONCILE_CHECK_INTERVAL_SECONDS", 60)) * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.PhoneRegion) != 2 {
		return fmt.Errorf("invalid PHONE_REGION %q (want a 2-letter region code)", c.PhoneRegion)
	}
	if c.AtRiskThreshold < 1 || c.RecoveryThreshold < 1 {
		return errors.New("AT_RISK_THRESHOLD and RECOVERY_THRESHOLD must be positive")
	}
	if c.AtRiskThreshold > c.RecoveryThreshold {
		return fmt.Errorf("AT_RISK_THRESHOLD (%d) exceeds RECOVERY_THRESHOLD (%d)", c.AtRiskThreshold, c.RecoveryThreshold)
	}
	if c.ReconcileHour < 0 || c.ReconcileHour > 23 {
		return fmt.Errorf("invalid RECONCILE_HOUR %d", c.ReconcileHour)
	}
	if c.ReconcileCheckInterval <= 0 {
		return errors.New("RECONCILE_CHECK_INTERVAL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool { return strings.EqualFold(c.AppEnv, "production") }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps due dates stable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
