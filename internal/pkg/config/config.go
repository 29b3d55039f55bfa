package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (policies, timeouts, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
	Policy PolicyConfig
	Sweep  SweepConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// PolicyConfig holds the lending and reservation policies enforced by the
// booking engines. Defaults mirror the library's house rules.
type PolicyConfig struct {
	MaxActiveLoans        int           `envconfig:"POLICY_MAX_ACTIVE_LOANS" default:"5"`
	LoanPeriodDays        int           `envconfig:"POLICY_LOAN_PERIOD_DAYS" default:"14"`
	ExtensionDays         int           `envconfig:"POLICY_EXTENSION_DAYS" default:"7"`
	DailyReservationLimit time.Duration `envconfig:"POLICY_DAILY_RESERVATION_LIMIT" default:"4h"`
}

type SweepConfig struct {
	ReservationReminderLead time.Duration `envconfig:"SWEEP_RESERVATION_REMINDER_LEAD" default:"24h"`
	CheckInReminderLead     time.Duration `envconfig:"SWEEP_CHECKIN_REMINDER_LEAD" default:"15m"`
	DueSoonLeadDays         int           `envconfig:"SWEEP_DUE_SOON_LEAD_DAYS" default:"3"`
	OverdueHour             int           `envconfig:"SWEEP_OVERDUE_HOUR" default:"9"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level: "error",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Policy: PolicyConfig{
			MaxActiveLoans:        5,
			LoanPeriodDays:        14,
			ExtensionDays:         7,
			DailyReservationLimit: 4 * time.Hour,
		},
		Sweep: SweepConfig{
			ReservationReminderLead: 24 * time.Hour,
			CheckInReminderLead:     15 * time.Minute,
			DueSoonLeadDays:         3,
			OverdueHour:             9,
		},
	}
}
