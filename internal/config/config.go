package config

import (
	"log"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is built once at process entry and passed down by parameter; nothing
// below main reads the environment.
type Config struct {
	AppName   string `env:"APP_NAME" env-default:"patilog"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`

	HTTPPort string `env:"PORT" env-default:"8080"`

	// Storage selects the backing store: memory, sheets or postgres.
	Storage       string `env:"STORAGE" env-default:"memory"`
	SpreadsheetID string `env:"SHEETS_SPREADSHEET_ID"`
	// GCPCredentials is the service-account key JSON, inline. Supplied out of
	// band (CI secret / env file), never committed.
	GCPCredentials string `env:"GCP_CREDENTIALS"`
	PostgresDSN    string `env:"DB_DSN"`

	// MailProvider selects the transport: smtp or ses.
	MailProvider string `env:"MAIL_PROVIDER" env-default:"smtp"`
	SMTPHost     string `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" env-default:"465"`
	EmailUser    string `env:"EMAIL_USER"`
	EmailPass    string `env:"EMAIL_PASS"`
	EmailTo      string `env:"EMAIL_TO"` // comma-separated recipient list
	AWSRegion    string `env:"AWS_REGION" env-default:"eu-central-1"`

	LookaheadDays int    `env:"REMINDER_LOOKAHEAD_DAYS" env-default:"7"`
	ReminderHour  int    `env:"REMINDER_HOUR" env-default:"9"`
	NotifierCron  string `env:"NOTIFIER_CRON" env-default:"0 8 * * *"`
}

// MustLoad reads .env if present, then the environment. Exits on a malformed
// environment; missing optional values are caught later where they matter.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// Recipients splits EMAIL_TO into addresses.
func (c *Config) Recipients() []string {
	out := make([]string, 0)
	for _, p := range strings.Split(c.EmailTo, ",") {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
