package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	AdminID  int64  `envconfig:"ADMIN_ID" default:"0"`

	// DatabaseURL selects the store backend: postgres:// URIs use Postgres,
	// any other non-empty value is treated as a SQLite file path. Empty
	// disables persistence (the bot keeps running fail-closed).
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	CooldownSeconds int      `envconfig:"COOLDOWN_SECONDS" default:"8"`
	DailyLimit      int      `envconfig:"DAILY_LIMIT" default:"400"`
	MaxTextLength   int      `envconfig:"MAX_TEXT_LENGTH" default:"500"`
	BannedKeywords  []string `envconfig:"BANNED_KEYWORDS" default:"scam,phishing,malware,illegal,porn,sex,bomb,fraud,hack,virus"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"` // healthz
}

// Load reads environment variables into Config.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
