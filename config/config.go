package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	SMS   SMSConfig
	Call  CallConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SMSConfig configures the outbound SMS notification provider.
// An empty URL disables SMS delivery entirely.
type SMSConfig struct {
	URL      string
	APIKey   string
	SenderID string
}

type CallConfig struct {
	LinkBase   string        // prefixed to a call id to form the joinable call link
	NotifyLead time.Duration // how long before the scheduled time the reminder fires
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	notifyLead, err := time.ParseDuration(viper.GetString("CALL_NOTIFY_LEAD"))
	if err != nil {
		notifyLead = 5 * time.Minute
	}

	linkBase := viper.GetString("CALL_LINK_BASE")
	if linkBase == "" {
		linkBase = "/video-call/"
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		SMS: SMSConfig{
			URL:      viper.GetString("SMS_URL"),
			APIKey:   viper.GetString("SMS_API_KEY"),
			SenderID: viper.GetString("SMS_SENDER_ID"),
		},
		Call: CallConfig{
			LinkBase:   linkBase,
			NotifyLead: notifyLead,
		},
	}

	return config, nil
}

// Location resolves the configured application timezone. Schedule times carry
// no zone of their own, so every wall-clock conversion goes through this.
func (c *Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
