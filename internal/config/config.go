package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	AdminKey        string        `mapstructure:"ADMIN_KEY"`
	CORSAllowed     string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	BrevoAPIKey     string        `mapstructure:"BREVO_API_KEY"`
	SenderEmail     string        `mapstructure:"SENDER_EMAIL"`
	SenderName      string        `mapstructure:"SENDER_NAME"`
	RecipientEmail  string        `mapstructure:"RECIPIENT_EMAIL"`
	ProviderTimeout time.Duration `mapstructure:"PROVIDER_TIMEOUT"`
	MockProviders   bool          `mapstructure:"MOCK_PROVIDERS"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SENDER_NAME", "Aspire AI Receptionist")
	v.SetDefault("PROVIDER_TIMEOUT", "10s")
	v.SetDefault("MOCK_PROVIDERS", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
