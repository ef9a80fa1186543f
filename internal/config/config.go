package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr          string `mapstructure:"HTTP_ADDR"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	PostgresURL       string `mapstructure:"PG_URL"`
	KafkaBrokers      string `mapstructure:"KAFKA_BROKERS"`
	NotificationTopic string `mapstructure:"NOTIFICATION_TOPIC"`
	Timezone          string `mapstructure:"TIMEZONE"`
}

func (c Config) Brokers() []string {
	if c.KafkaBrokers == "" {
		return nil
	}
	return strings.Split(c.KafkaBrokers, ",")
}

// Load reads configuration from the environment, falling back to an optional
// .env file in the working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("PG_URL", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("NOTIFICATION_TOPIC", "nourish.notifications")
	v.SetDefault("TIMEZONE", "Local")

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig()
	v.AutomaticEnv()

	var cf Config
	if err := v.Unmarshal(&cf); err != nil {
		return Config{}, err
	}
	return cf, nil
}
