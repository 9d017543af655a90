package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv              string `mapstructure:"APP_ENV"`
	Port                string `mapstructure:"PORT"`
	DatabaseURL         string `mapstructure:"DATABASE_URL"`
	RedisURL            string `mapstructure:"REDIS_URL"`
	RedisPassword       string `mapstructure:"REDIS_PASSWORD"`
	SessionSecret       string `mapstructure:"SESSION_SECRET"`
	SessionMaxAge       int    `mapstructure:"SESSION_MAX_AGE_SECONDS"`
	VisitorCookieMaxAge int    `mapstructure:"VISITOR_COOKIE_MAX_AGE_SECONDS"`
	ShortCodeLength     int    `mapstructure:"SHORT_CODE_LENGTH"`
	UserIDLength        int    `mapstructure:"USER_ID_LENGTH"`
	GeoIPDBPath         string `mapstructure:"GEOIP_DB_PATH"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	// In-memory sqlite by default: all data is lost on restart unless an
	// operator points DATABASE_URL at postgres.
	viper.SetDefault("DATABASE_URL", "sqlite://file::memory:?cache=shared")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SESSION_SECRET", "change-me-in-production-1234567890ab")
	viper.SetDefault("SESSION_MAX_AGE_SECONDS", 86400)
	viper.SetDefault("VISITOR_COOKIE_MAX_AGE_SECONDS", 31536000)
	viper.SetDefault("SHORT_CODE_LENGTH", 6)
	viper.SetDefault("USER_ID_LENGTH", 8)
	viper.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-Country.mmdb")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
