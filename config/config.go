package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	ServerPort  string
	DatabaseDSN string
	CORSOrigins string

	AccessSecret string

	KafkaBroker   string
	KafkaTopic    string
	KafkaGroupID  string
	KafkaUsername string
	KafkaPassword string

	// FacilityCodeFloor seeds the facility code sequence so issued codes
	// start above the historical range.
	FacilityCodeFloor int64

	Env string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Warn().Err(err).Msg("env file not found or could not be loaded")
		}
	}

	return Config{
		ServerPort:        getEnv("SERVER_PORT", ":3000"),
		DatabaseDSN:       os.Getenv("DATABASE_DSN"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "http://localhost:3000"),
		AccessSecret:      os.Getenv("ACCESS_SECRET"),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "facility-registry"),
		KafkaGroupID:      os.Getenv("KAFKA_GROUP_ID"),
		KafkaUsername:     os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:     os.Getenv("KAFKA_PASSWORD"),
		FacilityCodeFloor: getEnvInt64("FACILITY_CODE_FLOOR", 10000),
		Env:               getEnv("ENV", "dev"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid integer env value, using default")
		return fallback
	}
	return v
}
