package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	internalconfig "github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/logger"
	"github.com/ruachost/domainstack/internal/tracing"
)

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:           &internalconfig.AppConfig{},
		Logger:              &logger.Config{},
		Tracing:             &tracing.JaegerConfig{},
		StoreDatabaseConfig: &internalconfig.StoreDatabaseConfig{},
		WHMCSConfig:         &internalconfig.WHMCSConfig{},
		PaystackConfig:      &internalconfig.PaystackConfig{},
		PlatformConfig:      &internalconfig.PlatformConfig{},
		ChallengeConfig:     &internalconfig.ChallengeConfig{},
		DNSConfig:           &internalconfig.DNSConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading domainstack config: %v", err)
	}

	return config, nil
}
