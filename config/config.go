package config

import (
	internalconfig "github.com/ruachost/domainstack/internal/config"
	"github.com/ruachost/domainstack/internal/logger"
	"github.com/ruachost/domainstack/internal/tracing"
)

type Config struct {
	AppConfig           *internalconfig.AppConfig
	Logger              *logger.Config
	Tracing             *tracing.JaegerConfig
	StoreDatabaseConfig *internalconfig.StoreDatabaseConfig
	WHMCSConfig         *internalconfig.WHMCSConfig
	PaystackConfig      *internalconfig.PaystackConfig
	PlatformConfig      *internalconfig.PlatformConfig
	ChallengeConfig     *internalconfig.ChallengeConfig
	DNSConfig           *internalconfig.DNSConfig
}
