package logger

import (
	"github.com/thbteam/patient-dashboard/config"
	"go.uber.org/zap"
)

func NewProductionLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level
	return zapConfig.Build()
}

func Suggar(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}
