package utils

import (
	"os"

	"go.uber.org/zap"
)

// InitLogger builds the application logger. Development mode (console
// encoding, debug level) when APP_ENV is not "production".
func InitLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
