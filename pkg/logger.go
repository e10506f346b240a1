package utils

import (
	"go.uber.org/zap"
)

// NewLogger builds the application logger. Debug mode switches to the
// human-readable development encoder.
func NewLogger(debug bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
