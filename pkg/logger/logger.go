// pkg/logger/logger.go
package logger

import (
	"go.uber.org/zap"
)

type Sugared = *zap.SugaredLogger

// New returns a sugared logger: JSON production encoding when env == "prod",
// human-readable development output otherwise.
func New(env string) Sugared {
	var z *zap.Logger
	if env == "prod" {
		z, _ = zap.NewProduction()
	} else {
		z, _ = zap.NewDevelopment()
	}
	return z.Sugar()
}
