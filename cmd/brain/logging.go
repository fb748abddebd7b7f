package main

import (
	"github.com/steveyegge/brain/internal/telemetry"
	"go.uber.org/zap"
)

func newLogger(verbose bool) (*zap.Logger, error) {
	return telemetry.New(verbose)
}
