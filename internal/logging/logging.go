// Package logging builds the zap logger shared by advent commands.
package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Verbose bool      // debug level instead of warn
	Output  io.Writer // usually stderr
}

// New returns a console logger writing to opts.Output. Result lines printed
// by commands go to stdout separately; the logger only carries diagnostics.
func New(opts Options) *zap.Logger {
	if opts.Output == nil {
		return zap.NewNop()
	}

	level := zapcore.WarnLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = zapcore.OmitKey

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(opts.Output)),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core).Named("advent")
}
