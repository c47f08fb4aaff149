package logger

import (
	"context"
	"io"
	"os"

	"github.com/procwarden/procwarden/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger installs a debug level console logger. Tests and one-shot commands use it.
func InitLogger() *zerolog.Logger {
	return InitLoggerWithConfig(config.LoggingConfig{Level: "debug", Console: true})
}

// InitLoggerWithConfig writes to the console and/or a size-rotated file and makes the
// result the default context logger.
func InitLoggerWithConfig(cfg config.LoggingConfig) *zerolog.Logger {
	writers := []io.Writer{}
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"})
	}
	if cfg.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Caller().
		Logger()
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.DefaultContextLogger = &logger
	if err != nil {
		logger.Warn().Err(err).Msgf("unknown log level %q, using info", cfg.Level)
	}
	return &logger
}

func Logger(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
