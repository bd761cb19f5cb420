package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"

	"exusiai.dev/gazeseq/internal/app/appconfig"
)

func Configure(conf *appconfig.Config) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var level zerolog.Level
	if conf.DevMode {
		level = zerolog.TraceLevel
	} else {
		level = zerolog.DebugLevel
	}

	var stdout io.Writer
	if conf.LogJsonStdout {
		stdout = os.Stdout
	} else {
		stdout = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		}
	}

	writers := []io.Writer{stdout}
	if conf.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   conf.LogFile,
			MaxSize:    100, // megabytes
			MaxBackups: 10,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Logger().
		Level(level)
}
