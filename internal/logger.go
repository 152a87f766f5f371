package internal

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"omnikassa/config"
	"omnikassa/entity"
	"omnikassa/services"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

// Logger implements services.LogHandler on zap. Each line carries the
// component category; when a database is set, lines are stored there too.
type Logger struct {
	category string
	debug    bool
	database services.Database
	zap      *zap.Logger
}

// NewLogger creates a console logger for the category.
func NewLogger(category string, debug bool, database services.Database) *Logger {
	return newLogger(category, debug, database, zapcore.Lock(os.Stdout))
}

// NewFileLogger writes to a rotated log file when one is configured, to the console otherwise.
func NewFileLogger(category string, conf *config.Config, database services.Database) *Logger {
	if conf.Log.File == "" {
		return NewLogger(category, conf.IsDebug, database)
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Log.File,
		MaxSize:    conf.Log.MaxSizeMb,
		MaxBackups: conf.Log.MaxBackups,
		MaxAge:     conf.Log.MaxAgeDays,
	})
	return newLogger(category, conf.IsDebug, database, writer)
}

func newLogger(category string, debug bool, database services.Database, writer zapcore.WriteSyncer) *Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, level)
	return &Logger{
		category: category,
		debug:    debug,
		database: database,
		zap:      zap.New(core).With(zap.String("category", category)),
	}
}

func (l *Logger) Debug(text string) {
	if !l.debug {
		return
	}
	l.zap.Debug(text)
	l.store(levelDebug, text)
}

func (l *Logger) Info(text string) {
	l.zap.Info(text)
	l.store(levelInfo, text)
}

func (l *Logger) Warn(text string) {
	l.zap.Warn(text)
	l.store(levelWarn, text)
}

func (l *Logger) Error(text string, err error) {
	l.zap.Error(text, zap.Error(err))
	if err != nil {
		text = text + ": " + err.Error()
	}
	l.store(levelError, text)
}

func (l *Logger) store(level, text string) {
	if l.database == nil {
		return
	}
	message := &entity.LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(message); err != nil {
		l.zap.Warn("write log message", zap.Error(err))
	}
}
