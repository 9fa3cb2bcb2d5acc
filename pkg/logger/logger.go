package logger

import (
	"os"
	"path/filepath"

	"github.com/ufukozendev/noobgg-sub002/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// InitLogger initializes Zap logger with configuration
func InitLogger(cfg *config.Config) error {
	// Configure log level based on environment
	var zapLevel zapcore.Level
	switch cfg.App.Environment {
	case "production":
		zapLevel = zapcore.InfoLevel
	default:
		zapLevel = zapcore.DebugLevel
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapLevel && l < zapcore.ErrorLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.ErrorLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), stdoutLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), stderrLevel),
	}

	// Optional file sinks
	if cfg.App.LogsPath != "" {
		fileCores, err := fileCores(cfg.App.LogsPath, encoder, zapLevel)
		if err != nil {
			return err
		}
		cores = append(cores, fileCores...)
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("service", cfg.App.Name))

	return nil
}

func fileCores(logsPath string, encoder zapcore.Encoder, level zapcore.Level) ([]zapcore.Core, error) {
	if err := os.MkdirAll(logsPath, 0755); err != nil {
		return nil, err
	}

	infoFile, err := os.OpenFile(filepath.Join(logsPath, "info.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	errorFile, err := os.OpenFile(filepath.Join(logsPath, "error.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		infoFile.Close()
		return nil, err
	}

	return []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(infoFile), level),
		zapcore.NewCore(encoder, zapcore.AddSync(errorFile), zapcore.ErrorLevel),
	}, nil
}

// SetLogger replaces the global logger, mostly for tests
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger = l
}

// GetLogger returns the structured logger
func GetLogger() *zap.Logger {
	return Logger
}

// Sync syncs all logs (call this before application exits)
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogPanic logs a recovered panic
func LogPanic(recovered interface{}) {
	Logger.Error("Panic recovered",
		zap.Any("panic", recovered),
		zap.Stack("stack"),
	)
}

// LogAuth logs authentication events
func LogAuth(userKey, action string, success bool, fields ...zap.Field) {
	allFields := append([]zap.Field{
		zap.String("user_key", userKey),
		zap.String("action", action),
		zap.Bool("success", success),
	}, fields...)

	if success {
		Logger.Debug("Authentication success", allFields...)
	} else {
		Logger.Warn("Authentication failure", allFields...)
	}
}
