package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger sends gorm's SQL trace through the context-aware zap logger so
// statements carry the request id of the call that issued them
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		logger.InfoWithContext(ctx, fmt.Sprintf(msg, args...)).Log()
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		logger.WarnWithContext(ctx, fmt.Sprintf(msg, args...)).Log()
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		logger.ErrorWithContext(ctx, fmt.Sprintf(msg, args...)).Log()
	}
}

// Trace logs failed statements at error, slow ones at warn and the rest at debug.
// Record-not-found is an expected outcome and is not an error here.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		logger.ErrorWithContext(ctx, "Database query failed").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Err(err).
			Log()
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.WarnWithContext(ctx, "Slow database query").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Log()
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		logger.DebugWithContext(ctx, "Database query").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Log()
	}
}
