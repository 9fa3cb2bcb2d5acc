package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestGormLogger_Trace(t *testing.T) {
	sql := func() (string, int64) { return "SELECT 1", 1 }

	tests := []struct {
		name      string
		level     gormlogger.LogLevel
		elapsed   time.Duration
		err       error
		wantLevel zapcore.Level
		wantMsg   string
	}{
		{name: "failure", level: gormlogger.Error, err: errors.New("boom"), wantLevel: zapcore.ErrorLevel, wantMsg: "Database query failed"},
		{name: "slow", level: gormlogger.Warn, elapsed: time.Second, wantLevel: zapcore.WarnLevel, wantMsg: "Slow database query"},
		{name: "trace", level: gormlogger.Info, wantLevel: zapcore.DebugLevel, wantMsg: "Database query"},
		{name: "not found is quiet", level: gormlogger.Error, err: gorm.ErrRecordNotFound},
		{name: "silent", level: gormlogger.Silent, err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger.SetLogger(zap.New(core))
			defer logger.SetLogger(nil)

			l := NewGormLogger(tt.level, slowQueryThreshold)
			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), sql, tt.err)

			if tt.wantMsg == "" {
				assert.Equal(t, 0, logs.Len())
				return
			}
			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, tt.wantMsg, entry.Message)
			assert.Equal(t, "SELECT 1", entry.ContextMap()["sql"])
		})
	}
}

func TestGormLogger_LogModeCopies(t *testing.T) {
	base := NewGormLogger(gormlogger.Warn, slowQueryThreshold)
	quiet := base.LogMode(gormlogger.Silent).(*GormLogger)

	assert.Equal(t, gormlogger.Silent, quiet.level)
	assert.Equal(t, gormlogger.Warn, base.level)
}

func TestLogLevelFor(t *testing.T) {
	assert.Equal(t, gormlogger.Error, logLevelFor("production"))
	assert.Equal(t, gormlogger.Warn, logLevelFor("staging"))
	assert.Equal(t, gormlogger.Info, logLevelFor("development"))
}
