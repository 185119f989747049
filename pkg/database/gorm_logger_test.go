package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newBufferedGormLogger() (*GormLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := NewGormLogger()
	l.logger = zerolog.New(buf).Level(zerolog.DebugLevel)
	return l, buf
}

func TestGormLogger_Trace(t *testing.T) {
	query := func() (string, int64) { return "SELECT * FROM users", 0 }

	tests := []struct {
		name     string
		begin    time.Time
		err      error
		wantText string
	}{
		{name: "record not found is silent", begin: time.Now(), err: gorm.ErrRecordNotFound},
		{name: "fast query is silent", begin: time.Now()},
		{name: "query error", begin: time.Now(), err: errors.New("disk I/O error"), wantText: "disk I/O error"},
		{name: "slow query", begin: time.Now().Add(-time.Second), wantText: "SELECT * FROM users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferedGormLogger()

			l.Trace(context.Background(), tt.begin, query, tt.err)

			if tt.wantText == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantText)
		})
	}
}

func TestGormLogger_LogModeSilent(t *testing.T) {
	l, buf := newBufferedGormLogger()
	silent := l.LogMode(gormLogger.Silent)

	silent.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	silent.Error(context.Background(), "failed %s", "x")

	assert.Empty(t, buf.String())
	// Исходный логгер не меняется
	assert.Equal(t, gormLogger.Warn, l.LogLevel)
}
