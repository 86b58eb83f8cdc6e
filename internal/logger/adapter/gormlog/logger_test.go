package gormlog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ContractFlow/ContractFlow-Admin/internal/logger"
	"github.com/ContractFlow/ContractFlow-Admin/internal/logger/adapter/gormlog"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	log.Logger = zerolog.New(&buf)

	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	return &buf
}

func query() (string, int64) {
	return "SELECT * FROM roles", 3
}

func TestTrace(t *testing.T) {
	testCases := []struct {
		name    string
		level   gormlogger.LogLevel
		slowMs  int
		begin   time.Time
		err     error
		want    string
		wantOut bool
	}{
		{
			name:    "error is logged",
			level:   gormlogger.Warn,
			begin:   time.Now(),
			err:     errors.New("no such table: roles"), //nolint:err113
			want:    "sql statement failed",
			wantOut: true,
		},
		{
			name:  "record not found is ignored",
			level: gormlogger.Warn,
			begin: time.Now(),
			err:   gorm.ErrRecordNotFound,
		},
		{
			name:    "slow statement is a warning",
			level:   gormlogger.Warn,
			slowMs:  1,
			begin:   time.Now().Add(-time.Second),
			want:    "slow sql statement",
			wantOut: true,
		},
		{
			name:  "fast statement at warn level is silent",
			level: gormlogger.Warn,
			begin: time.Now(),
		},
		{
			name:    "info level logs every statement",
			level:   gormlogger.Info,
			begin:   time.Now(),
			want:    "SELECT * FROM roles",
			wantOut: true,
		},
		{
			name:  "silent",
			level: gormlogger.Silent,
			begin: time.Now(),
			err:   errors.New("boom"), //nolint:err113
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := captureLog(t)

			l := gormlog.New(logger.Log{SlowQueryMs: tc.slowMs}).LogMode(tc.level)
			l.Trace(context.Background(), tc.begin, query, tc.err)

			if !tc.wantOut {
				assert.Empty(t, buf.String())
				return
			}

			assert.Contains(t, buf.String(), tc.want)
			assert.Contains(t, buf.String(), `"component":"gorm"`)
		})
	}
}

func TestMessages(t *testing.T) {
	buf := captureLog(t)

	l := gormlog.New(logger.Log{})
	l.Info(context.Background(), "hidden %d", 1)
	l.Warn(context.Background(), "warned %d", 2)
	l.Error(context.Background(), "failed %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "warned 2")
	assert.Contains(t, out, "failed 3")
}
