package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ueldo/ueldo-backend/internal/models"
)

type fakeWriter struct {
	mu   sync.Mutex
	rows []models.SystemLog
}

func (w *fakeWriter) WriteLogs(batch []models.SystemLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, batch...)
	return nil
}

func (w *fakeWriter) snapshot() []models.SystemLog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.SystemLog(nil), w.rows...)
}

func TestDBHandler_PersistsErrorsOnly(t *testing.T) {
	w := &fakeWriter{}
	h := NewDBHandlerWithWriter(w, time.Hour)
	defer h.Stop()

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored", "action", "auth.login")
	logger.Error("approve failed",
		"action", "registration.approve",
		"user_id", "u-1",
		"error", "boom",
		"latency_ms", 12.6,
		"competition_id", "c-1",
	)
	h.Flush()

	rows := w.snapshot()
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "ERROR", row.Level)
	assert.Equal(t, "approve failed", row.Message)
	assert.Equal(t, "req-1", row.TraceID)
	assert.Equal(t, "registration.approve", row.Action)
	require.NotNil(t, row.UserID)
	assert.Equal(t, "u-1", *row.UserID)
	assert.Equal(t, "boom", row.Error)
	assert.Equal(t, 13, row.LatencyMs)

	var extra map[string]interface{}
	require.NoError(t, json.Unmarshal(row.Extra, &extra))
	assert.Equal(t, "c-1", extra["competition_id"])
}

func TestDBHandler_StopFlushes(t *testing.T) {
	w := &fakeWriter{}
	h := NewDBHandlerWithWriter(w, time.Hour)

	slog.New(h).Error("shutdown")
	h.Stop()
	h.Stop()

	assert.Eventually(t, func() bool { return len(w.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestMultiHandler_FansOut(t *testing.T) {
	w := &fakeWriter{}
	db := NewDBHandlerWithWriter(w, time.Hour)
	defer db.Stop()

	var seen []string
	rec := recordingHandler{seen: &seen}
	m := NewMultiHandler(rec, db)

	assert.True(t, m.Enabled(context.Background(), slog.LevelInfo))
	logger := slog.New(m)
	logger.Info("info line")
	logger.Error("error line")
	db.Flush()

	assert.Equal(t, []string{"info line", "error line"}, seen)
	require.Len(t, w.snapshot(), 1)
	assert.Equal(t, "error line", w.snapshot()[0].Message)
}

type recordingHandler struct {
	seen *[]string
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.seen = append(*h.seen, r.Message)
	return nil
}

func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h recordingHandler) WithGroup(string) slog.Handler { return h }
