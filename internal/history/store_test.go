package history

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/formantlabs/formant-core/internal/config"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOpenEphemeral(t *testing.T) {
	ctx := context.Background()
	cfg := config.HistoryConfig{RetentionMode: "ephemeral"}
	st, err := Open(ctx, cfg, newLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Ensure(); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if err := st.Record(ctx, Utterance{SessionID: "s", TextChars: 5}); err != nil {
		t.Fatalf("ephemeral record must be a no-op: %v", err)
	}
}

func TestRecordAndList(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.HistoryConfig{Path: filepath.Join(tmp, "history.db"), RetentionMode: "session"}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	sessionID := "session-123"
	u := Utterance{
		SessionID:   sessionID,
		Voice:       "glados",
		Language:    "en",
		TextChars:   5,
		SampleCount: 11025,
		DurationMS:  500,
	}
	if err := st.Record(context.Background(), u); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := st.ListSession(context.Background(), sessionID, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(got))
	}
	if got[0].Voice != "glados" || got[0].SampleCount != 11025 || got[0].DurationMS != 500 {
		t.Fatalf("unexpected record: %+v", got[0])
	}
}

func TestPruneByDaysAndCount(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.HistoryConfig{Path: filepath.Join(tmp, "history.db"), RetentionMode: "persistent", RetentionDays: 1, MaxUtterances: 1}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	st.clock = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	if err := st.Record(context.Background(), Utterance{SessionID: "old-session", TextChars: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}

	st.clock = func() time.Time { return time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC) }
	if err := st.Record(context.Background(), Utterance{SessionID: "new-session", TextChars: 4}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := st.Prune(context.Background()); err != nil {
		t.Fatalf("prune: %v", err)
	}

	old, err := st.ListSession(context.Background(), "old-session", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(old) != 0 {
		t.Fatalf("expected old session pruned")
	}
	recent, err := st.ListSession(context.Background(), "new-session", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected new session kept, got %d", len(recent))
	}
}
