package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/veil-notes/veil/internal/search"
	indexsvc "github.com/veil-notes/veil/internal/services/index"
)

type stubIndexService struct {
	stats indexsvc.Stats
}

func (s stubIndexService) AcquireSnapshot() (*search.Index, error) { return nil, nil }
func (s stubIndexService) QueueUpdate(string)                      {}
func (s stubIndexService) Stats() indexsvc.Stats                   { return s.stats }
func (s stubIndexService) Close() error                            { return nil }

func TestFormatIndexStatusIncludesRebuild(t *testing.T) {
	t.Parallel()

	rebuilt := time.Date(2024, time.March, 5, 17, 42, 0, 0, time.UTC)
	svc := stubIndexService{stats: indexsvc.Stats{
		Notes:       12,
		Pending:     3,
		LastRebuild: rebuilt,
	}}

	got := formatIndexStatus(svc)
	want := fmt.Sprintf("idx: 12 notes | pending 3 | rebuilt %s", rebuilt.Local().Format("15:04"))
	if got != want {
		t.Fatalf("formatIndexStatus mismatch: got %q, want %q", got, want)
	}
}

func TestFormatIndexStatusOmitsEmptySections(t *testing.T) {
	t.Parallel()

	svc := stubIndexService{stats: indexsvc.Stats{Notes: 4}}
	got := formatIndexStatus(svc)
	want := "idx: 4 notes"
	if got != want {
		t.Fatalf("formatIndexStatus mismatch: got %q, want %q", got, want)
	}
}

func TestIndexHeartbeatClearsWhenServiceNil(t *testing.T) {
	t.Parallel()

	st := &State{RootStatus: &RootStatus{}}
	st.RootStatus.Set("stale")

	cmd := st.IndexHeartbeatCmd()
	if cmd == nil {
		t.Fatalf("expected heartbeat command")
	}

	msg := cmd()
	statsMsg, ok := msg.(IndexStatsMsg)
	if !ok {
		t.Fatalf("expected IndexStatsMsg, got %T", msg)
	}

	if statsMsg.Line != "" {
		t.Fatalf("expected blank line when index unavailable, got %q", statsMsg.Line)
	}

	if got := st.RootStatus.Value(); got != "" {
		t.Fatalf("expected root status to be cleared, got %q", got)
	}
}

func TestIndexHeartbeatUpdatesStatus(t *testing.T) {
	t.Parallel()

	svc := stubIndexService{stats: indexsvc.Stats{Notes: 9, Pending: 7}}
	st := &State{RootStatus: &RootStatus{}, Index: svc}

	cmd := st.IndexHeartbeatCmd()
	if cmd == nil {
		t.Fatalf("expected heartbeat command")
	}

	msg := cmd()
	statsMsg, ok := msg.(IndexStatsMsg)
	if !ok {
		t.Fatalf("expected IndexStatsMsg, got %T", msg)
	}

	want := "idx: 9 notes | pending 7"
	if statsMsg.Line != want {
		t.Fatalf("expected %q, got %q", want, statsMsg.Line)
	}

	if got := st.RootStatus.Value(); got != want {
		t.Fatalf("expected root status %q, got %q", want, got)
	}
}
