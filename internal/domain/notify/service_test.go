package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"patilog/internal/domain/records"
	"patilog/internal/platform/logger"
	"patilog/internal/ports/mail"
)

type testRepo struct {
	rows []records.TreatmentRecord
	err  error
}

func (r *testRepo) LoadAll(ctx context.Context) ([]records.TreatmentRecord, error) {
	return r.rows, r.err
}
func (r *testRepo) Append(ctx context.Context, rec records.TreatmentRecord) error { return nil }
func (r *testRepo) ReplaceAll(ctx context.Context, recs []records.TreatmentRecord) error {
	return nil
}

type testTransport struct {
	sent   []mail.Message
	failOn map[int]bool // 1-based call number
	calls  int
}

func (t *testTransport) Send(ctx context.Context, m mail.Message) error {
	t.calls++
	if t.failOn[t.calls] {
		return errors.New("smtp: connection reset")
	}
	t.sent = append(t.sent, m)
	return nil
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 7, 0, 0, 0, time.UTC) }
}

func row(pet, treatment, nextDue string) records.TreatmentRecord {
	return records.TreatmentRecord{PetName: pet, Treatment: treatment, Applied: "2025-01-01", NextDue: nextDue}
}

func TestRun_SendsOneMessagePerReminder(t *testing.T) {
	repo := &testRepo{rows: []records.TreatmentRecord{
		row("Max", "Kuduz", "2025-06-03"),
		row("Luna", "Karma (DHPP)", "2025-06-05"),
		row("Rex", "İç Parazit", "2025-05-20"), // overdue, not selected
	}}
	tr := &testTransport{}

	svc := NewService(repo, tr, logger.Discard(), Options{Recipients: []string{"owner@example.com"}})
	svc.now = fixedNow(2025, 6, 1)

	stats := svc.Run(context.Background())

	if stats.Selected != 2 || stats.Sent != 2 || stats.Failed != 0 {
		t.Fatalf("stats = %+v, want 2 selected, 2 sent", stats)
	}
	if len(tr.sent) != 2 {
		t.Fatalf("sent %d messages, want 2", len(tr.sent))
	}
	if len(tr.sent[0].ICS) == 0 {
		t.Error("message missing ics attachment")
	}
}

func TestRun_DispatchFailureIsIsolated(t *testing.T) {
	repo := &testRepo{rows: []records.TreatmentRecord{
		row("Max", "Kuduz", "2025-06-02"),
		row("Luna", "Karma (DHPP)", "2025-06-03"),
		row("Rex", "Lyme", "2025-06-04"),
	}}
	tr := &testTransport{failOn: map[int]bool{2: true}}

	svc := NewService(repo, tr, logger.Discard(), Options{Recipients: []string{"owner@example.com"}})
	svc.now = fixedNow(2025, 6, 1)

	stats := svc.Run(context.Background())

	if stats.Sent != 2 || stats.Failed != 1 {
		t.Fatalf("stats = %+v, want 2 sent, 1 failed", stats)
	}
	// 1st and 3rd still went out
	if tr.sent[0].Subject == tr.sent[1].Subject {
		t.Error("expected two distinct messages")
	}
}

func TestRun_StoreFailureReadsAsEmpty(t *testing.T) {
	repo := &testRepo{err: errors.New("sheets: read: unavailable")}
	tr := &testTransport{}

	svc := NewService(repo, tr, logger.Discard(), Options{Recipients: []string{"owner@example.com"}})
	svc.now = fixedNow(2025, 6, 1)

	stats := svc.Run(context.Background())
	if stats.Records != 0 || stats.Sent != 0 {
		t.Fatalf("stats = %+v, want nothing selected or sent", stats)
	}
}

func TestRun_MalformedRowLoggedAndSkipped(t *testing.T) {
	repo := &testRepo{rows: []records.TreatmentRecord{
		row("Max", "Kuduz", "2025-06-03"),
		row("Broken", "Karma (DHPP)", "yarın"),
	}}
	tr := &testTransport{}

	svc := NewService(repo, tr, logger.Discard(), Options{Recipients: []string{"owner@example.com"}})
	svc.now = fixedNow(2025, 6, 1)

	stats := svc.Run(context.Background())
	if stats.Sent != 1 || stats.Skipped != 1 {
		t.Fatalf("stats = %+v, want 1 sent, 1 skipped", stats)
	}
}

// A record that stays inside the window is re-sent on every run; only the
// calendar UID keeps downstream state idempotent.
func TestRun_RepeatsWhileInWindow(t *testing.T) {
	repo := &testRepo{rows: []records.TreatmentRecord{row("Max", "Kuduz", "2025-06-03")}}
	tr := &testTransport{}

	svc := NewService(repo, tr, logger.Discard(), Options{Recipients: []string{"owner@example.com"}})

	svc.now = fixedNow(2025, 6, 1)
	svc.Run(context.Background())
	svc.now = fixedNow(2025, 6, 2)
	svc.Run(context.Background())

	if len(tr.sent) != 2 {
		t.Fatalf("sent %d, want 2 (one per run)", len(tr.sent))
	}
	if string(tr.sent[0].ICS) == "" || !equalUID(tr.sent[0].ICS, tr.sent[1].ICS) {
		t.Error("both runs must carry the same calendar UID")
	}
}

func equalUID(a, b []byte) bool {
	ua, ub := uidLine(string(a)), uidLine(string(b))
	return ua != "" && ua == ub
}

func uidLine(ics string) string {
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			return line
		}
	}
	return ""
}
