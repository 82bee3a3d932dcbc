package workflow

import (
	"context"
	"testing"
	"time"

	"remindchat/internal/apperr"
	"remindchat/internal/model"
	"remindchat/internal/session"
	"remindchat/internal/store"
)

func seedPending(t *testing.T, st *store.Store, ownerID string) *model.Appointment {
	t.Helper()
	appt, err := st.CreateAppointment(context.Background(), ownerID, store.AppointmentFields{
		Title:       "pending meeting",
		Date:        "2024-04-02",
		Time:        "18:00",
		DueAt:       time.Date(2024, 4, 2, 18, 0, 0, 0, time.UTC),
		LeadMinutes: 30,
		SyncStatus:  model.SyncPending,
	})
	if err != nil {
		t.Fatalf("seed pending: %v", err)
	}
	return appt
}

func TestResyncPendingReconciles(t *testing.T) {
	t.Parallel()
	cal := &fakeCalendar{eventID: "evt_retry"}
	o, st := newTestOrchestrator(t, cal, &fakeExtractor{})
	ctx := context.Background()

	appt := seedPending(t, st, "alice")
	o.tokens.Put("alice", "tok")

	if n := o.ResyncPending(ctx); n != 1 {
		t.Fatalf("reconciled = %d, want 1", n)
	}

	got, err := st.GetAppointment(ctx, "alice", appt.ID)
	if err != nil {
		t.Fatalf("GetAppointment: %v", err)
	}
	if got.CalendarEventID != "evt_retry" || got.SyncStatus != model.SyncSynced {
		t.Fatalf("unexpected sync state: %+v", got)
	}

	// A second run finds nothing pending and never re-creates the event.
	if n := o.ResyncPending(ctx); n != 0 {
		t.Fatalf("second run reconciled %d, want 0", n)
	}
	if cal.calls != 1 {
		t.Fatalf("CreateEvent calls = %d, want 1", cal.calls)
	}
}

func TestResyncPendingSkipsUsersWithoutToken(t *testing.T) {
	t.Parallel()
	cal := &fakeCalendar{}
	o, _ := newTestOrchestrator(t, cal, &fakeExtractor{})

	seedPending(t, storeOf(o), "alice")

	if n := o.ResyncPending(context.Background()); n != 0 {
		t.Fatalf("reconciled = %d, want 0", n)
	}
	if cal.calls != 0 {
		t.Fatalf("CreateEvent called without a token")
	}
}

func TestResyncPendingDropsStaleToken(t *testing.T) {
	t.Parallel()
	cal := &fakeCalendar{createErr: apperr.ErrAuthRequired}
	o, _ := newTestOrchestrator(t, cal, &fakeExtractor{})
	ctx := context.Background()

	seedPending(t, storeOf(o), "alice")
	o.tokens.Put("alice", "stale")

	if n := o.ResyncPending(ctx); n != 0 {
		t.Fatalf("reconciled = %d, want 0", n)
	}
	if _, ok := o.tokens.Get("alice"); ok {
		t.Fatalf("stale token kept in cache")
	}
	if connected := o.CalendarStatus(ctx, session.Session{UserID: "alice"}); connected {
		t.Fatalf("expected disconnected status after stale token")
	}
}

func storeOf(o *Orchestrator) *store.Store { return o.store }
