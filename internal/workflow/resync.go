package workflow

import (
	"context"
	"errors"

	"remindchat/internal/apperr"
)

// ResyncPending retries calendar event creation for appointments saved with
// a pending sync status. Only users with a cached provider token are
// eligible; the rest are picked up on their next authenticated action.
// Returns the number of appointments successfully reconciled.
func (o *Orchestrator) ResyncPending(ctx context.Context) int {
	pending, err := o.store.PendingSync(ctx)
	if err != nil {
		o.logger.Printf("workflow: resync: %v", err)
		return 0
	}

	reconciled := 0
	for i := range pending {
		appt := &pending[i]
		if appt.Synced() {
			// Check-then-act guard: never create a second event.
			continue
		}

		token, ok := o.tokens.Get(appt.UserID)
		if !ok {
			continue
		}

		eventID, err := o.cal.CreateEvent(ctx, token, appt)
		if errors.Is(err, apperr.ErrAuthRequired) {
			// The cached token went stale; drop it and wait for the next sign-in.
			o.tokens.Drop(appt.UserID)
			o.status.Invalidate(appt.UserID)
			continue
		}
		if err != nil {
			o.logger.Printf("workflow: resync appointment %s: %v", appt.ID, err)
			continue
		}

		if err := o.store.MarkSynced(ctx, appt.UserID, appt.ID, eventID); err != nil {
			o.logger.Printf("workflow: resync mark synced %s: %v", appt.ID, err)
			continue
		}
		reconciled++
	}
	return reconciled
}
