package mentorship

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/seed"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
)

func newTestController(t *testing.T) (*Controller, *state.App) {
	t.Helper()
	app, err := state.Load(context.Background(), store.NewMemorySnapshots(), zap.NewNop())
	if err != nil {
		t.Fatalf("load app: %v", err)
	}
	return NewController(app), app
}

func seededUser(t *testing.T, app *state.App, id uuid.UUID) models.User {
	t.Helper()
	var out models.User
	found := false
	app.View(func(c *state.Collections) {
		if u := c.UserByID(id); u != nil {
			out = *u
			found = true
		}
	})
	if !found {
		t.Fatalf("seeded user %s missing", id)
	}
	return out
}

func TestFirstClaimWins(t *testing.T) {
	ctx := context.Background()
	mc, app := newTestController(t)
	lead := seededUser(t, app, seed.UserAdemuyiwa)
	rival := seededUser(t, app, seed.UserAdeola)

	claimed, err := mc.Claim(ctx, lead, seed.UserAJ)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.MentorID == nil || *claimed.MentorID != lead.ID {
		t.Fatalf("mentor = %v, want the claiming lead", claimed.MentorID)
	}

	if _, err := mc.Claim(ctx, rival, seed.UserAJ); !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("err = %v, want ErrAlreadyClaimed", err)
	}

	// The losing claim changed nothing.
	app.View(func(c *state.Collections) {
		u := c.UserByID(seed.UserAJ)
		if u.MentorID == nil || *u.MentorID != lead.ID {
			t.Fatalf("mentor = %v after failed claim, want the first lead", u.MentorID)
		}
	})
}

func TestClaimRequiresLeadOrAdmin(t *testing.T) {
	mc, app := newTestController(t)
	member := seededUser(t, app, seed.UserBlessing)

	if _, err := mc.Claim(context.Background(), member, seed.UserAJ); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestClaimOnlyTargetsStaffAndMentees(t *testing.T) {
	mc, app := newTestController(t)
	lead := seededUser(t, app, seed.UserAdemuyiwa)

	if _, err := mc.Claim(context.Background(), lead, seed.UserAdeola); !errors.Is(err, ErrNotClaimable) {
		t.Fatalf("claiming another lead: err = %v, want ErrNotClaimable", err)
	}
}

func TestLeadCannotPoachViaAssign(t *testing.T) {
	ctx := context.Background()
	mc, app := newTestController(t)
	lead := seededUser(t, app, seed.UserAdemuyiwa)
	rival := seededUser(t, app, seed.UserAdeola)

	if _, err := mc.Claim(ctx, lead, seed.UserAJ); err != nil {
		t.Fatalf("claim: %v", err)
	}

	rivalID := rival.ID
	if _, err := mc.Assign(ctx, rival, seed.UserAJ, &rivalID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestLeadOnlyAssignsToThemself(t *testing.T) {
	mc, app := newTestController(t)
	lead := seededUser(t, app, seed.UserAdemuyiwa)
	other := seededUser(t, app, seed.UserAdeola)

	otherID := other.ID
	if _, err := mc.Assign(context.Background(), lead, seed.UserAJ, &otherID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestAdminReassignsFreely(t *testing.T) {
	ctx := context.Background()
	mc, app := newTestController(t)
	admin := seededUser(t, app, seed.UserRoot)
	lead := seededUser(t, app, seed.UserAdemuyiwa)
	rival := seededUser(t, app, seed.UserAdeola)

	if _, err := mc.Claim(ctx, lead, seed.UserAJ); err != nil {
		t.Fatalf("claim: %v", err)
	}

	rivalID := rival.ID
	moved, err := mc.Assign(ctx, admin, seed.UserAJ, &rivalID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if moved.MentorID == nil || *moved.MentorID != rival.ID {
		t.Fatalf("mentor = %v, want the new lead", moved.MentorID)
	}

	// And back to the unassigned pool.
	cleared, err := mc.Assign(ctx, admin, seed.UserAJ, nil)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared.MentorID != nil {
		t.Fatalf("mentor = %v, want nil", cleared.MentorID)
	}
}

func TestAssignValidatesMentor(t *testing.T) {
	mc, app := newTestController(t)
	admin := seededUser(t, app, seed.UserRoot)

	memberID := seed.UserBlessing
	if _, err := mc.Assign(context.Background(), admin, seed.UserAJ, &memberID); !errors.Is(err, ErrNotClaimable) {
		t.Fatalf("assigning to a non-lead mentor: err = %v, want ErrNotClaimable", err)
	}
}
