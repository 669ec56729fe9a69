package brands

import (
	"context"
	"errors"
	"testing"

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

func actor(t *testing.T, app *state.App, email string) models.User {
	t.Helper()
	var out models.User
	found := false
	app.View(func(c *state.Collections) {
		if u := c.UserByEmail(email); u != nil {
			out = *u
			found = true
		}
	})
	if !found {
		t.Fatalf("no seeded user %s", email)
	}
	return out
}

func TestCreateByLeadSelfAssigns(t *testing.T) {
	bc, app := newTestController(t)
	lead := actor(t, app, "ademuyiwa.ogunnowo@cloudcraves.com")

	brand, err := bc.Create(context.Background(), lead, Input{Name: "New Client"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if brand.LeadID == nil || *brand.LeadID != lead.ID {
		t.Fatalf("lead = %v, want the creating lead", brand.LeadID)
	}
}

func TestCreateRequiresModeratorAndName(t *testing.T) {
	bc, app := newTestController(t)
	member := actor(t, app, "aj@gmail.com")
	admin := actor(t, app, seed.ReservedEmail)

	if _, err := bc.Create(context.Background(), member, Input{Name: "Nope"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := bc.Create(context.Background(), admin, Input{Name: "   "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateLeadOnlyTouchesOwnBrands(t *testing.T) {
	bc, app := newTestController(t)
	// Sheedah Fabrics is led by Adeola, not Ademuyiwa.
	lead := actor(t, app, "ademuyiwa.ogunnowo@cloudcraves.com")

	var foreign models.Brand
	app.View(func(c *state.Collections) {
		for _, b := range c.Brands {
			if b.Name == "Sheedah Fabrics" {
				foreign = b
			}
		}
	})

	_, err := bc.Update(context.Background(), lead, foreign.ID, Input{Name: "Hijacked"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestUpdateLeadReassignmentIsAdminOnly(t *testing.T) {
	ctx := context.Background()
	bc, app := newTestController(t)
	lead := actor(t, app, "ademuyiwa.ogunnowo@cloudcraves.com")
	admin := actor(t, app, seed.ReservedEmail)
	other := actor(t, app, "adeola.lois@cloudcraves.com")

	otherID := other.ID
	if _, err := bc.Update(ctx, lead, seed.BrandCloudCrave, Input{LeadID: &otherID}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	updated, err := bc.Update(ctx, admin, seed.BrandCloudCrave, Input{LeadID: &otherID})
	if err != nil {
		t.Fatalf("admin reassign: %v", err)
	}
	if updated.LeadID == nil || *updated.LeadID != other.ID {
		t.Fatalf("lead = %v, want the new lead", updated.LeadID)
	}
}

func TestListScopesByRole(t *testing.T) {
	bc, app := newTestController(t)
	admin := actor(t, app, seed.ReservedEmail)
	lead := actor(t, app, "ademuyiwa.ogunnowo@cloudcraves.com")

	all := bc.List(admin)
	mine := bc.List(lead)
	if len(mine) == 0 || len(mine) >= len(all) {
		t.Fatalf("lead sees %d of %d brands, want a strict subset", len(mine), len(all))
	}
	for _, b := range mine {
		if b.LeadID == nil || *b.LeadID != lead.ID {
			t.Fatalf("lead listed a brand they do not lead: %q", b.Name)
		}
	}
}
