package access

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

func newTestController(t *testing.T, allowlist map[string]bool) (*Controller, *state.App) {
	t.Helper()
	app, err := state.Load(context.Background(), store.NewMemorySnapshots(), zap.NewNop())
	if err != nil {
		t.Fatalf("load app: %v", err)
	}
	return NewController(app, allowlist), app
}

func TestRegisterAllowlistedEmailIsApprovedLead(t *testing.T) {
	ac, _ := newTestController(t, map[string]bool{"new.lead@cloudcraves.com": true})

	res, err := ac.Register(context.Background(), "New Lead", "New.Lead@cloudcraves.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.Pending {
		t.Fatal("allow-listed registrant should not be pending")
	}
	if res.User.Role != models.RoleStaffLead {
		t.Fatalf("role = %q, want %q", res.User.Role, models.RoleStaffLead)
	}
	if res.User.RegistrationStatus != models.RegistrationApproved {
		t.Fatalf("status = %q, want approved", res.User.RegistrationStatus)
	}
	if res.User.Email != "new.lead@cloudcraves.com" {
		t.Fatalf("email not lowercased: %q", res.User.Email)
	}
}

func TestRegisterWithCompanyNameBecomesLead(t *testing.T) {
	ac, _ := newTestController(t, map[string]bool{})

	res, err := ac.Register(context.Background(), "Agency Owner", "owner@example.com", "Example Agency")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.Role != models.RoleStaffLead || res.Pending {
		t.Fatalf("company registrant = %q pending=%v, want approved lead", res.User.Role, res.Pending)
	}
}

func TestRegisterUnknownEmailIsPendingAndWarnsModerators(t *testing.T) {
	ac, app := newTestController(t, map[string]bool{})

	res, err := ac.Register(context.Background(), "Walk In", "walkin@example.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !res.Pending {
		t.Fatal("unknown registrant should be pending")
	}
	if res.User.Role != models.RoleStaffMember {
		t.Fatalf("role = %q, want %q", res.User.Role, models.RoleStaffMember)
	}

	app.View(func(c *state.Collections) {
		moderators := 0
		for _, u := range c.Users {
			if u.OrgID == res.User.OrgID && u.Role.CanReview() {
				moderators++
			}
		}
		notified := 0
		for _, n := range c.Notifs {
			if n.Type != models.NotifWarning {
				continue
			}
			if n.UserID == res.User.ID {
				t.Fatal("registrant must not be notified about their own request")
			}
			if n.RelatedUserID == nil || *n.RelatedUserID != res.User.ID {
				t.Fatalf("notification not linked to registrant: %+v", n)
			}
			notified++
		}
		if notified != moderators {
			t.Fatalf("notified %d moderators, want %d", notified, moderators)
		}
	})
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ac, _ := newTestController(t, map[string]bool{})

	_, err := ac.Register(context.Background(), "Impostor", "AJ@gmail.com", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRequiresNameAndEmail(t *testing.T) {
	ac, _ := newTestController(t, map[string]bool{})

	if _, err := ac.Register(context.Background(), "", "x@example.com", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if _, err := ac.Register(context.Background(), "No Email", "  ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestLoginIsCaseInsensitive(t *testing.T) {
	ac, _ := newTestController(t, map[string]bool{})

	user, err := ac.Login(context.Background(), "AJ@GMAIL.COM")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "aj@gmail.com" {
		t.Fatalf("resolved wrong identity: %q", user.Email)
	}
}

func TestLoginRejectsPendingUsers(t *testing.T) {
	ctx := context.Background()
	ac, _ := newTestController(t, map[string]bool{})

	if _, err := ac.Register(ctx, "Walk In", "walkin@example.com", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := ac.Login(ctx, "walkin@example.com"); !errors.Is(err, ErrPendingApproval) {
		t.Fatalf("err = %v, want ErrPendingApproval", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	ac, _ := newTestController(t, map[string]bool{})

	if _, err := ac.Login(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserAuthorizesPendingRegistrant(t *testing.T) {
	ctx := context.Background()
	ac, _ := newTestController(t, map[string]bool{})

	admin, err := ac.Login(ctx, seed.ReservedEmail)
	if err != nil {
		t.Fatalf("login admin: %v", err)
	}
	res, err := ac.Register(ctx, "Walk In", "walkin@example.com", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	approved := models.RegistrationApproved
	updated, err := ac.UpdateUser(ctx, admin, res.User.ID, UserUpdates{RegistrationStatus: &approved})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.RegistrationStatus != models.RegistrationApproved {
		t.Fatalf("status = %q, want approved", updated.RegistrationStatus)
	}

	if _, err := ac.Login(ctx, "walkin@example.com"); err != nil {
		t.Fatalf("authorized user cannot log in: %v", err)
	}
}

func TestUpdateUserRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	ac, _ := newTestController(t, map[string]bool{})

	lead, err := ac.Login(ctx, "ademuyiwa.ogunnowo@cloudcraves.com")
	if err != nil {
		t.Fatalf("login lead: %v", err)
	}

	role := models.RoleAdmin
	if _, err := ac.UpdateUser(ctx, lead, seed.UserAJ, UserUpdates{Role: &role}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestReservedAccountCannotBeSuspended(t *testing.T) {
	ctx := context.Background()
	ac, _ := newTestController(t, map[string]bool{})

	admin, err := ac.Login(ctx, seed.ReservedEmail)
	if err != nil {
		t.Fatalf("login admin: %v", err)
	}

	pending := models.RegistrationPending
	if _, err := ac.UpdateUser(ctx, admin, seed.UserRoot, UserUpdates{RegistrationStatus: &pending}); !errors.Is(err, ErrReservedAccount) {
		t.Fatalf("err = %v, want ErrReservedAccount", err)
	}
}

func TestReservedAccountCannotBeDeleted(t *testing.T) {
	ctx := context.Background()
	ac, app := newTestController(t, map[string]bool{})

	admin, err := ac.Login(ctx, seed.ReservedEmail)
	if err != nil {
		t.Fatalf("login admin: %v", err)
	}

	if err := ac.DeleteUser(ctx, admin, seed.UserRoot); !errors.Is(err, ErrReservedAccount) {
		t.Fatalf("err = %v, want ErrReservedAccount", err)
	}

	if err := ac.DeleteUser(ctx, admin, seed.UserAJ); err != nil {
		t.Fatalf("delete ordinary user: %v", err)
	}
	app.View(func(c *state.Collections) {
		if c.UserByID(seed.UserAJ) != nil {
			t.Fatal("deleted user still present")
		}
	})
}
