// Package access decides who gets in and what they are: registration,
// login, and user moderation. There are no credentials in this system —
// identity is resolved by email lookup — so every decision here is about
// role and approval, not authentication strength.
package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/notify"
	"github.com/cloudcrave/craveops/internal/seed"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrForbidden       = errors.New("not allowed")
	ErrEmailTaken      = errors.New("email already registered")
	ErrPendingApproval = errors.New("registration pending approval")
	ErrReservedAccount = errors.New("reserved system account")
	ErrValidation      = errors.New("invalid input")
)

type Controller struct {
	app       *state.App
	allowlist map[string]bool
}

func NewController(app *state.App, allowlist map[string]bool) *Controller {
	return &Controller{app: app, allowlist: allowlist}
}

// RegisterResult reports what the decision procedure produced. Pending
// registrants get no session; approved ones become the active identity
// immediately.
type RegisterResult struct {
	User    models.User
	Pending bool
}

// Register applies the access decision procedure:
//
//  1. allow-listed email => elevated trust
//  2. org is always the first seeded organization
//  3. role: Staff Lead if a company name was supplied or allow-listed
//  4. status: approved if allow-listed or Staff Lead, else pending
//  5. pending => warn every moderator in the org (except the registrant)
func (ac *Controller) Register(ctx context.Context, name, email, companyName string) (RegisterResult, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return RegisterResult{}, fmt.Errorf("%w: name and email are required", ErrValidation)
	}

	allowlisted := ac.allowlist[email]
	role := models.RoleStaffMember
	if companyName != "" || allowlisted {
		role = models.RoleStaffLead
	}
	status := models.RegistrationPending
	if allowlisted || role == models.RoleStaffLead {
		status = models.RegistrationApproved
	}

	user := models.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		Role:               role,
		RegistrationStatus: status,
	}

	err := ac.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		org := c.FirstOrg()
		if org == nil {
			return nil, errors.New("no organization seeded")
		}
		user.OrgID = org.ID

		if existing := c.UserByEmail(email); existing != nil && existing.OrgID == org.ID {
			return nil, ErrEmailTaken
		}
		c.Users = append(c.Users, user)

		dirty := []store.Key{store.KeyUsers}
		if status == models.RegistrationPending {
			notify.Moderators(c, org.ID, user.ID, models.NotifWarning,
				fmt.Sprintf("New Access Request: %s", name), &user.ID, time.Now().UTC())
			dirty = append(dirty, store.KeyNotifs)
		}
		return dirty, nil
	})
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{User: user, Pending: status == models.RegistrationPending}, nil
}

// Login resolves an identity by case-insensitive email lookup. A pending
// user exists but gets no session until authorized.
func (ac *Controller) Login(_ context.Context, email string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, fmt.Errorf("%w: email is required", ErrValidation)
	}

	var (
		user  models.User
		found bool
	)
	ac.app.View(func(c *state.Collections) {
		if u := c.UserByEmail(email); u != nil {
			user = *u
			found = true
		}
	})
	if !found {
		return models.User{}, ErrNotFound
	}
	if user.RegistrationStatus != models.RegistrationApproved {
		return models.User{}, ErrPendingApproval
	}
	return user, nil
}

// Lookup fetches a user by id; used by the middleware to re-derive the
// actor on every request so stale tokens can't outlive a role change.
func (ac *Controller) Lookup(id uuid.UUID) (models.User, error) {
	var (
		user  models.User
		found bool
	)
	ac.app.View(func(c *state.Collections) {
		if u := c.UserByID(id); u != nil {
			user = *u
			found = true
		}
	})
	if !found {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// UserUpdates carries the moderation fields. Nil means unchanged.
type UserUpdates struct {
	Role               *models.Role
	RegistrationStatus *models.RegistrationStatus
}

// UpdateUser is the admin moderation intent: role changes and
// authorize/suspend. The reserved system account cannot be suspended.
func (ac *Controller) UpdateUser(ctx context.Context, actor models.User, userID uuid.UUID, updates UserUpdates) (models.User, error) {
	if actor.Role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("%w: only admins moderate users", ErrForbidden)
	}
	var out models.User
	err := ac.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		u := c.UserByID(userID)
		if u == nil || u.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if updates.Role != nil {
			if !updates.Role.Valid() {
				return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *updates.Role)
			}
			u.Role = *updates.Role
		}
		if updates.RegistrationStatus != nil {
			if *updates.RegistrationStatus == models.RegistrationPending && strings.EqualFold(u.Email, seed.ReservedEmail) {
				return nil, ErrReservedAccount
			}
			u.RegistrationStatus = *updates.RegistrationStatus
		}
		out = *u
		return []store.Key{store.KeyUsers}, nil
	})
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}

// DeleteUser removes a user wholesale. Tasks keep their owner id and last
// staff-name snapshot; history is not rewritten.
func (ac *Controller) DeleteUser(ctx context.Context, actor models.User, userID uuid.UUID) error {
	if actor.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins delete users", ErrForbidden)
	}
	return ac.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		for i := range c.Users {
			if c.Users[i].ID != userID || c.Users[i].OrgID != actor.OrgID {
				continue
			}
			if strings.EqualFold(c.Users[i].Email, seed.ReservedEmail) {
				return nil, ErrReservedAccount
			}
			c.Users = append(c.Users[:i], c.Users[i+1:]...)
			return []store.Key{store.KeyUsers}, nil
		}
		return nil, ErrNotFound
	})
}
