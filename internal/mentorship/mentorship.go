// Package mentorship manages the lead/mentee link. A claim succeeds only
// while the target is unassigned (first claim wins); admins may reassign
// freely; a lead never poaches another lead's assignee.
package mentorship

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrForbidden      = errors.New("not allowed")
	ErrAlreadyClaimed = errors.New("already assigned to a squad")
	ErrNotClaimable   = errors.New("user cannot be claimed")
)

type Controller struct {
	app *state.App
}

func NewController(app *state.App) *Controller {
	return &Controller{app: app}
}

// Claim assigns the target to the acting lead's squad. Only approved Staff
// Members and Mentees are claimable, and only while unassigned.
func (mc *Controller) Claim(ctx context.Context, actor models.User, targetID uuid.UUID) (models.User, error) {
	if actor.Role != models.RoleStaffLead && actor.Role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("%w: only leads claim squad members", ErrForbidden)
	}
	var out models.User
	err := mc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		u := c.UserByID(targetID)
		if u == nil || u.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if u.Role != models.RoleStaffMember && u.Role != models.RoleMentee {
			return nil, fmt.Errorf("%w: only staff members and mentees join squads", ErrNotClaimable)
		}
		if u.RegistrationStatus != models.RegistrationApproved {
			return nil, fmt.Errorf("%w: pending users cannot be claimed", ErrNotClaimable)
		}
		if u.MentorID != nil {
			return nil, ErrAlreadyClaimed
		}
		mentorID := actor.ID
		u.MentorID = &mentorID
		out = *u
		return []store.Key{store.KeyUsers}, nil
	})
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}

// Assign sets or clears the mentor link. Admins act freely; a lead may only
// touch users who are unassigned or already theirs, and may only assign to
// themself.
func (mc *Controller) Assign(ctx context.Context, actor models.User, targetID uuid.UUID, mentorID *uuid.UUID) (models.User, error) {
	if !actor.Role.CanReview() {
		return models.User{}, fmt.Errorf("%w: only admins and leads manage squad links", ErrForbidden)
	}
	var out models.User
	err := mc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		u := c.UserByID(targetID)
		if u == nil || u.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if u.Role != models.RoleStaffMember && u.Role != models.RoleMentee {
			return nil, fmt.Errorf("%w: only staff members and mentees carry a squad link", ErrNotClaimable)
		}

		if actor.Role == models.RoleStaffLead {
			if u.MentorID != nil && *u.MentorID != actor.ID {
				return nil, fmt.Errorf("%w: assigned to another lead", ErrForbidden)
			}
			if mentorID != nil && *mentorID != actor.ID {
				return nil, fmt.Errorf("%w: leads only assign to themselves", ErrForbidden)
			}
		}

		if mentorID != nil {
			mentor := c.UserByID(*mentorID)
			if mentor == nil || mentor.OrgID != actor.OrgID || !mentor.Role.CanReview() {
				return nil, fmt.Errorf("%w: mentor must be a lead or admin in the same org", ErrNotClaimable)
			}
		}
		u.MentorID = mentorID
		out = *u
		return []store.Key{store.KeyUsers}, nil
	})
	if err != nil {
		return models.User{}, err
	}
	return out, nil
}
