// Package notify creates and serves in-app notifications. Creation helpers
// operate on the collections directly so controllers can emit notifications
// inside the same Update intent that triggered them.
package notify

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
)

var ErrNotFound = errors.New("notification not found")

// Push prepends a notification for one user. Newest first, like the panel
// renders them.
func Push(c *state.Collections, n models.Notification) {
	c.Notifs = append([]models.Notification{n}, c.Notifs...)
}

// New builds a notification addressed to userID.
func New(orgID, userID uuid.UUID, typ models.NotificationType, message string, now time.Time) models.Notification {
	return models.Notification{
		ID:        uuid.New(),
		OrgID:     orgID,
		UserID:    userID,
		Type:      typ,
		Message:   message,
		Timestamp: now,
	}
}

// Moderators pushes one notification to every Admin and Staff Lead in the
// org, excluding exceptID — an actor is never notified about their own
// action, and a registrant cannot be their own approver.
func Moderators(c *state.Collections, orgID, exceptID uuid.UUID, typ models.NotificationType, message string, relatedUserID *uuid.UUID, now time.Time) {
	for _, u := range c.Users {
		if u.OrgID != orgID || !u.Role.CanReview() || u.ID == exceptID {
			continue
		}
		n := New(orgID, u.ID, typ, message, now)
		n.RelatedUserID = relatedUserID
		Push(c, n)
	}
}

// Service exposes the read/toggle operations.
type Service struct {
	app *state.App
}

func NewService(app *state.App) *Service {
	return &Service{app: app}
}

// List returns the actor's own notifications, newest first.
func (s *Service) List(actor models.User) []models.Notification {
	out := make([]models.Notification, 0)
	s.app.View(func(c *state.Collections) {
		for _, n := range c.Notifs {
			if n.OrgID == actor.OrgID && n.UserID == actor.ID {
				out = append(out, n)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// MarkRead flags a single notification. Only the addressee can toggle it.
func (s *Service) MarkRead(ctx context.Context, actor models.User, id uuid.UUID) error {
	return s.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		for i := range c.Notifs {
			if c.Notifs[i].ID == id && c.Notifs[i].UserID == actor.ID && c.Notifs[i].OrgID == actor.OrgID {
				c.Notifs[i].Read = true
				return []store.Key{store.KeyNotifs}, nil
			}
		}
		return nil, ErrNotFound
	})
}

// MarkAllRead flags every unread notification addressed to the actor.
func (s *Service) MarkAllRead(ctx context.Context, actor models.User) error {
	return s.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		touched := false
		for i := range c.Notifs {
			if c.Notifs[i].UserID == actor.ID && c.Notifs[i].OrgID == actor.OrgID && !c.Notifs[i].Read {
				c.Notifs[i].Read = true
				touched = true
			}
		}
		if !touched {
			return nil, nil
		}
		return []store.Key{store.KeyNotifs}, nil
	})
}
