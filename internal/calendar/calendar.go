// Package calendar manages per-brand content calendars and the AI-assisted
// entry suggestions. Suggestions only fill blank fields; user-entered
// content is never replaced without an explicit overwrite.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/genai"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
	"github.com/cloudcrave/craveops/internal/visibility"
)

var (
	ErrNotFound   = errors.New("calendar not found")
	ErrForbidden  = errors.New("not allowed")
	ErrValidation = errors.New("invalid input")
)

// Suggester is the seam to the content-idea service; tests plug in a fake.
type Suggester interface {
	SuggestContent(ctx context.Context, in genai.SuggestionInput) (*genai.ContentSuggestion, error)
}

type Controller struct {
	app       *state.App
	suggester Suggester
}

func NewController(app *state.App, suggester Suggester) *Controller {
	return &Controller{app: app, suggester: suggester}
}

// List returns the calendars of brands the actor can see, optionally
// narrowed to one brand.
func (cc *Controller) List(actor models.User, brandID *uuid.UUID) []models.ContentCalendar {
	out := make([]models.ContentCalendar, 0)
	cc.app.View(func(c *state.Collections) {
		visible := make(map[uuid.UUID]bool)
		for _, b := range visibility.Brands(actor, c.Brands, c.Tasks) {
			visible[b.ID] = true
		}
		for _, cal := range c.Calendars {
			if cal.OrgID != actor.OrgID || !visible[cal.BrandID] {
				continue
			}
			if brandID != nil && cal.BrandID != *brandID {
				continue
			}
			out = append(out, cal)
		}
	})
	return out
}

// Create starts a new calendar for a visible brand. Moderator action.
func (cc *Controller) Create(ctx context.Context, actor models.User, brandID uuid.UUID, name string) (models.ContentCalendar, error) {
	if !actor.Role.CanReview() {
		return models.ContentCalendar{}, fmt.Errorf("%w: only admins and leads manage calendars", ErrForbidden)
	}
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Strategy - %s", time.Now().Format("Jan 2006"))
	}
	cal := models.ContentCalendar{
		ID:        uuid.New(),
		OrgID:     actor.OrgID,
		BrandID:   brandID,
		Name:      name,
		Entries:   []models.CalendarEntry{},
		CreatedAt: time.Now().UTC(),
	}
	err := cc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		b := c.BrandByID(brandID)
		if b == nil || b.OrgID != actor.OrgID {
			return nil, fmt.Errorf("%w: unknown brand", ErrValidation)
		}
		c.Calendars = append(c.Calendars, cal)
		return []store.Key{store.KeyCalendars}, nil
	})
	if err != nil {
		return models.ContentCalendar{}, err
	}
	return cal, nil
}

// Save replaces a calendar's name and entries wholesale; the editor works
// on a copy and saves the result.
func (cc *Controller) Save(ctx context.Context, actor models.User, calID uuid.UUID, name string, entries []models.CalendarEntry) (models.ContentCalendar, error) {
	if !actor.Role.CanReview() {
		return models.ContentCalendar{}, fmt.Errorf("%w: only admins and leads manage calendars", ErrForbidden)
	}
	var out models.ContentCalendar
	err := cc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		cal := c.CalendarByID(calID)
		if cal == nil || cal.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if name != "" {
			cal.Name = name
		}
		if entries != nil {
			for i := range entries {
				if entries[i].ID == uuid.Nil {
					entries[i].ID = uuid.New()
				}
			}
			cal.Entries = entries
		}
		out = *cal
		return []store.Key{store.KeyCalendars}, nil
	})
	if err != nil {
		return models.ContentCalendar{}, err
	}
	return out, nil
}

// Suggest asks the idea service for a content suggestion and merges it into
// the entry: blank fields are filled, non-blank fields are kept unless
// overwrite is set. A failed call mutates nothing.
func (cc *Controller) Suggest(ctx context.Context, actor models.User, calID, entryID uuid.UUID, overwrite bool) (models.CalendarEntry, error) {
	if !actor.Role.CanReview() {
		return models.CalendarEntry{}, fmt.Errorf("%w: only admins and leads request suggestions", ErrForbidden)
	}

	// Snapshot the entry and brand name first; the external call runs
	// outside the state lock.
	var (
		entry     models.CalendarEntry
		brandName string
		found     bool
	)
	cc.app.View(func(c *state.Collections) {
		cal := c.CalendarByID(calID)
		if cal == nil || cal.OrgID != actor.OrgID {
			return
		}
		for _, e := range cal.Entries {
			if e.ID == entryID {
				entry = e
				found = true
				break
			}
		}
		if b := c.BrandByID(cal.BrandID); b != nil {
			brandName = b.Name
		}
	})
	if !found {
		return models.CalendarEntry{}, ErrNotFound
	}

	suggestion, err := cc.suggester.SuggestContent(ctx, genai.SuggestionInput{
		Platforms:   entry.Platforms,
		ContentType: entry.ContentType,
		BrandName:   brandName,
		Topic:       entry.Topic,
	})
	if err != nil {
		return models.CalendarEntry{}, err
	}

	var out models.CalendarEntry
	err = cc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		cal := c.CalendarByID(calID)
		if cal == nil {
			return nil, ErrNotFound
		}
		for i := range cal.Entries {
			if cal.Entries[i].ID != entryID {
				continue
			}
			e := &cal.Entries[i]
			e.Topic = merge(e.Topic, suggestion.Topic, overwrite)
			e.Caption = merge(e.Caption, suggestion.Caption, overwrite)
			e.VisualRef = merge(e.VisualRef, suggestion.VisualInstructions, overwrite)
			out = *e
			return []store.Key{store.KeyCalendars}, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return models.CalendarEntry{}, err
	}
	return out, nil
}

// merge prefers the existing value unless it is blank or the caller asked
// to overwrite; an empty suggestion never clobbers anything.
func merge(existing, suggested string, overwrite bool) string {
	if suggested == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" || overwrite {
		return suggested
	}
	return existing
}
