// Package state owns the in-memory entity collections and mirrors them
// through the snapshot boundary on every mutation. All writes funnel
// through App.Update so a controller intent either runs entirely or not
// at all against the in-memory state.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/seed"
	"github.com/cloudcrave/craveops/internal/store"
)

// Collections is the full entity set for the deployment. Organizations are
// immutable after seed; everything else mutates through controller intents.
type Collections struct {
	Orgs      []models.Organization
	Users     []models.User
	Brands    []models.Brand
	Tasks     []models.StaffTask
	Calendars []models.ContentCalendar
	Notifs    []models.Notification
}

// App is the coordinator. One mutex serializes all access: the workload is
// a handful of dashboard operators, not a message firehose, and intents
// need single-logical-actor semantics.
type App struct {
	mu     sync.Mutex
	snaps  store.Snapshots
	logger *zap.Logger
	cols   Collections
}

// Load builds the App from the snapshot store, falling back to seed data
// for collections that have never been written (and to empty collections
// for calendars and notifications, which have no seed).
func Load(ctx context.Context, snaps store.Snapshots, logger *zap.Logger) (*App, error) {
	a := &App{snaps: snaps, logger: logger}

	if err := loadInto(ctx, snaps, store.KeyOrgs, &a.cols.Orgs, seed.Organizations); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, snaps, store.KeyUsers, &a.cols.Users, seed.Users); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, snaps, store.KeyBrands, &a.cols.Brands, seed.Brands); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, snaps, store.KeyTasks, &a.cols.Tasks, seed.Tasks); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, snaps, store.KeyCalendars, &a.cols.Calendars, func() []models.ContentCalendar { return []models.ContentCalendar{} }); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, snaps, store.KeyNotifs, &a.cols.Notifs, func() []models.Notification { return []models.Notification{} }); err != nil {
		return nil, err
	}

	logger.Info("entity store loaded",
		zap.Int("users", len(a.cols.Users)),
		zap.Int("brands", len(a.cols.Brands)),
		zap.Int("tasks", len(a.cols.Tasks)),
	)
	return a, nil
}

func loadInto[T any](ctx context.Context, snaps store.Snapshots, key store.Key, dst *[]T, fallback func() []T) error {
	blob, ok, err := snaps.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		*dst = fallback()
		return nil
	}
	if err := json.Unmarshal(blob, dst); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", key, err)
	}
	return nil
}

// View runs fn with read access to the collections. fn must not retain or
// mutate anything it is handed; copy out what you need.
func (a *App) View(fn func(c *Collections)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fn(&a.cols)
}

// Update runs a mutation intent and mirrors every dirty collection back
// through the snapshot boundary. When a save fails the in-memory state
// keeps the mutation and the error is surfaced to the caller: the durable
// copy is stale, not silently assumed current. Saves of distinct keys are
// not atomic with respect to each other.
func (a *App) Update(ctx context.Context, fn func(c *Collections) ([]store.Key, error)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	dirty, err := fn(&a.cols)
	if err != nil {
		return err
	}

	for _, key := range dirty {
		blob, err := a.cols.marshal(key)
		if err != nil {
			return fmt.Errorf("encode %s snapshot: %w", key, err)
		}
		if err := a.snaps.Save(ctx, key, blob); err != nil {
			a.logger.Error("snapshot save failed", zap.String("key", string(key)), zap.Error(err))
			return fmt.Errorf("persist %s: %w", key, err)
		}
	}
	return nil
}

func (c *Collections) marshal(key store.Key) ([]byte, error) {
	switch key {
	case store.KeyOrgs:
		return json.Marshal(c.Orgs)
	case store.KeyUsers:
		return json.Marshal(c.Users)
	case store.KeyBrands:
		return json.Marshal(c.Brands)
	case store.KeyTasks:
		return json.Marshal(c.Tasks)
	case store.KeyCalendars:
		return json.Marshal(c.Calendars)
	case store.KeyNotifs:
		return json.Marshal(c.Notifs)
	}
	return nil, fmt.Errorf("unknown snapshot key %q", key)
}

// UserByID returns a pointer into the collection, or nil.
func (c *Collections) UserByID(id uuid.UUID) *models.User {
	for i := range c.Users {
		if c.Users[i].ID == id {
			return &c.Users[i]
		}
	}
	return nil
}

// UserByEmail does a case-insensitive lookup across the whole collection.
func (c *Collections) UserByEmail(email string) *models.User {
	for i := range c.Users {
		if strings.EqualFold(c.Users[i].Email, email) {
			return &c.Users[i]
		}
	}
	return nil
}

func (c *Collections) TaskByID(id uuid.UUID) *models.StaffTask {
	for i := range c.Tasks {
		if c.Tasks[i].ID == id {
			return &c.Tasks[i]
		}
	}
	return nil
}

func (c *Collections) BrandByID(id uuid.UUID) *models.Brand {
	for i := range c.Brands {
		if c.Brands[i].ID == id {
			return &c.Brands[i]
		}
	}
	return nil
}

func (c *Collections) CalendarByID(id uuid.UUID) *models.ContentCalendar {
	for i := range c.Calendars {
		if c.Calendars[i].ID == id {
			return &c.Calendars[i]
		}
	}
	return nil
}

// FirstOrg returns the first seeded organization; registration assigns all
// new identities there.
func (c *Collections) FirstOrg() *models.Organization {
	if len(c.Orgs) == 0 {
		return nil
	}
	return &c.Orgs[0]
}
