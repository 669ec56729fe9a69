// Package brands manages the client accounts an organization operates
// for. Brands are created and edited by moderators and never deleted.
package brands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
	"github.com/cloudcrave/craveops/internal/visibility"
)

var (
	ErrNotFound   = errors.New("brand not found")
	ErrForbidden  = errors.New("not allowed")
	ErrValidation = errors.New("invalid input")
)

type Controller struct {
	app *state.App
}

func NewController(app *state.App) *Controller {
	return &Controller{app: app}
}

// List returns the actor's visible brands.
func (bc *Controller) List(actor models.User) []models.Brand {
	var out []models.Brand
	bc.app.View(func(c *state.Collections) {
		out = visibility.Brands(actor, c.Brands, c.Tasks)
	})
	return out
}

type Input struct {
	Name     string
	Services []models.ServiceType
	LeadID   *uuid.UUID
}

// Create adds a brand to the actor's organization. A lead creating a brand
// becomes its lead unless another lead is named by an admin.
func (bc *Controller) Create(ctx context.Context, actor models.User, in Input) (models.Brand, error) {
	if !actor.Role.CanReview() {
		return models.Brand{}, fmt.Errorf("%w: only admins and leads manage brands", ErrForbidden)
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return models.Brand{}, fmt.Errorf("%w: brand name is required", ErrValidation)
	}

	brand := models.Brand{
		ID:       uuid.New(),
		OrgID:    actor.OrgID,
		Name:     in.Name,
		Services: in.Services,
		LeadID:   in.LeadID,
	}
	if brand.Services == nil {
		brand.Services = []models.ServiceType{}
	}
	if actor.Role == models.RoleStaffLead {
		leadID := actor.ID
		brand.LeadID = &leadID
	}

	err := bc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		c.Brands = append(c.Brands, brand)
		return []store.Key{store.KeyBrands}, nil
	})
	if err != nil {
		return models.Brand{}, err
	}
	return brand, nil
}

// Update edits a brand's name, services, or lead. Leads may only edit
// brands they lead; reassigning the lead is an admin action.
func (bc *Controller) Update(ctx context.Context, actor models.User, brandID uuid.UUID, in Input) (models.Brand, error) {
	if !actor.Role.CanReview() {
		return models.Brand{}, fmt.Errorf("%w: only admins and leads manage brands", ErrForbidden)
	}
	var out models.Brand
	err := bc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		b := c.BrandByID(brandID)
		if b == nil || b.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if actor.Role == models.RoleStaffLead && (b.LeadID == nil || *b.LeadID != actor.ID) {
			return nil, fmt.Errorf("%w: not your brand", ErrForbidden)
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			b.Name = name
		}
		if in.Services != nil {
			b.Services = in.Services
		}
		if in.LeadID != nil {
			if actor.Role != models.RoleAdmin {
				return nil, fmt.Errorf("%w: only admins reassign brand leads", ErrForbidden)
			}
			b.LeadID = in.LeadID
		}
		out = *b
		return []store.Key{store.KeyBrands}, nil
	})
	if err != nil {
		return models.Brand{}, err
	}
	return out, nil
}
