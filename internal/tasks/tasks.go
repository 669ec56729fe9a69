// Package tasks is the task lifecycle controller: submission, edits,
// comments, and review decisions over the StaffTask state machine.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/notify"
	"github.com/cloudcrave/craveops/internal/seed"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
	"github.com/cloudcrave/craveops/internal/visibility"
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrForbidden     = errors.New("not allowed")
	ErrNotReviewable = errors.New("task is not pending approval")
)

// Decision resolves a task in Pending Approval.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionBlock   Decision = "block"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject || d == DecisionBlock
}

type Controller struct {
	app *state.App
}

func NewController(app *state.App) *Controller {
	return &Controller{app: app}
}

// SubmitInput carries the caller-controlled fields of a new task. Zero
// values fall back to the same defaults the entry form applied.
type SubmitInput struct {
	BrandID        uuid.UUID
	ServiceType    models.ServiceType
	OwnerID        uuid.UUID
	AssignedBy     string
	Title          string
	Description    string
	Category       models.TaskCategory
	Type           models.TaskType
	Frequency      models.Frequency
	Status         models.TaskStatus
	DueDate        string
	EstimatedHours float64
	HoursSpent     float64
}

// List returns the actor's visible tasks with display names resolved from
// the current user collection.
func (tc *Controller) List(actor models.User) []models.StaffTask {
	var out []models.StaffTask
	tc.app.View(func(c *state.Collections) {
		out = visibility.ResolveStaffNames(visibility.Tasks(actor, c.Users, c.Tasks), c.Users)
	})
	return out
}

// Get returns one visible task.
func (tc *Controller) Get(actor models.User, id uuid.UUID) (models.StaffTask, error) {
	var (
		out   models.StaffTask
		found bool
	)
	tc.app.View(func(c *state.Collections) {
		t := c.TaskByID(id)
		if t != nil && visibility.CanSeeTask(actor, c.Users, *t) {
			out = *t
			found = true
		}
	})
	if !found {
		return models.StaffTask{}, ErrNotFound
	}
	return out, nil
}

// Submit creates a task. A non-admin submitting "Completed" is stored as
// "Pending Approval": self-reported completion always requires review.
func (tc *Controller) Submit(ctx context.Context, actor models.User, in SubmitInput) (models.StaffTask, error) {
	task := models.StaffTask{
		ID:              uuid.New(),
		OrgID:           actor.OrgID,
		BrandID:         in.BrandID,
		ServiceType:     in.ServiceType,
		OwnerID:         in.OwnerID,
		AssignedBy:      in.AssignedBy,
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		Type:            in.Type,
		Frequency:       in.Frequency,
		Status:          storedStatus(actor, in.Status),
		DueDate:         in.DueDate,
		EstimatedHours:  in.EstimatedHours,
		HoursSpent:      in.HoursSpent,
		Comments:        []models.TaskComment{},
		ReportingPeriod: seed.ReportingPeriod,
	}
	if task.OwnerID == uuid.Nil {
		task.OwnerID = actor.ID
	}
	if task.AssignedBy == "" {
		task.AssignedBy = actor.Name
	}
	if task.Title == "" {
		task.Title = "Untitled Task"
	}
	if task.ServiceType == "" {
		task.ServiceType = models.ServiceGeneralOps
	}
	if task.Category == "" {
		task.Category = models.CategoryInternalProtocol
	}
	if task.Type == "" {
		task.Type = models.TypeOneTime
	}
	if task.Frequency == "" {
		task.Frequency = models.FrequencyNone
	}

	err := tc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		owner := c.UserByID(task.OwnerID)
		if owner == nil || owner.OrgID != actor.OrgID {
			return nil, fmt.Errorf("%w: unknown task owner", ErrForbidden)
		}
		// Assigning work to someone else is a moderator action, and only
		// within the actor's own scope.
		if owner.ID != actor.ID {
			if !actor.Role.CanReview() {
				return nil, fmt.Errorf("%w: only admins and leads assign tasks to others", ErrForbidden)
			}
			if actor.Role == models.RoleStaffLead && !inScope(actor, *owner) {
				return nil, fmt.Errorf("%w: owner is outside your squad", ErrForbidden)
			}
		}
		task.StaffName = owner.Name
		c.Tasks = append([]models.StaffTask{task}, c.Tasks...)
		return []store.Key{store.KeyTasks}, nil
	})
	if err != nil {
		return models.StaffTask{}, err
	}
	return task, nil
}

func inScope(lead models.User, owner models.User) bool {
	return owner.ID == lead.ID || (owner.MentorID != nil && *owner.MentorID == lead.ID) || owner.MentorID == nil
}

// EditInput holds the optionally updated fields of an existing task. Nil
// means "leave as is".
type EditInput struct {
	BrandID        *uuid.UUID
	ServiceType    *models.ServiceType
	Title          *string
	Description    *string
	Category       *models.TaskCategory
	Type           *models.TaskType
	Frequency      *models.Frequency
	Status         *models.TaskStatus
	DueDate        *string
	ProgressUpdate *string
	EstimatedHours *float64
	HoursSpent     *float64
}

// Edit mutates a visible task. The completion-forcing rule applies to the
// requested status exactly as on submission.
func (tc *Controller) Edit(ctx context.Context, actor models.User, taskID uuid.UUID, in EditInput) (models.StaffTask, error) {
	var out models.StaffTask
	err := tc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		t := c.TaskByID(taskID)
		if t == nil || t.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if !visibility.CanSeeTask(actor, c.Users, *t) {
			return nil, ErrForbidden
		}
		if in.BrandID != nil {
			t.BrandID = *in.BrandID
		}
		if in.ServiceType != nil {
			t.ServiceType = *in.ServiceType
		}
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Category != nil {
			t.Category = *in.Category
		}
		if in.Type != nil {
			t.Type = *in.Type
		}
		if in.Frequency != nil {
			t.Frequency = *in.Frequency
		}
		if in.Status != nil {
			if !in.Status.Valid() {
				return nil, fmt.Errorf("invalid status %q", *in.Status)
			}
			t.Status = storedStatus(actor, *in.Status)
		}
		if in.DueDate != nil {
			t.DueDate = *in.DueDate
		}
		if in.ProgressUpdate != nil {
			t.ProgressUpdate = *in.ProgressUpdate
		}
		if in.EstimatedHours != nil {
			t.EstimatedHours = *in.EstimatedHours
		}
		if in.HoursSpent != nil {
			t.HoursSpent = *in.HoursSpent
		}
		out = *t
		return []store.Key{store.KeyTasks}, nil
	})
	if err != nil {
		return models.StaffTask{}, err
	}
	return out, nil
}

// storedStatus applies the review-gate: non-admins cannot self-complete.
func storedStatus(actor models.User, requested models.TaskStatus) models.TaskStatus {
	if requested == "" {
		return models.StatusNotStarted
	}
	if requested == models.StatusCompleted && actor.Role != models.RoleAdmin {
		return models.StatusPendingApproval
	}
	return requested
}

// AddComment appends to the task's comment thread. Any actor who can see
// the task may comment; name and role are snapshots taken now.
func (tc *Controller) AddComment(ctx context.Context, actor models.User, taskID uuid.UUID, text string) (models.TaskComment, error) {
	comment := models.TaskComment{
		ID:         uuid.New(),
		AuthorName: actor.Name,
		AuthorRole: actor.Role,
		Text:       text,
		Timestamp:  time.Now().UTC(),
	}
	err := tc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		t := c.TaskByID(taskID)
		if t == nil || t.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if !visibility.CanSeeTask(actor, c.Users, *t) {
			return nil, ErrForbidden
		}
		t.Comments = append(t.Comments, comment)
		return []store.Key{store.KeyTasks}, nil
	})
	if err != nil {
		return models.TaskComment{}, err
	}
	return comment, nil
}

// Review resolves a task in Pending Approval. Only admins and leads review,
// and only tasks actually pending; anything else is rejected rather than
// silently rewritten. An optional comment is appended with the "[REVIEW]"
// prefix before the status changes, and the owner is notified of the
// outcome.
func (tc *Controller) Review(ctx context.Context, actor models.User, taskID uuid.UUID, decision Decision, comment string) (models.StaffTask, error) {
	if !decision.Valid() {
		return models.StaffTask{}, fmt.Errorf("unknown review decision %q", decision)
	}
	if !actor.Role.CanReview() {
		return models.StaffTask{}, fmt.Errorf("%w: only admins and leads review tasks", ErrForbidden)
	}

	var out models.StaffTask
	err := tc.app.Update(ctx, func(c *state.Collections) ([]store.Key, error) {
		t := c.TaskByID(taskID)
		if t == nil || t.OrgID != actor.OrgID {
			return nil, ErrNotFound
		}
		if !visibility.CanSeeTask(actor, c.Users, *t) {
			return nil, ErrForbidden
		}
		if t.Status != models.StatusPendingApproval {
			return nil, ErrNotReviewable
		}

		now := time.Now().UTC()
		if comment != "" {
			t.Comments = append(t.Comments, models.TaskComment{
				ID:         uuid.New(),
				AuthorName: actor.Name,
				AuthorRole: actor.Role,
				Text:       "[REVIEW] " + comment,
				Timestamp:  now,
			})
		}

		switch decision {
		case DecisionApprove:
			t.Status = models.StatusCompleted
		case DecisionReject:
			t.Status = models.StatusInProgress
		case DecisionBlock:
			t.Status = models.StatusBlocked
		}

		dirty := []store.Key{store.KeyTasks}
		if t.OwnerID != actor.ID {
			n := notify.New(t.OrgID, t.OwnerID, reviewNotifType(decision), reviewMessage(decision, t.Title), now)
			n.RelatedTaskID = &t.ID
			notify.Push(c, n)
			dirty = append(dirty, store.KeyNotifs)
		}
		out = *t
		return dirty, nil
	})
	if err != nil {
		return models.StaffTask{}, err
	}
	return out, nil
}

func reviewNotifType(d Decision) models.NotificationType {
	switch d {
	case DecisionApprove:
		return models.NotifSuccess
	case DecisionReject:
		return models.NotifWarning
	default:
		return models.NotifAlert
	}
}

func reviewMessage(d Decision, title string) string {
	switch d {
	case DecisionApprove:
		return fmt.Sprintf("Completion approved: %s", title)
	case DecisionReject:
		return fmt.Sprintf("Sent back for rework: %s", title)
	default:
		return fmt.Sprintf("Blocked by reviewer: %s", title)
	}
}
