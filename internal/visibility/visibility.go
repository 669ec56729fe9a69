// Package visibility derives the subset of entities an actor may read.
// Every function is pure over (actor, collections) and is re-derived on
// each request: roles, mentor links, and ownership all change between
// reads, so there is deliberately no caching layer.
package visibility

import (
	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
)

// Users returns the users the actor may see, always scoped to the actor's
// organization first.
//
//   - Admin: everyone in the org.
//   - Staff Lead: themself, their mentees, and the unclaimed pool (users
//     with no mentor yet) — leads need to see who they can recruit.
//   - Staff Member / Mentee: only themself.
func Users(actor models.User, users []models.User) []models.User {
	out := make([]models.User, 0)
	for _, u := range users {
		if u.OrgID != actor.OrgID {
			continue
		}
		switch actor.Role {
		case models.RoleAdmin:
			out = append(out, u)
		case models.RoleStaffLead:
			if u.ID == actor.ID || (u.MentorID != nil && *u.MentorID == actor.ID) || u.MentorID == nil {
				out = append(out, u)
			}
		default:
			if u.ID == actor.ID {
				out = append(out, u)
			}
		}
	}
	return out
}

// teamIDs is the set of owners whose tasks a lead may see: the lead and
// their claimed mentees. The unclaimed pool is visible as *users* (for
// recruiting) but their tasks are not — a lead only reviews their own
// squad's work.
func teamIDs(actor models.User, users []models.User) map[uuid.UUID]bool {
	team := map[uuid.UUID]bool{actor.ID: true}
	for _, u := range users {
		if u.OrgID == actor.OrgID && u.MentorID != nil && *u.MentorID == actor.ID {
			team[u.ID] = true
		}
	}
	return team
}

// Tasks returns the tasks the actor may see. Ownership is matched by owner
// id; the denormalized staff name is display-only.
func Tasks(actor models.User, users []models.User, tasks []models.StaffTask) []models.StaffTask {
	out := make([]models.StaffTask, 0)

	var team map[uuid.UUID]bool
	if actor.Role == models.RoleStaffLead {
		team = teamIDs(actor, users)
	}

	for _, t := range tasks {
		if t.OrgID != actor.OrgID {
			continue
		}
		switch actor.Role {
		case models.RoleAdmin:
			out = append(out, t)
		case models.RoleStaffLead:
			if team[t.OwnerID] {
				out = append(out, t)
			}
		default:
			if t.OwnerID == actor.ID {
				out = append(out, t)
			}
		}
	}
	return out
}

// Brands returns the brands the actor may see.
//
//   - Admin: all org brands.
//   - Staff Lead: brands they lead.
//   - Staff Member / Mentee: brands referenced by at least one of their
//     own tasks.
func Brands(actor models.User, brands []models.Brand, tasks []models.StaffTask) []models.Brand {
	out := make([]models.Brand, 0)

	var myBrandIDs map[uuid.UUID]bool
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleStaffLead {
		myBrandIDs = make(map[uuid.UUID]bool)
		for _, t := range tasks {
			if t.OrgID == actor.OrgID && t.OwnerID == actor.ID {
				myBrandIDs[t.BrandID] = true
			}
		}
	}

	for _, b := range brands {
		if b.OrgID != actor.OrgID {
			continue
		}
		switch actor.Role {
		case models.RoleAdmin:
			out = append(out, b)
		case models.RoleStaffLead:
			if b.LeadID != nil && *b.LeadID == actor.ID {
				out = append(out, b)
			}
		default:
			if myBrandIDs[b.ID] {
				out = append(out, b)
			}
		}
	}
	return out
}

// CanSeeTask reports whether the actor's task scope includes t. Used at
// the mutation boundary (comments, edits, reviews), not just for listing.
func CanSeeTask(actor models.User, users []models.User, t models.StaffTask) bool {
	if t.OrgID != actor.OrgID {
		return false
	}
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleStaffLead:
		return teamIDs(actor, users)[t.OwnerID]
	default:
		return t.OwnerID == actor.ID
	}
}

// ResolveStaffNames refreshes each task's display name from the user
// collection. Tasks whose owner no longer exists keep the last snapshot.
func ResolveStaffNames(tasks []models.StaffTask, users []models.User) []models.StaffTask {
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	out := make([]models.StaffTask, len(tasks))
	for i, t := range tasks {
		if name, ok := names[t.OwnerID]; ok {
			t.StaffName = name
		}
		out[i] = t
	}
	return out
}
