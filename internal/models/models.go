package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is a user's position inside an organization. Roles drive both
// visibility (what an actor may read) and authority (what they may mutate).
type Role string

const (
	RoleAdmin       Role = "Admin"
	RoleStaffLead   Role = "Staff Lead"
	RoleStaffMember Role = "Staff Member"
	RoleMentee      Role = "Mentee"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaffLead, RoleStaffMember, RoleMentee:
		return true
	}
	return false
}

// CanReview reports whether the role may resolve tasks in Pending Approval.
func (r Role) CanReview() bool {
	return r == RoleAdmin || r == RoleStaffLead
}

// RegistrationStatus gates whether a user may act at all. A pending user
// exists in the collection but cannot log in until an admin authorizes them.
type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
)

// TaskStatus is the task state machine. Transitions are owned by the
// lifecycle controller; nothing else writes Status.
type TaskStatus string

const (
	StatusNotStarted      TaskStatus = "Not Started"
	StatusInProgress      TaskStatus = "In Progress"
	StatusCompleted       TaskStatus = "Completed"
	StatusBlocked         TaskStatus = "Blocked"
	StatusPendingApproval TaskStatus = "Pending Approval"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked, StatusPendingApproval:
		return true
	}
	return false
}

type TaskType string

const (
	TypeOneTime   TaskType = "One-time"
	TypeRecurring TaskType = "Recurring"
)

// Frequency is the cadence of a recurring task. One-time tasks carry "N/A".
type Frequency string

const (
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyNone    Frequency = "N/A"
)

type ServiceType string

const (
	ServiceSocialMedia      ServiceType = "Social Media Management"
	ServiceCloudSupport     ServiceType = "Cloud Support"
	ServiceDigitalSolutions ServiceType = "Digital Solutions"
	ServiceGeneralOps       ServiceType = "General Operations"
	ServiceTraining         ServiceType = "Switch2Tech Training"
)

type TaskCategory string

const (
	CategoryProfileOptimisation    TaskCategory = "Profile Optimisation"
	CategoryHighlightOptimisation  TaskCategory = "Highlight Optimisation"
	CategoryContentOptimisation    TaskCategory = "Content Optimisation"
	CategoryEngagementOptimisation TaskCategory = "Engagement Optimisation"
	CategoryInsightsReporting      TaskCategory = "Insights & Reporting"
	CategoryCloudInfrastructure    TaskCategory = "Cloud Infrastructure"
	CategorySoftwareDevelopment    TaskCategory = "Software Development"
	CategoryTechnicalSupport       TaskCategory = "Technical Support"
	CategoryStrategicPlanning      TaskCategory = "Strategic Planning"
	CategoryAssetManagement        TaskCategory = "Asset Management"
	CategoryQualityAssurance       TaskCategory = "Quality Assurance"
	CategoryInternalProtocol       TaskCategory = "Internal Protocol"
)

type ContentPlatform string

const (
	PlatformInstagram ContentPlatform = "Instagram"
	PlatformFacebook  ContentPlatform = "Facebook"
	PlatformLinkedIn  ContentPlatform = "LinkedIn"
	PlatformTikTok    ContentPlatform = "TikTok"
)

type ContentType string

const (
	ContentStatic     ContentType = "Static"
	ContentCarousel   ContentType = "Carousel"
	ContentReel       ContentType = "Reel"
	ContentShortVideo ContentType = "Short Video"
)

type NotificationType string

const (
	NotifInfo    NotificationType = "info"
	NotifSuccess NotificationType = "success"
	NotifWarning NotificationType = "warning"
	NotifAlert   NotificationType = "alert"
)

// Organization is the tenant boundary. Every other entity references exactly
// one organization by id; the visibility filter drops anything from a
// different org before any role rule runs.
type Organization struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a person within an organization.
//
// MentorID is a pointer because "unassigned" is a meaningful state: a lead
// may only claim a user whose MentorID is nil (first claim wins).
type User struct {
	ID                 uuid.UUID          `json:"id"`
	OrgID              uuid.UUID          `json:"org_id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Role               Role               `json:"role"`
	RegistrationStatus RegistrationStatus `json:"registration_status"`
	MentorID           *uuid.UUID         `json:"mentor_id,omitempty"`
	Avatar             string             `json:"avatar,omitempty"`
}

// Brand is a client account the agency operates for.
type Brand struct {
	ID       uuid.UUID     `json:"id"`
	OrgID    uuid.UUID     `json:"org_id"`
	Name     string        `json:"name"`
	Services []ServiceType `json:"services"`
	LeadID   *uuid.UUID    `json:"lead_id,omitempty"`
}

// TaskComment is one entry in a task's append-only comment thread.
// AuthorName and AuthorRole are snapshots taken at post time; they are never
// re-derived, even if the author is later renamed or re-roled.
type TaskComment struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	AuthorRole Role      `json:"author_role"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
}

// StaffTask is a unit of work assigned to one staff member for one brand.
//
// OwnerID is the authoritative link to the owning user. StaffName is a
// display snapshot refreshed from the user collection at read time, so a
// rename never orphans a task.
type StaffTask struct {
	ID              uuid.UUID     `json:"id"`
	OrgID           uuid.UUID     `json:"org_id"`
	BrandID         uuid.UUID     `json:"brand_id"`
	ServiceType     ServiceType   `json:"service_type"`
	OwnerID         uuid.UUID     `json:"owner_id"`
	StaffName       string        `json:"staff_name"`
	AssignedBy      string        `json:"assigned_by"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        TaskCategory  `json:"category"`
	Type            TaskType      `json:"type"`
	Frequency       Frequency     `json:"frequency"`
	Status          TaskStatus    `json:"status"`
	DueDate         string        `json:"due_date"`
	ProgressUpdate  string        `json:"progress_update"`
	EstimatedHours  float64       `json:"estimated_hours"`
	HoursSpent      float64       `json:"hours_spent"`
	Comments        []TaskComment `json:"comments"`
	ReportingPeriod string        `json:"reporting_period"`

	RelatedCalendarID      *uuid.UUID `json:"related_calendar_id,omitempty"`
	RelatedCalendarEntryID *uuid.UUID `json:"related_calendar_entry_id,omitempty"`
}

// Notification is a message addressed to one user. Notifications are only
// ever created and flagged read; they are never deleted.
type Notification struct {
	ID            uuid.UUID        `json:"id"`
	OrgID         uuid.UUID        `json:"org_id"`
	UserID        uuid.UUID        `json:"user_id"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
	Read          bool             `json:"read"`
	Timestamp     time.Time        `json:"timestamp"`
	RelatedTaskID *uuid.UUID       `json:"related_task_id,omitempty"`
	RelatedUserID *uuid.UUID       `json:"related_user_id,omitempty"`
}

// CalendarEntry is a single scheduled content slot.
type CalendarEntry struct {
	ID           uuid.UUID         `json:"id"`
	Date         string            `json:"date"`
	Platforms    []ContentPlatform `json:"platforms"`
	ContentType  ContentType       `json:"content_type"`
	Topic        string            `json:"topic"`
	Caption      string            `json:"caption"`
	VisualRef    string            `json:"visual_ref"`
	AssignedToID uuid.UUID         `json:"assigned_to_id"`
}

// ContentCalendar is a named collection of scheduled content slots for one
// brand.
type ContentCalendar struct {
	ID        uuid.UUID       `json:"id"`
	OrgID     uuid.UUID       `json:"org_id"`
	BrandID   uuid.UUID       `json:"brand_id"`
	Name      string          `json:"name"`
	Entries   []CalendarEntry `json:"entries"`
	CreatedAt time.Time       `json:"created_at"`
	LeadID    *uuid.UUID      `json:"lead_id,omitempty"`
}
