package models

// ManagementSummary is the fixed-shape workload report produced by the
// summary requester. The shape doubles as the JSON response schema sent to
// the generation service, so field names here must stay in sync with the
// schema in internal/genai.
type ManagementSummary struct {
	ExecutiveSummary      string          `json:"executiveSummary"`
	StaffWorkload         []StaffWorkload `json:"staffWorkload"`
	RecurringTaskOverview string          `json:"recurringTaskOverview"`
	TrainingOverview      string          `json:"trainingOverview"`
	BlockersAndRisks      []Blocker       `json:"blockersAndRisks"`
	Analytics             Analytics       `json:"analytics"`
}

// StaffWorkload is one staff member's slice of the report.
type StaffWorkload struct {
	StaffName          string            `json:"staffName"`
	OneTimeTasks       []string          `json:"oneTimeTasks"`
	RecurringTasks     []string          `json:"recurringTasks"`
	TrainingTasks      []string          `json:"trainingTasks"`
	CurrentlyWorkingOn string            `json:"currentlyWorkingOn"`
	UnresolvedItems    []string          `json:"unresolvedItems"`
	TotalHours         float64           `json:"totalHours"`
	EffortByFrequency  EffortByFrequency `json:"effortByFrequency"`
}

type EffortByFrequency struct {
	Daily   float64 `json:"daily"`
	Weekly  float64 `json:"weekly"`
	Monthly float64 `json:"monthly"`
	OneTime float64 `json:"oneTime"`
}

type Blocker struct {
	TaskTitle string `json:"taskTitle"`
	Owner     string `json:"owner"`
	Reason    string `json:"reason"`
}

type Analytics struct {
	TotalTasks           int              `json:"totalTasks"`
	BlockedCount         int              `json:"blockedCount"`
	OverdueCount         int              `json:"overdueCount"`
	CompletionPercentage float64          `json:"completionPercentage"`
	TotalHoursLogged     float64          `json:"totalHoursLogged"`
	CadenceBreakdown     CadenceBreakdown `json:"cadenceBreakdown"`
}

type CadenceBreakdown struct {
	DailyTotal   float64 `json:"dailyTotal"`
	WeeklyTotal  float64 `json:"weeklyTotal"`
	MonthlyTotal float64 `json:"monthlyTotal"`
	OneTimeTotal float64 `json:"oneTimeTotal"`
}
