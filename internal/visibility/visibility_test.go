package visibility

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cloudcrave/craveops/internal/models"
)

var (
	orgA = uuid.New()
	orgB = uuid.New()
)

func fixture() ([]models.User, []models.StaffTask) {
	admin := models.User{ID: uuid.New(), OrgID: orgA, Name: "Admin", Role: models.RoleAdmin}
	lead := models.User{ID: uuid.New(), OrgID: orgA, Name: "Lead", Role: models.RoleStaffLead}
	otherLead := models.User{ID: uuid.New(), OrgID: orgA, Name: "Other Lead", Role: models.RoleStaffLead}
	mentee := models.User{ID: uuid.New(), OrgID: orgA, Name: "Mentee", Role: models.RoleMentee, MentorID: &lead.ID}
	unclaimed := models.User{ID: uuid.New(), OrgID: orgA, Name: "Unclaimed", Role: models.RoleStaffMember}
	poached := models.User{ID: uuid.New(), OrgID: orgA, Name: "Poached", Role: models.RoleStaffMember, MentorID: &otherLead.ID}
	outsider := models.User{ID: uuid.New(), OrgID: orgB, Name: "Outsider", Role: models.RoleAdmin}

	users := []models.User{admin, lead, otherLead, mentee, unclaimed, poached, outsider}

	tasks := []models.StaffTask{
		{ID: uuid.New(), OrgID: orgA, OwnerID: lead.ID, Title: "lead task"},
		{ID: uuid.New(), OrgID: orgA, OwnerID: mentee.ID, Title: "mentee task"},
		{ID: uuid.New(), OrgID: orgA, OwnerID: unclaimed.ID, Title: "unclaimed task"},
		{ID: uuid.New(), OrgID: orgA, OwnerID: poached.ID, Title: "poached task"},
		{ID: uuid.New(), OrgID: orgB, OwnerID: outsider.ID, Title: "foreign task"},
	}
	return users, tasks
}

func titles(tasks []models.StaffTask) map[string]bool {
	out := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		out[t.Title] = true
	}
	return out
}

func names(users []models.User) map[string]bool {
	out := make(map[string]bool, len(users))
	for _, u := range users {
		out[u.Name] = true
	}
	return out
}

func TestTasksNeverCrossOrganizations(t *testing.T) {
	users, tasks := fixture()
	for _, u := range users {
		if u.OrgID != orgA {
			continue
		}
		for _, got := range Tasks(u, users, tasks) {
			if got.OrgID != orgA {
				t.Fatalf("actor %s saw task %q from another org", u.Name, got.Title)
			}
		}
	}
}

func TestAdminSeesWholeOrg(t *testing.T) {
	users, tasks := fixture()
	admin := users[0]

	got := titles(Tasks(admin, users, tasks))
	for _, want := range []string{"lead task", "mentee task", "unclaimed task", "poached task"} {
		if !got[want] {
			t.Fatalf("admin missing %q, got %v", want, got)
		}
	}
	if got["foreign task"] {
		t.Fatal("admin saw a task from another org")
	}
}

func TestLeadSeesOnlyOwnSquadTasks(t *testing.T) {
	users, tasks := fixture()
	lead := users[1]

	got := titles(Tasks(lead, users, tasks))
	if !got["lead task"] || !got["mentee task"] {
		t.Fatalf("lead missing own squad tasks, got %v", got)
	}
	// Unclaimed users are visible for recruiting, but their work is not.
	if got["unclaimed task"] {
		t.Fatal("lead saw an unclaimed user's task")
	}
	if got["poached task"] {
		t.Fatal("lead saw another lead's squad task")
	}
}

func TestLeadSeesUnclaimedUsers(t *testing.T) {
	users, _ := fixture()
	lead := users[1]

	got := names(Users(lead, users))
	for _, want := range []string{"Lead", "Mentee", "Unclaimed"} {
		if !got[want] {
			t.Fatalf("lead missing user %q, got %v", want, got)
		}
	}
	if got["Poached"] {
		t.Fatal("lead saw a user already assigned to another lead")
	}
	if got["Outsider"] {
		t.Fatal("lead saw a user from another org")
	}
}

func TestMemberSeesOnlySelf(t *testing.T) {
	users, tasks := fixture()
	mentee := users[3]

	gotUsers := Users(mentee, users)
	if len(gotUsers) != 1 || gotUsers[0].ID != mentee.ID {
		t.Fatalf("mentee should only see themself, got %v", names(gotUsers))
	}

	gotTasks := titles(Tasks(mentee, users, tasks))
	if len(gotTasks) != 1 || !gotTasks["mentee task"] {
		t.Fatalf("mentee should only see their own task, got %v", gotTasks)
	}
}

func TestBrandsForMemberDeriveFromOwnTasks(t *testing.T) {
	users, _ := fixture()
	mentee := users[3]
	lead := users[1]

	brandMine := models.Brand{ID: uuid.New(), OrgID: orgA, Name: "Mine"}
	brandLed := models.Brand{ID: uuid.New(), OrgID: orgA, Name: "Led", LeadID: &lead.ID}
	brandOther := models.Brand{ID: uuid.New(), OrgID: orgA, Name: "Other"}
	brands := []models.Brand{brandMine, brandLed, brandOther}

	tasks := []models.StaffTask{
		{ID: uuid.New(), OrgID: orgA, OwnerID: mentee.ID, BrandID: brandMine.ID},
	}

	got := Brands(mentee, brands, tasks)
	if len(got) != 1 || got[0].Name != "Mine" {
		t.Fatalf("mentee brands = %v, want only Mine", got)
	}

	gotLead := Brands(lead, brands, tasks)
	if len(gotLead) != 1 || gotLead[0].Name != "Led" {
		t.Fatalf("lead brands = %v, want only Led", gotLead)
	}
}

func TestCanSeeTaskMatchesListing(t *testing.T) {
	users, tasks := fixture()
	for _, u := range users {
		listed := titles(Tasks(u, users, tasks))
		for _, task := range tasks {
			if got := CanSeeTask(u, users, task); got != listed[task.Title] {
				t.Fatalf("CanSeeTask(%s, %q) = %v, listing says %v", u.Name, task.Title, got, listed[task.Title])
			}
		}
	}
}

func TestResolveStaffNamesRefreshesFromUsers(t *testing.T) {
	users, tasks := fixture()
	users[3].Name = "Renamed Mentee"

	resolved := ResolveStaffNames(tasks, users)
	for _, task := range resolved {
		if task.OwnerID == users[3].ID && task.StaffName != "Renamed Mentee" {
			t.Fatalf("staff name not refreshed, got %q", task.StaffName)
		}
	}

	// An owner that no longer exists keeps the last snapshot.
	orphan := []models.StaffTask{{ID: uuid.New(), OwnerID: uuid.New(), StaffName: "Departed"}}
	if got := ResolveStaffNames(orphan, users); got[0].StaffName != "Departed" {
		t.Fatalf("orphan task lost its name snapshot, got %q", got[0].StaffName)
	}
}
