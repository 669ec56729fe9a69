package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cloudcrave/craveops/internal/genai"
	"github.com/cloudcrave/craveops/internal/models"
	"github.com/cloudcrave/craveops/internal/seed"
	"github.com/cloudcrave/craveops/internal/state"
	"github.com/cloudcrave/craveops/internal/store"
)

type fakeSuggester struct {
	suggestion *genai.ContentSuggestion
	err        error
	gotInput   genai.SuggestionInput
}

func (f *fakeSuggester) SuggestContent(_ context.Context, in genai.SuggestionInput) (*genai.ContentSuggestion, error) {
	f.gotInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

func newTestController(t *testing.T, s Suggester) (*Controller, *state.App) {
	t.Helper()
	app, err := state.Load(context.Background(), store.NewMemorySnapshots(), zap.NewNop())
	if err != nil {
		t.Fatalf("load app: %v", err)
	}
	return NewController(app, s), app
}

func adminActor(t *testing.T, app *state.App) models.User {
	t.Helper()
	var out models.User
	app.View(func(c *state.Collections) {
		if u := c.UserByEmail(seed.ReservedEmail); u != nil {
			out = *u
		}
	})
	if out.ID == uuid.Nil {
		t.Fatal("seeded admin missing")
	}
	return out
}

// seedCalendar creates a calendar with one entry and returns both.
func seedCalendar(t *testing.T, cc *Controller, actor models.User, entry models.CalendarEntry) (models.ContentCalendar, models.CalendarEntry) {
	t.Helper()
	ctx := context.Background()

	cal, err := cc.Create(ctx, actor, seed.BrandCloudCrave, "Launch Plan")
	if err != nil {
		t.Fatalf("create calendar: %v", err)
	}
	cal, err = cc.Save(ctx, actor, cal.ID, "", []models.CalendarEntry{entry})
	if err != nil {
		t.Fatalf("save calendar: %v", err)
	}
	if len(cal.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(cal.Entries))
	}
	return cal, cal.Entries[0]
}

func TestCreateRequiresModerator(t *testing.T) {
	cc, app := newTestController(t, &fakeSuggester{})

	var member models.User
	app.View(func(c *state.Collections) {
		if u := c.UserByEmail("aj@gmail.com"); u != nil {
			member = *u
		}
	})

	if _, err := cc.Create(context.Background(), member, seed.BrandCloudCrave, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateRejectsUnknownBrand(t *testing.T) {
	cc, app := newTestController(t, &fakeSuggester{})
	admin := adminActor(t, app)

	if _, err := cc.Create(context.Background(), admin, uuid.New(), ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestSaveAssignsIDsToNewEntries(t *testing.T) {
	cc, app := newTestController(t, &fakeSuggester{})
	admin := adminActor(t, app)

	_, entry := seedCalendar(t, cc, admin, models.CalendarEntry{
		Date:        "2024-12-01",
		ContentType: models.ContentStatic,
	})
	if entry.ID == uuid.Nil {
		t.Fatal("saved entry was not assigned an id")
	}
}

func TestSuggestFillsOnlyBlankFields(t *testing.T) {
	fake := &fakeSuggester{suggestion: &genai.ContentSuggestion{
		Topic:              "Suggested topic",
		Caption:            "Suggested caption",
		VisualInstructions: "Suggested visuals",
	}}
	cc, app := newTestController(t, fake)
	admin := adminActor(t, app)

	cal, entry := seedCalendar(t, cc, admin, models.CalendarEntry{
		Date:        "2024-12-01",
		Platforms:   []models.ContentPlatform{models.PlatformInstagram},
		ContentType: models.ContentReel,
		Topic:       "Hand-written topic",
	})

	got, err := cc.Suggest(context.Background(), admin, cal.ID, entry.ID, false)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got.Topic != "Hand-written topic" {
		t.Fatalf("topic = %q, user content was clobbered", got.Topic)
	}
	if got.Caption != "Suggested caption" || got.VisualRef != "Suggested visuals" {
		t.Fatalf("blank fields not filled: caption=%q visual=%q", got.Caption, got.VisualRef)
	}
	if fake.gotInput.BrandName != "CloudCrave" {
		t.Fatalf("suggester got brand %q", fake.gotInput.BrandName)
	}
}

func TestSuggestOverwriteReplacesEverything(t *testing.T) {
	fake := &fakeSuggester{suggestion: &genai.ContentSuggestion{
		Topic:   "Suggested topic",
		Caption: "Suggested caption",
	}}
	cc, app := newTestController(t, fake)
	admin := adminActor(t, app)

	cal, entry := seedCalendar(t, cc, admin, models.CalendarEntry{
		Date:    "2024-12-01",
		Topic:   "Hand-written topic",
		Caption: "Hand-written caption",
	})

	got, err := cc.Suggest(context.Background(), admin, cal.ID, entry.ID, true)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if got.Topic != "Suggested topic" || got.Caption != "Suggested caption" {
		t.Fatalf("overwrite did not replace fields: %+v", got)
	}
}

func TestSuggestFailureMutatesNothing(t *testing.T) {
	fake := &fakeSuggester{err: errors.New("model unavailable")}
	cc, app := newTestController(t, fake)
	admin := adminActor(t, app)

	cal, entry := seedCalendar(t, cc, admin, models.CalendarEntry{
		Date:  "2024-12-01",
		Topic: "Hand-written topic",
	})

	if _, err := cc.Suggest(context.Background(), admin, cal.ID, entry.ID, true); err == nil {
		t.Fatal("expected the suggester error to surface")
	}

	app.View(func(c *state.Collections) {
		stored := c.CalendarByID(cal.ID)
		if stored.Entries[0].Topic != "Hand-written topic" || stored.Entries[0].Caption != "" {
			t.Fatalf("entry mutated after failed suggestion: %+v", stored.Entries[0])
		}
	})
}

func TestSuggestRequiresModerator(t *testing.T) {
	cc, app := newTestController(t, &fakeSuggester{})

	var member models.User
	app.View(func(c *state.Collections) {
		if u := c.UserByEmail("aj@gmail.com"); u != nil {
			member = *u
		}
	})

	if _, err := cc.Suggest(context.Background(), member, uuid.New(), uuid.New(), false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestListScopesToVisibleBrands(t *testing.T) {
	cc, app := newTestController(t, &fakeSuggester{})
	admin := adminActor(t, app)

	cal, _ := seedCalendar(t, cc, admin, models.CalendarEntry{Date: "2024-12-01"})

	var member models.User
	app.View(func(c *state.Collections) {
		if u := c.UserByEmail("blessing.bassey@cloudcraves.com"); u != nil {
			member = *u
		}
	})

	// A member with no tasks on the brand sees no calendar for it.
	if got := cc.List(member, nil); len(got) != 0 {
		t.Fatalf("member sees %d calendars, want 0", len(got))
	}

	got := cc.List(admin, &cal.BrandID)
	if len(got) != 1 || got[0].ID != cal.ID {
		t.Fatalf("admin filtered list = %v", got)
	}
}
