package view

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

func TestNewState(t *testing.T) {
	t.Parallel()

	state := NewState(models.SortNameAsc)

	if state.Mode != models.ViewGrid {
		t.Errorf("Mode = %s, want grid", state.Mode)
	}
	if state.Form.Kind != FormClosed {
		t.Errorf("Form.Kind = %s, want closed", state.Form.Kind)
	}
	if !state.Filters.IsEmpty() {
		t.Error("expected empty filter state")
	}
	if state.Sort != models.SortNameAsc {
		t.Errorf("Sort = %s, want name_asc", state.Sort)
	}
}

func TestNewStateDefaultsSort(t *testing.T) {
	t.Parallel()

	state := NewState("")
	if state.Sort != models.DefaultSortKey {
		t.Errorf("Sort = %s, want %s", state.Sort, models.DefaultSortKey)
	}
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	tool := models.Tool{ID: uuid.New(), Name: "Notion"}
	state := NewState(models.DefaultSortKey)

	state = state.SelectMode(models.ViewTable)
	if state.Mode != models.ViewTable {
		t.Errorf("Mode = %s, want table", state.Mode)
	}

	state = state.OpenCreate()
	if state.Form.Kind != FormCreate || state.Form.Tool != nil {
		t.Errorf("Form = %+v, want create with no tool", state.Form)
	}

	state = state.OpenEdit(tool)
	if state.Form.Kind != FormEdit || state.Form.Tool == nil || state.Form.Tool.ID != tool.ID {
		t.Errorf("Form = %+v, want edit targeting %s", state.Form, tool.ID)
	}

	state = state.CloseForm()
	if state.Form.Kind != FormClosed {
		t.Errorf("Form.Kind = %s, want closed", state.Form.Kind)
	}

	// Mode survives form transitions.
	if state.Mode != models.ViewTable {
		t.Errorf("Mode = %s, want table after form transitions", state.Mode)
	}

	filters := models.FilterState{Category: "Design"}
	state = state.SetFilters(filters)
	if state.Filters.Category != "Design" {
		t.Errorf("Filters = %+v, want category Design", state.Filters)
	}

	state = state.SetSort(models.SortNameDesc)
	if state.Sort != models.SortNameDesc {
		t.Errorf("Sort = %s, want name_desc", state.Sort)
	}
}

func TestStateTransitionsDoNotMutateReceiver(t *testing.T) {
	t.Parallel()

	original := NewState(models.DefaultSortKey)
	_ = original.SelectMode(models.ViewCategory)

	if original.Mode != models.ViewGrid {
		t.Errorf("receiver mutated: Mode = %s, want grid", original.Mode)
	}
}

func renderSnapshot() []models.Tool {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return []models.Tool{
		{ID: uuid.New(), Name: "Notion", Category: "Productivity", Tags: []string{"notes"}, IsFavorite: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: uuid.New(), Name: "Figma", Category: "Design", Tags: []string{"ui"}, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), Name: "Excalidraw", Category: "Design", Tags: []string{"diagrams"}, CreatedAt: base},
	}
}

func TestRenderGridMode(t *testing.T) {
	t.Parallel()

	state := NewState(models.SortNameAsc)
	payload := Render(state, renderSnapshot())

	if payload.Mode != models.ViewGrid {
		t.Errorf("Mode = %s, want grid", payload.Mode)
	}
	if payload.Groups != nil {
		t.Error("Groups should be empty outside category mode")
	}
	if payload.Total != 3 {
		t.Errorf("Total = %d, want 3", payload.Total)
	}

	names := make([]string, len(payload.Items))
	for i, item := range payload.Items {
		names[i] = item.Name
	}
	want := []string{"Excalidraw", "Figma", "Notion"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Items = %v, want %v", names, want)
	}
}

func TestRenderCategoryMode(t *testing.T) {
	t.Parallel()

	state := NewState(models.DefaultSortKey).SelectMode(models.ViewCategory)
	payload := Render(state, renderSnapshot())

	if payload.Items != nil {
		t.Error("Items should be empty in category mode")
	}
	if len(payload.Groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(payload.Groups))
	}
	if payload.Groups[0].Category != "Design" || payload.Groups[1].Category != "Productivity" {
		t.Errorf("group order = [%s %s], want [Design Productivity]",
			payload.Groups[0].Category, payload.Groups[1].Category)
	}
}

func TestRenderIndexesComeFromFullSnapshot(t *testing.T) {
	t.Parallel()

	state := NewState(models.DefaultSortKey).SetFilters(models.FilterState{Category: "Design"})
	payload := Render(state, renderSnapshot())

	if payload.Total != 2 {
		t.Errorf("Total = %d, want 2", payload.Total)
	}

	// The filter hides Productivity tools, but the selection indexes still
	// offer every known value.
	wantCategories := []string{"Design", "Productivity"}
	if !reflect.DeepEqual(payload.Categories, wantCategories) {
		t.Errorf("Categories = %v, want %v", payload.Categories, wantCategories)
	}
	wantTags := []string{"diagrams", "notes", "ui"}
	if !reflect.DeepEqual(payload.Tags, wantTags) {
		t.Errorf("Tags = %v, want %v", payload.Tags, wantTags)
	}
}

func TestRenderEmptySnapshot(t *testing.T) {
	t.Parallel()

	payload := Render(NewState(models.DefaultSortKey), nil)
	if payload.Total != 0 {
		t.Errorf("Total = %d, want 0", payload.Total)
	}
	if len(payload.Items) != 0 {
		t.Errorf("Items = %v, want empty", payload.Items)
	}
	if len(payload.Groups) != 0 {
		t.Errorf("Groups = %v, want empty", payload.Groups)
	}
}
