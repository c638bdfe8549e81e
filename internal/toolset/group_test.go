package toolset

import (
	"reflect"
	"testing"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

func TestGroupByCategory(t *testing.T) {
	t.Parallel()

	tools := []models.Tool{
		{Name: "Notion", Category: "Productivity"},
		{Name: "Figma", Category: "Design"},
		{Name: "Scratchpad", Category: ""},
		{Name: "Excalidraw", Category: "Design"},
	}

	groups := GroupByCategory(tools)

	wantCategories := []string{"Design", "Productivity", UncategorizedLabel}
	gotCategories := make([]string, len(groups))
	for i, group := range groups {
		gotCategories[i] = group.Category
	}
	if !reflect.DeepEqual(gotCategories, wantCategories) {
		t.Fatalf("group order = %v, want %v", gotCategories, wantCategories)
	}

	// Input order is preserved within a group.
	design := groups[0]
	if got := toolNames(design.Tools); !reflect.DeepEqual(got, []string{"Figma", "Excalidraw"}) {
		t.Errorf("Design group = %v, want [Figma Excalidraw]", got)
	}

	// Every tool lands in exactly one group.
	total := 0
	for _, group := range groups {
		total += len(group.Tools)
	}
	if total != len(tools) {
		t.Errorf("groups hold %d tools, want %d", total, len(tools))
	}
}

func TestGroupByCategoryEmpty(t *testing.T) {
	t.Parallel()

	groups := GroupByCategory(nil)
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %v", groups)
	}
}

func TestCategories(t *testing.T) {
	t.Parallel()

	tools := []models.Tool{
		{Category: "Design"},
		{Category: "Productivity"},
		{Category: "Design"},
		{Category: ""},
	}

	got := Categories(tools)
	want := []string{"Design", "Productivity"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestTags(t *testing.T) {
	t.Parallel()

	tools := []models.Tool{
		{Tags: []string{"wiki", "notes"}},
		{Tags: []string{"api", "wiki"}},
		{Tags: nil},
	}

	got := Tags(tools)
	want := []string{"api", "notes", "wiki"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tags() = %v, want %v", got, want)
	}
}
