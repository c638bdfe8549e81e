// Package view holds the UI-session state machine and the render pipeline
// that shapes a collection snapshot for the active presentation mode.
package view

import (
	"github.com/mvaldes/digital-toolkit/internal/models"
)

// FormKind tags the state of the create/edit form.
type FormKind string

const (
	FormClosed FormKind = "closed"
	FormCreate FormKind = "create"
	FormEdit   FormKind = "edit"
)

// FormState is a tagged variant rather than a nullable edit target: the
// create and edit flows are exhaustive and explicit. Tool is set only for
// FormEdit.
type FormState struct {
	Kind FormKind     `json:"kind"`
	Tool *models.Tool `json:"tool,omitempty"`
}

// State is the full UI-session state. Every transition is user-triggered;
// there are no timers or automatic transitions.
type State struct {
	Mode    models.ViewMode    `json:"mode"`
	Form    FormState          `json:"form"`
	Filters models.FilterState `json:"filters"`
	Sort    models.SortKey     `json:"sort"`
}

// NewState returns the initial session state: grid view, closed form, empty
// filter, and the given sort key (the one piece of state persisted across
// sessions).
func NewState(sort models.SortKey) State {
	if sort == "" {
		sort = models.DefaultSortKey
	}
	return State{
		Mode:    models.DefaultViewMode,
		Form:    FormState{Kind: FormClosed},
		Filters: models.FilterState{},
		Sort:    sort,
	}
}

// SelectMode swaps the presentation mode. Data is recomputed for the new
// mode on the next Render; nothing else changes.
func (s State) SelectMode(mode models.ViewMode) State {
	s.Mode = mode
	return s
}

// OpenCreate opens the form with empty defaults.
func (s State) OpenCreate() State {
	s.Form = FormState{Kind: FormCreate}
	return s
}

// OpenEdit opens the form pre-populated from the given record.
func (s State) OpenEdit(tool models.Tool) State {
	s.Form = FormState{Kind: FormEdit, Tool: &tool}
	return s
}

// CloseForm closes the form, e.g. after a successful submit.
func (s State) CloseForm() State {
	s.Form = FormState{Kind: FormClosed}
	return s
}

// SetFilters replaces the active filter state.
func (s State) SetFilters(filters models.FilterState) State {
	s.Filters = filters
	return s
}

// SetSort replaces the sort key.
func (s State) SetSort(sort models.SortKey) State {
	s.Sort = sort
	return s
}
