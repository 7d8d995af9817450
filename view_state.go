package main

import (
	"strings"
	"sync"
)

// DisplayMode is the mutually exclusive grid/list/map presentation choice.
type DisplayMode string

const (
	ModeGrid DisplayMode = "grid"
	ModeList DisplayMode = "list"
	ModeMap  DisplayMode = "map"
)

var displayModes = []string{string(ModeGrid), string(ModeList), string(ModeMap)}

func parseDisplayMode(raw string) (DisplayMode, bool) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	if containsString(displayModes, mode) {
		return DisplayMode(mode), true
	}
	return "", false
}

// NavigateFunc receives detail-navigation requests. Routing is owned by the
// hosting frontend; the controller only emits the selected id.
type NavigateFunc func(id string)

// ViewState is the UI state of one listing screen.
type ViewState struct {
	DisplayMode       DisplayMode `json:"displayMode"`
	SelectedID        string      `json:"selectedId"`
	ActiveTab         int         `json:"activeTab"`
	ActiveSidebarItem int         `json:"activeSidebarItem"`
}

// ViewStateController tracks the coupled view toggles of one screen and the
// transition rules between them. Display modes switch freely; the selection
// must reference a record in the current collection; tab and sidebar indexes
// clamp to the role's item counts.
type ViewStateController struct {
	mu       sync.Mutex
	catalog  *Catalog
	variant  DashboardVariant
	navigate NavigateFunc
	state    ViewState
}

func NewViewStateController(catalog *Catalog, variant DashboardVariant, navigate NavigateFunc) *ViewStateController {
	return &ViewStateController{
		catalog:  catalog,
		variant:  variant,
		navigate: navigate,
		state:    ViewState{DisplayMode: ModeGrid},
	}
}

func (v *ViewStateController) SetDisplayMode(mode DisplayMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.DisplayMode = mode
}

// Select marks a marker or card as selected. Ids not present in the current
// collection are ignored.
func (v *ViewStateController) Select(id string) {
	if !v.catalog.Contains(id) {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.SelectedID = id
}

func (v *ViewStateController) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.SelectedID = ""
}

// SetActiveTab clamps to the variant's tab count.
func (v *ViewStateController) SetActiveTab(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.ActiveTab = clampIndex(index, len(v.variant.Tabs(LangEnglish)))
}

// SetActiveSidebarItem clamps to the variant's sidebar item count.
func (v *ViewStateController) SetActiveSidebarItem(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.ActiveSidebarItem = clampIndex(index, len(v.variant.SidebarItems(LangEnglish)))
}

// ViewDetails emits a detail-navigation request for id when it exists and
// reports whether the request was emitted.
func (v *ViewStateController) ViewDetails(id string) bool {
	if !v.catalog.Contains(id) {
		return false
	}
	if v.navigate != nil {
		v.navigate(id)
	}
	return true
}

// Snapshot returns the current state with the selection resolved against
// the live collection: a selected id that vanished on the last refresh
// reads as unset.
func (v *ViewStateController) Snapshot() ViewState {
	v.mu.Lock()
	state := v.state
	v.mu.Unlock()

	if state.SelectedID != "" && !v.catalog.Contains(state.SelectedID) {
		v.mu.Lock()
		if v.state.SelectedID == state.SelectedID {
			v.state.SelectedID = ""
		}
		v.mu.Unlock()
		state.SelectedID = ""
	}
	return state
}

func clampIndex(index, count int) int {
	if count <= 0 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= count {
		return count - 1
	}
	return index
}
