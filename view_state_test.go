package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newLoadedController(t *testing.T, rows []RawBillboardRow, role string) (*ViewStateController, *Catalog) {
	t.Helper()
	catalog := newTestCatalog(staticSource(rows, nil))
	<-catalog.Refresh(context.Background())
	controller := NewViewStateController(catalog, dashboardVariantForRole(role), nil)
	return controller, catalog
}

func TestViewStateDefaults(t *testing.T) {
	controller, _ := newLoadedController(t, []RawBillboardRow{validRawRow()}, RoleInvestor)
	state := controller.Snapshot()
	assert.Equal(t, ModeGrid, state.DisplayMode)
	assert.Equal(t, "", state.SelectedID)
	assert.Equal(t, 0, state.ActiveTab)
	assert.Equal(t, 0, state.ActiveSidebarItem)
}

func TestParseDisplayMode(t *testing.T) {
	cases := []struct {
		raw  string
		want DisplayMode
		ok   bool
	}{
		{"grid", ModeGrid, true},
		{"LIST", ModeList, true},
		{" map ", ModeMap, true},
		{"carousel", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		mode, ok := parseDisplayMode(tc.raw)
		if ok != tc.ok || mode != tc.want {
			t.Errorf("parseDisplayMode(%q) = %q/%v, want %q/%v", tc.raw, mode, ok, tc.want, tc.ok)
		}
	}
}

func TestViewStateSelectIgnoresUnknownID(t *testing.T) {
	controller, _ := newLoadedController(t, []RawBillboardRow{validRawRow()}, RoleInvestor)

	controller.Select("bb-1")
	assert.Equal(t, "bb-1", controller.Snapshot().SelectedID)

	controller.Select("not-a-record")
	assert.Equal(t, "bb-1", controller.Snapshot().SelectedID)
}

func TestViewStateClearSelection(t *testing.T) {
	controller, _ := newLoadedController(t, []RawBillboardRow{validRawRow()}, RoleInvestor)
	controller.Select("bb-1")
	controller.ClearSelection()
	assert.Equal(t, "", controller.Snapshot().SelectedID)
}

func TestViewStateSelectionPrunedWhenRecordVanishes(t *testing.T) {
	catalog := newTestCatalog(staticSource([]RawBillboardRow{validRawRow()}, nil))
	<-catalog.Refresh(context.Background())
	controller := NewViewStateController(catalog, dashboardVariantForRole(RoleInvestor), nil)

	controller.Select("bb-1")
	assert.Equal(t, "bb-1", controller.Snapshot().SelectedID)

	// Next refresh replaces the collection with records that do not include
	// the selected id.
	replacement := validRawRow()
	replacement.ID = "bb-2"
	catalog.source = staticSource([]RawBillboardRow{replacement}, nil)
	catalog.maxAge = 0
	<-catalog.Refresh(context.Background())

	assert.Equal(t, "", controller.Snapshot().SelectedID)
}

func TestViewStateTabIndexClampsToVariant(t *testing.T) {
	controller, _ := newLoadedController(t, []RawBillboardRow{validRawRow()}, RoleInvestor)
	tabCount := len(dashboardVariantForRole(RoleInvestor).Tabs(LangEnglish))

	controller.SetActiveTab(tabCount + 10)
	assert.Equal(t, tabCount-1, controller.Snapshot().ActiveTab)

	controller.SetActiveTab(-5)
	assert.Equal(t, 0, controller.Snapshot().ActiveTab)

	controller.SetActiveTab(1)
	assert.Equal(t, 1, controller.Snapshot().ActiveTab)
}

func TestViewStateSidebarIndexClampsToVariant(t *testing.T) {
	controller, _ := newLoadedController(t, []RawBillboardRow{validRawRow()}, RoleAdmin)
	itemCount := len(dashboardVariantForRole(RoleAdmin).SidebarItems(LangEnglish))

	controller.SetActiveSidebarItem(itemCount + 3)
	assert.Equal(t, itemCount-1, controller.Snapshot().ActiveSidebarItem)

	controller.SetActiveSidebarItem(-1)
	assert.Equal(t, 0, controller.Snapshot().ActiveSidebarItem)
}

func TestViewStateViewDetailsEmitsNavigation(t *testing.T) {
	var navigated string
	catalog := newTestCatalog(staticSource([]RawBillboardRow{validRawRow()}, nil))
	<-catalog.Refresh(context.Background())
	controller := NewViewStateController(catalog, dashboardVariantForRole(RoleInvestor), func(id string) {
		navigated = id
	})

	if !controller.ViewDetails("bb-1") {
		t.Fatal("expected navigation for an existing record")
	}
	assert.Equal(t, "bb-1", navigated)

	navigated = ""
	if controller.ViewDetails("missing") {
		t.Fatal("expected no navigation for an unknown record")
	}
	assert.Equal(t, "", navigated)
}

func TestViewStateDisplayModeSwitchesFreely(t *testing.T) {
	controller, _ := newLoadedController(t, []RawBillboardRow{validRawRow()}, RoleInvestor)
	controller.Select("bb-1")

	for _, mode := range []DisplayMode{ModeMap, ModeList, ModeGrid} {
		controller.SetDisplayMode(mode)
		state := controller.Snapshot()
		assert.Equal(t, mode, state.DisplayMode)
		// Switching modes never disturbs the selection.
		assert.Equal(t, "bb-1", state.SelectedID)
	}
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, clampIndex(5, 0))
	assert.Equal(t, 0, clampIndex(-1, 4))
	assert.Equal(t, 3, clampIndex(9, 4))
	assert.Equal(t, 2, clampIndex(2, 4))
}
