package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func statsFixtureRecords() []Billboard {
	return []Billboard{
		{ID: "1", Type: TypeDigital, Status: StatusAvailable, Price: 10000, Rating: 4.0},
		{ID: "2", Type: TypeDigital, Status: StatusBooked, Price: 20000, Rating: 5.0},
		{ID: "3", Type: TypeStatic, Status: StatusBooked, Price: 5000, Rating: 3.0},
		{ID: "4", Type: TypeLED, Status: StatusMaintenance, Price: 15000, Rating: 4.0},
	}
}

func TestComputeCatalogStats(t *testing.T) {
	stats := computeCatalogStats(statsFixtureRecords(), 7)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Available)
	assert.Equal(t, 2, stats.Booked)
	assert.Equal(t, 1, stats.Maintenance)
	assert.Equal(t, 2, stats.CountByType[TypeDigital])
	assert.Equal(t, 1, stats.CountByType[TypeStatic])
	assert.Equal(t, 1, stats.CountByType[TypeLED])
	assert.Equal(t, 4.0, stats.AvgRating)
	assert.Equal(t, 12500.0, stats.AvgPrice)
	assert.Equal(t, 25000.0, stats.BookedMonthly)
	assert.Equal(t, 7, stats.Enquiries)
}

func TestComputeCatalogStatsEmptyCollection(t *testing.T) {
	stats := computeCatalogStats(nil, 0)
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0.0, stats.AvgRating)
	assert.Equal(t, 0.0, stats.AvgPrice)
}

func TestDashboardVariantForRole(t *testing.T) {
	for _, role := range userRoles {
		variant := dashboardVariantForRole(role)
		assert.Equal(t, role, variant.Role())
	}
	assert.Equal(t, "default", dashboardVariantForRole("visitor").Role())
}

func TestDashboardVariantTabsStartWithCommonSet(t *testing.T) {
	for _, role := range userRoles {
		tabs := dashboardVariantForRole(role).Tabs(LangEnglish)
		if len(tabs) < len(commonTabs) {
			t.Fatalf("role %s has fewer tabs than the common set", role)
		}
		assert.Equal(t, "Overview", tabs[0])
		assert.Equal(t, "Billboards", tabs[1])
	}
}

func TestInvestorVariant(t *testing.T) {
	variant := dashboardVariantForRole(RoleInvestor)

	tabs := variant.Tabs(LangEnglish)
	assert.Contains(t, tabs, "Revenue")
	assert.Contains(t, tabs, "Reports")

	arTabs := variant.Tabs(LangArabic)
	assert.Contains(t, arTabs, "الإيرادات")
	assert.Len(t, arTabs, len(tabs))

	tiles := variant.StatTiles(computeCatalogStats(statsFixtureRecords(), 0), LangEnglish)
	byKey := map[string]string{}
	for _, tile := range tiles {
		byKey[tile.Key] = tile.Value
	}
	assert.Equal(t, "4", byKey["total"])
	assert.Equal(t, "SAR 25000", byKey["monthly_revenue"])
	assert.Equal(t, "4.0", byKey["avg_rating"])
}

func TestAdvertiserVariant(t *testing.T) {
	variant := dashboardVariantForRole(RoleAdvertiser)

	assert.Contains(t, variant.Tabs(LangEnglish), "Campaigns")

	tiles := variant.StatTiles(computeCatalogStats(statsFixtureRecords(), 3), LangArabic)
	byKey := map[string]StatTile{}
	for _, tile := range tiles {
		byKey[tile.Key] = tile
	}
	assert.Equal(t, "3", byKey["enquiries"].Value)
	assert.Equal(t, "الاستفسارات المرسلة", byKey["enquiries"].Label)
	assert.Equal(t, "SAR 12500", byKey["avg_price"].Value)
}

func TestMunicipalityVariant(t *testing.T) {
	variant := dashboardVariantForRole(RoleMunicipality)

	assert.Contains(t, variant.Tabs(LangEnglish), "Permits")

	items := variant.SidebarItems(LangEnglish)
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}
	assert.Equal(t, "dashboard", keys[0])
	assert.Contains(t, keys, "permits")
	assert.Contains(t, keys, "investors")
}

func TestAdminVariantSidebarIsLongest(t *testing.T) {
	admin := len(dashboardVariantForRole(RoleAdmin).SidebarItems(LangEnglish))
	investor := len(dashboardVariantForRole(RoleInvestor).SidebarItems(LangEnglish))
	if admin <= investor {
		t.Fatalf("expected admin sidebar (%d) to exceed investor sidebar (%d)", admin, investor)
	}
}

func TestSidebarLabelsLocalize(t *testing.T) {
	en := dashboardVariantForRole(RoleInvestor).SidebarItems(LangEnglish)
	ar := dashboardVariantForRole(RoleInvestor).SidebarItems(LangArabic)
	assert.Equal(t, len(en), len(ar))
	for i := range en {
		assert.Equal(t, en[i].Key, ar[i].Key)
	}
	assert.Equal(t, "Dashboard", en[0].Label)
	assert.Equal(t, "لوحة التحكم", ar[0].Label)
}
