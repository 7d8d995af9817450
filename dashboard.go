package main

import "fmt"

// Marketplace roles. Every session carries exactly one.
const (
	RoleInvestor     = "investor"
	RoleAdvertiser   = "advertiser"
	RoleMunicipality = "municipality"
	RoleAdmin        = "admin"
)

var userRoles = []string{RoleInvestor, RoleAdvertiser, RoleMunicipality, RoleAdmin}

// SidebarItem is one entry of the dashboard navigation rail.
type SidebarItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// StatTile is one summary figure on the dashboard overview.
type StatTile struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// CatalogStats is the snapshot the stat tiles are computed from.
type CatalogStats struct {
	Total         int
	Available     int
	Booked        int
	Maintenance   int
	CountByType   map[string]int
	AvgRating     float64
	AvgPrice      float64
	BookedMonthly float64
	Enquiries     int
}

func computeCatalogStats(records []Billboard, enquiries int) CatalogStats {
	stats := CatalogStats{CountByType: map[string]int{}, Enquiries: enquiries}
	var ratingSum, priceSum float64
	for _, b := range records {
		stats.Total++
		stats.CountByType[b.Type]++
		ratingSum += b.Rating
		priceSum += b.Price
		switch b.Status {
		case StatusAvailable:
			stats.Available++
		case StatusBooked:
			stats.Booked++
			stats.BookedMonthly += b.Price
		case StatusMaintenance:
			stats.Maintenance++
		}
	}
	if stats.Total > 0 {
		stats.AvgRating = ratingSum / float64(stats.Total)
		stats.AvgPrice = priceSum / float64(stats.Total)
	}
	return stats
}

// DashboardVariant is the per-role dashboard contract. Each role supplies
// its tab set, sidebar rail and stat tiles; the former role-switch is a
// variant lookup.
type DashboardVariant interface {
	Role() string
	Tabs(lang Language) []string
	SidebarItems(lang Language) []SidebarItem
	StatTiles(stats CatalogStats, lang Language) []StatTile
}

func dashboardVariantForRole(role string) DashboardVariant {
	switch role {
	case RoleInvestor:
		return investorVariant{}
	case RoleAdvertiser:
		return advertiserVariant{}
	case RoleMunicipality:
		return municipalityVariant{}
	case RoleAdmin:
		return adminVariant{}
	default:
		return defaultVariant{}
	}
}

func lt(en, ar string) LocalizedText { return LocalizedText{En: en, Ar: ar} }

var (
	commonTabs = []LocalizedText{
		lt("Overview", "نظرة عامة"),
		lt("Billboards", "اللوحات الإعلانية"),
		lt("Messages", "الرسائل"),
		lt("Profile", "الملف الشخصي"),
	}
	commonSidebar = []struct {
		key   string
		label LocalizedText
	}{
		{"billboards", lt("Billboards", "اللوحات الإعلانية")},
		{"messages", lt("Messages", "الرسائل")},
		{"settings", lt("Settings", "الإعدادات")},
		{"help", lt("Help", "المساعدة")},
	}
)

func tabsWith(lang Language, extras ...LocalizedText) []string {
	tabs := make([]string, 0, len(commonTabs)+len(extras))
	for _, tab := range commonTabs {
		tabs = append(tabs, tab.Resolve(lang))
	}
	for _, tab := range extras {
		tabs = append(tabs, tab.Resolve(lang))
	}
	return tabs
}

func sidebarWith(lang Language, extras ...SidebarItem) []SidebarItem {
	items := make([]SidebarItem, 0, 1+len(commonSidebar)+len(extras))
	items = append(items, SidebarItem{Key: "dashboard", Label: lt("Dashboard", "لوحة التحكم").Resolve(lang)})
	for _, entry := range commonSidebar {
		items = append(items, SidebarItem{Key: entry.key, Label: entry.label.Resolve(lang)})
	}
	return append(items, extras...)
}

func countTile(key string, label LocalizedText, value int, lang Language) StatTile {
	return StatTile{Key: key, Label: label.Resolve(lang), Value: fmt.Sprintf("%d", value)}
}

func moneyTile(key string, label LocalizedText, value float64, lang Language) StatTile {
	return StatTile{Key: key, Label: label.Resolve(lang), Value: fmt.Sprintf("SAR %.0f", value)}
}

type investorVariant struct{}

func (investorVariant) Role() string { return RoleInvestor }

func (investorVariant) Tabs(lang Language) []string {
	return tabsWith(lang, lt("Revenue", "الإيرادات"), lt("Reports", "التقارير"))
}

func (investorVariant) SidebarItems(lang Language) []SidebarItem {
	return sidebarWith(lang,
		SidebarItem{Key: "revenue", Label: lt("Revenue", "الإيرادات").Resolve(lang)},
		SidebarItem{Key: "company", Label: lt("Company", "الشركة").Resolve(lang)},
	)
}

func (investorVariant) StatTiles(stats CatalogStats, lang Language) []StatTile {
	return []StatTile{
		countTile("total", lt("Total Billboards", "إجمالي اللوحات"), stats.Total, lang),
		countTile("available", lt("Available", "متاحة"), stats.Available, lang),
		countTile("booked", lt("Booked", "محجوزة"), stats.Booked, lang),
		moneyTile("monthly_revenue", lt("Monthly Revenue", "الإيرادات الشهرية"), stats.BookedMonthly, lang),
		{Key: "avg_rating", Label: lt("Average Rating", "متوسط التقييم").Resolve(lang), Value: fmt.Sprintf("%.1f", stats.AvgRating)},
	}
}

type advertiserVariant struct{}

func (advertiserVariant) Role() string { return RoleAdvertiser }

func (advertiserVariant) Tabs(lang Language) []string {
	return tabsWith(lang, lt("Campaigns", "الحملات"), lt("Payments", "المدفوعات"))
}

func (advertiserVariant) SidebarItems(lang Language) []SidebarItem {
	return sidebarWith(lang,
		SidebarItem{Key: "campaigns", Label: lt("Campaigns", "الحملات").Resolve(lang)},
		SidebarItem{Key: "payments", Label: lt("Payments", "المدفوعات").Resolve(lang)},
	)
}

func (advertiserVariant) StatTiles(stats CatalogStats, lang Language) []StatTile {
	return []StatTile{
		countTile("available", lt("Available Billboards", "اللوحات المتاحة"), stats.Available, lang),
		countTile("digital", lt("Digital Screens", "الشاشات الرقمية"), stats.CountByType[TypeDigital], lang),
		moneyTile("avg_price", lt("Average Monthly Price", "متوسط السعر الشهري"), stats.AvgPrice, lang),
		countTile("enquiries", lt("Enquiries Sent", "الاستفسارات المرسلة"), stats.Enquiries, lang),
	}
}

type municipalityVariant struct{}

func (municipalityVariant) Role() string { return RoleMunicipality }

func (municipalityVariant) Tabs(lang Language) []string {
	return tabsWith(lang, lt("Permits", "التصاريح"), lt("Compliance", "الامتثال"))
}

func (municipalityVariant) SidebarItems(lang Language) []SidebarItem {
	return sidebarWith(lang,
		SidebarItem{Key: "permits", Label: lt("Permits", "التصاريح").Resolve(lang)},
		SidebarItem{Key: "investors", Label: lt("Investors", "المستثمرون").Resolve(lang)},
	)
}

func (municipalityVariant) StatTiles(stats CatalogStats, lang Language) []StatTile {
	return []StatTile{
		countTile("registered", lt("Registered Billboards", "اللوحات المسجلة"), stats.Total, lang),
		countTile("digital", lt("Digital", "رقمية"), stats.CountByType[TypeDigital], lang),
		countTile("static", lt("Static", "ثابتة"), stats.CountByType[TypeStatic], lang),
		countTile("maintenance", lt("Under Maintenance", "قيد الصيانة"), stats.Maintenance, lang),
	}
}

type adminVariant struct{}

func (adminVariant) Role() string { return RoleAdmin }

func (adminVariant) Tabs(lang Language) []string {
	return tabsWith(lang, lt("Users", "المستخدمون"), lt("System", "النظام"))
}

func (adminVariant) SidebarItems(lang Language) []SidebarItem {
	return sidebarWith(lang,
		SidebarItem{Key: "users", Label: lt("Users", "المستخدمون").Resolve(lang)},
		SidebarItem{Key: "companies", Label: lt("Companies", "الشركات").Resolve(lang)},
		SidebarItem{Key: "system", Label: lt("System", "النظام").Resolve(lang)},
	)
}

func (adminVariant) StatTiles(stats CatalogStats, lang Language) []StatTile {
	return []StatTile{
		countTile("total", lt("Total Billboards", "إجمالي اللوحات"), stats.Total, lang),
		countTile("available", lt("Available", "متاحة"), stats.Available, lang),
		countTile("enquiries", lt("Open Enquiries", "الاستفسارات المفتوحة"), stats.Enquiries, lang),
		moneyTile("avg_price", lt("Average Monthly Price", "متوسط السعر الشهري"), stats.AvgPrice, lang),
	}
}

type defaultVariant struct{}

func (defaultVariant) Role() string { return "default" }

func (defaultVariant) Tabs(lang Language) []string { return tabsWith(lang) }

func (defaultVariant) SidebarItems(lang Language) []SidebarItem {
	items := make([]SidebarItem, 0, len(commonSidebar))
	for _, entry := range commonSidebar {
		items = append(items, SidebarItem{Key: entry.key, Label: entry.label.Resolve(lang)})
	}
	return items
}

func (defaultVariant) StatTiles(stats CatalogStats, lang Language) []StatTile {
	return []StatTile{
		countTile("total", lt("Total Billboards", "إجمالي اللوحات"), stats.Total, lang),
		countTile("available", lt("Available", "متاحة"), stats.Available, lang),
	}
}
