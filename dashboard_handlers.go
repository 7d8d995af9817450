package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *App) dashboardHandler(c *gin.Context) {
	session, err := getUserSession(c)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Session required"})
		return
	}

	lang := session.Lang
	if raw := c.Query("lang"); raw != "" {
		lang = parseLanguage(raw)
	}

	a.catalog.EnsureFresh(c.Request.Context())

	enquiryCount := 0
	if count, err := a.countEnquiries(c.Request.Context()); err != nil {
		a.log.Error("failed to count enquiries for dashboard", "err", err)
	} else {
		enquiryCount = count
	}

	variant := dashboardVariantForRole(session.Role)
	stats := computeCatalogStats(a.catalog.Records(), enquiryCount)

	payload := a.fetchStatePayload(lang, "billboards.fetch_failed")
	payload["role"] = variant.Role()
	payload["lang"] = lang
	payload["isRTL"] = lang.IsRTL()
	payload["welcome"] = uiString("dashboard.welcome", lang)
	payload["tabs"] = variant.Tabs(lang)
	payload["sidebarItems"] = variant.SidebarItems(lang)
	payload["statTiles"] = variant.StatTiles(stats, lang)
	c.JSON(http.StatusOK, payload)
}
