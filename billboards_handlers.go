package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requestLanguage picks the render language: explicit ?lang= wins, then the
// session cookie's preference, then English.
func (a *App) requestLanguage(c *gin.Context) Language {
	if raw := c.Query("lang"); raw != "" {
		return parseLanguage(raw)
	}
	if token, err := c.Cookie(userCookieName); err == nil {
		if session, err := a.verifyUserSessionToken(token); err == nil {
			return session.Lang
		}
	}
	return LangEnglish
}

// fetchStatePayload reports the catalog lifecycle alongside the records.
// A failed fetch is a banner, not an empty screen: the fallback collection
// is served in the same response.
func (a *App) fetchStatePayload(lang Language, errorKey string) gin.H {
	state, err := a.catalog.State()
	payload := gin.H{"state": state}
	if err != nil {
		payload["error"] = gin.H{
			"code":    "fetch_failed",
			"message": uiString(errorKey, lang),
		}
	}
	return payload
}

func (a *App) billboardsHandler(c *gin.Context) {
	lang := a.requestLanguage(c)
	a.catalog.EnsureFresh(c.Request.Context())

	payload := a.fetchStatePayload(lang, "billboards.fetch_failed")
	payload["lang"] = lang
	payload["isRTL"] = lang.IsRTL()
	payload["heading"] = uiString("billboards.heading", lang)
	payload["billboards"] = a.catalog.GetAll(lang)
	c.JSON(http.StatusOK, payload)
}

func (a *App) billboardDetailsHandler(c *gin.Context) {
	lang := a.requestLanguage(c)
	a.catalog.EnsureFresh(c.Request.Context())

	view, ok := a.catalog.GetByID(c.Param("id"), lang)
	if !ok {
		writeAPIError(c, &apiError{
			Status:  http.StatusNotFound,
			Code:    "billboard_not_found",
			Message: uiString("details.fetch_failed", lang),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lang": lang, "isRTL": lang.IsRTL(), "billboard": view})
}

func (a *App) mapHandler(c *gin.Context) {
	lang := a.requestLanguage(c)
	a.catalog.EnsureFresh(c.Request.Context())

	payload := a.fetchStatePayload(lang, "map.fetch_failed")
	payload["lang"] = lang
	payload["isRTL"] = lang.IsRTL()
	payload["center"] = gin.H{"lat": riyadhCenterLat, "lng": riyadhCenterLng}
	payload["markers"] = a.catalog.Markers(lang)
	c.JSON(http.StatusOK, payload)
}

func (a *App) contentHandler(c *gin.Context) {
	c.JSON(http.StatusOK, GetContentCache())
}

// viewStateForSession returns the per-session controller, creating it with
// the session's dashboard variant on first use.
func (a *App) viewStateForSession(session UserSession) *ViewStateController {
	a.viewStateMu.Lock()
	defer a.viewStateMu.Unlock()
	if controller, ok := a.viewStates[session.Email]; ok {
		return controller
	}
	controller := NewViewStateController(a.catalog, dashboardVariantForRole(session.Role), nil)
	a.viewStates[session.Email] = controller
	return controller
}

func (a *App) viewStateHandler(c *gin.Context) {
	session, err := getUserSession(c)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Session required"})
		return
	}
	a.catalog.EnsureFresh(c.Request.Context())
	c.JSON(http.StatusOK, a.viewStateForSession(session).Snapshot())
}

func (a *App) updateViewStateHandler(c *gin.Context) {
	session, err := getUserSession(c)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Session required"})
		return
	}

	var payload struct {
		DisplayMode       *string `json:"displayMode"`
		SelectedID        *string `json:"selectedId"`
		ClearSelection    bool    `json:"clearSelection"`
		ActiveTab         *int    `json:"activeTab"`
		ActiveSidebarItem *int    `json:"activeSidebarItem"`
		ViewDetails       *string `json:"viewDetails"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid view state payload"})
		return
	}

	a.catalog.EnsureFresh(c.Request.Context())
	controller := a.viewStateForSession(session)

	if payload.DisplayMode != nil {
		mode, ok := parseDisplayMode(*payload.DisplayMode)
		if !ok {
			writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_display_mode", Message: "Unknown display mode"})
			return
		}
		controller.SetDisplayMode(mode)
	}
	if payload.ClearSelection {
		controller.ClearSelection()
	}
	if payload.SelectedID != nil {
		controller.Select(*payload.SelectedID)
	}
	if payload.ActiveTab != nil {
		controller.SetActiveTab(*payload.ActiveTab)
	}
	if payload.ActiveSidebarItem != nil {
		controller.SetActiveSidebarItem(*payload.ActiveSidebarItem)
	}

	response := gin.H{"viewState": controller.Snapshot()}

	// Detail navigation is a request emitted to the routing collaborator;
	// here that collaborator is the frontend reading navigateTo.
	if payload.ViewDetails != nil && controller.ViewDetails(*payload.ViewDetails) {
		response["navigateTo"] = "/billboards/" + *payload.ViewDetails
	}

	c.JSON(http.StatusOK, response)
}
