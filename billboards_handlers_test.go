package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestApp(t *testing.T, source BillboardSource) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app := &App{
		cfg: &Config{
			AppSigningSecret: testSigningSecret,
			Env:              "test",
			CatalogMaxAge:    time.Minute,
		},
		log:        testLogger(),
		viewStates: make(map[string]*ViewStateController),
	}
	app.catalog = NewCatalog(source, fallbackBillboards, time.Minute, app.log)
	return app
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return payload
}

func TestBillboardsHandlerServesResolvedCollection(t *testing.T) {
	app := newTestApp(t, staticSource([]RawBillboardRow{validRawRow()}, nil))

	c, w := testContext(t, "GET", "/api/v1/billboards?lang=ar", nil)
	app.billboardsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "loaded", payload["state"])
	assert.Equal(t, "ar", payload["lang"])
	assert.Equal(t, true, payload["isRTL"])
	assert.Nil(t, payload["error"])

	billboards := payload["billboards"].([]any)
	if len(billboards) != 1 {
		t.Fatalf("expected 1 billboard, got %d", len(billboards))
	}
	first := billboards[0].(map[string]any)
	assert.Equal(t, "لوحة رقمية متميزة", first["title"])
	assert.Equal(t, "متاح", first["statusLabel"])
}

func TestBillboardsHandlerFailureServesFallbackWithBanner(t *testing.T) {
	app := newTestApp(t, staticSource(nil, errors.New("connection refused")))

	c, w := testContext(t, "GET", "/api/v1/billboards?lang=ar", nil)
	app.billboardsHandler(c)

	// The failure is a banner, not an error response.
	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "failed", payload["state"])

	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "fetch_failed", errObj["code"])
	assert.Equal(t, "فشل في تحميل اللوحات الإعلانية. يرجى المحاولة مرة أخرى لاحقًا.", errObj["message"])

	billboards := payload["billboards"].([]any)
	assert.Len(t, billboards, len(fallbackBillboards))
}

func TestBillboardsHandlerDefaultsToEnglish(t *testing.T) {
	app := newTestApp(t, staticSource(nil, errors.New("down")))

	c, w := testContext(t, "GET", "/api/v1/billboards", nil)
	app.billboardsHandler(c)

	payload := decodeBody(t, w)
	assert.Equal(t, "en", payload["lang"])
	errObj := payload["error"].(map[string]any)
	assert.Equal(t, "Failed to load billboards. Please try again later.", errObj["message"])
}

func TestBillboardDetailsHandler(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	c, w := testContext(t, "GET", "/api/v1/billboards/1?lang=en", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	app.billboardDetailsHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	billboard := payload["billboard"].(map[string]any)
	assert.Equal(t, "1", billboard["id"])
	assert.Equal(t, "Premium Digital Billboard - King Fahd Road", billboard["title"])
}

func TestBillboardDetailsHandlerNotFound(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	c, w := testContext(t, "GET", "/api/v1/billboards/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	app.billboardDetailsHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "billboard_not_found", payload["error"])
}

func TestMapHandlerServesMarkers(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	c, w := testContext(t, "GET", "/api/v1/map?lang=en", nil)
	app.mapHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)

	center := payload["center"].(map[string]any)
	assert.Equal(t, riyadhCenterLat, center["lat"])

	markers := payload["markers"].([]any)
	assert.Len(t, markers, len(fallbackBillboards))
	first := markers[0].(map[string]any)
	for _, key := range []string{"id", "lat", "lng", "x", "y", "status", "price", "title"} {
		if _, ok := first[key]; !ok {
			t.Fatalf("marker missing %q", key)
		}
	}
}

func sessionForTest(role string, lang Language) UserSession {
	return UserSession{Name: "Test", Email: "test@example.com", Role: role, Lang: lang, IsRTL: lang.IsRTL()}
}

func TestViewStateHandlerRequiresSession(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	c, w := testContext(t, "GET", "/api/v1/view-state", nil)
	app.viewStateHandler(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewStateHandlerReturnsDefaults(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	c, w := testContext(t, "GET", "/api/v1/view-state", nil)
	c.Set("userSession", sessionForTest(RoleInvestor, LangEnglish))
	app.viewStateHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "grid", payload["displayMode"])
	assert.Equal(t, "", payload["selectedId"])
}

func TestUpdateViewStateHandler(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	body, _ := json.Marshal(map[string]any{
		"displayMode": "map",
		"selectedId":  "2",
		"activeTab":   1,
	})
	c, w := testContext(t, "POST", "/api/v1/view-state", body)
	c.Set("userSession", sessionForTest(RoleInvestor, LangEnglish))
	app.updateViewStateHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	state := payload["viewState"].(map[string]any)
	assert.Equal(t, "map", state["displayMode"])
	assert.Equal(t, "2", state["selectedId"])
	assert.Equal(t, float64(1), state["activeTab"])
}

func TestUpdateViewStateHandlerRejectsUnknownDisplayMode(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	body, _ := json.Marshal(map[string]any{"displayMode": "carousel"})
	c, w := testContext(t, "POST", "/api/v1/view-state", body)
	c.Set("userSession", sessionForTest(RoleInvestor, LangEnglish))
	app.updateViewStateHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "invalid_display_mode", payload["error"])
}

func TestUpdateViewStateHandlerViewDetailsEmitsNavigation(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	body, _ := json.Marshal(map[string]any{"viewDetails": "3"})
	c, w := testContext(t, "POST", "/api/v1/view-state", body)
	c.Set("userSession", sessionForTest(RoleInvestor, LangEnglish))
	app.updateViewStateHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Equal(t, "/billboards/3", payload["navigateTo"])
}

func TestUpdateViewStateHandlerViewDetailsUnknownIDNoNavigation(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))

	body, _ := json.Marshal(map[string]any{"viewDetails": "missing"})
	c, w := testContext(t, "POST", "/api/v1/view-state", body)
	c.Set("userSession", sessionForTest(RoleInvestor, LangEnglish))
	app.updateViewStateHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decodeBody(t, w)
	assert.Nil(t, payload["navigateTo"])
}

func TestViewStateIsPerSession(t *testing.T) {
	app := newTestApp(t, staticSource(nil, nil))
	app.catalog.EnsureFresh(context.Background())

	first := app.viewStateForSession(sessionForTest(RoleInvestor, LangEnglish))
	first.SetDisplayMode(ModeMap)

	other := UserSession{Name: "Other", Email: "other@example.com", Role: RoleAdmin, Lang: LangArabic}
	second := app.viewStateForSession(other)

	assert.Equal(t, ModeMap, first.Snapshot().DisplayMode)
	assert.Equal(t, ModeGrid, second.Snapshot().DisplayMode)

	// Same session gets the same controller back.
	again := app.viewStateForSession(sessionForTest(RoleInvestor, LangEnglish))
	assert.Equal(t, ModeMap, again.Snapshot().DisplayMode)
}
