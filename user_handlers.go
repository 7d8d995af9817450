package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Marketplace accounts are demo-grade: any email and non-empty password
// sign in, the role comes from the payload and the profile lives in the
// session cookie. Operator accounts (operator_handlers.go) are the real,
// password-checked surface.
type userAuthPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Lang     string `json:"lang"`
}

func (p *userAuthPayload) validate(requireName bool) *apiError {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Role = strings.ToLower(strings.TrimSpace(p.Role))

	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_email", Message: "A valid email address is required"}
	}
	if p.Password == "" {
		return &apiError{Status: http.StatusBadRequest, Code: "password_required", Message: "Password is required"}
	}
	if requireName && p.Name == "" {
		return &apiError{Status: http.StatusBadRequest, Code: "name_required", Message: "Name is required"}
	}
	if p.Role == "" {
		p.Role = RoleInvestor
	}
	if !containsString(userRoles, p.Role) {
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_role", Message: "Unknown account role"}
	}
	return nil
}

func (a *App) startUserSession(c *gin.Context, payload userAuthPayload) {
	name := payload.Name
	if name == "" {
		name = strings.SplitN(payload.Email, "@", 2)[0]
	}
	lang := parseLanguage(payload.Lang)

	session := UserSession{
		Name:  name,
		Email: payload.Email,
		Role:  payload.Role,
		Lang:  lang,
		IsRTL: lang.IsRTL(),
	}

	token, err := a.createUserSessionToken(session)
	if err != nil {
		a.log.Error("failed to create user session token", "email", payload.Email, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to create session"})
		return
	}

	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetCookie(userCookieName, token, int(userSessionDuration.Seconds()), "/", "", secure, true)
	c.JSON(http.StatusOK, session)
}

func (a *App) userLoginHandler(c *gin.Context) {
	var payload userAuthPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid request payload"})
		return
	}
	if apiErr := payload.validate(false); apiErr != nil {
		writeAPIError(c, apiErr)
		return
	}
	a.startUserSession(c, payload)
}

func (a *App) userSignupHandler(c *gin.Context) {
	var payload userAuthPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid request payload"})
		return
	}
	if apiErr := payload.validate(true); apiErr != nil {
		writeAPIError(c, apiErr)
		return
	}
	a.startUserSession(c, payload)
}

func (a *App) userLogoutHandler(c *gin.Context) {
	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetCookie(userCookieName, "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *App) userSessionHandler(c *gin.Context) {
	token, err := c.Cookie(userCookieName)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "User session required"})
		return
	}

	session, err := a.verifyUserSessionToken(token)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "User session required"})
		return
	}

	c.JSON(http.StatusOK, session)
}
