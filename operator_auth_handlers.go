package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *App) operatorLoginHandler(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid request payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" || payload.Password == "" {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Email and password are required"})
		return
	}

	op, err := a.authenticateOperator(c.Request.Context(), email, payload.Password)
	if err != nil {
		if errors.Is(err, errInvalidCredentials) {
			writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "invalid_credentials", Message: "Invalid email or password"})
			return
		}
		a.log.Error("operator login failed", "email", email, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to log in"})
		return
	}

	session := OperatorSession{Email: op.Email, Role: op.Role}
	token, err := a.createOperatorSessionToken(session)
	if err != nil {
		a.log.Error("failed to create operator session token", "email", op.Email, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to create session"})
		return
	}

	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetCookie(operatorCookieName, token, int(operatorSessionDuration.Seconds()), "/", "", secure, true)
	c.JSON(http.StatusOK, session)
}

func (a *App) operatorLogoutHandler(c *gin.Context) {
	secure := strings.EqualFold(a.cfg.Env, "production")
	c.SetCookie(operatorCookieName, "", -1, "/", "", secure, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *App) operatorSessionHandler(c *gin.Context) {
	session, err := getOperatorSession(c)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Operator session required"})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (a *App) operatorListOperatorsHandler(c *gin.Context) {
	operators, err := a.storeListOperators(c.Request.Context())
	if err != nil {
		a.log.Error("failed to list operators", "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to list operators"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"operators": operators})
}

func (a *App) operatorCreateOperatorHandler(c *gin.Context) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid request payload"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	role := strings.ToLower(strings.TrimSpace(payload.Role))
	if role == "" {
		role = "support"
	}
	if email == "" || !strings.Contains(email, "@") {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_email", Message: "A valid email address is required"})
		return
	}
	if len(payload.Password) < 8 {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "weak_password", Message: "Password must be at least 8 characters"})
		return
	}
	if !containsString(operatorRoles, role) {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_role", Message: "Unknown operator role"})
		return
	}

	if err := a.storeCreateOperator(c.Request.Context(), email, payload.Password, role); err != nil {
		a.log.Error("failed to create operator", "email", email, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to create operator"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true})
}

// operatorToggleOperatorHandler deactivates or reactivates an account.
// Deactivated operators fail login but keep their audit trail.
func (a *App) operatorToggleOperatorHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_id", Message: "Invalid operator ID"})
		return
	}

	isActive, err := a.storeToggleOperatorStatus(c.Request.Context(), id)
	if err != nil {
		a.log.Error("failed to toggle operator status", "id", id, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to update operator"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "isActive": isActive})
}
