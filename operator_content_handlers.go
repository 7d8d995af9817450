package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *App) operatorContentHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"contents": GetAllUIContents()})
}

func (a *App) operatorUpdateContentHandler(c *gin.Context) {
	session, err := getOperatorSession(c)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Operator session required"})
		return
	}

	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_key", Message: "Content key is required"})
		return
	}

	var payload struct {
		EnText string `json:"enText"`
		ArText string `json:"arText"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid content payload"})
		return
	}
	if strings.TrimSpace(payload.EnText) == "" {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "English text is required"})
		return
	}

	content := UIContent{
		Key:       key,
		EnText:    payload.EnText,
		ArText:    payload.ArText,
		UpdatedBy: session.Email,
	}
	if err := SaveUIContent(c.Request.Context(), a.db, content); err != nil {
		a.log.Error("failed to save content", "key", key, "err", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "Failed to save content"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
