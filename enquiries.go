package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxEnquiryMessageLength = 2000

// Enquiry is a contact request from a visitor about one billboard.
type Enquiry struct {
	ID          int       `json:"id"`
	PublicID    string    `json:"publicId"`
	BillboardID string    `json:"billboardId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Message     string    `json:"message"`
	Lang        Language  `json:"lang"`
	CreatedAt   time.Time `json:"createdAt"`
}

type enquiryPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

func (p *enquiryPayload) validate() *apiError {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.Phone = strings.TrimSpace(p.Phone)
	p.Message = strings.TrimSpace(p.Message)

	if p.Name == "" {
		return &apiError{Status: http.StatusBadRequest, Code: "name_required", Message: "Name is required"}
	}
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return &apiError{Status: http.StatusBadRequest, Code: "invalid_email", Message: "A valid email address is required"}
	}
	if p.Message == "" {
		return &apiError{Status: http.StatusBadRequest, Code: "message_required", Message: "Message is required"}
	}
	if len(p.Message) > maxEnquiryMessageLength {
		return &apiError{Status: http.StatusBadRequest, Code: "message_too_long", Message: fmt.Sprintf("Message must be at most %d characters", maxEnquiryMessageLength)}
	}
	return nil
}

func (a *App) createEnquiryHandler(c *gin.Context) {
	var payload enquiryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_payload", Message: "Invalid enquiry payload"})
		return
	}
	if apiErr := payload.validate(); apiErr != nil {
		writeAPIError(c, apiErr)
		return
	}

	lang := parseLanguage(payload.Lang)
	a.catalog.EnsureFresh(c.Request.Context())

	billboardID := c.Param("id")
	view, ok := a.catalog.GetByID(billboardID, lang)
	if !ok {
		writeAPIError(c, &apiError{
			Status:  http.StatusNotFound,
			Code:    "billboard_not_found",
			Message: uiString("details.fetch_failed", lang),
		})
		return
	}

	enquiry := Enquiry{
		PublicID:    newEnquiryPublicID(),
		BillboardID: billboardID,
		Name:        payload.Name,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Message:     payload.Message,
		Lang:        lang,
	}

	id, err := a.insertEnquiry(c.Request.Context(), enquiry)
	if err != nil {
		a.log.Error("failed to store enquiry", "billboard_id", billboardID, "error", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "enquiry_failed", Message: "Could not store enquiry"})
		return
	}
	enquiry.ID = id

	if a.cfg.EnquiryEmailTo != "" {
		msg := buildEnquiryEmail(a.cfg.EnquiryEmailTo, enquiry, view)
		if _, err := a.mailer.Send(msg); err != nil {
			// The enquiry is stored; a notification failure should not
			// surface to the visitor.
			a.log.Error("failed to send enquiry notification", "public_id", enquiry.PublicID, "error", err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"publicId": enquiry.PublicID,
		"message":  uiString("enquiry.received", lang),
	})
}

func (a *App) operatorEnquiriesHandler(c *gin.Context) {
	enquiries, err := a.listEnquiries(c.Request.Context())
	if err != nil {
		a.log.Error("failed to list enquiries", "error", err)
		writeAPIError(c, &apiError{Status: http.StatusInternalServerError, Code: "list_failed", Message: "Could not list enquiries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enquiries": enquiries})
}

func (a *App) storeInsertEnquiry(ctx context.Context, e Enquiry) (int, error) {
	var id int
	err := a.db.QueryRowContext(ctx, `
		INSERT INTO enquiries (public_id, billboard_id, name, email, phone, message, lang)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		e.PublicID, e.BillboardID, e.Name, e.Email, e.Phone, e.Message, string(e.Lang),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert enquiry: %w", err)
	}
	return id, nil
}

func (a *App) storeCountEnquiries(ctx context.Context) (int, error) {
	var count int
	if err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM enquiries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count enquiries: %w", err)
	}
	return count, nil
}

func (a *App) storeListEnquiries(ctx context.Context) ([]Enquiry, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, public_id, billboard_id, name, email, phone, message, lang, created_at
		FROM enquiries
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := []Enquiry{}
	for rows.Next() {
		var e Enquiry
		var lang string
		if err := rows.Scan(&e.ID, &e.PublicID, &e.BillboardID, &e.Name, &e.Email, &e.Phone, &e.Message, &lang, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan enquiry: %w", err)
		}
		e.Lang = parseLanguage(lang)
		enquiries = append(enquiries, e)
	}
	return enquiries, rows.Err()
}
