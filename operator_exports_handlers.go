package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
)

// ExportBatch is one generated inventory snapshot: the full billboard
// collection frozen to CSV, GeoJSON and a PDF summary on disk.
type ExportBatch struct {
	ID          int    `json:"id"`
	GeneratedAt string `json:"generatedAt"`
	GeneratedBy string `json:"generatedBy"`
	RowCount    int    `json:"rowCount"`
}

type exportArtifacts struct {
	CSV     string
	GeoJSON string
	PDF     []byte
}

func (a *App) operatorExportsHandler(c *gin.Context) {
	exports, err := a.listExportBatches(c.Request.Context())
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, exports)
}

func (a *App) operatorGenerateExportHandler(c *gin.Context) {
	session, err := getOperatorSession(c)
	if err != nil {
		writeAPIError(c, &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "Operator session required"})
		return
	}

	batch, err := a.generateExportBatch(c.Request.Context(), session)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (a *App) generateExportBatch(ctx context.Context, session OperatorSession) (*ExportBatch, error) {
	a.catalog.EnsureFresh(ctx)
	records := a.catalog.Records()
	if state, err := a.catalog.State(); state == StateFailed {
		// A snapshot of the fallback collection is misleading; refuse.
		return nil, &apiError{Status: http.StatusServiceUnavailable, Code: "inventory_unavailable", Message: fmt.Sprintf("Inventory fetch failed: %v", err)}
	}

	artifacts, err := buildExportArtifacts(records)
	if err != nil {
		return nil, err
	}

	var exportID int
	generatedAt := time.Now().UTC()
	if err := a.db.QueryRowContext(ctx, `
		INSERT INTO export_batches (generated_by, row_count, csv_path, geojson_path, pdf_path)
		VALUES ($1, $2, '', '', '')
		RETURNING id
	`, session.Email, len(records)).Scan(&exportID); err != nil {
		return nil, err
	}

	exportDir := filepath.Join(a.cfg.DataRoot, "exports", strconv.Itoa(exportID))
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return nil, err
	}

	baseName := fmt.Sprintf("ealaani-inventory-%s", generatedAt.Format("2006-01-02"))
	csvFile := filepath.Join(exportDir, baseName+".csv")
	geoFile := filepath.Join(exportDir, baseName+".geojson")
	pdfFile := filepath.Join(exportDir, baseName+".pdf")

	if err := os.WriteFile(csvFile, []byte(artifacts.CSV), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(geoFile, []byte(artifacts.GeoJSON), 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(pdfFile, artifacts.PDF, 0o644); err != nil {
		return nil, err
	}

	relCSV, _ := filepath.Rel(a.cfg.DataRoot, csvFile)
	relGeo, _ := filepath.Rel(a.cfg.DataRoot, geoFile)
	relPDF, _ := filepath.Rel(a.cfg.DataRoot, pdfFile)

	if _, err := a.db.ExecContext(ctx, `
		UPDATE export_batches
		SET csv_path = $1, geojson_path = $2, pdf_path = $3
		WHERE id = $4
	`, relCSV, relGeo, relPDF, exportID); err != nil {
		return nil, err
	}

	a.log.Info("inventory export generated", "id", exportID, "rows", len(records), "by", session.Email)

	return &ExportBatch{
		ID:          exportID,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		GeneratedBy: session.Email,
		RowCount:    len(records),
	}, nil
}

func buildExportArtifacts(records []Billboard) (exportArtifacts, error) {
	sorted := append([]Billboard{}, records...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	csvData, err := buildInventoryCSV(sorted)
	if err != nil {
		return exportArtifacts{}, err
	}
	geoJSON, err := buildInventoryGeoJSON(sorted)
	if err != nil {
		return exportArtifacts{}, err
	}
	pdfData, err := buildInventoryPDF(sorted)
	if err != nil {
		return exportArtifacts{}, err
	}

	return exportArtifacts{CSV: csvData, GeoJSON: geoJSON, PDF: pdfData}, nil
}

func buildInventoryCSV(records []Billboard) (string, error) {
	buffer := bytes.NewBuffer(nil)
	writer := csv.NewWriter(buffer)
	headers := []string{"id", "title_en", "title_ar", "location_en", "type", "size", "status", "price_sar", "rating", "impressions", "lat", "lng"}
	if err := writer.Write(headers); err != nil {
		return "", err
	}
	for _, record := range records {
		lat, lng := projectPosition(record.MapPosition)
		row := []string{
			record.ID,
			record.Title.En,
			record.Title.Ar,
			record.Location.En,
			record.Type,
			record.Size,
			record.Status,
			fmt.Sprintf("%.2f", record.Price),
			fmt.Sprintf("%.1f", record.Rating),
			record.Impressions,
			fmt.Sprintf("%f", lat),
			fmt.Sprintf("%f", lng),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func buildInventoryGeoJSON(records []Billboard) (string, error) {
	features := make([]map[string]any, 0, len(records))
	for _, record := range records {
		lat, lng := projectPosition(record.MapPosition)
		features = append(features, map[string]any{
			"type": "Feature",
			"geometry": map[string]any{
				"type":        "Point",
				"coordinates": []float64{lng, lat},
			},
			"properties": map[string]any{
				"id":     record.ID,
				"title":  record.Title.En,
				"type":   record.Type,
				"status": record.Status,
				"price":  record.Price,
			},
		})
	}
	payload := map[string]any{"type": "FeatureCollection", "features": features}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func buildInventoryPDF(records []Billboard) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, "EAALANI Billboard Inventory")

	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total billboards: %d", len(records)))
	pdf.Ln(10)

	statusCounts := map[string]int{}
	typeCounts := map[string]int{}
	totalPrice := 0.0
	for _, record := range records {
		statusCounts[record.Status]++
		typeCounts[record.Type]++
		totalPrice += record.Price
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Status distribution")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, status := range billboardStatuses {
		if statusCounts[status] == 0 {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("- %s: %d", status, statusCounts[status]))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Type distribution")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, billboardType := range billboardTypes {
		if typeCounts[billboardType] == 0 {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("- %s: %d", billboardType, typeCounts[billboardType]))
		pdf.Ln(6)
	}

	if len(records) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 8, "Pricing")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("- Average monthly price: SAR %.0f", totalPrice/float64(len(records))))
		pdf.Ln(6)

		topRated := append([]Billboard{}, records...)
		sort.Slice(topRated, func(i, j int) bool {
			if topRated[i].Rating != topRated[j].Rating {
				return topRated[i].Rating > topRated[j].Rating
			}
			return topRated[i].ID < topRated[j].ID
		})
		limit := len(topRated)
		if limit > 10 {
			limit = 10
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 8, "Top rated")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for i := 0; i < limit; i++ {
			pdf.Cell(0, 6, fmt.Sprintf("- %s (%.1f): %s", topRated[i].ID, topRated[i].Rating, topRated[i].Title.En))
			pdf.Ln(6)
		}
	}

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (a *App) operatorExportDownloadHandler(c *gin.Context) {
	exportID, err := strconv.Atoi(c.Param("id"))
	if err != nil || exportID <= 0 {
		writeAPIError(c, &apiError{Status: http.StatusBadRequest, Code: "invalid_id", Message: "Invalid export ID"})
		return
	}
	format := strings.TrimSpace(c.Query("format"))
	if format != "geojson" && format != "pdf" {
		format = "csv"
	}

	contentType, body, fileName, err := a.getExportAsset(c.Request.Context(), exportID, format)
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", fileName))
	_, _ = c.Writer.Write(body)
}

func (a *App) getExportAsset(ctx context.Context, exportID int, format string) (string, []byte, string, error) {
	var generatedAt time.Time
	var csvPath, geojsonPath, pdfPath sql.NullString
	err := a.db.QueryRowContext(ctx, `
		SELECT created_at, csv_path, geojson_path, pdf_path
		FROM export_batches
		WHERE id = $1
	`, exportID).Scan(&generatedAt, &csvPath, &geojsonPath, &pdfPath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, "", &apiError{Status: http.StatusNotFound, Code: "export_not_found", Message: "Export batch not found"}
		}
		return "", nil, "", err
	}

	base := fmt.Sprintf("ealaani-inventory-%s", generatedAt.UTC().Format("2006-01-02"))
	var selectedPath string
	switch format {
	case "geojson":
		selectedPath = geojsonPath.String
	case "pdf":
		selectedPath = pdfPath.String
	default:
		selectedPath = csvPath.String
	}
	if selectedPath == "" {
		return "", nil, "", &apiError{Status: http.StatusNotFound, Code: "export_not_found", Message: "Export artifact not found"}
	}

	fullPath := filepath.Join(a.cfg.DataRoot, selectedPath)
	body, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, "", &apiError{Status: http.StatusNotFound, Code: "export_not_found", Message: "Export artifact not found"}
		}
		return "", nil, "", err
	}

	switch format {
	case "geojson":
		return "application/geo+json; charset=utf-8", body, base + ".geojson", nil
	case "pdf":
		return "application/pdf", body, base + ".pdf", nil
	default:
		return "text/csv; charset=utf-8", body, base + ".csv", nil
	}
}

func (a *App) listExportBatches(ctx context.Context) ([]ExportBatch, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, generated_by, row_count, created_at
		FROM export_batches
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	batches := make([]ExportBatch, 0)
	for rows.Next() {
		var batch ExportBatch
		var createdAt time.Time
		if err := rows.Scan(&batch.ID, &batch.GeneratedBy, &batch.RowCount, &createdAt); err != nil {
			return nil, err
		}
		batch.GeneratedAt = createdAt.UTC().Format(time.RFC3339)
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}
