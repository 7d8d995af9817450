package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// storeListBillboardRows fetches the whole billboards collection. No
// filtering, pagination or sorting beyond insertion order; views decide
// what to show.
func (a *App) storeListBillboardRows(ctx context.Context) ([]RawBillboardRow, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, title, location, description, type, size, price, status,
		       impressions, images, features, nearby_attractions, map_position, rating
		FROM billboards
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []RawBillboardRow
	for rows.Next() {
		var row RawBillboardRow
		var title, location, description, images, features, attractions, position []byte
		var size, impressions sql.NullString
		if err := rows.Scan(
			&row.ID, &title, &location, &description, &row.Type, &size, &row.Price,
			&row.Status, &impressions, &images, &features, &attractions, &position, &row.Rating,
		); err != nil {
			return nil, err
		}
		row.Size = size.String
		row.Impressions = impressions.String
		row.Title = rawJSONField(title)
		row.Location = rawJSONField(location)
		row.Description = rawJSONField(description)
		row.Images = rawJSONField(images)
		row.Features = rawJSONField(features)
		row.NearbyAttractions = rawJSONField(attractions)
		row.MapPosition = rawJSONField(position)
		result = append(result, row)
	}
	return result, rows.Err()
}

// rawJSONField keeps NULL columns absent instead of handing normalization
// an empty byte slice.
func rawJSONField(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return value
}

// storeUpsertBillboard writes one canonical record back as a row, used by
// the seed subcommand to load the fallback dataset into the database.
func (a *App) storeUpsertBillboard(ctx context.Context, b Billboard) error {
	title, err := json.Marshal(b.Title)
	if err != nil {
		return err
	}
	location, err := json.Marshal(b.Location)
	if err != nil {
		return err
	}
	description, err := json.Marshal(b.Description)
	if err != nil {
		return err
	}
	images, err := json.Marshal(b.Images)
	if err != nil {
		return err
	}
	features, err := json.Marshal(b.Features)
	if err != nil {
		return err
	}
	attractions, err := json.Marshal(b.NearbyAttractions)
	if err != nil {
		return err
	}
	position, err := json.Marshal(b.MapPosition)
	if err != nil {
		return err
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO billboards (id, title, location, description, type, size, price, status,
		                        impressions, images, features, nearby_attractions, map_position, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			size = EXCLUDED.size,
			price = EXCLUDED.price,
			status = EXCLUDED.status,
			impressions = EXCLUDED.impressions,
			images = EXCLUDED.images,
			features = EXCLUDED.features,
			nearby_attractions = EXCLUDED.nearby_attractions,
			map_position = EXCLUDED.map_position,
			rating = EXCLUDED.rating,
			updated_at = NOW()
	`, b.ID, title, location, description, b.Type, b.Size, b.Price, b.Status,
		b.Impressions, images, features, attractions, position, b.Rating)
	if err != nil {
		return fmt.Errorf("upsert billboard %s: %w", b.ID, err)
	}
	return nil
}
