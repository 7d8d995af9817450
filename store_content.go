package main

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"
)

// UIContent is one bilingual interface string (banner texts, labels) keyed
// for frontend lookup.
type UIContent struct {
	Key       string    `json:"key"`
	EnText    string    `json:"en_text"`
	ArText    string    `json:"ar_text"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

func (c UIContent) localized() LocalizedText {
	return LocalizedText{En: c.EnText, Ar: c.ArText}
}

// defaultUIContents seeds the strings every screen needs. The fetch-failed
// banner keeps the exact wording users already know.
var defaultUIContents = []UIContent{
	{Key: "billboards.fetch_failed", EnText: "Failed to load billboards. Please try again later.", ArText: "فشل في تحميل اللوحات الإعلانية. يرجى المحاولة مرة أخرى لاحقًا."},
	{Key: "billboards.loading", EnText: "Loading billboard listings...", ArText: "جاري تحميل اللوحات الإعلانية..."},
	{Key: "billboards.empty", EnText: "No billboards available at the moment.", ArText: "لا توجد لوحات إعلانية متاحة حاليًا."},
	{Key: "billboards.heading", EnText: "Available Billboards", ArText: "اللوحات الإعلانية المتاحة"},
	{Key: "map.fetch_failed", EnText: "Failed to load map data. Please try again later.", ArText: "فشل في تحميل بيانات الخريطة. يرجى المحاولة مرة أخرى لاحقًا."},
	{Key: "details.fetch_failed", EnText: "Failed to load billboard details. Please try again later.", ArText: "فشل في تحميل تفاصيل اللوحة الإعلانية. يرجى المحاولة مرة أخرى لاحقًا."},
	{Key: "dashboard.welcome", EnText: "Welcome to the EAALANI platform", ArText: "مرحبًا بك في منصة EAALANI"},
	{Key: "enquiry.received", EnText: "Your enquiry has been sent. We will contact you soon.", ArText: "تم إرسال استفسارك. سنتواصل معك قريبًا."},
}

var (
	contentCacheMu sync.RWMutex
	contentCache   map[string]UIContent
)

// InitContentCache preloads all interface strings, seeding the defaults on
// first run.
func InitContentCache(ctx context.Context, db *sql.DB) error {
	for _, content := range defaultUIContents {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO ui_contents (key, en_text, ar_text, updated_by)
			VALUES ($1, $2, $3, 'seed')
			ON CONFLICT (key) DO NOTHING
		`, content.Key, content.EnText, content.ArText); err != nil {
			return err
		}
	}

	rows, err := db.QueryContext(ctx, `SELECT key, en_text, ar_text, updated_at, updated_by FROM ui_contents`)
	if err != nil {
		return err
	}
	defer rows.Close()

	newCache := make(map[string]UIContent)
	for rows.Next() {
		var c UIContent
		if err := rows.Scan(&c.Key, &c.EnText, &c.ArText, &c.UpdatedAt, &c.UpdatedBy); err != nil {
			return err
		}
		newCache[c.Key] = c
	}
	if err := rows.Err(); err != nil {
		return err
	}

	contentCacheMu.Lock()
	contentCache = newCache
	contentCacheMu.Unlock()

	return nil
}

// uiString resolves one interface string from the cache, falling back to
// the built-in defaults when the cache is cold.
func uiString(key string, lang Language) string {
	contentCacheMu.RLock()
	content, ok := contentCache[key]
	contentCacheMu.RUnlock()
	if ok {
		return content.localized().Resolve(lang)
	}
	for _, seed := range defaultUIContents {
		if seed.Key == key {
			return seed.localized().Resolve(lang)
		}
	}
	return ""
}

// GetContentCache returns both language maps for frontends to consume,
// shaped { "en": { key: text }, "ar": { key: text } }.
func GetContentCache() map[string]map[string]string {
	contentCacheMu.RLock()
	defer contentCacheMu.RUnlock()

	res := map[string]map[string]string{
		"en": make(map[string]string),
		"ar": make(map[string]string),
	}
	for key, content := range contentCache {
		if content.EnText != "" {
			res["en"][key] = content.EnText
		}
		if content.ArText != "" {
			res["ar"][key] = content.ArText
		}
	}
	return res
}

// GetAllUIContents returns the raw list, used by the operator surface.
func GetAllUIContents() []UIContent {
	contentCacheMu.RLock()
	defer contentCacheMu.RUnlock()

	var list []UIContent
	for _, c := range contentCache {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Key < list[j].Key
	})
	return list
}

// SaveUIContent updates the database and the cache together.
func SaveUIContent(ctx context.Context, db *sql.DB, content UIContent) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO ui_contents (key, en_text, ar_text, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (key) DO UPDATE SET
			en_text = EXCLUDED.en_text,
			ar_text = EXCLUDED.ar_text,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
	`, content.Key, content.EnText, content.ArText, now, content.UpdatedBy)
	if err != nil {
		return err
	}

	content.UpdatedAt = now
	contentCacheMu.Lock()
	if contentCache == nil {
		contentCache = make(map[string]UIContent)
	}
	contentCache[content.Key] = content
	contentCacheMu.Unlock()

	return nil
}
