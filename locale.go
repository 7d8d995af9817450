package main

import "strings"

// Language selects which rendition of a bilingual value is shown.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

func parseLanguage(raw string) Language {
	if strings.EqualFold(strings.TrimSpace(raw), string(LangArabic)) {
		return LangArabic
	}
	return LangEnglish
}

func (l Language) IsRTL() bool {
	return l == LangArabic
}

// LocalizedText is a display string carried in both English and Arabic.
// After normalization both renditions are always present, possibly empty,
// so resolving can never fail mid-render.
type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// Resolve returns the rendition for lang. An empty rendition falls back to
// English; if English is empty too the result is the empty string.
func (t LocalizedText) Resolve(lang Language) string {
	if lang == LangArabic && t.Ar != "" {
		return t.Ar
	}
	return t.En
}

func (t LocalizedText) IsEmpty() bool {
	return t.En == "" && t.Ar == ""
}

// LocalizedList is an ordered string list carried in both languages.
// Insertion order is preserved for display.
type LocalizedList struct {
	En []string `json:"en"`
	Ar []string `json:"ar"`
}

// Resolve returns the list for lang with the same English fallback rule as
// LocalizedText. The result is never nil.
func (l LocalizedList) Resolve(lang Language) []string {
	if lang == LangArabic && len(l.Ar) > 0 {
		return l.Ar
	}
	if l.En == nil {
		return []string{}
	}
	return l.En
}
