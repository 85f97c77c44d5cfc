package entity

import "strings"

// Locale is a supported content language code.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleRU Locale = "ru"
	LocaleTM Locale = "tm"
)

// LocaleSet is an ordered set of locales; the first entry is the fallback.
type LocaleSet []Locale

// SupportedLocales are the languages every localized field may carry.
var SupportedLocales = LocaleSet{LocaleEN, LocaleRU, LocaleTM}

// Contains reports whether l is part of the set.
func (s LocaleSet) Contains(l Locale) bool {
	for _, x := range s {
		if x == l {
			return true
		}
	}
	return false
}

// Default returns the fallback locale of the set.
func (s LocaleSet) Default() Locale {
	if len(s) == 0 {
		return LocaleEN
	}
	return s[0]
}

// LocalizedText is a text value stored once per locale, e.g. {"en":"X","ru":"Х","tm":"X"}.
// It is serialized as a JSON object and persisted as JSONB.
type LocalizedText map[Locale]string

// Complete reports whether every locale of set has a non-blank value.
func (t LocalizedText) Complete(set LocaleSet) bool {
	if len(t) == 0 {
		return false
	}
	for _, l := range set {
		if strings.TrimSpace(t[l]) == "" {
			return false
		}
	}
	return true
}

// Unknown returns the keys that are not part of set.
func (t LocalizedText) Unknown(set LocaleSet) []Locale {
	var out []Locale
	for l := range t {
		if !set.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}

// Get returns the value for l, falling back to the default locale of
// SupportedLocales and then to any non-empty value.
func (t LocalizedText) Get(l Locale) string {
	if v := t[l]; v != "" {
		return v
	}
	if v := t[SupportedLocales.Default()]; v != "" {
		return v
	}
	for _, x := range SupportedLocales {
		if v := t[x]; v != "" {
			return v
		}
	}
	return ""
}

// Values returns the non-empty values in SupportedLocales order.
func (t LocalizedText) Values() []string {
	out := make([]string, 0, len(t))
	for _, l := range SupportedLocales {
		if v := t[l]; v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Text is a convenience constructor for a fully populated LocalizedText.
func Text(en, ru, tm string) *LocalizedText {
	return &LocalizedText{LocaleEN: en, LocaleRU: ru, LocaleTM: tm}
}
