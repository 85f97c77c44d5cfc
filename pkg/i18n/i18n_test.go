package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	cases := []struct {
		explicit, header, want string
	}{
		{"ru", "en-US", LangRU},
		{"TM", "", LangTM},
		{"tk", "", LangTM},
		{"", "ru-RU,ru;q=0.9,en;q=0.8", LangRU},
		{"", "tk-TM", LangTM},
		{"", "de-DE", LangEN},
		{"fr", "garbage;;", LangEN},
		{"", "", LangEN},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Negotiate(tc.explicit, tc.header), "explicit=%q header=%q", tc.explicit, tc.header)
	}
}

func TestTranslate(t *testing.T) {
	tr := MustNew()

	assert.Equal(t, "University not found", tr.T(LangEN, "university_not_found"))
	assert.Equal(t, "Университет не найден", tr.T(LangRU, "university_not_found"))
	assert.Equal(t, "Uniwersitet tapylmady", tr.T(LangTM, "university_not_found"))
	assert.Equal(t, "Welcome to Universe", tr.T(LangEN, "welcome_subject", map[string]any{"AppName": "Universe"}))

	// unknown locale falls back to English, unknown id to the id itself
	assert.Equal(t, "Validation failed", tr.T("de", "validation_failed"))
	assert.Equal(t, "no_such_message", tr.T(LangEN, "no_such_message"))
}
