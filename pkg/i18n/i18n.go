package i18n

import (
	"embed"
	"io/fs"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var catalogFS embed.FS

// Content locale codes. Turkmen is "tm" in payloads but "tk" as a BCP 47 tag.
const (
	LangEN = "en"
	LangRU = "ru"
	LangTM = "tm"
)

var (
	supported = []language.Tag{language.English, language.Russian, language.Make("tk")}
	matcher   = language.NewMatcher(supported)
	tagToLang = map[string]string{"en": LangEN, "ru": LangRU, "tk": LangTM}
)

// Translator resolves message ids against the embedded catalogs.
type Translator struct {
	bundle     *i18n.Bundle
	localizers map[string]*i18n.Localizer
}

func New() (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(catalogFS, "locales", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := catalogFS.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = bundle.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return nil, err
	}

	t := &Translator{bundle: bundle, localizers: map[string]*i18n.Localizer{}}
	for _, lang := range []string{LangEN, LangRU, LangTM} {
		t.localizers[lang] = i18n.NewLocalizer(bundle, Tag(lang))
	}
	return t, nil
}

// MustNew is New for catalogs that are known to be valid, e.g. in tests and main.
func MustNew() *Translator {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// T returns the message for id in lang. Unknown ids are returned as-is.
func (t *Translator) T(lang, id string, data ...map[string]any) string {
	if t == nil {
		return id
	}
	loc, ok := t.localizers[lang]
	if !ok {
		loc = t.localizers[LangEN]
	}
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := loc.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}

// Tag maps a content locale to its language tag.
func Tag(lang string) string {
	if lang == LangTM {
		return "tk"
	}
	return lang
}

// Negotiate picks the content locale from an explicit code (e.g. ?lang=) and
// falls back to the Accept-Language header, then to English.
func Negotiate(explicit, acceptLanguage string) string {
	switch l := strings.ToLower(strings.TrimSpace(explicit)); l {
	case LangEN, LangRU, LangTM:
		return l
	case "tk":
		return LangTM
	}
	if acceptLanguage == "" {
		return LangEN
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LangEN
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return LangEN
	}
	base, _ := supported[idx].Base()
	if lang, ok := tagToLang[base.String()]; ok {
		return lang
	}
	return LangEN
}
