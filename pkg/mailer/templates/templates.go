package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmpl "html/template"
	"io/fs"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

const Welcome = "welcome"

const fallbackLang = "en"

func baseFuncs() map[string]any {
	return map[string]any{
		"now":   func() time.Time { return time.Now().UTC() },
		"upper": strings.ToUpper,
		"default": func(fallback any, value any) any {
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				return fallback
			}
			if value == nil {
				return fallback
			}
			return value
		},
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// file resolves <name>.<lang>.<kind>.tmpl, falling back to English.
func file(name, lang, kind string) (string, error) {
	for _, l := range []string{lang, fallbackLang} {
		fn := fmt.Sprintf("%s.%s.%s.tmpl", name, l, kind)
		if _, err := fs.Stat(FS, fn); err == nil {
			return fn, nil
		}
	}
	return "", fmt.Errorf("template %q (%s) not found", name, kind)
}

func renderFile(filename string, isHTML bool, data any) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)
	if isHTML {
		tpl, e := htmpl.New(filename).Funcs(htmlFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse html %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	} else {
		tpl, e := texttpl.New(filename).Funcs(textFuncMap).ParseFS(FS, filename)
		if e != nil {
			return "", fmt.Errorf("parse text %q: %w", filename, e)
		}
		err = tpl.Execute(&buf, data)
	}
	if err != nil {
		return "", fmt.Errorf("exec %q: %w", filename, err)
	}
	return buf.String(), nil
}

// Render renders the text and html bodies of name in lang.
func Render(name, lang string, data any) (text string, html string, err error) {
	tf, err := file(name, lang, "text")
	if err != nil {
		return "", "", err
	}
	hf, err := file(name, lang, "html")
	if err != nil {
		return "", "", err
	}
	if text, err = renderFile(tf, false, data); err != nil {
		return "", "", err
	}
	if html, err = renderFile(hf, true, data); err != nil {
		return "", "", err
	}
	if strings.TrimSpace(text) == "" && strings.TrimSpace(html) == "" {
		return "", "", errors.New("empty email body")
	}
	return text, html, nil
}
