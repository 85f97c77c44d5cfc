package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/i18n"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	out []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, sent{to, subject, text, html})
	return nil
}

func newWorker(s *fakeSender) *worker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &worker{tr: i18n.MustNew(), sender: s, logger: l}
}

func TestWorker_RendersLocalizedTemplate(t *testing.T) {
	s := &fakeSender{}
	w := newWorker(s)

	body := `{"to":"a@b.io","template":"welcome","lang":"ru","data":{"Name":"Aman","AppName":"Universe"}}`
	require.Equal(t, ack, w.handle(context.Background(), []byte(body)))
	require.Len(t, s.out, 1)
	assert.Equal(t, "a@b.io", s.out[0].to)
	assert.Equal(t, i18n.MustNew().T(i18n.LangRU, "welcome_subject", map[string]any{"AppName": "Universe"}), s.out[0].subject)
	assert.Contains(t, s.out[0].text, "Aman")
	assert.Contains(t, s.out[0].html, "Aman")
}

func TestWorker_RawBodies(t *testing.T) {
	s := &fakeSender{}
	w := newWorker(s)

	require.Equal(t, ack, w.handle(context.Background(), []byte(`{"to":"a@b.io","subject":"Hi","text":"plain"}`)))
	assert.Equal(t, sent{"a@b.io", "Hi", "plain", ""}, s.out[0])
}

func TestWorker_Outcomes(t *testing.T) {
	s := &fakeSender{}
	w := newWorker(s)

	assert.Equal(t, drop, w.handle(context.Background(), []byte(`not json`)))
	assert.Equal(t, drop, w.handle(context.Background(), []byte(`{"subject":"no recipient"}`)))
	assert.Equal(t, drop, w.handle(context.Background(), []byte(`{"to":"a@b.io","template":"missing"}`)))

	s.err = errors.New("mailgun 503")
	assert.Equal(t, requeue, w.handle(context.Background(), []byte(`{"to":"a@b.io","template":"welcome"}`)))
	assert.Empty(t, s.out)
}
