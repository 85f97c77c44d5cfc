package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/helpers"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/i18n"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/mailer"
	mailtpl "github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/mailer/templates"
)

type outcome int

const (
	ack     outcome = iota
	drop            // malformed; never retried
	requeue         // transient send failure
)

type worker struct {
	tr     *i18n.Translator
	sender mailer.Sender
	logger *logrus.Logger
}

// handle renders and sends one queued EmailJob.
func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).Warn("bad message")
		return drop
	}
	if job.To == "" {
		w.logger.Warn("message without recipient")
		return drop
	}
	helpers.EnsureRecipientAndEmail(&job)

	subject := helpers.SubjectFor(w.tr, &job)
	text, html := job.Text, job.HTML
	if job.Template != "" {
		t, h, err := mailtpl.Render(job.Template, job.Lang, job.Data)
		if err != nil {
			w.logger.WithError(err).WithField("template", job.Template).Error("render failed")
			return drop
		}
		text, html = t, h
	}

	c, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := w.sender.Send(c, job.To, subject, text, html); err != nil {
		w.logger.WithError(err).WithField("to", job.To).Warn("send failed")
		return requeue
	}
	w.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template, "lang": job.Lang}).Info("email sent")
	return ack
}
