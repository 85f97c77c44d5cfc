package helpers

import (
	"fmt"

	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/i18n"
	"github.com/Orazmyrat-Hojamyradov/worst-project-2/pkg/mailer"
)

// SubjectFor returns the localized subject of a templated job, e.g. "welcome_subject".
// An explicit job.Subject wins.
func SubjectFor(tr *i18n.Translator, job *mailer.EmailJob) string {
	if job.Subject != "" {
		return job.Subject
	}
	if job.Template == "" {
		return "Notification"
	}
	return tr.T(job.Lang, job.Template+"_subject", job.Data)
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if job.Lang == "" {
		job.Lang = i18n.LangEN
	}
}
