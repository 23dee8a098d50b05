package email

import (
	"bytes"
	"html/template"
)

const (
	templateVerification  = "verification"
	templateResetPassword = "reset_password"
	templateApproveNotice = "approve_notice"
	templateRejectNotice  = "reject_notice"
)

// Шаблоны собраны в бинарь: деплой без внешней директории templates.
var templates = template.Must(template.New("email").Parse(`
{{define "verification"}}
<p>Verify your email address to finish setting up your ar.gent account.</p>
<p>The link expires in 6 hours.</p>
<p><a href="{{.Link}}">Verify email</a></p>
{{end}}

{{define "reset_password"}}
<p>We received a request to reset the password of your ar.gent account.</p>
<p>The link expires in 10 minutes. If you did not request this, ignore this message.</p>
<p><a href="{{.Link}}">Reset password</a></p>
{{end}}

{{define "approve_notice"}}
<p>Congratulations! Your application for <b>{{.JobTitle}}</b> has been approved.</p>
<p>{{.Message}}</p>
<p>The employer will contact you at this address. You can also reach them at {{.ContactEmail}}.</p>
{{end}}

{{define "reject_notice"}}
<p>Unfortunately your application for <b>{{.JobTitle}}</b> has been rejected.</p>
<p>{{.Message}}</p>
<p>Keep looking, there are more openings on ar.gent every day.</p>
{{end}}
`))

type templateData struct {
	Link         string
	JobTitle     string
	ContactEmail string
	Message      string
}

func renderTemplate(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
