// Package templates renders the notification email bodies. Templates are
// compiled in rather than shipped as files so the worker binary is
// self-contained.
package templates

import (
	"bytes"
	"fmt"
	htmpl "html/template"
	texttpl "text/template"
)

var textTemplates = texttpl.Must(texttpl.New("text").Parse(`
{{define "welcome"}}Hi {{.Name}},

Welcome to {{.AppName}}! Your account is ready. Log in any time to submit a
loan application and track its status.

— The {{.CompanyName}} team{{end}}

{{define "application_received"}}Hi {{.Name}},

We received your loan application for {{.Amount}} over {{.DurationMonths}} months.
It is now pending review. You will hear from us once a decision is made; until
then you cannot submit another application.

— The {{.CompanyName}} team{{end}}
`))

var htmlTemplates = htmpl.Must(htmpl.New("html").Parse(`
{{define "welcome"}}<p>Hi {{.Name}},</p>
<p>Welcome to <strong>{{.AppName}}</strong>! Your account is ready. Log in any
time to submit a loan application and track its status.</p>
<p>— The {{.CompanyName}} team</p>{{end}}

{{define "application_received"}}<p>Hi {{.Name}},</p>
<p>We received your loan application for <strong>{{.Amount}}</strong> over
{{.DurationMonths}} months. It is now pending review.</p>
<p>You will hear from us once a decision is made; until then you cannot submit
another application.</p>
<p>— The {{.CompanyName}} team</p>{{end}}
`))

// Subjects per template name.
var subjects = map[string]string{
	"welcome":              "Welcome to LoanPal",
	"application_received": "We received your loan application",
}

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	var tb bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&tb, name, data); err != nil {
		return "", "", "", err
	}
	var hb bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&hb, name, data); err != nil {
		return "", "", "", err
	}
	return subject, tb.String(), hb.String(), nil
}
