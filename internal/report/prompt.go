// Package report builds the natural-language prompt sent to the model.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"dailystatus/pkg/style"
)

// NoChangesPlaceholder is embedded when the day produced no diffs.
const NoChangesPlaceholder = "No code changes today."

// DefaultTemplate is the prompt template. The header and the diffs
// block stay separate: the diffs are supplied through the {{.Diffs}}
// slot at render time instead of being spliced into rendered header
// text. An edited template that drops the slot renders cleanly without
// the diffs block.
const DefaultTemplate = `You are an assistant that writes {{.Style}} daily stand-up updates for software engineers.
Project: {{.Project}}
Date: {{.Date}}

Here are the detailed code diffs for today:

{{if .Diffs}}{{.Diffs}}

{{end}}{{.Directive}}

Generate a status in the exact format of the examples below:

{{.Example}}

Now write only the entry for {{.Target}}:`

// workedExample shows the model the expected output format.
const workedExample = `09.04.2025:
Added a logging system - integrated the logger into the login (auth/login/route.ts) and user creation (user/create/route.ts) endpoints, updated audit logs.

10.04.2025:
Implemented MFA for all users - added /api/mfa endpoints (QR code, TOTP), extended login logic, created migration and userMFA schema, updated middleware.`

// Prompt holds everything needed to render the outbound prompt.
// Diff text is embedded verbatim; nothing is escaped.
type Prompt struct {
	Project  string
	Date     time.Time
	Style    style.Style
	Template string // text/template source; empty means DefaultTemplate
	Diffs    []string
}

// Header renders the default template without a diffs block. This is
// the editable text the shell shows before generation.
func Header(project string, date time.Time, s style.Style) string {
	p := Prompt{Project: project, Date: date, Style: s}
	header, err := p.render("")
	if err != nil {
		return DefaultTemplate
	}
	return header
}

// Render produces the full prompt, with the diffs block (or the
// no-changes placeholder) filled into the template.
func (p Prompt) Render() (string, error) {
	return p.render(p.DiffsBlock())
}

// DiffsBlock joins the diffs with blank lines, or returns the
// placeholder when there are none.
func (p Prompt) DiffsBlock() string {
	if len(p.Diffs) == 0 {
		return NoChangesPlaceholder
	}
	return strings.Join(p.Diffs, "\n\n")
}

func (p Prompt) render(diffs string) (string, error) {
	source := p.Template
	if source == "" {
		source = DefaultTemplate
	}

	tmpl, err := template.New("prompt").Parse(source)
	if err != nil {
		return "", fmt.Errorf("invalid prompt template: %w", err)
	}

	st := p.Style
	if !st.IsValid() {
		st = style.DefaultStyle()
	}

	data := map[string]string{
		"Style":     st.String(),
		"Project":   p.Project,
		"Date":      p.Date.Format("January 02, 2006"),
		"Diffs":     diffs,
		"Directive": st.Directive(),
		"Example":   workedExample,
		"Target":    p.Date.Format("02.01.2006"),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("invalid prompt template: %w", err)
	}
	return buf.String(), nil
}
