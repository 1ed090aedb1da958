package utils

import (
	"bytes"
	"html"
	"html/template"
	"strings"
)

var insightsTemplate = template.Must(template.New("insights").Parse(`
<div class="flex items-center gap-2 mb-2">
    <i class="fas fa-check text-green-500"></i>
    <span><strong>Job Type Detected:</strong> {{.Category}} - Repair/Maintenance</span>
</div>
<div class="flex items-center gap-2 mb-2">
    <i class="fas fa-check text-green-500"></i>
    <span><strong>Estimated Duration:</strong> 1-2 hours</span>
</div>
<div class="flex items-center gap-2 mb-2">
    <i class="fas fa-check text-green-500"></i>
    <span><strong>Urgency Level:</strong> {{.Urgency}}</span>
</div>
<div class="flex items-center gap-2">
    <i class="fas fa-check text-green-500"></i>
    <span><strong>Matched:</strong> {{.Matched}} contractors within 5 miles with 4.5+ rating</span>
</div>
`))

// RenderInsights fills the canned job analysis shown after a job is posted.
func RenderInsights(category, urgency string, matched int) (string, error) {
	var buf bytes.Buffer
	err := insightsTemplate.Execute(&buf, struct {
		Category string
		Urgency  string
		Matched  int
	}{category, Capitalize(urgency), matched})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Capitalize upper-cases the first letter only.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func escape(s string) string {
	return html.EscapeString(s)
}
