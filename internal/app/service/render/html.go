package render

import (
	"fmt"
	"strings"

	"github.com/careerpilot/backend/internal/app/service/normalize"
)

// styleBlock is the fixed stylesheet composed with the normalized sections.
// Class names match the containers the generation prompts ask for and the
// normalizer's fallback wrapper.
const styleBlock = `
@page { margin: 1cm; size: A4; }
body { font-family: Arial, sans-serif; color: #333; line-height: 1.6; margin: 0; padding: 0; }
.header { background: #2980b9; color: white; padding: 20px; text-align: center; margin-bottom: 30px; }
.career-paths-container { padding: 0 20px; }
.career-path { margin-bottom: 30px; padding: 20px; background: #f8f9fa; border-radius: 8px; page-break-inside: avoid; }
.path-title { color: #2980b9; font-size: 24px; margin-bottom: 15px; border-bottom: 2px solid #2980b9; padding-bottom: 5px; }
.info-grid { display: grid; grid-template-columns: repeat(2, 1fr); gap: 20px; margin-top: 20px; }
.info-item { background: white; padding: 15px; border-radius: 5px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.info-item h4 { color: #2980b9; margin-top: 0; margin-bottom: 10px; }
.learning-roadmap { padding: 20px; background: #f8f9fa; border-radius: 8px; margin: 20px; page-break-before: always; }
.roadmap-title { color: #2980b9; font-size: 28px; margin-bottom: 25px; text-align: center; }
.roadmap-section { margin-bottom: 30px; page-break-inside: avoid; }
.section-title { color: #2980b9; font-size: 20px; margin-bottom: 15px; border-bottom: 1px solid #dee2e6; padding-bottom: 5px; }
.course-item, .cert-item { background: white; padding: 15px; border-radius: 5px; margin-bottom: 15px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
.fallback-content { background: white; padding: 15px; border-radius: 5px; }
ul { margin: 0; padding-left: 20px; }
li { margin-bottom: 5px; }
a { color: #2980b9; text-decoration: none; }
`

const pageTitle = "Your Personalized Career Guide"

// renderHTML concatenates the fixed style block with the section bodies
// inside a fixed page wrapper. Pure string composition, no I/O.
func renderHTML(sections []*normalize.Result) (string, error) {
	var bodies []string
	for _, sec := range sections {
		if sec == nil || sec.HTML == "" {
			return "", fmt.Errorf("section lacks HTML body: %w", ErrRenderFailed)
		}
		bodies = append(bodies, sec.HTML)
	}

	var b strings.Builder
	b.WriteString("<html>\n<head>\n<style>")
	b.WriteString(styleBlock)
	b.WriteString("</style>\n</head>\n<body>\n")
	b.WriteString(`<div class="header"><h1>` + pageTitle + "</h1></div>\n")
	b.WriteString(strings.Join(bodies, "\n"))
	b.WriteString("\n</body>\n</html>\n")
	return b.String(), nil
}
