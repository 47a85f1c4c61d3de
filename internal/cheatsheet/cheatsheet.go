// Package cheatsheet renders the formula reference card shown in the help
// panel.
package cheatsheet

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"

	"github.com/csheth/scicalc/internal/eval"
)

// Section groups related formulas on the reference card.
type Section struct {
	Title    string
	Note     string
	Formulas []string
}

const cardTemplate = `{{#each sections}}
{{heading title}}{{#if note}} ({{note}}){{/if}}
{{#each formulas}}
  • {{{this}}}
{{/each}}

{{/each}}`

var card = func() *raymond.Template {
	tpl := raymond.MustParse(cardTemplate)
	tpl.RegisterHelper("heading", func(title string) string {
		return strings.ToUpper(title)
	})
	return tpl
}()

// Build returns the reference card. The trigonometry section notes which
// unit the next evaluation will use.
func Build(angle eval.AngleUnit) []Section {
	return []Section{
		{
			Title: "Trigonometry",
			Note:  fmt.Sprintf("angles in %s", angle),
			Formulas: []string{
				"sin²(θ) + cos²(θ) = 1",
				"tan(θ) = sin(θ)/cos(θ)",
				"sin⁻¹(sin(θ)) = θ",
			},
		},
		{
			Title: "Logarithms",
			Formulas: []string{
				"log(xy) = log(x) + log(y)",
				"log(x^n) = n·log(x)",
				"e^(ln(x)) = x",
			},
		},
		{
			Title: "Constants",
			Formulas: []string{
				"π ≈ 3.14159",
				"e ≈ 2.71828",
			},
		},
		{
			Title: "Algebra",
			Formulas: []string{
				"(a+b)² = a² + 2ab + b²",
				"(a-b)² = a² - 2ab + b²",
				"a² - b² = (a+b)(a-b)",
			},
		},
	}
}

// Render formats sections as plain text, one formula per bullet.
func Render(sections []Section) (string, error) {
	items := make([]map[string]interface{}, 0, len(sections))
	for _, section := range sections {
		items = append(items, map[string]interface{}{
			"title":    section.Title,
			"note":     section.Note,
			"formulas": section.Formulas,
		})
	}
	out, err := card.Exec(map[string]interface{}{"sections": items})
	if err != nil {
		return "", fmt.Errorf("render cheatsheet: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
