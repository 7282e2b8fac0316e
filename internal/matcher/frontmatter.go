package matcher

import (
	"fmt"

	"github.com/jackchuka/mdrx/internal/docnode"
	"github.com/jackchuka/mdrx/internal/report"
)

// validateFrontMatter supplements the core block/inline matcher: when the
// prescription document itself carries front matter, its top-level keys are
// required in the document's front matter (or optional, if the
// prescription's value for that key was the optional marker).
func (v *validator) validateFrontMatter(doc *docnode.Tree) []Diagnostic {
	var diags []Diagnostic
	for key, required := range v.rx.FrontMatterKeys() {
		if !required {
			continue
		}
		if _, ok := doc.FrontMatter[key]; !ok {
			diags = append(diags, Diagnostic{
				Kind:    report.MissingMandatory,
				Message: fmt.Sprintf("front matter key %q is required but missing", key),
				Doc:     doc.Root,
			})
		}
	}
	return diags
}
