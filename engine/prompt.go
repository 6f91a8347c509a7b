package engine

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
)

var (
	//go:embed data/context.md.tmpl
	contextTmplText string
	contextTmpl     = template.Must(template.New("context").Funcs(funcMap()).Parse(contextTmplText))
)

func funcMap() template.FuncMap {
	fm := sprig.FuncMap()
	fm["patienceLevel"] = func(v float64) string {
		return string(entity.PatienceLevelOf(v))
	}
	return fm
}

// Render serializes the bundle into the generation collaborator's prompt
// form. Rendering is pure; the same bundle always yields the same text.
func (e *Engine) Render(bundle *ContextBundle) (string, error) {
	var buf strings.Builder
	if err := contextTmpl.Execute(&buf, bundle); err != nil {
		return "", errors.Wrapf(err, "failed to render context bundle")
	}
	return buf.String(), nil
}
