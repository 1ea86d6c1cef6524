package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"logicss/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string // name of the expanded configuration field
	Name    string // source file name without extension
	Ext     string // source file extension, including dot
	Dir     string // source directory relative to SOURCE, slash separated
	Changed int    // number of declarations rewritten
	RunID   string
	Mode    string
}

func newValues(name config.TemplateFieldName, src string, changed int, runID, mode string) Values {
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	dir := filepath.ToSlash(filepath.Dir(src))
	if dir == "." {
		dir = ""
	}
	return Values{
		Context: string(name),
		Name:    strings.TrimSuffix(base, ext),
		Ext:     ext,
		Dir:     dir,
		Changed: changed,
		RunID:   runID,
		Mode:    mode,
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Option("missingkey=error").Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
