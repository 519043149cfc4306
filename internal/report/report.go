package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/etsledger/etsledger/internal/classify"
	"github.com/etsledger/etsledger/internal/fiscal"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml (and yml).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

type document struct {
	fiscal.Report `yaml:",inline"`
	Issues        []string `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Write renders r and the snapshot issues to w.
func Write(w io.Writer, r *fiscal.Report, issues classify.ValidationErrors, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, r, issues)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newDocument(r, issues)); err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(r, issues)); err != nil {
			return fmt.Errorf("encoding YAML report: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}

func newDocument(r *fiscal.Report, issues classify.ValidationErrors) document {
	doc := document{Report: *r}
	for _, e := range issues {
		doc.Issues = append(doc.Issues, e.Error())
	}
	return doc
}
