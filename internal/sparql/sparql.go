// Package sparql decodes SPARQL 1.1 JSON query results and builds safe query literals.
package sparql

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContentType is the media type requested from SPARQL endpoints.
const ContentType = "application/sparql-results+json"

// Term is a single RDF term in a result binding.
type Term struct {
	Type     string `json:"type"` // "uri", "literal", "bnode" or "typed-literal"
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Binding maps variable names to terms. Unbound variables are absent.
type Binding map[string]Term

// Value returns the lexical value of name, or "" when unbound.
func (b Binding) Value(name string) string {
	return b[name].Value
}

// Bool interprets name as an xsd:boolean. Unbound variables are false.
func (b Binding) Bool(name string) bool {
	t, ok := b[name]
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(t.Value)) {
	case "true", "1":
		return true
	}
	return false
}

// Results is the decoded application/sparql-results+json document.
type Results struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean,omitempty"`
}

// Bindings returns the result rows.
func (r *Results) Bindings() []Binding {
	if r == nil {
		return nil
	}
	return r.Results.Bindings
}

// Decode parses a SPARQL JSON results body.
func Decode(body []byte) (*Results, error) {
	var r Results
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("failed to parse SPARQL results: %w", err)
	}
	return &r, nil
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Literal returns s as a quoted SPARQL string literal.
func Literal(s string) string {
	return `"` + literalEscaper.Replace(s) + `"`
}
