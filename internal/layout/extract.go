package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrAllLayoutsFailed is returned when no table of a set matches a document.
var ErrAllLayoutsFailed = errors.New("no layout matched")

// MissingFieldError reports a required field whose locator found nothing.
type MissingFieldError struct {
	Layout string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("layout %s: no data for field %q", e.Layout, e.Field)
}

// NoPatternMatchError reports a located value the refinement pattern rejected.
type NoPatternMatchError struct {
	Layout string
	Field  string
}

func (e *NoPatternMatchError) Error() string {
	return fmt.Sprintf("layout %s: pattern did not match field %q", e.Layout, e.Field)
}

// Fields maps field names to extracted values.
type Fields map[string]string

// Match is the result of resolving a document against a set.
type Match struct {
	Layout string
	Fields Fields
}

// Extract applies every rule of t to doc. The result holds exactly the
// table's fields.
func Extract(doc *html.Node, t *Table) (Fields, error) {
	fields := make(Fields, t.rules.Len())

	for pair := t.rules.Oldest(); pair != nil; pair = pair.Next() {
		field, rule := pair.Key, pair.Value

		if rule.locator == nil {
			fields[field] = ""
			continue
		}

		raw, found := first(doc, rule)
		if !found {
			if !rule.Optional {
				return nil, &MissingFieldError{Layout: t.name, Field: field}
			}
			raw = ""
		}

		if rule.pattern != nil && raw != "" {
			loc := rule.pattern.FindStringIndex(raw)
			if loc == nil {
				return nil, &NoPatternMatchError{Layout: t.name, Field: field}
			}
			raw = raw[loc[0]:loc[1]]
		}

		fields[field] = raw
	}

	return fields, nil
}

func first(doc *html.Node, rule compiledRule) (string, bool) {
	iter := rule.locator.Select(htmlquery.CreateXPathNavigator(doc))
	if !iter.MoveNext() {
		return "", false
	}
	return strings.TrimSpace(iter.Current().Value()), true
}

// Resolve returns the extraction of the first table in s that matches doc.
func (s Set) Resolve(doc *html.Node) (Match, error) {
	var lastErr error
	for _, t := range s {
		fields, err := Extract(doc, t)
		if err == nil {
			return Match{Layout: t.name, Fields: fields}, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("empty layout set")
	}
	return Match{}, fmt.Errorf("%w: %w", ErrAllLayoutsFailed, lastErr)
}

// ResolveDocument parses body as HTML and resolves it against s.
func ResolveDocument(body string, s Set) (Match, error) {
	doc, err := htmlquery.Parse(strings.NewReader(body))
	if err != nil {
		return Match{}, fmt.Errorf("parse document: %w", err)
	}
	return s.Resolve(doc)
}
