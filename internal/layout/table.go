// Package layout extracts fields from archived pages using ordered sets of
// XPath/regexp rule tables, one table per known historical page layout.
package layout

import (
	"fmt"
	"regexp"
	"slices"

	"github.com/antchfx/xpath"
	om "github.com/wk8/go-ordered-map/v2"
)

// Rule is the extraction recipe of one field. An empty Locator means the
// field does not exist in the layout and always resolves to "". An empty
// Pattern means the located value is used as is; otherwise the whole match
// of Pattern becomes the value.
type Rule struct {
	Field    string
	Locator  string
	Pattern  string
	Optional bool
}

type compiledRule struct {
	Rule
	locator *xpath.Expr
	pattern *regexp.Regexp
}

// Table is a named, ordered mapping from field name to rule.
type Table struct {
	name  string
	rules *om.OrderedMap[string, compiledRule]
}

// NewTable compiles rules into a table. Field order is the order of rules.
func NewTable(name string, rules ...Rule) (*Table, error) {
	t := &Table{
		name:  name,
		rules: om.New[string, compiledRule](),
	}

	for _, r := range rules {
		if r.Field == "" {
			return nil, fmt.Errorf("layout %s: rule without field name", name)
		}
		if _, exists := t.rules.Get(r.Field); exists {
			return nil, fmt.Errorf("layout %s: duplicate field %q", name, r.Field)
		}

		cr := compiledRule{Rule: r}
		if r.Locator != "" {
			expr, err := xpath.Compile(r.Locator)
			if err != nil {
				return nil, fmt.Errorf("layout %s: compile locator for %q: %w", name, r.Field, err)
			}
			cr.locator = expr
		}
		if r.Pattern != "" {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("layout %s: compile pattern for %q: %w", name, r.Field, err)
			}
			cr.pattern = re
		}
		t.rules.Set(r.Field, cr)
	}

	return t, nil
}

// MustTable is like NewTable but panics on error. It is meant for the static
// layout tables declared at package level.
func MustTable(name string, rules ...Rule) *Table {
	t, err := NewTable(name, rules...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string {
	return t.name
}

// Fields returns the field names in table order.
func (t *Table) Fields() []string {
	fields := make([]string, 0, t.rules.Len())
	for pair := t.rules.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, pair.Key)
	}
	return fields
}

// Set is an ordered list of tables, tried first to last.
type Set []*Table

// NewSet checks that all tables declare the same field names so that the
// result shape does not depend on which layout matched.
func NewSet(tables ...*Table) (Set, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("empty layout set")
	}

	want := tables[0].Fields()
	slices.Sort(want)
	for _, t := range tables[1:] {
		got := t.Fields()
		slices.Sort(got)
		if !slices.Equal(want, got) {
			return nil, fmt.Errorf("layout %s: field set %v differs from %s %v",
				t.Name(), got, tables[0].Name(), want)
		}
	}

	return Set(tables), nil
}

func MustSet(tables ...*Table) Set {
	s, err := NewSet(tables...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, t := range s {
		names[i] = t.Name()
	}
	return names
}
