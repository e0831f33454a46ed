package core

import (
	"slices"
	"strconv"
	"strings"
)

// Categories is the ordered vocabulary of release note categories. The order
// is also the order sections appear in a generated changelog.
type Categories struct {
	names []string
}

// DefaultCategories returns the categories used when none are configured.
func DefaultCategories() Categories {
	return NewCategories("Features", "Enhancements", "Bugfix", "Maintenance")
}

// NewCategories builds a registry from names. Blank entries and duplicates are
// dropped, the first occurrence wins.
func NewCategories(names ...string) Categories {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return Categories{names: out}
}

// IsValid reports whether name is one of the registered categories.
func (c Categories) IsValid(name string) bool {
	return slices.Contains(c.names, name)
}

// Names returns a copy of the category names in display order.
func (c Categories) Names() []string {
	return slices.Clone(c.names)
}

func (c Categories) Len() int {
	return len(c.names)
}

// Quoted renders the names as a comma separated list of quoted strings,
// e.g. `"Features", "Bugfix"`.
func (c Categories) Quoted() string {
	quoted := make([]string, len(c.names))
	for i, n := range c.names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, ", ")
}
