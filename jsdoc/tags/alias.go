package tags

import (
	"regexp"
	"strings"
)

// AliasGroup is a set of synonymous tag spellings.
type AliasGroup struct {
	ID        string
	Canonical string
	Aliases   []string
	// NonRepeatable groups allow at most one logical occurrence per comment
	// under [ModeStrict].
	NonRepeatable bool
}

// Mode controls how alias spellings are rendered.
type Mode string

const (
	// ModeNormalize renders the canonical spelling.
	ModeNormalize Mode = "normalize"
	// ModePreserve renders the spelling found in the source.
	ModePreserve Mode = "preserve"
	// ModePrefer renders the caller's preferred spelling per group.
	ModePrefer Mode = "prefer"
	// ModeStrict behaves like [ModePrefer] and also resolves duplicate
	// occurrences of non-repeatable groups.
	ModeStrict Mode = "strict"
)

// Modes lists every [Mode] in documentation order.
var Modes = []Mode{ModeNormalize, ModePreserve, ModePrefer, ModeStrict}

var defaultGroups = []AliasGroup{
	{ID: "abstract", Canonical: Abstract, Aliases: []string{"virtual"}},
	{ID: "augments", Canonical: Extends, Aliases: []string{Augments}, NonRepeatable: true},
	{ID: "class", Canonical: Class, Aliases: []string{"constructor"}, NonRepeatable: true},
	{ID: "constant", Canonical: Constant, Aliases: []string{"const"}},
	// defaultValue is a separate TSDoc tag, not a spelling of default.
	{ID: "default", Canonical: DefaultTag},
	{ID: "description", Canonical: Description, Aliases: []string{"desc"}},
	{ID: "emits", Canonical: Fires, Aliases: []string{"emits"}, NonRepeatable: true},
	{ID: "external", Canonical: External, Aliases: []string{"host"}},
	{ID: "file", Canonical: File, Aliases: []string{"fileoverview", "overview"}},
	{ID: "function", Canonical: Function, Aliases: []string{"func", "method"}},
	{ID: "member", Canonical: Member, Aliases: []string{"var"}},
	{ID: "param", Canonical: Param, Aliases: []string{"arg", "argument", "params"}},
	{ID: "property", Canonical: Property, Aliases: []string{"prop"}},
	{ID: "returns", Canonical: Returns, Aliases: []string{"return"}, NonRepeatable: true},
	{ID: "throws", Canonical: Throws, Aliases: []string{"exception"}},
	{ID: "yields", Canonical: Yields, Aliases: []string{"yield"}, NonRepeatable: true},
}

// GroupOf returns the alias group id of a raw tag spelling, matched
// case-insensitively.
func (t *Table) GroupOf(raw string) (string, bool) {
	id, ok := t.lookup[strings.ToLower(raw)]

	return id, ok
}

// Group returns the alias group with the given id.
func (t *Table) Group(id string) (AliasGroup, bool) {
	g, ok := t.groups[id]

	return g, ok
}

// CanonicalOf returns the canonical tag of an alias group, or the id itself
// when the group is unknown.
func (t *Table) CanonicalOf(id string) string {
	if g, ok := t.groups[id]; ok {
		return g.Canonical
	}

	return id
}

// Resolver maps raw tag spellings to logical tags and decides which spelling
// to render.
type Resolver struct {
	Table *Table
	// Preferred maps alias group ids to the spelling rendered in
	// [ModePrefer] and [ModeStrict].
	Preferred map[string]string
	Mode      Mode
}

// Logical returns the logical tag for a raw spelling. Alias spellings resolve
// to their group canonical, other known tags get canonical casing, and
// unknown tags are returned unchanged.
func (r Resolver) Logical(raw string) string {
	if id, ok := r.Table.GroupOf(raw); ok {
		return r.Table.CanonicalOf(id)
	}

	if tag, ok := r.Table.Canonical(raw); ok {
		return tag
	}

	return raw
}

// RenderTag returns the spelling to render for a logical tag, or "" when the
// logical tag itself should be rendered. Only tags with an alias group are
// ever overridden. Source lines are consulted in [ModePreserve] only.
func (r Resolver) RenderTag(logical string, source []string) string {
	switch r.Mode {
	case ModePreserve:
		if _, ok := r.Table.GroupOf(logical); !ok {
			return ""
		}

		if original, ok := OriginalSpelling(source); ok {
			return original
		}

		return logical

	case ModePrefer, ModeStrict:
		id, ok := r.Table.GroupOf(logical)
		if !ok {
			return ""
		}

		if preferred := r.Preferred[id]; preferred != "" {
			return preferred
		}

		return r.Table.CanonicalOf(id)
	}

	return ""
}

var spellingPattern = regexp.MustCompile(`@([A-Za-z]+)`)

// OriginalSpelling extracts the first "@tag" token from the given source
// lines, lower-cased.
func OriginalSpelling(source []string) (string, bool) {
	for _, line := range source {
		m := spellingPattern.FindStringSubmatch(line)
		if m != nil {
			return strings.ToLower(m[1]), true
		}
	}

	return "", false
}
