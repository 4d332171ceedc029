package tags

import (
	"maps"
	"strings"
)

// Role is the capability record of a logical tag. Every role-dependent
// decision in normalization and rendering goes through [Table.Role].
type Role struct {
	// Alignable tags take part in vertical alignment of title, type and name.
	Alignable bool
	// Nameless tags never carry a name; a tokenized name is description text.
	Nameless bool
	// Typeless tags never carry a type; a tokenized type is description text.
	Typeless bool
	// NoWrap tags keep their description verbatim.
	NoWrap bool
	// DescriptionRequired tags are dropped when their description is empty.
	DescriptionRequired bool
	// GroupHead tags may start a new tag group.
	GroupHead bool
	// GroupCondition tags arm the next GroupHead tag to start a new group.
	GroupCondition bool
}

// Table holds the static classification data for tags: roles, ordering
// weights and alias groups. A Table is never mutated after construction and
// is safe for concurrent use.
//
// Create instances with [Default] or [New].
type Table struct {
	roles   map[string]Role
	weights map[string]int
	casing  map[string]string
	groups  map[string]AliasGroup
	lookup  map[string]string
	other   int
}

// New creates a [Table] from explicit roles, ordering weights and alias
// groups. The weight stored under "other" is used for unknown tags; when it
// is missing, unknown tags sort after every known tag.
func New(roles map[string]Role, weights map[string]int, groups []AliasGroup) *Table {
	t := &Table{
		roles:   maps.Clone(roles),
		weights: make(map[string]int, len(weights)),
		casing:  make(map[string]string, len(weights)),
		groups:  make(map[string]AliasGroup, len(groups)),
		lookup:  make(map[string]string),
	}

	maxWeight := 0
	for tag, w := range weights {
		if tag == otherWeightName {
			continue
		}

		t.weights[tag] = w
		t.casing[strings.ToLower(tag)] = tag
		maxWeight = max(maxWeight, w)
	}

	if w, ok := weights[otherWeightName]; ok {
		t.other = w
	} else {
		t.other = maxWeight + 1
	}

	for _, g := range groups {
		t.groups[g.ID] = g
		t.lookup[strings.ToLower(g.Canonical)] = g.ID

		for _, alias := range g.Aliases {
			t.lookup[strings.ToLower(alias)] = g.ID
		}
	}

	return t
}

// WithWeights returns a copy of t with the given ordering weights replacing
// the built-in ones. The "other" key overrides the weight of unknown tags.
// Overridden tags become known.
func (t *Table) WithWeights(overrides map[string]int) *Table {
	if len(overrides) == 0 {
		return t
	}

	c := *t
	c.weights = maps.Clone(t.weights)
	c.casing = maps.Clone(t.casing)

	for tag, w := range overrides {
		if tag == otherWeightName {
			c.other = w

			continue
		}

		c.weights[tag] = w
		if _, ok := c.casing[strings.ToLower(tag)]; !ok {
			c.casing[strings.ToLower(tag)] = tag
		}
	}

	return &c
}

// Role returns the capability record for a logical tag. Unknown tags have the
// zero Role.
func (t *Table) Role(tag string) Role {
	return t.roles[tag]
}

// Weight returns the ordering weight of tag. Smaller weights sort first.
func (t *Table) Weight(tag string) int {
	if w, ok := t.weights[tag]; ok {
		return w
	}

	return t.other
}

// Known reports whether tag has an explicit ordering weight.
func (t *Table) Known(tag string) bool {
	_, ok := t.weights[tag]

	return ok
}

// Canonical returns the canonical casing of a known tag, matched
// case-insensitively.
func (t *Table) Canonical(raw string) (string, bool) {
	tag, ok := t.casing[strings.ToLower(raw)]

	return tag, ok
}

// Default returns the built-in classification table.
func Default() *Table {
	return defaultTable
}

var defaultTable = New(defaultRoles(), defaultWeights, defaultGroups)

var defaultWeights = map[string]int{
	Remarks:         1,
	PrivateRemarks:  2,
	ProvidesModule:  3,
	Module:          4,
	License:         5,
	Flow:            6,
	Async:           7,
	Private:         8,
	Ignore:          9,
	MemberOf:        10,
	Version:         11,
	File:            12,
	Author:          13,
	Deprecated:      14,
	Since:           15,
	Category:        16,
	Description:     17,
	Example:         18,
	Abstract:        19,
	Augments:        20,
	Constant:        21,
	DefaultTag:      22,
	DefaultValue:    23,
	External:        24,
	Overload:        25,
	Fires:           26,
	Template:        27,
	TypeParam:       28,
	Function:        29,
	Namespace:       30,
	Borrows:         31,
	Class:           32,
	Extends:         33,
	Member:          34,
	Typedef:         35,
	Type:            36,
	Satisfies:       37,
	Property:        38,
	Callback:        39,
	Param:           40,
	Yields:          41,
	Returns:         42,
	Throws:          43,
	otherWeightName: 44,
	See:             45,
	Todo:            46,
	Override:        47,
}

func defaultRoles() map[string]Role {
	roles := make(map[string]Role)

	set := func(flag func(*Role), names ...string) {
		for _, name := range names {
			r := roles[name]
			flag(&r)
			roles[name] = r
		}
	}

	set(func(r *Role) { r.Alignable = true },
		Param, Property, Returns, Yields, Throws, Template, TypeParam)

	set(func(r *Role) { r.Nameless = true },
		Abstract, Async, Author, Borrows, Category, DefaultTag, DefaultValue,
		Deprecated, Description, Example, File, Flow, Ignore, License,
		Overload, Override, Private, PrivateRemarks, ProvidesModule, Remarks,
		Returns, Since, Throws, Todo, Version, Yields)

	set(func(r *Role) { r.Typeless = true },
		Abstract, Async, Author, Borrows, Category, Deprecated, Description,
		Example, File, Flow, Ignore, License, Overload, Override, Private,
		PrivateRemarks, ProvidesModule, Remarks, Since, Todo, Version)

	set(func(r *Role) { r.NoWrap = true }, Borrows)

	set(func(r *Role) { r.DescriptionRequired = true },
		Borrows, Category, Deprecated, Description, Example, PrivateRemarks,
		Remarks, Since, Todo)

	set(func(r *Role) { r.GroupHead = true }, Callback, Typedef)

	set(func(r *Role) { r.GroupCondition = true },
		Callback, Typedef, Param, Property, Returns, Yields, Throws, Type,
		Template, TypeParam)

	return roles
}
