package jsdoc

import (
	"slices"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

// SortTags partitions entries into tag groups, sorts each group and
// separates groups with spacers.
//
// A group starts at the first entry and at every group head tag that
// follows a group condition tag. Within a group, two @param entries are
// ordered by their index in paramsOrder when it names more than one
// parameter; everything else is ordered by weight. Sorting can move a
// non-head tag to the start of a group, so the pass repeats until every
// group but the first starts with a head tag. The number of passes is
// bounded by the number of entries.
func SortTags(entries []Entry, paramsOrder []string, table *tags.Table) []Entry {
	cur := withoutSpacers(entries)

	var out []Entry

	for range len(cur) + 1 {
		var again bool

		out, again = sortPass(cur, paramsOrder, table)
		if !again {
			break
		}

		cur = withoutSpacers(out)
	}

	return out
}

func sortPass(entries []Entry, paramsOrder []string, table *tags.Table) ([]Entry, bool) {
	var (
		groups [][]Entry
		armed  bool
	)

	for _, e := range entries {
		role := table.Role(e.Tag)

		if len(groups) == 0 || (role.GroupHead && armed) {
			armed = false

			groups = append(groups, nil)
		}

		if role.GroupCondition {
			armed = true
		}

		groups[len(groups)-1] = append(groups[len(groups)-1], e)
	}

	cmp := func(a, b Entry) int {
		if len(paramsOrder) > 1 && a.Tag == tags.Param && b.Tag == tags.Param {
			ai, bi := slices.Index(paramsOrder, a.Name), slices.Index(paramsOrder, b.Name)
			if ai >= 0 && bi >= 0 {
				return ai - bi
			}

			return 0
		}

		return table.Weight(a.Tag) - table.Weight(b.Tag)
	}

	out := make([]Entry, 0, len(entries)+len(groups))
	again := false

	for i, group := range groups {
		slices.SortStableFunc(group, cmp)

		if i > 0 && !table.Role(group[0].Tag).GroupHead {
			again = true
		}

		out = append(out, group...)
		if i < len(groups)-1 {
			out = append(out, spacer)
		}
	}

	return out, again
}

func withoutSpacers(entries []Entry) []Entry {
	return slices.DeleteFunc(slices.Clone(entries), Entry.IsSpacer)
}
