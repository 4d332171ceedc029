// Package tags holds the static classification data for JSDoc tags and the
// alias resolver built on top of it.
//
// A [Table] answers three kinds of questions about a logical tag:
//
//   - its capability record ([Role]): whether it is alignable, nameless,
//     typeless, never wrapped, requires a description, or takes part in tag
//     grouping as a head or condition;
//   - its ordering weight ([Table.Weight]), smaller first;
//   - its alias group ([Table.GroupOf]), mapping synonyms such as @return
//     and @returns onto one canonical spelling.
//
// [Default] returns the built-in table. Tests and embedders may build their
// own with [New] and inject it into the formatter.
//
// A [Resolver] combines a table with a [Mode] to decide which spelling is
// rendered:
//
//	r := tags.Resolver{Table: tags.Default(), Mode: tags.ModePrefer,
//		Preferred: map[string]string{"returns": "return"}}
//	r.Logical("RETURN")         // "returns"
//	r.RenderTag("returns", nil) // "return"
package tags
