package jsdoc

import (
	"fmt"
	"strings"

	"go.jacobcolvin.com/jsdocfmt/jsdoc/commentparser"
	"go.jacobcolvin.com/jsdocfmt/jsdoc/tags"
)

// Normalize turns a tokenized comment into entries.
//
// Tokenizer mis-splits are repaired (tag glued to type, first description
// word taken as the name of a nameless tag, type on a typeless tag), tags
// resolve to their logical names, and the block description plus every
// @description body become one leading description entry. Under
// [tags.ModeStrict], duplicate non-repeatable alias groups are resolved with
// strategy; [ConflictError] reports each conflict as a [Diagnostic].
func Normalize(block *commentparser.Block, r tags.Resolver, strategy ConflictStrategy) ([]Entry, []Diagnostic) {
	entries := make([]Entry, 0, len(block.Tags)+1)

	description := block.Description

	for _, spec := range block.Tags {
		e := normalizeSpec(spec, r)

		if e.Tag == tags.Description {
			if strings.TrimSpace(e.Description) != "" {
				if description != "" {
					description += "\n\n"
				}

				description += e.Description
			}

			continue
		}

		entries = append(entries, e)
	}

	if description != "" {
		entries = append([]Entry{{Tag: tags.Description, Description: description}}, entries...)
	}

	if r.Mode != tags.ModeStrict {
		return entries, nil
	}

	return resolveConflicts(entries, r.Table, strategy)
}

func normalizeSpec(spec commentparser.Spec, r tags.Resolver) Entry {
	raw := strings.TrimSpace(spec.Tag)
	typ := spec.Type

	if i := strings.Index(raw, "{"); i > 0 && strings.HasSuffix(raw, "}") {
		glued := raw[i+1 : len(raw)-1]
		if typ != "" {
			glued += " " + typ
		}

		typ = glued
		raw = raw[:i]
	}

	e := Entry{
		Tag:         r.Logical(raw),
		Type:        strings.TrimSpace(typ),
		Name:        strings.TrimSpace(spec.Name),
		Description: spec.Description,
		Default:     strings.TrimSpace(spec.Default),
		Optional:    spec.Optional,
		Source:      spec.Source,
	}

	role := r.Table.Role(e.Tag)

	if role.Nameless && e.Name != "" {
		name := e.Name
		if e.Optional {
			name = "[" + name
			if e.Default != "" {
				name += "=" + e.Default
			}

			name += "]"
		}

		e.Description = joinWords(name, strings.TrimPrefix(e.Description, " "))
		e.Name, e.Default, e.Optional = "", "", false
	}

	if role.Typeless && e.Type != "" {
		e.Description = joinWords("{"+e.Type+"}", e.Description)
		e.Type = ""
	}

	if e.Tag != tags.Description && e.Tag != tags.Example {
		e.Description = stripHyphen(e.Description)
	}

	return e
}

func joinWords(head, rest string) string {
	if rest == "" {
		return head
	}

	return head + " " + rest
}

// stripHyphen removes the "- " separator some authors put between a tag's
// name and its description. Descriptions that are hyphen lists are kept.
func stripHyphen(desc string) string {
	rest, ok := strings.CutPrefix(desc, "- ")
	if !ok {
		return desc
	}

	for _, line := range strings.Split(rest, "\n")[1:] {
		if strings.HasPrefix(strings.TrimSpace(line), "- ") {
			return desc
		}
	}

	return strings.TrimLeft(rest, " ")
}

// resolveConflicts de-duplicates entries of non-repeatable alias groups.
func resolveConflicts(entries []Entry, table *tags.Table, strategy ConflictStrategy) ([]Entry, []Diagnostic) {
	var (
		order  []string
		groups = map[string][]int{}
	)

	for i, e := range entries {
		id, ok := table.GroupOf(e.Tag)
		if !ok {
			continue
		}

		if g, _ := table.Group(id); !g.NonRepeatable {
			continue
		}

		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}

		groups[id] = append(groups[id], i)
	}

	var (
		diags  []Diagnostic
		remove = map[int]bool{}
	)

	for _, id := range order {
		indices := groups[id]
		if len(indices) < 2 {
			continue
		}

		switch strategy {
		case ConflictLast:
			for _, i := range indices[:len(indices)-1] {
				remove[i] = true
			}

		case ConflictFirst, ConflictError:
			for _, i := range indices[1:] {
				remove[i] = true
			}

			if strategy == ConflictError {
				tag := table.CanonicalOf(id)
				diags = append(diags, Diagnostic{
					Tag: tag,
					Err: fmt.Errorf("%w: @%s appears %d times, keeping the first",
						ErrAliasConflict, tag, len(indices)),
				})
			}

		default:
			base := &entries[indices[0]]
			for _, i := range indices[1:] {
				dup := entries[i]
				if base.Type == "" {
					base.Type = dup.Type
				}

				if base.Name == "" {
					base.Name = dup.Name
				}

				if len(dup.Description) > len(base.Description) {
					base.Description = dup.Description
				}

				remove[i] = true
			}
		}
	}

	out := make([]Entry, 0, len(entries)-len(remove))

	for i, e := range entries {
		if !remove[i] {
			out = append(out, e)
		}
	}

	return out, diags
}
