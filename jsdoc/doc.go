// Package jsdoc normalizes and re-renders JSDoc documentation comments in
// JavaScript and TypeScript sources.
//
// A [Formatter] takes a raw "/** ... */" comment and produces its canonical
// form. Comments that are not doc comments are returned unchanged, and doc
// comments that normalize to nothing are removed.
//
// # Pipeline
//
// [Formatter.FormatComment] moves a comment through these stages:
//
//  1. Line normalization: runs of leading stars collapse to "/**" and line
//     endings become "\n".
//  2. Tokenizing: [commentparser.Parse] splits the comment into a block
//     description and tag fields.
//  3. Normalization ([Normalize]): tokenizer mis-splits are repaired, alias
//     spellings resolve to logical tags, all description text folds into a
//     single leading description entry, and strict mode de-duplicates
//     non-repeatable tags.
//  4. Grouping ([SortTags]): tags are grouped around head tags such as
//     @callback and @typedef, and sorted by weight within each group.
//     Parameters follow the order of the function signature after the
//     comment when one can be found ([ParamsOrder]).
//  5. Enrichment: default values are appended to descriptions
//     ([AddDefaultToDescription]) and folded into bracketed names
//     ([AssignOptionalAndDefaultToName]). Object type separators are
//     normalized ([NormalizeTypeSeparators]).
//  6. Rendering ([Formatter.Stringify]): tags are aligned, descriptions are
//     wrapped as markdown to the available width, and example code is passed
//     to a [CodeFormatter].
//  7. Reassembly: content lines are framed with the original indentation and
//     line endings, as a single-line or multi-line comment.
//
// [Formatter.FormatSource] applies the pipeline to every comment that a
// [CommentParser] finds in a source file, concurrently.
//
// # Configuration
//
// [Options] holds every formatting setting. [Config] binds them to command
// line flags, and [LoadConfigFile] reads them from YAML or TOML files that
// are validated against [Schema].
package jsdoc
