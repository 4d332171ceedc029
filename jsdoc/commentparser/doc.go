// Package commentparser tokenizes JSDoc block comments into a free-text
// description followed by "@tag" sections.
//
// Each section is split into tag, type, name and description tokens the way
// common JSDoc tokenizers do it, without any knowledge of individual tags:
//
//	@param {string} [name=anonymous] The user name.
//
// yields Tag "param", Type "string", Name "name", Default "anonymous",
// Optional true and Description "The user name.".
//
// The tokenizer is deliberately naive. A nameless tag such as @file still
// gets its first description word assigned to Name, and a tag written
// without a space before its type ("@returns{Object}") keeps both glued in
// Tag. Callers are expected to repair these cases with tag-specific
// knowledge.
//
// Whitespace after the leading "*" of a line is preserved beyond the first
// space, so indented code inside descriptions survives tokenization. A line
// starts a new section only when its "@" is at most one space in, and never
// inside a fenced code block.
package commentparser
