// Package jsparse locates comments in JavaScript and TypeScript sources using
// tree-sitter grammars.
package jsparse
