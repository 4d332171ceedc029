// Package mdwrap reflows free-text JSDoc descriptions to a target width.
//
// Descriptions are treated as markdown. Paragraphs are re-wrapped greedily
// by display width, while lists, headings, code blocks, HTML blocks, block
// quotes, pipe tables and link reference definitions act as hard boundaries
// and keep their line structure:
//
//	lines := mdwrap.Wrap(description, mdwrap.Options{
//		Width:           77,
//		FirstLineOffset: 14,
//		Indent:          "  ",
//	})
//
// The first returned line continues the caller's current line, which lets
// tag descriptions start right after "@param {T} name".
package mdwrap
