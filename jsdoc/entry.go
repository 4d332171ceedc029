package jsdoc

// Entry is one documentation field of a comment. The order of a comment's
// entries is its rendering order.
type Entry struct {
	// Tag is the logical tag. It is empty only for spacers.
	Tag string
	// RenderTag overrides the spelling of Tag in the output.
	RenderTag   string
	Type        string
	Name        string
	Description string
	Default     string
	// Source holds the raw comment lines the entry was parsed from.
	Source   []string
	Optional bool
}

// spacer requests a single blank output line.
var spacer = Entry{}

// IsSpacer reports whether e is a blank line request.
func (e Entry) IsSpacer() bool {
	return e.Tag == ""
}

// DisplayTag returns the spelling rendered after "@".
func (e Entry) DisplayTag() string {
	if e.RenderTag != "" {
		return e.RenderTag
	}

	return e.Tag
}
