package tags

// Tag names with canonical casing.
const (
	Abstract        = "abstract"
	Async           = "async"
	Augments        = "augments"
	Author          = "author"
	Borrows         = "borrows"
	Callback        = "callback"
	Category        = "category"
	Class           = "class"
	Constant        = "constant"
	DefaultTag      = "default"
	DefaultValue    = "defaultValue"
	Deprecated      = "deprecated"
	Description     = "description"
	Example         = "example"
	Extends         = "extends"
	External        = "external"
	File            = "file"
	Fires           = "fires"
	Flow            = "flow"
	Function        = "function"
	Ignore          = "ignore"
	License         = "license"
	Member          = "member"
	MemberOf        = "memberof"
	Module          = "module"
	Namespace       = "namespace"
	Overload        = "overload"
	Override        = "override"
	Param           = "param"
	Private         = "private"
	PrivateRemarks  = "privateRemarks"
	Property        = "property"
	ProvidesModule  = "providesModule"
	Remarks         = "remarks"
	Returns         = "returns"
	Satisfies       = "satisfies"
	See             = "see"
	Since           = "since"
	Template        = "template"
	Throws          = "throws"
	Todo            = "todo"
	Type            = "type"
	TypeParam       = "typeParam"
	Typedef         = "typedef"
	Version         = "version"
	Yields          = "yields"
	otherWeightName = "other"
)

// IsDefault reports whether tag belongs to the default-value family, whose
// "type" slot holds a literal value rather than a type expression.
func IsDefault(tag string) bool {
	return tag == DefaultTag || tag == DefaultValue
}
