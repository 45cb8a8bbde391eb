package doctree

// Attributes holds the recognized attribute values of a node as closed
// variants, plus a passthrough bag for attribute names the notation allows
// but the renderer does not interpret.
type Attributes struct {
	Color   *Color
	Size    *Size
	Border  Border // style= on box blocks
	ID      string
	Role    Role // semantic promotion hint on box blocks
	Summary string
	Lang    string
	Title   string

	// Unrecognized attributes are preserved but never interpreted.
	Unrecognized map[string]string
}

// IsZero reports whether no attribute is set.
func (a Attributes) IsZero() bool {
	return a.Color == nil && a.Size == nil && a.Border == "" && a.ID == "" &&
		a.Role == "" && a.Summary == "" && a.Lang == "" && a.Title == "" &&
		len(a.Unrecognized) == 0
}

// Color is a resolved color value: a lowercase 6-digit hex string without
// the leading '#'.
type Color struct {
	Hex string
}

// Size is a resolved size value: either a numeric value with a unit, or a
// named size keyword.
type Size struct {
	Value float64
	Unit  string // "px", "pt", "em", "rem" (empty when Named is set)
	Named string // "small", "normal", "large", "x-large"
}

// Border is a box border style from a closed enumeration.
type Border string

const (
	BorderSolid  Border = "solid"
	BorderDashed Border = "dashed"
	BorderDotted Border = "dotted"
	BorderDouble Border = "double"
)

// Role marks a box block for semantic promotion in the renderer.
type Role string

const (
	RoleHeader  Role = "header"
	RoleFooter  Role = "footer"
	RoleNav     Role = "nav"
	RoleArticle Role = "article"
	RoleSection Role = "section"
)
