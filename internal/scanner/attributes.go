package scanner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-bn2html/internal/doctree"
)

// namedColors is the fixed named-color table. Values are lowercase 6-digit
// hex without the leading '#', matching doctree.Color normalization.
var namedColors = map[string]string{
	"black":   "000000",
	"white":   "ffffff",
	"red":     "ff0000",
	"green":   "008000",
	"blue":    "0000ff",
	"yellow":  "ffff00",
	"orange":  "ffa500",
	"purple":  "800080",
	"pink":    "ffc0cb",
	"gray":    "808080",
	"brown":   "a52a2a",
	"cyan":    "00ffff",
	"magenta": "ff00ff",
	"navy":    "000080",
	"teal":    "008080",
	"silver":  "c0c0c0",
}

// namedSizes is the closed set of keyword sizes.
var namedSizes = map[string]bool{
	"small":   true,
	"normal":  true,
	"large":   true,
	"x-large": true,
}

// sizeUnits is the closed set of numeric size units.
var sizeUnits = map[string]bool{
	"px":  true,
	"pt":  true,
	"em":  true,
	"rem": true,
}

var (
	hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	numericSize     = regexp.MustCompile(`^([0-9]+(?:\.[0-9]+)?)([a-z]+)$`)
)

// ParseColor validates a color value (3/6-digit hex or named) and returns it
// normalized to lowercase 6-digit hex. ok is false for invalid values.
func ParseColor(value string) (*doctree.Color, bool) {
	if hex, ok := namedColors[strings.ToLower(value)]; ok {
		return &doctree.Color{Hex: hex}, true
	}
	m := hexColorPattern.FindStringSubmatch(value)
	if m == nil {
		return nil, false
	}
	hex := strings.ToLower(m[1])
	if len(hex) == 3 {
		// Expand shorthand: "f0a" -> "ff00aa".
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return &doctree.Color{Hex: hex}, true
}

// ParseSize validates a size value: either "<number><unit>" with a known
// unit, or a named size keyword.
func ParseSize(value string) (*doctree.Size, bool) {
	lower := strings.ToLower(value)
	if namedSizes[lower] {
		return &doctree.Size{Named: lower}, true
	}
	m := numericSize.FindStringSubmatch(lower)
	if m == nil || !sizeUnits[m[2]] {
		return nil, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil || n <= 0 {
		return nil, false
	}
	return &doctree.Size{Value: n, Unit: m[2]}, true
}

// ParseBorder validates a style= value against the border enumeration.
func ParseBorder(value string) (doctree.Border, bool) {
	switch doctree.Border(strings.ToLower(value)) {
	case doctree.BorderSolid, doctree.BorderDashed, doctree.BorderDotted, doctree.BorderDouble:
		return doctree.Border(strings.ToLower(value)), true
	}
	return "", false
}

// ParseRole validates a role= value against the promotion enumeration.
func ParseRole(value string) (doctree.Role, bool) {
	switch doctree.Role(strings.ToLower(value)) {
	case doctree.RoleHeader, doctree.RoleFooter, doctree.RoleNav, doctree.RoleArticle, doctree.RoleSection:
		return doctree.Role(strings.ToLower(value)), true
	}
	return "", false
}

// ParseAttributes interprets attr=value tokens from a block-open line.
// Known attributes are validated against their closed enumerations; an
// invalid value drops the attribute and records a diagnostic (the style is
// silently absent in the output rather than broken CSS). Unknown attribute
// names are preserved uninterpreted.
func ParseAttributes(tokens []string, line int) (doctree.Attributes, []doctree.Diagnostic) {
	var attrs doctree.Attributes
	var diags []doctree.Diagnostic

	invalid := func(name, value, want string) {
		diags = append(diags, doctree.Diagnostic{
			Line:       line,
			Kind:       doctree.DiagInvalidAttribute,
			Message:    fmt.Sprintf("invalid %s value %q", name, value),
			Suggestion: want,
		})
	}

	for _, tok := range tokens {
		name, value, ok := strings.Cut(tok, "=")
		if !ok || name == "" {
			invalid("attribute", tok, "use attr=value")
			continue
		}
		value = unquote(value)
		switch strings.ToLower(name) {
		case "color":
			if c, ok := ParseColor(value); ok {
				attrs.Color = c
			} else {
				invalid("color", value, "use #RGB, #RRGGBB, or a named color")
			}
		case "size":
			if s, ok := ParseSize(value); ok {
				attrs.Size = s
			} else {
				invalid("size", value, "use <number><px|pt|em|rem> or small/normal/large/x-large")
			}
		case "style":
			if b, ok := ParseBorder(value); ok {
				attrs.Border = b
			} else {
				invalid("style", value, "use solid, dashed, dotted, or double")
			}
		case "role":
			if r, ok := ParseRole(value); ok {
				attrs.Role = r
			} else {
				invalid("role", value, "use header, footer, nav, article, or section")
			}
		case "id":
			attrs.ID = value
		case "summary":
			attrs.Summary = value
		case "lang":
			attrs.Lang = strings.ToLower(value)
		case "title":
			attrs.Title = value
		default:
			if attrs.Unrecognized == nil {
				attrs.Unrecognized = make(map[string]string)
			}
			attrs.Unrecognized[strings.ToLower(name)] = value
		}
	}
	return attrs, diags
}

// unquote strips a surrounding double-quote pair, allowing attribute values
// with spaces: summary="click to expand".
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
