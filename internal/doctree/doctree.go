// Package doctree defines the document tree produced by the block-notation
// parser and consumed by the HTML renderer. Nodes and diagnostics are
// created during parsing and immutable afterwards.
package doctree

// Kind identifies the type of a Node.
type Kind int

const (
	KindText Kind = iota
	KindParagraph
	KindHeading
	KindList
	KindListItem
	KindStyled
	KindRuby
	KindFootnoteRef
	KindFootnoteDef
	KindTOCMarker
	KindCode
	KindMarkdown
	KindError
)

// String returns a stable name for the kind, used in diagnostics and tests.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindListItem:
		return "list-item"
	case KindStyled:
		return "styled-block"
	case KindRuby:
		return "ruby"
	case KindFootnoteRef:
		return "footnote-ref"
	case KindFootnoteDef:
		return "footnote-def"
	case KindTOCMarker:
		return "toc-marker"
	case KindCode:
		return "code"
	case KindMarkdown:
		return "markdown"
	case KindError:
		return "error"
	}
	return "unknown"
}

// Style names the visual treatment of a styled block. Each style maps to a
// fixed HTML element in the renderer.
type Style string

const (
	StyleBold      Style = "bold"
	StyleItalic    Style = "italic"
	StyleUnderline Style = "underline"
	StyleHighlight Style = "highlight"
	StyleBox       Style = "box"
	StyleFold      Style = "fold"
	StyleQuote     Style = "quote"
)

// Node is one element of the document tree.
//
// Invariant: a node carries either Text or Children, never both. Container
// nodes that would mix raw text with child nodes wrap the text in a KindText
// child during parsing (normalization).
type Node struct {
	Kind     Kind
	Style    Style  // set for KindStyled
	Level    int    // 1-5 for KindHeading
	Ordered  bool   // set for KindList rendered as <ol>
	Text     string // leaf content (KindText, KindCode, KindMarkdown, ruby base)
	Ruby     string // reading for KindRuby (Text holds the base)
	Children []*Node
	Attrs    Attributes
	Line     int // 1-based source line the node starts on (0 if synthetic)
}

// Flatten returns the concatenated raw text of the node and its descendants.
// Used for cache keys and content hashing.
func (n *Node) Flatten() string {
	if n == nil {
		return ""
	}
	if len(n.Children) == 0 {
		return n.Text
	}
	var out string
	for i, c := range n.Children {
		if i > 0 {
			out += "\n"
		}
		out += c.Flatten()
	}
	return out
}

// Document is the root of a parsed document.
type Document struct {
	Children    []*Node
	Diagnostics []Diagnostic
}
