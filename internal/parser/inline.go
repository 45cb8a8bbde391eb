package parser

import (
	"regexp"

	"github.com/alnah/go-bn2html/internal/doctree"
	"github.com/alnah/go-bn2html/internal/scanner"
)

// footnoteRefPattern matches inline footnote references: [*id].
var footnoteRefPattern = regexp.MustCompile(`\[\*([A-Za-z0-9_-]+)\]`)

// parseInline converts one content line into inline nodes: plain text, ruby
// annotations, and footnote references. Diagnostics (malformed ruby) are
// appended to the context.
func (c *Context) parseInline(text string, line int) []*doctree.Node {
	if text == "" {
		return nil
	}

	var nodes []*doctree.Node
	rest := text
	for rest != "" {
		loc := footnoteRefPattern.FindStringSubmatchIndex(rest)
		if loc == nil {
			nodes = append(nodes, c.parseRubyRun(rest, line)...)
			break
		}
		if loc[0] > 0 {
			nodes = append(nodes, c.parseRubyRun(rest[:loc[0]], line)...)
		}
		nodes = append(nodes, &doctree.Node{
			Kind: doctree.KindFootnoteRef,
			Text: rest[loc[2]:loc[3]],
			Line: line,
		})
		rest = rest[loc[1]:]
	}
	return nodes
}

// parseRubyRun splits a footnote-free text run into text and ruby nodes.
func (c *Context) parseRubyRun(text string, line int) []*doctree.Node {
	if !scanner.ContainsRubyCandidate(text) {
		return []*doctree.Node{{Kind: doctree.KindText, Text: text, Line: line}}
	}

	segs, diags := scanner.SplitRuby(text, line)
	c.diags = append(c.diags, diags...)

	nodes := make([]*doctree.Node, 0, len(segs))
	for _, s := range segs {
		if s.IsRuby {
			nodes = append(nodes, &doctree.Node{
				Kind: doctree.KindRuby,
				Text: s.Base,
				Ruby: s.Reading,
				Line: line,
			})
			continue
		}
		nodes = append(nodes, &doctree.Node{Kind: doctree.KindText, Text: s.Text, Line: line})
	}
	return nodes
}
