package depgraph

import (
	"bytes"
	"fmt"
	"regexp"
)

// stylePreamble fixes edge arrowheads and node shape for every graph.
// Tokens render as flat boxes with thin forward arrows between them.
const stylePreamble = `edge [dir="forward", arrowhead="open", arrowsize=0.5]
node [shape="box", height=0]
`

// escapeRe matches the characters with special semantics inside a DOT
// label: brackets, parentheses, double quote, and backslash.
var escapeRe = regexp.MustCompile(`([\[\]()"\\])`)

// Escape backslash-escapes DOT label metacharacters in s. Each qualifying
// character is escaped exactly once, scanning left to right.
func Escape(s string) string {
	return escapeRe.ReplaceAllString(s, `\$1`)
}

// DOT serializes the graph as a Graphviz digraph description.
//
// The output is a `digraph G{...}` block containing the fixed style
// preamble, one node statement per node in emission order, and one edge
// statement per edge in emission order, each newline-terminated. Node
// labels are emitted as-is: [Build] already escaped the token text, and
// relation labels come from an upstream vocabulary of safe identifiers.
//
// For a fixed graph the output bytes are identical across runs.
func (g *Graph) DOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph G{\n")
	buf.WriteString(stylePreamble)

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "%d [label=\"%s\"]\n", n.Index, n.Label)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "%d -> %d [label=\"%s\"]\n", e.From, e.To, e.Label)
	}

	buf.WriteString("}\n")
	return buf.String()
}
