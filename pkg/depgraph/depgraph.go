// Package depgraph builds directed graphs from dependency parse
// annotations and serializes them as Graphviz DOT.
//
// # Overview
//
// A parse tree is modeled as one node per token and one edge per
// grammatical relation. Sentence roots have no real governor token, so
// each root edge spawns a synthetic sentence node with a negative index
// (-1, -2, ...) labeled S1, S2, ... and is redirected to point out of it.
//
// # Usage
//
// Build a graph from ordered tokens and dependency edges, then render it:
//
//	g := depgraph.Build(tokens, deps, depgraph.Options{})
//	dot := g.DOT()
//
// Building is total and pure: the same inputs always produce the same
// graph, and malformed indices in the input are passed through rather
// than rejected, yielding a well-defined (if dangling) edge statement.
package depgraph

import (
	"fmt"

	"github.com/aweissman/depviz/pkg/adm"
)

// RelationRoot is the relation label the upstream API uses to mark a
// sentence root edge. Root edges carry governor token index -1.
const RelationRoot = "root"

// Node is a graph node: a token (non-negative index) or a synthetic
// sentence root (negative index). The label is DOT-ready: token text is
// escaped at build time, before any index prefix is applied, so the
// prefix parentheses stay literal.
type Node struct {
	Index int
	Label string
}

// Edge is a labeled directed edge between two node indices.
type Edge struct {
	From  int
	To    int
	Label string
}

// Graph is the derived artifact of one build pass. It is constructed
// fresh per call and never mutated afterwards.
type Graph struct {
	Nodes []Node
	Edges []Edge
}

// Options configures graph construction.
type Options struct {
	// ShowIndices prefixes every token label with its sorted-order index,
	// e.g. "(0) This". Helpful for reading reordered trees.
	ShowIndices bool
}

// Build constructs a Graph from tokens and dependency edges.
//
// Tokens must already be in their canonical (startOffset, endOffset)
// order and deps in (governor, dependent) order; see [adm.Document.Tokens]
// and [adm.Document.Dependencies]. Token node indices are positions in
// the token slice. Each root edge emits a synthetic sentence node at the
// next negative index and is rewritten to originate from it.
//
// Out-of-range indices in deps are not validated; they produce edges
// referencing nodes that were never declared.
func Build(tokens []adm.Token, deps []adm.DependencyEdge, opts Options) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(tokens)),
		Edges: make([]Edge, 0, len(deps)),
	}

	for i, tok := range tokens {
		// Only the token text is escaped; the index prefix is ours and
		// must stay literal in the emitted label.
		label := Escape(tok.Text)
		if opts.ShowIndices {
			label = fmt.Sprintf("(%d) %s", i, label)
		}
		g.Nodes = append(g.Nodes, Node{Index: i, Label: label})
	}

	sentenceIndex := -1
	for _, dep := range deps {
		from := dep.GovernorTokenIndex
		if dep.Relationship == RelationRoot {
			g.Nodes = append(g.Nodes, Node{
				Index: sentenceIndex,
				Label: fmt.Sprintf("S%d", -sentenceIndex),
			})
			from = sentenceIndex
			sentenceIndex--
		}
		g.Edges = append(g.Edges, Edge{From: from, To: dep.DependencyTokenIndex, Label: dep.Relationship})
	}

	return g
}
