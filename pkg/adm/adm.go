// Package adm models the Annotated Data Model (ADM) returned by the
// Rosette API when the "output=rosette" URL parameter is set.
//
// An ADM describes one analyzed document: the raw content plus annotation
// layers keyed by attribute name. depviz only consumes two layers, the
// token list and the dependency-edge list, exposed through [Document.Tokens]
// and [Document.Dependencies] as deterministically ordered slices.
//
// Both accessors are pure projections: they never touch the network, never
// mutate the document, and return the same ordering for the same input.
package adm

import (
	"sort"

	"github.com/aweissman/depviz/pkg/errors"
)

// Token is a single token annotation with its character extent in the
// source text. Token identity is positional: a token's index is its
// position in the (StartOffset, EndOffset)-sorted order.
type Token struct {
	Text        string `json:"text"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

// DependencyEdge is a directed grammatical relation between two tokens,
// identified by their sorted-order indices. A sentence root is marked by
// GovernorTokenIndex == -1 together with Relationship == "root"; the
// dependent token is the syntactic root of one sentence.
type DependencyEdge struct {
	Relationship         string `json:"relationship"`
	GovernorTokenIndex   int    `json:"governorTokenIndex"`
	DependencyTokenIndex int    `json:"dependencyTokenIndex"`
}

// ItemList is a generic ADM attribute container holding annotation items.
type ItemList[T any] struct {
	Items []T `json:"items"`
}

// Attributes holds the annotation layers of a document. Only the layers
// depviz consumes are modeled; unknown layers are ignored during decoding.
type Attributes struct {
	Token      *ItemList[Token]          `json:"token"`
	Dependency *ItemList[DependencyEdge] `json:"dependency"`
}

// Document is one analyzed document as returned by the Rosette API.
type Document struct {
	Data       string      `json:"data,omitempty"`
	Attributes *Attributes `json:"attributes"`
}

// Tokens returns the document's tokens sorted ascending by
// (StartOffset, EndOffset). The sort is stable, so tokens with identical
// offsets keep their original relative order. The returned slice is a
// fresh copy; mutating it does not affect the document.
//
// It fails with a STRUCTURAL_ERROR when the token container is missing
// entirely, which indicates an upstream API contract violation. An empty
// item list is valid and yields an empty slice.
func (d *Document) Tokens() ([]Token, error) {
	if d == nil || d.Attributes == nil || d.Attributes.Token == nil {
		return nil, errors.New(errors.ErrCodeStructural, "document has no token attribute")
	}

	tokens := make([]Token, len(d.Attributes.Token.Items))
	copy(tokens, d.Attributes.Token.Items)

	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].StartOffset != tokens[j].StartOffset {
			return tokens[i].StartOffset < tokens[j].StartOffset
		}
		return tokens[i].EndOffset < tokens[j].EndOffset
	})
	return tokens, nil
}

// Dependencies returns the document's dependency edges sorted ascending by
// (GovernorTokenIndex, DependencyTokenIndex). Root edges carry governor
// index -1 and therefore sort before every edge with a real governor,
// grouping all sentence roots at the front. The sort is stable and the
// returned slice is a fresh copy.
//
// It fails with a STRUCTURAL_ERROR when the dependency container is
// missing entirely.
func (d *Document) Dependencies() ([]DependencyEdge, error) {
	if d == nil || d.Attributes == nil || d.Attributes.Dependency == nil {
		return nil, errors.New(errors.ErrCodeStructural, "document has no dependency attribute")
	}

	deps := make([]DependencyEdge, len(d.Attributes.Dependency.Items))
	copy(deps, d.Attributes.Dependency.Items)

	sort.SliceStable(deps, func(i, j int) bool {
		if deps[i].GovernorTokenIndex != deps[j].GovernorTokenIndex {
			return deps[i].GovernorTokenIndex < deps[j].GovernorTokenIndex
		}
		return deps[i].DependencyTokenIndex < deps[j].DependencyTokenIndex
	})
	return deps, nil
}
