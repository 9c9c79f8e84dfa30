package depgraph

import (
	"strings"
	"testing"

	"github.com/aweissman/depviz/pkg/adm"
)

func sentenceFixture() ([]adm.Token, []adm.DependencyEdge) {
	tokens := []adm.Token{
		{Text: "This", StartOffset: 0, EndOffset: 4},
		{Text: "is", StartOffset: 5, EndOffset: 7},
		{Text: "a", StartOffset: 8, EndOffset: 9},
		{Text: "sentence", StartOffset: 10, EndOffset: 18},
		{Text: ".", StartOffset: 18, EndOffset: 19},
	}
	deps := []adm.DependencyEdge{
		{Relationship: "root", GovernorTokenIndex: -1, DependencyTokenIndex: 3},
		{Relationship: "nsubj", GovernorTokenIndex: 3, DependencyTokenIndex: 0},
		{Relationship: "cop", GovernorTokenIndex: 3, DependencyTokenIndex: 1},
		{Relationship: "det", GovernorTokenIndex: 3, DependencyTokenIndex: 2},
		{Relationship: "punct", GovernorTokenIndex: 3, DependencyTokenIndex: 4},
	}
	return tokens, deps
}

func TestBuildSentence(t *testing.T) {
	tokens, deps := sentenceFixture()
	g := Build(tokens, deps, Options{})

	// 5 token nodes plus 1 synthetic sentence node.
	if len(g.Nodes) != 6 {
		t.Fatalf("got %d nodes, want 6", len(g.Nodes))
	}
	if len(g.Edges) != 5 {
		t.Fatalf("got %d edges, want 5", len(g.Edges))
	}

	syn := g.Nodes[5]
	if syn.Index != -1 || syn.Label != "S1" {
		t.Errorf("synthetic node = {%d %q}, want {-1 S1}", syn.Index, syn.Label)
	}

	// Root edge must be rewritten to originate from the synthetic node.
	root := g.Edges[0]
	if root.From != -1 || root.To != 3 || root.Label != "root" {
		t.Errorf("root edge = %+v, want {-1 3 root}", root)
	}
}

func TestBuildMultipleRoots(t *testing.T) {
	tokens := []adm.Token{
		{Text: "Go", StartOffset: 0, EndOffset: 2},
		{Text: "Stop", StartOffset: 4, EndOffset: 8},
		{Text: "Wait", StartOffset: 10, EndOffset: 14},
	}
	deps := []adm.DependencyEdge{
		{Relationship: "root", GovernorTokenIndex: -1, DependencyTokenIndex: 0},
		{Relationship: "root", GovernorTokenIndex: -1, DependencyTokenIndex: 1},
		{Relationship: "root", GovernorTokenIndex: -1, DependencyTokenIndex: 2},
	}

	g := Build(tokens, deps, Options{})

	if len(g.Nodes) != 6 {
		t.Fatalf("got %d nodes, want 6", len(g.Nodes))
	}

	// Synthetic nodes descend -1, -2, -3 with labels S1, S2, S3.
	wantIdx := []int{-1, -2, -3}
	wantLabel := []string{"S1", "S2", "S3"}
	for i := 0; i < 3; i++ {
		n := g.Nodes[3+i]
		if n.Index != wantIdx[i] || n.Label != wantLabel[i] {
			t.Errorf("synthetic %d = {%d %q}, want {%d %q}", i, n.Index, n.Label, wantIdx[i], wantLabel[i])
		}
		if g.Edges[i].From != wantIdx[i] {
			t.Errorf("edge %d from = %d, want %d", i, g.Edges[i].From, wantIdx[i])
		}
	}
}

func TestBuildShowIndices(t *testing.T) {
	tokens, deps := sentenceFixture()
	g := Build(tokens, deps, Options{ShowIndices: true})

	if g.Nodes[0].Label != "(0) This" {
		t.Errorf("node 0 label = %q, want %q", g.Nodes[0].Label, "(0) This")
	}
	if g.Nodes[3].Label != "(3) sentence" {
		t.Errorf("node 3 label = %q, want %q", g.Nodes[3].Label, "(3) sentence")
	}
	// Synthetic labels are never prefixed.
	if g.Nodes[5].Label != "S1" {
		t.Errorf("synthetic label = %q, want S1", g.Nodes[5].Label)
	}
}

func TestDOTShowIndicesPrefixLiteral(t *testing.T) {
	// The index prefix is not token text; its parentheses must reach the
	// DOT output unescaped.
	tokens, deps := sentenceFixture()
	dot := Build(tokens, deps, Options{ShowIndices: true}).DOT()

	if !strings.Contains(dot, `0 [label="(0) This"]`) {
		t.Errorf("DOT missing literal index prefix:\n%s", dot)
	}
	if strings.Contains(dot, `\(0\)`) {
		t.Errorf("index prefix must not be escaped:\n%s", dot)
	}

	// Token text inside an indexed label is still escaped.
	indexed := Build([]adm.Token{{Text: `say "hi"`, StartOffset: 0, EndOffset: 8}}, nil, Options{ShowIndices: true}).DOT()
	if !strings.Contains(indexed, `0 [label="(0) say \"hi\""]`) {
		t.Errorf("token text not escaped inside indexed label:\n%s", indexed)
	}
}

func TestBuildEmpty(t *testing.T) {
	g := Build(nil, nil, Options{})
	if len(g.Nodes) != 0 || len(g.Edges) != 0 {
		t.Errorf("empty input should yield an empty graph: %+v", g)
	}

	dot := g.DOT()
	if !strings.HasPrefix(dot, "digraph G{\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph DOT malformed:\n%s", dot)
	}
}

func TestBuildMalformedIndicesPassThrough(t *testing.T) {
	tokens := []adm.Token{{Text: "one", StartOffset: 0, EndOffset: 3}}
	deps := []adm.DependencyEdge{
		{Relationship: "nsubj", GovernorTokenIndex: 7, DependencyTokenIndex: 0},
	}

	g := Build(tokens, deps, Options{})
	if len(g.Edges) != 1 || g.Edges[0].From != 7 {
		t.Errorf("out-of-range governor should pass through: %+v", g.Edges)
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `plain`},
		{`a[b]c`, `a\[b\]c`},
		{`(x)`, `\(x\)`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{`a[b]c"d\e(f)g`, `a\[b\]c\"d\\e\(f\)g`},
		{``, ``},
	}

	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDOTOutput(t *testing.T) {
	tokens, deps := sentenceFixture()
	g := Build(tokens, deps, Options{})
	dot := g.DOT()

	wantLines := []string{
		`digraph G{`,
		`edge [dir="forward", arrowhead="open", arrowsize=0.5]`,
		`node [shape="box", height=0]`,
		`0 [label="This"]`,
		`3 [label="sentence"]`,
		`-1 [label="S1"]`,
		`-1 -> 3 [label="root"]`,
		`3 -> 0 [label="nsubj"]`,
		`3 -> 4 [label="punct"]`,
	}
	for _, line := range wantLines {
		if !strings.Contains(dot, line+"\n") {
			t.Errorf("DOT missing line %q:\n%s", line, dot)
		}
	}

	// Node statements precede edge statements.
	if strings.Index(dot, `-1 [label="S1"]`) > strings.Index(dot, `-1 -> 3`) {
		t.Error("node statements should precede edge statements")
	}
}

func TestDOTEscapesLabels(t *testing.T) {
	tokens := []adm.Token{{Text: `a "quoted" [word]`, StartOffset: 0, EndOffset: 17}}
	g := Build(tokens, nil, Options{})
	dot := g.DOT()

	want := `0 [label="a \"quoted\" \[word\]"]`
	if !strings.Contains(dot, want) {
		t.Errorf("DOT missing %q:\n%s", want, dot)
	}
}

func TestDOTDeterministic(t *testing.T) {
	tokens, deps := sentenceFixture()

	first := Build(tokens, deps, Options{}).DOT()
	for i := 0; i < 10; i++ {
		if got := Build(tokens, deps, Options{}).DOT(); got != first {
			t.Fatalf("run %d differs from first:\n%s\nvs\n%s", i, got, first)
		}
	}
}
