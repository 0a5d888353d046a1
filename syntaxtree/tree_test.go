package syntaxtree

import (
	"errors"
	"testing"

	"github.com/coregx/lexgen/regexsyntax"
)

func build(t *testing.T, pattern string) *Tree {
	t.Helper()
	tree, err := FromPattern(pattern)
	if err != nil {
		t.Fatalf("FromPattern(%q): %v", pattern, err)
	}
	return tree
}

func TestBuildSingleLiteral(t *testing.T) {
	tree := build(t, "a")
	if tree.NumPositions() != 1 {
		t.Fatalf("NumPositions() = %d, want 1", tree.NumPositions())
	}
	if tree.Nullable(tree.Root()) {
		t.Error("single literal must not be nullable")
	}
	if len(tree.Firstpos(tree.Root())) != 1 || len(tree.Lastpos(tree.Root())) != 1 {
		t.Error("firstpos/lastpos of a single literal must each have one position")
	}
}

func TestBuildConcatAttributes(t *testing.T) {
	tree := build(t, "ab")
	root := tree.Root()
	if tree.Nullable(root) {
		t.Error("'ab' is not nullable")
	}
	if got := tree.Firstpos(root); len(got) != 1 || got[0] != 1 {
		t.Errorf("firstpos(ab) = %v, want [1]", got)
	}
	if got := tree.Lastpos(root); len(got) != 1 || got[0] != 2 {
		t.Errorf("lastpos(ab) = %v, want [2]", got)
	}
}

func TestBuildStarIsNullable(t *testing.T) {
	tree := build(t, "a*")
	if !tree.Nullable(tree.Root()) {
		t.Error("'a*' must be nullable")
	}
}

func TestBuildPlusDesugarsWithoutAliasing(t *testing.T) {
	tree := build(t, "a+")
	// a+ -> a . a* : two distinct positions, not one aliased twice.
	if tree.NumPositions() != 2 {
		t.Fatalf("NumPositions() = %d, want 2 (a+ must duplicate positions, not alias)", tree.NumPositions())
	}
	if tree.Nullable(tree.Root()) {
		t.Error("'a+' must not be nullable")
	}
}

func TestBuildQuestionIsNullable(t *testing.T) {
	tree := build(t, "a?")
	if !tree.Nullable(tree.Root()) {
		t.Error("'a?' must be nullable")
	}
	// Classical formulation: the epsilon branch allocates no position.
	if tree.NumPositions() != 1 {
		t.Fatalf("NumPositions() = %d, want 1", tree.NumPositions())
	}
}

func TestBuildAltUnion(t *testing.T) {
	tree := build(t, "a|b")
	root := tree.Root()
	if len(tree.Firstpos(root)) != 2 || len(tree.Lastpos(root)) != 2 {
		t.Errorf("firstpos/lastpos of 'a|b' must each have two positions")
	}
}

func TestBuildMalformedPostfixExtraOperand(t *testing.T) {
	// Construct a postfix stream with two literals and no operator.
	postfix := []regexsyntax.Token{regexsyntax.Lit('a'), regexsyntax.Lit('b')}
	_, err := Build("ab", postfix)
	if !errors.Is(err, regexsyntax.ErrMalformedPostfix) {
		t.Fatalf("err = %v, want ErrMalformedPostfix", err)
	}
}

func TestBuildMalformedPostfixMissingOperand(t *testing.T) {
	postfix := []regexsyntax.Token{regexsyntax.Op(regexsyntax.TokConcat)}
	_, err := Build("", postfix)
	if !errors.Is(err, regexsyntax.ErrMalformedPostfix) {
		t.Fatalf("err = %v, want ErrMalformedPostfix", err)
	}
}

func TestComputeFollowposEndToEnd(t *testing.T) {
	// (a|b)*abb -- the classic Aho/Sethi/Ullman worked example, with
	// positions a=1,b=2,a=3,b=4,b=5. followpos(1) = followpos(2) = {1,2,3}.
	tree := build(t, "(a|b)*abb")
	fp := ComputeFollowpos(tree)
	want := []uint32{1, 2, 3}
	for _, p := range []uint32{1, 2} {
		got := fp.Followpos(p)
		if len(got) != len(want) {
			t.Fatalf("followpos(%d) = %v, want %v", p, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("followpos(%d)[%d] = %d, want %d", p, i, got[i], want[i])
			}
		}
	}
	// followpos(3) = {4}, followpos(4) = {5}, followpos(5) = {}
	if got := fp.Followpos(3); len(got) != 1 || got[0] != 4 {
		t.Errorf("followpos(3) = %v, want [4]", got)
	}
	if got := fp.Followpos(4); len(got) != 1 || got[0] != 5 {
		t.Errorf("followpos(4) = %v, want [5]", got)
	}
	if got := fp.Followpos(5); len(got) != 0 {
		t.Errorf("followpos(5) = %v, want []", got)
	}
}
