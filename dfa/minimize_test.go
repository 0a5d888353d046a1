package dfa

import "testing"

func TestMinimizeReducesClassicExample(t *testing.T) {
	d := buildDFA(t, "(a|b)*abb#")
	min := Minimize(d)
	if min.NumStates() > d.NumStates() {
		t.Fatalf("minimized DFA has %d states, more than unminimized %d", min.NumStates(), d.NumStates())
	}
	if min.NumStates() != 4 {
		t.Errorf("minimized (a|b)*abb# should have 4 states, got %d", min.NumStates())
	}
	accept := []string{"abb", "aabb", "babb", "ababb"}
	for _, s := range accept {
		if !run(min, s) {
			t.Errorf("minimized DFA: %q should be accepted", s)
		}
	}
	reject := []string{"", "a", "ab", "abbb"}
	for _, s := range reject {
		if run(min, s) {
			t.Errorf("minimized DFA: %q should be rejected", s)
		}
	}
}

func TestMinimizePreservesLanguageOnIdentifierPattern(t *testing.T) {
	d := buildDFA(t, "[A-Za-z][A-Za-z0-9]*#")
	min := Minimize(d)
	accept := []string{"a", "Z", "foo", "Foo123"}
	for _, s := range accept {
		if !run(min, s) {
			t.Errorf("minimized DFA: %q should be accepted", s)
		}
	}
	reject := []string{"", "1foo", "9"}
	for _, s := range reject {
		if run(min, s) {
			t.Errorf("minimized DFA: %q should be rejected", s)
		}
	}
}

// TestMinimizeIsIdempotent checks that minimizing an already-minimal DFA
// does not change its state count or its language.
func TestMinimizeIsIdempotent(t *testing.T) {
	d := buildDFA(t, "(a|b)*abb#")
	once := Minimize(d)
	twice := Minimize(once)
	if twice.NumStates() != once.NumStates() {
		t.Fatalf("Minimize(Minimize(d)) has %d states, want %d (idempotence)", twice.NumStates(), once.NumStates())
	}
	strs := []string{"", "a", "ab", "abb", "aabb", "babb", "ababb", "abbb", "ba", "abba"}
	for _, s := range strs {
		if run(once, s) != run(twice, s) {
			t.Errorf("Minimize(Minimize(d)) disagrees with Minimize(d) on %q", s)
		}
	}
}
