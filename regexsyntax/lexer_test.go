package regexsyntax

import (
	"errors"
	"testing"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func eqKinds(t *testing.T, got []Token, want []TokenKind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(gk), len(want), gk)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, gk[i], want[i])
		}
	}
}

func TestTokenizeImplicitConcat(t *testing.T) {
	toks, err := Tokenize("ab")
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{TokLiteral, TokConcat, TokLiteral})
}

func TestTokenizeNoConcatAfterAltOrLParen(t *testing.T) {
	toks, err := Tokenize("a|(b)")
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{
		TokLiteral, TokAlt, TokLParen, TokLiteral, TokRParen,
	})
}

func TestTokenizeConcatAfterCloser(t *testing.T) {
	toks, err := Tokenize("a*b")
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{TokLiteral, TokStar, TokConcat, TokLiteral})
}

func TestTokenizeEndMarker(t *testing.T) {
	toks, err := Tokenize("a#")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 3 || !toks[2].Marker {
		t.Fatalf("expected trailing end-marker literal, got %v", toks)
	}
}

func TestTokenizeEscapedEndMarker(t *testing.T) {
	toks, err := Tokenize(`\#`)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Marker || toks[0].Rune != '#' {
		t.Fatalf("expected literal '#', got %v", toks)
	}
}

func TestTokenizeTrailingEscape(t *testing.T) {
	_, err := Tokenize(`a\`)
	if !errors.Is(err, ErrTrailingEscape) {
		t.Fatalf("err = %v, want ErrTrailingEscape", err)
	}
}

func TestTokenizeUnterminatedClass(t *testing.T) {
	_, err := Tokenize("[abc")
	if !errors.Is(err, ErrUnterminatedClass) {
		t.Fatalf("err = %v, want ErrUnterminatedClass", err)
	}
}

func TestTokenizeUnterminatedLiteral(t *testing.T) {
	_, err := Tokenize(`'abc`)
	if !errors.Is(err, ErrUnterminatedLiteral) {
		t.Fatalf("err = %v, want ErrUnterminatedLiteral", err)
	}
}

func TestTokenizeUnknownChar(t *testing.T) {
	_, err := Tokenize(".")
	if !errors.Is(err, ErrUnknownChar) {
		t.Fatalf("err = %v, want ErrUnknownChar", err)
	}
}

func TestTokenizeCharClassRange(t *testing.T) {
	toks, err := Tokenize("[a-c]")
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{
		TokLParen, TokLiteral, TokAlt, TokLiteral, TokAlt, TokLiteral, TokRParen,
	})
	want := []rune{'a', 'b', 'c'}
	got := []rune{toks[1].Rune, toks[3].Rune, toks[5].Rune}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("class rune[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeCharClassReorderedRange(t *testing.T) {
	toks, err := Tokenize("[c-a]")
	if err != nil {
		t.Fatal(err)
	}
	got := []rune{toks[1].Rune, toks[3].Rune, toks[5].Rune}
	want := []rune{'a', 'b', 'c'}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("class rune[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeCharClassDedup(t *testing.T) {
	toks, err := Tokenize("[aab]")
	if err != nil {
		t.Fatal(err)
	}
	// distinct code points only: 'a', 'b'
	eqKinds(t, toks, []TokenKind{TokLParen, TokLiteral, TokAlt, TokLiteral, TokRParen})
}

func TestTokenizeQuotedLiteral(t *testing.T) {
	toks, err := Tokenize(`"ab"`)
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{TokLiteral, TokConcat, TokLiteral})
	if toks[0].Rune != 'a' || toks[2].Rune != 'b' {
		t.Fatalf("got %v", toks)
	}
}

func TestTokenizeQuotedLiteralEscape(t *testing.T) {
	toks, err := Tokenize(`"a\nb"`)
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{TokLiteral, TokConcat, TokLiteral, TokConcat, TokLiteral})
	if toks[0].Rune != 'a' || toks[2].Rune != '\n' || toks[4].Rune != 'b' {
		t.Fatalf("got %v", toks)
	}
}

func TestTokenizeUnicodeEscape(t *testing.T) {
	toks, err := Tokenize("\\u0041")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Rune != 'A' {
		t.Fatalf("got %v, want literal 'A' decoded from \\u0041", toks)
	}
}

func TestTokenizeUnicodeEscapeInQuotedLiteral(t *testing.T) {
	toks, err := Tokenize("\"\\u00e9\"")
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 1 || toks[0].Rune != 'é' {
		t.Fatalf("got %v, want literal 'é' decoded from \\u00e9", toks)
	}
}

func TestTokenizeWhitespaceIgnored(t *testing.T) {
	toks, err := Tokenize("a  |  b")
	if err != nil {
		t.Fatal(err)
	}
	eqKinds(t, toks, []TokenKind{TokLiteral, TokAlt, TokLiteral})
}
