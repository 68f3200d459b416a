package code

import (
	"regexp"
	"strings"
	"testing"
)

var codeRe = regexp.MustCompile(`^RP2025-[A-Z0-9]{8}$`)

func TestRandomMatchesPattern(t *testing.T) {
	g := NewRandom(DefaultPrefix, DefaultLength)
	for i := 0; i < 500; i++ {
		c := g.Generate()
		if !codeRe.MatchString(c) {
			t.Fatalf("code %q does not match %s", c, codeRe)
		}
	}
}

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for _, n := range []int{0, 1, 8, 32} {
		s := Generate(n)
		if len(s) != n {
			t.Fatalf("Generate(%d) returned %d chars", n, len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(Alphabet, r) {
				t.Fatalf("unexpected rune %q in %q", r, s)
			}
		}
	}
}

func TestGenerateCoversAlphabet(t *testing.T) {
	seen := map[rune]bool{}
	s := generate(NewSeeded("", 1, 7).intn, 5000)
	for _, r := range s {
		seen[r] = true
	}
	if len(seen) != len(Alphabet) {
		t.Fatalf("expected all %d symbols, saw %d", len(Alphabet), len(seen))
	}
}

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(DefaultPrefix, DefaultLength, 42)
	b := NewSeeded(DefaultPrefix, DefaultLength, 42)
	for i := 0; i < 10; i++ {
		if x, y := a.Generate(), b.Generate(); x != y {
			t.Fatalf("draw %d differs: %q vs %q", i, x, y)
		}
	}
}

func TestNewRandomDefaultsLength(t *testing.T) {
	g := NewRandom("X-", 0)
	if got := len(g.Generate()); got != len("X-")+DefaultLength {
		t.Fatalf("unexpected length %d", got)
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed("RP2025-AAAAAAAA").Generate(); got != "RP2025-AAAAAAAA" {
		t.Fatalf("got %q", got)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"RP2025-7K2QX9AB", true},
		{"RP2025-7K2QX9A", false},
		{"RP2025-7K2QX9ABC", false},
		{"RP2025-7k2qx9ab", false},
		{"RP2024-7K2QX9AB", false},
		{"RP2025X7K2QX9AB", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if !Valid(NewRandom(DefaultPrefix, DefaultLength).Generate()) {
		t.Fatal("generated code must be valid")
	}
}
