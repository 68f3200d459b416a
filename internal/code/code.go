// Package code produces registration codes such as RP2025-7K2QX9AB.
//
// Codes come from a non-cryptographic source and are not checked for
// collisions. Uniqueness, if required, is enforced by the participants API.
package code

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	Alphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultPrefix = "RP2025-"
	DefaultLength = 8
)

var pattern = regexp.MustCompile(fmt.Sprintf("^%s[%s]{%d}$", regexp.QuoteMeta(DefaultPrefix), Alphabet, DefaultLength))

// Valid reports whether s has the shape of a code issued by this service.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

// Generator hands out one registration code per call.
type Generator interface {
	Generate() string
}

// Generate returns length characters drawn uniformly from Alphabet.
func Generate(length int) string {
	return generate(rand.IntN, length)
}

func generate(intn func(int) int, length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(Alphabet[intn(len(Alphabet))])
	}
	return b.String()
}

// Random prefixes a fresh random draw on every call.
type Random struct {
	Prefix string
	Length int

	intn func(int) int
}

func NewRandom(prefix string, length int) *Random {
	if length <= 0 {
		length = DefaultLength
	}
	return &Random{Prefix: prefix, Length: length, intn: rand.IntN}
}

// NewSeeded is NewRandom with a deterministic source.
func NewSeeded(prefix string, length int, seed uint64) *Random {
	r := NewRandom(prefix, length)
	r.intn = rand.New(rand.NewPCG(seed, seed)).IntN
	return r
}

func (r *Random) Generate() string {
	return r.Prefix + generate(r.intn, r.Length)
}

// Fixed always returns the same code.
type Fixed string

func (f Fixed) Generate() string { return string(f) }
