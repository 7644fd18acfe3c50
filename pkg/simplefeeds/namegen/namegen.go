// Package namegen generates whimsical bilingual usernames of the form
// "adjective_noun", where one half is French and the other English.
package namegen

import (
	"math/rand/v2"
)

// Pair holds the French and English renderings of one word.
type Pair struct {
	French  string
	English string
}

var adjectives = []Pair{
	{"Aventureux", "Adventurous"},
	{"Courageux", "Brave"},
	{"Joyeux", "Joyful"},
	{"Curieux", "Curious"},
	{"Rapide", "Swift"},
	{"Sauvage", "Wild"},
	{"Brillant", "Bright"},
	{"Tranquille", "Calm"},
	{"Vaillant", "Valiant"},
	{"Agile", "Nimble"},
	{"Fier", "Proud"},
	{"Malin", "Clever"},
}

var nouns = []Pair{
	{"Renard", "Fox"},
	{"Loup", "Wolf"},
	{"Hibou", "Owl"},
	{"Ours", "Bear"},
	{"Aigle", "Eagle"},
	{"Cerf", "Stag"},
	{"Loutre", "Otter"},
	{"Corbeau", "Raven"},
	{"Blaireau", "Badger"},
	{"Castor", "Beaver"},
	{"Faucon", "Falcon"},
	{"Lievre", "Hare"},
}

// Generator picks names from an immutable word-pair table. It carries no
// mutable state, so a single Generator is safe for concurrent use.
type Generator struct {
	intn func(n int) int
}

// New returns a Generator backed by the shared math/rand/v2 source.
func New() *Generator {
	return &Generator{intn: rand.IntN}
}

// NewWithIntN returns a Generator using the provided bounded-integer source.
// Intended for deterministic tests.
func NewWithIntN(intn func(n int) int) *Generator {
	return &Generator{intn: intn}
}

// Generate returns a name like "Aventureux_Fox" or "Brave_Renard". Exactly
// one of the two words is French; a coin flip decides which.
func (g *Generator) Generate() string {
	adj := adjectives[g.intn(len(adjectives))]
	noun := nouns[g.intn(len(nouns))]

	if g.intn(2) == 0 {
		return adj.French + "_" + noun.English
	}
	return adj.English + "_" + noun.French
}
