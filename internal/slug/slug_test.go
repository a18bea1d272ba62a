package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "Chene vert", Fold("Chêne vert"))
	assert.Equal(t, "Erable", Fold("Érable"))
	assert.Equal(t, "oak", Fold("oak"))
}

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Chêne vert":    "chene-vert",
		"Côte d'Ivoire": "cote-d-ivoire",
		"  Amazonie  ":  "amazonie",
		"Baobab":        "baobab",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "Make(%q)", in)
	}
}
