package library

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// baskets groups tile colors by hue family. A gradient always mixes two
// different baskets.
var baskets = [][]string{
	{"#0057bd", "#5213c8", "#0fa5a6", "#4a24ac"}, // blues
	{"#e35a00", "#e67e22", "#b9ca00", "#cba432"}, // oranges
	{"#14b23a", "#199608", "#468e08", "#75ac11"}, // greens
	{"#ac117e", "#b32c9a", "#9d00a4", "#7a16a7"}, // purples/pinks
	{"#ff2c0a", "#ff3e54", "#ff417d", "#f100a9"}, // reds
	{"#f050ff", "#b500ff", "#6800e2", "#5938ff"}, // violets
	{"#507bff", "#00a0ff", "#00f6ff", "#00d8c2"}, // cyans
	{"#00d58a", "#00ff72", "#26d04f", "#26d028"}, // limes
	{"#bfff4b", "#b7d300", "#bfb133", "#ff9600"}, // yellows
}

// rng is the randomness source used for gradients. Tests may replace it
// with a seeded source.
var rng = rand.New(rand.NewSource(rand.Int63()))

var randMu sync.Mutex

// NewID returns a fresh entity id.
func NewID() string {
	return "id-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// CrossBasketGradient picks two different baskets and one color from each.
func CrossBasketGradient() Gradient {
	randMu.Lock()
	defer randMu.Unlock()
	a := rng.Intn(len(baskets))
	b := rng.Intn(len(baskets))
	if b == a {
		b = (b + 1) % len(baskets)
	}
	return Gradient{
		baskets[a][rng.Intn(len(baskets[a]))],
		baskets[b][rng.Intn(len(baskets[b]))],
	}
}

// basketOf returns the basket index containing color, or -1.
func basketOf(color string) int {
	for i, b := range baskets {
		for _, c := range b {
			if strings.EqualFold(c, color) {
				return i
			}
		}
	}
	return -1
}
