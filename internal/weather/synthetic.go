package weather

import (
	"math/rand/v2"
	"sync"
)

// Conditions is the fixed set synthetic readings draw from.
var Conditions = []string{"Sunny", "Cloudy", "Rainy", "Stormy", "Windy", "Snowy"}

const (
	// SyntheticMinTemp and SyntheticMaxTemp bound synthetic temperatures (inclusive).
	SyntheticMinTemp = 1
	SyntheticMaxTemp = 30
	// FallbackIconCode is the clear-sky icon used for every synthetic reading.
	FallbackIconCode = "01d"
)

// Generator produces synthetic readings from a random source.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator backed by src. A nil src uses a randomly seeded source.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// Reading returns a synthetic reading. The location is accepted for symmetry
// with live lookups and does not influence the result.
func (g *Generator) Reading(location string) Reading {
	g.mu.Lock()
	condition := Conditions[g.rng.IntN(len(Conditions))]
	temp := SyntheticMinTemp + g.rng.IntN(SyntheticMaxTemp-SyntheticMinTemp+1)
	g.mu.Unlock()

	return Reading{
		Temperature: float64(temp),
		Condition:   condition,
		Icon:        IconURL(FallbackIconCode),
	}
}

var defaultGenerator = NewGenerator(nil)

// Synthetic returns a random reading without doing any I/O. It never fails.
func Synthetic(location string) Reading {
	return defaultGenerator.Reading(location)
}
