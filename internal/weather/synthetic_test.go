package weather

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestSyntheticBounds(t *testing.T) {
	locations := []string{"", "Oslo", "   ", "São Paulo"}
	for _, loc := range locations {
		for i := 0; i < 500; i++ {
			r := Synthetic(loc)
			if r.Temperature < SyntheticMinTemp || r.Temperature > SyntheticMaxTemp {
				t.Fatalf("Synthetic(%q) temperature = %v, out of range", loc, r.Temperature)
			}
			if r.Temperature != float64(int(r.Temperature)) {
				t.Fatalf("Synthetic(%q) temperature = %v, want integer", loc, r.Temperature)
			}
			if !slices.Contains(Conditions, r.Condition) {
				t.Fatalf("Synthetic(%q) condition = %q, not in set", loc, r.Condition)
			}
			if r.Icon != IconURL(FallbackIconCode) {
				t.Fatalf("Synthetic(%q) icon = %q", loc, r.Icon)
			}
		}
	}
}

func TestGeneratorCoversRange(t *testing.T) {
	g := NewGenerator(rand.NewPCG(1, 2))
	temps := map[float64]bool{}
	conditions := map[string]bool{}
	for i := 0; i < 5000; i++ {
		r := g.Reading("x")
		temps[r.Temperature] = true
		conditions[r.Condition] = true
	}
	if len(temps) != SyntheticMaxTemp-SyntheticMinTemp+1 {
		t.Errorf("saw %d distinct temperatures, want %d", len(temps), SyntheticMaxTemp-SyntheticMinTemp+1)
	}
	if len(conditions) != len(Conditions) {
		t.Errorf("saw %d distinct conditions, want %d", len(conditions), len(Conditions))
	}
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(rand.NewPCG(7, 7))
	b := NewGenerator(rand.NewPCG(7, 7))
	for i := 0; i < 20; i++ {
		if ra, rb := a.Reading(""), b.Reading(""); ra != rb {
			t.Fatalf("reading %d differs: %+v vs %+v", i, ra, rb)
		}
	}
}
