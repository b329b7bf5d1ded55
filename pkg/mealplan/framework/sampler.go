/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package framework

import (
	"math/rand/v2"
)

// PortionSampler draws random portions from a catalog.
type PortionSampler struct {
	Catalog *Catalog
	// MinMass and MaxMass bound the mass of a sampled portion, inclusive.
	MinMass int
	MaxMass int
}

// Portion draws a uniformly random food with a uniformly random mass.
func (s PortionSampler) Portion(rng *rand.Rand) Portion {
	food := s.Catalog.Food(rng.IntN(s.Catalog.Len()))
	return NewPortion(food, s.MinMass+rng.IntN(s.MaxMass-s.MinMass+1))
}

// Day draws count random portions into a new Day. Portions of the same food
// merge, so the Day may hold fewer than count portions.
func (s PortionSampler) Day(eval *Evaluator, count int, rng *rand.Rand) *Day {
	portions := make([]Portion, max(count, 1))
	for i := range portions {
		portions[i] = s.Portion(rng)
	}
	// Sampled masses are positive, so the Day cannot be empty.
	d, _ := NewDay(eval, portions...)
	return d
}

// NewRand returns a generator seeded with seed; the same seed reproduces
// the same sequence.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
