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

package genetic

import (
	"math"
	"math/rand/v2"
	"slices"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// Crossover performs mass-weighted N-point crossover. The portions of both
// parents are laid end to end and cut at points random fractions of their
// total mass; the segments alternate between the two children. A portion
// straddling a cut is split into two portions of the same food.
// The parents are not modified.
func Crossover(p1, p2 *framework.Day, points int, rng *rand.Rand) (*framework.Day, *framework.Day) {
	return SplitAt(p1, p2, CutPoints(p1.Mass()+p2.Mass(), points, rng))
}

// CutPoints draws n cut offsets in grams, each kept at least one gram
// away from both ends of a total mass so no child can be empty. The result
// is sorted and free of duplicates, so it may hold fewer than n cuts.
func CutPoints(total, n int, rng *rand.Rand) []int {
	if total < 2 {
		return nil
	}
	cuts := make([]int, n)
	for i := range cuts {
		c := int(math.Round(rng.Float64() * float64(total)))
		cuts[i] = max(1, min(total-1, c))
	}
	slices.Sort(cuts)
	return slices.Compact(cuts)
}

// SplitAt distributes the portions of both parents between two children at
// the given gram offsets into their combined mass. The total mass, and the
// mass of every food, is conserved exactly.
func SplitAt(p1, p2 *framework.Day, cuts []int) (*framework.Day, *framework.Day) {
	total := p1.Mass() + p2.Mass()
	cuts = slices.DeleteFunc(slices.Clone(cuts), func(c int) bool { return c <= 0 || c >= total })
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)
	if len(cuts) == 0 {
		return p1.Clone(), p2.Clone()
	}

	var children [2][]framework.Portion
	current, acc, next := 0, 0, 0
	for _, p := range append(p1.Portions(), p2.Portions()...) {
		remaining := p.Mass
		for next < len(cuts) && cuts[next] < acc+remaining {
			if left := cuts[next] - acc; left > 0 {
				children[current] = append(children[current], framework.NewPortion(p.Food, left))
				acc += left
				remaining -= left
			}
			current ^= 1
			next++
		}
		if remaining > 0 {
			children[current] = append(children[current], framework.NewPortion(p.Food, remaining))
			acc += remaining
		}
	}

	c1, err1 := framework.NewDay(p1.Evaluator(), children[0]...)
	c2, err2 := framework.NewDay(p1.Evaluator(), children[1]...)
	if err1 != nil || err2 != nil {
		return p1.Clone(), p2.Clone()
	}
	return c1, c2
}
