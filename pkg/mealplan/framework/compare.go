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
	"cmp"
)

// Comparer orders fitnesses of one run. Compare returns a negative number
// when a is better than b, a positive number when b is better, and zero
// when neither is.
type Comparer interface {
	Compare(a, b *Fitness) int
}

// NewComparer returns the comparer matching the evaluator's fitness kind.
// Pareto comparisons rank against h; a nil h ranks against an empty hierarchy.
func NewComparer(eval *Evaluator, h *ParetoHierarchy) Comparer {
	if eval.Kind() == FitnessPareto {
		if h == nil {
			h = NewParetoHierarchy()
		}
		return &ParetoComparer{Hierarchy: h}
	}
	return SummedComparer{}
}

// SummedComparer orders by Fitness.Value.
type SummedComparer struct{}

func (SummedComparer) Compare(a, b *Fitness) int {
	return cmp.Compare(a.Value(), b.Value())
}

// ParetoComparer orders by rank in Hierarchy and breaks equal ranks by
// dominance. Fitnesses absent from the hierarchy are inserted for the
// comparison and removed afterwards.
type ParetoComparer struct {
	Hierarchy *ParetoHierarchy
}

func (c *ParetoComparer) Compare(a, b *Fitness) int {
	if a == b {
		return 0
	}
	var transient []*Fitness
	for _, f := range []*Fitness{a, b} {
		if !c.Hierarchy.Contains(f) {
			c.Hierarchy.Insert(f)
			transient = append(transient, f)
		}
	}
	ra, rb := c.Hierarchy.Rank(a), c.Hierarchy.Rank(b)
	for _, f := range transient {
		c.Hierarchy.Remove(f)
	}

	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	pa, pb := a.Objectives(), b.Objectives()
	switch {
	case Dominates(pa, pb):
		return -1
	case Dominates(pb, pa):
		return 1
	}
	return 0
}
