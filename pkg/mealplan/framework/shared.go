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

import "slices"

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// For a Day it holds one penalty per nutrient, plus the mass penalty when a
// mass limit is configured.
type ObjectiveSpacePoint []float64

// Dominates checks if point a dominates point b: a is no worse on every
// dimension and strictly better on at least one. Penalties are minimised.
func Dominates(a, b ObjectiveSpacePoint) bool {
	better := false
	for i := 0; i < len(a); i++ {
		if a[i] > b[i] {
			return false
		}
		if a[i] < b[i] {
			better = true
		}
	}
	return better
}

// Relation is the outcome of comparing one fitness against a whole MND set.
type Relation int

const (
	// DominatesAll means the fitness dominates every member of the set.
	DominatesAll Relation = -1
	// Coexists means no member dominates the fitness and it does not
	// dominate all of them.
	Coexists Relation = 0
	// DominatedBy means at least one member dominates the fitness.
	DominatedBy Relation = 1
)

// RelationTo returns the worst pairwise relation between p and the members of set.
func RelationTo(p ObjectiveSpacePoint, set []ObjectiveSpacePoint) Relation {
	all := len(set) > 0
	for _, q := range set {
		if Dominates(q, p) {
			return DominatedBy
		}
		if !Dominates(p, q) {
			all = false
		}
	}
	if all {
		return DominatesAll
	}
	return Coexists
}

// NetDominance returns how many points of others p dominates minus how
// many dominate p. p itself may be part of others.
func NetDominance(p ObjectiveSpacePoint, others []ObjectiveSpacePoint) int {
	n := 0
	for _, q := range others {
		if Dominates(p, q) {
			n++
		} else if Dominates(q, p) {
			n--
		}
	}
	return n
}

// MergeFront adds p to front, a set of mutually non-dominated points, and
// drops the members p dominates. front is returned unchanged when one of its
// members dominates or equals p.
func MergeFront(front []ObjectiveSpacePoint, p ObjectiveSpacePoint) []ObjectiveSpacePoint {
	for _, q := range front {
		if Dominates(q, p) || slices.Equal(q, p) {
			return front
		}
	}
	front = slices.DeleteFunc(front, func(q ObjectiveSpacePoint) bool {
		return Dominates(p, q)
	})
	return append(front, p)
}
