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
	"slices"
)

// ParetoHierarchy partitions a set of fitnesses into mutually non-dominated
// sets ordered by rank; rank 0 is dominated by nothing in the hierarchy.
// Every member of rank r > 0 is dominated by some member of rank r-1, so a
// member that dominates another always has the lower rank. The Day behind a
// member must not change while it is in the hierarchy.
type ParetoHierarchy struct {
	sets [][]*Fitness
}

func NewParetoHierarchy() *ParetoHierarchy {
	return &ParetoHierarchy{}
}

// Insert adds f and returns its rank. Members displaced because f dominates
// them are re-inserted below f, never dropped. Inserting a member again
// re-sorts it.
func (h *ParetoHierarchy) Insert(f *Fitness) int {
	h.Remove(f)
	return h.insertFrom(f, 0)
}

func (h *ParetoHierarchy) insertFrom(f *Fitness, start int) int {
	p := f.Objectives()
	for r := start; r < len(h.sets); r++ {
		set := h.sets[r]
		switch RelationTo(p, objectives(set)) {
		case DominatedBy:
			continue
		case DominatesAll:
			h.sets[r] = []*Fitness{f}
			for _, displaced := range set {
				h.insertFrom(displaced, r+1)
			}
			return r
		default:
			kept := make([]*Fitness, 0, len(set)+1)
			var evicted []*Fitness
			for _, m := range set {
				if Dominates(p, m.Objectives()) {
					evicted = append(evicted, m)
				} else {
					kept = append(kept, m)
				}
			}
			h.sets[r] = append(kept, f)
			for _, m := range evicted {
				h.insertFrom(m, r+1)
			}
			return r
		}
	}
	h.sets = append(h.sets, []*Fitness{f})
	return len(h.sets) - 1
}

// Remove deletes f and prunes its set when it becomes empty. Members that
// were only dominated by f move up one rank.
func (h *ParetoHierarchy) Remove(f *Fitness) bool {
	for r, set := range h.sets {
		i := slices.Index(set, f)
		if i < 0 {
			continue
		}
		set = slices.Delete(set, i, i+1)
		if len(set) == 0 {
			h.sets = slices.Delete(h.sets, r, r+1)
			h.promote(r)
		} else {
			h.sets[r] = set
			h.promote(r + 1)
		}
		return true
	}
	return false
}

// promote moves every member of rank k >= from that is no longer dominated
// by anything in rank k-1 up into k-1, so that each member below rank 0
// keeps a dominator exactly one rank above it.
func (h *ParetoHierarchy) promote(from int) {
	for k := max(from, 1); k < len(h.sets); {
		upper := objectives(h.sets[k-1])
		var stay []*Fitness
		moved := false
		for _, m := range h.sets[k] {
			if RelationTo(m.Objectives(), upper) == DominatedBy {
				stay = append(stay, m)
				continue
			}
			h.sets[k-1] = append(h.sets[k-1], m)
			moved = true
		}
		if !moved {
			return
		}
		if len(stay) == 0 {
			h.sets = slices.Delete(h.sets, k, k+1)
			continue
		}
		h.sets[k] = stay
		k++
	}
}

// Rank returns the index of the set holding f, or -1 when f is absent.
func (h *ParetoHierarchy) Rank(f *Fitness) int {
	for r, set := range h.sets {
		if slices.Contains(set, f) {
			return r
		}
	}
	return -1
}

func (h *ParetoHierarchy) Contains(f *Fitness) bool {
	return h.Rank(f) >= 0
}

// Ranks returns the number of non-empty sets.
func (h *ParetoHierarchy) Ranks() int {
	return len(h.sets)
}

// Len returns the number of members across all sets.
func (h *ParetoHierarchy) Len() int {
	n := 0
	for _, set := range h.sets {
		n += len(set)
	}
	return n
}

// Set returns a copy of the members of rank r.
func (h *ParetoHierarchy) Set(r int) []*Fitness {
	return slices.Clone(h.sets[r])
}

// Members returns every member, best rank first.
func (h *ParetoHierarchy) Members() []*Fitness {
	out := make([]*Fitness, 0, h.Len())
	for _, set := range h.sets {
		out = append(out, set...)
	}
	return out
}

// Clear removes every member.
func (h *ParetoHierarchy) Clear() {
	h.sets = nil
}

func objectives(set []*Fitness) []ObjectiveSpacePoint {
	out := make([]ObjectiveSpacePoint, len(set))
	for i, f := range set {
		out[i] = f.Objectives()
	}
	return out
}
