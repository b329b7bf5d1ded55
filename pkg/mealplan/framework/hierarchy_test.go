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

package framework_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

func TestDominates(t *testing.T) {
	a := framework.ObjectiveSpacePoint{1, 2}
	b := framework.ObjectiveSpacePoint{1, 3}
	c := framework.ObjectiveSpacePoint{0, 4}

	assert.True(t, framework.Dominates(a, b))
	assert.False(t, framework.Dominates(b, a))
	assert.False(t, framework.Dominates(a, a), "equal points are mutually non-dominated")
	assert.False(t, framework.Dominates(a, c))
	assert.False(t, framework.Dominates(c, a))

	assert.Equal(t, framework.DominatesAll, framework.RelationTo(a, []framework.ObjectiveSpacePoint{b, {2, 2}}))
	assert.Equal(t, framework.Coexists, framework.RelationTo(a, []framework.ObjectiveSpacePoint{b, c}))
	assert.Equal(t, framework.DominatedBy, framework.RelationTo(b, []framework.ObjectiveSpacePoint{c, a}))
	assert.Equal(t, 1, framework.NetDominance(a, []framework.ObjectiveSpacePoint{a, b, c}))
}

func TestMergeFront(t *testing.T) {
	var front []framework.ObjectiveSpacePoint
	front = framework.MergeFront(front, framework.ObjectiveSpacePoint{2, 2})
	front = framework.MergeFront(front, framework.ObjectiveSpacePoint{0, 5})
	assert.Equal(t, []framework.ObjectiveSpacePoint{{2, 2}, {0, 5}}, front)

	// Dominated and duplicate points are ignored.
	front = framework.MergeFront(front, framework.ObjectiveSpacePoint{3, 3})
	front = framework.MergeFront(front, framework.ObjectiveSpacePoint{2, 2})
	assert.Len(t, front, 2)

	// A dominating point evicts what it dominates.
	front = framework.MergeFront(front, framework.ObjectiveSpacePoint{1, 1})
	assert.Equal(t, []framework.ObjectiveSpacePoint{{0, 5}, {1, 1}}, front)

	rng := rand.New(rand.NewPCG(4, 4))
	front = nil
	for i := 0; i < 300; i++ {
		front = framework.MergeFront(front, framework.ObjectiveSpacePoint{rng.Float64(), rng.Float64(), rng.Float64()})
	}
	for _, p := range front {
		for _, q := range front {
			require.False(t, framework.Dominates(p, q), "%v dominates %v", p, q)
		}
	}
}

func TestHierarchyChainIsOrderIndependent(t *testing.T) {
	c := planeCatalog(t)
	eval := planeEvaluator(t, framework.FitnessPareto)

	orders := map[string][]int{
		"forward": {0, 1, 2},
		"reverse": {2, 1, 0},
		"middle":  {1, 2, 0},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			days := []*framework.Day{
				planeDay(t, eval, c, 10, 10), // A
				planeDay(t, eval, c, 20, 20), // B
				planeDay(t, eval, c, 30, 30), // C
			}
			h := framework.NewParetoHierarchy()
			for _, i := range order {
				h.Insert(days[i].Fitness())
			}

			require.Equal(t, 3, h.Ranks())
			for i, d := range days {
				assert.Equal(t, i, h.Rank(d.Fitness()))
				assert.Equal(t, []*framework.Fitness{d.Fitness()}, h.Set(i))
			}
		})
	}
}

// Inserting a fitness that dominates a whole set must push that set down,
// not overwrite it.
func TestHierarchyKeepsDisplacedMembers(t *testing.T) {
	c := planeCatalog(t)
	eval := planeEvaluator(t, framework.FitnessPareto)

	b1 := planeDay(t, eval, c, 20, 40).Fitness()
	b2 := planeDay(t, eval, c, 40, 20).Fitness()
	below := planeDay(t, eval, c, 50, 50).Fitness()
	a := planeDay(t, eval, c, 10, 10).Fitness()

	h := framework.NewParetoHierarchy()
	h.Insert(b1)
	h.Insert(b2)
	h.Insert(below)
	require.Equal(t, 2, h.Ranks())

	assert.Equal(t, 0, h.Insert(a))
	assert.Equal(t, 4, h.Len())
	assert.Equal(t, 3, h.Ranks())
	assert.Equal(t, 1, h.Rank(b1))
	assert.Equal(t, 1, h.Rank(b2))
	assert.Equal(t, 2, h.Rank(below))
}

func TestHierarchyEvictsDominatedMembersOfASharedSet(t *testing.T) {
	c := planeCatalog(t)
	eval := planeEvaluator(t, framework.FitnessPareto)

	x := planeDay(t, eval, c, 5, 90).Fitness()
	b := planeDay(t, eval, c, 40, 40).Fitness()
	a := planeDay(t, eval, c, 30, 30).Fitness()

	h := framework.NewParetoHierarchy()
	h.Insert(x)
	h.Insert(b)
	require.Equal(t, 0, h.Rank(b))

	assert.Equal(t, 0, h.Insert(a))
	assert.Equal(t, 0, h.Rank(x))
	assert.Equal(t, 1, h.Rank(b))
}

func TestHierarchyRemove(t *testing.T) {
	c := planeCatalog(t)
	eval := planeEvaluator(t, framework.FitnessPareto)

	a := planeDay(t, eval, c, 10, 10).Fitness()
	b := planeDay(t, eval, c, 20, 20).Fitness()
	other := planeDay(t, eval, c, 5, 90).Fitness()

	h := framework.NewParetoHierarchy()
	h.Insert(a)
	h.Insert(b)
	h.Insert(other)

	assert.True(t, h.Remove(a))
	assert.False(t, h.Remove(a))
	assert.Equal(t, -1, h.Rank(a))
	// b was only dominated by a and moves up next to other.
	assert.Equal(t, 0, h.Rank(b))
	assert.Equal(t, 1, h.Ranks())

	h.Remove(b)
	h.Remove(other)
	assert.Equal(t, 0, h.Ranks())
	assert.Equal(t, 0, h.Len())
}

// Random inserts and removals keep every set mutually non-dominated and
// every dominating member strictly above the members it dominates.
func TestHierarchyInvariants(t *testing.T) {
	c := planeCatalog(t)
	eval := planeEvaluator(t, framework.FitnessPareto)
	rng := rand.New(rand.NewPCG(3, 11))
	h := framework.NewParetoHierarchy()

	var members []*framework.Fitness
	for step := 0; step < 400; step++ {
		if len(members) > 0 && rng.IntN(3) == 0 {
			i := rng.IntN(len(members))
			require.True(t, h.Remove(members[i]))
			members = append(members[:i], members[i+1:]...)
		} else {
			f := planeDay(t, eval, c, 1+rng.IntN(60), 1+rng.IntN(60)).Fitness()
			h.Insert(f)
			members = append(members, f)
		}

		require.Equal(t, len(members), h.Len())
		for r := 0; r < h.Ranks(); r++ {
			set := h.Set(r)
			require.NotEmpty(t, set)
			for _, p := range set {
				for _, q := range set {
					require.False(t, p.Dominates(q), "rank %d is not mutually non-dominated", r)
				}
			}
		}
		for _, p := range members {
			for _, q := range members {
				if p.Dominates(q) {
					require.Less(t, h.Rank(p), h.Rank(q), "step %d", step)
				}
			}
		}
	}
}
