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
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/meal-planner/pkg/mealplan/benchmarks"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

func foodMasses(days ...*framework.Day) map[string]int {
	out := map[string]int{}
	for _, d := range days {
		for _, p := range d.Portions() {
			out[p.Food.Name] += p.Mass
		}
	}
	return out
}

func TestCrossoverConservesMass(t *testing.T) {
	problem := benchmarks.NewSampleDay()
	eval := problem.Evaluator(framework.FitnessSummed)
	sampler := framework.PortionSampler{Catalog: problem.Catalog(), MinMass: 1, MaxMass: 200}

	for seed := uint64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewPCG(seed, 99))
		p1 := sampler.Day(eval, 1+rng.IntN(6), rng)
		p2 := sampler.Day(eval, 1+rng.IntN(6), rng)
		points := 1 + rng.IntN(5)

		parentMass := p1.Mass() + p2.Mass()
		parentFoods := foodMasses(p1, p2)
		before1, before2 := p1.Portions(), p2.Portions()

		c1, c2 := Crossover(p1, p2, points, rng)

		require.Equal(t, parentMass, c1.Mass()+c2.Mass(), "seed %d, %d points", seed, points)
		require.Equal(t, parentFoods, foodMasses(c1, c2), "seed %d, %d points", seed, points)
		require.GreaterOrEqual(t, c1.Len(), 1)
		require.GreaterOrEqual(t, c2.Len(), 1)
		require.Equal(t, before1, p1.Portions(), "parents must not change")
		require.Equal(t, before2, p2.Portions(), "parents must not change")
	}
}

func TestSplitAtHalf(t *testing.T) {
	problem := benchmarks.NewSampleDay()
	catalog := problem.Catalog()
	eval := problem.Evaluator(framework.FitnessSummed)

	p1, err := framework.NewDay(eval,
		framework.NewPortion(catalog.Food(0), 100),
		framework.NewPortion(catalog.Food(1), 80),
	)
	require.NoError(t, err)
	p2, err := framework.NewDay(eval,
		framework.NewPortion(catalog.Food(2), 70),
		framework.NewPortion(catalog.Food(0), 50),
	)
	require.NoError(t, err)
	require.Equal(t, 300, p1.Mass()+p2.Mass())

	c1, c2 := SplitAt(p1, p2, []int{150})

	assert.Equal(t, 150, c1.Mass())
	assert.Equal(t, 150, c2.Mass())
	// The cut lands 50 g into the milk portion.
	assert.Equal(t, []framework.Portion{
		framework.NewPortion(catalog.Food(0), 100),
		framework.NewPortion(catalog.Food(1), 50),
	}, c1.Portions())
	assert.Equal(t, []framework.Portion{
		framework.NewPortion(catalog.Food(1), 30),
		framework.NewPortion(catalog.Food(2), 70),
		framework.NewPortion(catalog.Food(0), 50),
	}, c2.Portions())
}

func TestSplitAtManyCutsInsideOnePortion(t *testing.T) {
	problem := benchmarks.NewSampleDay()
	catalog := problem.Catalog()
	eval := problem.Evaluator(framework.FitnessSummed)

	p1, _ := framework.NewDay(eval, framework.NewPortion(catalog.Food(0), 100))
	p2, _ := framework.NewDay(eval, framework.NewPortion(catalog.Food(1), 10))

	// Out-of-range and repeated cuts are dropped. Child one receives
	// [0,10) and [20,30) of the oats, child two the rest and the milk.
	c1, c2 := SplitAt(p1, p2, []int{10, 20, 30, 30, 0, 500})

	assert.Equal(t, []framework.Portion{framework.NewPortion(catalog.Food(0), 20)}, c1.Portions())
	assert.Equal(t, []framework.Portion{
		framework.NewPortion(catalog.Food(0), 80),
		framework.NewPortion(catalog.Food(1), 10),
	}, c2.Portions())
}

func TestCutPoints(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 500; i++ {
		cuts := CutPoints(5, 4, rng)
		require.NotEmpty(t, cuts)
		require.LessOrEqual(t, len(cuts), 4)
		for j, c := range cuts {
			require.GreaterOrEqual(t, c, 1)
			require.LessOrEqual(t, c, 4)
			if j > 0 {
				require.Greater(t, c, cuts[j-1])
			}
		}
	}
	assert.Empty(t, CutPoints(1, 3, rng))
}
