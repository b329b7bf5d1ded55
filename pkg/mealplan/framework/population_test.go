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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

func TestPopulationCaches(t *testing.T) {
	c := planeCatalog(t)
	eval := planeEvaluator(t, framework.FitnessSummed)

	good := planeDay(t, eval, c, 10, 10)
	mid := planeDay(t, eval, c, 20, 20)
	bad := planeDay(t, eval, c, 30, 30)
	p := framework.NewPopulation(bad, good, mid)

	assert.Equal(t, []*framework.Day{good, mid, bad}, p.GetSortedPopulation(false))
	assert.Equal(t, []*framework.Day{bad, mid, good}, p.GetSortedPopulation(true))
	assert.Same(t, good, p.Best())

	avg := p.GetAverageFitness()
	want := (good.Fitness().Value() + mid.Fitness().Value() + bad.Fitness().Value()) / 3
	assert.InDelta(t, want, avg, 1e-12)

	// A member edited in place keeps its cached value until invalidated.
	cached := p.GetFitness(good)
	good.SetMass(0, 100)
	assert.Equal(t, cached, p.GetFitness(good))
	p.Invalidate(good)
	assert.Greater(t, p.GetFitness(good), cached)
	assert.Equal(t, []*framework.Day{mid, bad, good}, p.GetSortedPopulation(false))

	require.True(t, p.Remove(bad))
	assert.False(t, p.Remove(bad))
	assert.Equal(t, 2, p.Len())
	assert.False(t, p.Contains(bad))
	assert.InDelta(t, (p.GetFitness(mid)+p.GetFitness(good))/2, p.GetAverageFitness(), 1e-12)
}

func TestPopulationAverageWithInfeasibleDay(t *testing.T) {
	c, err := framework.NewCatalog([]string{"x"}, []framework.Food{{Name: "f", Nutrients: []float64{100}}})
	require.NoError(t, err)
	rc, errs := framework.NewConstraint(nil, framework.ConstraintParams{Kind: framework.ConstraintRange, Min: 0, Max: 50, Weight: 1})
	require.Empty(t, errs)
	eval := framework.NewEvaluator([]framework.Constraint{rc}, framework.FitnessSummed)

	ok, _ := framework.NewDay(eval, framework.NewPortion(c.Food(0), 10))
	over, _ := framework.NewDay(eval, framework.NewPortion(c.Food(0), 60))
	p := framework.NewPopulation(over, ok)

	assert.True(t, math.IsInf(p.GetAverageFitness(), 1))
	assert.Same(t, ok, p.Best())
	assert.Equal(t, 0.0, framework.NewPopulation().GetAverageFitness())
}

func TestComparers(t *testing.T) {
	c := planeCatalog(t)

	summed := framework.NewComparer(planeEvaluator(t, framework.FitnessSummed), nil)
	se := planeEvaluator(t, framework.FitnessSummed)
	assert.Negative(t, summed.Compare(planeDay(t, se, c, 1, 1).Fitness(), planeDay(t, se, c, 2, 2).Fitness()))
	assert.Zero(t, summed.Compare(planeDay(t, se, c, 1, 2).Fitness(), planeDay(t, se, c, 2, 1).Fitness()))

	pe := planeEvaluator(t, framework.FitnessPareto)
	h := framework.NewParetoHierarchy()
	pareto := framework.NewComparer(pe, h)

	a := planeDay(t, pe, c, 10, 10).Fitness()
	b := planeDay(t, pe, c, 20, 20).Fitness()
	x := planeDay(t, pe, c, 1, 50).Fitness()

	// Transient comparisons leave the hierarchy as they found it.
	assert.Negative(t, pareto.Compare(a, b))
	assert.Positive(t, pareto.Compare(b, a))
	assert.Zero(t, pareto.Compare(a, x))
	assert.Equal(t, 0, h.Len())

	// Members are compared by their rank.
	h.Insert(x)
	h.Insert(b)
	assert.Zero(t, pareto.Compare(x, b))
	assert.Negative(t, pareto.Compare(a, b))
	assert.Equal(t, 2, h.Len())
}
