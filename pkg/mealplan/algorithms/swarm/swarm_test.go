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

package swarm

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2/ktesting"

	"sigs.k8s.io/meal-planner/pkg/mealplan/benchmarks"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

func testConfig(seed uint64) Config {
	return Config{
		Particles:       15,
		InitialVelocity: 20,
		InitialPortions: 4,
		Sampler:         framework.PortionSampler{Catalog: benchmarks.NewSampleDay().Catalog(), MinMass: 10, MaxMass: 250},
		Seed:            seed,
	}
}

func TestClamp(t *testing.T) {
	v := []float64{-1, 0, 2.5, -1e-12}
	Clamp(v)
	if diff := cmp.Diff([]float64{0, 0, 2.5, 0}, v); diff != "" {
		t.Errorf("Clamp() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateVelocity(t *testing.T) {
	velocity := []float64{1, 1}
	UpdateVelocity(velocity, []float64{2, 0}, []float64{3, 1}, []float64{4, 4})
	assert.Equal(t, []float64{4, 6}, velocity)
}

func TestMaterialize(t *testing.T) {
	problem := benchmarks.NewSampleDay()
	catalog := problem.Catalog()
	eval := problem.Evaluator(framework.FitnessSummed)

	position := make([]float64, catalog.Len())
	assert.Nil(t, Materialize(eval, catalog, position))

	position[1] = 10.2
	position[3] = 0.1
	d := Materialize(eval, catalog, position)
	require.NotNil(t, d)
	assert.Equal(t, []framework.Portion{
		framework.NewPortion(catalog.Food(1), 11),
		framework.NewPortion(catalog.Food(3), 1),
	}, d.Portions())
}

func TestSwarmWithSampleDay(t *testing.T) {
	for _, kind := range []framework.FitnessKind{framework.FitnessSummed, framework.FitnessPareto} {
		t.Run(kind.String(), func(t *testing.T) {
			logger, _ := ktesting.NewTestContext(t)
			s := New(logger, benchmarks.NewSampleDay().Evaluator(kind), testConfig(21))
			require.NoError(t, s.Init())

			prevBest := make([]float64, len(s.Particles()))
			for i, p := range s.Particles() {
				prevBest[i] = p.Best.Fitness().Value()
			}
			prevGlobal := s.BestDay().Fitness().Value()

			for it := 0; it < 30; it++ {
				s.RunIteration()
				require.Len(t, s.Population(), 15)

				for i, p := range s.Particles() {
					for _, x := range p.Position {
						require.GreaterOrEqual(t, x, 0.0)
					}
					require.GreaterOrEqual(t, p.Day().Len(), 1)
					if kind == framework.FitnessSummed {
						require.LessOrEqual(t, p.Best.Fitness().Value(), prevBest[i])
						require.LessOrEqual(t, s.BestDay().Fitness().Value(), p.Best.Fitness().Value())
					}
					prevBest[i] = p.Best.Fitness().Value()
				}
				if kind == framework.FitnessSummed {
					require.LessOrEqual(t, s.BestDay().Fitness().Value(), prevGlobal)
				} else {
					pop := s.Population()
					require.Equal(t, len(pop), s.hierarchy.Len())
					for k := 1; k < len(pop); k++ {
						require.LessOrEqual(t, s.Rank(pop[k-1]), s.Rank(pop[k]))
					}
				}
				prevGlobal = s.BestDay().Fitness().Value()
			}
			assert.Equal(t, 30, s.Iteration())
		})
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	tests := map[string]func(*Config){
		"no particles":      func(c *Config) { c.Particles = 0 },
		"negative velocity": func(c *Config) { c.InitialVelocity = -1 },
		"no catalog":        func(c *Config) { c.Sampler.Catalog = nil },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			config := testConfig(1)
			mutate(&config)
			s := New(logr.Discard(), benchmarks.NewSampleDay().Evaluator(framework.FitnessSummed), config)
			assert.Error(t, s.Init())
			assert.Nil(t, s.Population())
			assert.Nil(t, s.BestDay())
		})
	}
}
