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

package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

func TestSampleDay(t *testing.T) {
	p := NewSampleDay()
	assert.Equal(t, Name, p.Name())

	catalog := p.Catalog()
	require.Equal(t, 13, catalog.Len())
	require.Len(t, p.ConstraintSpecs(), catalog.NutrientCount())
	for i, c := range p.ConstraintSpecs() {
		assert.Equal(t, catalog.NutrientNames()[i], c.Nutrient)
	}

	// A balanced day scores finitely; a litre of olive oil does not.
	eval := p.Evaluator(framework.FitnessSummed)
	balanced, err := framework.NewDay(eval,
		framework.NewPortion(catalog.Food(0), 80),
		framework.NewPortion(catalog.Food(3), 250),
		framework.NewPortion(catalog.Food(4), 300),
		framework.NewPortion(catalog.Food(5), 200),
		framework.NewPortion(catalog.Food(6), 120),
	)
	require.NoError(t, err)
	assert.True(t, balanced.Fitness().Feasible())

	oil, err := framework.NewDay(eval, framework.NewPortion(catalog.Food(10), 1000))
	require.NoError(t, err)
	assert.False(t, oil.Fitness().Feasible())
}

func TestSampleDayCatalogSpecIsACopy(t *testing.T) {
	p := NewSampleDay()
	spec := p.CatalogSpec()
	spec.Foods[0].Name = "changed"
	assert.Equal(t, "oats", p.CatalogSpec().Foods[0].Name)
	assert.Equal(t, "oats", p.Catalog().Food(0).Name)
}

func TestSampleDayArgs(t *testing.T) {
	args := NewSampleDay().Args(v1alpha1.AlgorithmAntColony, v1alpha1.FitnessPareto, 9)
	assert.Equal(t, uint64(9), *args.Seed)
	assert.Equal(t, "MealPlanArgs", args.Kind)
	require.NotNil(t, args.AntColony)
	assert.Nil(t, args.Genetic)
	assert.Equal(t, 3000, *args.MassLimit)
}
