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
	"testing"

	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// planeCatalog has two foods, each carrying exactly one of two nutrients,
// so a Day's aggregate is its pair of masses divided by 100.
func planeCatalog(t *testing.T) *framework.Catalog {
	t.Helper()
	c, err := framework.NewCatalog([]string{"x", "y"}, []framework.Food{
		{Name: "fx", Nutrients: []float64{100, 0}},
		{Name: "fy", Nutrients: []float64{0, 100}},
	})
	require.NoError(t, err)
	return c
}

// planeEvaluator penalises both nutrients linearly near zero, so dominance
// between Days follows dominance between their mass pairs.
func planeEvaluator(t *testing.T, kind framework.FitnessKind) *framework.Evaluator {
	t.Helper()
	var constraints []framework.Constraint
	for i := 0; i < 2; i++ {
		c, errs := framework.NewConstraint(field.NewPath("constraints").Index(i), framework.ConstraintParams{
			Kind:   framework.ConstraintMinimise,
			Max:    1e6,
			Weight: 1,
			Curve:  framework.CurveManhattan,
		})
		require.Empty(t, errs)
		constraints = append(constraints, c)
	}
	return framework.NewEvaluator(constraints, kind)
}

// planeDay builds a Day holding mx grams of fx and my grams of fy.
func planeDay(t *testing.T, eval *framework.Evaluator, c *framework.Catalog, mx, my int) *framework.Day {
	t.Helper()
	d, err := framework.NewDay(eval,
		framework.NewPortion(c.Food(0), mx),
		framework.NewPortion(c.Food(1), my),
	)
	require.NoError(t, err)
	return d
}
