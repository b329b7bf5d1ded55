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
	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

const (
	Name = "SampleDay"
)

// SampleDay is a small, fixed nutrition problem used to exercise the
// algorithms: thirteen everyday foods described by five nutrients, and
// targets of roughly an adult's daily intake.
type SampleDay struct {
	catalog *v1alpha1.FoodCatalog
}

func NewSampleDay() *SampleDay {
	return &SampleDay{catalog: sampleCatalog()}
}

func (p *SampleDay) Name() string {
	return Name
}

// CatalogSpec returns the catalog in its configuration form.
func (p *SampleDay) CatalogSpec() *v1alpha1.FoodCatalog {
	c := *p.catalog
	c.Foods = append([]v1alpha1.FoodSpec(nil), p.catalog.Foods...)
	return &c
}

// Catalog returns the catalog ready for the framework.
func (p *SampleDay) Catalog() *framework.Catalog {
	foods := make([]framework.Food, len(p.catalog.Foods))
	for i, f := range p.catalog.Foods {
		foods[i] = framework.Food{Name: f.Name, Group: f.Group, Nutrients: f.Amounts}
	}
	c, err := framework.NewCatalog(p.catalog.Nutrients, foods)
	if err != nil {
		panic(err)
	}
	return c
}

// ConstraintSpecs returns the daily targets, one per nutrient.
func (p *SampleDay) ConstraintSpecs() []v1alpha1.ConstraintSpec {
	return []v1alpha1.ConstraintSpec{
		{Nutrient: "energy", Type: v1alpha1.ConstraintConverge, Min: 0, Max: 4500, Goal: 2000, Tolerance: 2500, Weight: 1, Curve: v1alpha1.CurveExponential},
		{Nutrient: "protein", Type: v1alpha1.ConstraintConverge, Min: 0, Max: 250, Goal: 100, Tolerance: 150, Weight: 1, Curve: v1alpha1.CurveManhattan},
		{Nutrient: "fat", Type: v1alpha1.ConstraintMinimise, Min: 0, Max: 150, Weight: 0.5, Curve: v1alpha1.CurveExponential},
		{Nutrient: "carbohydrate", Type: v1alpha1.ConstraintConverge, Min: 0, Max: 650, Goal: 250, Tolerance: 400, Weight: 1, Curve: v1alpha1.CurveExponential},
		{Nutrient: "fibre", Type: v1alpha1.ConstraintRange, Min: 0, Max: 100, Weight: 1},
	}
}

// Evaluator builds an evaluator for the sample targets.
func (p *SampleDay) Evaluator(kind framework.FitnessKind) *framework.Evaluator {
	specs := p.ConstraintSpecs()
	constraints := make([]framework.Constraint, len(specs))
	for i, s := range specs {
		c, errs := framework.NewConstraint(field.NewPath("constraints").Index(i), framework.ConstraintParams{
			Kind:      framework.ConstraintKind(s.Type),
			Min:       s.Min,
			Max:       s.Max,
			Goal:      s.Goal,
			Tolerance: s.Tolerance,
			Weight:    s.Weight,
			Curve:     framework.Curve(s.Curve),
		})
		if len(errs) > 0 {
			panic(errs.ToAggregate())
		}
		constraints[i] = c
	}
	return framework.NewEvaluator(constraints, kind, framework.WithMassLimit(3000, 0.01))
}

// Args returns defaulted arguments for running the sample with algorithm.
func (p *SampleDay) Args(algorithm v1alpha1.AlgorithmKind, fitness v1alpha1.FitnessKind, seed uint64) *v1alpha1.MealPlanArgs {
	args := &v1alpha1.MealPlanArgs{
		Algorithm:   algorithm,
		Fitness:     fitness,
		Seed:        ptr.To(seed),
		Constraints: p.ConstraintSpecs(),
		MassLimit:   ptr.To(3000),
		MassPenalty: 0.01,
	}
	v1alpha1.SetDefaults_MealPlanArgs(args)
	return args
}

func sampleCatalog() *v1alpha1.FoodCatalog {
	return &v1alpha1.FoodCatalog{
		Nutrients: []string{"energy", "protein", "fat", "carbohydrate", "fibre"},
		Foods: []v1alpha1.FoodSpec{
			{Name: "oats", Group: "cereals", Amounts: []float64{389, 16.9, 6.9, 66.3, 10.6}},
			{Name: "whole milk", Group: "dairy", Amounts: []float64{61, 3.2, 3.3, 4.8, 0}},
			{Name: "egg", Group: "eggs", Amounts: []float64{143, 12.6, 9.5, 0.7, 0}},
			{Name: "chicken breast", Group: "meat", Amounts: []float64{165, 31, 3.6, 0, 0}},
			{Name: "brown rice", Group: "cereals", Amounts: []float64{112, 2.3, 0.8, 23.5, 1.8}},
			{Name: "broccoli", Group: "vegetables", Amounts: []float64{34, 2.8, 0.4, 6.6, 2.6}},
			{Name: "banana", Group: "fruit", Amounts: []float64{89, 1.1, 0.3, 22.8, 2.6}},
			{Name: "almonds", Group: "nuts", Amounts: []float64{579, 21.2, 49.9, 21.6, 12.5}},
			{Name: "salmon", Group: "fish", Amounts: []float64{208, 20.4, 13.4, 0, 0}},
			{Name: "lentils", Group: "legumes", Amounts: []float64{116, 9, 0.4, 20.1, 7.9}},
			{Name: "olive oil", Group: "fats", Amounts: []float64{884, 0, 100, 0, 0}},
			{Name: "apple", Group: "fruit", Amounts: []float64{52, 0.3, 0.2, 13.8, 2.4}},
			{Name: "greek yogurt", Group: "dairy", Amounts: []float64{59, 10, 0.4, 3.6, 0}},
		},
	}
}
