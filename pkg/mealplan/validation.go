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

package mealplan

import (
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

var (
	supportedAlgorithms = []string{
		string(v1alpha1.AlgorithmGenetic),
		string(v1alpha1.AlgorithmAntColony),
		string(v1alpha1.AlgorithmParticleSwarm),
	}
	supportedFitness = []string{
		string(v1alpha1.FitnessSummed),
		string(v1alpha1.FitnessPareto),
	}
)

// ValidateMealPlanArgs checks defaulted arguments against the catalog they
// will run on. Algorithm-specific blocks are validated when the algorithm
// is built.
func ValidateMealPlanArgs(args *v1alpha1.MealPlanArgs, catalog *framework.Catalog) field.ErrorList {
	var errs field.ErrorList

	switch args.Algorithm {
	case v1alpha1.AlgorithmGenetic, v1alpha1.AlgorithmAntColony, v1alpha1.AlgorithmParticleSwarm:
	default:
		errs = append(errs, field.NotSupported(field.NewPath("algorithm"), args.Algorithm, supportedAlgorithms))
	}
	switch args.Fitness {
	case v1alpha1.FitnessSummed, v1alpha1.FitnessPareto:
	default:
		errs = append(errs, field.NotSupported(field.NewPath("fitness"), args.Fitness, supportedFitness))
	}

	if args.PopulationSize == nil {
		errs = append(errs, field.Required(field.NewPath("populationSize"), ""))
	} else if *args.PopulationSize < 1 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), *args.PopulationSize, "must be at least 1"))
	}

	constraintsPath := field.NewPath("constraints")
	if len(args.Constraints) != catalog.NutrientCount() {
		errs = append(errs, field.Invalid(constraintsPath, len(args.Constraints),
			"must hold one constraint per catalog nutrient"))
	}
	names := catalog.NutrientNames()
	for i, c := range args.Constraints {
		if i < len(names) && c.Nutrient != "" && c.Nutrient != names[i] {
			errs = append(errs, field.Invalid(constraintsPath.Index(i).Child("nutrient"), c.Nutrient,
				"must match catalog nutrient "+names[i]))
		}
		_, cerrs := framework.NewConstraint(constraintsPath.Index(i), constraintParams(c))
		errs = append(errs, cerrs...)
	}

	if args.MassLimit != nil && *args.MassLimit < 0 {
		errs = append(errs, field.Invalid(field.NewPath("massLimit"), *args.MassLimit, "must be non-negative"))
	}
	if args.MassPenalty < 0 {
		errs = append(errs, field.Invalid(field.NewPath("massPenalty"), args.MassPenalty, "must be non-negative"))
	}

	errs = append(errs, validatePortionSampling(args.InitialPortions, field.NewPath("initialPortions"))...)
	return errs
}

func validatePortionSampling(args *v1alpha1.PortionSamplingArgs, path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if args == nil || args.Count == nil || args.MinMass == nil || args.MaxMass == nil {
		return append(errs, field.Required(path, "count, minMass and maxMass must be set"))
	}
	if *args.Count < 1 {
		errs = append(errs, field.Invalid(path.Child("count"), *args.Count, "must be at least 1"))
	}
	if *args.MinMass < 1 {
		errs = append(errs, field.Invalid(path.Child("minMass"), *args.MinMass, "must be at least 1"))
	}
	if *args.MaxMass < *args.MinMass {
		errs = append(errs, field.Invalid(path.Child("maxMass"), *args.MaxMass, "must not be less than minMass"))
	}
	return errs
}

func constraintParams(c v1alpha1.ConstraintSpec) framework.ConstraintParams {
	return framework.ConstraintParams{
		Kind:      framework.ConstraintKind(c.Type),
		Min:       c.Min,
		Max:       c.Max,
		Goal:      c.Goal,
		Tolerance: c.Tolerance,
		Weight:    c.Weight,
		Curve:     framework.Curve(c.Curve),
	}
}
