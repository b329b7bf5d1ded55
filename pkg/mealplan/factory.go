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
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/algorithms/antcolony"
	"sigs.k8s.io/meal-planner/pkg/mealplan/algorithms/genetic"
	"sigs.k8s.io/meal-planner/pkg/mealplan/algorithms/swarm"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// newEvaluator builds the evaluator of a validated run.
func newEvaluator(args *v1alpha1.MealPlanArgs) (*framework.Evaluator, error) {
	constraints := make([]framework.Constraint, len(args.Constraints))
	for i, c := range args.Constraints {
		constraint, errs := framework.NewConstraint(field.NewPath("constraints").Index(i), constraintParams(c))
		if len(errs) > 0 {
			return nil, errs.ToAggregate()
		}
		constraints[i] = constraint
	}

	kind := framework.FitnessSummed
	if args.Fitness == v1alpha1.FitnessPareto {
		kind = framework.FitnessPareto
	}
	var opts []framework.EvaluatorOption
	if args.MassLimit != nil {
		opts = append(opts, framework.WithMassLimit(*args.MassLimit, args.MassPenalty))
	}
	return framework.NewEvaluator(constraints, kind, opts...), nil
}

// newAlgorithm builds the algorithm named by args. It validates the
// algorithm block and returns the errors found there.
func newAlgorithm(logger logr.Logger, args *v1alpha1.MealPlanArgs, eval *framework.Evaluator, catalog *framework.Catalog, seed uint64) (framework.Algorithm, field.ErrorList) {
	sampler := framework.PortionSampler{
		Catalog: catalog,
		MinMass: *args.InitialPortions.MinMass,
		MaxMass: *args.InitialPortions.MaxMass,
	}

	switch args.Algorithm {
	case v1alpha1.AlgorithmGenetic:
		path := field.NewPath("genetic")
		g := args.Genetic
		if g == nil {
			return nil, field.ErrorList{field.Required(path, "")}
		}
		config := genetic.Config{
			PopulationSize:        *args.PopulationSize,
			Selection:             genetic.Selection(g.Selection),
			TournamentSize:        *g.TournamentSize,
			SelectionPressure:     *g.SelectionPressure,
			CrossoverPoints:       *g.CrossoverPoints,
			EliminationCount:      *g.EliminationCount,
			ChanceToMutatePortion: *g.ChanceToMutatePortion,
			MutationMassMin:       *g.MutationMassMin,
			MutationMassMax:       *g.MutationMassMax,
			AddPortionChance:      *g.AddPortionChance,
			RemovePortionChance:   *g.RemovePortionChance,
			InitialPortions:       *args.InitialPortions.Count,
			Sampler:               sampler,
			Seed:                  seed,
		}
		if errs := config.Validate(path); len(errs) > 0 {
			return nil, errs
		}
		return genetic.New(logger, eval, config), nil

	case v1alpha1.AlgorithmAntColony:
		path := field.NewPath("antColony")
		a := args.AntColony
		if a == nil {
			return nil, field.ErrorList{field.Required(path, "")}
		}
		config := antcolony.Config{
			Ants:                *args.PopulationSize,
			ColonyPortions:      *a.ColonyPortions,
			Alpha:               *a.Alpha,
			Beta:                *a.Beta,
			EvaporationRate:     *a.EvaporationRate,
			PheromoneImportance: *a.PheromoneImportance,
			Elitism:             *a.Elitism,
			StagnationIters:     *a.StagnationIters,
			Sampler:             sampler,
			Seed:                seed,
		}
		if errs := config.Validate(path); len(errs) > 0 {
			return nil, errs
		}
		return antcolony.New(logger, eval, config), nil

	case v1alpha1.AlgorithmParticleSwarm:
		path := field.NewPath("particleSwarm")
		s := args.ParticleSwarm
		if s == nil {
			return nil, field.ErrorList{field.Required(path, "")}
		}
		config := swarm.Config{
			Particles:       *args.PopulationSize,
			InitialVelocity: *s.InitialVelocity,
			InitialPortions: *args.InitialPortions.Count,
			Sampler:         sampler,
			Seed:            seed,
		}
		if errs := config.Validate(path); len(errs) > 0 {
			return nil, errs
		}
		return swarm.New(logger, eval, config), nil
	}

	return nil, field.ErrorList{field.NotSupported(field.NewPath("algorithm"), args.Algorithm, supportedAlgorithms)}
}

// algorithmName is used in log lines before the algorithm exists.
func algorithmName(kind v1alpha1.AlgorithmKind) string {
	switch kind {
	case v1alpha1.AlgorithmGenetic:
		return genetic.Name
	case v1alpha1.AlgorithmAntColony:
		return antcolony.Name
	case v1alpha1.AlgorithmParticleSwarm:
		return swarm.Name
	}
	return fmt.Sprintf("unknown(%s)", kind)
}
