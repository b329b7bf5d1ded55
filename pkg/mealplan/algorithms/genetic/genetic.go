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
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

const (
	Name = "GeneticAlgorithm"
)

// Selection is the scheme used to pick parents and eliminated individuals.
type Selection string

const (
	SelectionTournament Selection = "Tournament"
	SelectionRank       Selection = "Rank"
)

// Config represents the genetic algorithm configuration
type Config struct {
	PopulationSize int
	Selection      Selection

	// TournamentSize is the number of distinct candidates per tournament.
	TournamentSize int
	// SelectionPressure is the rank selection pressure, in [1, 2].
	SelectionPressure float64

	CrossoverPoints int

	// EliminationCount is the number of individuals replaced by children
	// each generation.
	EliminationCount int

	ChanceToMutatePortion float64
	MutationMassMin       int
	MutationMassMax       int
	AddPortionChance      float64
	RemovePortionChance   float64

	// InitialPortions is the number of portions drawn for a random Day.
	InitialPortions int
	Sampler         framework.PortionSampler

	Seed uint64
}

// Validate checks the configuration; path is the location of the genetic
// block in the run arguments.
func (c *Config) Validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if c.PopulationSize < 1 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), c.PopulationSize, "must be at least 1"))
	}
	switch c.Selection {
	case SelectionTournament:
		if c.TournamentSize < 1 {
			errs = append(errs, field.Invalid(path.Child("tournamentSize"), c.TournamentSize, "must be at least 1"))
		}
	case SelectionRank:
		if c.SelectionPressure < 1 || c.SelectionPressure > 2 {
			errs = append(errs, field.Invalid(path.Child("selectionPressure"), c.SelectionPressure, "must be within [1, 2]"))
		}
	default:
		errs = append(errs, field.NotSupported(path.Child("selection"), c.Selection, []string{string(SelectionTournament), string(SelectionRank)}))
	}
	if c.CrossoverPoints < 1 {
		errs = append(errs, field.Invalid(path.Child("crossoverPoints"), c.CrossoverPoints, "must be at least 1"))
	}
	if c.EliminationCount < 0 || c.EliminationCount > c.PopulationSize {
		errs = append(errs, field.Invalid(path.Child("eliminationCount"), c.EliminationCount, "must be within [0, populationSize]"))
	}
	if c.ChanceToMutatePortion < 0 {
		errs = append(errs, field.Invalid(path.Child("chanceToMutatePortion"), c.ChanceToMutatePortion, "must be non-negative"))
	}
	if c.MutationMassMin < 0 {
		errs = append(errs, field.Invalid(path.Child("mutationMassMin"), c.MutationMassMin, "must be non-negative"))
	}
	if c.MutationMassMax < c.MutationMassMin {
		errs = append(errs, field.Invalid(path.Child("mutationMassMax"), c.MutationMassMax, "must not be less than mutationMassMin"))
	}
	if c.AddPortionChance < 0 || c.AddPortionChance > 1 {
		errs = append(errs, field.Invalid(path.Child("addPortionChance"), c.AddPortionChance, "must be within [0, 1]"))
	}
	if c.RemovePortionChance < 0 || c.RemovePortionChance > 1 {
		errs = append(errs, field.Invalid(path.Child("removePortionChance"), c.RemovePortionChance, "must be within [0, 1]"))
	}
	return errs
}

// GeneticAlgorithm evolves a population of Days by selection, mass-weighted
// crossover and portion mutation. With Pareto fitness the population is kept
// sorted in a ParetoHierarchy.
type GeneticAlgorithm struct {
	config Config
	eval   *framework.Evaluator
	logger logr.Logger
	rng    *rand.Rand

	population *framework.Population
	hierarchy  *framework.ParetoHierarchy
	comparer   framework.Comparer

	// archive holds every rank-0 point seen so far that no later point
	// dominated; eliminated Days stay in it.
	archive []framework.ObjectiveSpacePoint
	// superset holds the objectives net dominance is counted against for
	// the current generation.
	superset []framework.ObjectiveSpacePoint

	best       *framework.Day
	generation int
}

var _ framework.Algorithm = &GeneticAlgorithm{}
var _ framework.Ranker = &GeneticAlgorithm{}

// New creates a new instance of the genetic algorithm with given parameters
func New(logger logr.Logger, eval *framework.Evaluator, config Config) *GeneticAlgorithm {
	hierarchy := framework.NewParetoHierarchy()
	return &GeneticAlgorithm{
		config:    config,
		eval:      eval,
		logger:    logger.WithName("genetic"),
		rng:       framework.NewRand(config.Seed),
		hierarchy: hierarchy,
		comparer:  framework.NewComparer(eval, hierarchy),
	}
}

func (g *GeneticAlgorithm) Name() string {
	return Name
}

// Init creates an initial random population of Days.
func (g *GeneticAlgorithm) Init() error {
	if errs := g.config.Validate(field.NewPath("genetic")); len(errs) > 0 {
		return errs.ToAggregate()
	}
	if g.config.Sampler.Catalog == nil {
		return errors.New("genetic algorithm needs a catalog to sample portions from")
	}

	g.population = framework.NewPopulation()
	g.hierarchy.Clear()
	g.archive = nil
	g.best = nil
	g.generation = 0

	for i := 0; i < g.config.PopulationSize; i++ {
		d := g.config.Sampler.Day(g.eval, g.config.InitialPortions, g.rng)
		g.add(d)
	}
	g.refresh()

	g.logger.V(5).Info("initialised population", "size", g.population.Len(), "fitness", g.eval.Kind())
	return nil
}

// RunIteration performs selection, crossover, mutation and replacement
// once. Eliminations and parents are both drawn from the population as it
// was before any child existed.
func (g *GeneticAlgorithm) RunIteration() {
	snapshot := g.population.Days()
	g.updateSuperset(snapshot)

	eliminated := g.eliminate(snapshot, g.config.EliminationCount)

	children := make([]*framework.Day, 0, len(eliminated)+1)
	for len(children) < len(eliminated) {
		p1 := g.selectOne(snapshot, false)
		p2 := g.selectOne(snapshot, false)
		c1, c2 := Crossover(p1, p2, g.config.CrossoverPoints, g.rng)
		g.mutate(c1)
		g.mutate(c2)
		children = append(children, c1, c2)
	}
	children = children[:len(eliminated)]

	for _, d := range eliminated {
		g.population.Remove(d)
		g.hierarchy.Remove(d.Fitness())
	}
	for _, d := range children {
		g.add(d)
	}
	g.refresh()
	g.generation++

	g.logger.V(2).Info("generation complete",
		"generation", g.generation,
		"replaced", len(children),
		"best", g.best.Fitness().Value(),
		"average", g.population.GetAverageFitness(),
		"ranks", g.hierarchy.Ranks(),
		"superset", len(g.superset),
		"archive", len(g.archive),
	)
}

func (g *GeneticAlgorithm) add(d *framework.Day) {
	g.population.Add(d)
	if g.eval.Kind() == framework.FitnessPareto {
		g.hierarchy.Insert(d.Fitness())
	}
}

// refresh recomputes every cached fitness, updates the best Day and folds
// the current rank-0 set into the archive.
func (g *GeneticAlgorithm) refresh() {
	for _, d := range g.population.Days() {
		g.population.GetFitness(d)
		if g.best == nil || g.comparer.Compare(d.Fitness(), g.best.Fitness()) < 0 {
			g.best = d
		}
	}
	if g.eval.Kind() == framework.FitnessPareto && g.hierarchy.Ranks() > 0 {
		for _, f := range g.hierarchy.Set(0) {
			g.archive = framework.MergeFront(g.archive, f.Objectives())
		}
	}
}

// Archive returns the non-dominated points collected over the run.
func (g *GeneticAlgorithm) Archive() []framework.ObjectiveSpacePoint {
	return slices.Clone(g.archive)
}

// Population returns the current Days, best first.
func (g *GeneticAlgorithm) Population() []*framework.Day {
	if g.population == nil {
		return nil
	}
	if g.eval.Kind() != framework.FitnessPareto {
		return g.population.GetSortedPopulation(false)
	}
	g.updateSuperset(g.population.Days())
	return g.sorted(g.population.Days())
}

func (g *GeneticAlgorithm) BestDay() *framework.Day {
	return g.best
}

// Rank returns the Pareto rank of d, or its position in the sorted
// population for summed fitness. Days outside the population rank -1.
func (g *GeneticAlgorithm) Rank(d *framework.Day) int {
	if g.eval.Kind() == framework.FitnessPareto {
		return g.hierarchy.Rank(d.Fitness())
	}
	return slices.Index(g.population.GetSortedPopulation(false), d)
}

// Generation returns the number of completed iterations.
func (g *GeneticAlgorithm) Generation() int {
	return g.generation
}
