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

package antcolony

import (
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

const (
	Name = "AntColony"
)

// Config represents the ant colony configuration
type Config struct {
	// Ants is the number of ants, and Days, per generation.
	Ants int
	// ColonyPortions is the number of vertices in the search graph.
	ColonyPortions int

	Alpha float64
	Beta  float64

	EvaporationRate     float64
	PheromoneImportance float64
	// Elitism scales the extra deposit along the best-known path.
	Elitism float64
	// StagnationIters is the number of generations between two vertex
	// replacements.
	StagnationIters int

	Sampler framework.PortionSampler
	Seed    uint64
}

// Validate checks the configuration; path is the location of the ant
// colony block in the run arguments.
func (c *Config) Validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if c.Ants < 1 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), c.Ants, "must be at least 1"))
	}
	if c.ColonyPortions < 2 {
		errs = append(errs, field.Invalid(path.Child("colonyPortions"), c.ColonyPortions, "must be at least 2"))
	}
	if c.Alpha <= 0 {
		errs = append(errs, field.Invalid(path.Child("alpha"), c.Alpha, "must be positive"))
	}
	if c.Beta <= 0 {
		errs = append(errs, field.Invalid(path.Child("beta"), c.Beta, "must be positive"))
	}
	if c.EvaporationRate < 0 || c.EvaporationRate > 1 {
		errs = append(errs, field.Invalid(path.Child("evaporationRate"), c.EvaporationRate, "must be within [0, 1]"))
	}
	if c.PheromoneImportance <= 0 {
		errs = append(errs, field.Invalid(path.Child("pheromoneImportance"), c.PheromoneImportance, "must be positive"))
	}
	if c.Elitism < 0 {
		errs = append(errs, field.Invalid(path.Child("elitism"), c.Elitism, "must be non-negative"))
	}
	if c.StagnationIters < 1 {
		errs = append(errs, field.Invalid(path.Child("stagnationIters"), c.StagnationIters, "must be at least 1"))
	}
	return errs
}

// AntColony searches a fixed graph of sampled portions. Every generation
// each ant walks the graph from vertex 0 guided by pheromone and edge
// fitness, and the Day built from its walk joins the population.
type AntColony struct {
	config Config
	eval   *framework.Evaluator
	logger logr.Logger
	rng    *rand.Rand

	graph *Graph
	ants  []*Ant

	population *framework.Population
	hierarchy  *framework.ParetoHierarchy
	comparer   framework.Comparer

	best *framework.Day
	// elite is the Day laid along elitePath, reinforced every generation.
	// It trails best once regeneration removes a vertex of best's path.
	elite     *framework.Day
	elitePath []int

	generation int
}

var _ framework.Algorithm = &AntColony{}
var _ framework.Ranker = &AntColony{}

// New creates a new ant colony with the given parameters
func New(logger logr.Logger, eval *framework.Evaluator, config Config) *AntColony {
	hierarchy := framework.NewParetoHierarchy()
	return &AntColony{
		config:    config,
		eval:      eval,
		logger:    logger.WithName("antcolony"),
		rng:       framework.NewRand(config.Seed),
		hierarchy: hierarchy,
		comparer:  framework.NewComparer(eval, hierarchy),
	}
}

func (a *AntColony) Name() string {
	return Name
}

// Init samples the search graph and sends out the first generation of ants.
// The pheromone is not updated until the first iteration.
func (a *AntColony) Init() error {
	if errs := a.config.Validate(field.NewPath("antColony")); len(errs) > 0 {
		return errs.ToAggregate()
	}
	if a.config.Sampler.Catalog == nil {
		return errors.New("ant colony needs a catalog to sample portions from")
	}

	vertices := make([]framework.Portion, a.config.ColonyPortions)
	for i := range vertices {
		vertices[i] = a.config.Sampler.Portion(a.rng)
	}
	a.graph = NewGraph(a.eval, vertices, a.rng)
	a.best = nil
	a.elite, a.elitePath = nil, nil
	a.generation = 0

	a.march()

	a.logger.V(5).Info("initialised colony", "vertices", a.graph.Len(), "ants", len(a.ants), "fitness", a.eval.Kind())
	return nil
}

// RunIteration lets every ant walk the graph once, then evaporates and
// deposits pheromone. Every StagnationIters generations the least visited
// vertex is replaced.
func (a *AntColony) RunIteration() {
	a.march()

	a.graph.Evaporate(a.config.EvaporationRate)
	for _, ant := range a.ants {
		a.graph.Deposit(ant.Path(), DepositAmount(a.config.PheromoneImportance, ant.Fitness()))
	}
	if a.config.Elitism > 0 && a.elitePath != nil {
		a.graph.Deposit(a.elitePath, a.config.Elitism*DepositAmount(a.config.PheromoneImportance, a.elite.Fitness().Value()))
	}

	a.generation++
	if a.generation%a.config.StagnationIters == 0 {
		a.regenerate()
	}

	a.logger.V(2).Info("generation complete",
		"generation", a.generation,
		"best", a.best.Fitness().Value(),
		"average", a.population.GetAverageFitness(),
		"ranks", a.hierarchy.Ranks(),
	)
}

// march replaces the population with the Days of a fresh set of ants and
// updates the best-known and elite Days.
func (a *AntColony) march() {
	a.population = framework.NewPopulation()
	a.hierarchy.Clear()
	a.ants = a.ants[:0]

	for i := 0; i < a.config.Ants; i++ {
		ant := NewAnt(a.graph, a.comparer, a.config.Alpha, a.config.Beta)
		if !ant.Walk(a.rng) {
			a.logger.V(4).Info("ant stopped early", "path", ant.Path(), "vertices", a.graph.Len())
		}
		a.ants = append(a.ants, ant)
		a.population.Add(ant.Day())
		if a.eval.Kind() == framework.FitnessPareto {
			a.hierarchy.Insert(ant.Day().Fitness())
		}
	}

	for _, ant := range a.ants {
		d := ant.Day()
		if a.best == nil || a.comparer.Compare(d.Fitness(), a.best.Fitness()) < 0 {
			a.best = d.Clone()
		}
		if a.elite == nil || a.comparer.Compare(d.Fitness(), a.elite.Fitness()) < 0 {
			a.elite = d.Clone()
			a.elitePath = ant.Path()
		}
	}
}

// regenerate replaces the vertex with the smallest incoming pheromone. The
// start vertex is never replaced. An elite path through the replaced vertex
// falls back to the best ant of the generation whose path avoids it.
func (a *AntColony) regenerate() {
	v := a.graph.LeastVisited()
	old := a.graph.Vertex(v)
	a.graph.Replace(v, a.config.Sampler.Portion(a.rng), a.rng)
	if slices.Contains(a.elitePath, v) {
		a.elite, a.elitePath = a.eliteAvoiding(v)
		if a.elitePath == nil {
			a.logger.V(4).Info("every ant crossed the replaced vertex, elitism paused", "vertex", v)
		}
	}
	a.logger.V(4).Info("replaced vertex", "vertex", v, "old", old.String(), "new", a.graph.Vertex(v).String())
}

// eliteAvoiding returns the best ant Day, and its path, among the ants of
// the latest generation that did not keep vertex v.
func (a *AntColony) eliteAvoiding(v int) (*framework.Day, []int) {
	var elite *Ant
	for _, ant := range a.ants {
		if slices.Contains(ant.Path(), v) {
			continue
		}
		if elite == nil || a.comparer.Compare(ant.Day().Fitness(), elite.Day().Fitness()) < 0 {
			elite = ant
		}
	}
	if elite == nil {
		return nil, nil
	}
	return elite.Day().Clone(), elite.Path()
}

// ElitePath returns the path reinforced by elitism, or nil when there is none.
func (a *AntColony) ElitePath() []int {
	return slices.Clone(a.elitePath)
}

// Population returns the Days of the latest generation of ants, best first.
func (a *AntColony) Population() []*framework.Day {
	if a.population == nil {
		return nil
	}
	days := a.population.Days()
	slices.SortStableFunc(days, func(x, y *framework.Day) int {
		return a.comparer.Compare(x.Fitness(), y.Fitness())
	})
	return days
}

func (a *AntColony) BestDay() *framework.Day {
	return a.best
}

// Rank returns the Pareto rank of d among the latest ants, or its position
// in the sorted population for summed fitness.
func (a *AntColony) Rank(d *framework.Day) int {
	if a.eval.Kind() == framework.FitnessPareto {
		return a.hierarchy.Rank(d.Fitness())
	}
	return slices.Index(a.population.GetSortedPopulation(false), d)
}

// Graph returns the search graph. It is nil before Init.
func (a *AntColony) Graph() *Graph {
	return a.graph
}

// Generation returns the number of completed iterations.
func (a *AntColony) Generation() int {
	return a.generation
}
