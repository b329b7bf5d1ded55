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
	"errors"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/go-logr/logr"
	"gonum.org/v1/gonum/floats"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

const (
	Name = "ParticleSwarm"
)

// Config represents the particle swarm configuration
type Config struct {
	Particles int
	// InitialVelocity bounds every initial velocity component to
	// [-InitialVelocity, InitialVelocity] grams.
	InitialVelocity float64

	// InitialPortions is the number of portions of a particle's first Day.
	InitialPortions int
	Sampler         framework.PortionSampler

	Seed uint64
}

// Validate checks the configuration; path is the location of the particle
// swarm block in the run arguments.
func (c *Config) Validate(path *field.Path) field.ErrorList {
	var errs field.ErrorList
	if c.Particles < 1 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), c.Particles, "must be at least 1"))
	}
	if c.InitialVelocity < 0 || math.IsInf(c.InitialVelocity, 0) || math.IsNaN(c.InitialVelocity) {
		errs = append(errs, field.Invalid(path.Child("initialVelocity"), c.InitialVelocity, "must be a non-negative number"))
	}
	return errs
}

// Particle is a position and velocity in food mass space, one dimension
// per catalog food.
type Particle struct {
	Position []float64
	Velocity []float64

	// BestPosition is where the particle found Best.
	BestPosition []float64
	Best         *framework.Day

	day *framework.Day
}

// Day returns the Day materialised from the particle's position.
func (p *Particle) Day() *framework.Day {
	return p.day
}

// Swarm moves particles towards their own best position and the best
// position of the swarm.
type Swarm struct {
	config Config
	eval   *framework.Evaluator
	logger logr.Logger
	rng    *rand.Rand

	particles []*Particle

	population *framework.Population
	hierarchy  *framework.ParetoHierarchy
	comparer   framework.Comparer

	best         *framework.Day
	bestPosition []float64

	iteration int
}

var _ framework.Algorithm = &Swarm{}
var _ framework.Ranker = &Swarm{}

// New creates a new particle swarm with the given parameters
func New(logger logr.Logger, eval *framework.Evaluator, config Config) *Swarm {
	hierarchy := framework.NewParetoHierarchy()
	return &Swarm{
		config:    config,
		eval:      eval,
		logger:    logger.WithName("swarm"),
		rng:       framework.NewRand(config.Seed),
		hierarchy: hierarchy,
		comparer:  framework.NewComparer(eval, hierarchy),
	}
}

func (s *Swarm) Name() string {
	return Name
}

// Init places every particle on a random Day with a random velocity.
func (s *Swarm) Init() error {
	if errs := s.config.Validate(field.NewPath("particleSwarm")); len(errs) > 0 {
		return errs.ToAggregate()
	}
	if s.config.Sampler.Catalog == nil {
		return errors.New("particle swarm needs a catalog to sample portions from")
	}

	dims := s.config.Sampler.Catalog.Len()
	s.particles = make([]*Particle, s.config.Particles)
	s.best = nil
	s.bestPosition = nil
	s.iteration = 0

	for i := range s.particles {
		d := s.config.Sampler.Day(s.eval, s.config.InitialPortions, s.rng)
		position := make([]float64, dims)
		for _, p := range d.Portions() {
			position[p.Food.ID] = float64(p.Mass)
		}
		velocity := make([]float64, dims)
		for k := range velocity {
			velocity[k] = (2*s.rng.Float64() - 1) * s.config.InitialVelocity
		}
		s.particles[i] = &Particle{
			Position:     position,
			Velocity:     velocity,
			BestPosition: slices.Clone(position),
			Best:         d.Clone(),
			day:          d,
		}
	}
	s.rebuild()
	for _, p := range s.particles {
		s.updateGlobalBest(p)
	}

	s.logger.V(5).Info("initialised swarm", "particles", len(s.particles), "dimensions", dims, "fitness", s.eval.Kind())
	return nil
}

// RunIteration moves every particle, updates the personal and global bests
// and then the velocities.
func (s *Swarm) RunIteration() {
	for i, p := range s.particles {
		floats.Add(p.Position, p.Velocity)
		Clamp(p.Position)
		d := Materialize(s.eval, s.config.Sampler.Catalog, p.Position)
		if d == nil {
			s.logger.V(4).Info("particle left every food at zero grams", "particle", i)
			continue
		}
		p.day = d
	}
	s.rebuild()

	for _, p := range s.particles {
		if s.comparer.Compare(p.day.Fitness(), p.Best.Fitness()) < 0 {
			p.Best = p.day.Clone()
			p.BestPosition = slices.Clone(p.Position)
			s.updateGlobalBest(p)
		}
	}

	for _, p := range s.particles {
		UpdateVelocity(p.Velocity, p.Position, p.BestPosition, s.bestPosition)
	}

	s.iteration++
	s.logger.V(2).Info("iteration complete",
		"iteration", s.iteration,
		"best", s.best.Fitness().Value(),
		"average", s.population.GetAverageFitness(),
		"ranks", s.hierarchy.Ranks(),
	)
}

func (s *Swarm) updateGlobalBest(p *Particle) {
	if s.best == nil || s.comparer.Compare(p.Best.Fitness(), s.best.Fitness()) < 0 {
		s.best = p.Best.Clone()
		s.bestPosition = slices.Clone(p.BestPosition)
	}
}

// rebuild refreshes the population, and the hierarchy for Pareto fitness,
// from the particles' current Days.
func (s *Swarm) rebuild() {
	s.population = framework.NewPopulation()
	s.hierarchy.Clear()
	for _, p := range s.particles {
		s.population.Add(p.day)
		if s.eval.Kind() == framework.FitnessPareto {
			s.hierarchy.Insert(p.day.Fitness())
		}
	}
}

// Clamp sets negative components to zero.
func Clamp(v []float64) {
	for i, x := range v {
		if x < 0 {
			v[i] = 0
		}
	}
}

// UpdateVelocity adds (pbest - position) + (gbest - position) to velocity.
func UpdateVelocity(velocity, position, pbest, gbest []float64) {
	floats.Add(velocity, pbest)
	floats.Add(velocity, gbest)
	floats.AddScaled(velocity, -2, position)
}

// Materialize builds a Day from every positive component of position,
// rounding masses up to whole grams. It returns nil when every component
// is zero.
func Materialize(eval *framework.Evaluator, catalog *framework.Catalog, position []float64) *framework.Day {
	portions := make([]framework.Portion, 0, len(position))
	for i, x := range position {
		if x <= 0 {
			continue
		}
		portions = append(portions, framework.NewPortion(catalog.Food(i), int(math.Ceil(x))))
	}
	d, err := framework.NewDay(eval, portions...)
	if err != nil {
		return nil
	}
	return d
}

// Population returns the particles' current Days, best first.
func (s *Swarm) Population() []*framework.Day {
	if s.population == nil {
		return nil
	}
	days := s.population.Days()
	slices.SortStableFunc(days, func(x, y *framework.Day) int {
		return s.comparer.Compare(x.Fitness(), y.Fitness())
	})
	return days
}

func (s *Swarm) BestDay() *framework.Day {
	return s.best
}

// Rank returns the Pareto rank of d among the particles' Days, or its
// position in the sorted population for summed fitness.
func (s *Swarm) Rank(d *framework.Day) int {
	if s.eval.Kind() == framework.FitnessPareto {
		return s.hierarchy.Rank(d.Fitness())
	}
	return slices.Index(s.population.GetSortedPopulation(false), d)
}

// Particles returns the particles of the swarm.
func (s *Swarm) Particles() []*Particle {
	return s.particles
}

func (s *Swarm) Iteration() int {
	return s.iteration
}
