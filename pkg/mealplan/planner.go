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
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// ErrNotInitialized is returned when a Planner is advanced before Init.
var ErrNotInitialized = errors.New("planner is not initialised")

// Planner drives one algorithm over one catalog: Init once, then
// NextIteration any number of times.
type Planner struct {
	args    *v1alpha1.MealPlanArgs
	catalog *framework.Catalog
	eval    *framework.Evaluator
	seed    uint64

	algorithm   framework.Algorithm
	logger      logr.Logger
	initialized bool
	iteration   int
}

// New validates args against catalog and builds the configured algorithm.
// Unset fields of args are defaulted in place.
func New(ctx context.Context, args *v1alpha1.MealPlanArgs, catalog *framework.Catalog) (*Planner, error) {
	logger := klog.FromContext(ctx)
	if args == nil {
		return nil, errors.New("meal plan arguments are required")
	}
	if catalog == nil {
		return nil, errors.New("food catalog is required")
	}
	v1alpha1.SetDefaults_MealPlanArgs(args)
	logger.V(5).Info("creating planner", "algorithm", algorithmName(args.Algorithm), "fitness", args.Fitness, "foods", catalog.Len())

	if errs := ValidateMealPlanArgs(args, catalog); len(errs) > 0 {
		return nil, fmt.Errorf("invalid meal plan arguments: %w", errs.ToAggregate())
	}
	eval, err := newEvaluator(args)
	if err != nil {
		return nil, fmt.Errorf("invalid meal plan arguments: %w", err)
	}

	seed := rand.Uint64()
	if args.Seed != nil {
		seed = *args.Seed
	}
	algorithm, errs := newAlgorithm(logger, args, eval, catalog, seed)
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid meal plan arguments: %w", errs.ToAggregate())
	}

	return &Planner{
		args:      args,
		catalog:   catalog,
		eval:      eval,
		seed:      seed,
		algorithm: algorithm,
		logger:    logger.WithValues("algorithm", algorithm.Name()),
	}, nil
}

func (p *Planner) Name() string {
	return p.algorithm.Name()
}

// Algorithm returns the algorithm the planner drives.
func (p *Planner) Algorithm() framework.Algorithm {
	return p.algorithm
}

// Seed returns the seed of the run, drawn at random when args had none.
func (p *Planner) Seed() uint64 {
	return p.seed
}

func (p *Planner) Catalog() *framework.Catalog {
	return p.catalog
}

func (p *Planner) Evaluator() *framework.Evaluator {
	return p.eval
}

// Init builds the initial population. Calling it again restarts the run.
func (p *Planner) Init() error {
	if err := p.algorithm.Init(); err != nil {
		p.initialized = false
		return fmt.Errorf("initialising %s: %w", p.algorithm.Name(), err)
	}
	p.initialized = true
	p.iteration = 0
	p.logger.V(2).Info("planner initialised", "seed", p.seed, "population", len(p.algorithm.Population()))
	return nil
}

// NextIteration advances the algorithm by exactly one iteration.
func (p *Planner) NextIteration() error {
	if !p.initialized {
		return ErrNotInitialized
	}
	p.algorithm.RunIteration()
	p.iteration++

	if logger := p.logger.V(2); logger.Enabled() {
		population := p.algorithm.Population()
		logger.Info("iteration complete",
			"iteration", p.iteration,
			"best", p.algorithm.BestDay().Fitness().Value(),
			"average", framework.NewPopulation(population...).GetAverageFitness(),
			"population", len(population),
		)
	}
	return nil
}

// Iteration returns the number of completed iterations since Init.
func (p *Planner) Iteration() int {
	return p.iteration
}

// Population returns the current Days, best first, or nil before Init.
// The Days must not be modified.
func (p *Planner) Population() []*framework.Day {
	if !p.initialized {
		return nil
	}
	return p.algorithm.Population()
}

// BestDay returns the best Day found so far, or nil before Init.
func (p *Planner) BestDay() *framework.Day {
	if !p.initialized {
		return nil
	}
	return p.algorithm.BestDay()
}
