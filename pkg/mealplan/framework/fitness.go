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

package framework

import (
	"math"
)

// FitnessKind selects how Days of one run are compared.
type FitnessKind int

const (
	// FitnessSummed orders Days by the sum of their weighted penalties.
	FitnessSummed FitnessKind = iota
	// FitnessPareto orders Days by their rank in a ParetoHierarchy.
	FitnessPareto
)

func (k FitnessKind) String() string {
	if k == FitnessPareto {
		return "Pareto"
	}
	return "Summed"
}

// Evaluator bundles the immutable scoring configuration shared by every
// Day of a run.
type Evaluator struct {
	constraints []Constraint
	kind        FitnessKind

	massLimit   int
	massPenalty float64
	limitMass   bool
}

type EvaluatorOption func(*Evaluator)

// WithMassLimit charges penaltyPerGram for every gram a Day weighs above limit.
func WithMassLimit(limit int, penaltyPerGram float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.massLimit = limit
		e.massPenalty = penaltyPerGram
		e.limitMass = true
	}
}

// NewEvaluator creates an evaluator with one constraint per nutrient.
func NewEvaluator(constraints []Constraint, kind FitnessKind, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		constraints: append([]Constraint(nil), constraints...),
		kind:        kind,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Kind() FitnessKind {
	return e.kind
}

func (e *Evaluator) NutrientCount() int {
	return len(e.constraints)
}

func (e *Evaluator) Constraint(i int) Constraint {
	return e.constraints[i]
}

// Penalty returns the weighted penalty of amount for nutrient i.
func (e *Evaluator) Penalty(i int, amount float64) float64 {
	return normalise(e.constraints[i].Evaluate(amount))
}

// PartialPenalty is Penalty for a total that may still grow; see PartialPenalty.
func (e *Evaluator) PartialPenalty(i int, amount float64) float64 {
	return PartialPenalty(e.constraints[i], amount)
}

// MassPenalty returns the overshoot penalty of a Day weighing mass grams.
func (e *Evaluator) MassPenalty(mass int) float64 {
	if !e.limitMass || mass <= e.massLimit {
		return 0
	}
	return normalise(float64(mass-e.massLimit) * e.massPenalty)
}

// objectiveCount is the dimension of the Pareto objective space.
func (e *Evaluator) objectiveCount() int {
	if e.limitMass {
		return len(e.constraints) + 1
	}
	return len(e.constraints)
}

// Fitness caches the per-nutrient penalties of one Day. Penalties of
// nutrients whose aggregate changed are recomputed lazily on the next read.
type Fitness struct {
	day *Day

	penalties []float64
	outdated  []bool
	stale     int

	massPenalty  float64
	massOutdated bool

	value      float64
	valueValid bool
}

func newFitness(d *Day) *Fitness {
	n := d.eval.NutrientCount()
	f := &Fitness{
		day:          d,
		penalties:    make([]float64, n),
		outdated:     make([]bool, n),
		stale:        n,
		massOutdated: true,
	}
	for i := range f.outdated {
		f.outdated[i] = true
	}
	return f
}

// clone copies the cached state for a Day clone.
func (f *Fitness) clone(d *Day) *Fitness {
	return &Fitness{
		day:          d,
		penalties:    append([]float64(nil), f.penalties...),
		outdated:     append([]bool(nil), f.outdated...),
		stale:        f.stale,
		massPenalty:  f.massPenalty,
		massOutdated: f.massOutdated,
		value:        f.value,
		valueValid:   f.valueValid,
	}
}

func (f *Fitness) invalidate(nutrient int) {
	if !f.outdated[nutrient] {
		f.outdated[nutrient] = true
		f.stale++
	}
	f.valueValid = false
}

func (f *Fitness) invalidateMass() {
	f.massOutdated = true
	f.valueValid = false
}

// Day returns the Day owning this fitness.
func (f *Fitness) Day() *Day {
	return f.day
}

func (f *Fitness) Kind() FitnessKind {
	return f.day.eval.kind
}

// Penalty returns the weighted penalty of nutrient i.
func (f *Fitness) Penalty(i int) float64 {
	if f.outdated[i] {
		f.penalties[i] = f.day.eval.Penalty(i, f.day.totals[i])
		f.outdated[i] = false
		f.stale--
	}
	return f.penalties[i]
}

// MassPenalty returns the overshoot penalty of the Day.
func (f *Fitness) MassPenalty() float64 {
	if f.massOutdated {
		f.massPenalty = f.day.eval.MassPenalty(f.day.mass)
		f.massOutdated = false
	}
	return f.massPenalty
}

// Penalties returns every per-nutrient penalty.
func (f *Fitness) Penalties() []float64 {
	out := make([]float64, len(f.penalties))
	for i := range out {
		out[i] = f.Penalty(i)
	}
	return out
}

// Objectives returns the point compared under Pareto dominance: every
// nutrient penalty followed, when a mass limit is set, by the mass penalty.
func (f *Fitness) Objectives() ObjectiveSpacePoint {
	p := make(ObjectiveSpacePoint, 0, f.day.eval.objectiveCount())
	p = append(p, f.Penalties()...)
	if f.day.eval.limitMass {
		p = append(p, f.MassPenalty())
	}
	return p
}

// Value is the summed weighted penalty of the Day; it is never negative and
// +Inf when any nutrient is infeasible.
func (f *Fitness) Value() float64 {
	if f.valueValid {
		return f.value
	}
	sum := f.MassPenalty()
	for i := range f.penalties {
		sum += f.Penalty(i)
	}
	f.value = normalise(sum)
	f.valueValid = true
	return f.value
}

// PartialValue sums the partial penalties of the Day, so a Day short of some
// minimum still scores finitely. It equals Value whenever no total is below
// its minimum.
func (f *Fitness) PartialValue() float64 {
	sum := f.MassPenalty()
	for i, amount := range f.day.totals {
		sum += f.day.eval.PartialPenalty(i, amount)
	}
	return normalise(sum)
}

// Feasible reports whether the Day has a finite penalty.
func (f *Fitness) Feasible() bool {
	return !math.IsInf(f.Value(), 1)
}

// Dominates reports whether f dominates o.
func (f *Fitness) Dominates(o *Fitness) bool {
	return Dominates(f.Objectives(), o.Objectives())
}
