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
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrEmptyDay is returned when a Day would be built without portions.
var ErrEmptyDay = errors.New("a day needs at least one portion")

// Day is a candidate meal plan: a list of portions of distinct foods.
// A Day never holds zero portions and never holds two portions of the
// same food. The aggregate nutrient vector is maintained incrementally.
type Day struct {
	eval *Evaluator

	portions []Portion
	mass     int

	// totals may be shared with a clone until either side writes to it.
	totals       []float64
	sharedTotals bool

	fitness *Fitness
}

// NewDay builds a Day from the given portions, merging portions of the
// same food. Portions without mass are ignored.
func NewDay(eval *Evaluator, portions ...Portion) (*Day, error) {
	d := &Day{
		eval:   eval,
		totals: make([]float64, eval.NutrientCount()),
	}
	d.fitness = newFitness(d)
	for _, p := range portions {
		d.AddPortion(p)
	}
	if len(d.portions) == 0 {
		return nil, ErrEmptyDay
	}
	return d, nil
}

// Clone returns an independent copy. The nutrient aggregate is shared until
// either Day is modified.
func (d *Day) Clone() *Day {
	c := &Day{
		eval:         d.eval,
		portions:     append([]Portion(nil), d.portions...),
		mass:         d.mass,
		totals:       d.totals,
		sharedTotals: true,
	}
	d.sharedTotals = true
	c.fitness = d.fitness.clone(c)
	return c
}

func (d *Day) Evaluator() *Evaluator {
	return d.eval
}

func (d *Day) Fitness() *Fitness {
	return d.fitness
}

// Len returns the number of portions.
func (d *Day) Len() int {
	return len(d.portions)
}

func (d *Day) Portion(i int) Portion {
	return d.portions[i]
}

// Portions returns a copy of the portions in insertion order.
func (d *Day) Portions() []Portion {
	return append([]Portion(nil), d.portions...)
}

// Mass returns the total mass in grams.
func (d *Day) Mass() int {
	return d.mass
}

// Nutrient returns the aggregate amount of nutrient i.
func (d *Day) Nutrient(i int) float64 {
	return d.totals[i]
}

// Nutrients returns a copy of the aggregate nutrient vector.
func (d *Day) Nutrients() []float64 {
	return append([]float64(nil), d.totals...)
}

// Index returns the position of the portion of food, or -1.
func (d *Day) Index(food *Food) int {
	for i := range d.portions {
		if d.portions[i].Food == food {
			return i
		}
	}
	return -1
}

// AddPortion appends p, or adds its mass to the existing portion of the
// same food.
func (d *Day) AddPortion(p Portion) {
	if p.Mass <= 0 || p.Food == nil {
		return
	}
	if i := d.Index(p.Food); i >= 0 {
		d.SetMass(i, d.portions[i].Mass+p.Mass)
		return
	}
	d.portions = append(d.portions, p)
	d.apply(p.Food, p.Mass)
}

// RemovePortion removes the portion at i. Removing the last portion is a
// no-op; the return value reports whether anything was removed.
func (d *Day) RemovePortion(i int) bool {
	if len(d.portions) <= 1 {
		return false
	}
	p := d.portions[i]
	d.portions = append(d.portions[:i], d.portions[i+1:]...)
	d.apply(p.Food, -p.Mass)
	return true
}

// SetMass changes the mass of the portion at i. A mass of zero or less
// removes the portion, subject to the same rule as RemovePortion.
func (d *Day) SetMass(i, mass int) bool {
	if mass <= 0 {
		return d.RemovePortion(i)
	}
	delta := mass - d.portions[i].Mass
	if delta == 0 {
		return false
	}
	d.portions[i].Mass = mass
	d.apply(d.portions[i].Food, delta)
	return true
}

// apply adds the contribution of delta grams of food to the aggregate and
// marks exactly the penalties whose amount moved as outdated.
func (d *Day) apply(food *Food, delta int) {
	if d.sharedTotals {
		d.totals = append([]float64(nil), d.totals...)
		d.sharedTotals = false
	}
	for i := range d.totals {
		c := contribution(food, i, delta)
		if c == 0 {
			continue
		}
		d.totals[i] += c
		d.fitness.invalidate(i)
	}
	d.mass += delta
	d.fitness.invalidateMass()
}

func (d *Day) String() string {
	parts := make([]string, len(d.portions))
	for i, p := range d.portions {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%d portions, %s g: %s", len(d.portions), humanize.Comma(int64(d.mass)), strings.Join(parts, ", "))
}

// Summary describes the Day together with its fitness.
func (d *Day) Summary() string {
	v := d.fitness.Value()
	score := "infeasible"
	if d.fitness.Feasible() {
		score = humanize.FtoaWithDigits(v, 4)
	}
	return fmt.Sprintf("fitness %s; %s", score, d)
}
