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
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Population holds the Days of one run and caches their scalar fitness,
// the population average and the sorted order. Changing one Day only drops
// the cached values that depend on it.
type Population struct {
	days    []*Day
	fitness map[*Day]float64

	average      float64
	averageValid bool

	sorted      []*Day
	sortedValid bool
}

func NewPopulation(days ...*Day) *Population {
	p := &Population{
		fitness: make(map[*Day]float64, len(days)),
	}
	for _, d := range days {
		p.Add(d)
	}
	return p
}

func (p *Population) Len() int {
	return len(p.days)
}

// Days returns the members in insertion order.
func (p *Population) Days() []*Day {
	return slices.Clone(p.days)
}

func (p *Population) Contains(d *Day) bool {
	return slices.Contains(p.days, d)
}

func (p *Population) Add(d *Day) {
	p.days = append(p.days, d)
	p.averageValid = false
	p.sortedValid = false
}

func (p *Population) Remove(d *Day) bool {
	i := slices.Index(p.days, d)
	if i < 0 {
		return false
	}
	p.days = slices.Delete(p.days, i, i+1)
	delete(p.fitness, d)
	p.averageValid = false
	p.sortedValid = false
	return true
}

// Invalidate must be called after a member Day is modified in place.
func (p *Population) Invalidate(d *Day) {
	delete(p.fitness, d)
	p.averageValid = false
	p.sortedValid = false
}

// GetFitness returns the cached scalar fitness of d.
func (p *Population) GetFitness(d *Day) float64 {
	if v, ok := p.fitness[d]; ok {
		return v
	}
	v := d.Fitness().Value()
	p.fitness[d] = v
	return v
}

// GetAverageFitness returns the mean scalar fitness, +Inf when any member
// is infeasible and 0 for an empty population.
func (p *Population) GetAverageFitness() float64 {
	if p.averageValid {
		return p.average
	}
	if len(p.days) == 0 {
		return 0
	}
	values := make([]float64, len(p.days))
	for i, d := range p.days {
		values[i] = p.GetFitness(d)
	}
	p.average = stat.Mean(values, nil)
	p.averageValid = true
	return p.average
}

// GetSortedPopulation returns the members by ascending fitness (best
// first), or descending when reversed.
func (p *Population) GetSortedPopulation(reversed bool) []*Day {
	if !p.sortedValid {
		p.sorted = slices.Clone(p.days)
		slices.SortStableFunc(p.sorted, func(a, b *Day) int {
			fa, fb := p.GetFitness(a), p.GetFitness(b)
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		})
		p.sortedValid = true
	}
	out := slices.Clone(p.sorted)
	if reversed {
		slices.Reverse(out)
	}
	return out
}

// Best returns the member with the lowest scalar fitness, or nil.
func (p *Population) Best() *Day {
	if len(p.days) == 0 {
		return nil
	}
	return p.GetSortedPopulation(false)[0]
}
