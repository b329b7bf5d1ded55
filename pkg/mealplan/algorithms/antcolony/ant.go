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
	"math/rand/v2"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// Ant walks the graph from vertex 0 without revisiting a vertex. Its Day
// holds the best prefix of the walk under the run's comparer.
type Ant struct {
	graph    *Graph
	comparer framework.Comparer
	alpha    float64
	beta     float64

	walk    []int
	bestLen int
	day     *framework.Day
}

func NewAnt(graph *Graph, comparer framework.Comparer, alpha, beta float64) *Ant {
	return &Ant{graph: graph, comparer: comparer, alpha: alpha, beta: beta}
}

// Walk moves the ant until every vertex is visited or no unvisited vertex
// can be reached. It reports whether the walk covered the whole graph.
func (a *Ant) Walk(rng *rand.Rand) bool {
	a.walk = append(a.walk[:0], 0)
	visited := sets.New(0)

	// The start vertex has positive mass, so the Day is never empty.
	d, _ := framework.NewDay(a.graph.eval, a.graph.Vertex(0))
	best := d.Clone()
	a.bestLen = 1

	for len(a.walk) < a.graph.Len() {
		prev := a.walk[len(a.walk)-1]
		probs := a.graph.VertexProbabilities(prev, visited, a.alpha, a.beta)
		next, ok := sampleVertex(probs, rng.Float64())
		if !ok {
			break
		}
		a.walk = append(a.walk, next)
		visited.Insert(next)

		d.AddPortion(a.graph.Vertex(next))
		if a.better(d, best) {
			best = d.Clone()
			a.bestLen = len(a.walk)
		}
	}

	a.day = a.buildDay()
	return len(a.walk) == a.graph.Len()
}

// better reports whether prefix d beats best. Prefixes the comparer cannot
// separate while still infeasible are ordered by partial value, so a walk
// closing in on a nutrient minimum keeps its progress.
func (a *Ant) better(d, best *framework.Day) bool {
	if c := a.comparer.Compare(d.Fitness(), best.Fitness()); c != 0 {
		return c < 0
	}
	if best.Fitness().Feasible() {
		return false
	}
	return d.Fitness().PartialValue() < best.Fitness().PartialValue()
}

func (a *Ant) buildDay() *framework.Day {
	portions := make([]framework.Portion, 0, a.bestLen)
	for _, v := range a.walk[:a.bestLen] {
		portions = append(portions, a.graph.Vertex(v))
	}
	d, _ := framework.NewDay(a.graph.eval, portions...)
	return d
}

// Path returns the vertices of the ant's Day in the order they were walked.
func (a *Ant) Path() []int {
	return slices.Clone(a.walk[:a.bestLen])
}

// Walked returns every vertex of the last walk, including those after the
// best prefix.
func (a *Ant) Walked() []int {
	return slices.Clone(a.walk)
}

func (a *Ant) Day() *framework.Day {
	return a.day
}

// Fitness returns the fitness value of the ant's Day.
func (a *Ant) Fitness() float64 {
	return a.day.Fitness().Value()
}

// sampleVertex draws an index by cumulative probability. It fails when the
// probabilities sum to zero.
func sampleVertex(probs []float64, u float64) (int, bool) {
	cum := floats.CumSum(make([]float64, len(probs)), probs)
	total := cum[len(cum)-1]
	if total <= 0 {
		return 0, false
	}
	target := u * total
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > target })
	i = min(i, len(cum)-1)
	// Skip zero-probability entries sharing the cumulative value.
	for probs[i] == 0 && i > 0 {
		i--
	}
	return i, probs[i] > 0
}
