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
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// minFitness bounds the deposit of a perfect ant.
const minFitness = 1e-9

// Graph is the complete directed graph of sampled portions an ant walks.
// fitness[i][j] caches the fitness of the Day holding vertices i and j and
// is computed the first time the edge is looked at.
type Graph struct {
	eval      *framework.Evaluator
	vertices  []framework.Portion
	fitness   [][]float64
	pheromone [][]float64
}

// NewGraph builds a graph over vertices with pheromone drawn uniformly
// from [0, 1).
func NewGraph(eval *framework.Evaluator, vertices []framework.Portion, rng *rand.Rand) *Graph {
	n := len(vertices)
	g := &Graph{
		eval:      eval,
		vertices:  vertices,
		fitness:   make([][]float64, n),
		pheromone: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		g.fitness[i] = make([]float64, n)
		g.pheromone[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			g.fitness[i][j] = math.NaN()
			g.pheromone[i][j] = rng.Float64()
		}
	}
	return g
}

func (g *Graph) Len() int {
	return len(g.vertices)
}

func (g *Graph) Vertex(i int) framework.Portion {
	return g.vertices[i]
}

func (g *Graph) Pheromone(i, j int) float64 {
	return g.pheromone[i][j]
}

// EdgeFitness returns the partial fitness value of the Day made of vertices
// i and j. A pair still short of a nutrient minimum scores finitely, since
// the rest of the walk may make up the difference; overshooting a maximum
// makes the edge infeasible.
func (g *Graph) EdgeFitness(i, j int) float64 {
	if math.IsNaN(g.fitness[i][j]) {
		// Both vertices have positive mass, so the Day is never empty.
		d, _ := framework.NewDay(g.eval, g.vertices[i], g.vertices[j])
		g.fitness[i][j] = d.Fitness().PartialValue()
	}
	return g.fitness[i][j]
}

// desirability maps an edge fitness onto (0, 1]; infeasible edges score 0.
func (g *Graph) desirability(i, j int) float64 {
	f := g.EdgeFitness(i, j)
	if math.IsInf(f, 1) {
		return 0
	}
	return 1 / (1 + f)
}

// VertexProbabilities returns the chance of moving from prev to each
// vertex: pheromone^alpha * desirability^beta, normalised. Visited vertices
// and infeasible edges have no chance. When no vertex can be reached the
// result sums to zero.
func (g *Graph) VertexProbabilities(prev int, visited sets.Set[int], alpha, beta float64) []float64 {
	probs := make([]float64, len(g.vertices))
	for j := range probs {
		if j == prev || visited.Has(j) {
			continue
		}
		h := g.desirability(prev, j)
		if h == 0 {
			continue
		}
		probs[j] = math.Pow(g.pheromone[prev][j], alpha) * math.Pow(h, beta)
	}
	if sum := floats.Sum(probs); sum > 0 {
		floats.Scale(1/sum, probs)
	}
	return probs
}

// Evaporate scales every pheromone entry by 1 - rate.
func (g *Graph) Evaporate(rate float64) {
	for _, row := range g.pheromone {
		floats.Scale(1-rate, row)
	}
}

// Deposit adds amount along every consecutive edge of path.
func (g *Graph) Deposit(path []int, amount float64) {
	for k := 1; k < len(path); k++ {
		g.pheromone[path[k-1]][path[k]] += amount
	}
}

// DepositAmount is the pheromone an ant of the given fitness leaves on each
// edge of its path. Infeasible ants leave nothing.
func DepositAmount(importance, fitness float64) float64 {
	if math.IsInf(fitness, 1) || math.IsNaN(fitness) {
		return 0
	}
	return importance / max(fitness, minFitness)
}

// IncomingPheromone returns the pheromone summed over the edges entering v.
func (g *Graph) IncomingPheromone(v int) float64 {
	sum := 0.0
	for i, row := range g.pheromone {
		if i != v {
			sum += row[v]
		}
	}
	return sum
}

// LeastVisited returns the vertex other than the start vertex with the
// smallest incoming pheromone.
func (g *Graph) LeastVisited() int {
	incoming := make([]float64, len(g.vertices)-1)
	for v := range incoming {
		incoming[v] = g.IncomingPheromone(v + 1)
	}
	return floats.MinIdx(incoming) + 1
}

// Replace swaps vertex v for p, forgets the fitness of its edges and
// reseeds their pheromone.
func (g *Graph) Replace(v int, p framework.Portion, rng *rand.Rand) {
	g.vertices[v] = p
	for i := range g.vertices {
		g.fitness[i][v] = math.NaN()
		g.fitness[v][i] = math.NaN()
		g.pheromone[i][v] = rng.Float64()
		g.pheromone[v][i] = rng.Float64()
	}
}
