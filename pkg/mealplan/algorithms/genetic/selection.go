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
	"cmp"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// compare orders two Days without coin flips. Summed fitness compares
// values. Pareto fitness compares ranks, then net dominance over the
// comparison superset: the number of members a Day dominates minus the
// number dominating it.
func (g *GeneticAlgorithm) compare(a, b *framework.Day) int {
	if g.eval.Kind() != framework.FitnessPareto {
		return cmp.Compare(g.population.GetFitness(a), g.population.GetFitness(b))
	}
	if c := g.comparer.Compare(a.Fitness(), b.Fitness()); c != 0 {
		return c
	}
	na := framework.NetDominance(a.Fitness().Objectives(), g.superset)
	nb := framework.NetDominance(b.Fitness().Objectives(), g.superset)
	return cmp.Compare(nb, na)
}

// updateSuperset collects the objectives of the population and the
// archived points no population member sits on.
func (g *GeneticAlgorithm) updateSuperset(snapshot []*framework.Day) {
	if g.eval.Kind() != framework.FitnessPareto {
		g.superset = nil
		return
	}
	g.superset = g.superset[:0]
	for _, d := range snapshot {
		g.superset = append(g.superset, d.Fitness().Objectives())
	}
	current := len(g.superset)
	for _, p := range g.archive {
		if !slices.ContainsFunc(g.superset[:current], func(q framework.ObjectiveSpacePoint) bool { return slices.Equal(p, q) }) {
			g.superset = append(g.superset, p)
		}
	}
}

// sorted returns candidates best first.
func (g *GeneticAlgorithm) sorted(candidates []*framework.Day) []*framework.Day {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, g.compare)
	return out
}

// selectOne picks the best candidate, or the worst when worst is set,
// using the configured selection scheme.
func (g *GeneticAlgorithm) selectOne(candidates []*framework.Day, worst bool) *framework.Day {
	if g.config.Selection == SelectionRank {
		return g.rankSelect(candidates, worst)
	}
	return g.tournamentSelect(candidates, worst)
}

// tournamentSelect draws TournamentSize distinct candidates and returns
// the best of them (or the worst). Ties are settled by a coin flip.
func (g *GeneticAlgorithm) tournamentSelect(candidates []*framework.Day, worst bool) *framework.Day {
	k := min(g.config.TournamentSize, len(candidates))
	drawn := sets.New[int]()
	var winner *framework.Day
	for drawn.Len() < k {
		i := g.rng.IntN(len(candidates))
		if drawn.Has(i) {
			continue
		}
		drawn.Insert(i)

		contestant := candidates[i]
		if winner == nil {
			winner = contestant
			continue
		}
		c := g.compare(contestant, winner)
		if worst {
			c = -c
		}
		if c < 0 || (c == 0 && g.rng.IntN(2) == 0) {
			winner = contestant
		}
	}
	return winner
}

// rankSelect sorts the candidates and picks rank i (1-based, best first)
// with probability (1/n)(SP - (2SP-2)(i-1)/(n-1)).
func (g *GeneticAlgorithm) rankSelect(candidates []*framework.Day, worst bool) *framework.Day {
	ordered := g.sorted(candidates)
	if worst {
		slices.Reverse(ordered)
	}
	probs := RankProbabilities(len(ordered), g.config.SelectionPressure)
	return ordered[sampleCumulative(probs, g.rng.Float64())]
}

// RankProbabilities returns the linear ranking selection probabilities of
// n ranks, best first, for selection pressure sp in [1, 2].
func RankProbabilities(n int, sp float64) []float64 {
	probs := make([]float64, n)
	if n == 1 {
		probs[0] = 1
		return probs
	}
	for i := range probs {
		probs[i] = (sp - (2*sp-2)*float64(i)/float64(n-1)) / float64(n)
	}
	return probs
}

// sampleCumulative returns the index whose cumulative probability interval
// contains u*total.
func sampleCumulative(probs []float64, u float64) int {
	cum := floats.CumSum(make([]float64, len(probs)), probs)
	target := u * cum[len(cum)-1]
	i := sort.Search(len(cum), func(i int) bool { return cum[i] > target })
	return min(i, len(cum)-1)
}

// eliminate picks n distinct Days to be replaced, worst first.
func (g *GeneticAlgorithm) eliminate(snapshot []*framework.Day, n int) []*framework.Day {
	remaining := slices.Clone(snapshot)
	out := make([]*framework.Day, 0, n)
	for len(out) < n && len(remaining) > 0 {
		d := g.selectOne(remaining, true)
		out = append(out, d)
		remaining = slices.DeleteFunc(remaining, func(x *framework.Day) bool { return x == d })
	}
	return out
}
