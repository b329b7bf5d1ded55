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
	"math"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// Snapshot describes the current population for presentation layers.
// Infinite values, which JSON cannot carry, are reported as -1.
func (p *Planner) Snapshot() *v1alpha1.PlanSnapshot {
	snapshot := &v1alpha1.PlanSnapshot{
		TypeMeta: metav1.TypeMeta{
			APIVersion: v1alpha1.GroupName + "/" + v1alpha1.Version,
			Kind:       "PlanSnapshot",
		},
		Algorithm:   p.args.Algorithm,
		Fitness:     p.args.Fitness,
		Iteration:   p.iteration,
		GeneratedAt: metav1.Now(),
		Days:        []v1alpha1.DaySummary{},
	}

	population := p.Population()
	if len(population) == 0 {
		return snapshot
	}
	snapshot.AverageFitness = finite(framework.NewPopulation(population...).GetAverageFitness())

	ranker, _ := p.algorithm.(framework.Ranker)
	for i, d := range population {
		rank := i
		if ranker != nil {
			rank = ranker.Rank(d)
		}
		snapshot.Days = append(snapshot.Days, p.summarize(d, rank))
	}
	if best := p.BestDay(); best != nil {
		rank := -1
		if ranker != nil {
			rank = ranker.Rank(best)
		}
		summary := p.summarize(best, rank)
		snapshot.Best = &summary
	}
	return snapshot
}

func (p *Planner) summarize(d *framework.Day, rank int) v1alpha1.DaySummary {
	names := p.catalog.NutrientNames()
	summary := v1alpha1.DaySummary{
		Rank:      rank,
		Fitness:   finite(d.Fitness().Value()),
		Mass:      d.Mass(),
		Nutrients: make([]v1alpha1.NutrientValue, len(names)),
		Portions:  make([]v1alpha1.PortionValue, d.Len()),
		Summary:   d.Summary(),
	}
	for i, name := range names {
		summary.Nutrients[i] = v1alpha1.NutrientValue{
			Name:    name,
			Amount:  d.Nutrient(i),
			Penalty: finite(d.Fitness().Penalty(i)),
		}
	}
	for i, portion := range d.Portions() {
		summary.Portions[i] = v1alpha1.PortionValue{Food: portion.Food.Name, Mass: portion.Mass}
	}
	return summary
}

func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return -1
	}
	return v
}
