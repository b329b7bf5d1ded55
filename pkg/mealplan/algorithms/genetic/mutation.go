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
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// mutate perturbs d in place. Each portion changes mass with probability
// ChanceToMutatePortion / portionCount by a signed amount within
// [MutationMassMin, MutationMassMax]; a portion reaching zero grams is
// removed unless it is the last one. A random portion may then be added
// and another removed.
func (g *GeneticAlgorithm) mutate(d *framework.Day) {
	chance := g.config.ChanceToMutatePortion / float64(d.Len())
	for i := d.Len() - 1; i >= 0; i-- {
		if g.rng.Float64() >= chance {
			continue
		}
		delta := g.config.MutationMassMin + g.rng.IntN(g.config.MutationMassMax-g.config.MutationMassMin+1)
		if g.rng.IntN(2) == 0 {
			delta = -delta
		}
		mass := d.Portion(i).Mass + delta
		if mass <= 0 {
			if !d.RemovePortion(i) {
				g.logger.V(4).Info("kept the last portion of a day", "portion", d.Portion(i).String())
			}
			continue
		}
		d.SetMass(i, mass)
	}

	if g.rng.Float64() < g.config.AddPortionChance {
		d.AddPortion(g.config.Sampler.Portion(g.rng))
	}
	if g.rng.Float64() < g.config.RemovePortionChance {
		if !d.RemovePortion(g.rng.IntN(d.Len())) {
			g.logger.V(4).Info("kept the last portion of a day", "portion", d.Portion(0).String())
		}
	}
}
