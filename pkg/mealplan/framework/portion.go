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
	"fmt"

	"github.com/dustin/go-humanize"
)

// Portion is a mass of one food, in grams.
type Portion struct {
	Food *Food
	Mass int
}

func NewPortion(food *Food, mass int) Portion {
	return Portion{Food: food, Mass: mass}
}

// Nutrient returns the amount of nutrient i this portion contributes.
func (p Portion) Nutrient(i int) float64 {
	return contribution(p.Food, i, p.Mass)
}

// Nutrients returns the contribution of the portion to every nutrient.
func (p Portion) Nutrients() []float64 {
	out := make([]float64, len(p.Food.Nutrients))
	for i := range out {
		out[i] = p.Nutrient(i)
	}
	return out
}

// Equal reports whether both portions reference the same food and
// contribute the same nutrient amounts.
func (p Portion) Equal(o Portion) bool {
	if p.Food != o.Food {
		return false
	}
	for i := range p.Food.Nutrients {
		if p.Nutrient(i) != o.Nutrient(i) {
			return false
		}
	}
	return true
}

func (p Portion) String() string {
	return fmt.Sprintf("%s (%s g)", p.Food.Name, humanize.Comma(int64(p.Mass)))
}

func contribution(f *Food, nutrient, mass int) float64 {
	return f.Nutrients[nutrient] * float64(mass) / 100
}
