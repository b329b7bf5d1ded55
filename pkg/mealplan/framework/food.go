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
	"math"
)

// ErrNutrientMismatch is returned when a nutrient vector does not match the
// catalog's nutrient columns.
var ErrNutrientMismatch = errors.New("nutrient vector length does not match catalog")

// Food is an immutable catalog entry. Nutrients holds the amount of every
// catalog nutrient per 100 g.
type Food struct {
	// ID is the position of the food in its catalog.
	ID        int
	Name      string
	Group     string
	Nutrients []float64
}

// Catalog is the finite list of foods a run draws portions from.
type Catalog struct {
	nutrients []string
	foods     []*Food
}

// NewCatalog copies the given foods into a catalog, assigning each its ID.
// Every food must carry one finite, non-negative amount per nutrient.
func NewCatalog(nutrients []string, foods []Food) (*Catalog, error) {
	if len(nutrients) == 0 {
		return nil, errors.New("catalog needs at least one nutrient")
	}
	if len(foods) == 0 {
		return nil, errors.New("catalog needs at least one food")
	}

	c := &Catalog{
		nutrients: append([]string(nil), nutrients...),
		foods:     make([]*Food, len(foods)),
	}
	for i, f := range foods {
		if len(f.Nutrients) != len(nutrients) {
			return nil, fmt.Errorf("food %q has %d nutrients, want %d: %w", f.Name, len(f.Nutrients), len(nutrients), ErrNutrientMismatch)
		}
		for j, v := range f.Nutrients {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return nil, fmt.Errorf("food %q has invalid amount %v for nutrient %q", f.Name, v, nutrients[j])
			}
		}
		c.foods[i] = &Food{
			ID:        i,
			Name:      f.Name,
			Group:     f.Group,
			Nutrients: append([]float64(nil), f.Nutrients...),
		}
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.foods)
}

func (c *Catalog) Food(i int) *Food {
	return c.foods[i]
}

// Foods returns the catalog entries in ID order. The slice must not be modified.
func (c *Catalog) Foods() []*Food {
	return c.foods
}

func (c *Catalog) NutrientCount() int {
	return len(c.nutrients)
}

func (c *Catalog) NutrientNames() []string {
	return append([]string(nil), c.nutrients...)
}
