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
	"errors"
	"fmt"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// NewCatalog converts a FoodCatalog into the catalog the algorithms search.
func NewCatalog(spec *v1alpha1.FoodCatalog) (*framework.Catalog, error) {
	if spec == nil {
		return nil, errors.New("food catalog is required")
	}
	foods := make([]framework.Food, len(spec.Foods))
	for i, f := range spec.Foods {
		foods[i] = framework.Food{Name: f.Name, Group: f.Group, Nutrients: f.Amounts}
	}
	catalog, err := framework.NewCatalog(spec.Nutrients, foods)
	if err != nil {
		return nil, fmt.Errorf("loading food catalog: %w", err)
	}
	return catalog, nil
}
