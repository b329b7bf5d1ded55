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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2/ktesting"
	"sigs.k8s.io/yaml"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan/benchmarks"
)

const swarmConfig = `apiVersion: mealplan.x-k8s.io/v1alpha1
kind: MealPlanArgs
algorithm: ParticleSwarm
fitness: Pareto
seed: 5
populationSize: 8
constraints:
- nutrient: energy
  type: Converge
  max: 4500
  goal: 2000
  tolerance: 2500
  weight: 1
- nutrient: protein
  type: Minimise
  max: 300
  weight: 1
- nutrient: fat
  type: Null
- nutrient: carbohydrate
  type: Range
  max: 700
  weight: 1
- nutrient: fibre
  type: Null
particleSwarm:
  initialVelocity: 10
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunWithSample(t *testing.T) {
	_, ctx := ktesting.NewTestContext(t)
	var out bytes.Buffer
	require.NoError(t, run(ctx, &options{iterations: 3, plotX: 0, plotY: 1}, &out))

	snapshot := &v1alpha1.PlanSnapshot{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), snapshot))
	assert.Equal(t, v1alpha1.AlgorithmGenetic, snapshot.Algorithm)
	assert.Equal(t, 3, snapshot.Iteration)
	assert.Len(t, snapshot.Days, v1alpha1.DefaultPopulationSize)
	require.NotNil(t, snapshot.Best)
}

func TestRunWithFiles(t *testing.T) {
	catalog, err := yaml.Marshal(benchmarks.NewSampleDay().CatalogSpec())
	require.NoError(t, err)

	o := &options{
		config:     writeFile(t, "args.yaml", swarmConfig),
		catalog:    writeFile(t, "foods.yaml", string(catalog)),
		iterations: 4,
		plot:       filepath.Join(t.TempDir(), "plot.html"),
		plotX:      0,
		plotY:      1,
	}
	_, ctx := ktesting.NewTestContext(t)
	var out bytes.Buffer
	require.NoError(t, run(ctx, o, &out))

	assert.Contains(t, out.String(), "algorithm: ParticleSwarm")
	assert.Contains(t, out.String(), "fitness: Pareto")
	assert.FileExists(t, o.plot)
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := map[string]*options{
		"negative iterations": {iterations: -1},
		"missing config":      {config: filepath.Join(t.TempDir(), "missing.yaml")},
		"unknown field":       {config: writeFile(t, "args.yaml", swarmConfig+"colour: blue\n")},
		"catalog only":        {catalog: writeFile(t, "foods.yaml", "nutrients: [a]\nfoods:\n- name: x\n  amounts: [1]\n")},
		"plot axis":           {iterations: 1, plot: filepath.Join(t.TempDir(), "p.html"), plotX: 0, plotY: 7},
	}
	for name, o := range tests {
		t.Run(name, func(t *testing.T) {
			_, ctx := ktesting.NewTestContext(t)
			var out bytes.Buffer
			assert.Error(t, run(ctx, o, &out))
			assert.Zero(t, out.Len())
		})
	}
}
