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

package util

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
)

// PlotOptions selects the two nutrient penalties placed on the axes.
type PlotOptions struct {
	Title string
	// X and Y are nutrient indices into the catalog.
	X, Y int
	// XName and YName label the axes.
	XName, YName string
}

// PlotPopulation writes a scatter plot of the population's penalties for
// two nutrients to an HTML file at path.
func PlotPopulation(path string, population []*framework.Day, ranker framework.Ranker, o PlotOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return RenderPopulation(f, population, ranker, o)
}

// RenderPopulation renders the scatter plot to w. Days of Pareto rank 0
// form their own series when ranker is set. Infeasible penalties cannot be
// drawn and those Days are left out.
func RenderPopulation(w io.Writer, population []*framework.Day, ranker framework.Ranker, o PlotOptions) error {
	if len(population) == 0 {
		return fmt.Errorf("population is empty, nothing to plot for %q", o.Title)
	}
	n := population[0].Evaluator().NutrientCount()
	if o.X < 0 || o.X >= n || o.Y < 0 || o.Y >= n {
		return fmt.Errorf("nutrients %d and %d must be within [0, %d)", o.X, o.Y, n)
	}

	// Create scatter chart
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: o.Title,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: o.XName + " penalty",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: o.YName + " penalty",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	var front, rest []opts.ScatterData
	for _, d := range population {
		x, y := d.Fitness().Penalty(o.X), d.Fitness().Penalty(o.Y)
		if math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		point := opts.ScatterData{
			Name:       d.String(),
			Value:      []float64{x, y},
			Symbol:     "circle",
			SymbolSize: 10,
		}
		if ranker != nil && ranker.Rank(d) == 0 {
			point.Symbol = "triangle"
			front = append(front, point)
			continue
		}
		rest = append(rest, point)
	}

	// Add data series
	scatter.AddSeries("Population", rest)
	if ranker != nil {
		scatter.AddSeries("Rank 0", front)
	}
	scatter.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{
			Show: opts.Bool(false),
		}),
		charts.WithEmphasisOpts(opts.Emphasis{}),
	)

	return scatter.Render(w)
}
