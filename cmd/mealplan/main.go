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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	"sigs.k8s.io/meal-planner/apis/mealplan/v1alpha1"
	"sigs.k8s.io/meal-planner/pkg/mealplan"
	"sigs.k8s.io/meal-planner/pkg/mealplan/benchmarks"
	"sigs.k8s.io/meal-planner/pkg/mealplan/framework"
	"sigs.k8s.io/meal-planner/pkg/mealplan/util"
)

type options struct {
	config     string
	catalog    string
	iterations int
	plot       string
	plotX      int
	plotY      int
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.config, "config", o.config, "Path to a MealPlanArgs YAML file. Without it the sample targets are used.")
	fs.StringVar(&o.catalog, "catalog", o.catalog, "Path to a FoodCatalog YAML file. Without it the sample catalog is used.")
	fs.IntVar(&o.iterations, "iterations", o.iterations, "Number of iterations to run.")
	fs.StringVar(&o.plot, "plot", o.plot, "Write an HTML scatter plot of the final population to this path.")
	fs.IntVar(&o.plotX, "plot-x", o.plotX, "Nutrient index on the plot's x axis.")
	fs.IntVar(&o.plotY, "plot-y", o.plotY, "Nutrient index on the plot's y axis.")
}

func main() {
	o := &options{iterations: 100, plotX: 0, plotY: 1}
	o.addFlags(pflag.CommandLine)

	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	pflag.CommandLine.AddGoFlagSet(klogFlags)
	pflag.Parse()
	defer klog.Flush()

	ctx := klog.NewContext(context.Background(), klog.Background())
	if err := run(ctx, o, os.Stdout); err != nil {
		klog.ErrorS(err, "meal planning failed")
		klog.Flush()
		os.Exit(1)
	}
}

func run(ctx context.Context, o *options, out io.Writer) error {
	logger := klog.FromContext(ctx)
	if o.iterations < 0 {
		return fmt.Errorf("--iterations must be non-negative, got %d", o.iterations)
	}

	sample := benchmarks.NewSampleDay()
	catalogSpec := sample.CatalogSpec()
	if o.catalog != "" {
		catalogSpec = &v1alpha1.FoodCatalog{}
		if err := decodeFile(o.catalog, catalogSpec); err != nil {
			return err
		}
	}
	catalog, err := mealplan.NewCatalog(catalogSpec)
	if err != nil {
		return err
	}

	args := sample.Args(v1alpha1.AlgorithmGenetic, v1alpha1.FitnessSummed, 0)
	args.Seed = nil
	if o.config != "" {
		args = &v1alpha1.MealPlanArgs{}
		if err := decodeFile(o.config, args); err != nil {
			return err
		}
	} else if o.catalog != "" {
		return errors.New("--config is required with --catalog")
	}

	planner, err := mealplan.New(ctx, args, catalog)
	if err != nil {
		return err
	}
	if err := planner.Init(); err != nil {
		return err
	}
	for i := 0; i < o.iterations; i++ {
		if err := planner.NextIteration(); err != nil {
			return err
		}
	}
	logger.V(2).Info("run finished", "algorithm", planner.Name(), "iterations", planner.Iteration(), "seed", planner.Seed())

	if o.plot != "" {
		names := catalog.NutrientNames()
		if o.plotX < 0 || o.plotX >= len(names) || o.plotY < 0 || o.plotY >= len(names) {
			return fmt.Errorf("--plot-x and --plot-y must be within [0, %d)", len(names))
		}
		ranker, _ := planner.Algorithm().(framework.Ranker)
		err := util.PlotPopulation(o.plot, planner.Population(), ranker, util.PlotOptions{
			Title: fmt.Sprintf("%s after %d iterations", planner.Name(), planner.Iteration()),
			X:     o.plotX,
			Y:     o.plotY,
			XName: names[o.plotX],
			YName: names[o.plotY],
		})
		if err != nil {
			return fmt.Errorf("plotting population: %w", err)
		}
	}

	data, err := yaml.Marshal(planner.Snapshot())
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func decodeFile(path string, obj interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}
