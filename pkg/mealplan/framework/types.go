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

// Algorithm describes the contract that a search algorithm needs to implement.
// One instance owns its population and random state; instances share nothing.
type Algorithm interface {
	Name() string

	// Init builds the initial population.
	Init() error

	// RunIteration advances exactly one generation and refreshes every
	// cached fitness of the population.
	RunIteration()

	// Population returns the current Days, best first.
	Population() []*Day

	// BestDay returns the best Day found so far, or nil before Init.
	BestDay() *Day
}

// Ranker is implemented by algorithms that keep a ParetoHierarchy of their
// population.
type Ranker interface {
	Rank(*Day) int
}
