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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// GroupName is the API group of the meal planner configuration types.
	GroupName = "mealplan.x-k8s.io"
	// Version is the API version of this package.
	Version = "v1alpha1"
)

// AlgorithmKind selects the search algorithm driving a plan.
// +kubebuilder:validation:Enum=GeneticAlgorithm;AntColony;ParticleSwarm
type AlgorithmKind string

const (
	AlgorithmGenetic       AlgorithmKind = "GeneticAlgorithm"
	AlgorithmAntColony     AlgorithmKind = "AntColony"
	AlgorithmParticleSwarm AlgorithmKind = "ParticleSwarm"
)

// FitnessKind selects how Days are scored and compared.
// +kubebuilder:validation:Enum=Summed;Pareto
type FitnessKind string

const (
	// FitnessSummed scores a Day with the sum of its weighted penalties.
	FitnessSummed FitnessKind = "Summed"
	// FitnessPareto ranks Days by non-dominated sorting of their penalties.
	FitnessPareto FitnessKind = "Pareto"
)

// ConstraintType is the kind of penalty curve attached to a nutrient.
// +kubebuilder:validation:Enum=Null;Range;Converge;Minimise
type ConstraintType string

const (
	ConstraintNull     ConstraintType = "Null"
	ConstraintRange    ConstraintType = "Range"
	ConstraintConverge ConstraintType = "Converge"
	ConstraintMinimise ConstraintType = "Minimise"
)

// CurveKind is the shape of a Converge or Minimise penalty curve.
// +kubebuilder:validation:Enum=Exponential;Manhattan
type CurveKind string

const (
	CurveExponential CurveKind = "Exponential"
	CurveManhattan   CurveKind = "Manhattan"
)

// SelectionKind is the GA parent/elimination selection scheme.
// +kubebuilder:validation:Enum=Tournament;Rank
type SelectionKind string

const (
	SelectionTournament SelectionKind = "Tournament"
	SelectionRank       SelectionKind = "Rank"
)

// MealPlanArgs holds everything needed to construct one optimisation run.
type MealPlanArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Algorithm selects the search algorithm.
	Algorithm AlgorithmKind `json:"algorithm"`

	// Fitness selects the scoring strategy shared by every Day of the run.
	Fitness FitnessKind `json:"fitness,omitempty"`

	// Seed seeds the run's random generator. A nil seed draws a random one.
	Seed *uint64 `json:"seed,omitempty"`

	// PopulationSize is the number of GA individuals, ACO ants or PSO particles.
	PopulationSize *int `json:"populationSize,omitempty"`

	// Constraints holds one entry per nutrient dimension of the catalog,
	// in catalog order.
	Constraints []ConstraintSpec `json:"constraints"`

	// MassLimit is the total Day mass in grams above which MassPenalty
	// is charged per gram. Nil disables the overshoot penalty.
	MassLimit *int `json:"massLimit,omitempty"`

	// MassPenalty is the penalty per gram above MassLimit.
	MassPenalty float64 `json:"massPenalty,omitempty"`

	// InitialPortions describes how random Days and Portions are sampled.
	InitialPortions *PortionSamplingArgs `json:"initialPortions,omitempty"`

	Genetic       *GeneticArgs       `json:"genetic,omitempty"`
	AntColony     *AntColonyArgs     `json:"antColony,omitempty"`
	ParticleSwarm *ParticleSwarmArgs `json:"particleSwarm,omitempty"`
}

// ConstraintSpec configures the penalty curve of one nutrient.
type ConstraintSpec struct {
	// Nutrient is informational and must match the catalog column when set.
	Nutrient string `json:"nutrient,omitempty"`

	Type ConstraintType `json:"type"`

	Min       float64 `json:"min,omitempty"`
	Max       float64 `json:"max,omitempty"`
	Goal      float64 `json:"goal,omitempty"`
	Tolerance float64 `json:"tolerance,omitempty"`
	Weight    float64 `json:"weight,omitempty"`

	// Curve applies to Converge and Minimise constraints.
	Curve CurveKind `json:"curve,omitempty"`
}

// PortionSamplingArgs bounds random Portion generation.
type PortionSamplingArgs struct {
	// Count is the number of portions in a freshly generated Day.
	Count *int `json:"count,omitempty"`
	// MinMass and MaxMass bound the mass of a random Portion in grams.
	MinMass *int `json:"minMass,omitempty"`
	MaxMass *int `json:"maxMass,omitempty"`
}

// GeneticArgs tunes the genetic algorithm.
type GeneticArgs struct {
	Selection SelectionKind `json:"selection,omitempty"`

	// TournamentSize is the number of distinct candidates drawn per tournament.
	TournamentSize *int `json:"tournamentSize,omitempty"`

	// SelectionPressure is the rank selection pressure, in [1, 2].
	SelectionPressure *float64 `json:"selectionPressure,omitempty"`

	// CrossoverPoints is the number of mass-weighted cut points.
	CrossoverPoints *int `json:"crossoverPoints,omitempty"`

	// EliminationCount is the number of individuals replaced per generation.
	EliminationCount *int `json:"eliminationCount,omitempty"`

	// ChanceToMutatePortion is spread over the portions of a Day: each
	// portion mutates with probability ChanceToMutatePortion / portionCount.
	ChanceToMutatePortion *float64 `json:"chanceToMutatePortion,omitempty"`

	// MutationMassMin and MutationMassMax bound the magnitude of a mass change.
	MutationMassMin *int `json:"mutationMassMin,omitempty"`
	MutationMassMax *int `json:"mutationMassMax,omitempty"`

	// AddPortionChance and RemovePortionChance apply once per mutated Day.
	AddPortionChance    *float64 `json:"addPortionChance,omitempty"`
	RemovePortionChance *float64 `json:"removePortionChance,omitempty"`
}

// AntColonyArgs tunes the ant colony optimiser.
type AntColonyArgs struct {
	// ColonyPortions is the number of vertices in the search graph.
	ColonyPortions *int `json:"colonyPortions,omitempty"`

	Alpha *float64 `json:"alpha,omitempty"`
	Beta  *float64 `json:"beta,omitempty"`

	// EvaporationRate is the fraction of pheromone lost per generation.
	EvaporationRate *float64 `json:"evaporationRate,omitempty"`

	// PheromoneImportance is the deposit numerator of each ant.
	PheromoneImportance *float64 `json:"pheromoneImportance,omitempty"`

	// Elitism scales the extra deposit along the best-known path. Zero disables it.
	Elitism *float64 `json:"elitism,omitempty"`

	// StagnationIters is the number of generations between vertex replacements.
	StagnationIters *int `json:"stagnationIters,omitempty"`
}

// ParticleSwarmArgs tunes the particle swarm optimiser.
type ParticleSwarmArgs struct {
	// InitialVelocity bounds the magnitude of each initial velocity component.
	InitialVelocity *float64 `json:"initialVelocity,omitempty"`
}

// FoodCatalog is the nutrient table handed to the optimiser.
type FoodCatalog struct {
	metav1.TypeMeta `json:",inline"`

	// Nutrients names every column of the nutrient vectors.
	Nutrients []string `json:"nutrients"`

	Foods []FoodSpec `json:"foods"`
}

// FoodSpec is one row of the catalog.
type FoodSpec struct {
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`

	// Amounts holds one value per catalog nutrient, per 100 g.
	Amounts []float64 `json:"amounts"`
}

// PlanSnapshot is a read-only view of a population after some iteration.
type PlanSnapshot struct {
	metav1.TypeMeta `json:",inline"`

	Algorithm AlgorithmKind `json:"algorithm"`
	Fitness   FitnessKind   `json:"fitness"`

	// Iteration is the number of completed iterations.
	Iteration int `json:"iteration"`

	// GeneratedAt indicates when the snapshot was taken.
	GeneratedAt metav1.Time `json:"generatedAt"`

	// AverageFitness is the mean scalar fitness of the population, -1 when
	// any Day is infeasible.
	AverageFitness float64 `json:"averageFitness"`

	// Best is the best Day found so far, if any.
	Best *DaySummary `json:"best,omitempty"`

	// Days are ordered best first.
	Days []DaySummary `json:"days"`
}

// DaySummary describes one candidate Day.
type DaySummary struct {
	// Rank is the Pareto rank (0 = best), or the position in the sorted
	// population for summed fitness.
	Rank int `json:"rank"`

	// Fitness is the summed weighted penalty. Infeasible Days report -1.
	Fitness float64 `json:"fitness"`

	// Mass is the total mass in grams.
	Mass int `json:"mass"`

	Nutrients []NutrientValue `json:"nutrients"`
	Portions  []PortionValue  `json:"portions"`

	// Summary is a human-readable one-liner.
	Summary string `json:"summary"`
}

// NutrientValue is the aggregate amount of one nutrient in a Day and its
// penalty. An infeasible penalty is reported as -1.
type NutrientValue struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	Penalty float64 `json:"penalty"`
}

// PortionValue is one food and its mass.
type PortionValue struct {
	Food string `json:"food"`
	Mass int    `json:"mass"`
}
