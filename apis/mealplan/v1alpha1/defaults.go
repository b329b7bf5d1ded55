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
	"k8s.io/utils/ptr"
)

var (
	DefaultPopulationSize = 30

	DefaultPortionCount   = 4
	DefaultPortionMinMass = 10
	DefaultPortionMaxMass = 250

	DefaultTournamentSize        = 3
	DefaultSelectionPressure     = 1.5
	DefaultCrossoverPoints       = 1
	DefaultChanceToMutatePortion = 1.0
	DefaultMutationMassMin       = 1
	DefaultMutationMassMax       = 50
	DefaultAddPortionChance      = 0.05
	DefaultRemovePortionChance   = 0.05

	DefaultColonyPortions      = 30
	DefaultAlpha               = 1.0
	DefaultBeta                = 2.0
	DefaultEvaporationRate     = 0.1
	DefaultPheromoneImportance = 1.0
	DefaultElitism             = 1.0
	DefaultStagnationIters     = 10

	DefaultInitialVelocity = 20.0
)

// SetDefaults_MealPlanArgs fills every optional field left unset.
func SetDefaults_MealPlanArgs(obj *MealPlanArgs) {
	if obj.APIVersion == "" {
		obj.APIVersion = GroupName + "/" + Version
	}
	if obj.Kind == "" {
		obj.Kind = "MealPlanArgs"
	}
	if obj.Algorithm == "" {
		obj.Algorithm = AlgorithmGenetic
	}
	if obj.Fitness == "" {
		obj.Fitness = FitnessSummed
	}
	if obj.PopulationSize == nil {
		obj.PopulationSize = ptr.To(DefaultPopulationSize)
	}
	for i := range obj.Constraints {
		SetDefaults_ConstraintSpec(&obj.Constraints[i])
	}

	if obj.InitialPortions == nil {
		obj.InitialPortions = &PortionSamplingArgs{}
	}
	SetDefaults_PortionSamplingArgs(obj.InitialPortions)

	switch obj.Algorithm {
	case AlgorithmGenetic:
		if obj.Genetic == nil {
			obj.Genetic = &GeneticArgs{}
		}
		SetDefaults_GeneticArgs(obj.Genetic, *obj.PopulationSize)
	case AlgorithmAntColony:
		if obj.AntColony == nil {
			obj.AntColony = &AntColonyArgs{}
		}
		SetDefaults_AntColonyArgs(obj.AntColony)
	case AlgorithmParticleSwarm:
		if obj.ParticleSwarm == nil {
			obj.ParticleSwarm = &ParticleSwarmArgs{}
		}
		SetDefaults_ParticleSwarmArgs(obj.ParticleSwarm)
	}
}

func SetDefaults_ConstraintSpec(obj *ConstraintSpec) {
	if obj.Type == "" {
		obj.Type = ConstraintNull
	}
	if obj.Curve == "" && (obj.Type == ConstraintConverge || obj.Type == ConstraintMinimise) {
		obj.Curve = CurveExponential
	}
}

func SetDefaults_PortionSamplingArgs(obj *PortionSamplingArgs) {
	if obj.Count == nil {
		obj.Count = ptr.To(DefaultPortionCount)
	}
	if obj.MinMass == nil {
		obj.MinMass = ptr.To(DefaultPortionMinMass)
	}
	if obj.MaxMass == nil {
		obj.MaxMass = ptr.To(DefaultPortionMaxMass)
	}
}

// SetDefaults_GeneticArgs defaults the GA block. The elimination count
// defaults to half the population, rounded down to an even number.
func SetDefaults_GeneticArgs(obj *GeneticArgs, populationSize int) {
	if obj.Selection == "" {
		obj.Selection = SelectionTournament
	}
	if obj.TournamentSize == nil {
		obj.TournamentSize = ptr.To(DefaultTournamentSize)
	}
	if obj.SelectionPressure == nil {
		obj.SelectionPressure = ptr.To(DefaultSelectionPressure)
	}
	if obj.CrossoverPoints == nil {
		obj.CrossoverPoints = ptr.To(DefaultCrossoverPoints)
	}
	if obj.EliminationCount == nil {
		n := populationSize / 2
		n -= n % 2
		if n < 2 && populationSize >= 2 {
			n = 2
		}
		obj.EliminationCount = ptr.To(n)
	}
	if obj.ChanceToMutatePortion == nil {
		obj.ChanceToMutatePortion = ptr.To(DefaultChanceToMutatePortion)
	}
	if obj.MutationMassMin == nil {
		obj.MutationMassMin = ptr.To(DefaultMutationMassMin)
	}
	if obj.MutationMassMax == nil {
		obj.MutationMassMax = ptr.To(DefaultMutationMassMax)
	}
	if obj.AddPortionChance == nil {
		obj.AddPortionChance = ptr.To(DefaultAddPortionChance)
	}
	if obj.RemovePortionChance == nil {
		obj.RemovePortionChance = ptr.To(DefaultRemovePortionChance)
	}
}

func SetDefaults_AntColonyArgs(obj *AntColonyArgs) {
	if obj.ColonyPortions == nil {
		obj.ColonyPortions = ptr.To(DefaultColonyPortions)
	}
	if obj.Alpha == nil {
		obj.Alpha = ptr.To(DefaultAlpha)
	}
	if obj.Beta == nil {
		obj.Beta = ptr.To(DefaultBeta)
	}
	if obj.EvaporationRate == nil {
		obj.EvaporationRate = ptr.To(DefaultEvaporationRate)
	}
	if obj.PheromoneImportance == nil {
		obj.PheromoneImportance = ptr.To(DefaultPheromoneImportance)
	}
	if obj.Elitism == nil {
		obj.Elitism = ptr.To(DefaultElitism)
	}
	if obj.StagnationIters == nil {
		obj.StagnationIters = ptr.To(DefaultStagnationIters)
	}
}

func SetDefaults_ParticleSwarmArgs(obj *ParticleSwarmArgs) {
	if obj.InitialVelocity == nil {
		obj.InitialVelocity = ptr.To(DefaultInitialVelocity)
	}
}
