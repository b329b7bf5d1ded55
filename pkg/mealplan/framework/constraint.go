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
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

// ConstraintKind names one of the closed set of penalty curves.
type ConstraintKind string

const (
	ConstraintNull     ConstraintKind = "Null"
	ConstraintRange    ConstraintKind = "Range"
	ConstraintConverge ConstraintKind = "Converge"
	ConstraintMinimise ConstraintKind = "Minimise"
)

// Curve is the shape of a Converge or Minimise penalty as the amount moves
// away from the optimum.
type Curve string

const (
	CurveExponential Curve = "Exponential"
	CurveManhattan   Curve = "Manhattan"
)

// Constraint turns the amount of one nutrient into a weighted penalty.
// Penalties are never negative and are +Inf for infeasible amounts.
type Constraint interface {
	Kind() ConstraintKind
	Evaluate(amount float64) float64
}

// ConstraintParams is the flat description every constraint kind is built from.
type ConstraintParams struct {
	Kind      ConstraintKind
	Min       float64
	Max       float64
	Goal      float64
	Tolerance float64
	Weight    float64
	Curve     Curve
}

// NewConstraint validates params and builds the matching constraint.
func NewConstraint(path *field.Path, p ConstraintParams) (Constraint, field.ErrorList) {
	var errs field.ErrorList
	if math.IsNaN(p.Weight) || math.IsInf(p.Weight, 0) || p.Weight < 0 {
		errs = append(errs, field.Invalid(path.Child("weight"), p.Weight, "must be finite and non-negative"))
	}

	switch p.Kind {
	case ConstraintNull:
		if len(errs) > 0 {
			return nil, errs
		}
		return NullConstraint{}, nil

	case ConstraintRange:
		errs = append(errs, validateBounds(path, p.Min, p.Max)...)
		if len(errs) > 0 {
			return nil, errs
		}
		return &RangeConstraint{Min: p.Min, Max: p.Max, Weight: p.Weight}, nil

	case ConstraintConverge:
		errs = append(errs, validateBounds(path, p.Min, p.Max)...)
		if math.IsNaN(p.Goal) || p.Goal < p.Min || p.Goal > p.Max {
			errs = append(errs, field.Invalid(path.Child("goal"), p.Goal, "must lie within [min, max]"))
		}
		if !(p.Tolerance > 0) || math.IsInf(p.Tolerance, 1) {
			errs = append(errs, field.Invalid(path.Child("tolerance"), p.Tolerance, "must be positive and finite"))
		}
		errs = append(errs, validateCurve(path, p.Curve)...)
		if len(errs) > 0 {
			return nil, errs
		}
		return &ConvergeConstraint{
			Min:       p.Min,
			Max:       p.Max,
			Goal:      p.Goal,
			Tolerance: p.Tolerance,
			Weight:    p.Weight,
			Curve:     p.Curve,
		}, nil

	case ConstraintMinimise:
		errs = append(errs, validateBounds(path, p.Min, p.Max)...)
		if !(p.Max > 0) {
			errs = append(errs, field.Invalid(path.Child("max"), p.Max, "must be positive for a Minimise constraint"))
		}
		errs = append(errs, validateCurve(path, p.Curve)...)
		if len(errs) > 0 {
			return nil, errs
		}
		return &MinimiseConstraint{Min: p.Min, Limit: p.Max, Weight: p.Weight, Curve: p.Curve}, nil
	}

	supported := []string{string(ConstraintNull), string(ConstraintRange), string(ConstraintConverge), string(ConstraintMinimise)}
	return nil, append(errs, field.NotSupported(path.Child("type"), p.Kind, supported))
}

func validateBounds(path *field.Path, lo, hi float64) field.ErrorList {
	var errs field.ErrorList
	if math.IsNaN(lo) || lo < 0 {
		errs = append(errs, field.Invalid(path.Child("min"), lo, "must be non-negative"))
	}
	if math.IsNaN(hi) || lo > hi {
		errs = append(errs, field.Invalid(path.Child("max"), hi, "must not be less than min"))
	}
	return errs
}

func validateCurve(path *field.Path, c Curve) field.ErrorList {
	switch c {
	case CurveExponential, CurveManhattan:
		return nil
	}
	return field.ErrorList{field.NotSupported(path.Child("curve"), c, []string{string(CurveExponential), string(CurveManhattan)})}
}

// NullConstraint ignores its nutrient.
type NullConstraint struct{}

func (NullConstraint) Kind() ConstraintKind { return ConstraintNull }

func (NullConstraint) Evaluate(float64) float64 { return 0 }

// RangeConstraint is free inside [Min, Max] and infeasible outside.
type RangeConstraint struct {
	Min, Max float64
	Weight   float64
}

func (c *RangeConstraint) Kind() ConstraintKind { return ConstraintRange }

func (c *RangeConstraint) Evaluate(amount float64) float64 {
	if outside(amount, c.Min, c.Max) {
		return math.Inf(1)
	}
	return 0
}

// ConvergeConstraint is free at Goal and rises to +Inf at Goal ± Tolerance.
// Amounts outside [Min, Max] are infeasible as well.
type ConvergeConstraint struct {
	Min, Max  float64
	Goal      float64
	Tolerance float64
	Weight    float64
	Curve     Curve
}

func (c *ConvergeConstraint) Kind() ConstraintKind { return ConstraintConverge }

func (c *ConvergeConstraint) Evaluate(amount float64) float64 {
	if outside(amount, c.Min, c.Max) {
		return math.Inf(1)
	}
	return weighted(c.Weight, curve(c.Curve, math.Abs(amount-c.Goal)/c.Tolerance))
}

// MinimiseConstraint is free at zero and rises to +Inf at Limit.
type MinimiseConstraint struct {
	Min    float64
	Limit  float64
	Weight float64
	Curve  Curve
}

func (c *MinimiseConstraint) Kind() ConstraintKind { return ConstraintMinimise }

func (c *MinimiseConstraint) Evaluate(amount float64) float64 {
	if outside(amount, c.Min, c.Limit) {
		return math.Inf(1)
	}
	// The Converge curve centred on zero, reaching its asymptote at Limit.
	return weighted(c.Weight, curve(c.Curve, math.Abs(amount)/c.Limit))
}

// PartialPenalty scores amount as the running total of a Day that may still
// grow. A total below the constraint's minimum gets a finite penalty of
// 1 + shortfall/min instead of +Inf; amounts past the maximum stay infeasible.
func PartialPenalty(c Constraint, amount float64) float64 {
	var lo float64
	switch c := c.(type) {
	case *RangeConstraint:
		lo = c.Min
	case *ConvergeConstraint:
		lo = c.Min
	case *MinimiseConstraint:
		lo = c.Min
	}
	if lo > 0 && amount < lo-tolerance(lo) {
		return 1 + (lo-amount)/lo
	}
	return normalise(c.Evaluate(amount))
}

// curve maps a normalised distance d (0 at the optimum, 1 at the edge of
// tolerance) to an unweighted penalty.
func curve(kind Curve, d float64) float64 {
	if d >= 1-boundaryEpsilon {
		return math.Inf(1)
	}
	switch kind {
	case CurveManhattan:
		return d / (1 - d)
	default:
		d2 := d * d
		return math.Expm1(d2 / (1 - d2))
	}
}

func weighted(weight, penalty float64) float64 {
	if math.IsInf(penalty, 1) {
		return penalty
	}
	return weight * penalty
}

const boundaryEpsilon = 1e-9

// outside reports whether amount lies outside [lo, hi], ignoring float noise
// within a relative epsilon of either bound.
func outside(amount, lo, hi float64) bool {
	return amount < lo-tolerance(lo) || amount > hi+tolerance(hi)
}

func tolerance(bound float64) float64 {
	return boundaryEpsilon * math.Max(1, math.Abs(bound))
}

// normalise maps NaN and -Inf to +Inf.
func normalise(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return math.Inf(1)
	}
	return v
}
