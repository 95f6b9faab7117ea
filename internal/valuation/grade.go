package valuation

import "github.com/wellswap/valuation-engine/internal/model"

// gradeLadder maps composite risk to a letter grade via ordered
// (upperBoundExclusive, grade) pairs. The final entry has no bound, so the
// ladder is total over [0,1].
var gradeLadder = []struct {
	upperBound float64
	grade      model.RiskGrade
}{
	{0.2, model.GradeAPlus},
	{0.3, model.GradeA},
	{0.4, model.GradeAMinus},
	{0.5, model.GradeBPlus},
	{0.6, model.GradeB},
	{0.7, model.GradeBMinus},
	{0.8, model.GradeCPlus},
	{0.9, model.GradeC},
	{0.95, model.GradeCMinus},
}

// GradeRisk maps a composite risk score to its letter grade. Monotonic:
// higher risk never yields a better grade.
func GradeRisk(composite float64) model.RiskGrade {
	for _, step := range gradeLadder {
		if composite < step.upperBound {
			return step.grade
		}
	}
	return model.GradeD
}
