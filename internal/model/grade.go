package model

// RiskGrade is a discrete letter grade derived from composite risk,
// ordered from best (GradeAPlus) to worst (GradeD).
type RiskGrade string

const (
	GradeAPlus  RiskGrade = "A+"
	GradeA      RiskGrade = "A"
	GradeAMinus RiskGrade = "A-"
	GradeBPlus  RiskGrade = "B+"
	GradeB      RiskGrade = "B"
	GradeBMinus RiskGrade = "B-"
	GradeCPlus  RiskGrade = "C+"
	GradeC      RiskGrade = "C"
	GradeCMinus RiskGrade = "C-"
	GradeD      RiskGrade = "D"
)

// gradeRanks orders grades best to worst. Rank 0 is the best grade.
var gradeRanks = map[RiskGrade]int{
	GradeAPlus:  0,
	GradeA:      1,
	GradeAMinus: 2,
	GradeBPlus:  3,
	GradeB:      4,
	GradeBMinus: 5,
	GradeCPlus:  6,
	GradeC:      7,
	GradeCMinus: 8,
	GradeD:      9,
}

// Rank returns the grade's position in the ladder (0 = best, 9 = worst).
// Unknown grades rank worst.
func (g RiskGrade) Rank() int {
	if r, ok := gradeRanks[g]; ok {
		return r
	}
	return len(gradeRanks)
}

// Valid reports whether g is one of the ten defined grades.
func (g RiskGrade) Valid() bool {
	_, ok := gradeRanks[g]
	return ok
}
