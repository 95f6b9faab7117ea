package valuation

import (
	"math"

	"github.com/wellswap/valuation-engine/internal/model"
)

// defaultProjectionGrowth applies when the snapshot carries no usable growth
// signal.
const defaultProjectionGrowth = 0.05

// ProjectValue compounds the surrender value forward to the standard
// horizons. The half-year term uses half the annual rate rather than the
// compounded root, matching how brokers quote the six-month figure.
func ProjectValue(surrenderValue, growthRate float64) model.MarketProjections {
	if growthRate <= 0 {
		growthRate = defaultProjectionGrowth
	}

	return model.MarketProjections{
		SixMonth:  surrenderValue * (1 + growthRate*0.5),
		OneYear:   surrenderValue * (1 + growthRate),
		ThreeYear: surrenderValue * math.Pow(1+growthRate, 3),
		FiveYear:  surrenderValue * math.Pow(1+growthRate, 5),
	}
}
