// Package area computes the derived square-footage fields of a case
// model. A case is measured in inches; its footprint in square feet is
// width * depth / 144. The results are pure functions of width and depth
// and are the single source of truth for the generated database columns.
package area

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for the square-footage
// value. It matches the precision of the generated column in PostgreSQL.
const Scale = 4

var sqInchesPerSqFoot = decimal.NewFromInt(144)

// CaseArea returns width*depth/144 rounded to Scale fractional digits.
// Decimal arithmetic avoids binary float drift for values such as
// 24.00 x 18.00 which must yield exactly 3.0000.
func CaseArea(width, depth decimal.Decimal) decimal.Decimal {
	return width.Mul(depth).DivRound(sqInchesPerSqFoot, Scale)
}

// RoundedCaseArea returns the nearest integer to CaseArea(width, depth),
// ties rounding away from zero.
func RoundedCaseArea(width, depth decimal.Decimal) int64 {
	return CaseArea(width, depth).Round(0).IntPart()
}

// CaseAreaFromFloat is a convenience wrapper for callers that hold
// float64 dimensions (CSV coercion, API responses). The floats are
// converted to decimals before any arithmetic happens.
func CaseAreaFromFloat(width, depth float64) decimal.Decimal {
	return CaseArea(
		decimal.NewFromFloat(width),
		decimal.NewFromFloat(depth),
	)
}
