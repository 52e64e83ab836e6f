// Package money adds currency amounts in decimal arithmetic.
package money

import (
	"math"

	"github.com/cockroachdb/apd/v3"
)

var decimalContext = apd.BaseContext.WithPrecision(34)

// Sum adds values in decimal so totals carry no binary drift.
// Non-finite values are skipped.
func Sum(values []float64) float64 {
	var total apd.Decimal
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		var d apd.Decimal
		if _, err := d.SetFloat64(v); err != nil {
			continue
		}
		if _, err := decimalContext.Add(&total, &total, &d); err != nil {
			continue
		}
	}
	f, err := total.Float64()
	if err != nil {
		return 0
	}
	return f
}

// Round rounds f half away from zero to two decimal places.
func Round(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	var d apd.Decimal
	if _, err := d.SetFloat64(f); err != nil {
		return math.Round(f*100) / 100
	}
	var r apd.Decimal
	if _, err := decimalContext.Quantize(&r, &d, -2); err != nil {
		return math.Round(f*100) / 100
	}
	out, err := r.Float64()
	if err != nil {
		return 0
	}
	return out
}
