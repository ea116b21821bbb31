// internal/bank/anomaly.go

package bank

import "github.com/shopspring/decimal"

// anomalyDetector 以歷史交易金額的移動平均判斷異常。
// 判斷結果僅供提示，不會阻擋交易。
type anomalyDetector struct {
	minSamples int
	factor     decimal.Decimal

	avg   decimal.Decimal
	count int64
}

func newAnomalyDetector(minSamples int, factor decimal.Decimal) *anomalyDetector {
	return &anomalyDetector{minSamples: minSamples, factor: factor}
}

// observe 先以既有平均判斷 amt 是否異常，再把 amt 併入平均（不論是否被標記）。
func (d *anomalyDetector) observe(amt decimal.Decimal) bool {
	flagged := d.count >= int64(d.minSamples) && amt.GreaterThan(d.avg.Mul(d.factor))

	n := decimal.NewFromInt(d.count)
	d.count++
	d.avg = d.avg.Mul(n).Add(amt).Div(decimal.NewFromInt(d.count))
	return flagged
}
