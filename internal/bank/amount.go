// internal/bank/amount.go

package bank

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// DefaultCurrency 為預設貨幣符號。
const DefaultCurrency = "₹"

// 金額輸入上限：字元數、小數位數與最大金額。
// 指數寫法如 1e-200000000 會讓後續加總展開成上億位數，因此先行擋下。
const (
	maxAmountText     = 32
	maxFractionDigits = 2
	maxAmountExponent = 12
)

// MaxAmount 為單筆金額上限（不含）。
var MaxAmount = decimal.New(1, maxAmountExponent)

// ParseAmount 將使用者輸入轉為金額；必須為嚴格正數、最多兩位小數且小於 MaxAmount，
// 否則回傳 ErrInvalidAmount。
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxAmountText {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(text)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	// 先看指數再比大小，比較時的 rescale 才有上限
	if exp := d.Exponent(); exp < -maxFractionDigits || exp > maxAmountExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.LessThan(MaxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Money 負責金額顯示：固定兩位小數、千分位分組，例如 ₹1,234.50。
type Money struct {
	Symbol string
}

// Format 回傳 d 的顯示字串。直接由十進位字串分組，不經過 float64。
// 先四捨五入再判斷正負，避免出現 -₹0.00。
func (m Money) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return sign + m.Symbol + whole + "." + frac
	}
	return sign + m.Symbol + humanize.BigComma(n) + "." + frac
}
