// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account 與兩種帳戶型別（儲蓄 / 支票），不含任何顯示或儲存細節。

package bank

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind 為帳戶型別標籤；利息與手續費規則依此分派。
type Kind string

const (
	Savings  Kind = "savings"
	Checking Kind = "checking"
)

// 各型別的固定帳號與費率。
const (
	SavingsID  = 101
	CheckingID = 102
)

var (
	SavingsRate = decimal.NewFromFloat(0.04)
	CheckingFee = decimal.NewFromInt(100)
)

// ParseKind 接受 savings / checking（不分大小寫，亦接受 s / c）。
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "savings", "saving", "s":
		return Savings, nil
	case "checking", "check", "c":
		return Checking, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Valid 回報 k 是否為已知型別。
func (k Kind) Valid() bool {
	return k == Savings || k == Checking
}

// TypeName 回傳顯示用型別名稱。
func (k Kind) TypeName() string {
	switch k {
	case Savings:
		return "SavingsAccount"
	case Checking:
		return "CheckingAccount"
	}
	return "UnknownAccount"
}

// Account represents a bank account.
type Account struct {
	ID      int             `json:"id"`
	Holder  string          `json:"holder"`
	Balance decimal.Decimal `json:"balance"`
	Kind    Kind            `json:"kind"`
}

// NewAccount 依型別建立帳戶，帳號由型別決定。
func NewAccount(kind Kind, holder string, balance decimal.Decimal) (*Account, error) {
	a := &Account{Holder: holder, Balance: balance, Kind: kind}
	switch kind {
	case Savings:
		a.ID = SavingsID
	case Checking:
		a.ID = CheckingID
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return a, nil
}

// Deposit 存款：金額驗證由呼叫端負責，此處只更新餘額。
func (a *Account) Deposit(amt decimal.Decimal) {
	a.Balance = a.Balance.Add(amt)
}

// Withdraw 提款：金額超過餘額時回傳 *InsufficientFundsError，餘額不變。
func (a *Account) Withdraw(amt decimal.Decimal) error {
	if amt.GreaterThan(a.Balance) {
		return &InsufficientFundsError{Requested: amt, Available: a.Balance}
	}
	a.Balance = a.Balance.Sub(amt)
	return nil
}

// CalculateInterest 只計算不入帳；支票帳戶恆為 0。
func (a *Account) CalculateInterest() decimal.Decimal {
	if a.Kind == Savings {
		return a.Balance.Mul(SavingsRate)
	}
	return decimal.Zero
}

// ApplyFee 對支票帳戶扣除固定手續費（允許餘額變負），回傳實際扣除金額。
// 儲蓄帳戶不收費。
func (a *Account) ApplyFee() decimal.Decimal {
	if a.Kind != Checking {
		return decimal.Zero
	}
	a.Balance = a.Balance.Sub(CheckingFee)
	return CheckingFee
}
