// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 這些錯誤皆屬可恢復錯誤：由觸發的使用者操作接住，再由 console 層轉成訊息顯示，
// 不會讓程式結束。

package bank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount 代表金額非數字或 <= 0。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds 代表提款金額超過餘額。
	// 實際回傳的是 *InsufficientFundsError，可用 errors.Is 比對此值。
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrAccountLocked 代表仍在鎖定時間窗內，提款一律拒絕。
	ErrAccountLocked = errors.New("account temporarily locked")

	// ErrHolderMismatch 代表輸入的戶名與目前帳戶不符。
	ErrHolderMismatch = errors.New("account name mismatch")

	// ErrNoAccount 代表目前沒有載入任何帳戶（NoAccount 狀態）。
	ErrNoAccount = errors.New("no account loaded")

	// ErrNoSavedAccount 代表儲存區沒有可還原的帳戶（檔案不存在、損毀或型別不符）。
	ErrNoSavedAccount = errors.New("no saved account")

	ErrInvalidName = errors.New("holder name must not be empty")
	ErrUnknownKind = errors.New("unknown account type")
)

// InsufficientFundsError 帶出請求金額與可用餘額，供顯示層組出完整訊息。
type InsufficientFundsError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: requested %s, available %s",
		ErrInsufficientFunds, e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

// Is 讓 errors.Is(err, ErrInsufficientFunds) 成立。
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
