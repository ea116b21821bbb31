// internal/console/response.go
//
// 本檔負責統一輸出格式：摘要面板、交易紀錄、稽核報告與錯誤訊息。
// 所有輸出都經過 mu，避免與 watchdog 通知交錯。
package console

import (
	"errors"
	"fmt"
	"time"

	"bankdesk/internal/bank"
)

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// writeSummary 輸出帳戶摘要。
func (c *Console) writeSummary(s bank.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !s.Active {
		fmt.Fprintln(c.out, "Name: -  Type: -  Balance: -  Status: Inactive")
		return
	}
	fmt.Fprintf(c.out, "Name: %s  Type: %s  Balance: %s  Status: %s\n",
		s.Holder, s.TypeName, c.money.Format(s.Balance), s.Status())
	if s.Locked {
		fmt.Fprintf(c.out, "Withdrawals locked until %s\n", s.LockUntil.Format(time.TimeOnly))
	}
}

// writeHistory 整份重繪交易紀錄。
func (c *Console) writeHistory(lines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "--- Transaction History ---")
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}

func (c *Console) writeInterestFee(r bank.InterestFee) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch r.Kind {
	case bank.Savings:
		fmt.Fprintf(c.out, "Interest: %s (not applied)\n", c.money.Format(r.Interest))
	case bank.Checking:
		fmt.Fprintf(c.out, "Fee charged: %s\n", c.money.Format(r.Fee))
	}
	fmt.Fprintf(c.out, "Balance: %s\n", c.money.Format(r.Balance))
}

func (c *Console) writeAudit(r bank.AuditReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "ADMIN AUDIT REPORT")
	fmt.Fprintf(c.out, "Account Holder : %s\n", r.Holder)
	fmt.Fprintf(c.out, "Account Type   : %s\n", r.TypeName)
	fmt.Fprintf(c.out, "Balance        : %s\n", c.money.Format(r.Balance))
	fmt.Fprintf(c.out, "Transactions   : %d\n", r.Transactions)
	fmt.Fprintf(c.out, "Audit Time     : %s\n", r.Time.Format(time.DateTime))
	fmt.Fprintf(c.out, "Audit ID       : %s\n", r.ID)
}

// writeErr 統一輸出錯誤。餘額不足時列出請求與可用金額。
func (c *Console) writeErr(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ife *bank.InsufficientFundsError
	if errors.As(err, &ife) {
		fmt.Fprintf(c.out, "error: Insufficient balance. Requested: %s Available: %s\n",
			c.money.Format(ife.Requested), c.money.Format(ife.Available))
		return
	}
	fmt.Fprintf(c.out, "error: %v\n", err)
}
