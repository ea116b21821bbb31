// internal/console/handler.go
//
// Package console 提供終端機操作介面，作為 bank.Session 的顯示層。
// 每個 handler 僅負責：
//  1. 解析指令參數
//  2. 呼叫 Session 執行業務邏輯
//  3. 透過 response.go 的輔助函式輸出結果
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"bankdesk/internal/bank"
)

var errUsage = errors.New("usage")

// Console 將文字指令轉成 Session 操作。
// 輸出以 mu 序列化，因為 watchdog 事件會從其他 goroutine 進來。
type Console struct {
	Session *bank.Session

	mu     sync.Mutex
	out    io.Writer
	money  bank.Money
	routes map[string]route
}

// New 建立 Console；輸出寫到 out。
func New(s *bank.Session, out io.Writer) *Console {
	return &Console{
		Session: s,
		out:     out,
		money:   s.Money(),
		routes:  routes(),
	}
}

// Notify 顯示背景事件，可作為 bank.WithNotifier 的回呼。
func (c *Console) Notify(ev bank.Event) {
	if ev.Err != nil {
		c.printf("notice: %s: %v\n", ev.Message, ev.Err)
		return
	}
	c.printf("notice: %s\n", ev.Message)
}

// Shutdown 於程式結束時呼叫。saveOnExit 為 true 才保存目前帳戶，
// 並明確告知使用者結果；沒有帳戶時不輸出。
func (c *Console) Shutdown(saveOnExit bool) {
	if !saveOnExit {
		return
	}
	err := c.Session.Save()
	switch {
	case errors.Is(err, bank.ErrNoAccount):
	case err != nil:
		c.printf("warning: save on exit failed: %v\n", err)
	default:
		c.printf("Account saved on exit.\n")
	}
}

// Run 逐行讀取指令直到 EOF、quit 或 ctx 結束。
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	c.printf("Bank Account Management System (type 'help' for commands)\n")
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.printf("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		if quit := c.Exec(sc.Text()); quit {
			return nil
		}
	}
}

// Exec 執行單行指令；回傳 true 表示使用者要求結束。
func (c *Console) Exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name := strings.ToLower(fields[0])
	if name == "quit" || name == "exit" {
		return true
	}
	rt, ok := c.routes[name]
	if !ok {
		c.writeErr(fmt.Errorf("unknown command %q (try 'help')", fields[0]))
		return false
	}
	if err := rt.run(c, fields[1:]); err != nil {
		if errors.Is(err, errUsage) {
			c.printf("usage: %s\n", rt.usage)
			return false
		}
		c.writeErr(err)
	}
	return false
}

// create 處理：create <savings|checking> <name> <amount>
func (c *Console) create(args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	kind, err := bank.ParseKind(args[0])
	if err != nil {
		return err
	}
	name, amount := splitNameAmount(args[1:])
	sum, err := c.Session.Create(kind, name, amount)
	if err != nil {
		return err
	}
	c.writeHistory(sum.History)
	c.writeSummary(sum)
	return nil
}

// deposit 處理：deposit <name> <amount>
func (c *Console) deposit(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	name, amount := splitNameAmount(args)
	sum, err := c.Session.Deposit(name, amount)
	if err != nil {
		return err
	}
	c.writeHistory(sum.History)
	c.writeSummary(sum)
	return nil
}

// withdraw 處理：withdraw <name> <amount>
// 失敗時仍輸出交易紀錄，因為鎖定訊息會寫在紀錄裡。
func (c *Console) withdraw(args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	name, amount := splitNameAmount(args)
	sum, err := c.Session.Withdraw(name, amount)
	if err != nil {
		if errors.Is(err, bank.ErrInsufficientFunds) {
			c.writeHistory(sum.History)
		}
		return err
	}
	c.writeHistory(sum.History)
	c.writeSummary(sum)
	return nil
}

func (c *Console) interest(args []string) error {
	res, err := c.Session.InterestOrFee()
	if err != nil {
		return err
	}
	c.writeInterestFee(res)
	return nil
}

func (c *Console) balance(args []string) error {
	c.writeSummary(c.Session.Summary())
	return nil
}

func (c *Console) history(args []string) error {
	c.writeHistory(c.Session.History())
	return nil
}

// save 失敗只顯示警告，不中斷使用者操作。
func (c *Console) save(args []string) error {
	err := c.Session.Save()
	switch {
	case errors.Is(err, bank.ErrNoAccount):
		return err
	case err != nil:
		c.printf("warning: %v\n", err)
	default:
		c.printf("Account saved.\n")
	}
	return nil
}

func (c *Console) load(args []string) error {
	sum, err := c.Session.Load()
	if err != nil {
		return err
	}
	c.writeHistory(sum.History)
	c.writeSummary(sum)
	return nil
}

func (c *Console) audit(args []string) error {
	rep, err := c.Session.Audit()
	if err != nil {
		return err
	}
	c.writeAudit(rep)
	return nil
}

func (c *Console) clear(args []string) error {
	c.Session.Clear()
	c.printf("Account cleared.\n")
	return nil
}

func (c *Console) help(args []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "Commands:")
	for _, name := range commandOrder {
		fmt.Fprintf(c.out, "  %s\n", c.routes[name].usage)
	}
	fmt.Fprintln(c.out, "  quit")
	return nil
}

// splitNameAmount 以最後一個欄位為金額，其餘組回戶名（允許含空白）。
func splitNameAmount(args []string) (name, amount string) {
	last := len(args) - 1
	return strings.Join(args[:last], " "), args[last]
}
