// internal/bank/session.go
//
// Session 為單一帳戶的操作控制器：戶名檢核、金額驗證、異常提示、提款鎖定、
// 閒置逾時與稽核快照都在這裡。
// 採單一互斥鎖序列化所有狀態變更；watchdog 與使用者操作共用同一把鎖，
// 因此「存檔後清除」不會與使用者操作交錯。

package bank

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bankdesk/internal/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Store 為 Session 需要的持久化介面，由 storage 套件實作。
type Store interface {
	Save(snap storage.Snapshot) error
	Load() (storage.Snapshot, error)
}

// Policy 收斂所有可調參數；零值不可用，請由 DefaultPolicy 或 config 產生。
type Policy struct {
	IdleTimeout           time.Duration
	LockoutDuration       time.Duration
	MaxFailedWithdrawals  int
	ResetStrikesOnSuccess bool
	AnomalyMinSamples     int
	AnomalyFactor         decimal.Decimal
	Currency              string
}

// DefaultPolicy 回傳預設參數：閒置 5 分鐘、鎖定 2 分鐘、三次失敗即鎖定。
func DefaultPolicy() Policy {
	return Policy{
		IdleTimeout:          5 * time.Minute,
		LockoutDuration:      2 * time.Minute,
		MaxFailedWithdrawals: 3,
		AnomalyMinSamples:    3,
		AnomalyFactor:        decimal.NewFromInt(4),
		Currency:             DefaultCurrency,
	}
}

type EventKind string

const (
	EventSessionExpired EventKind = "session_expired"
	EventSaveFailed     EventKind = "save_failed"
)

// Event 為背景流程（watchdog）要通知使用者的事件。
type Event struct {
	Kind    EventKind
	Message string
	Err     error
}

type Option func(*Session)

// WithClock 替換時間來源，測試用。
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithNotifier 設定事件接收者；回呼一律在釋放鎖之後呼叫。
func WithNotifier(fn func(Event)) Option {
	return func(s *Session) { s.notify = fn }
}

// Session 狀態只存在於程序生命週期內，不會被序列化。
// - acct 為 nil 表示 NoAccount 狀態。
// - anomaly / failedWithdrawals / lockUntil 跨帳戶建立保留。
type Session struct {
	mu     sync.Mutex
	store  Store
	pol    Policy
	money  Money
	now    func() time.Time
	notify func(Event)

	acct              *Account
	history           []string
	anomaly           *anomalyDetector
	failedWithdrawals int
	lockUntil         time.Time
	lastActivity      time.Time
}

// NewSession 建立空白 Session（NoAccount 狀態）。
func NewSession(store Store, pol Policy, opts ...Option) *Session {
	s := &Session{
		store:   store,
		pol:     pol,
		money:   Money{Symbol: pol.Currency},
		now:     time.Now,
		anomaly: newAnomalyDetector(pol.AnomalyMinSamples, pol.AnomalyFactor),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lastActivity = s.now()
	return s
}

// Money 回傳此 Session 使用的金額格式。
func (s *Session) Money() Money { return s.money }

// Summary 為帳戶摘要面板的資料。
type Summary struct {
	Active            bool
	ID                int
	Holder            string
	Kind              Kind
	TypeName          string
	Balance           decimal.Decimal
	Locked            bool
	LockUntil         time.Time
	CanWithdraw       bool
	FailedWithdrawals int
	History           []string
}

// Status 回傳 Active / Inactive。
func (s Summary) Status() string {
	if s.Active {
		return "Active"
	}
	return "Inactive"
}

// InterestFee 為「利息 / 手續費」操作的結果。
type InterestFee struct {
	Kind     Kind
	Interest decimal.Decimal
	Fee      decimal.Decimal
	Balance  decimal.Decimal
}

// AuditReport 為唯讀稽核快照，不寫入任何狀態。
type AuditReport struct {
	ID           string
	Holder       string
	TypeName     string
	Balance      decimal.Decimal
	Transactions int
	Time         time.Time
}

// Create 建立新帳戶並取代目前帳戶；交易紀錄從頭開始。
func (s *Session) Create(kind Kind, name, initialText string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.touch()

	if name == "" {
		return Summary{}, ErrInvalidName
	}
	amt, err := ParseAmount(initialText)
	if err != nil {
		return Summary{}, err
	}
	a, err := NewAccount(kind, name, amt)
	if err != nil {
		return Summary{}, err
	}
	s.acct = a
	s.history = []string{"Account created with " + s.money.Format(amt)}
	slog.Info("account created", slog.String("holder", name), slog.String("kind", string(kind)))
	return s.summaryLocked(now), nil
}

// Deposit 存款：戶名檢核 → 金額驗證 → 異常提示 → 入帳。
func (s *Session) Deposit(name, amountText string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.touch()

	if s.acct == nil {
		return Summary{}, ErrNoAccount
	}
	if err := s.checkHolder(name); err != nil {
		return s.summaryLocked(now), err
	}
	amt, err := ParseAmount(amountText)
	if err != nil {
		return s.summaryLocked(now), err
	}
	s.observe(amt)
	s.acct.Deposit(amt)
	s.history = append(s.history, "Deposited "+s.money.Format(amt))
	return s.summaryLocked(now), nil
}

// Withdraw 提款：鎖定檢查優先，鎖定期間完全不碰帳戶也不計失敗次數。
// 餘額不足時累加失敗次數，達上限即鎖定提款。
func (s *Session) Withdraw(name, amountText string) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.touch()

	if s.acct == nil {
		return Summary{}, ErrNoAccount
	}
	if now.Before(s.lockUntil) {
		return s.summaryLocked(now), ErrAccountLocked
	}
	if err := s.checkHolder(name); err != nil {
		return s.summaryLocked(now), err
	}
	amt, err := ParseAmount(amountText)
	if err != nil {
		return s.summaryLocked(now), err
	}

	if err := s.acct.Withdraw(amt); err != nil {
		s.failedWithdrawals++
		if s.failedWithdrawals >= s.pol.MaxFailedWithdrawals {
			s.lockUntil = now.Add(s.pol.LockoutDuration)
			s.history = append(s.history,
				fmt.Sprintf("🔒 Account locked for %s due to failures", formatDuration(s.pol.LockoutDuration)))
			slog.Warn("withdrawals locked",
				slog.String("holder", s.acct.Holder),
				slog.Int("failed_withdrawals", s.failedWithdrawals),
				slog.Time("lock_until", s.lockUntil))
		}
		return s.summaryLocked(now), err
	}

	s.observe(amt)
	s.history = append(s.history, "Withdrawn "+s.money.Format(amt))
	if s.pol.ResetStrikesOnSuccess {
		s.failedWithdrawals = 0
	}
	return s.summaryLocked(now), nil
}

// InterestOrFee 儲蓄帳戶只計算利息（不入帳）；支票帳戶直接扣手續費。
func (s *Session) InterestOrFee() (InterestFee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.acct == nil {
		return InterestFee{}, ErrNoAccount
	}
	res := InterestFee{Kind: s.acct.Kind}
	switch s.acct.Kind {
	case Savings:
		res.Interest = s.acct.CalculateInterest()
		s.history = append(s.history, "Interest calculated "+s.money.Format(res.Interest))
	case Checking:
		res.Fee = s.acct.ApplyFee()
		s.history = append(s.history, "Fee charged "+s.money.Format(res.Fee))
	}
	res.Balance = s.acct.Balance
	return res, nil
}

// Summary 回傳目前摘要；NoAccount 時 Active 為 false。
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.touch()
	return s.summaryLocked(now)
}

// History 回傳交易紀錄的拷貝。
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Save 將目前帳戶寫入儲存區。失敗會記錄 log 並回傳，由顯示層以非阻斷方式提示。
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if s.acct == nil {
		return ErrNoAccount
	}
	return s.saveLocked()
}

// Load 由儲存區還原帳戶。任何讀取失敗都只記錄 log，對外一律回報 ErrNoSavedAccount。
func (s *Session) Load() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.touch()

	snap, err := s.store.Load()
	if err != nil {
		slog.Warn(err.Error(), slog.String("op", "load"))
		return s.summaryLocked(now), ErrNoSavedAccount
	}
	a, err := restoreAccount(snap.Account)
	if err != nil {
		slog.Warn(err.Error(), slog.String("op", "load"))
		return s.summaryLocked(now), ErrNoSavedAccount
	}
	s.acct = a
	s.history = []string{"Account loaded with " + s.money.Format(a.Balance)}
	slog.Info("account loaded", slog.String("holder", a.Holder), slog.String("kind", string(a.Kind)))
	return s.summaryLocked(now), nil
}

// Audit 產生唯讀稽核報告；不算使用者活動，也不寫入任何狀態。
func (s *Session) Audit() (AuditReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.acct == nil {
		return AuditReport{}, ErrNoAccount
	}
	return AuditReport{
		ID:           "AUD-" + uuid.NewString(),
		Holder:       s.acct.Holder,
		TypeName:     s.acct.Kind.TypeName(),
		Balance:      s.acct.Balance,
		Transactions: len(s.history),
		Time:         s.now(),
	}, nil
}

// Clear 明確結束目前帳戶（Active → NoAccount），不存檔。
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.clearLocked()
}

// CheckInactivity 為 watchdog 的單次檢查：閒置超過門檻且有帳戶時，
// 先存檔、再清除帳戶與紀錄，並通知使用者。回傳是否觸發逾時。
func (s *Session) CheckInactivity() bool {
	s.mu.Lock()
	if s.acct == nil || s.now().Sub(s.lastActivity) <= s.pol.IdleTimeout {
		s.mu.Unlock()
		return false
	}

	var events []Event
	msg := "Session expired due to inactivity. Account auto-saved."
	if err := s.saveLocked(); err != nil {
		msg = "Session expired due to inactivity. Auto-save failed."
		events = append(events, Event{Kind: EventSaveFailed, Message: "auto-save failed", Err: err})
	}
	holder := s.acct.Holder
	s.clearLocked()
	s.mu.Unlock()

	slog.Info("session expired", slog.String("holder", holder))
	events = append(events, Event{Kind: EventSessionExpired, Message: msg})
	s.emit(events...)
	return true
}

// touch 記錄使用者活動時間並回傳目前時間；呼叫端需持有鎖。
func (s *Session) touch() time.Time {
	now := s.now()
	s.lastActivity = now
	return now
}

func (s *Session) checkHolder(name string) error {
	if name != s.acct.Holder {
		return ErrHolderMismatch
	}
	return nil
}

func (s *Session) observe(amt decimal.Decimal) {
	if s.anomaly.observe(amt) {
		s.history = append(s.history, "⚠ Anomalous transaction detected: "+s.money.Format(amt))
		slog.Warn("anomalous transaction", slog.String("amount", amt.String()))
	}
}

func (s *Session) saveLocked() error {
	a := s.acct
	snap := storage.Snapshot{
		Meta: storage.Meta{Version: 1},
		Account: storage.PersistAccount{
			Kind:    string(a.Kind),
			ID:      a.ID,
			Holder:  a.Holder,
			Balance: a.Balance,
		},
	}
	if err := s.store.Save(snap); err != nil {
		slog.Error(err.Error(), slog.String("op", "save"), slog.String("holder", a.Holder))
		return fmt.Errorf("save account: %w", err)
	}
	slog.Info("account saved", slog.String("holder", a.Holder))
	return nil
}

func (s *Session) clearLocked() {
	s.acct = nil
	s.history = nil
}

func (s *Session) summaryLocked(now time.Time) Summary {
	sum := Summary{
		Locked:            now.Before(s.lockUntil),
		LockUntil:         s.lockUntil,
		FailedWithdrawals: s.failedWithdrawals,
		History:           append([]string(nil), s.history...),
	}
	if a := s.acct; a != nil {
		sum.Active = true
		sum.ID = a.ID
		sum.Holder = a.Holder
		sum.Kind = a.Kind
		sum.TypeName = a.Kind.TypeName()
		sum.Balance = a.Balance
		sum.CanWithdraw = a.Balance.IsPositive()
	}
	return sum
}

func (s *Session) emit(events ...Event) {
	if s.notify == nil {
		return
	}
	for _, ev := range events {
		s.notify(ev)
	}
}

// restoreAccount 將持久化格式轉回 Account，型別不符視為損毀。
func restoreAccount(pa storage.PersistAccount) (*Account, error) {
	kind := Kind(pa.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, pa.Kind)
	}
	a, err := NewAccount(kind, pa.Holder, pa.Balance)
	if err != nil {
		return nil, err
	}
	if pa.ID != 0 {
		a.ID = pa.ID
	}
	return a, nil
}

func formatDuration(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return d.String()
}
