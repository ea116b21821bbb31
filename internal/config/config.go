// internal/config/config.go
//
// 讀取 YAML 設定檔；檔案不存在時使用預設值。

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"bankdesk/internal/bank"
	"bankdesk/internal/storage"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type Storage struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type Session struct {
	IdleTimeout           time.Duration `yaml:"idle_timeout"`
	WatchdogInterval      time.Duration `yaml:"watchdog_interval"`
	LockoutDuration       time.Duration `yaml:"lockout_duration"`
	MaxFailedWithdrawals  int           `yaml:"max_failed_withdrawals"`
	ResetStrikesOnSuccess bool          `yaml:"reset_strikes_on_success"`
	// SaveOnExit 為 true 時，結束程式前保存目前帳戶並顯示提示。
	SaveOnExit bool `yaml:"save_on_exit"`
}

type Anomaly struct {
	MinSamples int     `yaml:"min_samples"`
	Factor     float64 `yaml:"factor"`
}

type Display struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

type Log struct {
	Level string `yaml:"level"`
}

// Config 為整個程式的設定。
type Config struct {
	Storage Storage `yaml:"storage"`
	Session Session `yaml:"session"`
	Anomaly Anomaly `yaml:"anomaly"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

// Default 回傳預設設定。
func Default() *Config {
	return &Config{
		Storage: Storage{Backend: storage.BackendJSON, Path: "account.json"},
		Session: Session{
			IdleTimeout:          5 * time.Minute,
			WatchdogInterval:     time.Minute,
			LockoutDuration:      2 * time.Minute,
			MaxFailedWithdrawals: 3,
		},
		Anomaly: Anomaly{MinSamples: 3, Factor: 4},
		Display: Display{CurrencySymbol: bank.DefaultCurrency},
		Log:     Log{Level: "info"},
	}
}

// Load 讀取 path；檔案不存在時回傳預設值。檔案內未出現的欄位保留預設值。
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 檢查各項數值是否可用。
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return errors.New("storage.path must be set")
	}
	if c.Session.IdleTimeout <= 0 {
		return errors.New("session.idle_timeout must be > 0")
	}
	if c.Session.WatchdogInterval <= 0 {
		return errors.New("session.watchdog_interval must be > 0")
	}
	if c.Session.LockoutDuration <= 0 {
		return errors.New("session.lockout_duration must be > 0")
	}
	if c.Session.MaxFailedWithdrawals <= 0 {
		return errors.New("session.max_failed_withdrawals must be > 0")
	}
	if c.Anomaly.MinSamples < 0 {
		return errors.New("anomaly.min_samples must be >= 0")
	}
	if c.Anomaly.Factor <= 0 {
		return errors.New("anomaly.factor must be > 0")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Policy 轉成 bank 層使用的參數。
func (c *Config) Policy() bank.Policy {
	return bank.Policy{
		IdleTimeout:           c.Session.IdleTimeout,
		LockoutDuration:       c.Session.LockoutDuration,
		MaxFailedWithdrawals:  c.Session.MaxFailedWithdrawals,
		ResetStrikesOnSuccess: c.Session.ResetStrikesOnSuccess,
		AnomalyMinSamples:     c.Anomaly.MinSamples,
		AnomalyFactor:         decimal.NewFromFloat(c.Anomaly.Factor),
		Currency:              c.Display.CurrencySymbol,
	}
}

// LogLevel 解析 log.level（debug / info / warn / error）。
func (c *Config) LogLevel() (slog.Level, error) {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(strings.ToUpper(c.Log.Level))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lv, nil
}
