// internal/storage/sqlstore.go
//
// 以 gorm + SQLite 實作的儲存區。
// 與 JSON 版相同語意：只保存一個帳戶，存檔即覆寫（slot 固定為 1）。
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const accountSlot = 1

// SavedAccount 為 saved_accounts 資料表的列。
type SavedAccount struct {
	Slot      uint            `gorm:"primarykey"`
	Kind      string          `gorm:"not null"`
	AccountID int             `gorm:"not null"`
	Holder    string          `gorm:"not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Version   int
	Note      string
	UpdatedAt time.Time
}

func (SavedAccount) TableName() string {
	return "saved_accounts"
}

// SQLStore 以 gorm 存取 SQLite。
type SQLStore struct {
	db *gorm.DB
}

// OpenSQLStore 開啟（或建立）path 指向的 SQLite 檔並自動建表。
func OpenSQLStore(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewSQLStore(db)
}

// NewSQLStore 使用既有連線；會執行 AutoMigrate。
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&SavedAccount{}); err != nil {
		return nil, fmt.Errorf("migrate saved_accounts: %w", err)
	}
	return &SQLStore{db: db}, nil
}

// Save 以 upsert 覆寫唯一的帳戶列。
func (s *SQLStore) Save(snap Snapshot) error {
	row := SavedAccount{
		Slot:      accountSlot,
		Kind:      snap.Account.Kind,
		AccountID: snap.Account.ID,
		Holder:    snap.Account.Holder,
		Balance:   snap.Account.Balance,
		Version:   snap.Meta.Version,
		Note:      snap.Meta.Note,
		UpdatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot"}},
		UpdateAll: true,
	}).Create(&row).Error
}

// Load 讀回帳戶列；尚未存檔時回傳 ErrEmpty。
func (s *SQLStore) Load() (Snapshot, error) {
	var row SavedAccount
	err := s.db.First(&row, accountSlot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrEmpty
	}
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Meta: Meta{
			Storage:   "sqlite",
			Version:   row.Version,
			Timestamp: row.UpdatedAt,
			Note:      row.Note,
		},
		Account: PersistAccount{
			Kind:    row.Kind,
			ID:      row.AccountID,
			Holder:  row.Holder,
			Balance: row.Balance,
		},
	}, nil
}

// Close 關閉底層連線。
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
