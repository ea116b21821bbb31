// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的結構模型。
// 該層只負責帳戶的序列化格式與中繼資訊 (Meta)，不涉入商業邏輯。
// Session 狀態（交易紀錄、失敗次數、鎖定時間）不屬於持久化範圍。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta 為所有持久化快照的中繼資料 (metadata)。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_snapshot"
	Version   int       `json:"version"`        // 結構版本號，用於未來升級時比對
	Timestamp time.Time `json:"timestamp"`      // 快照建立時間
	Note      string    `json:"note,omitempty"` // 備註欄
}

// PersistAccount 為帳戶在儲存層的序列化格式。
// Kind 為型別標籤（savings / checking），還原時由 bank 層檢核。
type PersistAccount struct {
	Kind    string          `json:"kind"`
	ID      int             `json:"id"`
	Holder  string          `json:"holder"`
	Balance decimal.Decimal `json:"balance"`
}

// Snapshot 為單一帳戶的完整快照；每次存檔都整份覆寫。
type Snapshot struct {
	Meta    Meta           `json:"_meta"`
	Account PersistAccount `json:"account"`
}
