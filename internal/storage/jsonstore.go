// internal/storage/jsonstore.go
//
// 提供 JSON 快照 (Snapshot) 的序列化與反序列化實作。
// 採「原子寫入」策略：先寫入 .tmp 檔，再以 rename() 取代原檔，
// 寫入中斷時原檔不會被寫壞一半。
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// JSONStore 將快照存放於固定路徑的 JSON 檔。
type JSONStore struct {
	Path string
}

// NewJSONStore 建立指向 path 的 JSON 儲存區。
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{Path: path}
}

// Load 讀取 JSON 快照。檔案不存在時回傳 ErrEmpty；格式錯誤則回傳解析錯誤。
func (s *JSONStore) Load() (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return snap, ErrEmpty
	}
	if err != nil {
		return snap, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return snap, nil
}

// Save 將快照序列化為 JSON 並原子寫入，覆蓋既有檔案。
//  1. 設定 Meta.Storage 與當前時間戳。
//  2. 寫入 path+".tmp" 暫存檔。
//  3. 使用 os.Rename() 取代正式檔案。
func (s *JSONStore) Save(snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Timestamp = time.Now()
	tmp := s.Path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	// 原子替換
	return os.Rename(tmp, s.Path)
}
