// internal/storage/store.go

package storage

import (
	"errors"
	"fmt"
	"io"
)

// ErrEmpty 代表儲存區內沒有任何已存檔的帳戶。
var ErrEmpty = errors.New("no snapshot stored")

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store 為兩種後端共同的行為。
type Store interface {
	Save(snap Snapshot) error
	Load() (Snapshot, error)
	io.Closer
}

// Close 讓 JSONStore 滿足 Store；檔案每次存取後即關閉，這裡不需做事。
func (s *JSONStore) Close() error { return nil }

// Open 依設定建立儲存區。
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONStore(path), nil
	case BackendSQLite:
		return OpenSQLStore(path)
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
