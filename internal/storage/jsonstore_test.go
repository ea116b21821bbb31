// internal/storage/jsonstore_test.go
//
// 驗證 JSON 快照的寫入與讀回，並確認缺檔、損毀檔的錯誤行為。
// 使用 t.TempDir() 確保測試不汙染本機環境。
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.json")
	st := NewJSONStore(path)

	orig := Snapshot{
		Meta: Meta{Version: 1, Note: "test"},
		Account: PersistAccount{
			Kind:    "savings",
			ID:      101,
			Holder:  "Asha",
			Balance: decimal.RequireFromString("1200.50"),
		},
	}
	require.NoError(t, st.Save(orig))

	_, err := os.Stat(path)
	require.NoError(t, err, "snapshot not written")
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "tmp file should be renamed away")

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "json_snapshot", loaded.Meta.Storage)
	assert.Equal(t, 1, loaded.Meta.Version)
	assert.False(t, loaded.Meta.Timestamp.IsZero())
	assert.Equal(t, orig.Account.Kind, loaded.Account.Kind)
	assert.Equal(t, orig.Account.ID, loaded.Account.ID)
	assert.Equal(t, orig.Account.Holder, loaded.Account.Holder)
	assert.True(t, orig.Account.Balance.Equal(loaded.Account.Balance))
}

func TestJSONSaveOverwrites(t *testing.T) {
	st := NewJSONStore(filepath.Join(t.TempDir(), "account.json"))

	require.NoError(t, st.Save(Snapshot{Account: PersistAccount{Kind: "savings", Holder: "A", Balance: decimal.NewFromInt(1)}}))
	require.NoError(t, st.Save(Snapshot{Account: PersistAccount{Kind: "checking", Holder: "B", Balance: decimal.NewFromInt(2)}}))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "B", loaded.Account.Holder)
	assert.Equal(t, "checking", loaded.Account.Kind)
}

func TestJSONLoadMissing(t *testing.T) {
	st := NewJSONStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := st.Load()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestJSONLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONStore(path).Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmpty)
}

func TestJSONSaveUnwritableDir(t *testing.T) {
	st := NewJSONStore(filepath.Join(t.TempDir(), "missing", "account.json"))
	assert.Error(t, st.Save(Snapshot{}))
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	js, err := Open(BackendJSON, filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, js)
	assert.NoError(t, js.Close())

	sq, err := Open(BackendSQLite, filepath.Join(dir, "a.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, sq)
	assert.NoError(t, sq.Close())

	_, err = Open("redis", "x")
	assert.Error(t, err)
}
