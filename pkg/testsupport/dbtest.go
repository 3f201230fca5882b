package testsupport

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-pagebuilder/internal/adapters/storage"
)

var dbCounter atomic.Int64

// NewSQLiteDB opens a private in-memory SQLite database for t. Each call gets
// its own database so parallel tests never share rows.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))
	db, err := storage.OpenBun(storage.Config{Dialect: storage.DialectSQLite, DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
