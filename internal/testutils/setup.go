package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stelae-dev/stelae/db"
	"github.com/stelae-dev/stelae/internal/models"
	"gorm.io/gorm"
)

var testDBSeq int64

// SetupDB opens a unique in-memory SQLite database, points the global
// db.DB at it and migrates the schema. The connection is closed when the
// test finishes.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:stelae_%d?mode=memory&cache=shared", seq)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&models.User{}, &models.Design{}, &models.LibraryItem{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db.DB = gdb

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb
}
