package movestore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// recordingDriver answers Exec calls with a fixed row count and records the
// statements it saw.
type recordingDriver struct {
	mu       sync.Mutex
	queries  []string
	affected int64
}

func (d *recordingDriver) Open(string) (driver.Conn, error) { return &recordingConn{d: d}, nil }

func (d *recordingDriver) seen() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.queries...)
}

type recordingConn struct{ d *recordingDriver }

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *recordingConn) Close() error              { return nil }
func (c *recordingConn) Begin() (driver.Tx, error) { return nil, errors.New("tx not supported") }

func (c *recordingConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.d.mu.Lock()
	defer c.d.mu.Unlock()
	c.d.queries = append(c.d.queries, query)
	return driver.RowsAffected(c.d.affected), nil
}

var driverSeq atomic.Int64

func newRecordingStore(t *testing.T, affected int64) (*PostgresStore, *recordingDriver) {
	t.Helper()
	d := &recordingDriver{affected: affected}
	name := fmt.Sprintf("movestore-recording-%d", driverSeq.Add(1))
	sql.Register(name, d)
	db, err := sql.Open(name, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStoreFromDB(db), d
}

func TestPostgresSaveIsSingleUpdate(t *testing.T) {
	s, d := newRecordingStore(t, 1)
	if err := s.Save(context.Background(), " doc-1 ", "1. e4"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	q := d.seen()
	if len(q) != 1 || !strings.HasPrefix(strings.TrimSpace(q[0]), "UPDATE move_documents") {
		t.Fatalf("expected one UPDATE, got %q", q)
	}
}

func TestPostgresSaveMissingIsNotFound(t *testing.T) {
	s, d := newRecordingStore(t, 0)
	if err := s.Save(context.Background(), "gone", "1. e4"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, q := range d.seen() {
		if strings.Contains(q, "INSERT") {
			t.Fatalf("save must never insert: %q", q)
		}
	}
	if err := s.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}
