package session

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/notekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notekeeper/internal/dbx"
)

// Persister stores a Record between runs.
type Persister interface {
	// Load returns the stored record and whether a token entry exists.
	Load(ctx context.Context) (Record, bool, error)
	// Save replaces the stored record in one operation.
	Save(ctx context.Context, rec Record) error
	// Erase removes the record and the legacy keys in one operation.
	Erase(ctx context.Context) error
}

// SQLitePersister keeps the record in the metadata table, one row per field.
type SQLitePersister struct {
	db *sql.DB
}

func NewSQLitePersister(db *sql.DB) *SQLitePersister {
	return &SQLitePersister{db: db}
}

// Load reads the three fields in one statement. Without a token row the
// other fields are ignored and a zero Record is returned.
func (p *SQLitePersister) Load(ctx context.Context) (Record, bool, error) {
	m, err := metadata.NewSQLiteRepository(p.db).List(ctx, KeyToken, KeyUserID, KeyUsername)
	if err != nil {
		return Record{}, false, err
	}

	token, ok := m[KeyToken]
	if !ok {
		return Record{}, false, nil
	}
	return Record{Token: string(token), UserID: string(m[KeyUserID]), Username: string(m[KeyUsername])}, true, nil
}

func (p *SQLitePersister) Save(ctx context.Context, rec Record) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, []byte(rec.Token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserID, []byte(rec.UserID)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUsername, []byte(rec.Username))
	})
}

func (p *SQLitePersister) Erase(ctx context.Context) error {
	keys := append([]string{KeyToken, KeyUserID, KeyUsername}, LegacyKeys...)
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, keys...)
	})
}

// MemoryPersister keeps the record in memory only.
type MemoryPersister struct {
	mu      sync.Mutex
	rec     Record
	present bool
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(context.Context) (Record, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rec, p.present, nil
}

func (p *MemoryPersister) Save(_ context.Context, rec Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rec, p.present = rec, true
	return nil
}

func (p *MemoryPersister) Erase(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rec, p.present = Record{}, false
	return nil
}
