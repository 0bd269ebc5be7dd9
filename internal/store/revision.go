package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bornholm/sidenav/pkg/sidebar"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var ErrRevisionNotFound = errors.New("revision not found")

var revisionMigrations = []string{
	`CREATE TABLE IF NOT EXISTS revisions (
		id TEXT PRIMARY KEY,
		checksum TEXT NOT NULL,
		content BLOB NOT NULL,
		nodes INTEGER NOT NULL,
		size INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_revisions_created_at ON revisions(created_at);`,
}

const revisionAttributes = "id, checksum, content, nodes, size, created_at"

// Revision is a recorded, checksummed encoding of a built sidebar.
type Revision struct {
	ID        string
	Checksum  string
	Content   []byte
	Nodes     int
	Size      int64
	CreatedAt time.Time
}

func (r *Revision) Sidebar() (sidebar.Sidebar, error) {
	nodes, err := sidebar.DecodeBytes(r.Content)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return nodes, nil
}

// SaveRevision records the given sidebar unless its checksum matches the
// latest revision, in which case the latest revision is returned and created
// is false.
func (s *Store) SaveRevision(ctx context.Context, nodes sidebar.Sidebar) (*Revision, bool, error) {
	content, err := sidebar.EncodeBytes(nodes)
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	sum := sha256.Sum256(content)
	checksum := hex.EncodeToString(sum[:])

	var (
		revision *Revision
		created  bool
	)

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		latest, err := s.latestRevision(conn)
		if err != nil && !errors.Is(err, ErrRevisionNotFound) {
			return errors.WithStack(err)
		}

		if latest != nil && latest.Checksum == checksum {
			revision = latest
			return nil
		}

		revision = &Revision{
			ID:        xid.New().String(),
			Checksum:  checksum,
			Content:   content,
			Nodes:     sidebar.Count(nodes),
			Size:      int64(len(content)),
			CreatedAt: time.Now().UTC(),
		}

		query := fmt.Sprintf("INSERT INTO revisions (%s) VALUES (?, ?, ?, ?, ?, ?)", revisionAttributes)
		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{
				revision.ID,
				revision.Checksum,
				revision.Content,
				revision.Nodes,
				revision.Size,
				revision.CreatedAt.UnixNano(),
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		created = true

		return nil
	})
	if err != nil {
		return nil, false, errors.WithStack(err)
	}

	return revision, created, nil
}

func (s *Store) LatestRevision(ctx context.Context) (*Revision, error) {
	var revision *Revision
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var err error
		revision, err = s.latestRevision(conn)
		return errors.WithStack(err)
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return revision, nil
}

func (s *Store) GetRevision(ctx context.Context, id string) (*Revision, error) {
	var revision *Revision
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM revisions WHERE id = ? LIMIT 1", revisionAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				revision = &Revision{}
				s.bindRevision(stmt, revision)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if revision == nil {
			return errors.Wrapf(ErrRevisionNotFound, "could not find revision '%s'", id)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return revision, nil
}

// ListRevisions returns the most recent revisions first. A limit <= 0 returns
// every revision.
func (s *Store) ListRevisions(ctx context.Context, limit int) ([]*Revision, error) {
	revisions := make([]*Revision, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		if limit <= 0 {
			limit = -1
		}

		query := fmt.Sprintf("SELECT %s FROM revisions ORDER BY created_at DESC, rowid DESC LIMIT ?", revisionAttributes)
		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{limit},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				revision := &Revision{}
				s.bindRevision(stmt, revision)
				revisions = append(revisions, revision)
				return nil
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return revisions, nil
}

func (s *Store) CountRevisions(ctx context.Context) (int64, error) {
	var count int64
	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "SELECT COUNT(id) FROM revisions", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func (s *Store) latestRevision(conn *sqlite.Conn) (*Revision, error) {
	var revision *Revision

	query := fmt.Sprintf("SELECT %s FROM revisions ORDER BY created_at DESC, rowid DESC LIMIT 1", revisionAttributes)
	err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			revision = &Revision{}
			s.bindRevision(stmt, revision)
			return nil
		},
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if revision == nil {
		return nil, errors.WithStack(ErrRevisionNotFound)
	}

	return revision, nil
}

func (s *Store) bindRevision(stmt *sqlite.Stmt, revision *Revision) {
	revision.ID = stmt.ColumnText(0)
	revision.Checksum = stmt.ColumnText(1)

	revision.Content = make([]byte, stmt.ColumnLen(2))
	stmt.ColumnBytes(2, revision.Content)

	revision.Nodes = int(stmt.ColumnInt64(3))
	revision.Size = stmt.ColumnInt64(4)
	revision.CreatedAt = time.Unix(0, stmt.ColumnInt64(5)).UTC()
}
