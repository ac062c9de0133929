package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.uber.org/zap"
)

// Postgres keeps every collection in a single jsonb table. Each Store call is
// one independent statement; the service layer is written against a store
// with no cross-document transactions, so none are offered here.
type Postgres struct {
	logger *zap.Logger
	pool   *pgxpool.Pool
}

const schema = `create table if not exists record (
	collection text not null,
	id text not null,
	seq bigserial,
	doc jsonb not null,
	primary key (collection, id)
)`

func NewPostgres(l *zap.Logger) *Postgres {
	return &Postgres{logger: l}
}

func (s *Postgres) Connect(ctx context.Context, dsn string) error {
	var err error
	if s.pool, err = pgxpool.Connect(ctx, dsn); err != nil {
		return err
	}
	if _, err = s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("couldn't ensure record table: %w", err)
	}
	return nil
}

func (s *Postgres) Close() error {
	s.pool.Close()
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, collection, id string, dest interface{}) error {
	var doc []byte
	err := s.pool.QueryRow(ctx, `select doc from record where collection = $1 and id = $2`, collection, id).Scan(&doc)
	if err == pgx.ErrNoRows {
		return ErrNoRecord
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(doc, dest)
}

func (s *Postgres) FindAll(ctx context.Context, collection string, filter Filter, dest interface{}) error {
	var (
		q   pgx.Rows
		err error
	)
	if len(filter) == 0 {
		q, err = s.pool.Query(ctx, `select doc from record where collection = $1 order by seq`, collection)
	} else {
		var f []byte
		if f, err = json.Marshal(filter); err != nil {
			return err
		}
		q, err = s.pool.Query(ctx, `select doc from record where collection = $1 and doc @> $2::jsonb order by seq`, collection, string(f))
	}
	if err != nil {
		return err
	}

	defer q.Close()
	docs := make([]json.RawMessage, 0)
	for q.Next() {
		var doc []byte
		if err := q.Scan(&doc); err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	if err := q.Err(); err != nil {
		return err
	}

	arr, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return json.Unmarshal(arr, dest)
}

func (s *Postgres) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	id := uuid.NewString()
	b, err := withID(doc, id)
	if err != nil {
		return "", err
	}
	if _, err := s.pool.Exec(ctx, `insert into record (collection, id, doc) values ($1, $2, $3::jsonb)`, collection, id, string(b)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Postgres) UpdateFields(ctx context.Context, collection, id string, fields Fields) error {
	f, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	t, err := s.pool.Exec(ctx, `update record set doc = doc || $3::jsonb where collection = $1 and id = $2`, collection, id, string(f))
	if err != nil {
		return err
	}
	if t.RowsAffected() == 0 {
		return ErrNoRecord
	}
	return nil
}

func (s *Postgres) DeleteByID(ctx context.Context, collection, id string) error {
	t, err := s.pool.Exec(ctx, `delete from record where collection = $1 and id = $2`, collection, id)
	if err != nil {
		return err
	}
	if t.RowsAffected() == 0 {
		return ErrNoRecord
	}
	return nil
}

// withID marshals doc and stamps the generated id into its "_id" field.
func withID(doc interface{}, id string) ([]byte, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{})
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["_id"] = id
	return json.Marshal(m)
}
