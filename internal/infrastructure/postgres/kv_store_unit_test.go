package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-pos/internal/infrastructure/postgres"
)

// fakeQuerier guarda filas en memoria y registra el SQL recibido.
type fakeQuerier struct {
	rows map[string][]byte
	sql  []string
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{rows: map[string][]byte{}}
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = append(f.sql, sql)
	switch {
	case strings.Contains(sql, "INSERT INTO"):
		f.rows[args[0].(string)] = args[1].([]byte)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "DELETE FROM"):
		delete(f.rows, args[0].(string))
		return pgconn.NewCommandTag("DELETE 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql = append(f.sql, sql)
	v, ok := f.rows[args[0].(string)]
	return fakeRow{value: v, found: ok}
}

type fakeRow struct {
	value []byte
	found bool
}

func (r fakeRow) Scan(dest ...any) error {
	if !r.found {
		return pgx.ErrNoRows
	}
	*dest[0].(*[]byte) = r.value
	return nil
}

func TestKVStore_GetSetDeleteSobreKVDocuments(t *testing.T) {
	ctx := t.Context()
	q := newFakeQuerier()
	require.NoError(t, postgres.EnsureSchema(ctx, q))
	kv := postgres.NewKVStore(q)

	v, err := kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, v, "clave ausente devuelve nil")

	require.NoError(t, kv.Set(ctx, "products", []byte(`[]`)))
	v, err = kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)

	require.NoError(t, kv.Delete(ctx, "products"))
	v, err = kv.Get(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, v)

	for _, sql := range q.sql {
		assert.Contains(t, sql, "kv_documents")
	}
}
