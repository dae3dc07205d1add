package res

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gompdf/invoicepdf/pkg/api"
)

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.data
	return nil
}

type fakeDB struct {
	rows map[string]fakeRow
	sql  string
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.sql = sql
	if row, ok := db.rows[args[0].(string)]; ok {
		return row
	}
	return fakeRow{err: pgx.ErrNoRows}
}

func TestPGSource(t *testing.T) {
	db := &fakeDB{rows: map[string]fakeRow{
		"INV-001": {data: []byte(record)},
		"INV-BAD": {err: errors.New("conn reset")},
		"INV-NIL": {data: []byte("null")},
	}}
	src := NewPGSource(db, nil)

	inv, err := src.Invoice(context.Background(), "INV-001")
	require.NoError(t, err)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Equal(t, invoiceQuery, db.sql)

	_, err = src.Invoice(context.Background(), "INV-404")
	assert.ErrorIs(t, err, api.ErrInvoiceNotFound)

	_, err = src.Invoice(context.Background(), "INV-NIL")
	assert.ErrorIs(t, err, api.ErrInvoiceNotFound)

	_, err = src.Invoice(context.Background(), "INV-BAD")
	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrInvoiceNotFound)
}

func TestOpenPGSourceBadDSN(t *testing.T) {
	_, _, err := OpenPGSource(context.Background(), "postgres://%zz", nil)
	assert.Error(t, err)
}
