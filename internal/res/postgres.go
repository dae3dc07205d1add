package res

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/gompdf/invoicepdf/pkg/api"
	"github.com/gompdf/invoicepdf/pkg/invoice"
)

// invoiceQuery returns the whole row as one JSON document so the tolerant
// field decoders apply to database values too.
const invoiceQuery = `SELECT to_jsonb(i) FROM invoices AS i WHERE i.id::text = $1`

// Querier is the part of a pgx pool or connection used to read records
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGSource reads invoices from the invoices table of a PostgreSQL database
type PGSource struct {
	db  Querier
	log *zap.Logger
}

var _ api.Source = (*PGSource)(nil)

// NewPGSource creates a source over an open pool or connection
func NewPGSource(db Querier, log *zap.Logger) *PGSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &PGSource{db: db, log: log}
}

// OpenPGSource connects a pool to dsn. The returned close function releases
// the pool.
func OpenPGSource(ctx context.Context, dsn string, log *zap.Logger) (*PGSource, func(), error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}
	config.MaxConns = 4
	config.MaxConnLifetime = 3 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return NewPGSource(pool, log), pool.Close, nil
}

// Invoice loads the row whose id is id
func (s *PGSource) Invoice(ctx context.Context, id string) (*invoice.Invoice, error) {
	var data []byte
	err := s.db.QueryRow(ctx, invoiceQuery, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", api.ErrInvoiceNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query invoice %s: %w", id, err)
	}

	inv, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", id, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: %s", api.ErrInvoiceNotFound, id)
	}
	s.log.Debug("invoice queried", zap.String("id", id), zap.Int("items", len(inv.Items)))
	return inv, nil
}
