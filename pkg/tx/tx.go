package tx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrSerializationFailure = "40001"

// ErrSerialization транзакция проиграла гонку другой serializable транзакции,
// ее можно безопасно повторить целиком.
var ErrSerialization = errors.New("transaction serialization failure")

// Manager открывает транзакцию и кладет ее в ctx, repository.Querier ее подхватывает.
// Вложенный Do переиспользует внешнюю транзакцию.
type Manager struct {
	internal *manager.Manager
	settings pgxv5.Settings
}

type Option func(*options)

type options struct {
	isoLevel pgx.TxIsoLevel
	timeout  time.Duration
}

// WithIsoLevel по умолчанию Serializable: смены статуса и claim
// полагаются на то, что проигравший получит 40001.
func WithIsoLevel(level pgx.TxIsoLevel) Option {
	return func(o *options) {
		o.isoLevel = level
	}
}

// WithTimeout ограничивает время жизни транзакции; 0 без ограничения.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func New(db pgxv5.Transactional, opts ...Option) *Manager {
	o := options{isoLevel: pgx.Serializable}
	for _, opt := range opts {
		opt(&o)
	}

	var trmOpts []settings.Opt
	if o.timeout > 0 {
		trmOpts = append(trmOpts, settings.WithTimeout(o.timeout))
	}

	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		settings: pgxv5.MustSettings(
			settings.Must(trmOpts...),
			pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: o.isoLevel}),
		),
	}
}

// Do 40001 из тела или из commit оборачивает в ErrSerialization.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.internal.DoWithSettings(ctx, m.settings, fn)
	if err != nil && !errors.Is(err, ErrSerialization) && isSerializationFailure(err) {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}
	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrSerializationFailure
}
