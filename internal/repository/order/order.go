package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"marketplace/internal/entities"
	"marketplace/internal/repository"
	"marketplace/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	selectColumns = strings.Join(columns, ", ")
	returning     = "RETURNING " + selectColumns
)

var terminalStatuses = []string{
	entities.OrderDelivered.String(),
	entities.OrderCancelled.String(),
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create статус received и оплата cod_due задаются здесь, а не клиентом.
func (r *Repository) Create(ctx context.Context, orderCreate entities.OrderCreate) (*entities.Order, error) {
	if orderCreate.BuyerID == orderCreate.SellerID {
		return nil, order.ErrSelfOrder
	}

	query, args, err := qb.
		Insert("orders").
		Columns(
			"listing_id", "buyer_id", "seller_id", "action", "quantity",
			"unit_price", "total_price", "distance_km", "delivery_rate_per_10km",
			"delivery_charge", "payable_total", "payment_mode", "payment_state",
			"status", "delivery_mode", "buyer_city", "buyer_area_code", "notes",
		).
		Values(
			orderCreate.ListingID,
			orderCreate.BuyerID,
			orderCreate.SellerID,
			orderCreate.Action.String(),
			orderCreate.Quantity,
			orderCreate.UnitPrice,
			orderCreate.TotalPrice,
			orderCreate.DistanceKm,
			orderCreate.DeliveryRatePer10Km,
			orderCreate.DeliveryCharge,
			orderCreate.PayableTotal,
			orderCreate.PaymentMode.String(),
			entities.PaymentDue.String(),
			entities.OrderReceived.String(),
			orderCreate.DeliveryMode.String(),
			orderCreate.BuyerCity,
			orderCreate.BuyerAreaCode,
			orderCreate.Notes,
		).
		Suffix(returning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) &&
			repository.ConstraintName(err) == "orders_buyer_not_seller" {
			return nil, order.ErrSelfOrder
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(orderDB), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Order, error) {
	query := `SELECT ` + selectColumns + `
		FROM orders
		WHERE id = $1`

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return ToDomain(orderDB), nil
}

// GetByIDForUpdate блокирует строку до конца транзакции, переходы одного заказа линейны.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Order, error) {
	query := `SELECT ` + selectColumns + `
		FROM orders
		WHERE id = $1
		FOR UPDATE`

	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, order.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected order repository getbyid for update error: %w", err)
	}

	return ToDomain(orderDB), nil
}

func (r *Repository) ListByBuyer(ctx context.Context, buyerID int64, filter entities.OrderFilter) ([]entities.Order, uint64, error) {
	return r.list(ctx, sq.Eq{"buyer_id": buyerID}, filter)
}

func (r *Repository) ListBySeller(ctx context.Context, sellerID int64, filter entities.OrderFilter) ([]entities.Order, uint64, error) {
	return r.list(ctx, sq.Eq{"seller_id": sellerID}, filter)
}

func (r *Repository) ListByDeliveryPartner(ctx context.Context, partnerID int64, filter entities.OrderFilter) ([]entities.Order, uint64, error) {
	return r.list(ctx, sq.Eq{"delivery_partner_id": partnerID}, filter)
}

// UpdateStatus условный UPDATE: заказ существует, не в финальном статусе и актор
// продавец, назначенный курьер или админ. Иначе ErrOrderNotFound.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	orderID int64,
	next entities.OrderStatusType,
	actorID int64,
	isAdmin bool,
) (*entities.Order, error) {
	builder := qb.
		Update("orders").
		Set("status", next.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID}).
		Where(sq.NotEq{"status": terminalStatuses})

	if !isAdmin {
		builder = builder.Where(sq.Or{
			sq.Eq{"seller_id": actorID},
			sq.Eq{"delivery_partner_id": actorID},
			sq.Expr(`EXISTS (
				SELECT 1 FROM delivery_jobs j
				WHERE j.order_id = orders.id AND j.claimed_by = ? AND j.status <> 'open'
			)`, actorID),
		})
	}

	query, args, err := builder.Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update status error: %w", err)
	}

	return r.updateOne(ctx, "update status", query, args...)
}

func (r *Repository) SetDeliveryPartner(ctx context.Context, orderID int64, partnerID *int64) (*entities.Order, error) {
	query := `UPDATE orders
		SET delivery_partner_id = $2, updated_at = NOW()
		WHERE id = $1
		` + returning

	return r.updateOne(ctx, "set delivery partner", query, orderID, partnerID)
}

func (r *Repository) MarkPaid(ctx context.Context, orderID int64) (*entities.Order, error) {
	query := `UPDATE orders
		SET payment_state = $2, updated_at = NOW()
		WHERE id = $1 AND payment_state = $3
		` + returning

	return r.updateOne(ctx, "mark paid", query, orderID, entities.PaymentPaid.String(), entities.PaymentDue.String())
}

func (r *Repository) updateOne(ctx context.Context, op, query string, args ...any) (*entities.Order, error) {
	orderDB, err := scanOrder(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, order.ErrConcurrentUpdate
		}
		return nil, fmt.Errorf("unexpected order repository %s error: %w", op, err)
	}
	return ToDomain(orderDB), nil
}

func (r *Repository) list(ctx context.Context, owner sq.Eq, filter entities.OrderFilter) ([]entities.Order, uint64, error) {
	where := sq.And{owner}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": filter.Status.String()})
	}

	query, args, err := qb.
		Select(columns...).
		From("orders").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}
	defer rows.Close()

	ordersDB := make([]OrderDB, 0, filter.Limit)
	for rows.Next() {
		orderDB, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
		}
		ordersDB = append(ordersDB, *orderDB)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository list error: %w", err)
	}

	countQuery, countArgs, err := qb.
		Select("COUNT(*)").
		From("orders").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository count error: %w", err)
	}

	var total uint64
	if err := r.querier.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("unexpected order repository count error: %w", err)
	}

	return ToDomainList(ordersDB), total, nil
}
