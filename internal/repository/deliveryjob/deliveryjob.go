package deliveryjob

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"marketplace/internal/entities"
	"marketplace/internal/repository"
	"marketplace/internal/service/delivery"
)

// nearbyCandidatesLimit сколько ближайших задач из bounding box отдаем на точную
// фильтрацию. Выдача по координатам не длиннее этого числа.
const nearbyCandidatesLimit = 500

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	selectColumns = strings.Join(columns, ", ")
	returning     = "RETURNING " + selectColumns
)

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, jobCreate entities.DeliveryJobCreate) (*entities.DeliveryJob, error) {
	query, args, err := insertBuilder(jobCreate).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery job repository create error: %w", err)
	}

	jobDB, err := scanJob(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("order already has a delivery job: %w", err)
		}
		return nil, fmt.Errorf("unexpected delivery job repository create error: %w", err)
	}

	return ToDomain(jobDB), nil
}

// EnsureForOrder не больше одной задачи на заказ держит частичный уникальный индекс
// по order_id: при конфликте вставка ничего не возвращает и читаем существующую.
func (r *Repository) EnsureForOrder(ctx context.Context, jobCreate entities.DeliveryJobCreate) (*entities.DeliveryJob, bool, error) {
	if jobCreate.OrderID == nil {
		return nil, false, fmt.Errorf("ensure delivery job: order id is required")
	}

	query, args, err := insertBuilder(jobCreate).
		Suffix("ON CONFLICT (order_id) WHERE order_id IS NOT NULL DO NOTHING " + returning).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("unexpected delivery job repository ensure error: %w", err)
	}

	jobDB, err := scanJob(r.querier.QueryRow(ctx, query, args...))
	if err == nil {
		return ToDomain(jobDB), true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("unexpected delivery job repository ensure error: %w", err)
	}

	existing, err := r.GetByOrderID(ctx, *jobCreate.OrderID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.DeliveryJob, error) {
	query := `SELECT ` + selectColumns + `
		FROM delivery_jobs
		WHERE id = $1`

	return r.getOne(ctx, "getbyid", query, id)
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) (*entities.DeliveryJob, error) {
	query := `SELECT ` + selectColumns + `
		FROM delivery_jobs
		WHERE order_id = $1`

	return r.getOne(ctx, "getbyorderid", query, orderID)
}

// Claim compare-and-swap по статусу open. Проигравший получает ErrJobNotClaimable:
// либо 0 строк (read committed), либо serialization failure (serializable).
func (r *Repository) Claim(ctx context.Context, jobID, userID int64) (*entities.DeliveryJob, error) {
	query := `UPDATE delivery_jobs
		SET status = $3, claimed_by = $2, updated_at = NOW()
		WHERE id = $1 AND status = $4
		` + returning

	jobDB, err := scanJob(r.querier.QueryRow(ctx, query, jobID, userID, entities.JobClaimed.String(), entities.JobOpen.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) ||
			repository.IsPgErrorWithCode(err, repository.PgErrSerializationFailure) {
			return nil, delivery.ErrJobNotClaimable
		}
		return nil, fmt.Errorf("unexpected delivery job repository claim error: %w", err)
	}

	return ToDomain(jobDB), nil
}

// UpdateStatus open освобождает задачу (claimed_by = NULL).
func (r *Repository) UpdateStatus(
	ctx context.Context,
	jobID int64,
	next entities.DeliveryJobStatus,
	actorID int64,
	isAdmin bool,
) (*entities.DeliveryJob, error) {
	builder := qb.
		Update("delivery_jobs").
		Set("status", next.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": jobID})

	if next == entities.JobOpen {
		builder = builder.Set("claimed_by", nil)
	}
	if !isAdmin {
		builder = builder.Where(sq.Or{
			sq.Eq{"created_by": actorID},
			sq.Eq{"claimed_by": actorID},
		})
	}

	query, args, err := builder.Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery job repository update status error: %w", err)
	}

	jobDB, err := scanJob(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrJobNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, delivery.ErrJobNotClaimed
		}
		return nil, fmt.Errorf("unexpected delivery job repository update status error: %w", err)
	}

	return ToDomain(jobDB), nil
}

func (r *Repository) Delete(ctx context.Context, jobID, actorID int64, isAdmin bool) (*entities.DeliveryJob, error) {
	builder := qb.
		Delete("delivery_jobs").
		Where(sq.Eq{"id": jobID})

	if !isAdmin {
		builder = builder.Where(sq.Or{
			sq.Eq{"created_by": actorID},
			sq.Eq{"claimed_by": actorID},
		})
	}

	query, args, err := builder.Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery job repository delete error: %w", err)
	}

	jobDB, err := scanJob(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrJobNotFound
		}
		return nil, fmt.Errorf("unexpected delivery job repository delete error: %w", err)
	}

	return ToDomain(jobDB), nil
}

// List с координатами отдает ближайших кандидатов из bounding box без пагинации,
// без координат - страницу по created_at.
func (r *Repository) List(ctx context.Context, filter entities.DeliveryJobFilter) ([]entities.DeliveryJob, error) {
	builder := qb.
		Select(columns...).
		From("delivery_jobs").
		Where(filterWhere(filter))

	if filter.HasLocation() {
		box := newBoundingBox(*filter.Lat, *filter.Lon, filter.RadiusKm)
		builder = builder.
			OrderByClause(box.nearestFirst()).
			OrderBy("id DESC").
			Limit(nearbyCandidatesLimit)
	} else {
		builder = builder.
			OrderBy("created_at DESC", "id DESC").
			Limit(filter.Limit).
			Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery job repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery job repository list error: %w", err)
	}
	defer rows.Close()

	jobsDB := make([]DeliveryJobDB, 0, 16)
	for rows.Next() {
		jobDB, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery job repository list error: %w", err)
		}
		jobsDB = append(jobsDB, *jobDB)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected delivery job repository list error: %w", err)
	}

	return ToDomainList(jobsDB), nil
}

func (r *Repository) Count(ctx context.Context, filter entities.DeliveryJobFilter) (uint64, error) {
	query, args, err := qb.
		Select("COUNT(*)").
		From("delivery_jobs").
		Where(filterWhere(filter)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected delivery job repository count error: %w", err)
	}

	var total uint64
	if err := r.querier.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("unexpected delivery job repository count error: %w", err)
	}
	return total, nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args ...any) (*entities.DeliveryJob, error) {
	jobDB, err := scanJob(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrJobNotFound
		}
		return nil, fmt.Errorf("unexpected delivery job repository %s error: %w", op, err)
	}
	return ToDomain(jobDB), nil
}

func insertBuilder(jobCreate entities.DeliveryJobCreate) sq.InsertBuilder {
	return qb.
		Insert("delivery_jobs").
		Columns(
			"listing_id", "order_id", "created_by", "pickup_city", "pickup_area_code",
			"pickup_latitude", "pickup_longitude", "status", "delivery_mode",
		).
		Values(
			jobCreate.ListingID,
			jobCreate.OrderID,
			jobCreate.CreatedBy,
			jobCreate.PickupCity,
			jobCreate.PickupAreaCode,
			jobCreate.PickupLatitude,
			jobCreate.PickupLongitude,
			entities.JobOpen.String(),
			jobCreate.DeliveryMode.String(),
		)
}

func filterWhere(filter entities.DeliveryJobFilter) sq.And {
	where := sq.And{}
	if filter.Status != nil {
		where = append(where, sq.Eq{"status": filter.Status.String()})
	}
	if filter.HasLocation() {
		where = append(where, newBoundingBox(*filter.Lat, *filter.Lon, filter.RadiusKm).where())
	}
	return where
}
