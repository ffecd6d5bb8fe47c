package delivery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"marketplace/internal/entities"
	"marketplace/pkg/logger"
	"marketplace/pkg/tx"
)

// claimAttempts первая попытка и один повтор после serialization failure.
const claimAttempts = 2

type Delivery struct {
	repository Repository
	orders     OrderRepository
	listings   ListingProvider
	actors     ActorResolver
	calculator DistanceCalculator
	dispatcher Dispatcher
	txManager  TxManager
	log        logger.Logger
}

func New(
	repository Repository,
	orders OrderRepository,
	listings ListingProvider,
	actors ActorResolver,
	calculator DistanceCalculator,
	dispatcher Dispatcher,
	txManager TxManager,
	log logger.Logger,
) *Delivery {
	return &Delivery{
		repository: repository,
		orders:     orders,
		listings:   listings,
		actors:     actors,
		calculator: calculator,
		dispatcher: dispatcher,
		txManager:  txManager,
		log:        log,
	}
}

// CreateJob явное создание задачи для объявления (обычно peer_to_peer при публикации).
// Точка забора берется из объявления, если не передана.
func (d *Delivery) CreateJob(ctx context.Context, actorID int64, jobCreate entities.DeliveryJobCreate) (*entities.DeliveryJob, error) {
	actor, err := d.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	listing, err := d.listings.GetListing(ctx, jobCreate.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.CreatedBy != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only the listing owner can request delivery", ErrForbidden)
	}

	jobCreate.CreatedBy = actor.ID
	fillPickupFromListing(&jobCreate, listing)

	job, err := d.repository.Create(ctx, jobCreate)
	if err != nil {
		return nil, fmt.Errorf("create delivery job: %w", err)
	}

	audience, err := d.actors.DeliveryAudience(ctx, actor.ID)
	if err != nil {
		d.log.Warn("delivery audience lookup failed",
			logger.NewField("job_id", job.ID),
			logger.NewField("error", err),
		)
	}
	d.dispatcher.Dispatch(createdEffects(actor, job, audience))

	return job, nil
}

func (d *Delivery) GetJob(ctx context.Context, jobID int64) (*entities.DeliveryJob, error) {
	if jobID <= 0 {
		return nil, ErrInvalidJobID
	}

	job, err := d.repository.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get delivery job: %w", err)
	}
	return job, nil
}

// ListJobs с координатами: БД отдает кандидатов в bounding box, здесь
// точная дистанция, отсев по радиусу, сортировка по удаленности и страница.
func (d *Delivery) ListJobs(ctx context.Context, filter entities.DeliveryJobFilter) ([]entities.DeliveryJob, entities.Page, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, entities.Page{}, err
	}
	page := entities.Page{Limit: filter.Limit, Offset: filter.Offset}

	jobs, err := d.repository.List(ctx, filter)
	if err != nil {
		return nil, entities.Page{}, fmt.Errorf("list delivery jobs: %w", err)
	}

	if !filter.HasLocation() {
		page.Total, err = d.repository.Count(ctx, filter)
		if err != nil {
			return nil, entities.Page{}, fmt.Errorf("count delivery jobs: %w", err)
		}
		return jobs, page, nil
	}

	nearby := make([]entities.DeliveryJob, 0, len(jobs))
	for _, job := range jobs {
		if job.PickupLatitude == nil || job.PickupLongitude == nil {
			continue
		}
		distance := d.calculator.DistanceKm(filter.Lat, filter.Lon, job.PickupLatitude, job.PickupLongitude)
		if distance > filter.RadiusKm {
			continue
		}
		job.DistanceKm = &distance
		nearby = append(nearby, job)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return *nearby[i].DistanceKm < *nearby[j].DistanceKm
	})

	page.Total = uint64(len(nearby))
	if filter.Offset >= page.Total {
		return []entities.DeliveryJob{}, page, nil
	}
	end := min(filter.Offset+filter.Limit, page.Total)
	return nearby[filter.Offset:end], page, nil
}

// ClaimJob CAS по статусу open: из двух одновременных попыток выигрывает одна,
// вторая получает ErrJobAlreadyClaimed. Гонку с параллельной сменой статуса заказа
// повторяем один раз, дальше ErrClaimConflict.
func (d *Delivery) ClaimJob(ctx context.Context, actorID, jobID int64) (*entities.ClaimResult, error) {
	if jobID <= 0 {
		return nil, ErrInvalidJobID
	}

	actor, err := d.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if !actor.IsDelivery() {
		return nil, ErrDeliveryRole
	}

	var result *entities.ClaimResult
	for attempt := 1; ; attempt++ {
		result, err = d.claim(ctx, actor, jobID)
		if !errors.Is(err, tx.ErrSerialization) || attempt >= claimAttempts {
			break
		}
		d.log.Warn("claim raced a concurrent update, retrying",
			logger.NewField("job_id", jobID),
			logger.NewField("error", err),
		)
	}
	if err != nil {
		if errors.Is(err, tx.ErrSerialization) {
			ClaimAttemptsTotal.WithLabelValues("conflict").Inc()
			return nil, fmt.Errorf("%w: %w", ErrClaimConflict, err)
		}
		if !errors.Is(err, ErrJobNotClaimable) {
			ClaimAttemptsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("claim delivery job: %w", err)
		}

		// транзакция уже откатилась, различаем "нет задачи" и "уже занята" отдельным чтением
		if _, getErr := d.repository.GetByID(ctx, jobID); errors.Is(getErr, ErrJobNotFound) {
			ClaimAttemptsTotal.WithLabelValues("not_found").Inc()
			return nil, ErrJobNotFound
		}
		ClaimAttemptsTotal.WithLabelValues("conflict").Inc()
		return nil, ErrJobAlreadyClaimed
	}
	ClaimAttemptsTotal.WithLabelValues("claimed").Inc()

	result.Effects = claimEffects(actor, result.Job, result.Order)
	d.dispatcher.Dispatch(result.Effects)

	return result, nil
}

func (d *Delivery) claim(ctx context.Context, actor entities.Actor, jobID int64) (*entities.ClaimResult, error) {
	result := entities.ClaimResult{}
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		job, err := d.repository.Claim(ctx, jobID, actor.ID)
		if err != nil {
			return err
		}
		result.Job = job

		if job.OrderID == nil {
			return nil
		}

		order, err := d.orders.SetDeliveryPartner(ctx, *job.OrderID, &actor.ID)
		if err != nil {
			return fmt.Errorf("assign delivery partner to order %d: %w", *job.OrderID, err)
		}
		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateJobStatus open снимает исполнителя, claimed только через ClaimJob,
// completed требует исполнителя.
func (d *Delivery) UpdateJobStatus(
	ctx context.Context,
	actorID, jobID int64,
	next entities.DeliveryJobStatus,
) (*entities.DeliveryJob, error) {
	if jobID <= 0 {
		return nil, ErrInvalidJobID
	}
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidJobStatus, next)
	}
	if next == entities.JobClaimed {
		return nil, ErrClaimRequired
	}

	actor, err := d.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	var previous *entities.DeliveryJob
	var updated *entities.DeliveryJob
	err = d.txManager.Do(ctx, func(ctx context.Context) error {
		job, err := d.repository.GetByID(ctx, jobID)
		if err != nil {
			return fmt.Errorf("get delivery job: %w", err)
		}
		previous = job

		if !canManage(actor, job) {
			return fmt.Errorf("%w: only the creator, the delivery partner, or an admin can update this job", ErrForbidden)
		}
		if job.Status.IsTerminal() {
			return fmt.Errorf("%w: status is %s", ErrJobFinalized, job.Status)
		}
		if next == entities.JobCompleted && job.ClaimedBy == nil {
			return ErrJobNotClaimed
		}

		updated, err = d.repository.UpdateStatus(ctx, jobID, next, actor.ID, actor.IsAdmin())
		if err != nil {
			return fmt.Errorf("update delivery job status: %w", err)
		}

		// отпущенная задача больше не закрепляет курьера за заказом
		if next == entities.JobOpen && previous.ClaimedBy != nil && updated.OrderID != nil {
			if _, err := d.orders.SetDeliveryPartner(ctx, *updated.OrderID, nil); err != nil {
				return fmt.Errorf("release delivery partner of order %d: %w", *updated.OrderID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.dispatcher.Dispatch(jobUpdatedEffects(actor, previous, updated))
	return updated, nil
}

// DeleteJob связанный заказ не трогаем: он сохраняет свой статус и delivery_partner_id.
func (d *Delivery) DeleteJob(ctx context.Context, actorID, jobID int64) (*entities.DeliveryJob, error) {
	if jobID <= 0 {
		return nil, ErrInvalidJobID
	}

	actor, err := d.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	job, err := d.repository.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get delivery job: %w", err)
	}
	if !canManage(actor, job) {
		return nil, fmt.Errorf("%w: only the creator, the delivery partner, or an admin can delete this job", ErrForbidden)
	}

	deleted, err := d.repository.Delete(ctx, jobID, actor.ID, actor.IsAdmin())
	if err != nil {
		return nil, fmt.Errorf("delete delivery job: %w", err)
	}

	d.dispatcher.Dispatch(jobDeletedEffects(actor, deleted))
	return deleted, nil
}

func fillPickupFromListing(jobCreate *entities.DeliveryJobCreate, listing *entities.Listing) {
	if jobCreate.PickupCity == "" {
		jobCreate.PickupCity = listing.City
	}
	if jobCreate.PickupAreaCode == "" {
		jobCreate.PickupAreaCode = listing.AreaCode
	}
	if jobCreate.PickupLatitude == nil || jobCreate.PickupLongitude == nil {
		jobCreate.PickupLatitude = listing.Latitude
		jobCreate.PickupLongitude = listing.Longitude
	}
	if jobCreate.DeliveryMode == "" {
		jobCreate.DeliveryMode = listing.DeliveryMode
	}
}
