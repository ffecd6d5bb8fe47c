package order

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/entities"
	"marketplace/internal/service/delivery"
	"marketplace/pkg/logger"
)

type Service struct {
	repository  Repository
	jobs        JobReader
	listings    ListingProvider
	actors      ActorResolver
	calculator  ChargeCalculator
	hookFactory HookFactory
	dispatcher  Dispatcher
	txManager   TxManager
	log         logger.Logger
}

func New(
	repository Repository,
	jobs JobReader,
	listings ListingProvider,
	actors ActorResolver,
	calculator ChargeCalculator,
	hookFactory HookFactory,
	dispatcher Dispatcher,
	txManager TxManager,
	log logger.Logger,
) *Service {
	return &Service{
		repository:  repository,
		jobs:        jobs,
		listings:    listings,
		actors:      actors,
		calculator:  calculator,
		hookFactory: hookFactory,
		dispatcher:  dispatcher,
		txManager:   txManager,
		log:         log,
	}
}

func (s *Service) PlaceOrder(ctx context.Context, actorID int64, placement entities.OrderPlacement) (*entities.Order, error) {
	if placement.PaymentMode == "" {
		placement.PaymentMode = entities.PaymentCOD
	}
	if err := validatePlacement(placement); err != nil {
		return nil, err
	}

	buyer, err := s.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve buyer: %w", err)
	}

	listing, err := s.listings.GetListing(ctx, placement.ListingID)
	if err != nil {
		return nil, err
	}

	if listing.CreatedBy == buyer.ID {
		return nil, ErrSelfOrder
	}
	if listing.ListingType != placement.Action {
		return nil, fmt.Errorf("%w: listing is for %s", ErrActionMismatch, listing.ListingType)
	}

	distance := s.calculator.DistanceKm(placement.BuyerLat, placement.BuyerLon, listing.Latitude, listing.Longitude)
	quote := s.calculator.Quote(listing.Price, placement.Quantity, distance, listing.DeliveryRatePer10Km)

	order, err := s.repository.Create(ctx, entities.OrderCreate{
		ListingID:           listing.ID,
		BuyerID:             buyer.ID,
		SellerID:            listing.CreatedBy,
		Action:              placement.Action,
		Quantity:            placement.Quantity,
		UnitPrice:           listing.Price,
		TotalPrice:          quote.TotalPrice,
		DistanceKm:          quote.DistanceKm,
		DeliveryRatePer10Km: listing.DeliveryRatePer10Km,
		DeliveryCharge:      quote.DeliveryCharge,
		PayableTotal:        quote.PayableTotal,
		PaymentMode:         placement.PaymentMode,
		DeliveryMode:        listing.DeliveryMode,
		BuyerCity:           placement.BuyerCity,
		BuyerAreaCode:       placement.BuyerAreaCode,
		Notes:               placement.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	OrdersPlacedTotal.WithLabelValues(order.Action.String(), order.DeliveryMode.String()).Inc()
	s.dispatcher.Dispatch(placementEffects(order, listing))

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, actorID, orderID int64) (*entities.Order, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}

	actor, err := s.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if !canView(actor, order) {
		return nil, denied(ReasonNotVisible)
	}
	return order, nil
}

func (s *Service) ListOrders(
	ctx context.Context,
	actorID int64,
	scope entities.OrderScope,
	filter entities.OrderFilter,
) ([]entities.Order, entities.Page, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, entities.Page{}, err
	}

	actor, err := s.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, entities.Page{}, fmt.Errorf("resolve actor: %w", err)
	}

	var (
		orders []entities.Order
		total  uint64
	)
	switch scope {
	case entities.ScopeBuyer:
		orders, total, err = s.repository.ListByBuyer(ctx, actor.ID, filter)
	case entities.ScopeSeller:
		orders, total, err = s.repository.ListBySeller(ctx, actor.ID, filter)
	case entities.ScopeDelivery:
		orders, total, err = s.repository.ListByDeliveryPartner(ctx, actor.ID, filter)
	default:
		return nil, entities.Page{}, fmt.Errorf("%w: %q", ErrInvalidScope, scope)
	}
	if err != nil {
		return nil, entities.Page{}, fmt.Errorf("list %s orders: %w", scope, err)
	}

	return orders, entities.Page{Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// UpdateStatus fetch -> authorize -> update -> hook в одной транзакции,
// побочные эффекты уходят в dispatcher только после коммита.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actorID, orderID int64,
	next entities.OrderStatusType,
) (*entities.TransitionResult, error) {
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, next)
	}

	actor, err := s.actors.Resolve(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}

	var (
		previous entities.OrderStatusType
		result   entities.TransitionResult
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		previous = current.Status

		var job *entities.DeliveryJob
		if !actor.IsAdmin() {
			job, err = s.jobs.GetByOrderID(ctx, orderID)
			if err != nil && !errors.Is(err, delivery.ErrJobNotFound) {
				return fmt.Errorf("get delivery job of order: %w", err)
			}
		}

		if err := authorizeTransition(actor, current, job, next); err != nil {
			return err
		}
		if current.Status.IsTerminal() {
			return fmt.Errorf("%w: status is %s", ErrOrderFinalized, current.Status)
		}

		updated, err := s.repository.UpdateStatus(ctx, orderID, next, actor.ID, actor.IsAdmin())
		if err != nil {
			// строка заблокирована выше, сюда попадаем только при гонке с финализацией
			if errors.Is(err, ErrOrderNotFound) {
				return ErrOrderFinalized
			}
			return fmt.Errorf("update order status: %w", err)
		}
		result.Order = updated

		hookFn, err := s.hookFactory.GetHandler(next)
		if err != nil {
			// для статусов без доп. шага ничего не делаем
			if errors.Is(err, ErrUndefinedStatus) {
				return nil
			}
			return err
		}

		hookResult, err := hookFn(ctx, updated)
		if err != nil {
			return fmt.Errorf("transition to %s: %w", next, err)
		}
		if hookResult.Order != nil {
			result.Order = hookResult.Order
		}
		result.DeliveryJob = hookResult.Job
		result.JobCreated = hookResult.JobCreated
		return nil
	})
	if err != nil {
		OrderTransitionsTotal.WithLabelValues(previous.String(), next.String(), transitionOutcome(err)).Inc()
		return nil, err
	}
	OrderTransitionsTotal.WithLabelValues(previous.String(), next.String(), "ok").Inc()

	var audience []int64
	if result.JobCreated {
		audience, err = s.actors.DeliveryAudience(ctx, actor.ID)
		if err != nil {
			// заказ уже в новом статусе, без рассылки курьерам просто теряем уведомления
			s.log.Warn("delivery audience lookup failed",
				logger.NewField("order_id", orderID),
				logger.NewField("error", err),
			)
		}
	}

	result.Effects = transitionEffects(actor, previous, &result, audience)
	s.dispatcher.Dispatch(result.Effects)

	return &result, nil
}

func transitionOutcome(err error) string {
	switch {
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrOrderFinalized):
		return "finalized"
	case errors.Is(err, ErrOrderNotFound):
		return "not_found"
	default:
		return "error"
	}
}
