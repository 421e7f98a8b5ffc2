package impl

import (
	"context"
	"log/slog"

	"shelf/config"
	deliverycontext "shelf/internal/delivery/context"
	"shelf/internal/domain/entity"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/domain/repository"
	"shelf/internal/domain/service"
	"shelf/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const collectionOpList = "list"

// collectionService implements the CollectionUsecase interface for both favourites and history.
type collectionService struct {
	userRepo repository.UserRepository
	limit    int
	metrics  service.MetricsRecorder
	logger   *slog.Logger
}

// CollectionServiceParams holds dependencies for CollectionService, injected by Fx.
type CollectionServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Config   *config.Config
	Metrics  service.MetricsRecorder `optional:"true"`
	Logger   *slog.Logger
}

// NewCollectionService is the constructor for collectionService.
func NewCollectionService(params CollectionServiceParams) usecase.CollectionUsecase {
	limit := entity.MaxCollectionSize
	if params.Config != nil && params.Config.Collections != nil && params.Config.Collections.MaxSize > 0 {
		limit = min(params.Config.Collections.MaxSize, entity.MaxCollectionSize)
	}

	return &collectionService{
		userRepo: params.UserRepo,
		limit:    limit,
		metrics:  recorderOrNoop(params.Metrics),
		logger:   params.Logger,
	}
}

func (srv *collectionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the members of the collection.
func (srv *collectionService) List(ctx context.Context, userID uuid.UUID, collection entity.Collection) (items []string, err error) {
	defer func() { srv.metrics.RecordCollectionOp(string(collection), collectionOpList, domainerrors.Outcome(err)) }()

	if !collection.IsValid() {
		return nil, domainerrors.ErrUnknownCollection
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, srv.mapRepoError(err, "find user by id")
	}

	return user.Items(collection), nil
}

// Add inserts itemID unless it is already present. A new item is rejected once the collection is full.
func (srv *collectionService) Add(ctx context.Context, userID uuid.UUID, collection entity.Collection, itemID string) ([]string, error) {
	return srv.update(ctx, userID, repository.CollectionUpdate{
		Collection: collection,
		Op:         entity.CollectionOpAdd,
		ItemID:     itemID,
		Limit:      srv.limit,
	})
}

// Remove deletes itemID. Removing a non-member succeeds without change.
func (srv *collectionService) Remove(ctx context.Context, userID uuid.UUID, collection entity.Collection, itemID string) ([]string, error) {
	return srv.update(ctx, userID, repository.CollectionUpdate{
		Collection: collection,
		Op:         entity.CollectionOpRemove,
		ItemID:     itemID,
	})
}

func (srv *collectionService) update(ctx context.Context, userID uuid.UUID, update repository.CollectionUpdate) (items []string, err error) {
	defer func() {
		srv.metrics.RecordCollectionOp(string(update.Collection), string(update.Op), domainerrors.Outcome(err))
	}()

	if !update.Collection.IsValid() {
		return nil, domainerrors.ErrUnknownCollection
	}

	user, err := srv.userRepo.UpdateCollection(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrCollectionFull) {
			srv.log(ctx).Info("Collection is full",
				slog.Any("userID", userID),
				slog.String("collection", string(update.Collection)),
				slog.Int("limit", update.Limit),
			)

			return nil, domainerrors.ErrCollectionFull.WithDetails(string(update.Collection))
		}

		return nil, srv.mapRepoError(err, "update collection")
	}

	srv.log(ctx).Debug("Collection updated",
		slog.Any("userID", userID),
		slog.String("collection", string(update.Collection)),
		slog.String("op", string(update.Op)),
	)

	return user.Items(update.Collection), nil
}

func (srv *collectionService) mapRepoError(err error, operation string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return domainerrors.NewPersistenceError(err, operation)
}
