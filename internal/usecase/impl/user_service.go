// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "shelf/internal/delivery/context"
	"shelf/internal/domain/entity"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/domain/repository"
	"shelf/internal/domain/service"
	"shelf/internal/infra/metrics"
	"shelf/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	authOpRegister = "register"
	authOpLogin    = "login"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	metrics  service.MetricsRecorder
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Metrics  service.MetricsRecorder `optional:"true"`
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		metrics:  recorderOrNoop(params.Metrics),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser checks the confirmation, hashes the password and stores a user with empty collections.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (output *usecase.RegisterOutput, err error) {
	defer func() { srv.metrics.RecordAuth(authOpRegister, domainerrors.Outcome(err)) }()

	// Compared before hashing so a typo costs no bcrypt work.
	if input.Password != input.Password2 {
		return nil, domainerrors.ErrPasswordMismatch
	}
	if len(input.Password) > entity.MaxPasswordBytes {
		return nil, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("password: max=%d bytes", entity.MaxPasswordBytes))
	}

	srv.log(ctx).Info("Registering user", slog.String("userName", input.UserName))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to hash password")
	}

	user := &entity.User{
		UserName:     input.UserName,
		PasswordHash: hash,
		Favourites:   []string{},
		History:      []string{},
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUserName) {
			srv.log(ctx).Warn("User name already taken", slog.String("userName", input.UserName))

			return nil, domainerrors.ErrDuplicateUserName
		}

		srv.log(ctx).Error("Failed to create user", slog.String("userName", input.UserName), slog.Any("error", err))

		return nil, domainerrors.NewPersistenceError(err, "create user")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: user}, nil
}

// Login verifies the password of the named user. Unknown users and wrong passwords
// stay distinct here; the delivery layer reports them identically.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (output *usecase.LoginOutput, err error) {
	defer func() { srv.metrics.RecordAuth(authOpLogin, domainerrors.Outcome(err)) }()

	user, err := srv.userRepo.FindByName(ctx, input.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Info("Login for unknown user", slog.String("userName", input.UserName))

			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewPersistenceError(err, "find user by name")
	}

	ok, err := srv.hasher.Check(input.Password, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is corrupt", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !ok {
		srv.log(ctx).Info("Incorrect password", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	return &usecase.LoginOutput{User: user}, nil
}

func recorderOrNoop(r service.MetricsRecorder) service.MetricsRecorder {
	if r == nil {
		return metrics.Noop{}
	}

	return r
}
