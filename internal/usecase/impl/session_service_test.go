package impl

import (
	"context"
	"testing"
	"time"

	"shelf/internal/domain/entity"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/domain/repository"
	"shelf/internal/domain/service"
	mockRepo "shelf/internal/mocks/repository"
	mockSvc "shelf/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_Authenticate_Success(t *testing.T) {
	repo := mockRepo.NewMockUserRepository(t)
	tokens := mockSvc.NewMockTokenService(t)
	spy := &spyRecorder{}
	svc := NewSessionService(SessionServiceParams{UserRepo: repo, TokenService: tokens, Metrics: spy, Logger: newDiscardLogger()})

	userID := uuid.New()
	user := &entity.User{ID: userID, UserName: "alice"}
	tokens.EXPECT().ValidateToken("tok").Return(&service.Claims{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	repo.EXPECT().FindByID(mock.Anything, userID).Return(user, nil)

	got, err := svc.Authenticate(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, user, got)
	assert.Equal(t, []recordedOp{{name: "validate", outcome: domainerrors.OutcomeOK}}, spy.auth)
}

func TestSessionService_Authenticate_TokenRejected(t *testing.T) {
	for _, tokenErr := range []error{domainerrors.ErrTokenExpired, domainerrors.ErrInvalidToken} {
		t.Run(tokenErr.Error(), func(t *testing.T) {
			repo := mockRepo.NewMockUserRepository(t)
			tokens := mockSvc.NewMockTokenService(t)
			svc := NewSessionService(SessionServiceParams{UserRepo: repo, TokenService: tokens, Logger: newDiscardLogger()})

			tokens.EXPECT().ValidateToken("tok").Return(nil, errors.Wrap(tokenErr, "parse"))

			got, err := svc.Authenticate(context.Background(), "tok")

			assert.Nil(t, got)
			assert.ErrorIs(t, err, tokenErr)
		})
	}
}

func TestSessionService_Authenticate_UserGone(t *testing.T) {
	repo := mockRepo.NewMockUserRepository(t)
	tokens := mockSvc.NewMockTokenService(t)
	svc := NewSessionService(SessionServiceParams{UserRepo: repo, TokenService: tokens, Logger: newDiscardLogger()})

	userID := uuid.New()
	tokens.EXPECT().ValidateToken("tok").Return(&service.Claims{UserID: userID}, nil)
	repo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.Authenticate(context.Background(), "tok")

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSessionService_Authenticate_StoreFailure(t *testing.T) {
	repo := mockRepo.NewMockUserRepository(t)
	tokens := mockSvc.NewMockTokenService(t)
	svc := NewSessionService(SessionServiceParams{UserRepo: repo, TokenService: tokens, Logger: newDiscardLogger()})

	userID := uuid.New()
	tokens.EXPECT().ValidateToken("tok").Return(&service.Claims{UserID: userID}, nil)
	repo.EXPECT().FindByID(mock.Anything, userID).Return(nil, context.DeadlineExceeded)

	_, err := svc.Authenticate(context.Background(), "tok")

	var pErr *domainerrors.PersistenceError
	assert.ErrorAs(t, err, &pErr)
}
