package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	deliverycontext "shelf/internal/delivery/context"
	"shelf/internal/delivery/http/response"
	"shelf/internal/domain/entity"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const maxItemIDLength = 255

// CollectionHandler serves the favourites and history endpoints.
type CollectionHandler struct {
	uc usecase.CollectionUsecase
}

// NewCollectionHandler is the constructor for CollectionHandler.
func NewCollectionHandler(uc usecase.CollectionUsecase) *CollectionHandler {
	return &CollectionHandler{uc: uc}
}

// List returns a handler that lists the given collection of the current user.
func (h *CollectionHandler) List(collection entity.Collection) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := deliverycontext.GetUser(c)
		if !ok {
			return domainerrors.ErrMissingToken
		}

		items, err := h.uc.List(c.Request().Context(), user.ID, collection)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, map[string][]string{string(collection): items}, "")
	}
}

// Add returns a handler that puts the :id item into the given collection.
func (h *CollectionHandler) Add(collection entity.Collection) echo.HandlerFunc {
	return h.mutate(collection, h.uc.Add)
}

// Remove returns a handler that takes the :id item out of the given collection.
func (h *CollectionHandler) Remove(collection entity.Collection) echo.HandlerFunc {
	return h.mutate(collection, h.uc.Remove)
}

type mutation func(ctx context.Context, userID uuid.UUID, collection entity.Collection, itemID string) ([]string, error)

func (h *CollectionHandler) mutate(collection entity.Collection, apply mutation) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := deliverycontext.GetUser(c)
		if !ok {
			return domainerrors.ErrMissingToken
		}

		itemID, err := itemIDParam(c)
		if err != nil {
			return err
		}

		items, err := apply(c.Request().Context(), user.ID, collection, itemID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, map[string][]string{string(collection): items}, "")
	}
}

// itemIDParam returns the decoded item id. Item ids are opaque, so whitespace is rejected rather than trimmed.
func itemIDParam(c echo.Context) (string, error) {
	itemID, err := url.PathUnescape(c.Param("id"))
	if err != nil {
		return "", domainerrors.ErrValidationFailed.WithDetails("id: malformed escape")
	}
	if itemID == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("id: required")
	}
	if strings.IndexFunc(itemID, unicode.IsSpace) >= 0 {
		return "", domainerrors.ErrValidationFailed.WithDetails("id: must not contain whitespace")
	}
	if utf8.RuneCountInString(itemID) > maxItemIDLength {
		return "", domainerrors.ErrValidationFailed.WithDetails("id: max=255")
	}

	return itemID, nil
}
