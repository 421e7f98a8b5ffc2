package validator

import (
	"strings"
	"testing"

	domainerrors "shelf/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	UserName string `json:"userName" validate:"required,max=5"`
	Password string `json:"password" validate:"required"`
}

func TestRequestValidator_Validate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sample{UserName: "bob", Password: "x"}))

	err := v.Validate(&sample{UserName: strings.Repeat("a", 6)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details(), "userName: max=5")
	assert.Contains(t, appErr.Details(), "password: required")
}
