// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"shelf/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	UserName  string `json:"userName" validate:"required,max=255"`
	Password  string `json:"password" validate:"required,max=72"`
	Password2 string `json:"password2" validate:"required,max=72"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	UserName string `json:"userName" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the user whose credentials were verified.
type LoginOutput struct {
	User *entity.User
}

// UserUsecase defines the interface for registration and login.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
