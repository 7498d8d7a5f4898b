package domain

import (
	"errors"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetMe      = "user profile retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"
	MessageSuccessDeleteUser = "user deactivated successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetMe      = "failed to retrieve user profile"
	MessageFailedUpdateUser = "failed to update user"
	MessageFailedDeleteUser = "failed to deactivate user"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrCredentialsInvalid = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user account is disabled")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Username string `json:"username" validate:"required,min=3"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	UpdateUserRequest struct {
		Email    string  `json:"email" validate:"omitempty,email"`
		Username string  `json:"username" validate:"omitempty,min=3"`
		Password string  `json:"password" validate:"omitempty,min=8"`
		Phone    *string `json:"phone" validate:"omitempty"`
		Diet     *string `json:"diet" validate:"omitempty"`
	}

	UserResponse struct {
		ID       string  `json:"id"`
		Email    string  `json:"email"`
		Username string  `json:"username"`
		Phone    *string `json:"phone,omitempty"`
		Diet     *string `json:"diet,omitempty"`
	}
)
