package api

import "github.com/threadboard/threadboard/shared/domain"

// Request DTOs

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response DTOs

type LoginResponse struct {
	User        domain.User `json:"user"`
	AccessToken string      `json:"access_token"`
}
