package model

import "time"

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "PENDING"
	StatusApproved ApprovalStatus = "APPROVED"
	StatusRejected ApprovalStatus = "REJECTED"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID                 string         `json:"id"`
	FullName           string         `json:"full_name"`
	Email              string         `json:"email"`
	RegistrationNumber string         `json:"registration_number"`
	PasswordHash       string         `json:"-"`
	Status             ApprovalStatus `json:"status"`
	Role               Role           `json:"role"`
	CreatedAt          time.Time      `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	FullName           string `json:"full_name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Password           string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
