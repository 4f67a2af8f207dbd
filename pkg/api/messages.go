package api

import "time"

// User is the public part of an account.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type SignOutRequest struct{}

type SignOutResponse struct{}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	User *User `json:"user"`
}

// OtherComponent is a user-added checklist entry.
type OtherComponent struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Checked  bool    `json:"checked"`
	Price    float64 `json:"price"`
	PartName string  `json:"partName"`
}

// Checklist is one user's checklist record on the wire.
type Checklist struct {
	UserID          string             `json:"userId"`
	Checklist       map[string]bool    `json:"checklist"`
	Prices          map[string]float64 `json:"prices"`
	PartNames       map[string]string  `json:"partNames"`
	TotalBudget     int64              `json:"totalBudget"`
	Currency        string             `json:"currency"`
	OtherComponents []OtherComponent   `json:"otherComponents"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// GetChecklistRequest selects a record by user ID. An empty UserID means the
// caller's own record.
type GetChecklistRequest struct {
	UserID string `json:"userId,omitempty"`
}

type GetChecklistResponse struct {
	Checklist *Checklist `json:"checklist"`
}

type SaveChecklistRequest struct {
	Checklist *Checklist `json:"checklist"`
}

type SaveChecklistResponse struct {
	UpdatedAt time.Time `json:"updatedAt"`
}

type SaveBudgetRequest struct {
	UserID      string `json:"userId,omitempty"`
	TotalBudget int64  `json:"totalBudget"`
}

type SaveBudgetResponse struct {
	UpdatedAt time.Time `json:"updatedAt"`
}
