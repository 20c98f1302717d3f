package dto

import "time"

// CreateBlockedDateRequest entrada para bloquear un período de la agenda.
type CreateBlockedDateRequest struct {
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
}

// BlockedDateResponse salida de un bloqueo.
type BlockedDateResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConflictingEventDTO evento que impide crear un bloqueo.
type ConflictingEventDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
}

// ConflictResponse error 409 con los eventos en conflicto.
type ConflictResponse struct {
	Code    string                `json:"code"`
	Message string                `json:"message"`
	Events  []ConflictingEventDTO `json:"events"`
}
