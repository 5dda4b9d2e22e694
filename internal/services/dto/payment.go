package dto

import (
	"time"

	"chainwork_backend/internal/models"
)

type RecordPaymentRequest struct {
	TransactionHash string  `json:"transactionHash" validate:"required"`
	Blockchain      string  `json:"blockchain" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"required"`
	Purpose         string  `json:"purpose" validate:"required,oneof=job_posting premium"`
	JobID           *string `json:"jobId,omitempty" validate:"omitempty,uuid"`
}

type PaymentResponse struct {
	ID              string    `json:"id"`
	TransactionHash string    `json:"transactionHash"`
	Blockchain      string    `json:"blockchain"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	Purpose         string    `json:"purpose"`
	JobID           *string   `json:"jobId,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewPaymentResponse(p *models.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID,
		TransactionHash: p.TransactionHash,
		Blockchain:      p.Blockchain,
		Amount:          p.Amount,
		Currency:        p.Currency,
		Purpose:         p.Purpose,
		JobID:           p.JobID,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
	}
}

// WalletInfo is the platform payment destination surfaced to clients.
type WalletInfo struct {
	WalletAddress string   `json:"walletAddress"`
	Blockchains   []string `json:"blockchains"`
	JobPostPrice  float64  `json:"jobPostPrice"`
	Currency      string   `json:"currency"`
}
