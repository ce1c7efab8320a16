package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/coin-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/coin-ledger/internal/domain/port/usecase"
)

// TransactionRequest is the body of POST /accounts/:userId/transactions
type TransactionRequest struct {
	Type        string           `json:"type" binding:"required"`
	CoinAmount  int64            `json:"coinAmount" binding:"required"`
	RupeeAmount *decimal.Decimal `json:"rupeeAmount,omitempty"`
	ContentType string           `json:"contentType,omitempty"`
	ContentID   string           `json:"contentId,omitempty"`
	PaymentID   string           `json:"paymentId,omitempty"`
	RefundOf    string           `json:"refundOf,omitempty"`
	Description string           `json:"description,omitempty"`
	Async       bool             `json:"async,omitempty"`
}

// ToUseCase maps the body onto the ledger request for userID
func (r TransactionRequest) ToUseCase(userID string) usecase.CreateTransactionRequest {
	return usecase.CreateTransactionRequest{
		UserID:      userID,
		Type:        r.Type,
		CoinAmount:  r.CoinAmount,
		RupeeAmount: r.RupeeAmount,
		ContentType: r.ContentType,
		ContentID:   r.ContentID,
		PaymentID:   r.PaymentID,
		RefundOf:    r.RefundOf,
		Description: r.Description,
		Async:       r.Async,
	}
}

// EarningRequest is the body of POST /creators/:creatorId/earnings
type EarningRequest struct {
	CoinAmount  int64  `json:"coinAmount" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	ContentID   string `json:"contentId" binding:"required"`
	Description string `json:"description,omitempty"`
}

// WithdrawalRequest is the body of POST /creators/:creatorId/withdrawals
type WithdrawalRequest struct {
	CoinAmount      int64            `json:"coinAmount" binding:"required"`
	RupeeEquivalent *decimal.Decimal `json:"rupeeEquivalent,omitempty"`
	PaymentID       string           `json:"paymentId,omitempty"`
	Description     string           `json:"description,omitempty"`
}

// PurchaseRequest is the body of POST /purchases
type PurchaseRequest struct {
	EventID     string `json:"eventId" binding:"required"`
	ViewerID    string `json:"viewerId" binding:"required"`
	CreatorID   string `json:"creatorId" binding:"required"`
	CoinAmount  int64  `json:"coinAmount" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	ContentID   string `json:"contentId" binding:"required"`
	Description string `json:"description,omitempty"`
}

// EntryResponse represents one ledger entry
type EntryResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	Type        string           `json:"type"`
	CoinAmount  int64            `json:"coinAmount"`
	RupeeAmount *decimal.Decimal `json:"rupeeAmount,omitempty"`
	ContentType string           `json:"contentType,omitempty"`
	ContentID   string           `json:"contentId,omitempty"`
	PaymentID   string           `json:"paymentId,omitempty"`
	EventID     string           `json:"eventId,omitempty"`
	RefundOf    string           `json:"refundOf,omitempty"`
	Status      string           `json:"status"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewEntryResponse converts a ledger entry
func NewEntryResponse(e *entity.LedgerEntry) *EntryResponse {
	if e == nil {
		return nil
	}
	resp := &EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		Type:        string(e.Type),
		CoinAmount:  e.CoinAmount,
		ContentType: string(e.ContentType),
		ContentID:   e.ContentID,
		PaymentID:   e.PaymentID,
		EventID:     e.EventID,
		RefundOf:    e.RefundOf,
		Status:      string(e.Status),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.RupeeAmount.Valid {
		amount := e.RupeeAmount.Decimal
		resp.RupeeAmount = &amount
	}
	return resp
}

// TransactionResponse represents the outcome of a ledger write
type TransactionResponse struct {
	Success     bool           `json:"success"`
	Duplicate   bool           `json:"duplicate"`
	NewBalance  int64          `json:"newBalance"`
	Transaction *EntryResponse `json:"transaction"`
}

// NewTransactionResponse converts a ledger write result
func NewTransactionResponse(r *usecase.TransactionResult) TransactionResponse {
	return TransactionResponse{
		Success:     r.Success,
		Duplicate:   r.Duplicate,
		NewBalance:  r.NewBalance,
		Transaction: NewEntryResponse(r.Transaction),
	}
}

// PurchaseResponse carries both halves of a settled content purchase
type PurchaseResponse struct {
	Duplicate        bool           `json:"duplicate"`
	NewViewerBalance int64          `json:"newViewerBalance"`
	NewEarnerBalance int64          `json:"newEarnerBalance"`
	Spend            *EntryResponse `json:"spend"`
	Earn             *EntryResponse `json:"earn"`
}

// NewPurchaseResponse converts a content purchase result
func NewPurchaseResponse(r *usecase.ContentPurchaseResult) PurchaseResponse {
	return PurchaseResponse{
		Duplicate:        r.Duplicate,
		NewViewerBalance: r.NewViewerBalance,
		NewEarnerBalance: r.NewEarnerBalance,
		Spend:            NewEntryResponse(r.Spend),
		Earn:             NewEntryResponse(r.Earn),
	}
}

// HistoryResponse is one page of an account's ledger
type HistoryResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// NewHistoryResponse converts a history page
func NewHistoryResponse(p *usecase.HistoryPage) HistoryResponse {
	entries := make([]*EntryResponse, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, NewEntryResponse(e))
	}
	return HistoryResponse{Entries: entries, Total: p.Total, Limit: p.Limit, Offset: p.Offset}
}
