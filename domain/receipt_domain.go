package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessSubmitReceipt = "receipt saved successfully"
	MessageSuccessGetReceipts   = "receipts retrieved successfully"
	MessageSuccessDeleteReceipt = "receipt deleted successfully"
	MessageSuccessDraftReceipt  = "receipt draft prepared"

	MessageFailedSubmitReceipt = "failed to save receipt"
	MessageFailedGetReceipts   = "failed to retrieve receipts"
	MessageFailedDeleteReceipt = "failed to delete receipt"
	MessageFailedDraftReceipt  = "failed to prepare receipt draft"

	ErrReceiptNotFound = errors.New("receipt not found")
	ErrEmptyItems      = errors.New("receipt has no items")
	ErrInvalidDate     = errors.New("invalid purchase date")
)

type (
	SubmitReceiptItem struct {
		Name      string   `json:"name" validate:"required"`
		Quantity  int      `json:"quantity" validate:"omitempty,min=0"`
		UnitPrice *float64 `json:"unit_price"`
		Category  *string  `json:"category"`
		Calories  *float64 `json:"calories"`
		Protein   *float64 `json:"protein"`
		Fat       *float64 `json:"fat"`
		Carbs     *float64 `json:"carbs"`
	}

	SubmitReceiptRequest struct {
		ID           string              `json:"id" validate:"omitempty,uuid"`
		Store        string              `json:"store" validate:"required"`
		PurchaseDate string              `json:"purchase_date" validate:"required"`
		Status       string              `json:"status" validate:"omitempty"`
		Items        []SubmitReceiptItem `json:"items" validate:"required,min=1,dive"`
	}

	ReceiptItemResponse struct {
		Sequence    int      `json:"sequence"`
		Name        string   `json:"name"`
		Quantity    int      `json:"quantity"`
		UnitPrice   *float64 `json:"unit_price,omitempty"`
		Category    *string  `json:"category,omitempty"`
		Calories    *float64 `json:"calories,omitempty"`
		Protein     *float64 `json:"protein,omitempty"`
		Fat         *float64 `json:"fat,omitempty"`
		Carbs       *float64 `json:"carbs,omitempty"`
		NeedsReview bool     `json:"needs_review"`
	}

	ReceiptResponse struct {
		ID           string                `json:"id"`
		Store        string                `json:"store"`
		PurchaseDate time.Time             `json:"purchase_date"`
		Status       string                `json:"status"`
		Items        []ReceiptItemResponse `json:"items"`
	}

	// DraftItem is one scanned, normalized and enriched line, ready for the
	// client to review before submitting the receipt.
	DraftItem struct {
		Sequence    int      `json:"sequence"`
		Name        string   `json:"name"`
		Quantity    int      `json:"quantity"`
		UnitPrice   *float64 `json:"unit_price,omitempty"`
		Category    *string  `json:"category,omitempty"`
		Calories    *float64 `json:"calories,omitempty"`
		Protein     *float64 `json:"protein,omitempty"`
		Fat         *float64 `json:"fat,omitempty"`
		Carbs       *float64 `json:"carbs,omitempty"`
		NeedsReview bool     `json:"needs_review"`
		Status      string   `json:"status"`
	}

	ScanToDraftResponse struct {
		ImageURL string      `json:"image_url,omitempty"`
		Store    *string     `json:"store,omitempty"`
		Date     *string     `json:"date,omitempty"`
		Items    []DraftItem `json:"items"`
	}
)
