package domain

import (
	"errors"
)

var (
	MessageSuccessScanReceipt = "receipt scanned successfully"

	MessageFailedScanReceipt = "failed to scan receipt"
	MessageFailedOcrUpstream = "receipt OCR unavailable"

	// ErrOcrFormat means the OCR process ran but produced output that does
	// not decode as a receipt document.
	ErrOcrFormat = errors.New("unparsable OCR output")
	// ErrOcrExecution means the OCR process itself failed to run.
	ErrOcrExecution = errors.New("OCR execution failed")
	ErrOcrTimeout   = errors.New("OCR timed out")
	ErrNoImage      = errors.New("no image provided")
	ErrInvalidImage = errors.New("invalid image encoding")
)

type (
	// RawLineItem mirrors one entry of the OCR collaborator's output.
	// Every field is optional; absence is expected, not an error.
	RawLineItem struct {
		Name        *string  `json:"item_name,omitempty"`
		Description *string  `json:"item_description,omitempty"`
		Quantity    *float64 `json:"item_quantity,omitempty"`
		TotalPrice  *float64 `json:"item_total_price,omitempty"`
		Category    *string  `json:"item_category,omitempty"`
	}

	// RawReceiptDocument is the structured document the OCR collaborator
	// returns for one receipt image.
	RawReceiptDocument struct {
		Store     *string       `json:"store,omitempty"`
		Date      *string       `json:"date,omitempty"`
		LineItems []RawLineItem `json:"line_items"`
	}

	ScanReceiptRequest struct {
		Image string `json:"image" validate:"required,base64"`
	}

	// NormalizedItem is the canonical line item after normalization.
	// Sequence is the position in the scanned receipt, starting at 1.
	NormalizedItem struct {
		Sequence    int      `json:"sequence"`
		Name        string   `json:"name"`
		Quantity    int      `json:"quantity"`
		UnitPrice   *float64 `json:"unit_price,omitempty"`
		Category    *string  `json:"category,omitempty"`
		NeedsReview bool     `json:"needs_review"`
	}

	ScanReceiptResponse struct {
		Store *string          `json:"store,omitempty"`
		Date  *string          `json:"date,omitempty"`
		Items []NormalizedItem `json:"items"`
	}
)
