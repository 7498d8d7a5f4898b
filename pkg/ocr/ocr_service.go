package ocr

import (
	"context"
	"encoding/base64"

	"bitescan-api/domain"
)

type (
	OcrService interface {
		ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) (domain.ScanReceiptResponse, error)
	}

	ocrService struct {
		scanner Scanner
	}
)

func NewOcrService(scanner Scanner) OcrService {
	return &ocrService{scanner: scanner}
}

func (s *ocrService) ScanReceipt(ctx context.Context, req domain.ScanReceiptRequest) (domain.ScanReceiptResponse, error) {
	if req.Image == "" {
		return domain.ScanReceiptResponse{}, domain.ErrNoImage
	}

	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		return domain.ScanReceiptResponse{}, domain.ErrInvalidImage
	}

	doc, err := s.scanner.Scan(ctx, image)
	if err != nil {
		return domain.ScanReceiptResponse{}, err
	}

	return domain.ScanReceiptResponse{
		Store: doc.Store,
		Date:  doc.Date,
		Items: Normalize(doc),
	}, nil
}
