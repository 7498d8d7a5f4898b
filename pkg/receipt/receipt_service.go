package receipt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitescan-api/domain"
	"bitescan-api/entities"
	"bitescan-api/internal/utils/storage"
	"bitescan-api/pkg/nutrition"
	"bitescan-api/pkg/ocr"
)

type (
	ReceiptService interface {
		// SubmitReceipt reconciles the submitted receipt and item list
		// against stored state: create on first submission, atomic
		// replace-items on resubmission. Idempotent.
		SubmitReceipt(ctx context.Context, req domain.SubmitReceiptRequest, userID string) (domain.ReceiptResponse, error)
		GetReceipts(ctx context.Context, userID string) ([]domain.ReceiptResponse, error)
		DeleteReceipt(ctx context.Context, receiptID, userID string) error
		// ScanToDraft runs the full pipeline (store image, OCR, normalize,
		// enrich) and returns a draft for the client to review; nothing is
		// persisted.
		ScanToDraft(ctx context.Context, image []byte, contentType string, userID string) (domain.ScanToDraftResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		scanner           ocr.Scanner
		nutritionService  nutrition.NutritionService
		s3                storage.AwsS3
	}
)

// NewReceiptService wires the reconciliation service. s3 may be nil when
// image storage is not configured; scanned images are then not retained.
func NewReceiptService(
	receiptRepository ReceiptRepository,
	scanner ocr.Scanner,
	nutritionService nutrition.NutritionService,
	s3 storage.AwsS3,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		scanner:           scanner,
		nutritionService:  nutritionService,
		s3:                s3,
	}
}

func (s *receiptService) SubmitReceipt(ctx context.Context, req domain.SubmitReceiptRequest, userID string) (domain.ReceiptResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ReceiptResponse{}, domain.ErrParseUUID
	}

	if len(req.Items) == 0 {
		return domain.ReceiptResponse{}, domain.ErrEmptyItems
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return domain.ReceiptResponse{}, domain.ErrInvalidDate
	}

	// Client may supply the receipt id; the server assigns one otherwise.
	receiptID := uuid.New()
	if req.ID != "" {
		receiptID, err = uuid.Parse(req.ID)
		if err != nil {
			return domain.ReceiptResponse{}, domain.ErrParseUUID
		}
	}

	header := &entities.Receipt{
		ID:           receiptID,
		UserID:       userUUID,
		Store:        req.Store,
		PurchaseDate: purchaseDate,
		Status:       req.Status,
	}

	items := make([]*entities.ReceiptItem, 0, len(req.Items))
	for i, submitted := range req.Items {
		quantity := submitted.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items = append(items, &entities.ReceiptItem{
			ReceiptID: receiptID,
			UserID:    userUUID,
			Sequence:  i + 1, // server assigns sequence by submission order
			Name:      submitted.Name,
			Quantity:  quantity,
			UnitPrice: submitted.UnitPrice,
			Category:  submitted.Category,
			Calories:  submitted.Calories,
			Protein:   submitted.Protein,
			Fat:       submitted.Fat,
			Carbs:     submitted.Carbs,
		})
	}

	// Upsert-by-replace: everything below commits or rolls back as one.
	err = s.receiptRepository.WithTx(ctx, func(tx ReceiptRepository) error {
		existing, err := tx.GetReceipt(ctx, receiptID.String(), userID)
		switch {
		case err == nil:
			if headerChanged(existing, header) {
				if err := tx.UpdateReceiptHeader(ctx, header); err != nil {
					return err
				}
			}
			if err := tx.DeleteItems(ctx, receiptID.String(), userID); err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.CreateReceipt(ctx, header); err != nil {
				return err
			}
		default:
			return err
		}

		return tx.InsertItems(ctx, items)
	})
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	return toReceiptResponse(header, items), nil
}

func (s *receiptService) GetReceipts(ctx context.Context, userID string) ([]domain.ReceiptResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	receipts, err := s.receiptRepository.GetReceiptsWithItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		response = append(response, toReceiptResponse(r, r.Items))
	}
	return response, nil
}

// DeleteReceipt removes the receipt and cascades to its items in one
// transaction. Disabling a user never triggers this.
func (s *receiptService) DeleteReceipt(ctx context.Context, receiptID, userID string) error {
	if _, err := uuid.Parse(receiptID); err != nil {
		return domain.ErrParseUUID
	}

	return s.receiptRepository.WithTx(ctx, func(tx ReceiptRepository) error {
		if _, err := tx.GetReceipt(ctx, receiptID, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReceiptNotFound
			}
			return err
		}
		if err := tx.DeleteItems(ctx, receiptID, userID); err != nil {
			return err
		}
		return tx.DeleteReceipt(ctx, receiptID, userID)
	})
}

func (s *receiptService) ScanToDraft(ctx context.Context, image []byte, contentType string, userID string) (domain.ScanToDraftResponse, error) {
	if len(image) == 0 {
		return domain.ScanToDraftResponse{}, domain.ErrNoImage
	}

	var imageURL string
	if s.s3 != nil {
		fileName := fmt.Sprintf("receipt-%s", uuid.New().String())
		objectKey, err := s.s3.UploadBytes(ctx, fileName, image, contentType, "receipts")
		if err != nil {
			log.Warnf("receipt image upload failed for user %s: %v", userID, err)
		} else {
			imageURL = s.s3.GetPublicLinkKey(objectKey)
		}
	}

	doc, err := s.scanner.Scan(ctx, image)
	if err != nil {
		return domain.ScanToDraftResponse{}, err
	}

	normalized := ocr.Normalize(doc)

	response := domain.ScanToDraftResponse{
		ImageURL: imageURL,
		Store:    doc.Store,
		Date:     doc.Date,
		Items:    make([]domain.DraftItem, 0, len(normalized)),
	}
	if len(normalized) == 0 {
		return response, nil
	}

	toEnrich := make([]domain.NutritionItem, 0, len(normalized))
	for _, item := range normalized {
		toEnrich = append(toEnrich, domain.NutritionItem{Name: item.Name})
	}

	enriched, err := s.nutritionService.EnrichItems(ctx, toEnrich)
	if err != nil {
		return domain.ScanToDraftResponse{}, err
	}

	for i, item := range normalized {
		response.Items = append(response.Items, domain.DraftItem{
			Sequence:    item.Sequence,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Category:    item.Category,
			Calories:    enriched[i].Calories,
			Protein:     enriched[i].Protein,
			Fat:         enriched[i].Fat,
			Carbs:       enriched[i].Carbs,
			NeedsReview: item.NeedsReview,
			Status:      enriched[i].Status,
		})
	}

	return response, nil
}

func headerChanged(existing, submitted *entities.Receipt) bool {
	return existing.Store != submitted.Store ||
		!existing.PurchaseDate.Equal(submitted.PurchaseDate) ||
		existing.Status != submitted.Status
}

func toReceiptResponse(receipt *entities.Receipt, items []*entities.ReceiptItem) domain.ReceiptResponse {
	response := domain.ReceiptResponse{
		ID:           receipt.ID.String(),
		Store:        receipt.Store,
		PurchaseDate: receipt.PurchaseDate,
		Status:       receipt.Status,
		Items:        make([]domain.ReceiptItemResponse, 0, len(items)),
	}
	for _, item := range items {
		response.Items = append(response.Items, domain.ReceiptItemResponse{
			Sequence:    item.Sequence,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Category:    item.Category,
			Calories:    item.Calories,
			Protein:     item.Protein,
			Fat:         item.Fat,
			Carbs:       item.Carbs,
			NeedsReview: item.NeedsReview,
		})
	}
	return response
}
