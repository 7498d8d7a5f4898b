package receipt

import (
	"context"

	"gorm.io/gorm"

	"bitescan-api/entities"
)

type (
	// ReceiptRepository exposes the primitives the reconciliation service
	// composes inside a transaction. WithTx hands the callback a repository
	// bound to the transaction; any error rolls the whole thing back.
	ReceiptRepository interface {
		WithTx(ctx context.Context, fn func(ReceiptRepository) error) error
		GetReceipt(ctx context.Context, receiptID, userID string) (*entities.Receipt, error)
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		UpdateReceiptHeader(ctx context.Context, receipt *entities.Receipt) error
		DeleteItems(ctx context.Context, receiptID, userID string) error
		InsertItems(ctx context.Context, items []*entities.ReceiptItem) error
		GetItems(ctx context.Context, receiptID, userID string) ([]*entities.ReceiptItem, error)
		GetReceiptsWithItems(ctx context.Context, userID string) ([]*entities.Receipt, error)
		DeleteReceipt(ctx context.Context, receiptID, userID string) error
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) WithTx(ctx context.Context, fn func(ReceiptRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&receiptRepository{db: tx})
	})
}

func (r *receiptRepository) GetReceipt(ctx context.Context, receiptID, userID string) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", receiptID, userID).
		First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) UpdateReceiptHeader(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("id = ? AND user_id = ?", receipt.ID, receipt.UserID).
		Updates(map[string]interface{}{
			"store":         receipt.Store,
			"purchase_date": receipt.PurchaseDate,
			"status":        receipt.Status,
		}).Error
}

func (r *receiptRepository) DeleteItems(ctx context.Context, receiptID, userID string) error {
	return r.db.WithContext(ctx).
		Where("receipt_id = ? AND user_id = ?", receiptID, userID).
		Delete(&entities.ReceiptItem{}).Error
}

func (r *receiptRepository) InsertItems(ctx context.Context, items []*entities.ReceiptItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(items).Error
}

func (r *receiptRepository) GetItems(ctx context.Context, receiptID, userID string) ([]*entities.ReceiptItem, error) {
	var items []*entities.ReceiptItem
	if err := r.db.WithContext(ctx).
		Where("receipt_id = ? AND user_id = ?", receiptID, userID).
		Order("sequence asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *receiptRepository) GetReceiptsWithItems(ctx context.Context, userID string) ([]*entities.Receipt, error) {
	var receipts []*entities.Receipt
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("receipt_items.sequence asc")
		}).
		Where("user_id = ?", userID).
		Order("purchase_date desc").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *receiptRepository) DeleteReceipt(ctx context.Context, receiptID, userID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", receiptID, userID).
		Delete(&entities.Receipt{}).Error
}
