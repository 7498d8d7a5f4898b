package ocr

import (
	"encoding/json"

	"bitescan-api/domain"
)

// ParseDocument decodes captured OCR output into a receipt document.
// Output that does not decode is an OCR format error, distinct from the
// OCR process failing to run at all.
func ParseDocument(raw []byte) (domain.RawReceiptDocument, error) {
	var doc domain.RawReceiptDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.RawReceiptDocument{}, domain.ErrOcrFormat
	}
	if doc.LineItems == nil {
		return domain.RawReceiptDocument{}, domain.ErrOcrFormat
	}
	return doc, nil
}

// Normalize converts raw OCR line entries into canonical line items.
// Pure transformation; sequence is the position in the document, starting
// at 1, and stays fixed for the lifetime of the receipt.
func Normalize(doc domain.RawReceiptDocument) []domain.NormalizedItem {
	items := make([]domain.NormalizedItem, 0, len(doc.LineItems))

	for i, raw := range doc.LineItems {
		item := domain.NormalizedItem{
			Sequence: i + 1,
			Quantity: 1,
			Category: raw.Category,
		}

		// Description wins over a separately supplied name.
		switch {
		case raw.Description != nil && *raw.Description != "":
			item.Name = *raw.Description
		case raw.Name != nil:
			item.Name = *raw.Name
		}
		if item.Name == "" {
			item.NeedsReview = true
		}

		quantityKnown := true
		if raw.Quantity != nil {
			q := int(*raw.Quantity)
			if q >= 1 {
				item.Quantity = q
			} else {
				// Explicit zero (or junk) quantity: default to 1 but do
				// not derive a unit price from it.
				quantityKnown = false
				item.NeedsReview = true
			}
		}

		if raw.TotalPrice != nil && quantityKnown {
			unitPrice := *raw.TotalPrice / float64(item.Quantity)
			item.UnitPrice = &unitPrice
		}

		items = append(items, item)
	}

	return items
}
