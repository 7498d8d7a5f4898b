package entities

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primaryKeyFields(t *testing.T, model any) []string {
	t.Helper()
	typ := reflect.TypeOf(model)
	var keys []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("gorm")
		for _, part := range strings.Split(tag, ";") {
			if strings.EqualFold(part, "primaryKey") || strings.EqualFold(part, "primary_key") {
				keys = append(keys, field.Name)
			}
		}
	}
	return keys
}

// Receipt identity is (id, user_id): the same receipt uuid under two users
// must migrate as two independent rows, matching what the reconciliation
// service looks up by.
func TestReceiptCompositeKey(t *testing.T) {
	assert.Equal(t, []string{"ID", "UserID"}, primaryKeyFields(t, Receipt{}))
}

func TestReceiptItemCompositeKey(t *testing.T) {
	assert.Equal(t, []string{"ReceiptID", "UserID", "Sequence"}, primaryKeyFields(t, ReceiptItem{}))
}

// The items association must carry the owner column, otherwise preloading a
// receipt would pick up another user's rows that share the receipt id.
func TestReceiptItemsAssociationScopedToOwner(t *testing.T) {
	field, ok := reflect.TypeOf(Receipt{}).FieldByName("Items")
	require.True(t, ok)

	tag := field.Tag.Get("gorm")
	assert.Contains(t, tag, "foreignKey:ReceiptID,UserID")
	assert.Contains(t, tag, "references:ID,UserID")
}
