package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCreateInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateInput
		wantErr bool
	}{
		{"valid", CreateInput{Name: "Lamp", Price: decimal.RequireFromString("9.99"), Quantity: 2}, false},
		{"free and out of stock", CreateInput{Name: "Sample"}, false},
		{"blank name", CreateInput{Name: "  ", Price: decimal.NewFromInt(1)}, true},
		{"negative price", CreateInput{Name: "Lamp", Price: decimal.NewFromInt(-1)}, true},
		{"negative quantity", CreateInput{Name: "Lamp", Quantity: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateInput(t *testing.T) {
	assert.NoError(t, UpdateInput{}.Validate())
	assert.Empty(t, UpdateInput{}.Columns())

	assert.ErrorIs(t, UpdateInput{Name: ptr("")}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, UpdateInput{Quantity: ptr(-3)}.Validate(), ErrInvalidInput)

	in := UpdateInput{Name: ptr("Desk"), Quantity: ptr(0), PhotoURL: ptr("")}
	assert.NoError(t, in.Validate())
	assert.Equal(t, map[string]any{"name": "Desk", "quantity": 0, "photo_url": ""}, in.Columns())
}
