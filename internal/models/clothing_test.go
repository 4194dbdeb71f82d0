package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialValid(t *testing.T) {
	for _, m := range Materials {
		assert.True(t, m.Valid(), m)
	}
	assert.False(t, Material("Silk").Valid())
	assert.False(t, Material("cotton").Valid())
}

func TestClothingPatchApply(t *testing.T) {
	item := ClothingItem{Name: "Jeans", Material: MaterialDenim, Price: 50}
	discount := 10.0

	patch := ClothingPatch{Discount: &discount}
	assert.False(t, patch.Empty())
	patch.Apply(&item)

	assert.Equal(t, ClothingItem{Name: "Jeans", Material: MaterialDenim, Price: 50, Discount: 10}, item)
	assert.True(t, ClothingPatch{}.Empty())
}

func TestFinalPrice(t *testing.T) {
	assert.Equal(t, 75.0, ClothingItem{Price: 100, Discount: 25}.FinalPrice())
	assert.Equal(t, 100.0, ClothingItem{Price: 100}.FinalPrice())
	assert.Equal(t, 0.0, ClothingItem{Price: 100, Discount: 100}.FinalPrice())
}
