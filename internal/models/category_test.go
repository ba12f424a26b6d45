package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Validate(t *testing.T) {
	valid := Category{ID: "pets", Name: "Pets"}
	assert.NoError(t, valid.Validate())

	unnamed := Category{ID: "pets"}
	assert.ErrorIs(t, unnamed.Validate(), ErrCategoryNameRequired)
}

func TestDefaultCategories(t *testing.T) {
	defaults := DefaultCategories()
	assert.Len(t, defaults, 9)

	ids := make(map[string]bool)
	for _, category := range defaults {
		assert.True(t, category.IsDefault)
		assert.Empty(t, category.UserID)
		assert.NotEmpty(t, category.Name)
		assert.False(t, ids[category.ID], "duplicate id %s", category.ID)
		ids[category.ID] = true
	}

	assert.True(t, ids["food"])
	assert.True(t, ids["subscriptions"])
	assert.True(t, ids["other"])
}

func TestCategoryNameByID(t *testing.T) {
	categories := DefaultCategories()

	assert.Equal(t, "Food & Dining", CategoryNameByID(categories, "food"))
	assert.Equal(t, UnknownCategoryName, CategoryNameByID(categories, "deleted"))
	assert.Equal(t, UnknownCategoryName, CategoryNameByID(nil, "food"))
}
