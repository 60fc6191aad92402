package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateBuilder(t *testing.T) {
	b := newUpdateBuilder(2)
	assert.True(t, b.Empty())

	b.Set("name", "Ayşe")
	b.Set("sort_order", 3)
	b.SetJSON("specialties", []string{"moda"})

	assert.False(t, b.Empty())
	assert.Equal(t, "name = $2, sort_order = $3, specialties = $4::jsonb", b.Assignments())
	assert.Equal(t, []any{"Ayşe", 3, `["moda"]`}, b.Args())
}

func TestUpdateBuilder_PlaceholderStart(t *testing.T) {
	b := newUpdateBuilder(1)
	b.Set("is_active", false)
	assert.Equal(t, "is_active = $1", b.Assignments())
}
