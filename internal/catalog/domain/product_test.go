package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductEqual(t *testing.T) {
	t.Run("same code, different description -> equal", func(t *testing.T) {
		a := NewProduct(10, "Keyboard")
		b := NewProduct(10, "Mechanical keyboard")

		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))
		assert.Equal(t, a.Key(), b.Key())
	})

	t.Run("different code -> not equal", func(t *testing.T) {
		a := NewProduct(10, "Keyboard")
		b := NewProduct(11, "Keyboard")

		assert.False(t, a.Equal(b))
		assert.NotEqual(t, a.Key(), b.Key())
	})

	t.Run("nil handling", func(t *testing.T) {
		var nilProduct *Product
		p := NewProduct(1, "Mouse")

		assert.False(t, p.Equal(nil))
		assert.False(t, nilProduct.Equal(p))
		assert.True(t, nilProduct.Equal(nil))
	})

	t.Run("accessors", func(t *testing.T) {
		p := NewProduct(42, "Monitor")

		assert.Equal(t, int64(42), p.Code())
		assert.Equal(t, "Monitor", p.Description())
	})
}
