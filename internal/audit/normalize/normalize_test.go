package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docaudit/internal/audit/models"
)

func TestFieldText(t *testing.T) {
	t.Run("collapses case and whitespace", func(t *testing.T) {
		v := Field(models.CategoryText, "  John   DOE ")
		assert.Equal(t, "john doe", v.Text)
		assert.True(t, v.Parsed)
	})

	t.Run("name fields normalize the same way", func(t *testing.T) {
		a := Field(models.CategoryName, "John Doe")
		b := Field(models.CategoryName, "JOHN  DOE")
		assert.Equal(t, a.Text, b.Text)
	})
}

func TestFieldIdentifier(t *testing.T) {
	t.Run("strips separators", func(t *testing.T) {
		v := Field(models.CategoryIdentifier, "123-45-6789")
		assert.Equal(t, "123456789", v.Text)
	})

	t.Run("spaced and dashed forms are byte-equal", func(t *testing.T) {
		a := Field(models.CategoryIdentifier, "123 45 6789")
		b := Field(models.CategoryIdentifier, "123-45-6789")
		assert.Equal(t, a.Text, b.Text)
	})
}

func TestFieldMonetary(t *testing.T) {
	t.Run("parses currency strings", func(t *testing.T) {
		v := Field(models.CategoryMonetary, "$75,000.50")
		require.True(t, v.Parsed)
		assert.InDelta(t, 75000.50, v.Number, 0.001)
	})

	t.Run("passes numeric input through", func(t *testing.T) {
		v := Field(models.CategoryMonetary, 82000.0)
		require.True(t, v.Parsed)
		assert.InDelta(t, 82000.0, v.Number, 0.001)
	})

	t.Run("unparseable amount degrades to opaque text", func(t *testing.T) {
		v := Field(models.CategoryMonetary, "about eighty grand")
		assert.False(t, v.Parsed)
		assert.Equal(t, "about eighty grand", v.Text)
	})
}

func TestFieldDate(t *testing.T) {
	t.Run("accepts common layouts", func(t *testing.T) {
		for _, raw := range []string{"2024-01-15", "01/15/2024", "January 15, 2024"} {
			v := Field(models.CategoryDate, raw)
			require.True(t, v.Parsed, "layout %q", raw)
			assert.Equal(t, "2024-01-15", v.Text)
		}
	})

	t.Run("unparseable date degrades to opaque text", func(t *testing.T) {
		v := Field(models.CategoryDate, "sometime in march")
		assert.False(t, v.Parsed)
		assert.Equal(t, "sometime in march", v.Text)
	})
}

func TestFieldAddress(t *testing.T) {
	t.Run("splits street city region postal", func(t *testing.T) {
		v := Field(models.CategoryAddress, "123 Main St, Springfield, IL 62704")
		require.True(t, v.Parsed)
		require.NotNil(t, v.Address)
		assert.Equal(t, "123 main st", v.Address.Street)
		assert.Equal(t, "springfield", v.Address.City)
		assert.Equal(t, "il", v.Address.Region)
		assert.Equal(t, "62704", v.Address.PostalCode)
	})

	t.Run("too few components stays opaque", func(t *testing.T) {
		v := Field(models.CategoryAddress, "123 Main St Springfield")
		assert.False(t, v.Parsed)
		assert.Nil(t, v.Address)
	})
}

func TestAddressComponents(t *testing.T) {
	a := Field(models.CategoryAddress, "123 Main St, Springfield, IL 62704")
	b := Field(models.CategoryAddress, "123 Main Street, Springfield, IL 62704")
	require.True(t, a.Parsed)
	require.True(t, b.Parsed)

	assert.Equal(t, []string{"street"}, a.Address.Components(b.Address))
	assert.Equal(t, []string{"street"}, b.Address.Components(a.Address))
	assert.Empty(t, a.Address.Components(a.Address))
}
