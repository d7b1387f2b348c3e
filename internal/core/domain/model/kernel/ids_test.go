package kernel_test

import (
	"encoding/json"
	"strings"
	"testing"

	"resale/internal/core/domain/model/kernel"
	"resale/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserID(t *testing.T) {
	t.Run("should create user id from positive value", func(t *testing.T) {
		id, err := kernel.NewUserID(42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), id.Int64())
		assert.Equal(t, "42", id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("should reject zero and negative ids", func(t *testing.T) {
		for _, raw := range []int64{0, -1, -42} {
			_, err := kernel.NewUserID(raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.UserID
		require.ErrorIs(t, id.Validate(), errs.ErrValueIsRequired)
	})
}

func TestUserIDFromString(t *testing.T) {
	t.Run("should parse decimal string", func(t *testing.T) {
		id, err := kernel.UserIDFromString("9007199254740993")

		require.NoError(t, err)
		// Above 2^53: survives only because it never passes through a float64.
		assert.Equal(t, int64(9007199254740993), id.Int64())
	})

	t.Run("should reject empty and non-numeric input", func(t *testing.T) {
		_, err := kernel.UserIDFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = kernel.UserIDFromString("abc")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestUserID_JSON(t *testing.T) {
	t.Run("marshals as decimal string", func(t *testing.T) {
		id, _ := kernel.NewUserID(9007199254740993)

		data, err := json.Marshal(id)
		require.NoError(t, err)
		assert.Equal(t, `"9007199254740993"`, string(data))
	})

	t.Run("unmarshals from string form", func(t *testing.T) {
		var id kernel.UserID
		require.NoError(t, json.Unmarshal([]byte(`"77"`), &id))
		assert.Equal(t, int64(77), id.Int64())
	})

	t.Run("unmarshals from legacy number form", func(t *testing.T) {
		var id kernel.UserID
		require.NoError(t, json.Unmarshal([]byte(`77`), &id))
		assert.Equal(t, int64(77), id.Int64())
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		var id kernel.UserID
		require.Error(t, json.Unmarshal([]byte(`"not-a-number"`), &id))
	})
}

func TestNewOrderNumber(t *testing.T) {
	t.Run("generates prefixed twelve digit numbers", func(t *testing.T) {
		n := kernel.NewOrderNumber()

		assert.True(t, strings.HasPrefix(n.String(), "ORD-"))
		digits := strings.TrimPrefix(n.String(), "ORD-")
		assert.Len(t, digits, 12)
		for _, r := range digits {
			assert.True(t, r >= '0' && r <= '9')
		}
		assert.NoError(t, n.Validate())
	})

	t.Run("generates distinct numbers", func(t *testing.T) {
		seen := make(map[kernel.OrderNumber]bool)
		for range 100 {
			seen[kernel.NewOrderNumber()] = true
		}
		assert.Len(t, seen, 100)
	})
}

func TestOrderNumberFromString(t *testing.T) {
	t.Run("accepts opaque external numbers", func(t *testing.T) {
		n, err := kernel.OrderNumberFromString("ORD-1")

		require.NoError(t, err)
		assert.Equal(t, "ORD-1", n.String())
		assert.True(t, n.IsEqual(kernel.OrderNumber("ORD-1")))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := kernel.OrderNumberFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		_, err := kernel.OrderNumberFromString(strings.Repeat("x", 65))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestListingIDFromString(t *testing.T) {
	t.Run("accepts numeric listing ids", func(t *testing.T) {
		id, err := kernel.ListingIDFromString("123456789012")

		require.NoError(t, err)
		assert.Equal(t, "123456789012", id.String())
		assert.NoError(t, id.Validate())
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := kernel.ListingIDFromString("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := kernel.ListingIDFromString("ORD-123")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
