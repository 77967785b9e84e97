package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// luhnValid checks a full card number including its check digit.
func luhnValid(number string) bool {
	var sum uint32
	for i := 0; i < len(number); i++ {
		d := uint32(number[len(number)-1-i] - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}

func TestNewMockTransaction(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)

	for range 100 {
		tx := NewMockTransaction(now)

		assert.Regexp(t, "^[0-9a-f]{32}$", tx.ID)
		assert.Equal(t, "2025-06-15T12:30:00Z", tx.Timestamp)

		require.Len(t, tx.CCNumber, 16)
		assert.Equal(t, byte('4'), tx.CCNumber[0], "expected Visa prefix")
		assert.True(t, luhnValid(tx.CCNumber), "cc_number %s fails Luhn check", tx.CCNumber)

		assert.Contains(t, Categories(), tx.Category)
		minAmount, maxAmount := tx.Category.AmountRange()
		assert.GreaterOrEqual(t, tx.AmountUSDCents, minAmount)
		assert.LessOrEqual(t, tx.AmountUSDCents, maxAmount)

		assert.NotEmpty(t, tx.City)
		assert.Len(t, tx.CountryISO, 2)
		assert.InDelta(t, 0, tx.Latitude, 90)
		assert.InDelta(t, 0, tx.Longitude, 180)
	}
}

func TestRandomCategoryCoversAllCategories(t *testing.T) {
	seen := make(map[Category]bool)
	for range 10000 {
		seen[randomCategory()] = true
	}
	for _, c := range Categories() {
		assert.True(t, seen[c], "category %s never drawn", c)
	}
}

func TestTransactionWireRoundTrip(t *testing.T) {
	tx := Transaction{
		ID:             "a3f2b8c1d4e5f6a7b8c9d0e1f2a3b4c5",
		Timestamp:      "2025-06-15T12:30:00Z",
		CCNumber:       "4111111111111111",
		Category:       CategoryGrocery,
		AmountUSDCents: 4599,
		Location: Location{
			City:       "San Francisco",
			CountryISO: "US",
			Latitude:   37.774929,
			Longitude:  -122.419418,
		},
		IsOnline: false,
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, tx, decoded)
}

func TestTransactionLocationFlattensOnWire(t *testing.T) {
	tx := NewMockTransaction(time.Now())

	data, err := json.Marshal(tx)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))

	for _, key := range []string{"id", "timestamp", "cc_number", "category", "amount_usd_cents", "city", "country_iso", "latitude", "longitude", "is_online"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "location")
}
