package domain

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the merchant category of a transaction. The set is closed.
type Category string

const (
	CategoryGrocery       Category = "grocery"
	CategoryGasStation    Category = "gas_station"
	CategoryRestaurant    Category = "restaurant"
	CategoryOnlineRetail  Category = "online_retail"
	CategoryEntertainment Category = "entertainment"
	CategoryTravel        Category = "travel"
	CategoryHealthcare    Category = "healthcare"
	CategoryUtilities     Category = "utilities"
)

// Categories returns all merchant categories.
func Categories() []Category {
	return []Category{
		CategoryGrocery,
		CategoryGasStation,
		CategoryRestaurant,
		CategoryOnlineRetail,
		CategoryEntertainment,
		CategoryTravel,
		CategoryHealthcare,
		CategoryUtilities,
	}
}

// randomCategory draws a category with a weighted distribution modelled on
// typical card transaction patterns.
func randomCategory() Category {
	v := rand.Float64()
	switch {
	case v < 0.25:
		return CategoryGrocery
	case v < 0.40:
		return CategoryRestaurant
	case v < 0.55:
		return CategoryGasStation
	case v < 0.70:
		return CategoryOnlineRetail
	case v < 0.80:
		return CategoryEntertainment
	case v < 0.90:
		return CategoryUtilities
	case v < 0.95:
		return CategoryTravel
	default:
		return CategoryHealthcare
	}
}

// AmountRange returns the typical amount range (min, max) in USD cents for
// the category.
func (c Category) AmountRange() (uint64, uint64) {
	switch c {
	case CategoryGrocery:
		return 500, 15000 // $5 - $150
	case CategoryGasStation:
		return 2000, 8000 // $20 - $80
	case CategoryRestaurant:
		return 1000, 12000 // $10 - $120
	case CategoryOnlineRetail:
		return 1500, 25000 // $15 - $250
	case CategoryEntertainment:
		return 1000, 20000 // $10 - $200
	case CategoryTravel:
		return 5000, 100000 // $50 - $1000
	case CategoryHealthcare:
		return 3000, 50000 // $30 - $500
	case CategoryUtilities:
		return 5000, 30000 // $50 - $300
	default:
		return 500, 15000
	}
}

// Location is the geographic origin of a transaction. It is embedded in
// Transaction so its fields flatten into the wire object.
type Location struct {
	City       string  `json:"city"`
	CountryISO string  `json:"country_iso"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

var locations = []Location{
	{City: "San Francisco", CountryISO: "US", Latitude: 37.774929, Longitude: -122.419418},
	{City: "New York", CountryISO: "US", Latitude: 40.712776, Longitude: -74.005974},
	{City: "Los Angeles", CountryISO: "US", Latitude: 34.052235, Longitude: -118.243683},
	{City: "Chicago", CountryISO: "US", Latitude: 41.878113, Longitude: -87.629799},
	{City: "Miami", CountryISO: "US", Latitude: 25.761681, Longitude: -80.191788},
	{City: "London", CountryISO: "GB", Latitude: 51.507351, Longitude: -0.127758},
	{City: "Paris", CountryISO: "FR", Latitude: 48.856613, Longitude: 2.352222},
	{City: "Tokyo", CountryISO: "JP", Latitude: 35.689487, Longitude: 139.691711},
	{City: "Sydney", CountryISO: "AU", Latitude: -33.868820, Longitude: 151.209290},
	{City: "Toronto", CountryISO: "CA", Latitude: 43.651070, Longitude: -79.347015},
}

// Transaction is a mock credit card transaction with realistic fields,
// useful for fraud detection and data analysis practice. Immutable once
// produced; identity is ID.
type Transaction struct {
	// ID is a unique transaction identifier (32 hex characters).
	ID string `json:"id"`

	// Timestamp in RFC3339 format.
	Timestamp string `json:"timestamp"`

	// CCNumber is a Luhn-valid credit card number (mock data only).
	CCNumber string `json:"cc_number"`

	Category Category `json:"category"`

	// AmountUSDCents: 4599 represents $45.99.
	AmountUSDCents uint64 `json:"amount_usd_cents"`

	Location

	// IsOnline reports whether the transaction was made online.
	IsOnline bool `json:"is_online"`
}

// NewMockTransaction creates a realistic mock transaction with randomized
// values: a Luhn-valid card number, a city from a fixed table, a
// category-appropriate amount, and a 30% online share.
func NewMockTransaction(now time.Time) Transaction {
	category := randomCategory()
	minAmount, maxAmount := category.AmountRange()

	return Transaction{
		ID:             strings.ReplaceAll(uuid.NewString(), "-", ""),
		Timestamp:      now.Format(time.RFC3339),
		CCNumber:       generateCCNumber(),
		Category:       category,
		AmountUSDCents: minAmount + rand.Uint64N(maxAmount-minAmount+1),
		Location:       locations[rand.IntN(len(locations))],
		IsOnline:       rand.Float64() < 0.3,
	}
}

// generateCCNumber produces a 16-digit card number with a Visa prefix and a
// valid Luhn checksum digit.
func generateCCNumber() string {
	digits := make([]byte, 0, 16)
	digits = append(digits, 4)
	for range 14 {
		digits = append(digits, byte(rand.IntN(10)))
	}
	digits = append(digits, luhnChecksum(digits))

	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte('0' + d)
	}
	return sb.String()
}

// luhnChecksum computes the check digit for a digit sequence, doubling every
// other digit from the right.
func luhnChecksum(digits []byte) byte {
	var sum uint32
	for i := range digits {
		d := uint32(digits[len(digits)-1-i])
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return byte((10 - sum%10) % 10)
}
