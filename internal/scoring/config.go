// Package scoring implements the purchase regret scoring engine.
//
// A regret score is a 0-100 composite over seven behavioral factors estimating
// how likely a purchase is to be regretted. Every function in this package is a
// deterministic transformation of the inputs it is handed: the full dataset and
// the reference date are explicit arguments, never ambient state.
package scoring

import "strings"

// DefaultFoodKeywords match consumable/dining categories, which are exempt from
// the necessity-gap and time-decay factors. Matching is case-insensitive
// substring, so "카페라떼" and "Coffee Beans" both qualify.
var DefaultFoodKeywords = []string{
	"식비", "음식", "배달", "카페", "커피", "외식", "식료품", "간식", "식사", "음료",
	"food", "dining", "delivery", "cafe", "coffee", "restaurant", "grocery",
	"groceries", "snack", "meal", "drink",
}

// Config holds the tunable constants of the scoring engine. Zero values are not
// usable; start from DefaultConfig.
type Config struct {
	// FoodKeywords trigger the food-category exemption.
	FoodKeywords []string

	// SmallPurchaseFloor is the amount at or below which the price-weight
	// factor collapses to its minimum (minor currency units, e.g. ₩10,000).
	SmallPurchaseFloor float64

	// RegretThreshold classifies a purchase as regretful for aggregate
	// statistics when its total score exceeds it.
	RegretThreshold float64

	// GradeBounds are the upper bounds of the first five grade tiers
	// (very satisfied, satisfied, neutral, disappointed, regretful); anything
	// above the last bound is the sixth tier. The five-bucket distribution
	// uses the first four bounds.
	GradeBounds [5]float64
}

// DefaultConfig returns the documented scoring constants.
func DefaultConfig() Config {
	return Config{
		FoodKeywords:       DefaultFoodKeywords,
		SmallPurchaseFloor: 10000,
		RegretThreshold:    50,
		GradeBounds:        [5]float64{20, 35, 50, 65, 80},
	}
}

// IsFoodCategory reports whether the category name matches any configured food
// keyword.
func (c Config) IsFoodCategory(category string) bool {
	name := strings.ToLower(strings.TrimSpace(category))
	for _, keyword := range c.FoodKeywords {
		if strings.Contains(name, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
