package model

import "github.com/shopspring/decimal"

// AvailablePlans returns the static client-side mirror of the plan set baked
// into the on-chain program. The ids, prices and request allowances must
// match the program's definitions exactly; a divergence here is a
// correctness bug, not a runtime condition.
func AvailablePlans() []Plan {
	return []Plan{
		{
			ID:          1,
			Name:        "Basic",
			Price:       decimal.NewFromInt(10),
			Requests:    20,
			Description: "Basic plan with 20 requests",
		},
		{
			ID:          2,
			Name:        "Standard",
			Price:       decimal.NewFromInt(20),
			Requests:    50,
			Description: "Standard plan with 50 requests",
		},
		{
			ID:          3,
			Name:        "Premium",
			Price:       decimal.NewFromInt(50),
			Requests:    100,
			Description: "Premium plan with 100 requests",
		},
	}
}
