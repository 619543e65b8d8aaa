// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package car

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danuarta/motoria/pkg/pointer"
)

/*
TestFilterClauses verifies the SQL fragment composer: car-level reference
filters become equality clauses, unit-level filters become EXISTS clauses
over the chassis collection, and a min/max pair on the same price field
shares one EXISTS so both bounds must hold for the same element.
*/
func TestFilterClauses(t *testing.T) {
	t.Run("empty_filter_produces_nothing", func(t *testing.T) {
		clause, args := FilterClauses(Filter{}, 1)
		assert.Empty(t, clause)
		assert.Empty(t, args)
	})

	t.Run("reference_filters_are_anded", func(t *testing.T) {
		clause, args := FilterClauses(Filter{BrandID: "b-1", YearID: "y-1"}, 1)
		assert.Equal(t, " AND c.brandid::text = $1 AND c.yearid::text = $2", clause)
		assert.Equal(t, []any{"b-1", "y-1"}, args)
	})

	t.Run("status_matches_any_chassis_element", func(t *testing.T) {
		clause, args := FilterClauses(Filter{Status: StatusAvailable}, 1)
		assert.Equal(t,
			" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.chassis) elem WHERE elem->>'status' = $1)",
			clause)
		assert.Equal(t, []any{"available"}, args)
	})

	t.Run("price_bounds_share_one_exists", func(t *testing.T) {
		clause, args := FilterClauses(Filter{
			PriceCashMin: pointer.To(10000.0),
			PriceCashMax: pointer.To(30000.0),
		}, 1)
		assert.Equal(t,
			" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.chassis) elem WHERE TRUE"+
				" AND (elem->>'price_cash')::numeric >= $1"+
				" AND (elem->>'price_cash')::numeric <= $2)",
			clause)
		assert.Equal(t, []any{10000.0, 30000.0}, args)
	})

	t.Run("single_bound_works_alone", func(t *testing.T) {
		clause, args := FilterClauses(Filter{PriceFinanceMax: pointer.To(40000.0)}, 1)
		assert.Equal(t,
			" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.chassis) elem WHERE TRUE"+
				" AND (elem->>'price_finance')::numeric <= $1)",
			clause)
		assert.Equal(t, []any{40000.0}, args)
	})

	t.Run("price_fields_get_independent_exists", func(t *testing.T) {
		clause, args := FilterClauses(Filter{
			PriceCashMin:    pointer.To(10000.0),
			PriceFinanceMin: pointer.To(12000.0),
		}, 1)
		assert.Contains(t, clause, "(elem->>'price_cash')::numeric >= $1")
		assert.Contains(t, clause, "(elem->>'price_finance')::numeric >= $2")
		assert.Equal(t, []any{10000.0, 12000.0}, args)
	})

	// A storefront search: a specific brand, model, trim, and year, only
	// showing cars with an available unit cash-priced inside the budget.
	t.Run("full_storefront_search", func(t *testing.T) {
		clause, args := FilterClauses(Filter{
			BrandID:      "toyota-id",
			CarNameID:    "camry-id",
			GradeID:      "se-id",
			YearID:       "2024-id",
			Status:       StatusAvailable,
			PriceCashMin: pointer.To(20000.0),
			PriceCashMax: pointer.To(35000.0),
		}, 1)
		assert.Equal(t,
			" AND c.brandid::text = $1"+
				" AND c.carnameid::text = $2"+
				" AND c.gradeid::text = $3"+
				" AND c.yearid::text = $4"+
				" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.chassis) elem WHERE elem->>'status' = $5)"+
				" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.chassis) elem WHERE TRUE"+
				" AND (elem->>'price_cash')::numeric >= $6"+
				" AND (elem->>'price_cash')::numeric <= $7)",
			clause)
		assert.Equal(t, []any{"toyota-id", "camry-id", "se-id", "2024-id", "available", 20000.0, 35000.0}, args)
	})

	t.Run("first_arg_offsets_placeholders", func(t *testing.T) {
		clause, args := FilterClauses(Filter{BrandID: "b-1", Status: StatusSold}, 3)
		assert.Equal(t,
			" AND c.brandid::text = $3"+
				" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.chassis) elem WHERE elem->>'status' = $4)",
			clause)
		assert.Equal(t, []any{"b-1", "sold"}, args)
	})
}
