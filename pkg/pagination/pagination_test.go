// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danuarta/motoria/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping of page/limit values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults_when_absent", "", pagination.DefaultPage, pagination.DefaultLimit},
		{"explicit_values", "page=3&limit=50", 3, 50},
		{"zero_page_clamps_to_default", "page=0&limit=10", pagination.DefaultPage, 10},
		{"negative_values_clamp", "page=-1&limit=-5", pagination.DefaultPage, pagination.DefaultLimit},
		{"excessive_limit_clamps", "page=2&limit=9999", 2, pagination.DefaultLimit},
		{"garbage_falls_back", "page=abc&limit=xyz", pagination.DefaultPage, pagination.DefaultLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/cars?"+tt.query, nil)
			params := pagination.FromRequest(r)
			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestNewMeta verifies the page-count arithmetic, including the partial final
page and the empty result set.
*/
func TestNewMeta(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		total     int
		wantPages int
	}{
		{"exact_division", 10, 100, 10},
		{"partial_final_page", 10, 101, 11},
		{"single_short_page", 20, 3, 1},
		{"empty_result", 20, 0, 0},
		{"zero_limit_guard", 0, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := pagination.NewMeta(1, tt.limit, tt.total)
			assert.Equal(t, tt.wantPages, meta.Pages)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}
