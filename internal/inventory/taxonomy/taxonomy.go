// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

/*
Package taxonomy manages the four-level vehicle classification hierarchy.

Brand → CarName → Grade → Year form a strict parent chain; Agent is a sibling
branch scoped directly to a Brand. Every level enforces uniqueness within its
parent scope (the same grade name may exist under different car names, but not
twice under the same one).

# Core Responsibility

  - Hierarchy: Defines the five taxonomy entities and their parent references.
  - Integrity: Scoped-uniqueness checks and parent existence validation.
  - Listing: Paginated, parent-filterable, newest-first catalogues.

Deleting a taxonomy entity does NOT check for dependents: a Brand with live
Agents, CarNames, or Cars can be removed and its references orphaned. This is
preserved behavior, pinned by tests, not an oversight in this package.
*/
package taxonomy

import "time"

// # Core Entities

// Brand is the top-level manufacturer record. It has no parent.
type Brand struct {
	ID        string    `json:"id"` // UUIDv7
	Name      string    `json:"name"`
	ImageURL  *string   `json:"image,omitempty"` // Logo, stored via the media collaborator
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Agent is a dealer/representative scoped to one Brand.
// (Name, BrandID) is unique.
type Agent struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	Brand     *Brand    `json:"brand,omitempty"` // Populated on reads
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarName is a model name scoped to one Brand. (Name, BrandID) is unique.
type CarName struct {
	ID        string    `json:"id"`
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	Brand     *Brand    `json:"brand,omitempty"` // Populated on reads
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Grade is a trim level scoped to one CarName. (Name, CarNameID) is unique.
type Grade struct {
	ID        string    `json:"id"`
	CarNameID string    `json:"car_name_id"`
	Name      string    `json:"name"`
	CarName   *CarName  `json:"car_name,omitempty"` // Populated on reads
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Year is a model year scoped to one Grade. (Value, GradeID) is unique.
//
// Year lists order by Value descending rather than creation time — model
// years are naturally ordered.
type Year struct {
	ID        string    `json:"id"`
	GradeID   string    `json:"grade_id"`
	Value     int       `json:"value"` // 1900–2100
	Grade     *Grade    `json:"grade,omitempty"` // Populated on reads
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Value Bounds

const (
	// MinYearValue is the lowest accepted model year.
	MinYearValue = 1900
	// MaxYearValue is the highest accepted model year.
	MaxYearValue = 2100
)

// # Field Identifiers

const (
	FieldName      = "name"
	FieldValue     = "value"
	FieldBrandID   = "brand_id"
	FieldCarNameID = "car_name_id"
	FieldGradeID   = "grade_id"
	FieldImage     = "image"
)

// # Resource Names (error messages)

const (
	ResourceBrand   = "Brand"
	ResourceAgent   = "Agent"
	ResourceCarName = "Car name"
	ResourceGrade   = "Grade"
	ResourceYear    = "Year"
)
