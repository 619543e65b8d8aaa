// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

/*
Package car implements the showroom listing aggregate.

A Car is the sellable unit presented in the catalogue. It references the
classification hierarchy (brand, agent, car name, grade, year) by id and owns
an embedded collection of Chassis values, the physical vehicles behind the
listing. Chassis have no identity outside their car; every write replaces the
collection wholesale.

# Core Responsibility

  - Aggregate: Car metadata, references, embedded chassis, images.
  - Filtering: AND-combined dimensions; unit-level filters (status, prices)
    match when at least one chassis element satisfies them.
  - Media: Images are uploaded concurrently on create/update, with
    compensating deletion when the surrounding write fails.

Reference ids are checked for existence at write time but are not foreign
keys: deleting a taxonomy row leaves cars pointing at a dangling id, and no
cross-reference lineage check is made (a car may pair a Toyota brand with a
grade that belongs to a Honda model).
*/
package car

import "time"

// # Chassis Enumerations

// Status is the sales state of a single physical unit.
//
// Transitions are unrestricted: any status may be set from any other, and
// reserved does not require a reserver.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
	StatusSold        Status = "sold"
	StatusMaintenance Status = "maintenance"
)

// DefaultStatus is applied when a chassis arrives without a status.
const DefaultStatus = StatusAvailable

// IsValid reports whether the status is one of the four known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold, StatusMaintenance:
		return true
	}
	return false
}

// Transmission is the gearbox type of a single physical unit.
type Transmission string

const (
	TransmissionManual    Transmission = "manual"
	TransmissionAutomatic Transmission = "automatic"
)

// DefaultTransmission is applied when a chassis arrives without a gearbox type.
const DefaultTransmission = TransmissionAutomatic

// IsValid reports whether the transmission is a known gearbox type.
func (t Transmission) IsValid() bool {
	return t == TransmissionManual || t == TransmissionAutomatic
}

// # Core Entities

// Chassis is one physical vehicle inside a Car listing. It is an owned value:
// persisted as part of the car document, never addressable on its own.
type Chassis struct {
	Number         string       `json:"number"`
	InternalColor  *string      `json:"internal_color,omitempty"`
	ExternalColor  *string      `json:"external_color,omitempty"`
	Status         Status       `json:"status"`
	ReservedBy     *string      `json:"reserved_by,omitempty"` // User id; nil unless a reservation holds it
	Transmission   Transmission `json:"transmission"`
	PriceCash      float64      `json:"price_cash"`
	PriceFinance   float64      `json:"price_finance"`
	EngineCapacity *string      `json:"engine_capacity,omitempty"`
	FuelCapacity   *string      `json:"fuel_capacity,omitempty"`
	Location       *string      `json:"location,omitempty"`
	SeatType       *string      `json:"seat_type,omitempty"`
}

// Ref is a hydrated taxonomy reference carried on car reads. A nil Ref on a
// read means the referenced row has been deleted since the car was written.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// YearRef is the hydrated model-year reference; years carry a numeric value
// rather than a name.
type YearRef struct {
	ID    string `json:"id"`
	Value int    `json:"value"`
}

// Car is the aggregate root for a showroom listing.
type Car struct {
	ID          string    `json:"id"` // UUIDv7
	BrandID     string    `json:"brand_id"`
	AgentID     *string   `json:"agent_id,omitempty"`
	CarNameID   string    `json:"car_name_id"`
	GradeID     string    `json:"grade_id"`
	YearID      string    `json:"year_id"`
	Chassis     []Chassis `json:"chassis"` // At least one element
	Images      []string  `json:"images"`  // Public URLs, insertion order
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated on reads
	Brand   *Ref     `json:"brand,omitempty"`
	Agent   *Ref     `json:"agent,omitempty"`
	CarName *Ref     `json:"car_name,omitempty"`
	Grade   *Ref     `json:"grade,omitempty"`
	Year    *YearRef `json:"year,omitempty"`
}

// # Filtering

// Filter carries the optional listing dimensions. Zero values (empty string,
// nil pointer) disable a dimension; active dimensions combine with AND.
//
// Status and the price ranges apply at the chassis level: a car matches when
// any single chassis element satisfies the clause. Min and Max of the same
// price field must hold for one and the same element.
type Filter struct {
	BrandID   string
	AgentID   string
	CarNameID string
	GradeID   string
	YearID    string

	Status Status

	PriceCashMin    *float64
	PriceCashMax    *float64
	PriceFinanceMin *float64
	PriceFinanceMax *float64
}

// # Field Identifiers

const (
	FieldBrandID      = "brand_id"
	FieldAgentID      = "agent_id"
	FieldCarNameID    = "car_name_id"
	FieldGradeID      = "grade_id"
	FieldYearID       = "year_id"
	FieldChassis      = "chassis"
	FieldNumber       = "number"
	FieldStatus       = "status"
	FieldTransmission = "transmission"
	FieldPriceCash    = "price_cash"
	FieldPriceFinance = "price_finance"
	FieldImages       = "images"
	FieldDescription  = "description"
)
