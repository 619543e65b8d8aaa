// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package taxonomy

import "context"

// Repository defines persistence for all five taxonomy entities.
//
// Listing operations return the page slice together with the total row count
// for the active filter, so callers can derive pagination metadata from a
// single round trip.
type Repository interface {
	// # Brand

	/*
		ListBrands returns a page of brands, newest first.

		Parameters:
		- context: context.Context
		- limit: int
		- offset: int

		Returns:
		- []*Brand: page of brands
		- int: total count
		- error: database failure
	*/
	ListBrands(context context.Context, limit, offset int) ([]*Brand, int, error)

	/*
		FindBrandByID returns one brand.

		Returns:
		- *Brand: the brand
		- error: apperr.ErrNotFound when missing
	*/
	FindBrandByID(context context.Context, id string) (*Brand, error)

	/*
		BrandNameExists reports whether a brand with the given name exists,
		excluding the row identified by excludeID (empty string excludes
		nothing).
	*/
	BrandNameExists(context context.Context, name, excludeID string) (bool, error)

	CreateBrand(context context.Context, brand *Brand) error
	UpdateBrand(context context.Context, brand *Brand) error
	DeleteBrand(context context.Context, id string) error

	// # Agent

	/*
		ListAgents returns a page of agents, newest first, optionally
		filtered to one brand (empty brandID means all brands). Each agent
		carries its parent Brand.
	*/
	ListAgents(context context.Context, brandID string, limit, offset int) ([]*Agent, int, error)
	FindAgentByID(context context.Context, id string) (*Agent, error)

	// AgentNameExists checks (name, brandID) uniqueness, excluding excludeID.
	AgentNameExists(context context.Context, name, brandID, excludeID string) (bool, error)

	CreateAgent(context context.Context, agent *Agent) error
	UpdateAgent(context context.Context, agent *Agent) error
	DeleteAgent(context context.Context, id string) error

	// # CarName

	ListCarNames(context context.Context, brandID string, limit, offset int) ([]*CarName, int, error)
	FindCarNameByID(context context.Context, id string) (*CarName, error)

	// CarNameExists checks (name, brandID) uniqueness, excluding excludeID.
	CarNameExists(context context.Context, name, brandID, excludeID string) (bool, error)

	CreateCarName(context context.Context, carName *CarName) error
	UpdateCarName(context context.Context, carName *CarName) error
	DeleteCarName(context context.Context, id string) error

	// # Grade

	ListGrades(context context.Context, carNameID string, limit, offset int) ([]*Grade, int, error)
	FindGradeByID(context context.Context, id string) (*Grade, error)

	// GradeNameExists checks (name, carNameID) uniqueness, excluding excludeID.
	GradeNameExists(context context.Context, name, carNameID, excludeID string) (bool, error)

	CreateGrade(context context.Context, grade *Grade) error
	UpdateGrade(context context.Context, grade *Grade) error
	DeleteGrade(context context.Context, id string) error

	// # Year

	/*
		ListYears returns a page of years ordered by value descending,
		optionally filtered to one grade.
	*/
	ListYears(context context.Context, gradeID string, limit, offset int) ([]*Year, int, error)
	FindYearByID(context context.Context, id string) (*Year, error)

	// YearValueExists checks (value, gradeID) uniqueness, excluding excludeID.
	YearValueExists(context context.Context, value int, gradeID, excludeID string) (bool, error)

	CreateYear(context context.Context, year *Year) error
	UpdateYear(context context.Context, year *Year) error
	DeleteYear(context context.Context, id string) error
}
