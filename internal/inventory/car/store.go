// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package car

import "context"

// Repository defines persistence for the car aggregate. The embedded chassis
// collection travels with the car on every read and write.
type Repository interface {

	/*
		List returns a filtered, paginated slice of cars and the total count,
		newest first.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit, offset: int

		Returns:
		  - []*Car: Page of matching cars
		  - int: Total matching count
		  - error: Database failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Car, int, error)

	/*
		FindByID returns one car with its full chassis collection and images.

		Returns:
		  - *Car: The car
		  - error: dberr.ErrNotFound when missing
	*/
	FindByID(context context.Context, id string) (*Car, error)

	// Create inserts the aggregate and backfills timestamps.
	Create(context context.Context, car *Car) error

	// Update rewrites every mutable column, chassis collection included.
	Update(context context.Context, car *Car) error

	// Delete removes the row. dberr.ErrNotFound when no row matched.
	Delete(context context.Context, id string) error
}

// TaxonomyDirectory is the read-side view of the classification hierarchy the
// car service needs: pure existence checks, one per reference kind.
type TaxonomyDirectory interface {
	HasBrand(context context.Context, id string) (bool, error)
	HasAgent(context context.Context, id string) (bool, error)
	HasCarName(context context.Context, id string) (bool, error)
	HasGrade(context context.Context, id string) (bool, error)
	HasYear(context context.Context, id string) (bool, error)
}

// existenceCheck is the shape shared by every [TaxonomyDirectory] lookup.
type existenceCheck func(context.Context, string) (bool, error)
