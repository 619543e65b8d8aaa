// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

/*
Package car persistence sits on PostgreSQL with a document-style layout:

  - JSONB: The chassis collection is a jsonb column, read and written as one
    value with its car, matching its owned-collection semantics.
  - jsonb_array_elements: Unit-level filters (status, price ranges) become
    EXISTS sub-queries over the unnested chassis elements, so a car matches
    when any single unit satisfies the clause.
  - Window Functions: COUNT(*) OVER() returns the total match count without
    a second query.
*/
package car

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danuarta/motoria/internal/platform/database/schema"
	"github.com/danuarta/motoria/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List returns a filtered, paginated slice of cars and the total count.

Description: Reference dimensions are plain column comparisons; status and
price dimensions unnest the chassis jsonb and test each element. Min and Max
of the same price field live in one EXISTS clause, so both bounds must hold
for the same physical unit.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Car: Page of hydrated cars, newest first
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Car, int, error) {
	var queryBuilder strings.Builder

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       c.%s, c.%s, c.%s, c.%s, c.%s,
		       b.%s, a.%s, cn.%s, g.%s, y.%s,
		       COUNT(*) OVER() AS total
		FROM %s c
		%s
		WHERE TRUE
	`,
		schema.InvCar.ID, schema.InvCar.BrandID, schema.InvCar.AgentID,
		schema.InvCar.CarNameID, schema.InvCar.GradeID, schema.InvCar.YearID,
		schema.InvCar.Chassis, schema.InvCar.Images, schema.InvCar.Description,
		schema.InvCar.CreatedAt, schema.InvCar.UpdatedAt,
		schema.InvBrand.Name, schema.InvAgent.Name, schema.InvCarName.Name,
		schema.InvGrade.Name, schema.InvYear.Value,
		schema.InvCar.Table,
		taxonomyJoins(),
	))

	clauses, args := FilterClauses(filter, 1)
	queryBuilder.WriteString(clauses)

	// Newest first; id is time-ordered so it breaks creation-time ties
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY c.%s DESC, c.%s DESC", schema.InvCar.CreatedAt, schema.InvCar.ID))

	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_cars")
	}
	defer rows.Close()

	cars := make([]*Car, 0)
	total := 0
	for rows.Next() {
		car := &Car{}
		var chassisJSON []byte
		var brandName, agentName, carNameName, gradeName *string
		var yearValue *int
		if err := rows.Scan(
			&car.ID, &car.BrandID, &car.AgentID,
			&car.CarNameID, &car.GradeID, &car.YearID,
			&chassisJSON, &car.Images, &car.Description,
			&car.CreatedAt, &car.UpdatedAt,
			&brandName, &agentName, &carNameName, &gradeName, &yearValue,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_car")
		}

		if err := json.Unmarshal(chassisJSON, &car.Chassis); err != nil {
			return nil, 0, dberr.Wrap(err, "decode_chassis")
		}
		if car.Images == nil {
			car.Images = make([]string, 0)
		}
		populateRefs(car, brandName, agentName, carNameName, gradeName, yearValue)
		cars = append(cars, car)
	}

	return cars, total, nil
}

// taxonomyJoins renders the LEFT JOIN block hydrating the reference names.
// LEFT, not INNER: references are not foreign keys, and a car whose taxonomy
// row was deleted must still list.
func taxonomyJoins() string {
	return fmt.Sprintf(`LEFT JOIN %s b ON b.%s = c.%s
		LEFT JOIN %s a ON a.%s = c.%s
		LEFT JOIN %s cn ON cn.%s = c.%s
		LEFT JOIN %s g ON g.%s = c.%s
		LEFT JOIN %s y ON y.%s = c.%s`,
		schema.InvBrand.Table, schema.InvBrand.ID, schema.InvCar.BrandID,
		schema.InvAgent.Table, schema.InvAgent.ID, schema.InvCar.AgentID,
		schema.InvCarName.Table, schema.InvCarName.ID, schema.InvCar.CarNameID,
		schema.InvGrade.Table, schema.InvGrade.ID, schema.InvCar.GradeID,
		schema.InvYear.Table, schema.InvYear.ID, schema.InvCar.YearID,
	)
}

// populateRefs attaches the joined taxonomy values to the car. A nil joined
// value means the referenced row no longer exists; the raw id stays on the
// car and the hydrated ref stays nil.
func populateRefs(car *Car, brandName, agentName, carNameName, gradeName *string, yearValue *int) {
	if brandName != nil {
		car.Brand = &Ref{ID: car.BrandID, Name: *brandName}
	}
	if car.AgentID != nil && agentName != nil {
		car.Agent = &Ref{ID: *car.AgentID, Name: *agentName}
	}
	if carNameName != nil {
		car.CarName = &Ref{ID: car.CarNameID, Name: *carNameName}
	}
	if gradeName != nil {
		car.Grade = &Ref{ID: car.GradeID, Name: *gradeName}
	}
	if yearValue != nil {
		car.Year = &YearRef{ID: car.YearID, Value: *yearValue}
	}
}

/*
FilterClauses renders the dynamic WHERE fragment for a car listing filter.

Description: Returns the " AND ..." clause string (empty when the filter is
zero) plus its positional arguments, numbered from firstArg. Exposed at
package level so the composition can be verified without a database.

Parameters:
  - filter: Filter
  - firstArg: int (Positional index of the first placeholder)

Returns:
  - string: SQL fragment to append after an existing WHERE
  - []any: Arguments matching the placeholders
*/
func FilterClauses(filter Filter, firstArg int) (string, []any) {
	var builder strings.Builder
	var args []any
	argID := firstArg

	ref := func(column, value string) {
		if value == "" {
			return
		}
		builder.WriteString(fmt.Sprintf(" AND c.%s::text = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	ref(schema.InvCar.BrandID, filter.BrandID)
	ref(schema.InvCar.AgentID, filter.AgentID)
	ref(schema.InvCar.CarNameID, filter.CarNameID)
	ref(schema.InvCar.GradeID, filter.GradeID)
	ref(schema.InvCar.YearID, filter.YearID)

	// Unit-level: a car matches when any chassis element satisfies the clause
	if filter.Status != "" {
		builder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.%s) elem WHERE elem->>'%s' = $%d)",
			schema.InvCar.Chassis, FieldStatus, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	priceRange := func(field string, min, max *float64) {
		if min == nil && max == nil {
			return
		}
		builder.WriteString(fmt.Sprintf(
			" AND EXISTS (SELECT 1 FROM jsonb_array_elements(c.%s) elem WHERE TRUE",
			schema.InvCar.Chassis))
		if min != nil {
			builder.WriteString(fmt.Sprintf(" AND (elem->>'%s')::numeric >= $%d", field, argID))
			args = append(args, *min)
			argID++
		}
		if max != nil {
			builder.WriteString(fmt.Sprintf(" AND (elem->>'%s')::numeric <= $%d", field, argID))
			args = append(args, *max)
			argID++
		}
		builder.WriteString(")")
	}

	priceRange(FieldPriceCash, filter.PriceCashMin, filter.PriceCashMax)
	priceRange(FieldPriceFinance, filter.PriceFinanceMin, filter.PriceFinanceMax)

	return builder.String(), args
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Car, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
		       c.%s, c.%s, c.%s, c.%s, c.%s,
		       b.%s, a.%s, cn.%s, g.%s, y.%s
		FROM %s c
		%s
		WHERE c.%s::text = $1
	`,
		schema.InvCar.ID, schema.InvCar.BrandID, schema.InvCar.AgentID,
		schema.InvCar.CarNameID, schema.InvCar.GradeID, schema.InvCar.YearID,
		schema.InvCar.Chassis, schema.InvCar.Images, schema.InvCar.Description,
		schema.InvCar.CreatedAt, schema.InvCar.UpdatedAt,
		schema.InvBrand.Name, schema.InvAgent.Name, schema.InvCarName.Name,
		schema.InvGrade.Name, schema.InvYear.Value,
		schema.InvCar.Table,
		taxonomyJoins(),
		schema.InvCar.ID,
	)

	car := &Car{}
	var chassisJSON []byte
	var brandName, agentName, carNameName, gradeName *string
	var yearValue *int
	err := repository.db.QueryRow(context, query, id).Scan(
		&car.ID, &car.BrandID, &car.AgentID,
		&car.CarNameID, &car.GradeID, &car.YearID,
		&chassisJSON, &car.Images, &car.Description,
		&car.CreatedAt, &car.UpdatedAt,
		&brandName, &agentName, &carNameName, &gradeName, &yearValue,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_car_by_id")
	}

	if err := json.Unmarshal(chassisJSON, &car.Chassis); err != nil {
		return nil, dberr.Wrap(err, "decode_chassis")
	}
	if car.Images == nil {
		car.Images = make([]string, 0)
	}
	populateRefs(car, brandName, agentName, carNameName, gradeName, yearValue)
	return car, nil
}

func (repository *PostgresRepository) Create(context context.Context, car *Car) error {
	chassisJSON, err := json.Marshal(car.Chassis)
	if err != nil {
		return dberr.Wrap(err, "encode_chassis")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2::uuid, $3::uuid, $4::uuid, $5::uuid, $6::uuid, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.InvCar.Table,
		schema.InvCar.ID, schema.InvCar.BrandID, schema.InvCar.AgentID,
		schema.InvCar.CarNameID, schema.InvCar.GradeID, schema.InvCar.YearID,
		schema.InvCar.Chassis, schema.InvCar.Images, schema.InvCar.Description,
		schema.InvCar.CreatedAt, schema.InvCar.UpdatedAt,
		schema.InvCar.CreatedAt, schema.InvCar.UpdatedAt,
	)

	err = repository.db.QueryRow(context, query,
		car.ID, car.BrandID, car.AgentID, car.CarNameID, car.GradeID, car.YearID,
		chassisJSON, car.Images, car.Description,
	).Scan(&car.CreatedAt, &car.UpdatedAt)
	return dberr.Wrap(err, "create_car")
}

func (repository *PostgresRepository) Update(context context.Context, car *Car) error {
	chassisJSON, err := json.Marshal(car.Chassis)
	if err != nil {
		return dberr.Wrap(err, "encode_chassis")
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2::uuid, %s = $3::uuid, %s = $4::uuid, %s = $5::uuid, %s = $6::uuid,
		    %s = $7, %s = $8, %s = $9, %s = NOW()
		WHERE %s::text = $1
		RETURNING %s
	`,
		schema.InvCar.Table,
		schema.InvCar.BrandID, schema.InvCar.AgentID, schema.InvCar.CarNameID,
		schema.InvCar.GradeID, schema.InvCar.YearID,
		schema.InvCar.Chassis, schema.InvCar.Images, schema.InvCar.Description,
		schema.InvCar.UpdatedAt,
		schema.InvCar.ID, schema.InvCar.UpdatedAt,
	)

	err = repository.db.QueryRow(context, query,
		car.ID, car.BrandID, car.AgentID, car.CarNameID, car.GradeID, car.YearID,
		chassisJSON, car.Images, car.Description,
	).Scan(&car.UpdatedAt)
	return dberr.Wrap(err, "update_car")
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s::text = $1`, schema.InvCar.Table, schema.InvCar.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_car")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
