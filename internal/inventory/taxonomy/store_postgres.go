// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package taxonomy

import (
	"context"
	"fmt"

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

// # Brand

func (repository *PostgresRepository) ListBrands(context context.Context, limit, offset int) ([]*Brand, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COUNT(*) OVER() AS total
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvBrand.CreatedAt, schema.InvBrand.UpdatedAt,
		schema.InvBrand.Table, schema.InvBrand.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_brands")
	}
	defer rows.Close()

	brands := make([]*Brand, 0)
	total := 0
	for rows.Next() {
		b := &Brand{}
		if err := rows.Scan(&b.ID, &b.Name, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_brand")
		}
		brands = append(brands, b)
	}

	return brands, total, nil
}

func (repository *PostgresRepository) FindBrandByID(context context.Context, id string) (*Brand, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s::text = $1
	`,
		schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvBrand.CreatedAt, schema.InvBrand.UpdatedAt,
		schema.InvBrand.Table, schema.InvBrand.ID,
	)
	b := &Brand{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&b.ID, &b.Name, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_brand_by_id")
	}

	return b, nil
}

func (repository *PostgresRepository) BrandNameExists(context context.Context, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND ($2 = '' OR %s::text <> $2)
		)
	`,
		schema.InvBrand.Table, schema.InvBrand.Name, schema.InvBrand.ID,
	)

	var exists bool
	err := repository.db.QueryRow(context, query, name, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, "brand_name_exists")
}

func (repository *PostgresRepository) CreateBrand(context context.Context, brand *Brand) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.InvBrand.Table, schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvBrand.CreatedAt, schema.InvBrand.UpdatedAt,
		schema.InvBrand.CreatedAt, schema.InvBrand.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, brand.ID, brand.Name, brand.ImageURL).
		Scan(&brand.CreatedAt, &brand.UpdatedAt)
	return dberr.Wrap(err, "create_brand")
}

func (repository *PostgresRepository) UpdateBrand(context context.Context, brand *Brand) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s::text = $1
		RETURNING %s
	`,
		schema.InvBrand.Table, schema.InvBrand.Name, schema.InvBrand.ImageURL, schema.InvBrand.UpdatedAt,
		schema.InvBrand.ID, schema.InvBrand.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, brand.ID, brand.Name, brand.ImageURL).
		Scan(&brand.UpdatedAt)
	return dberr.Wrap(err, "update_brand")
}

func (repository *PostgresRepository) DeleteBrand(context context.Context, id string) error {
	return repository.deleteByID(context, schema.InvBrand.Table, schema.InvBrand.ID, id, "delete_brand")
}

// # Agent

func (repository *PostgresRepository) ListAgents(context context.Context, brandID string, limit, offset int) ([]*Agent, int, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s,
		       b.%s, b.%s, b.%s,
		       COUNT(*) OVER() AS total
		FROM %s a
		LEFT JOIN %s b ON a.%s = b.%s
		WHERE ($1 = '' OR a.%s::text = $1)
		ORDER BY a.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.InvAgent.ID, schema.InvAgent.BrandID, schema.InvAgent.Name,
		schema.InvAgent.CreatedAt, schema.InvAgent.UpdatedAt,
		schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvAgent.Table, schema.InvBrand.Table,
		schema.InvAgent.BrandID, schema.InvBrand.ID,
		schema.InvAgent.BrandID, schema.InvAgent.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, brandID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_agents")
	}
	defer rows.Close()

	agents := make([]*Agent, 0)
	total := 0
	for rows.Next() {
		a := &Agent{}
		var bID, bName, bImage *string
		if err := rows.Scan(&a.ID, &a.BrandID, &a.Name, &a.CreatedAt, &a.UpdatedAt,
			&bID, &bName, &bImage, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_agent")
		}
		// The parent row may have been deleted after this agent was created;
		// deletes do not cascade.
		if bID != nil {
			a.Brand = &Brand{ID: *bID, Name: *bName, ImageURL: bImage}
		}
		agents = append(agents, a)
	}

	return agents, total, nil
}

func (repository *PostgresRepository) FindAgentByID(context context.Context, id string) (*Agent, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s,
		       b.%s, b.%s, b.%s
		FROM %s a
		LEFT JOIN %s b ON a.%s = b.%s
		WHERE a.%s::text = $1
	`,
		schema.InvAgent.ID, schema.InvAgent.BrandID, schema.InvAgent.Name,
		schema.InvAgent.CreatedAt, schema.InvAgent.UpdatedAt,
		schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvAgent.Table, schema.InvBrand.Table,
		schema.InvAgent.BrandID, schema.InvBrand.ID, schema.InvAgent.ID,
	)
	a := &Agent{}
	var bID, bName, bImage *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&a.ID, &a.BrandID, &a.Name, &a.CreatedAt, &a.UpdatedAt,
		&bID, &bName, &bImage,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_agent_by_id")
	}

	if bID != nil {
		a.Brand = &Brand{ID: *bID, Name: *bName, ImageURL: bImage}
	}
	return a, nil
}

func (repository *PostgresRepository) AgentNameExists(context context.Context, name, brandID, excludeID string) (bool, error) {
	return repository.scopedNameExists(context, schema.InvAgent.Table,
		schema.InvAgent.Name, schema.InvAgent.BrandID, schema.InvAgent.ID,
		name, brandID, excludeID, "agent_name_exists")
}

func (repository *PostgresRepository) CreateAgent(context context.Context, agent *Agent) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2::uuid, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.InvAgent.Table, schema.InvAgent.ID, schema.InvAgent.BrandID, schema.InvAgent.Name,
		schema.InvAgent.CreatedAt, schema.InvAgent.UpdatedAt,
		schema.InvAgent.CreatedAt, schema.InvAgent.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, agent.ID, agent.BrandID, agent.Name).
		Scan(&agent.CreatedAt, &agent.UpdatedAt)
	return dberr.Wrap(err, "create_agent")
}

func (repository *PostgresRepository) UpdateAgent(context context.Context, agent *Agent) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2::uuid, %s = $3, %s = NOW()
		WHERE %s::text = $1
		RETURNING %s
	`,
		schema.InvAgent.Table, schema.InvAgent.BrandID, schema.InvAgent.Name, schema.InvAgent.UpdatedAt,
		schema.InvAgent.ID, schema.InvAgent.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, agent.ID, agent.BrandID, agent.Name).
		Scan(&agent.UpdatedAt)
	return dberr.Wrap(err, "update_agent")
}

func (repository *PostgresRepository) DeleteAgent(context context.Context, id string) error {
	return repository.deleteByID(context, schema.InvAgent.Table, schema.InvAgent.ID, id, "delete_agent")
}

// # CarName

func (repository *PostgresRepository) ListCarNames(context context.Context, brandID string, limit, offset int) ([]*CarName, int, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
		       b.%s, b.%s, b.%s,
		       COUNT(*) OVER() AS total
		FROM %s c
		LEFT JOIN %s b ON c.%s = b.%s
		WHERE ($1 = '' OR c.%s::text = $1)
		ORDER BY c.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.InvCarName.ID, schema.InvCarName.BrandID, schema.InvCarName.Name,
		schema.InvCarName.CreatedAt, schema.InvCarName.UpdatedAt,
		schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvCarName.Table, schema.InvBrand.Table,
		schema.InvCarName.BrandID, schema.InvBrand.ID,
		schema.InvCarName.BrandID, schema.InvCarName.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, brandID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_car_names")
	}
	defer rows.Close()

	carNames := make([]*CarName, 0)
	total := 0
	for rows.Next() {
		c := &CarName{}
		var bID, bName, bImage *string
		if err := rows.Scan(&c.ID, &c.BrandID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
			&bID, &bName, &bImage, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_car_name")
		}
		if bID != nil {
			c.Brand = &Brand{ID: *bID, Name: *bName, ImageURL: bImage}
		}
		carNames = append(carNames, c)
	}

	return carNames, total, nil
}

func (repository *PostgresRepository) FindCarNameByID(context context.Context, id string) (*CarName, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, c.%s, c.%s,
		       b.%s, b.%s, b.%s
		FROM %s c
		LEFT JOIN %s b ON c.%s = b.%s
		WHERE c.%s::text = $1
	`,
		schema.InvCarName.ID, schema.InvCarName.BrandID, schema.InvCarName.Name,
		schema.InvCarName.CreatedAt, schema.InvCarName.UpdatedAt,
		schema.InvBrand.ID, schema.InvBrand.Name, schema.InvBrand.ImageURL,
		schema.InvCarName.Table, schema.InvBrand.Table,
		schema.InvCarName.BrandID, schema.InvBrand.ID, schema.InvCarName.ID,
	)
	c := &CarName{}
	var bID, bName, bImage *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.BrandID, &c.Name, &c.CreatedAt, &c.UpdatedAt,
		&bID, &bName, &bImage,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_car_name_by_id")
	}

	if bID != nil {
		c.Brand = &Brand{ID: *bID, Name: *bName, ImageURL: bImage}
	}
	return c, nil
}

func (repository *PostgresRepository) CarNameExists(context context.Context, name, brandID, excludeID string) (bool, error) {
	return repository.scopedNameExists(context, schema.InvCarName.Table,
		schema.InvCarName.Name, schema.InvCarName.BrandID, schema.InvCarName.ID,
		name, brandID, excludeID, "car_name_exists")
}

func (repository *PostgresRepository) CreateCarName(context context.Context, carName *CarName) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2::uuid, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.InvCarName.Table, schema.InvCarName.ID, schema.InvCarName.BrandID, schema.InvCarName.Name,
		schema.InvCarName.CreatedAt, schema.InvCarName.UpdatedAt,
		schema.InvCarName.CreatedAt, schema.InvCarName.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, carName.ID, carName.BrandID, carName.Name).
		Scan(&carName.CreatedAt, &carName.UpdatedAt)
	return dberr.Wrap(err, "create_car_name")
}

func (repository *PostgresRepository) UpdateCarName(context context.Context, carName *CarName) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2::uuid, %s = $3, %s = NOW()
		WHERE %s::text = $1
		RETURNING %s
	`,
		schema.InvCarName.Table, schema.InvCarName.BrandID, schema.InvCarName.Name, schema.InvCarName.UpdatedAt,
		schema.InvCarName.ID, schema.InvCarName.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, carName.ID, carName.BrandID, carName.Name).
		Scan(&carName.UpdatedAt)
	return dberr.Wrap(err, "update_car_name")
}

func (repository *PostgresRepository) DeleteCarName(context context.Context, id string) error {
	return repository.deleteByID(context, schema.InvCarName.Table, schema.InvCarName.ID, id, "delete_car_name")
}

// # Grade

func (repository *PostgresRepository) ListGrades(context context.Context, carNameID string, limit, offset int) ([]*Grade, int, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s, g.%s,
		       c.%s, c.%s, c.%s,
		       COUNT(*) OVER() AS total
		FROM %s g
		LEFT JOIN %s c ON g.%s = c.%s
		WHERE ($1 = '' OR g.%s::text = $1)
		ORDER BY g.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.InvGrade.ID, schema.InvGrade.CarNameID, schema.InvGrade.Name,
		schema.InvGrade.CreatedAt, schema.InvGrade.UpdatedAt,
		schema.InvCarName.ID, schema.InvCarName.BrandID, schema.InvCarName.Name,
		schema.InvGrade.Table, schema.InvCarName.Table,
		schema.InvGrade.CarNameID, schema.InvCarName.ID,
		schema.InvGrade.CarNameID, schema.InvGrade.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, carNameID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_grades")
	}
	defer rows.Close()

	grades := make([]*Grade, 0)
	total := 0
	for rows.Next() {
		g := &Grade{}
		var cID, cBrandID, cName *string
		if err := rows.Scan(&g.ID, &g.CarNameID, &g.Name, &g.CreatedAt, &g.UpdatedAt,
			&cID, &cBrandID, &cName, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_grade")
		}
		if cID != nil {
			g.CarName = &CarName{ID: *cID, BrandID: *cBrandID, Name: *cName}
		}
		grades = append(grades, g)
	}

	return grades, total, nil
}

func (repository *PostgresRepository) FindGradeByID(context context.Context, id string) (*Grade, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s, g.%s,
		       c.%s, c.%s, c.%s
		FROM %s g
		LEFT JOIN %s c ON g.%s = c.%s
		WHERE g.%s::text = $1
	`,
		schema.InvGrade.ID, schema.InvGrade.CarNameID, schema.InvGrade.Name,
		schema.InvGrade.CreatedAt, schema.InvGrade.UpdatedAt,
		schema.InvCarName.ID, schema.InvCarName.BrandID, schema.InvCarName.Name,
		schema.InvGrade.Table, schema.InvCarName.Table,
		schema.InvGrade.CarNameID, schema.InvCarName.ID, schema.InvGrade.ID,
	)
	g := &Grade{}
	var cID, cBrandID, cName *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&g.ID, &g.CarNameID, &g.Name, &g.CreatedAt, &g.UpdatedAt,
		&cID, &cBrandID, &cName,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_grade_by_id")
	}

	if cID != nil {
		g.CarName = &CarName{ID: *cID, BrandID: *cBrandID, Name: *cName}
	}
	return g, nil
}

func (repository *PostgresRepository) GradeNameExists(context context.Context, name, carNameID, excludeID string) (bool, error) {
	return repository.scopedNameExists(context, schema.InvGrade.Table,
		schema.InvGrade.Name, schema.InvGrade.CarNameID, schema.InvGrade.ID,
		name, carNameID, excludeID, "grade_name_exists")
}

func (repository *PostgresRepository) CreateGrade(context context.Context, grade *Grade) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2::uuid, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.InvGrade.Table, schema.InvGrade.ID, schema.InvGrade.CarNameID, schema.InvGrade.Name,
		schema.InvGrade.CreatedAt, schema.InvGrade.UpdatedAt,
		schema.InvGrade.CreatedAt, schema.InvGrade.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, grade.ID, grade.CarNameID, grade.Name).
		Scan(&grade.CreatedAt, &grade.UpdatedAt)
	return dberr.Wrap(err, "create_grade")
}

func (repository *PostgresRepository) UpdateGrade(context context.Context, grade *Grade) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2::uuid, %s = $3, %s = NOW()
		WHERE %s::text = $1
		RETURNING %s
	`,
		schema.InvGrade.Table, schema.InvGrade.CarNameID, schema.InvGrade.Name, schema.InvGrade.UpdatedAt,
		schema.InvGrade.ID, schema.InvGrade.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, grade.ID, grade.CarNameID, grade.Name).
		Scan(&grade.UpdatedAt)
	return dberr.Wrap(err, "update_grade")
}

func (repository *PostgresRepository) DeleteGrade(context context.Context, id string) error {
	return repository.deleteByID(context, schema.InvGrade.Table, schema.InvGrade.ID, id, "delete_grade")
}

// # Year

func (repository *PostgresRepository) ListYears(context context.Context, gradeID string, limit, offset int) ([]*Year, int, error) {
	// Ordered by value, not creation time
	query := fmt.Sprintf(`
		SELECT y.%s, y.%s, y.%s, y.%s, y.%s,
		       g.%s, g.%s, g.%s,
		       COUNT(*) OVER() AS total
		FROM %s y
		LEFT JOIN %s g ON y.%s = g.%s
		WHERE ($1 = '' OR y.%s::text = $1)
		ORDER BY y.%s DESC
		LIMIT $2 OFFSET $3
	`,
		schema.InvYear.ID, schema.InvYear.GradeID, schema.InvYear.Value,
		schema.InvYear.CreatedAt, schema.InvYear.UpdatedAt,
		schema.InvGrade.ID, schema.InvGrade.CarNameID, schema.InvGrade.Name,
		schema.InvYear.Table, schema.InvGrade.Table,
		schema.InvYear.GradeID, schema.InvGrade.ID,
		schema.InvYear.GradeID, schema.InvYear.Value,
	)

	rows, err := repository.db.Query(context, query, gradeID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_years")
	}
	defer rows.Close()

	years := make([]*Year, 0)
	total := 0
	for rows.Next() {
		y := &Year{}
		var gID, gCarNameID, gName *string
		if err := rows.Scan(&y.ID, &y.GradeID, &y.Value, &y.CreatedAt, &y.UpdatedAt,
			&gID, &gCarNameID, &gName, &total); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_year")
		}
		if gID != nil {
			y.Grade = &Grade{ID: *gID, CarNameID: *gCarNameID, Name: *gName}
		}
		years = append(years, y)
	}

	return years, total, nil
}

func (repository *PostgresRepository) FindYearByID(context context.Context, id string) (*Year, error) {
	query := fmt.Sprintf(`
		SELECT y.%s, y.%s, y.%s, y.%s, y.%s,
		       g.%s, g.%s, g.%s
		FROM %s y
		LEFT JOIN %s g ON y.%s = g.%s
		WHERE y.%s::text = $1
	`,
		schema.InvYear.ID, schema.InvYear.GradeID, schema.InvYear.Value,
		schema.InvYear.CreatedAt, schema.InvYear.UpdatedAt,
		schema.InvGrade.ID, schema.InvGrade.CarNameID, schema.InvGrade.Name,
		schema.InvYear.Table, schema.InvGrade.Table,
		schema.InvYear.GradeID, schema.InvGrade.ID, schema.InvYear.ID,
	)
	y := &Year{}
	var gID, gCarNameID, gName *string

	err := repository.db.QueryRow(context, query, id).Scan(
		&y.ID, &y.GradeID, &y.Value, &y.CreatedAt, &y.UpdatedAt,
		&gID, &gCarNameID, &gName,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_year_by_id")
	}

	if gID != nil {
		y.Grade = &Grade{ID: *gID, CarNameID: *gCarNameID, Name: *gName}
	}
	return y, nil
}

func (repository *PostgresRepository) YearValueExists(context context.Context, value int, gradeID, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s::text = $2 AND ($3 = '' OR %s::text <> $3)
		)
	`,
		schema.InvYear.Table, schema.InvYear.Value, schema.InvYear.GradeID, schema.InvYear.ID,
	)

	var exists bool
	err := repository.db.QueryRow(context, query, value, gradeID, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, "year_value_exists")
}

func (repository *PostgresRepository) CreateYear(context context.Context, year *Year) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2::uuid, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.InvYear.Table, schema.InvYear.ID, schema.InvYear.GradeID, schema.InvYear.Value,
		schema.InvYear.CreatedAt, schema.InvYear.UpdatedAt,
		schema.InvYear.CreatedAt, schema.InvYear.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, year.ID, year.GradeID, year.Value).
		Scan(&year.CreatedAt, &year.UpdatedAt)
	return dberr.Wrap(err, "create_year")
}

func (repository *PostgresRepository) UpdateYear(context context.Context, year *Year) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2::uuid, %s = $3, %s = NOW()
		WHERE %s::text = $1
		RETURNING %s
	`,
		schema.InvYear.Table, schema.InvYear.GradeID, schema.InvYear.Value, schema.InvYear.UpdatedAt,
		schema.InvYear.ID, schema.InvYear.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, year.ID, year.GradeID, year.Value).
		Scan(&year.UpdatedAt)
	return dberr.Wrap(err, "update_year")
}

func (repository *PostgresRepository) DeleteYear(context context.Context, id string) error {
	return repository.deleteByID(context, schema.InvYear.Table, schema.InvYear.ID, id, "delete_year")
}

// # Shared helpers

// scopedNameExists backs the (name, parent) uniqueness pre-checks for
// agents, car names, and grades. An empty excludeID excludes no row.
func (repository *PostgresRepository) scopedNameExists(context context.Context, table, nameCol, parentCol, idCol, name, parentID, excludeID, action string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND %s::text = $2 AND ($3 = '' OR %s::text <> $3)
		)
	`, table, nameCol, parentCol, idCol)

	var exists bool
	err := repository.db.QueryRow(context, query, name, parentID, excludeID).Scan(&exists)
	return exists, dberr.Wrap(err, action)
}

func (repository *PostgresRepository) deleteByID(context context.Context, table, idCol, id, action string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s::text = $1`, table, idCol)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, action)
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
