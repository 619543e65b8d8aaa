// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package taxonomy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danuarta/motoria/internal/platform/apperr"
	"github.com/danuarta/motoria/internal/platform/media"
	"github.com/danuarta/motoria/internal/platform/validate"
	"github.com/danuarta/motoria/pkg/pagination"
	"github.com/danuarta/motoria/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business rules for the classification hierarchy:
// parent existence, scoped uniqueness, and brand logo storage.
type Service struct {
	repo   Repository
	blobs  media.Store
	logger *slog.Logger
}

// NewService constructs a new taxonomy [Service].
func NewService(repo Repository, blobs media.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		logger: logger,
	}
}

// # Inputs

// BrandInput carries the fields accepted when creating a brand.
// Image is optional.
type BrandInput struct {
	Name  string
	Image *media.Upload
}

// BrandPatch carries the fields accepted when updating a brand.
// Nil pointers leave the current value untouched; a non-nil Image replaces
// the existing logo and removes the old blob best-effort.
type BrandPatch struct {
	Name  *string
	Image *media.Upload
}

// ScopedInput carries the fields for creating a named, parent-scoped entity
// (agent, car name, or grade).
type ScopedInput struct {
	Name     string
	ParentID string
}

// ScopedPatch carries the optional fields for updating a named, parent-scoped
// entity. Changing ParentID re-homes the entity, with uniqueness re-checked in
// the new scope.
type ScopedPatch struct {
	Name     *string
	ParentID *string
}

// YearInput carries the fields for creating a model year.
type YearInput struct {
	Value   int
	GradeID string
}

// YearPatch carries the optional fields for updating a model year.
type YearPatch struct {
	Value   *int
	GradeID *string
}

// # Brand Management

/*
ListBrands retrieves a paginated list of brands, newest first.

Parameters:
  - context: context.Context
  - page: pagination.Params

Returns:
  - []*Brand: Page of brands
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListBrands(context context.Context, page pagination.Params) ([]*Brand, int, error) {
	return service.repo.ListBrands(context, page.Limit, page.Offset())
}

/*
GetBrand retrieves a brand by its UUID.

Returns:
  - *Brand: Hydrated brand entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetBrand(context context.Context, id string) (*Brand, error) {
	return service.repo.FindBrandByID(context, id)
}

/*
CreateBrand registers a new manufacturer, optionally storing its logo.

Description: The logo blob is uploaded first; if the subsequent insert fails
(for example a duplicate name raced past the pre-check), the blob is removed
again so storage never accumulates orphans from failed creates.

Parameters:
  - context: context.Context
  - input: BrandInput

Returns:
  - *Brand: The created brand
  - error: Validation, Conflict, or persistence failures
*/
func (service *Service) CreateBrand(context context.Context, input BrandInput) (*Brand, error) {
	name := strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	taken, err := service.repo.BrandNameExists(context, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Brand name already exists")
	}

	brand := &Brand{ID: uuidv7.New(), Name: name}

	if input.Image != nil {
		url, err := service.blobs.Upload(context, input.Image.Filename, input.Image.Content)
		if err != nil {
			return nil, err
		}
		brand.ImageURL = &url
	}

	if err := service.repo.CreateBrand(context, brand); err != nil {
		service.compensateBlobs(context, brand.ImageURL)
		return nil, err
	}

	service.logger.Info("brand_created", slog.String("brand_id", brand.ID))
	return brand, nil
}

/*
UpdateBrand applies a partial update to a brand.

Description: When a new logo is supplied the old blob is deleted after the row
update succeeds; a failing blob delete is logged and not propagated, since the
database is already consistent.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - patch: BrandPatch

Returns:
  - *Brand: The updated brand
  - error: NotFound, Conflict, validation, or persistence failures
*/
func (service *Service) UpdateBrand(context context.Context, id string, patch BrandPatch) (*Brand, error) {
	brand, err := service.repo.FindBrandByID(context, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)

		validator := &validate.Validator{}
		validator.Required(FieldName, name).MaxLen(FieldName, name, 200)
		if err := validator.Err(); err != nil {
			return nil, err
		}

		taken, err := service.repo.BrandNameExists(context, name, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("Brand name already exists")
		}
		brand.Name = name
	}

	var staleLogo *string
	if patch.Image != nil {
		url, err := service.blobs.Upload(context, patch.Image.Filename, patch.Image.Content)
		if err != nil {
			return nil, err
		}
		staleLogo = brand.ImageURL
		brand.ImageURL = &url
	}

	if err := service.repo.UpdateBrand(context, brand); err != nil {
		service.compensateBlobs(context, brand.ImageURL)
		return nil, err
	}

	service.cleanupBlobs(context, staleLogo)

	service.logger.Info("brand_updated", slog.String("brand_id", brand.ID))
	return brand, nil
}

/*
DeleteBrand removes a brand row and, best-effort, its logo blob.

Description: No dependent check is performed. Agents, car names, and cars that
reference the brand keep their dangling id; reads tolerate the orphan.

Returns:
  - error: ErrNotFound if missing, or persistence failures
*/
func (service *Service) DeleteBrand(context context.Context, id string) error {
	brand, err := service.repo.FindBrandByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteBrand(context, id); err != nil {
		return err
	}

	service.cleanupBlobs(context, brand.ImageURL)

	service.logger.Info("brand_deleted", slog.String("brand_id", id))
	return nil
}

// # Agent Management

/*
ListAgents retrieves a paginated list of agents, newest first.

Parameters:
  - context: context.Context
  - brandID: string (empty means all brands)
  - page: pagination.Params

Returns:
  - []*Agent: Page of agents with their parent brand populated
  - int: Total count
  - error: Retrieval failures
*/
func (service *Service) ListAgents(context context.Context, brandID string, page pagination.Params) ([]*Agent, int, error) {
	return service.repo.ListAgents(context, brandID, page.Limit, page.Offset())
}

// GetAgent retrieves an agent by its UUID.
func (service *Service) GetAgent(context context.Context, id string) (*Agent, error) {
	return service.repo.FindAgentByID(context, id)
}

/*
CreateAgent registers a dealer under a brand.

Description: The parent brand must exist (NotFound otherwise) and the name
must be unique within that brand (Conflict otherwise). The same agent name
under a different brand is allowed.

Parameters:
  - context: context.Context
  - input: ScopedInput (ParentID is the brand id)

Returns:
  - *Agent: The created agent
  - error: Validation, NotFound, Conflict, or persistence failures
*/
func (service *Service) CreateAgent(context context.Context, input ScopedInput) (*Agent, error) {
	if err := validateScopedInput(&input, FieldBrandID); err != nil {
		return nil, err
	}

	parent, err := service.repo.FindBrandByID(context, input.ParentID)
	if err != nil {
		return nil, err
	}

	taken, err := service.repo.AgentNameExists(context, input.Name, input.ParentID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Agent name already exists for this brand")
	}

	agent := &Agent{ID: uuidv7.New(), BrandID: input.ParentID, Name: input.Name}
	if err := service.repo.CreateAgent(context, agent); err != nil {
		return nil, err
	}
	agent.Brand = parent

	service.logger.Info("agent_created",
		slog.String("agent_id", agent.ID),
		slog.String("brand_id", agent.BrandID),
	)
	return agent, nil
}

/*
UpdateAgent applies a partial update to an agent, re-checking scoped
uniqueness against the effective (name, brand) pair.

Returns:
  - *Agent: The updated agent
  - error: NotFound, Conflict, validation, or persistence failures
*/
func (service *Service) UpdateAgent(context context.Context, id string, patch ScopedPatch) (*Agent, error) {
	agent, err := service.repo.FindAgentByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := applyScopedPatch(context, patch, FieldBrandID, &agent.Name, &agent.BrandID, service.brandExists); err != nil {
		return nil, err
	}

	taken, err := service.repo.AgentNameExists(context, agent.Name, agent.BrandID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Agent name already exists for this brand")
	}

	if err := service.repo.UpdateAgent(context, agent); err != nil {
		return nil, err
	}

	service.logger.Info("agent_updated", slog.String("agent_id", id))
	return service.repo.FindAgentByID(context, id)
}

// DeleteAgent removes an agent. Cars referencing it keep their dangling id.
func (service *Service) DeleteAgent(context context.Context, id string) error {
	if err := service.repo.DeleteAgent(context, id); err != nil {
		return err
	}

	service.logger.Info("agent_deleted", slog.String("agent_id", id))
	return nil
}

// # Car Name Management

/*
ListCarNames retrieves a paginated list of model names, newest first,
optionally scoped to one brand.
*/
func (service *Service) ListCarNames(context context.Context, brandID string, page pagination.Params) ([]*CarName, int, error) {
	return service.repo.ListCarNames(context, brandID, page.Limit, page.Offset())
}

// GetCarName retrieves a model name by its UUID.
func (service *Service) GetCarName(context context.Context, id string) (*CarName, error) {
	return service.repo.FindCarNameByID(context, id)
}

/*
CreateCarName registers a model name under a brand. Same contract as
[Service.CreateAgent]: parent must exist, (name, brand) must be free.
*/
func (service *Service) CreateCarName(context context.Context, input ScopedInput) (*CarName, error) {
	if err := validateScopedInput(&input, FieldBrandID); err != nil {
		return nil, err
	}

	parent, err := service.repo.FindBrandByID(context, input.ParentID)
	if err != nil {
		return nil, err
	}

	taken, err := service.repo.CarNameExists(context, input.Name, input.ParentID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Car name already exists for this brand")
	}

	carName := &CarName{ID: uuidv7.New(), BrandID: input.ParentID, Name: input.Name}
	if err := service.repo.CreateCarName(context, carName); err != nil {
		return nil, err
	}
	carName.Brand = parent

	service.logger.Info("car_name_created",
		slog.String("car_name_id", carName.ID),
		slog.String("brand_id", carName.BrandID),
	)
	return carName, nil
}

// UpdateCarName applies a partial update to a model name.
func (service *Service) UpdateCarName(context context.Context, id string, patch ScopedPatch) (*CarName, error) {
	carName, err := service.repo.FindCarNameByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := applyScopedPatch(context, patch, FieldBrandID, &carName.Name, &carName.BrandID, service.brandExists); err != nil {
		return nil, err
	}

	taken, err := service.repo.CarNameExists(context, carName.Name, carName.BrandID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Car name already exists for this brand")
	}

	if err := service.repo.UpdateCarName(context, carName); err != nil {
		return nil, err
	}

	service.logger.Info("car_name_updated", slog.String("car_name_id", id))
	return service.repo.FindCarNameByID(context, id)
}

// DeleteCarName removes a model name. Grades and cars referencing it keep
// their dangling id.
func (service *Service) DeleteCarName(context context.Context, id string) error {
	if err := service.repo.DeleteCarName(context, id); err != nil {
		return err
	}

	service.logger.Info("car_name_deleted", slog.String("car_name_id", id))
	return nil
}

// # Grade Management

// ListGrades retrieves a paginated list of trim levels, newest first,
// optionally scoped to one model name.
func (service *Service) ListGrades(context context.Context, carNameID string, page pagination.Params) ([]*Grade, int, error) {
	return service.repo.ListGrades(context, carNameID, page.Limit, page.Offset())
}

// GetGrade retrieves a trim level by its UUID.
func (service *Service) GetGrade(context context.Context, id string) (*Grade, error) {
	return service.repo.FindGradeByID(context, id)
}

/*
CreateGrade registers a trim level under a model name. Parent must exist,
(name, car name) must be free.
*/
func (service *Service) CreateGrade(context context.Context, input ScopedInput) (*Grade, error) {
	if err := validateScopedInput(&input, FieldCarNameID); err != nil {
		return nil, err
	}

	parent, err := service.repo.FindCarNameByID(context, input.ParentID)
	if err != nil {
		return nil, err
	}

	taken, err := service.repo.GradeNameExists(context, input.Name, input.ParentID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Grade name already exists for this car name")
	}

	grade := &Grade{ID: uuidv7.New(), CarNameID: input.ParentID, Name: input.Name}
	if err := service.repo.CreateGrade(context, grade); err != nil {
		return nil, err
	}
	grade.CarName = parent

	service.logger.Info("grade_created",
		slog.String("grade_id", grade.ID),
		slog.String("car_name_id", grade.CarNameID),
	)
	return grade, nil
}

// UpdateGrade applies a partial update to a trim level.
func (service *Service) UpdateGrade(context context.Context, id string, patch ScopedPatch) (*Grade, error) {
	grade, err := service.repo.FindGradeByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := applyScopedPatch(context, patch, FieldCarNameID, &grade.Name, &grade.CarNameID, service.carNameExists); err != nil {
		return nil, err
	}

	taken, err := service.repo.GradeNameExists(context, grade.Name, grade.CarNameID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Grade name already exists for this car name")
	}

	if err := service.repo.UpdateGrade(context, grade); err != nil {
		return nil, err
	}

	service.logger.Info("grade_updated", slog.String("grade_id", id))
	return service.repo.FindGradeByID(context, id)
}

// DeleteGrade removes a trim level. Years and cars referencing it keep
// their dangling id.
func (service *Service) DeleteGrade(context context.Context, id string) error {
	if err := service.repo.DeleteGrade(context, id); err != nil {
		return err
	}

	service.logger.Info("grade_deleted", slog.String("grade_id", id))
	return nil
}

// # Year Management

// ListYears retrieves a paginated list of model years ordered by value
// descending, optionally scoped to one grade.
func (service *Service) ListYears(context context.Context, gradeID string, page pagination.Params) ([]*Year, int, error) {
	return service.repo.ListYears(context, gradeID, page.Limit, page.Offset())
}

// GetYear retrieves a model year by its UUID.
func (service *Service) GetYear(context context.Context, id string) (*Year, error) {
	return service.repo.FindYearByID(context, id)
}

/*
CreateYear registers a model year under a grade.

Description: Value must fall within [MinYearValue, MaxYearValue]; the parent
grade must exist; (value, grade) must be free.

Parameters:
  - context: context.Context
  - input: YearInput

Returns:
  - *Year: The created year
  - error: Validation, NotFound, Conflict, or persistence failures
*/
func (service *Service) CreateYear(context context.Context, input YearInput) (*Year, error) {
	validator := &validate.Validator{}
	validator.Range(FieldValue, input.Value, MinYearValue, MaxYearValue)
	validator.Required(FieldGradeID, input.GradeID).UUID(FieldGradeID, input.GradeID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	parent, err := service.repo.FindGradeByID(context, input.GradeID)
	if err != nil {
		return nil, err
	}

	taken, err := service.repo.YearValueExists(context, input.Value, input.GradeID, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Year already exists for this grade")
	}

	year := &Year{ID: uuidv7.New(), GradeID: input.GradeID, Value: input.Value}
	if err := service.repo.CreateYear(context, year); err != nil {
		return nil, err
	}
	year.Grade = parent

	service.logger.Info("year_created",
		slog.String("year_id", year.ID),
		slog.Int("value", year.Value),
	)
	return year, nil
}

// UpdateYear applies a partial update to a model year.
func (service *Service) UpdateYear(context context.Context, id string, patch YearPatch) (*Year, error) {
	year, err := service.repo.FindYearByID(context, id)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	if patch.Value != nil {
		validator.Range(FieldValue, *patch.Value, MinYearValue, MaxYearValue)
	}
	if patch.GradeID != nil {
		validator.Required(FieldGradeID, *patch.GradeID).UUID(FieldGradeID, *patch.GradeID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if patch.Value != nil {
		year.Value = *patch.Value
	}
	if patch.GradeID != nil {
		if _, err := service.repo.FindGradeByID(context, *patch.GradeID); err != nil {
			return nil, err
		}
		year.GradeID = *patch.GradeID
	}

	taken, err := service.repo.YearValueExists(context, year.Value, year.GradeID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Year already exists for this grade")
	}

	if err := service.repo.UpdateYear(context, year); err != nil {
		return nil, err
	}

	service.logger.Info("year_updated", slog.String("year_id", id))
	return service.repo.FindYearByID(context, id)
}

// DeleteYear removes a model year. Cars referencing it keep their dangling id.
func (service *Service) DeleteYear(context context.Context, id string) error {
	if err := service.repo.DeleteYear(context, id); err != nil {
		return err
	}

	service.logger.Info("year_deleted", slog.String("year_id", id))
	return nil
}

// # Helpers

func (service *Service) brandExists(context context.Context, id string) error {
	_, err := service.repo.FindBrandByID(context, id)
	return err
}

func (service *Service) carNameExists(context context.Context, id string) error {
	_, err := service.repo.FindCarNameByID(context, id)
	return err
}

func validateScopedInput(input *ScopedInput, parentField string) error {
	input.Name = strings.TrimSpace(input.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 200)
	validator.Required(parentField, input.ParentID).UUID(parentField, input.ParentID)
	return validator.Err()
}

// applyScopedPatch merges a ScopedPatch into the entity's name and parent id
// fields, validating the new values and verifying the new parent exists.
func applyScopedPatch(context context.Context, patch ScopedPatch, parentField string, name, parentID *string, findParent func(context.Context, string) error) error {
	validator := &validate.Validator{}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		patch.Name = &trimmed
		validator.Required(FieldName, trimmed).MaxLen(FieldName, trimmed, 200)
	}
	if patch.ParentID != nil {
		validator.Required(parentField, *patch.ParentID).UUID(parentField, *patch.ParentID)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if patch.Name != nil {
		*name = *patch.Name
	}
	if patch.ParentID != nil {
		if err := findParent(context, *patch.ParentID); err != nil {
			return err
		}
		*parentID = *patch.ParentID
	}
	return nil
}

// compensateBlobs removes blobs uploaded during an operation that then
// failed. Failures are logged only; the original error is what the caller
// propagates.
func (service *Service) compensateBlobs(context context.Context, urls ...*string) {
	for _, url := range urls {
		if url == nil {
			continue
		}
		if err := service.blobs.Delete(context, *url); err != nil {
			service.logger.Warn("blob_compensation_failed",
				slog.String("url", *url),
				slog.String("error", err.Error()),
			)
		}
	}
}

// cleanupBlobs removes blobs that became unreferenced after a successful
// update or delete. Best effort: failures are logged, never propagated.
func (service *Service) cleanupBlobs(context context.Context, urls ...*string) {
	for _, url := range urls {
		if url == nil {
			continue
		}
		if err := service.blobs.Delete(context, *url); err != nil {
			service.logger.Warn("blob_cleanup_failed",
				slog.String("url", *url),
				slog.String("error", err.Error()),
			)
		}
	}
}
