// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package car

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danuarta/motoria/internal/platform/apperr"
	"github.com/danuarta/motoria/internal/platform/media"
	"github.com/danuarta/motoria/internal/platform/validate"
	"github.com/danuarta/motoria/pkg/pagination"
	"github.com/danuarta/motoria/pkg/slice"
	"github.com/danuarta/motoria/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates the car aggregate: reference validation against the
// taxonomy, chassis normalization, and image blob lifecycle.
type Service struct {
	repo     Repository
	taxonomy TaxonomyDirectory
	blobs    media.Store
	logger   *slog.Logger
}

// NewService constructs a new car [Service].
func NewService(repo Repository, taxonomy TaxonomyDirectory, blobs media.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		taxonomy: taxonomy,
		blobs:    blobs,
		logger:   logger,
	}
}

// # Inputs

// ChassisInput is the wire shape of one chassis element. Status and
// Transmission are free strings here; normalization defaults the empty
// string and rejects unknown values.
type ChassisInput struct {
	Number         string  `json:"number"`
	InternalColor  *string `json:"internal_color"`
	ExternalColor  *string `json:"external_color"`
	Status         string  `json:"status"`
	ReservedBy     *string `json:"reserved_by"`
	Transmission   string  `json:"transmission"`
	PriceCash      float64 `json:"price_cash"`
	PriceFinance   float64 `json:"price_finance"`
	EngineCapacity *string `json:"engine_capacity"`
	FuelCapacity   *string `json:"fuel_capacity"`
	Location       *string `json:"location"`
	SeatType       *string `json:"seat_type"`
}

// CreateInput carries a new car listing. Images arrive out-of-band from the
// multipart file parts, hence the json:"-".
type CreateInput struct {
	BrandID     string         `json:"brand_id"`
	AgentID     *string        `json:"agent_id"`
	CarNameID   string         `json:"car_name_id"`
	GradeID     string         `json:"grade_id"`
	YearID      string         `json:"year_id"`
	Chassis     []ChassisInput `json:"chassis"`
	Description *string        `json:"description"`

	Images []media.Upload `json:"-"`
}

// UpdateInput carries a partial update. Nil reference pointers and a nil
// Chassis slice leave the stored value untouched; a non-nil Chassis replaces
// the whole collection.
//
// ExistingImagesToKeep is tri-state and the distinction is load-bearing:
// nil keeps every stored image, an empty non-nil slice drops them all, and a
// subset keeps exactly the listed URLs. Entries that do not match a stored
// image are ignored.
type UpdateInput struct {
	BrandID     *string        `json:"brand_id"`
	AgentID     *string        `json:"agent_id"`
	CarNameID   *string        `json:"car_name_id"`
	GradeID     *string        `json:"grade_id"`
	YearID      *string        `json:"year_id"`
	Chassis     []ChassisInput `json:"chassis"`
	Description *string        `json:"description"`

	ExistingImagesToKeep []string       `json:"-"`
	NewImages            []media.Upload `json:"-"`
}

// # Read Side

/*
ListCars retrieves a filtered, paginated list of car listings, newest first.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Car: Page of cars
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) ListCars(context context.Context, filter Filter, page pagination.Params) ([]*Car, int, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, 0, validate.RequiredError(FieldStatus, "Unknown chassis status")
	}
	return service.repo.List(context, filter, page.Limit, page.Offset())
}

// GetCar retrieves one car with its full chassis collection.
func (service *Service) GetCar(context context.Context, id string) (*Car, error) {
	return service.repo.FindByID(context, id)
}

// # Write Side

/*
CreateCar registers a new listing.

Description: The five taxonomy references are resolved concurrently; the
first missing one fails the create with a NotFound naming that entity type.
Each reference is checked for existence only — no cross-reference lineage
check is made, so a grade belonging to a different car name is accepted.
Images upload concurrently; if the insert then fails, every uploaded blob is
deleted again before the error propagates.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Car: The created car
  - error: Validation, NotFound, or persistence failures
*/
func (service *Service) CreateCar(context context.Context, input CreateInput) (*Car, error) {
	if err := validateReferences(input.BrandID, input.AgentID, input.CarNameID, input.GradeID, input.YearID); err != nil {
		return nil, err
	}

	chassis, err := normalizeChassis(input.Chassis)
	if err != nil {
		return nil, err
	}

	car := &Car{
		ID:          uuidv7.New(),
		BrandID:     input.BrandID,
		AgentID:     normalizeOptionalID(input.AgentID),
		CarNameID:   input.CarNameID,
		GradeID:     input.GradeID,
		YearID:      input.YearID,
		Chassis:     chassis,
		Description: input.Description,
	}

	if err := service.verifyReferences(context, car); err != nil {
		return nil, err
	}

	urls, err := service.uploadAll(context, input.Images)
	if err != nil {
		return nil, err
	}
	car.Images = urls

	if err := service.repo.Create(context, car); err != nil {
		service.removeBlobs(context, urls, "blob_compensation_failed")
		return nil, err
	}

	service.logger.Info("car_created",
		slog.String("car_id", car.ID),
		slog.Int("chassis_count", len(car.Chassis)),
		slog.Int("image_count", len(car.Images)),
	)

	// Read back through the store so the response carries hydrated refs
	return service.repo.FindByID(context, car.ID)
}

/*
UpdateCar applies a partial update to a listing.

Description: A non-nil Chassis slice replaces the stored collection in full.
The stored image set becomes keep(ExistingImagesToKeep) + NewImages, in that
order; blobs dropped from the set are deleted after the row update succeeds,
best effort. A failing row update instead deletes the freshly uploaded blobs
and keeps the stored set intact.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - input: UpdateInput

Returns:
  - *Car: The updated car
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) UpdateCar(context context.Context, id string, input UpdateInput) (*Car, error) {
	car, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.BrandID != nil {
		car.BrandID = *input.BrandID
	}
	if input.AgentID != nil {
		car.AgentID = normalizeOptionalID(input.AgentID)
	}
	if input.CarNameID != nil {
		car.CarNameID = *input.CarNameID
	}
	if input.GradeID != nil {
		car.GradeID = *input.GradeID
	}
	if input.YearID != nil {
		car.YearID = *input.YearID
	}
	if input.Description != nil {
		car.Description = input.Description
	}

	var agentID *string
	if car.AgentID != nil {
		agentID = car.AgentID
	}
	if err := validateReferences(car.BrandID, agentID, car.CarNameID, car.GradeID, car.YearID); err != nil {
		return nil, err
	}

	if input.Chassis != nil {
		chassis, err := normalizeChassis(input.Chassis)
		if err != nil {
			return nil, err
		}
		car.Chassis = chassis
	}

	if err := service.verifyReferences(context, car); err != nil {
		return nil, err
	}

	kept, dropped := partitionImages(car.Images, input.ExistingImagesToKeep)

	uploaded, err := service.uploadAll(context, input.NewImages)
	if err != nil {
		return nil, err
	}
	car.Images = append(kept, uploaded...)

	if err := service.repo.Update(context, car); err != nil {
		service.removeBlobs(context, uploaded, "blob_compensation_failed")
		return nil, err
	}

	service.removeBlobs(context, dropped, "blob_cleanup_failed")

	service.logger.Info("car_updated",
		slog.String("car_id", car.ID),
		slog.Int("images_kept", len(kept)),
		slog.Int("images_added", len(uploaded)),
		slog.Int("images_dropped", len(dropped)),
	)
	return service.repo.FindByID(context, car.ID)
}

/*
DeleteCar removes a listing and, best effort, its image blobs.

Description: The row is deleted first; blob removal failures are logged and
never propagated, since the listing is already gone.

Returns:
  - error: ErrNotFound if missing, or persistence failures
*/
func (service *Service) DeleteCar(context context.Context, id string) error {
	car, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.removeBlobs(context, car.Images, "blob_cleanup_failed")

	service.logger.Info("car_deleted", slog.String("car_id", id))
	return nil
}

// # Reference Resolution

// verifyReferences resolves the effective taxonomy references concurrently.
// The returned error is the NotFound of whichever lookup failed first,
// naming the missing entity type.
func (service *Service) verifyReferences(context context.Context, car *Car) error {
	group, groupContext := errgroup.WithContext(context)

	check := func(resource, id string, has existenceCheck) {
		group.Go(func() error {
			ok, err := has(groupContext, id)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.NotFound(resource)
			}
			return nil
		})
	}

	check("Brand", car.BrandID, service.taxonomy.HasBrand)
	if car.AgentID != nil {
		check("Agent", *car.AgentID, service.taxonomy.HasAgent)
	}
	check("Car name", car.CarNameID, service.taxonomy.HasCarName)
	check("Grade", car.GradeID, service.taxonomy.HasGrade)
	check("Year", car.YearID, service.taxonomy.HasYear)

	return group.Wait()
}

// # Image Lifecycle

// uploadAll stores every upload concurrently, preserving input order in the
// returned URLs. On any failure the blobs that did complete are removed
// again and the first error is returned.
func (service *Service) uploadAll(context context.Context, uploads []media.Upload) ([]string, error) {
	if len(uploads) == 0 {
		return make([]string, 0), nil
	}

	urls := make([]string, len(uploads))
	group, groupContext := errgroup.WithContext(context)

	for i, upload := range uploads {
		group.Go(func() error {
			url, err := service.blobs.Upload(groupContext, upload.Filename, upload.Content)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		completed := slice.Filter(urls, func(url string) bool { return url != "" })
		service.removeBlobs(context, completed, "blob_compensation_failed")
		return nil, err
	}

	return urls, nil
}

// removeBlobs deletes stored blobs best effort. Failures are logged under
// the given event and never propagated.
func (service *Service) removeBlobs(context context.Context, urls []string, event string) {
	for _, url := range urls {
		if err := service.blobs.Delete(context, url); err != nil {
			service.logger.Warn(event,
				slog.String("url", url),
				slog.String("error", err.Error()),
			)
		}
	}
}

// partitionImages splits the stored image set into kept and dropped URLs.
// keep is tri-state: nil keeps everything, empty drops everything, a subset
// keeps its members. Unknown entries in keep are ignored; stored order wins.
func partitionImages(stored, keep []string) (kept, dropped []string) {
	kept = make([]string, 0, len(stored))
	dropped = make([]string, 0)

	if keep == nil {
		kept = append(kept, stored...)
		return kept, dropped
	}

	keepSet := make(map[string]struct{}, len(keep))
	for _, url := range keep {
		keepSet[url] = struct{}{}
	}

	for _, url := range stored {
		if _, ok := keepSet[url]; ok {
			kept = append(kept, url)
		} else {
			dropped = append(dropped, url)
		}
	}
	return kept, dropped
}

// # Normalization

// validateReferences checks the shape of the reference ids, not their
// existence. agentID may be nil; the others are required.
func validateReferences(brandID string, agentID *string, carNameID, gradeID, yearID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldBrandID, brandID).UUID(FieldBrandID, brandID)
	validator.Required(FieldCarNameID, carNameID).UUID(FieldCarNameID, carNameID)
	validator.Required(FieldGradeID, gradeID).UUID(FieldGradeID, gradeID)
	validator.Required(FieldYearID, yearID).UUID(FieldYearID, yearID)
	if agentID != nil && strings.TrimSpace(*agentID) != "" {
		validator.UUID(FieldAgentID, *agentID)
	}
	return validator.Err()
}

// normalizeOptionalID maps a blank or absent id to nil.
func normalizeOptionalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

/*
normalizeChassis validates and canonicalizes the embedded collection.

Description: At least one element is required. Per element: number is
required; empty status and transmission take their defaults, unknown values
are rejected; both prices must be non-negative; a blank reserved_by collapses
to null. Status transitions and the reserved/reserved_by pairing are
deliberately unguarded.

Parameters:
  - inputs: []ChassisInput

Returns:
  - []Chassis: Canonical collection
  - error: apperr.ValidationError describing the first offending element
*/
func normalizeChassis(inputs []ChassisInput) ([]Chassis, error) {
	if len(inputs) == 0 {
		return nil, validate.RequiredError(FieldChassis, "At least one chassis unit is required")
	}

	chassis := make([]Chassis, 0, len(inputs))
	for i, input := range inputs {
		validator := &validate.Validator{}
		validator.Required(FieldNumber, input.Number)

		status := DefaultStatus
		if input.Status != "" {
			status = Status(input.Status)
			validator.OneOf(FieldStatus, input.Status,
				string(StatusAvailable), string(StatusReserved), string(StatusSold), string(StatusMaintenance))
		}

		transmission := DefaultTransmission
		if input.Transmission != "" {
			transmission = Transmission(input.Transmission)
			validator.OneOf(FieldTransmission, input.Transmission,
				string(TransmissionManual), string(TransmissionAutomatic))
		}

		validator.NonNegative(FieldPriceCash, input.PriceCash)
		validator.NonNegative(FieldPriceFinance, input.PriceFinance)

		if err := validator.Err(); err != nil {
			if appErr := apperr.As(err); appErr != nil {
				appErr.Message = "Invalid chassis element at index " + strconv.Itoa(i) + ": " + appErr.Message
			}
			return nil, err
		}

		chassis = append(chassis, Chassis{
			Number:         strings.TrimSpace(input.Number),
			InternalColor:  input.InternalColor,
			ExternalColor:  input.ExternalColor,
			Status:         status,
			ReservedBy:     normalizeOptionalID(input.ReservedBy),
			Transmission:   transmission,
			PriceCash:      input.PriceCash,
			PriceFinance:   input.PriceFinance,
			EngineCapacity: input.EngineCapacity,
			FuelCapacity:   input.FuelCapacity,
			Location:       input.Location,
			SeatType:       input.SeatType,
		})
	}

	return chassis, nil
}
