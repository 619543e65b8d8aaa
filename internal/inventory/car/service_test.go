// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package car

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuarta/motoria/internal/platform/apperr"
	"github.com/danuarta/motoria/internal/platform/dberr"
	"github.com/danuarta/motoria/internal/platform/media"
	"github.com/danuarta/motoria/pkg/pagination"
)

// Well-formed UUIDs for reference fields; the service validates shape before
// consulting the taxonomy.
const (
	brandID   = "01890000-0000-7000-8000-00000000000b"
	agentID   = "01890000-0000-7000-8000-00000000000a"
	carNameID = "01890000-0000-7000-8000-00000000000c"
	gradeID   = "01890000-0000-7000-8000-00000000000d"
	yearID    = "01890000-0000-7000-8000-00000000000e"
)

// # Test Doubles

type fakeRepository struct {
	cars       map[string]*Car
	failCreate error
	failUpdate error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{cars: make(map[string]*Car)}
}

func (f *fakeRepository) List(_ context.Context, _ Filter, _, _ int) ([]*Car, int, error) {
	all := make([]*Car, 0, len(f.cars))
	for _, c := range f.cars {
		all = append(all, c)
	}
	return all, len(all), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*Car, error) {
	if c, ok := f.cars[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, car *Car) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.cars[car.ID] = car
	return nil
}

func (f *fakeRepository) Update(_ context.Context, car *Car) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	if _, ok := f.cars[car.ID]; !ok {
		return dberr.ErrNotFound
	}
	f.cars[car.ID] = car
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.cars[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.cars, id)
	return nil
}

// fakeDirectory answers existence checks from fixed id sets.
type fakeDirectory struct {
	brands   map[string]bool
	agents   map[string]bool
	carNames map[string]bool
	grades   map[string]bool
	years    map[string]bool
}

func fullDirectory() *fakeDirectory {
	return &fakeDirectory{
		brands:   map[string]bool{brandID: true},
		agents:   map[string]bool{agentID: true},
		carNames: map[string]bool{carNameID: true},
		grades:   map[string]bool{gradeID: true},
		years:    map[string]bool{yearID: true},
	}
}

func (f *fakeDirectory) HasBrand(_ context.Context, id string) (bool, error) {
	return f.brands[id], nil
}

func (f *fakeDirectory) HasAgent(_ context.Context, id string) (bool, error) {
	return f.agents[id], nil
}

func (f *fakeDirectory) HasCarName(_ context.Context, id string) (bool, error) {
	return f.carNames[id], nil
}

func (f *fakeDirectory) HasGrade(_ context.Context, id string) (bool, error) {
	return f.grades[id], nil
}

func (f *fakeDirectory) HasYear(_ context.Context, id string) (bool, error) {
	return f.years[id], nil
}

// fakeBlobStore records uploads and deletions. Safe for the concurrent
// uploads the service performs.
type fakeBlobStore struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string

	failUpload string // filename that fails to upload
	failDelete bool
}

func (f *fakeBlobStore) Upload(_ context.Context, filename string, _ io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if filename == f.failUpload {
		return "", errors.New("storage unavailable")
	}
	url := "/media/" + filename
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("storage unavailable")
	}
	f.deleted = append(f.deleted, url)
	return nil
}

func newTestService(repo Repository, directory TaxonomyDirectory, blobs media.Store) *Service {
	return NewService(repo, directory, blobs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validCreateInput() CreateInput {
	agent := agentID
	return CreateInput{
		BrandID:   brandID,
		AgentID:   &agent,
		CarNameID: carNameID,
		GradeID:   gradeID,
		YearID:    yearID,
		Chassis:   []ChassisInput{{Number: "JTDKN3DU0A0000001", PriceCash: 25000, PriceFinance: 27000}},
	}
}

// # Chassis Normalization

/*
TestNormalizeChassis verifies defaulting and rejection rules for the embedded
unit collection.
*/
func TestNormalizeChassis(t *testing.T) {
	t.Run("requires_at_least_one_unit", func(t *testing.T) {
		_, err := normalizeChassis(nil)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("applies_defaults", func(t *testing.T) {
		chassis, err := normalizeChassis([]ChassisInput{{Number: "VIN-1", PriceCash: 1000}})
		require.NoError(t, err)
		require.Len(t, chassis, 1)
		assert.Equal(t, StatusAvailable, chassis[0].Status)
		assert.Equal(t, TransmissionAutomatic, chassis[0].Transmission)
	})

	t.Run("blank_reserved_by_becomes_null", func(t *testing.T) {
		blank := "   "
		chassis, err := normalizeChassis([]ChassisInput{{Number: "VIN-1", ReservedBy: &blank}})
		require.NoError(t, err)
		assert.Nil(t, chassis[0].ReservedBy)
	})

	t.Run("keeps_explicit_reserved_by", func(t *testing.T) {
		holder := "01890000-0000-7000-8000-0000000000f1"
		chassis, err := normalizeChassis([]ChassisInput{{Number: "VIN-1", Status: "reserved", ReservedBy: &holder}})
		require.NoError(t, err)
		require.NotNil(t, chassis[0].ReservedBy)
		assert.Equal(t, holder, *chassis[0].ReservedBy)
	})

	tests := []struct {
		name  string
		input ChassisInput
	}{
		{"missing_number", ChassisInput{PriceCash: 1000}},
		{"unknown_status", ChassisInput{Number: "VIN-1", Status: "scrapped"}},
		{"unknown_transmission", ChassisInput{Number: "VIN-1", Transmission: "cvt"}},
		{"negative_price_cash", ChassisInput{Number: "VIN-1", PriceCash: -1}},
		{"negative_price_finance", ChassisInput{Number: "VIN-1", PriceFinance: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeChassis([]ChassisInput{tt.input})
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
			assert.Contains(t, appErr.Message, "index 0")
		})
	}

	t.Run("error_names_offending_index", func(t *testing.T) {
		_, err := normalizeChassis([]ChassisInput{
			{Number: "VIN-1"},
			{Number: "", PriceCash: 1000},
		})
		require.Error(t, err)
		assert.Contains(t, apperr.As(err).Message, "index 1")
	})
}

// # Image Partitioning

/*
TestPartitionImages verifies the tri-state keep semantics: nil keeps all,
empty drops all, a subset keeps exactly its members in stored order.
*/
func TestPartitionImages(t *testing.T) {
	stored := []string{"/media/a.jpg", "/media/b.jpg", "/media/c.jpg"}

	tests := []struct {
		name        string
		keep        []string
		wantKept    []string
		wantDropped []string
	}{
		{
			name:        "nil_keeps_everything",
			keep:        nil,
			wantKept:    stored,
			wantDropped: []string{},
		},
		{
			name:        "empty_drops_everything",
			keep:        []string{},
			wantKept:    []string{},
			wantDropped: stored,
		},
		{
			name:        "subset_keeps_members_in_stored_order",
			keep:        []string{"/media/c.jpg", "/media/a.jpg"},
			wantKept:    []string{"/media/a.jpg", "/media/c.jpg"},
			wantDropped: []string{"/media/b.jpg"},
		},
		{
			name:        "unknown_entries_are_ignored",
			keep:        []string{"/media/a.jpg", "/media/ghost.jpg"},
			wantKept:    []string{"/media/a.jpg"},
			wantDropped: []string{"/media/b.jpg", "/media/c.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, dropped := partitionImages(stored, tt.keep)
			assert.Equal(t, tt.wantKept, kept)
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}

// # Create

/*
TestCreateCarMissingReference verifies that the first missing taxonomy
reference fails the create with a NotFound naming the entity type.
*/
func TestCreateCarMissingReference(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(d *fakeDirectory)
		resource string
	}{
		{"brand", func(d *fakeDirectory) { d.brands = nil }, "Brand"},
		{"agent", func(d *fakeDirectory) { d.agents = nil }, "Agent"},
		{"car_name", func(d *fakeDirectory) { d.carNames = nil }, "Car name"},
		{"grade", func(d *fakeDirectory) { d.grades = nil }, "Grade"},
		{"year", func(d *fakeDirectory) { d.years = nil }, "Year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directory := fullDirectory()
			tt.mutate(directory)
			service := newTestService(newFakeRepository(), directory, &fakeBlobStore{})

			_, err := service.CreateCar(ctx, validCreateInput())
			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "NOT_FOUND", appErr.Code)
			assert.Equal(t, tt.resource+" not found", appErr.Message)
		})
	}
}

func TestCreateCarWithoutAgent(t *testing.T) {
	ctx := context.Background()
	directory := fullDirectory()
	directory.agents = nil // no agents exist at all
	service := newTestService(newFakeRepository(), directory, &fakeBlobStore{})

	input := validCreateInput()
	input.AgentID = nil

	car, err := service.CreateCar(ctx, input)
	require.NoError(t, err)
	assert.Nil(t, car.AgentID)
}

func TestCreateCarBlankAgentIsNull(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeRepository(), fullDirectory(), &fakeBlobStore{})

	input := validCreateInput()
	blank := ""
	input.AgentID = &blank

	car, err := service.CreateCar(ctx, input)
	require.NoError(t, err)
	assert.Nil(t, car.AgentID)
}

/*
TestCreateCarNoLineageCheck pins the documented gap: references are checked
for existence only, so a grade that belongs to an unrelated car name is
accepted as long as each id resolves.
*/
func TestCreateCarNoLineageCheck(t *testing.T) {
	ctx := context.Background()

	// The directory knows every id but nothing about parentage; a real
	// taxonomy would have this grade under a different car name.
	service := newTestService(newFakeRepository(), fullDirectory(), &fakeBlobStore{})

	_, err := service.CreateCar(ctx, validCreateInput())
	assert.NoError(t, err)
}

func TestCreateCarCompensatesBlobsOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.failCreate = errors.New("connection reset")
	blobs := &fakeBlobStore{}
	service := newTestService(repo, fullDirectory(), blobs)

	input := validCreateInput()
	input.Images = []media.Upload{
		{Filename: "front.jpg", Content: strings.NewReader("jpg")},
		{Filename: "rear.jpg", Content: strings.NewReader("jpg")},
	}

	_, err := service.CreateCar(ctx, input)
	require.Error(t, err)

	assert.Len(t, blobs.uploaded, 2)
	assert.ElementsMatch(t, blobs.uploaded, blobs.deleted)
}

func TestCreateCarCompensatesCompletedUploads(t *testing.T) {
	ctx := context.Background()
	blobs := &fakeBlobStore{failUpload: "rear.jpg"}
	service := newTestService(newFakeRepository(), fullDirectory(), blobs)

	input := validCreateInput()
	input.Images = []media.Upload{
		{Filename: "front.jpg", Content: strings.NewReader("jpg")},
		{Filename: "rear.jpg", Content: strings.NewReader("jpg")},
	}

	_, err := service.CreateCar(ctx, input)
	require.Error(t, err)

	// Whatever uploaded before the failure was removed again
	assert.ElementsMatch(t, blobs.uploaded, blobs.deleted)
}

// # Update

func TestUpdateCarKeepList(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *fakeRepository) *Car {
		car := &Car{
			ID:        "01890000-0000-7000-8000-0000000000ca",
			BrandID:   brandID,
			CarNameID: carNameID,
			GradeID:   gradeID,
			YearID:    yearID,
			Chassis:   []Chassis{{Number: "VIN-1", Status: StatusAvailable, Transmission: TransmissionAutomatic}},
			Images:    []string{"/media/a.jpg", "/media/b.jpg"},
		}
		repo.cars[car.ID] = car
		return car
	}

	t.Run("nil_keep_retains_stored_images", func(t *testing.T) {
		repo := newFakeRepository()
		seeded := seed(repo)
		blobs := &fakeBlobStore{}
		service := newTestService(repo, fullDirectory(), blobs)

		updated, err := service.UpdateCar(ctx, seeded.ID, UpdateInput{})
		require.NoError(t, err)
		assert.Equal(t, []string{"/media/a.jpg", "/media/b.jpg"}, updated.Images)
		assert.Empty(t, blobs.deleted)
	})

	t.Run("empty_keep_drops_all_stored_images", func(t *testing.T) {
		repo := newFakeRepository()
		seeded := seed(repo)
		blobs := &fakeBlobStore{}
		service := newTestService(repo, fullDirectory(), blobs)

		updated, err := service.UpdateCar(ctx, seeded.ID, UpdateInput{ExistingImagesToKeep: []string{}})
		require.NoError(t, err)
		assert.Empty(t, updated.Images)
		assert.ElementsMatch(t, []string{"/media/a.jpg", "/media/b.jpg"}, blobs.deleted)
	})

	t.Run("subset_keeps_listed_and_appends_new", func(t *testing.T) {
		repo := newFakeRepository()
		seeded := seed(repo)
		blobs := &fakeBlobStore{}
		service := newTestService(repo, fullDirectory(), blobs)

		updated, err := service.UpdateCar(ctx, seeded.ID, UpdateInput{
			ExistingImagesToKeep: []string{"/media/b.jpg"},
			NewImages:            []media.Upload{{Filename: "new.jpg", Content: strings.NewReader("jpg")}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"/media/b.jpg", "/media/new.jpg"}, updated.Images)
		assert.Equal(t, []string{"/media/a.jpg"}, blobs.deleted)
	})

	t.Run("failed_update_removes_only_new_uploads", func(t *testing.T) {
		repo := newFakeRepository()
		seeded := seed(repo)
		repo.failUpdate = errors.New("connection reset")
		blobs := &fakeBlobStore{}
		service := newTestService(repo, fullDirectory(), blobs)

		_, err := service.UpdateCar(ctx, seeded.ID, UpdateInput{
			ExistingImagesToKeep: []string{},
			NewImages:            []media.Upload{{Filename: "new.jpg", Content: strings.NewReader("jpg")}},
		})
		require.Error(t, err)

		// The fresh upload was compensated; the stored images were not
		// touched because the row never changed.
		assert.Equal(t, []string{"/media/new.jpg"}, blobs.deleted)
		assert.Equal(t, []string{"/media/a.jpg", "/media/b.jpg"}, repo.cars[seeded.ID].Images)
	})
}

func TestUpdateCarReplacesChassis(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	car := &Car{
		ID:        "01890000-0000-7000-8000-0000000000ca",
		BrandID:   brandID,
		CarNameID: carNameID,
		GradeID:   gradeID,
		YearID:    yearID,
		Chassis: []Chassis{
			{Number: "VIN-1", Status: StatusAvailable, Transmission: TransmissionAutomatic},
			{Number: "VIN-2", Status: StatusSold, Transmission: TransmissionManual},
		},
	}
	repo.cars[car.ID] = car
	service := newTestService(repo, fullDirectory(), &fakeBlobStore{})

	t.Run("nil_chassis_keeps_stored_collection", func(t *testing.T) {
		updated, err := service.UpdateCar(ctx, car.ID, UpdateInput{})
		require.NoError(t, err)
		assert.Len(t, updated.Chassis, 2)
	})

	t.Run("non_nil_chassis_replaces_in_full", func(t *testing.T) {
		updated, err := service.UpdateCar(ctx, car.ID, UpdateInput{
			Chassis: []ChassisInput{{Number: "VIN-3", Status: "maintenance"}},
		})
		require.NoError(t, err)
		require.Len(t, updated.Chassis, 1)
		assert.Equal(t, "VIN-3", updated.Chassis[0].Number)
		assert.Equal(t, StatusMaintenance, updated.Chassis[0].Status)
	})

	t.Run("empty_chassis_replacement_is_rejected", func(t *testing.T) {
		_, err := service.UpdateCar(ctx, car.ID, UpdateInput{Chassis: []ChassisInput{}})
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

// # Delete

func TestDeleteCarCleansUpBlobsBestEffort(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *fakeRepository) *Car {
		car := &Car{
			ID:        "01890000-0000-7000-8000-0000000000ca",
			BrandID:   brandID,
			CarNameID: carNameID,
			GradeID:   gradeID,
			YearID:    yearID,
			Chassis:   []Chassis{{Number: "VIN-1", Status: StatusAvailable, Transmission: TransmissionAutomatic}},
			Images:    []string{"/media/a.jpg"},
		}
		repo.cars[car.ID] = car
		return car
	}

	t.Run("removes_image_blobs", func(t *testing.T) {
		repo := newFakeRepository()
		seeded := seed(repo)
		blobs := &fakeBlobStore{}
		service := newTestService(repo, fullDirectory(), blobs)

		require.NoError(t, service.DeleteCar(ctx, seeded.ID))
		assert.Equal(t, []string{"/media/a.jpg"}, blobs.deleted)
	})

	t.Run("blob_failure_does_not_fail_the_delete", func(t *testing.T) {
		repo := newFakeRepository()
		seeded := seed(repo)
		blobs := &fakeBlobStore{failDelete: true}
		service := newTestService(repo, fullDirectory(), blobs)

		require.NoError(t, service.DeleteCar(ctx, seeded.ID))
		_, err := service.GetCar(ctx, seeded.ID)
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})

	t.Run("missing_car_is_not_found", func(t *testing.T) {
		service := newTestService(newFakeRepository(), fullDirectory(), &fakeBlobStore{})
		err := service.DeleteCar(ctx, "01890000-0000-7000-8000-0000000000ff")
		assert.ErrorIs(t, err, dberr.ErrNotFound)
	})
}

// # List

func TestListCarsRejectsUnknownStatusFilter(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newFakeRepository(), fullDirectory(), &fakeBlobStore{})

	_, _, err := service.ListCars(ctx, Filter{Status: "scrapped"}, pagination.Params{Page: 1, Limit: 10})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
