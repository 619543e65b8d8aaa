// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package car

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/danuarta/motoria/internal/platform/constants"
	"github.com/danuarta/motoria/internal/platform/media"
	"github.com/danuarta/motoria/internal/platform/middleware"
	requestutil "github.com/danuarta/motoria/internal/platform/request"
	"github.com/danuarta/motoria/internal/platform/respond"
	"github.com/danuarta/motoria/internal/platform/sec"
	"github.com/danuarta/motoria/internal/platform/validate"
	"github.com/danuarta/motoria/pkg/pagination"
	"github.com/danuarta/motoria/pkg/pointer"
)

// Multipart part names for car writes. The JSON document travels in a single
// "payload" part; image files repeat under "images".
const (
	partPayload = "payload"
	partImages  = "images"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the listing resource. Reads are public; writes
// require the editor role, deletes the admin role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listCars)
	router.Get("/{id}", handler.getCar)

	// Editor and above
	router.Group(func(editorRoute chi.Router) {
		editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

		editorRoute.Post("/", handler.createCar)
		editorRoute.Patch("/{id}", handler.updateCar)

		// Admin strict only
		editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.deleteCar)
	})
}

// # Read Handlers

func (handler *Handler) listCars(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter, err := filterFromRequest(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cars, total, err := handler.service.ListCars(request.Context(), filter, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cars, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCar(writer http.ResponseWriter, request *http.Request) {
	car, err := handler.service.GetCar(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, car)
}

// # Write Handlers

/*
createCar accepts multipart/form-data:

  - "payload": one JSON part carrying the car document (references, chassis,
    description).
  - "images": zero or more file parts, stored in part order.
*/
func (handler *Handler) createCar(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError("form", "Request body must be multipart/form-data"))
		return
	}

	var input CreateInput
	if err := decodePayload(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	images, cleanup, err := formImages(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer cleanup()
	input.Images = images

	car, err := handler.service.CreateCar(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, car)
}

/*
updateCar accepts the same multipart shape as createCar. Inside the payload,
"existing_images_to_keep" is tri-state: omitting the key keeps every stored
image, an empty array drops them all, a subset keeps exactly those URLs. New
file parts are appended after the kept set.
*/
func (handler *Handler) updateCar(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError("form", "Request body must be multipart/form-data"))
		return
	}

	// The pointer-to-slice distinguishes an omitted key from an empty array.
	var payload struct {
		UpdateInput
		ExistingImagesToKeep *[]string `json:"existing_images_to_keep"`
	}
	if err := decodePayload(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := payload.UpdateInput
	if payload.ExistingImagesToKeep != nil {
		keep := *payload.ExistingImagesToKeep
		if keep == nil {
			keep = make([]string, 0)
		}
		input.ExistingImagesToKeep = keep
	}

	images, cleanup, err := formImages(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer cleanup()
	input.NewImages = images

	car, err := handler.service.UpdateCar(request.Context(), requestutil.ID(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, car)
}

func (handler *Handler) deleteCar(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCar(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Request Parsing

func filterFromRequest(request *http.Request) (Filter, error) {
	query := request.URL.Query()

	filter := Filter{
		BrandID:   query.Get(FieldBrandID),
		AgentID:   query.Get(FieldAgentID),
		CarNameID: query.Get(FieldCarNameID),
		GradeID:   query.Get(FieldGradeID),
		YearID:    query.Get(FieldYearID),
		Status:    Status(query.Get(FieldStatus)),
	}

	bounds := []struct {
		key    string
		target **float64
	}{
		{FieldPriceCash + "_min", &filter.PriceCashMin},
		{FieldPriceCash + "_max", &filter.PriceCashMax},
		{FieldPriceFinance + "_min", &filter.PriceFinanceMin},
		{FieldPriceFinance + "_max", &filter.PriceFinanceMax},
	}
	for _, bound := range bounds {
		raw := query.Get(bound.key)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Filter{}, validate.RequiredError(bound.key, "Must be a number")
		}
		*bound.target = pointer.To(value)
	}

	return filter, nil
}

func decodePayload(request *http.Request, target any) error {
	raw := request.FormValue(partPayload)
	if raw == "" {
		return validate.RequiredError(partPayload, "Missing JSON payload part")
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

// formImages opens every "images" file part. The single returned cleanup
// closes all opened handles and is always safe to defer.
func formImages(request *http.Request) ([]media.Upload, func(), error) {
	if request.MultipartForm == nil {
		return nil, func() {}, nil
	}

	headers := request.MultipartForm.File[partImages]
	uploads := make([]media.Upload, 0, len(headers))
	files := make([]interface{ Close() error }, 0, len(headers))
	cleanup := func() {
		for _, file := range files {
			file.Close()
		}
	}

	for _, header := range headers {
		if header.Size > constants.MaxUploadFileSize {
			cleanup()
			return nil, func() {}, validate.RequiredError(partImages,
				"File "+header.Filename+" exceeds the maximum upload size of "+
					strconv.FormatInt(constants.MaxUploadFileSize>>20, 10)+" MiB")
		}

		file, err := header.Open()
		if err != nil {
			cleanup()
			return nil, func() {}, validate.RequiredError(partImages, "Malformed file part")
		}
		files = append(files, file)
		uploads = append(uploads, media.Upload{Filename: header.Filename, Content: file})
	}

	return uploads, cleanup, nil
}
