// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package taxonomy

import (
	"errors"
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
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the five taxonomy resources. Reads are public;
// writes require the editor role, deletes the admin role.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	resources := []struct {
		pattern string
		list    http.HandlerFunc
		get     http.HandlerFunc
		create  http.HandlerFunc
		update  http.HandlerFunc
		delete  http.HandlerFunc
	}{
		{"/brands", handler.listBrands, handler.getBrand, handler.createBrand, handler.updateBrand, handler.deleteBrand},
		{"/agents", handler.listAgents, handler.getAgent, handler.createAgent, handler.updateAgent, handler.deleteAgent},
		{"/car-names", handler.listCarNames, handler.getCarName, handler.createCarName, handler.updateCarName, handler.deleteCarName},
		{"/grades", handler.listGrades, handler.getGrade, handler.createGrade, handler.updateGrade, handler.deleteGrade},
		{"/years", handler.listYears, handler.getYear, handler.createYear, handler.updateYear, handler.deleteYear},
	}

	for _, resource := range resources {
		resource := resource
		router.Route(resource.pattern, func(r chi.Router) {
			// Public
			r.Get("/", resource.list)
			r.Get("/{id}", resource.get)

			// Editor and above
			r.Group(func(editorRoute chi.Router) {
				editorRoute.Use(middleware.RequireRole(sec.RoleEditor))

				editorRoute.Post("/", resource.create)
				editorRoute.Patch("/{id}", resource.update)

				// Admin strict only
				editorRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", resource.delete)
			})
		})
	}
}

// # Brand Handlers

func (handler *Handler) listBrands(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	brands, total, err := handler.service.ListBrands(request.Context(), paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, brands, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBrand(writer http.ResponseWriter, request *http.Request) {
	brand, err := handler.service.GetBrand(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, brand)
}

// createBrand accepts multipart/form-data: a "name" field and an optional
// "image" file part holding the logo.
func (handler *Handler) createBrand(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError("form", "Request body must be multipart/form-data"))
		return
	}

	input := BrandInput{Name: request.FormValue(FieldName)}

	image, cleanup, err := formImage(request, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer cleanup()
	input.Image = image

	brand, err := handler.service.CreateBrand(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, brand)
}

// updateBrand accepts the same multipart shape as createBrand; both parts are
// optional and absent parts leave the stored value untouched.
func (handler *Handler) updateBrand(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		respond.Error(writer, request, validate.RequiredError("form", "Request body must be multipart/form-data"))
		return
	}

	patch := BrandPatch{}
	if values, ok := request.MultipartForm.Value[FieldName]; ok && len(values) > 0 {
		patch.Name = &values[0]
	}

	image, cleanup, err := formImage(request, FieldImage)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer cleanup()
	patch.Image = image

	brand, err := handler.service.UpdateBrand(request.Context(), requestutil.ID(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, brand)
}

func (handler *Handler) deleteBrand(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteBrand(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Agent Handlers

func (handler *Handler) listAgents(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	brandID := request.URL.Query().Get(FieldBrandID)

	agents, total, err := handler.service.ListAgents(request.Context(), brandID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, agents, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getAgent(writer http.ResponseWriter, request *http.Request) {
	agent, err := handler.service.GetAgent(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, agent)
}

func (handler *Handler) createAgent(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Name    string `json:"name"`
		BrandID string `json:"brand_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	agent, err := handler.service.CreateAgent(request.Context(), ScopedInput{Name: payload.Name, ParentID: payload.BrandID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, agent)
}

func (handler *Handler) updateAgent(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Name    *string `json:"name"`
		BrandID *string `json:"brand_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	agent, err := handler.service.UpdateAgent(request.Context(), requestutil.ID(request, "id"),
		ScopedPatch{Name: payload.Name, ParentID: payload.BrandID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, agent)
}

func (handler *Handler) deleteAgent(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteAgent(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Car Name Handlers

func (handler *Handler) listCarNames(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	brandID := request.URL.Query().Get(FieldBrandID)

	carNames, total, err := handler.service.ListCarNames(request.Context(), brandID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, carNames, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCarName(writer http.ResponseWriter, request *http.Request) {
	carName, err := handler.service.GetCarName(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, carName)
}

func (handler *Handler) createCarName(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Name    string `json:"name"`
		BrandID string `json:"brand_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	carName, err := handler.service.CreateCarName(request.Context(), ScopedInput{Name: payload.Name, ParentID: payload.BrandID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, carName)
}

func (handler *Handler) updateCarName(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Name    *string `json:"name"`
		BrandID *string `json:"brand_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	carName, err := handler.service.UpdateCarName(request.Context(), requestutil.ID(request, "id"),
		ScopedPatch{Name: payload.Name, ParentID: payload.BrandID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, carName)
}

func (handler *Handler) deleteCarName(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCarName(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Grade Handlers

func (handler *Handler) listGrades(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	carNameID := request.URL.Query().Get(FieldCarNameID)

	grades, total, err := handler.service.ListGrades(request.Context(), carNameID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, grades, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getGrade(writer http.ResponseWriter, request *http.Request) {
	grade, err := handler.service.GetGrade(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grade)
}

func (handler *Handler) createGrade(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		CarNameID string `json:"car_name_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grade, err := handler.service.CreateGrade(request.Context(), ScopedInput{Name: payload.Name, ParentID: payload.CarNameID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, grade)
}

func (handler *Handler) updateGrade(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Name      *string `json:"name"`
		CarNameID *string `json:"car_name_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	grade, err := handler.service.UpdateGrade(request.Context(), requestutil.ID(request, "id"),
		ScopedPatch{Name: payload.Name, ParentID: payload.CarNameID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, grade)
}

func (handler *Handler) deleteGrade(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteGrade(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Year Handlers

func (handler *Handler) listYears(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	gradeID := request.URL.Query().Get(FieldGradeID)

	years, total, err := handler.service.ListYears(request.Context(), gradeID, paginationParams)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, years, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getYear(writer http.ResponseWriter, request *http.Request) {
	year, err := handler.service.GetYear(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, year)
}

func (handler *Handler) createYear(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Value   int    `json:"value"`
		GradeID string `json:"grade_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := handler.service.CreateYear(request.Context(), YearInput{Value: payload.Value, GradeID: payload.GradeID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, year)
}

func (handler *Handler) updateYear(writer http.ResponseWriter, request *http.Request) {
	var payload struct {
		Value   *int    `json:"value"`
		GradeID *string `json:"grade_id"`
	}
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	year, err := handler.service.UpdateYear(request.Context(), requestutil.ID(request, "id"),
		YearPatch{Value: payload.Value, GradeID: payload.GradeID})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, year)
}

func (handler *Handler) deleteYear(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteYear(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Multipart Helpers

// formImage opens an optional single file part. A missing part yields a nil
// Upload, not an error. The returned cleanup closes the part handle and is
// always safe to defer.
func formImage(request *http.Request, field string) (*media.Upload, func(), error) {
	file, header, err := request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, func() {}, nil
		}
		return nil, func() {}, validate.RequiredError(field, "Malformed file part")
	}

	if header.Size > constants.MaxUploadFileSize {
		file.Close()
		return nil, func() {}, validate.RequiredError(field,
			"File exceeds the maximum upload size of "+strconv.FormatInt(constants.MaxUploadFileSize>>20, 10)+" MiB")
	}

	return &media.Upload{Filename: header.Filename, Content: file}, func() { file.Close() }, nil
}
