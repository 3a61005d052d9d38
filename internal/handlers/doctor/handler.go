package doctor

import (
	"agenda/infras/otel"
	"agenda/internal/domains/doctor/model"
	"agenda/internal/domains/doctor/model/dto"
	"agenda/internal/domains/doctor/service"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/validator"
	"agenda/transport/http/middleware"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const queryParamDate = "date"

type Handler struct {
	service service.Doctor
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Doctor, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Get("/active", handler.GetActiveDoctors)
		routerGroup.Get("/search", handler.SearchDoctor)
		routerGroup.Get("/{id}", handler.GetDoctorByID)
		routerGroup.Get("/{id}/availability", handler.CheckAvailability)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.auth.APIKey)
			protected.Post("/", handler.CreateDoctor)
			protected.Patch("/{id}", handler.UpdateDoctor)
			protected.Delete("/{id}", handler.DeactivateDoctor)
		})
	})
}

// GetDoctors lists doctors with optional filters.
// @Summary Get all doctors
// @Tags Doctor
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name (partial match)"
// @Param specialty query string false "Filter by specialty"
// @Param active query boolean false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetDoctorsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
func (handler *Handler) GetDoctors(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := query.Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if specialty := query.Get(model.FieldSpecialty); specialty != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpecialty,
			Operator: gDto.FilterOperatorEq,
			Value:    specialty,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	doctors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, doctors)
}

// GetActiveDoctors lists the doctors offered by the booking dialogue, ordered by name.
// @Summary Get active doctors
// @Tags Doctor
// @Produce json
// @Success 200 {object} response.Data[[]dto.DoctorResponse]
// @Failure 500 {object} response.Error
// @Router /v1/doctors/active [get]
func (handler *Handler) GetActiveDoctors(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveDoctors")
	defer scope.End()

	doctors, err := handler.service.GetActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active doctors")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, doctors)
}

// SearchDoctor returns the first active doctor whose name contains the query.
// @Summary Search a doctor by name
// @Tags Doctor
// @Produce json
// @Param name query string true "Name or part of it"
// @Success 200 {object} response.Data[dto.DoctorResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/doctors/search [get]
func (handler *Handler) SearchDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchDoctor")
	defer scope.End()

	doctor, err := handler.service.SearchByName(ctx, request.URL.Query().Get(model.FieldName))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search doctor")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, doctor)
}

// GetDoctorByID retrieves a doctor by its ID.
// @Summary Get a doctor by ID
// @Tags Doctor
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Data[dto.DoctorResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{id} [get]
func (handler *Handler) GetDoctorByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	doctor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, doctor)
}

// CheckAvailability tells whether the doctor has a free slot on a date.
// @Summary Check a doctor's availability
// @Tags Doctor
// @Produce json
// @Param id path int true "Doctor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{id}/availability [get]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	availability, err := handler.service.CheckAvailability(ctx, id, request.URL.Query().Get(queryParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check doctor availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, availability)
}

// CreateDoctor registers a doctor.
// @Summary Create a new doctor
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Data[dto.DoctorResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/doctors [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDoctor")
	defer scope.End()

	req := dto.CreateDoctorRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	doctor, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create doctor")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Doctor created successfully")

	response.WithJSON(writer, http.StatusCreated, doctor)
}

// UpdateDoctor changes the provided fields of a doctor.
// @Summary Update a doctor
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Data[dto.DoctorResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctor")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateDoctorRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	doctor, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update doctor")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Doctor updated successfully")

	response.WithJSON(writer, http.StatusOK, doctor)
}

// DeactivateDoctor hides a doctor from the dialogue. Slots are kept.
// @Summary Deactivate a doctor
// @Tags Doctor
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/doctors/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeactivateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeactivateDoctor")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Deactivate(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate doctor")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Doctor deactivated successfully")

	response.WithMessage(writer, http.StatusOK, "Doctor deactivated successfully")
}
