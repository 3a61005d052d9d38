package schedule

import (
	"agenda/infras/otel"
	"agenda/internal/domains/schedule/model"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/internal/domains/schedule/service"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/timezone"
	"agenda/shared/validator"
	"agenda/transport/http/middleware"
	"agenda/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Schedule, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedules", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSchedules)
		routerGroup.Get("/available", handler.GetAvailable)
		routerGroup.Get("/booked", handler.GetBooked)
		routerGroup.Get("/{id}", handler.GetScheduleByID)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.auth.APIKey)
			protected.Post("/", handler.CreateSchedule)
			protected.Post("/book", handler.ReserveByTime)
			protected.Delete("/{id}", handler.DeleteSchedule)
			protected.Post("/{id}/book", handler.Reserve)
			protected.Post("/{id}/cancel", handler.Release)
		})
	})
}

// GetSchedules lists slots with optional filters.
// @Summary Get all schedules
// @Tags Schedule
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param doctor_id query int false "Filter by doctor"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status (available, booked, cancelled)"
// @Success 200 {object} response.Data[dto.GetSchedulesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/schedules [get]
func (handler *Handler) GetSchedules(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	// Only add filters if the values are non-empty
	for _, field := range []string{model.FieldDoctorID, model.FieldDate, model.FieldStatus} {
		value := query.Get(field)
		if value == "" {
			continue
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	schedules, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedules")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, schedules)
}

// GetAvailable lists the free slots of a doctor on a date, today by default.
// @Summary Get available schedules
// @Tags Schedule
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.ScheduleResponse]
// @Failure 400 {object} response.Error
// @Router /v1/schedules/available [get]
func (handler *Handler) GetAvailable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailable")
	defer scope.End()

	doctorID, date, err := doctorDay(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	schedules, err := handler.service.GetAvailable(ctx, doctorID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available schedules")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, schedules)
}

// GetBooked lists the booked slots of a doctor on a date, today by default.
// @Summary Get booked schedules
// @Tags Schedule
// @Produce json
// @Param doctor_id query int true "Doctor ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]dto.ScheduleResponse]
// @Failure 400 {object} response.Error
// @Router /v1/schedules/booked [get]
func (handler *Handler) GetBooked(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooked")
	defer scope.End()

	doctorID, date, err := doctorDay(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	schedules, err := handler.service.GetBooked(ctx, doctorID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booked schedules")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, schedules)
}

// GetScheduleByID retrieves a slot by its ID.
// @Summary Get a schedule by ID
// @Tags Schedule
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Data[dto.ScheduleResponse]
// @Failure 404 {object} response.Error
// @Router /v1/schedules/{id} [get]
func (handler *Handler) GetScheduleByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScheduleByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	schedule, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, schedule)
}

// CreateSchedule opens a new available slot.
// @Summary Create a new schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Data[dto.ScheduleResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/schedules [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSchedule")
	defer scope.End()

	req := dto.CreateScheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	schedule, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create schedule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Schedule created successfully")

	response.WithJSON(writer, http.StatusCreated, schedule)
}

// DeleteSchedule removes a slot that is not booked.
// @Summary Delete a schedule
// @Tags Schedule
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/schedules/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSchedule")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete schedule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Schedule deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Schedule deleted successfully")
}

// Reserve books a slot by its ID.
// @Summary Book a schedule
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param request body dto.PatientData true "Patient"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/schedules/{id}/book [post]
// @Security ApiKeyAuth
func (handler *Handler) Reserve(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reserve")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.PatientData{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.Reserve(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("schedule_id", id).Msg("failed to reserve schedule")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, reservation)
}

// ReserveByTime books the available slot of a doctor at a date and time.
// @Summary Book a schedule by doctor, date and time
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.ReserveByTimeRequest true "Reservation"
// @Success 200 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/schedules/book [post]
// @Security ApiKeyAuth
func (handler *Handler) ReserveByTime(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReserveByTime")
	defer scope.End()

	req := dto.ReserveByTimeRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	reservation, err := handler.service.ReserveByDoctorDateTime(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("doctor_id", req.DoctorID).Msg("failed to reserve schedule by time")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, reservation)
}

// Release cancels a booking and frees the slot.
// @Summary Cancel a booking
// @Tags Schedule
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 200 {object} response.Data[dto.ScheduleResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/schedules/{id}/cancel [post]
// @Security ApiKeyAuth
func (handler *Handler) Release(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Release")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	schedule, err := handler.service.Release(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("schedule_id", id).Msg("failed to release schedule")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, schedule)
}

func doctorDay(request *http.Request) (int64, string, error) {
	query := request.URL.Query()

	doctorID, err := shared.ParseID(query.Get(model.FieldDoctorID))
	if err != nil {
		return 0, "", err
	}

	date := query.Get(model.FieldDate)
	if date == "" {
		return doctorID, timezone.Today(), nil
	}

	if err := validator.ValidateVar(date, "dateonly"); err != nil {
		return 0, "", err
	}

	return doctorID, date, nil
}
