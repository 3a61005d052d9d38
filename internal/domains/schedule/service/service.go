package service

import (
	"agenda/config"
	"agenda/infras/kafka"
	"agenda/infras/metrics"
	"agenda/infras/otel"
	doctorModel "agenda/internal/domains/doctor/model"
	doctorRepo "agenda/internal/domains/doctor/repository"
	doctorService "agenda/internal/domains/doctor/service"
	"agenda/internal/domains/schedule/model"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/internal/domains/schedule/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/hasher"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
	"agenda/shared/validator"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	msgScheduleNotFound    = "Horário não encontrado"
	msgScheduleUnavailable = "Horário não está mais disponível"
	msgSlotNotAvailable    = "Horário não está disponível"
	msgBookingNotFound     = "Agendamento não encontrado"
	msgNotBooked           = "Agendamento não está marcado"
	msgScheduleDuplicated  = "Horário já cadastrado para este médico"
	msgScheduleIsBooked    = "Horário possui agendamento e não pode ser removido"
	msgDoctorNotFound      = "Médico não encontrado"
)

const (
	OperationReserve       = "reserve"
	OperationReserveByTime = "reserve_by_time"
	OperationRelease       = "release"

	ResultOK        = "ok"
	ResultConflict  = "conflict"
	ResultNotFound  = "not_found"
	ResultNotBooked = "not_booked"
	ResultInvalid   = "invalid"
	ResultError     = "error"
)

type Schedule interface {
	GetAvailable(ctx context.Context, doctorID int64, date string) ([]dto.ScheduleResponse, error)
	GetBooked(ctx context.Context, doctorID int64, date string) ([]dto.ScheduleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSchedulesResponse, error)
	Get(ctx context.Context, id int64) (dto.ScheduleResponse, error)
	Create(ctx context.Context, req dto.CreateScheduleRequest) (dto.ScheduleResponse, error)
	Delete(ctx context.Context, id int64) error
	Reserve(ctx context.Context, id int64, patient dto.PatientData) (dto.ReservationResponse, error)
	ReserveByDoctorDateTime(ctx context.Context, req dto.ReserveByTimeRequest) (dto.ReservationResponse, error)
	Release(ctx context.Context, id int64) (dto.ScheduleResponse, error)
}

type serviceImpl struct {
	repo       repository.Schedule
	doctorRepo doctorRepo.Doctor
	hasher     hasher.Hasher
	kafka      kafka.Client
	metrics    *metrics.Metrics
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Schedule, doctorRepo doctorRepo.Doctor, hasher hasher.Hasher, kafka kafka.Client,
	metrics *metrics.Metrics, cfg *config.Config, cache cache.RedisCache, otel otel.Otel,
) Schedule {
	return &serviceImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		hasher:     hasher,
		kafka:      kafka,
		metrics:    metrics,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func byTime() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.TableName + "." + model.FieldTime, SortDir: gDto.SortDirAsc}
}

// GetAvailable lists the open slots of a doctor on date ordered by time. It is
// never cached: dialogue selectors index into this exact list.
func (s *serviceImpl) GetAvailable(ctx context.Context, doctorID int64, date string) (res []dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, byTime(), repository.SlotFilter(doctorID, date, model.StatusAvailable))
	if err != nil {
		log.Error().Err(err).Msg("failed to get available schedules")

		return nil, fmt.Errorf("failed to get available schedules: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) GetBooked(ctx context.Context, doctorID int64, date string) (res []dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBooked")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, byTime(), repository.SlotFilter(doctorID, date, model.StatusBooked))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked schedules")

		return nil, fmt.Errorf("failed to get booked schedules: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSchedulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return res, fmt.Errorf("failed to get schedules: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedule, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return res, fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == 0 {
		return res, failure.NotFound(msgScheduleNotFound) // nolint:wrapcheck
	}

	res.FromModel(schedule)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateScheduleRequest) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	mod, err := req.ToModel()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	exist, err := s.doctorRepo.Exist(ctx, shared.FilterByID(req.DoctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor exists")

		return res, fmt.Errorf("failed to check if doctor exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgDoctorNotFound) // nolint:wrapcheck
	}

	schedule, err := s.repo.InsertReturning(ctx, mod)
	if err != nil {
		if isUniqueViolation(err) {
			return res, failure.Conflict(msgScheduleDuplicated) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create schedule")

		return res, fmt.Errorf("failed to create schedule: %w", err)
	}

	res.FromModel(schedule)

	s.invalidateAvailability(ctx, schedule)

	return res, nil
}

// Delete removes a slot unless someone holds it.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	schedule, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if schedule.ID == 0 {
		return failure.NotFound(msgScheduleNotFound) // nolint:wrapcheck
	}

	if schedule.IsBooked() {
		return failure.Conflict(msgScheduleIsBooked) // nolint:wrapcheck
	}

	err = s.repo.Delete(ctx, repository.GuardedFilter(id, schedule.Status))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete schedule")

		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	s.invalidateAvailability(ctx, schedule)

	return nil
}

// Reserve books slot id for the patient. The status check and the write are a
// single guarded UPDATE, so of two concurrent calls only one can match.
func (s *serviceImpl) Reserve(ctx context.Context, id int64, patient dto.PatientData) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	if id <= 0 {
		s.metrics.ObserveTransition(OperationReserve, ResultInvalid)

		return res, failure.BadRequestFromString(msgScheduleNotFound) // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&patient); err != nil {
		s.metrics.ObserveTransition(OperationReserve, ResultInvalid)

		return res, err
	}

	booking, err := s.bookingFields(patient)
	if err != nil {
		s.metrics.ObserveTransition(OperationReserve, ResultError)

		return res, err
	}

	schedule, ok, err := s.repo.UpdateReturning(ctx, booking, repository.GuardedFilter(id, model.StatusAvailable))
	if err != nil {
		s.metrics.ObserveTransition(OperationReserve, ResultError)
		log.Error().Err(err).Int64("scheduleID", id).Msg("failed to reserve schedule")

		return res, fmt.Errorf("failed to reserve schedule: %w", err)
	}

	if !ok {
		err = s.rejection(ctx, shared.FilterByID(id, model.FieldID, model.TableName), msgScheduleNotFound, msgScheduleUnavailable)
		s.metrics.ObserveTransition(OperationReserve, resultOf(err))

		return res, err
	}

	s.metrics.ObserveTransition(OperationReserve, ResultOK)
	s.afterTransition(ctx, dto.EventTypeBooked, schedule)

	res.FromModel(schedule, patient)

	return res, nil
}

// ReserveByDoctorDateTime books the slot identified by its natural key.
func (s *serviceImpl) ReserveByDoctorDateTime(ctx context.Context, req dto.ReserveByTimeRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReserveByDoctorDateTime")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = validator.ValidateStruct(&req); err != nil {
		s.metrics.ObserveTransition(OperationReserveByTime, ResultInvalid)

		return res, err
	}

	clock, err := gModel.ParseClock(req.Time)
	if err != nil {
		s.metrics.ObserveTransition(OperationReserveByTime, ResultInvalid)

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	booking, err := s.bookingFields(req.PatientData)
	if err != nil {
		s.metrics.ObserveTransition(OperationReserveByTime, ResultError)

		return res, err
	}

	schedule, ok, err := s.repo.UpdateReturning(ctx, booking,
		repository.NaturalKeyFilter(req.DoctorID, req.Date, clock.String(), model.StatusAvailable))
	if err != nil {
		s.metrics.ObserveTransition(OperationReserveByTime, ResultError)
		log.Error().Err(err).Int64("doctorID", req.DoctorID).Msg("failed to reserve schedule by time")

		return res, fmt.Errorf("failed to reserve schedule by time: %w", err)
	}

	if !ok {
		err = s.rejection(ctx, repository.NaturalKeyFilter(req.DoctorID, req.Date, clock.String(), ""), msgScheduleNotFound, msgSlotNotAvailable)
		s.metrics.ObserveTransition(OperationReserveByTime, resultOf(err))

		return res, err
	}

	s.metrics.ObserveTransition(OperationReserveByTime, ResultOK)
	s.afterTransition(ctx, dto.EventTypeBooked, schedule)

	res.FromModel(schedule, req.PatientData)

	return res, nil
}

// Release frees a booked slot and clears every patient field.
func (s *serviceImpl) Release(ctx context.Context, id int64) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer scope.TraceIfError(err)

	if id <= 0 {
		s.metrics.ObserveTransition(OperationRelease, ResultInvalid)

		return res, failure.BadRequestFromString(msgBookingNotFound) // nolint:wrapcheck
	}

	release := map[string]any{
		model.FieldStatus:       model.StatusAvailable,
		model.FieldPatientName:  nil,
		model.FieldPatientPhone: nil,
		model.FieldBookedAt:     nil,
		constant.FieldUpdatedAt: timezone.Now(),
	}

	schedule, ok, err := s.repo.UpdateReturning(ctx, release, repository.GuardedFilter(id, model.StatusBooked))
	if err != nil {
		s.metrics.ObserveTransition(OperationRelease, ResultError)
		log.Error().Err(err).Int64("scheduleID", id).Msg("failed to release schedule")

		return res, fmt.Errorf("failed to release schedule: %w", err)
	}

	if !ok {
		err = s.rejection(ctx, shared.FilterByID(id, model.FieldID, model.TableName), msgBookingNotFound, msgNotBooked)
		s.metrics.ObserveTransition(OperationRelease, resultOf(err))

		return res, err
	}

	s.metrics.ObserveTransition(OperationRelease, ResultOK)
	s.afterTransition(ctx, dto.EventTypeReleased, schedule)

	res.FromModel(schedule)

	return res, nil
}

func (s *serviceImpl) bookingFields(patient dto.PatientData) (map[string]any, error) {
	name, err := s.hasher.HashName(patient.PatientName)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash patient name")

		return nil, fmt.Errorf("failed to hash patient name: %w", err)
	}

	phone, err := s.hasher.HashPhone(patient.PatientPhone)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash patient phone")

		return nil, fmt.Errorf("failed to hash patient phone: %w", err)
	}

	now := timezone.Now()

	return map[string]any{
		model.FieldStatus:       model.StatusBooked,
		model.FieldPatientName:  name,
		model.FieldPatientPhone: phone,
		model.FieldBookedAt:     now,
		constant.FieldUpdatedAt: now,
	}, nil
}

// rejection explains a guarded update that matched nothing: the slot is either
// missing or in another status.
func (s *serviceImpl) rejection(ctx context.Context, filter gDto.FilterGroup, notFound, conflict string) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if schedule exists")

		return fmt.Errorf("failed to check if schedule exists: %w", err)
	}

	if !exist {
		return failure.NotFound(notFound) // nolint:wrapcheck
	}

	return failure.Conflict(conflict) // nolint:wrapcheck
}

func resultOf(err error) string {
	switch failure.GetCode(err) {
	case http.StatusNotFound:
		return ResultNotFound
	case http.StatusConflict:
		return ResultConflict
	default:
		return ResultError
	}
}

func (s *serviceImpl) afterTransition(ctx context.Context, eventType string, schedule model.Schedule) {
	s.invalidateAvailability(ctx, schedule)

	if !s.cfg.Kafka.Enable || s.kafka == nil {
		return
	}

	event := dto.Event{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ScheduleID: schedule.ID,
		DoctorID:   schedule.DoctorID,
		Date:       schedule.Date.Format(constant.DateOnlyFormat),
		Time:       schedule.Time.Short(),
		OccurredAt: timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: strconv.FormatInt(schedule.ID, 10), Value: event}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic, message); err != nil {
			s.metrics.ObserveEvent(eventType, metrics.DirectionPublished, ResultError)
			log.Error().Err(err).Str("eventID", event.EventID).Msg("failed to publish schedule event")

			return
		}

		s.metrics.ObserveEvent(eventType, metrics.DirectionPublished, ResultOK)
	}()
}

func (s *serviceImpl) invalidateAvailability(ctx context.Context, schedule model.Schedule) {
	key := doctorService.AvailabilityCacheKey(schedule.DoctorID, schedule.Date.Format(constant.DateOnlyFormat))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, key); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to invalidate doctor availability")
		}
	}()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
}
