package service

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/doctor/model"
	"agenda/internal/domains/doctor/model/dto"
	"agenda/internal/domains/doctor/repository"
	scheduleModel "agenda/internal/domains/schedule/model"
	scheduleRepo "agenda/internal/domains/schedule/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/hasher"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDoctor          = "doctor:get"
	cacheGetAllDoctor       = "doctor:gets"
	cacheGetActiveDoctor    = "doctor:active"
	cacheDoctorAvailability = "doctor:availability"

	msgDoctorNotFound = "Médico não encontrado"
)

type Doctor interface {
	GetActive(ctx context.Context) ([]dto.DoctorResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetDoctorsResponse, error)
	Get(ctx context.Context, id int64) (dto.DoctorResponse, error)
	SearchByName(ctx context.Context, name string) (dto.DoctorResponse, error)
	CheckAvailability(ctx context.Context, id int64, date string) (dto.AvailabilityResponse, error)
	Create(ctx context.Context, req dto.CreateDoctorRequest) (dto.DoctorResponse, error)
	Update(ctx context.Context, req dto.UpdateDoctorRequest, id int64) (dto.DoctorResponse, error)
	Deactivate(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo         repository.Doctor
	scheduleRepo scheduleRepo.Schedule
	hasher       hasher.Hasher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Doctor, scheduleRepo scheduleRepo.Schedule, hasher hasher.Hasher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Doctor {
	return &serviceImpl{
		repo:         repo,
		scheduleRepo: scheduleRepo,
		hasher:       hasher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// AvailabilityCacheKey is the cache entry holding CheckAvailability for a doctor
// on a date. Schedule transitions delete it.
func AvailabilityCacheKey(id int64, date string) string {
	return shared.BuildCacheKey(cacheDoctorAvailability, id, date)
}

func activeFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// GetActive lists active doctors ordered by name. The dialogue numbers doctors
// by their position in this list.
func (s *serviceImpl) GetActive(ctx context.Context) (res []dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetActiveDoctor, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheGetActiveDoctor).Msg("cache hit for active doctors")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldName, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, activeFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get active doctors")

		return nil, fmt.Errorf("failed to get active doctors: %w", err)
	}

	res = make([]dto.DoctorResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetActiveDoctor, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save active doctors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetDoctorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDoctor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for doctors")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctors")

		return res, fmt.Errorf("failed to count doctors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctors")

		return res, fmt.Errorf("failed to get doctors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDoctor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for doctor")

		return res, nil
	}

	doctor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return res, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == 0 {
		return res, failure.NotFound(msgDoctorNotFound) // nolint:wrapcheck
	}

	res.FromModel(doctor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor to cache")
		}
	}()

	return res, nil
}

// SearchByName returns the first active doctor, by name order, whose name contains name.
func (s *serviceImpl) SearchByName(ctx context.Context, name string) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SearchByName")
	defer scope.End()
	defer scope.TraceIfError(err)

	if name == "" {
		return res, failure.BadRequestFromString("Informe o nome do médico.") // nolint:wrapcheck
	}

	filter := activeFilter()
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldName,
		Value:    name,
		Operator: gDto.FilterOperatorLike,
		Table:    model.TableName,
	})

	params := gDto.QueryParams{Limit: 1, SortBy: model.TableName + "." + model.FieldName, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search doctor by name")

		return res, fmt.Errorf("failed to search doctor by name: %w", err)
	}

	if len(models) == 0 {
		return res, failure.NotFound(msgDoctorNotFound) // nolint:wrapcheck
	}

	res.FromModel(models[0])

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, id int64, date string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := AvailabilityCacheKey(id, date)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if doctor exists")

		return res, fmt.Errorf("failed to check if doctor exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgDoctorNotFound) // nolint:wrapcheck
	}

	count, err := s.scheduleRepo.Count(ctx, scheduleRepo.SlotFilter(id, date, scheduleModel.StatusAvailable))
	if err != nil {
		log.Error().Err(err).Msg("failed to count available schedules")

		return res, fmt.Errorf("failed to count available schedules: %w", err)
	}

	res = dto.AvailabilityResponse{
		DoctorID:       id,
		Date:           date,
		Available:      count > 0,
		AvailableSlots: count,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) hashContact(email, phone string) (hashedEmail, hashedPhone string, err error) {
	hashedEmail, err = s.hasher.HashEmail(email)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash doctor email: %w", err)
	}

	hashedPhone, err = s.hasher.HashPhonePartial(phone)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash doctor phone: %w", err)
	}

	return hashedEmail, hashedPhone, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateDoctorRequest) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	hashedEmail, hashedPhone, err := s.hashContact(req.Email, req.Phone)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash doctor contact")

		return res, err
	}

	doctor, err := s.repo.InsertReturning(ctx, req.ToModel(hashedEmail, hashedPhone))
	if err != nil {
		log.Error().Err(err).Msg("failed to create doctor")

		return res, fmt.Errorf("failed to create doctor: %w", err)
	}

	res.FromModel(doctor)
	res.WithContact(req.Email, req.Phone)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllDoctor)
		shared.InvalidateCaches(c, s.cache, cacheGetActiveDoctor)
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateDoctorRequest, id int64) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	plainEmail, plainPhone := req.Email, req.Phone

	req.Email, req.Phone, err = s.hashContact(req.Email, req.Phone)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash doctor contact")

		return res, err
	}

	doctor, ok, err := s.repo.UpdateReturning(ctx, shared.TransformFields(req), shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to update doctor")

		return res, fmt.Errorf("failed to update doctor: %w", err)
	}

	if !ok {
		return res, failure.NotFound(msgDoctorNotFound) // nolint:wrapcheck
	}

	res.FromModel(doctor)
	res.WithContact(plainEmail, plainPhone)

	go s.invalidate(context.WithoutCancel(ctx), id)

	return res, nil
}

// Deactivate hides a doctor from the dialogue without touching its schedules.
func (s *serviceImpl) Deactivate(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer scope.TraceIfError(err)

	active := false

	_, ok, err := s.repo.UpdateReturning(ctx, shared.TransformFields(dto.UpdateDoctorRequest{Active: &active}),
		shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to deactivate doctor")

		return fmt.Errorf("failed to deactivate doctor: %w", err)
	}

	if !ok {
		return failure.NotFound(msgDoctorNotFound) // nolint:wrapcheck
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetDoctor, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete doctor from cache")
	}

	shared.InvalidateCaches(ctx, s.cache, cacheGetAllDoctor)
	shared.InvalidateCaches(ctx, s.cache, cacheGetActiveDoctor)
}
