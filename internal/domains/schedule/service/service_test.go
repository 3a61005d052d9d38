package service_test

import (
	"agenda/config"
	"agenda/infras/kafka"
	kafkaMocks "agenda/infras/kafka/mocks"
	"agenda/infras/metrics"
	otelMocks "agenda/infras/otel/mocks"
	doctorMocks "agenda/internal/domains/doctor/mocks"
	"agenda/internal/domains/schedule/mocks"
	"agenda/internal/domains/schedule/model"
	"agenda/internal/domains/schedule/model/dto"
	"agenda/internal/domains/schedule/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	"agenda/shared/hasher"
	gModel "agenda/shared/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

// slotStore is an in-memory Schedule repository that applies guarded updates
// under a lock, the way a single UPDATE ... WHERE status = ... does in Postgres.
type slotStore struct {
	mu    sync.Mutex
	slots map[int64]model.Schedule
}

func newSlotStore(slots ...model.Schedule) *slotStore {
	store := &slotStore{slots: map[int64]model.Schedule{}}
	for _, slot := range slots {
		store.slots[slot.ID] = slot
	}

	return store
}

func (s *slotStore) matches(slot model.Schedule, filter gDto.FilterGroup) bool {
	_, args := filter.GetWhereClause()

	if v, ok := args[model.FieldID]; ok && v != slot.ID {
		return false
	}

	if v, ok := args[model.FieldStatus]; ok && v != slot.Status {
		return false
	}

	if v, ok := args[model.FieldDoctorID]; ok && v != slot.DoctorID {
		return false
	}

	if v, ok := args[model.FieldDate]; ok && v != slot.Date.Format(constant.DateOnlyFormat) {
		return false
	}

	if v, ok := args[model.FieldTime]; ok && v != slot.Time.String() {
		return false
	}

	return true
}

func (s *slotStore) InsertReturning(_ context.Context, mod model.Schedule) (model.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mod.ID = int64(len(s.slots) + 1)
	s.slots[mod.ID] = mod

	return mod, nil
}

func (s *slotStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range s.slots {
		if s.matches(slot, filter) {
			return slot, nil
		}
	}

	return model.Schedule{}, nil
}

func (s *slotStore) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []model.Schedule

	for _, slot := range s.slots {
		if s.matches(slot, filter) {
			res = append(res, slot)
		}
	}

	return res, nil
}

func (s *slotStore) Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	slot, err := s.Get(ctx, filter)

	return slot.ID != 0, err
}

func (s *slotStore) Count(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	slots, err := s.GetAll(ctx, gDto.QueryParams{}, filter)

	return len(slots), err
}

func (s *slotStore) Delete(_ context.Context, filter gDto.FilterGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, slot := range s.slots {
		if s.matches(slot, filter) {
			delete(s.slots, id)
		}
	}

	return nil
}

func (s *slotStore) UpdateReturning(_ context.Context, req map[string]any, filter gDto.FilterGroup) (model.Schedule, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, slot := range s.slots {
		if !s.matches(slot, filter) {
			continue
		}

		slot.Status, _ = req[model.FieldStatus].(string)
		slot.PatientName = nullString(req[model.FieldPatientName])
		slot.PatientPhone = nullString(req[model.FieldPatientPhone])

		bookedAt, ok := req[model.FieldBookedAt].(time.Time)
		slot.BookedAt = sql.NullTime{Time: bookedAt, Valid: ok}

		s.slots[id] = slot

		return slot, true, nil
	}

	return model.Schedule{}, false, nil
}

func (s *slotStore) slot(id int64) model.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.slots[id]
}

func nullString(value any) sql.NullString {
	str, ok := value.(string)

	return sql.NullString{String: str, Valid: ok}
}

func today() time.Time {
	return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
}

func availableSlot(id int64, clock string) model.Schedule {
	return model.Schedule{ID: id, DoctorID: 1, Date: today(), Time: gModel.Clock(clock), Status: model.StatusAvailable}
}

type fixture struct {
	cache  *cacheMocks.MockRedisCache
	kafka  *kafkaMocks.MockClient
	doctor *doctorMocks.MockDoctor
	hasher hasher.Hasher
	cfg    *config.Config
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		kafka:  kafkaMocks.NewMockClient(ctrl),
		doctor: doctorMocks.NewMockDoctor(ctrl),
		hasher: hasher.NewWithCost(bcrypt.MinCost),
		cfg:    &config.Config{},
	}

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) service(repo *slotStore) service.Schedule {
	return service.New(repo, f.doctor, f.hasher, f.kafka, metrics.New(metrics.NewRegistry()), f.cfg, f.cache, otelMocks.NewOtel())
}

func TestReserveExclusivity(t *testing.T) {
	f := newFixture(t)
	store := newSlotStore(availableSlot(42, "09:00:00"))
	svc := f.service(store)

	const callers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []string
		conflicts int
	)

	for i := range callers {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			name := fmt.Sprintf("Paciente %d", i)

			_, err := svc.Reserve(context.Background(), 42, dto.PatientData{PatientName: name, PatientPhone: "11999990000"})

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				winners = append(winners, name)

				return
			}

			if failure.IsKind(err, http.StatusConflict) {
				conflicts++
			}
		}(i)
	}

	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, callers-1, conflicts)

	slot := store.slot(42)
	assert.Equal(t, model.StatusBooked, slot.Status)
	assert.True(t, f.hasher.Compare(winners[0], slot.PatientName.String))
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	f := newFixture(t)
	store := newSlotStore(availableSlot(42, "10:30:00"))
	svc := f.service(store)

	patient := dto.PatientData{PatientName: "Ana Silva", PatientPhone: "11999990000"}

	res, err := svc.Reserve(context.Background(), 42, patient)
	require.NoError(t, err)

	assert.Equal(t, "Ana Silva", res.PatientName)
	assert.Equal(t, "11999990000", res.PatientPhone)
	assert.Equal(t, model.StatusBooked, res.Status)
	assert.Equal(t, "2026-10-18", res.Date)
	assert.NotEmpty(t, res.BookedAt)

	booked := store.slot(42)
	assert.Equal(t, model.StatusBooked, booked.Status)
	assert.True(t, booked.BookedAt.Valid)
	assert.NotEqual(t, patient.PatientName, booked.PatientName.String)
	assert.NotEqual(t, patient.PatientPhone, booked.PatientPhone.String)
	assert.True(t, f.hasher.Compare(patient.PatientPhone, booked.PatientPhone.String))

	released, err := svc.Release(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, released.Status)

	slot := store.slot(42)
	assert.Equal(t, model.StatusAvailable, slot.Status)
	assert.False(t, slot.PatientName.Valid)
	assert.False(t, slot.PatientPhone.Valid)
	assert.False(t, slot.BookedAt.Valid)
}

func TestRelease(t *testing.T) {
	other := availableSlot(43, "11:00:00")
	other.Status = model.StatusBooked
	other.PatientName = sql.NullString{String: "hash", Valid: true}

	tests := []struct {
		name    string
		id      int64
		code    int
		message string
	}{
		{name: "slot already available", id: 42, code: http.StatusConflict, message: "Agendamento não está marcado"},
		{name: "unknown slot", id: 99, code: http.StatusNotFound, message: "Agendamento não encontrado"},
		{name: "invalid id", id: 0, code: http.StatusBadRequest, message: "Agendamento não encontrado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			store := newSlotStore(availableSlot(42, "10:00:00"), other)

			_, err := f.service(store).Release(context.Background(), tt.id)

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, other, store.slot(43))
		})
	}
}

func TestReserveRejections(t *testing.T) {
	booked := availableSlot(7, "08:00:00")
	booked.Status = model.StatusBooked

	tests := []struct {
		name    string
		id      int64
		patient dto.PatientData
		code    int
		message string
	}{
		{name: "missing name", id: 7, patient: dto.PatientData{PatientPhone: "11999990000"}, code: http.StatusBadRequest},
		{name: "unknown slot", id: 8, patient: dto.PatientData{PatientName: "Ana", PatientPhone: "11999990000"},
			code: http.StatusNotFound, message: "Horário não encontrado"},
		{name: "already booked", id: 7, patient: dto.PatientData{PatientName: "Ana", PatientPhone: "11999990000"},
			code: http.StatusConflict, message: "Horário não está mais disponível"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			store := newSlotStore(booked)

			_, err := f.service(store).Reserve(context.Background(), tt.id, tt.patient)

			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))

			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}

			assert.Equal(t, booked, store.slot(7))
		})
	}
}

func TestReserveByDoctorDateTime(t *testing.T) {
	t.Run("books by natural key", func(t *testing.T) {
		f := newFixture(t)
		store := newSlotStore(availableSlot(5, "14:00:00"), availableSlot(6, "15:00:00"))

		res, err := f.service(store).ReserveByDoctorDateTime(context.Background(), dto.ReserveByTimeRequest{
			DoctorID:    1,
			Date:        "2026-10-18",
			Time:        "15:00",
			PatientData: dto.PatientData{PatientName: "Maria", PatientPhone: "11988887777"},
		})

		require.NoError(t, err)
		assert.Equal(t, int64(6), res.ID)
		assert.Equal(t, model.StatusBooked, store.slot(6).Status)
		assert.Equal(t, model.StatusAvailable, store.slot(5).Status)
	})

	t.Run("taken slot", func(t *testing.T) {
		f := newFixture(t)
		taken := availableSlot(5, "14:00:00")
		taken.Status = model.StatusBooked
		store := newSlotStore(taken)

		_, err := f.service(store).ReserveByDoctorDateTime(context.Background(), dto.ReserveByTimeRequest{
			DoctorID:    1,
			Date:        "2026-10-18",
			Time:        "14:00",
			PatientData: dto.PatientData{PatientName: "Maria", PatientPhone: "11988887777"},
		})

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "Horário não está disponível", err.Error())
	})

	t.Run("no such slot", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service(newSlotStore()).ReserveByDoctorDateTime(context.Background(), dto.ReserveByTimeRequest{
			DoctorID:    1,
			Date:        "2026-10-18",
			Time:        "14:00",
			PatientData: dto.PatientData{PatientName: "Maria", PatientPhone: "11988887777"},
		})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestReservePublishesEvent(t *testing.T) {
	f := newFixture(t)
	f.cfg.Kafka.Enable = true
	f.cfg.Kafka.Topic = "agenda.schedules"

	published := make(chan kafka.Message, 1)

	f.kafka.EXPECT().SendMessages(gomock.Any(), "agenda.schedules", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			published <- messages[0]

			return nil
		})

	store := newSlotStore(availableSlot(42, "09:00:00"))

	_, err := f.service(store).Reserve(context.Background(), 42, dto.PatientData{PatientName: "Ana Silva", PatientPhone: "11999990000"})
	require.NoError(t, err)

	select {
	case msg := <-published:
		assert.Equal(t, "42", msg.Key)

		event, ok := msg.Value.(dto.Event)
		require.True(t, ok)
		assert.Equal(t, dto.EventTypeBooked, event.Type)
		assert.Equal(t, "09:00", event.Time)
		assert.NotEmpty(t, event.EventID)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not published")
	}
}

func TestGetAvailable(t *testing.T) {
	f := newFixture(t)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSchedule(ctrl)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Schedule, error) {
			assert.Equal(t, "schedules.time", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Equal(t, model.StatusAvailable, args["status"])

			return []model.Schedule{availableSlot(1, "08:00:00"), availableSlot(2, "08:30:00")}, nil
		})

	svc := service.New(repo, f.doctor, f.hasher, f.kafka, nil, f.cfg, f.cache, otelMocks.NewOtel())

	res, err := svc.GetAvailable(context.Background(), 1, "2026-10-18")

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "08:30:00", res[1].Time)
}

func TestCreate(t *testing.T) {
	req := dto.CreateScheduleRequest{DoctorID: 1, Date: "2026-10-18", Time: "09:00"}

	t.Run("unknown doctor", func(t *testing.T) {
		f := newFixture(t)
		repo := mocks.NewMockSchedule(gomock.NewController(t))

		f.doctor.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := service.New(repo, f.doctor, f.hasher, f.kafka, nil, f.cfg, f.cache, otelMocks.NewOtel()).Create(context.Background(), req)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("duplicate slot", func(t *testing.T) {
		f := newFixture(t)
		repo := mocks.NewMockSchedule(gomock.NewController(t))

		f.doctor.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).
			Return(model.Schedule{}, fmt.Errorf("failed to insert data (schedule): %w", &pq.Error{Code: "23505"}))

		_, err := service.New(repo, f.doctor, f.hasher, f.kafka, nil, f.cfg, f.cache, otelMocks.NewOtel()).Create(context.Background(), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("stores an available slot", func(t *testing.T) {
		f := newFixture(t)
		repo := mocks.NewMockSchedule(gomock.NewController(t))

		f.doctor.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().InsertReturning(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, slot model.Schedule) (model.Schedule, error) {
				assert.Equal(t, model.StatusAvailable, slot.Status)
				assert.Equal(t, gModel.Clock("09:00:00"), slot.Time)

				slot.ID = 3

				return slot, nil
			})

		res, err := service.New(repo, f.doctor, f.hasher, f.kafka, nil, f.cfg, f.cache, otelMocks.NewOtel()).Create(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, int64(3), res.ID)
	})
}

func TestDelete(t *testing.T) {
	booked := availableSlot(9, "09:00:00")
	booked.Status = model.StatusBooked

	t.Run("booked slot is kept", func(t *testing.T) {
		f := newFixture(t)
		store := newSlotStore(booked)

		err := f.service(store).Delete(context.Background(), 9)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, booked, store.slot(9))
	})

	t.Run("available slot is removed", func(t *testing.T) {
		f := newFixture(t)
		store := newSlotStore(availableSlot(9, "09:00:00"))

		require.NoError(t, f.service(store).Delete(context.Background(), 9))
		assert.Equal(t, model.Schedule{}, store.slot(9))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)
		repo := mocks.NewMockSchedule(gomock.NewController(t))

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Schedule{}, errors.New("db down"))

		err := service.New(repo, f.doctor, f.hasher, f.kafka, nil, f.cfg, f.cache, otelMocks.NewOtel()).Delete(context.Background(), 9)

		require.Error(t, err)
		assert.False(t, failure.IsExpected(err))
	})
}
