package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"agenda/infras/metrics"
	"agenda/infras/otel"
	"agenda/internal/domains/dialogue/model"
	"agenda/internal/domains/dialogue/model/dto"
	"agenda/internal/domains/dialogue/session"
	doctorDto "agenda/internal/domains/doctor/model/dto"
	scheduleDto "agenda/internal/domains/schedule/model/dto"
	"agenda/shared/constant"
	"agenda/shared/failure"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// DoctorDirectory is the part of the doctor service the dialogue reads.
type DoctorDirectory interface {
	GetActive(ctx context.Context) ([]doctorDto.DoctorResponse, error)
}

// SlotBooking is the part of the schedule service the dialogue drives.
type SlotBooking interface {
	GetAvailable(ctx context.Context, doctorID int64, date string) ([]scheduleDto.ScheduleResponse, error)
	Reserve(ctx context.Context, id int64, patient scheduleDto.PatientData) (scheduleDto.ReservationResponse, error)
	Release(ctx context.Context, id int64) (scheduleDto.ScheduleResponse, error)
}

type Dialogue interface {
	// Handle answers one turn. It never fails: every error becomes reply text.
	Handle(ctx context.Context, req dto.WebhookRequest) dto.WebhookResponse
}

// turn is the input of one intent handler.
type turn struct {
	session  string
	params   dto.Parameters
	contexts []dto.Context
}

type handlerFunc func(ctx context.Context, t turn) (dto.WebhookResponse, error)

// route binds an intent to its handler. rejected formats failures the caller
// should see, with the failure message as its only verb.
type route struct {
	handle   handlerFunc
	rejected string
}

// replyError carries the text shown when a handler fails unexpectedly.
type replyError struct {
	reply string
	err   error
}

func (e *replyError) Error() string {
	return e.err.Error()
}

func (e *replyError) Unwrap() error {
	return e.err
}

type serviceImpl struct {
	doctors   DoctorDirectory
	schedules SlotBooking
	sessions  session.Store
	metrics   *metrics.Metrics
	otel      otel.Otel
	routes    map[model.Intent]route
}

func New(doctors DoctorDirectory, schedules SlotBooking, sessions session.Store, metrics *metrics.Metrics, otel otel.Otel) Dialogue {
	s := &serviceImpl{
		doctors:   doctors,
		schedules: schedules,
		sessions:  sessions,
		metrics:   metrics,
		otel:      otel,
	}

	s.routes = map[model.Intent]route{
		model.IntentUnknown:             {handle: s.notUnderstood},
		model.IntentListDoctors:         {handle: s.listDoctors},
		model.IntentListSchedules:       {handle: s.listSchedules},
		model.IntentInformName:          {handle: s.informName},
		model.IntentInformPhone:         {handle: s.informPhone},
		model.IntentConfirmBooking:      {handle: s.confirmBooking, rejected: msgBookingFailed},
		model.IntentConfirmCancellation: {handle: s.confirmCancellation, rejected: msgCancelFailed},
	}

	return s
}

func (s *serviceImpl) Handle(ctx context.Context, req dto.WebhookRequest) (res dto.WebhookResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Handle")
	defer scope.End()

	if req.QueryResult == nil {
		s.metrics.ObserveTurn(model.IntentUnknown.String(), outcomeRejected, 0)

		return dto.WebhookResponse{FulfillmentText: fmt.Sprintf(msgProcessingError, reasonNoQuery)}
	}

	start := time.Now()
	intent := model.ParseIntent(req.QueryResult.Intent.DisplayName)

	scope.SetAttribute("intent", intent.String())

	r, ok := s.routes[intent]
	if !ok {
		r = s.routes[model.IntentUnknown]
	}

	res, err := r.handle(ctx, turn{
		session:  req.Session,
		params:   req.QueryResult.Parameters,
		contexts: req.QueryResult.OutputContexts,
	})

	outcome := outcomeOK

	if err != nil {
		scope.TraceError(err)

		res, outcome = s.render(r, err), outcomeRejected
		if !failure.IsExpected(err) {
			outcome = outcomeError
			log.Error().Err(err).Str("intent", intent.String()).Str("session", req.Session).Msg("failed to handle dialogue turn")
		}
	}

	s.metrics.ObserveTurn(intent.String(), outcome, time.Since(start).Seconds())

	return res
}

func (s *serviceImpl) render(r route, err error) dto.WebhookResponse {
	if failure.IsExpected(err) {
		text := err.Error()
		if r.rejected != "" {
			text = fmt.Sprintf(r.rejected, text)
		}

		return dto.WebhookResponse{FulfillmentText: text}
	}

	var replyErr *replyError
	if errors.As(err, &replyErr) {
		return dto.WebhookResponse{FulfillmentText: replyErr.reply}
	}

	return dto.WebhookResponse{FulfillmentText: msgApology}
}

func text(msg string) dto.WebhookResponse {
	return dto.WebhookResponse{FulfillmentText: msg}
}

func (s *serviceImpl) notUnderstood(_ context.Context, _ turn) (dto.WebhookResponse, error) {
	return text(msgNotUnderstood), nil
}

func (s *serviceImpl) listDoctors(ctx context.Context, _ turn) (dto.WebhookResponse, error) {
	doctors, err := s.doctors.GetActive(ctx)
	if err != nil {
		return dto.WebhookResponse{}, fmt.Errorf("failed to list doctors: %w", err)
	}

	if len(doctors) == 0 {
		return text(msgNoDoctors), nil
	}

	lines := make([]string, len(doctors))
	for i, doctor := range doctors {
		lines[i] = fmt.Sprintf(msgDoctorLine, i+1, doctor.Name, doctor.Specialty)
	}

	return text(msgDoctorListHead + strings.Join(lines, "\n")), nil
}

// listSchedules either opens the slot list for the chosen doctor or, when the
// platform still carries an awaiting-schedule context, takes the slot choice.
func (s *serviceImpl) listSchedules(ctx context.Context, t turn) (dto.WebhookResponse, error) {
	previous := contextParams(t.contexts, model.ContextAwaitingSchedule)
	if _, ok := previous.Int64(model.ParamDoctorID); ok {
		return s.chooseSchedule(ctx, t, previous)
	}

	selector, ok := t.params.Int64(selectorKey)
	if !ok {
		return text(msgAskDoctor), nil
	}

	doctors, err := s.doctors.GetActive(ctx)
	if err != nil {
		return dto.WebhookResponse{}, &replyError{reply: msgSlotsError, err: fmt.Errorf("failed to list doctors: %w", err)}
	}

	if selector < 1 || selector > int64(len(doctors)) {
		return text(msgInvalidDoctor), nil
	}

	doctor := doctors[selector-1]

	slots, err := s.schedules.GetAvailable(ctx, doctor.ID, timezone.Today())
	if err != nil {
		return dto.WebhookResponse{}, &replyError{reply: msgSlotsError, err: fmt.Errorf("failed to list schedules: %w", err)}
	}

	if len(slots) == 0 {
		return text(msgNoSlots), nil
	}

	// a new doctor choice invalidates everything collected after it
	s.sessions.Clear(ctx, t.session)
	s.sessions.Set(ctx, t.session, model.Draft{DoctorID: doctor.ID})

	lines := make([]string, len(slots))
	for i, slot := range slots {
		lines[i] = fmt.Sprintf(msgSlotLine, i+1, gModel.Clock(slot.Time).Short())
	}

	return dto.WebhookResponse{
		FulfillmentText: msgSlotListHead + strings.Join(lines, "\n"),
		OutputContexts: []dto.Context{
			dto.NewContext(t.session, model.ContextAwaitingSchedule, model.LifespanStage, dto.Parameters{
				model.ParamDoctorID:      doctor.ID,
				model.ParamScheduleCount: len(slots),
			}),
		},
	}, nil
}

func (s *serviceImpl) chooseSchedule(ctx context.Context, t turn, previous dto.Parameters) (dto.WebhookResponse, error) {
	draft := resolveDraft(s.sessions.Get(ctx, t.session), previous)
	if draft.DoctorID == 0 {
		return text(msgNoDoctorData), nil
	}

	selector, ok := t.params.Int64(selectorKey)
	if !ok {
		return text(msgInvalidSlot), nil
	}

	today := timezone.Today()

	slots, err := s.schedules.GetAvailable(ctx, draft.DoctorID, today)
	if err != nil {
		return dto.WebhookResponse{}, &replyError{reply: msgChoiceError, err: fmt.Errorf("failed to list schedules: %w", err)}
	}

	if selector < 1 || selector > int64(len(slots)) {
		return text(msgInvalidSlot), nil
	}

	slot := slots[selector-1]

	chosen := model.Draft{
		DoctorID:     draft.DoctorID,
		ScheduleID:   slot.ID,
		ScheduleTime: slot.Time,
		ScheduleDate: today,
	}

	s.sessions.Clear(ctx, t.session)
	s.sessions.Set(ctx, t.session, chosen)

	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf(msgSlotChosen, gModel.Clock(slot.Time).Short()),
		OutputContexts: []dto.Context{
			dto.NewContext(t.session, model.ContextAwaitingName, model.LifespanStage,
				stageParams(chosen, model.ParamDoctorID, model.ParamScheduleID, model.ParamScheduleTime)),
		},
	}, nil
}

func (s *serviceImpl) informName(ctx context.Context, t turn) (dto.WebhookResponse, error) {
	name := t.params.FirstString(patientNameKeys...)
	if name == "" {
		return text(msgAskName), nil
	}

	draft := resolveDraft(s.sessions.Get(ctx, t.session), contextParams(t.contexts, model.ContextAwaitingName))
	if draft.ScheduleID == 0 {
		return text(msgNoBookingData), nil
	}

	draft = draft.Merge(model.Draft{PatientName: name})
	s.sessions.Set(ctx, t.session, draft)

	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf(msgNameAccepted, name),
		OutputContexts: []dto.Context{
			dto.NewContext(t.session, model.ContextAwaitingPhone, model.LifespanStage,
				stageParams(draft, model.ParamDoctorID, model.ParamScheduleID, model.ParamScheduleTime, model.ParamPatientName)),
		},
	}, nil
}

func (s *serviceImpl) informPhone(ctx context.Context, t turn) (dto.WebhookResponse, error) {
	phone := t.params.FirstString(patientPhoneKeys...)
	if phone == "" {
		return text(msgAskPhone), nil
	}

	draft := resolveDraft(s.sessions.Get(ctx, t.session), contextParams(t.contexts, model.ContextAwaitingPhone))
	if draft.ScheduleID == 0 || draft.PatientName == "" {
		return text(msgNoBookingData), nil
	}

	draft = draft.Merge(model.Draft{PatientPhone: phone})
	s.sessions.Set(ctx, t.session, draft)

	params := stageParams(draft, model.ParamDoctorID, model.ParamScheduleID, model.ParamScheduleTime,
		model.ParamPatientName, model.ParamPatientPhone)

	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf(msgConfirmation, timezone.Now().Format(constant.DisplayDateFormat),
			gModel.Clock(draft.ScheduleTime).Short(), draft.PatientName, phone),
		OutputContexts: []dto.Context{
			dto.NewContext(t.session, model.ContextAwaitingConfirmation, model.LifespanConfirmation, params),
			dto.NewContext(t.session, model.ContextBookingData, model.LifespanBookingData, params),
		},
	}, nil
}

// confirmBooking commits the draft. A rejected reservation leaves the draft in
// place so the caller can retry.
func (s *serviceImpl) confirmBooking(ctx context.Context, t turn) (dto.WebhookResponse, error) {
	previous := contextParams(t.contexts, model.ContextAwaitingConfirmation)
	if len(previous) == 0 {
		previous = contextParams(t.contexts, model.ContextBookingData)
	}

	draft := resolveDraft(s.sessions.Get(ctx, t.session), previous)
	if draft.ScheduleID == 0 || draft.PatientName == "" || draft.PatientPhone == "" {
		return text(msgIncompleteDraft), nil
	}

	reservation, err := s.schedules.Reserve(ctx, draft.ScheduleID, scheduleDto.PatientData{
		PatientName:  draft.PatientName,
		PatientPhone: draft.PatientPhone,
	})
	if err != nil {
		return dto.WebhookResponse{}, err
	}

	s.sessions.Clear(ctx, t.session)

	return dto.WebhookResponse{
		FulfillmentText: fmt.Sprintf(msgBooked, displayDate(reservation.Date), gModel.Clock(reservation.Time).Short(),
			reservation.PatientName, reservation.PatientPhone, reservation.ID),
		OutputContexts: clearedContexts(t.session),
	}, nil
}

func (s *serviceImpl) confirmCancellation(ctx context.Context, t turn) (dto.WebhookResponse, error) {
	id, ok := dto.ParseWholeNumber(t.params.FirstString(cancelIDKeys...))
	if !ok {
		return text(msgAskCancelID), nil
	}

	if _, err := s.schedules.Release(ctx, id); err != nil {
		return dto.WebhookResponse{}, err
	}

	s.sessions.Clear(ctx, t.session)

	return dto.WebhookResponse{
		FulfillmentText: msgCancelled,
		OutputContexts:  clearedContexts(t.session),
	}, nil
}

func displayDate(date string) string {
	parsed, err := time.Parse(constant.DateOnlyFormat, date)
	if err != nil {
		return date
	}

	return parsed.Format(constant.DisplayDateFormat)
}
