package model

import (
	"maps"
	"slices"
)

// Intent is the dialogue action recognised by the NLU platform.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentListDoctors
	IntentListSchedules
	IntentInformName
	IntentInformPhone
	IntentConfirmBooking
	IntentConfirmCancellation
)

// Intents lists every routable intent, IntentUnknown included.
var Intents = []Intent{
	IntentUnknown,
	IntentListDoctors,
	IntentListSchedules,
	IntentInformName,
	IntentInformPhone,
	IntentConfirmBooking,
	IntentConfirmCancellation,
}

var intentByDisplayName = map[string]Intent{
	"Listar medicos":         IntentListDoctors,
	"Listar horarios":        IntentListSchedules,
	"Informar nome":          IntentInformName,
	"Informar celular":       IntentInformPhone,
	"Confirmar agendamento":  IntentConfirmBooking,
	"Confirmar cancelamento": IntentConfirmCancellation,
}

// ParseIntent maps a platform display name to an Intent. Names it does not
// know, the platform fallback intent among them, are IntentUnknown.
func ParseIntent(displayName string) Intent {
	if intent, ok := intentByDisplayName[displayName]; ok {
		return intent
	}

	return IntentUnknown
}

func (i Intent) String() string {
	switch i {
	case IntentListDoctors:
		return "list_doctors"
	case IntentListSchedules:
		return "list_schedules"
	case IntentInformName:
		return "inform_name"
	case IntentInformPhone:
		return "inform_phone"
	case IntentConfirmBooking:
		return "confirm_booking"
	case IntentConfirmCancellation:
		return "confirm_cancellation"
	case IntentUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Logical context names exchanged with the platform.
const (
	ContextAwaitingSchedule     = "awaiting-schedule"
	ContextAwaitingName         = "awaiting-name"
	ContextAwaitingPhone        = "awaiting-phone"
	ContextAwaitingConfirmation = "awaiting-confirmation"
	ContextBookingData          = "booking-data"
)

const (
	LifespanStage        = 3
	LifespanConfirmation = 5
	LifespanBookingData  = 10
	LifespanClear        = 0
)

// Context parameter keys.
const (
	ParamDoctorID      = "doctorId"
	ParamScheduleID    = "scheduleId"
	ParamScheduleTime  = "scheduleTime"
	ParamScheduleDate  = "scheduleDate"
	ParamScheduleCount = "scheduleCount"
	ParamPatientName   = "patientName"
	ParamPatientPhone  = "patientPhone"
)

// Draft is the booking state collected so far for one session. Fields are
// filled in dialogue order: doctor, slot, name, phone.
type Draft struct {
	DoctorID     int64  `json:"doctorId,omitempty"     redis:"doctorId"`
	ScheduleID   int64  `json:"scheduleId,omitempty"   redis:"scheduleId"`
	ScheduleTime string `json:"scheduleTime,omitempty" redis:"scheduleTime"`
	ScheduleDate string `json:"scheduleDate,omitempty" redis:"scheduleDate"`
	PatientName  string `json:"patientName,omitempty"  redis:"patientName"`
	PatientPhone string `json:"patientPhone,omitempty" redis:"patientPhone"`
}

// Merge returns d overwritten by the non-zero fields of partial.
func (d Draft) Merge(partial Draft) Draft {
	if partial.DoctorID != 0 {
		d.DoctorID = partial.DoctorID
	}

	if partial.ScheduleID != 0 {
		d.ScheduleID = partial.ScheduleID
	}

	if partial.ScheduleTime != "" {
		d.ScheduleTime = partial.ScheduleTime
	}

	if partial.ScheduleDate != "" {
		d.ScheduleDate = partial.ScheduleDate
	}

	if partial.PatientName != "" {
		d.PatientName = partial.PatientName
	}

	if partial.PatientPhone != "" {
		d.PatientPhone = partial.PatientPhone
	}

	return d
}

// Keys names the populated fields, for logs that must not carry values.
func (d Draft) Keys() []string {
	return slices.Sorted(maps.Keys(d.Fields()))
}

func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Fields returns the draft as a redis hash, skipping empty values.
func (d Draft) Fields() map[string]any {
	fields := map[string]any{}

	if d.DoctorID != 0 {
		fields[ParamDoctorID] = d.DoctorID
	}

	if d.ScheduleID != 0 {
		fields[ParamScheduleID] = d.ScheduleID
	}

	if d.ScheduleTime != "" {
		fields[ParamScheduleTime] = d.ScheduleTime
	}

	if d.ScheduleDate != "" {
		fields[ParamScheduleDate] = d.ScheduleDate
	}

	if d.PatientName != "" {
		fields[ParamPatientName] = d.PatientName
	}

	if d.PatientPhone != "" {
		fields[ParamPatientPhone] = d.PatientPhone
	}

	return fields
}
