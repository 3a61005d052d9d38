package dto

import (
	"agenda/internal/domains/schedule/model"
	"agenda/shared"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
	"time"
)

type CreateScheduleRequest struct {
	DoctorID int64  `json:"doctor_id" validate:"required,gt=0"`
	Date     string `json:"date"      validate:"required,dateonly"`
	Time     string `json:"time"      validate:"required,clock"`
}

func (c *CreateScheduleRequest) ToModel() (model.Schedule, error) {
	date, err := time.Parse(constant.DateOnlyFormat, c.Date)
	if err != nil {
		return model.Schedule{}, err
	}

	clock, err := gModel.ParseClock(c.Time)
	if err != nil {
		return model.Schedule{}, err
	}

	now := timezone.Now()

	return model.Schedule{
		DoctorID: c.DoctorID,
		Date:     date,
		Time:     clock,
		Status:   model.StatusAvailable,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil
}

// PatientData carries plaintext patient fields into a reservation.
type PatientData struct {
	PatientName  string `json:"patient_name"  validate:"required,max=70"`
	PatientPhone string `json:"patient_phone" validate:"required,phone,max=20"`
}

type ReserveByTimeRequest struct {
	DoctorID int64  `json:"doctor_id" validate:"required,gt=0"`
	Date     string `json:"date"      validate:"required,dateonly"`
	Time     string `json:"time"      validate:"required,clock"`
	PatientData
}

type ScheduleResponse struct {
	ID       int64  `json:"id"`
	DoctorID int64  `json:"doctor_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	BookedAt string `json:"booked_at,omitempty"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(model model.Schedule) {
	r.ID = model.ID
	r.DoctorID = model.DoctorID
	r.Date = model.Date.Format(constant.DateOnlyFormat)
	r.Time = model.Time.String()
	r.Status = model.Status
	r.BookedAt = ""

	if model.BookedAt.Valid {
		r.BookedAt = timezone.Format(model.BookedAt.Time, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

// ReservationResponse echoes the plaintext patient fields of a successful
// reservation; they cannot be recovered from storage afterwards.
type ReservationResponse struct {
	ScheduleResponse
	PatientName  string `json:"patient_name"`
	PatientPhone string `json:"patient_phone"`
}

func (r *ReservationResponse) FromModel(model model.Schedule, patient PatientData) {
	r.ScheduleResponse.FromModel(model)
	r.PatientName = patient.PatientName
	r.PatientPhone = patient.PatientPhone
}

type GetSchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetSchedulesResponse) FromModels(models []model.Schedule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Schedules = FromModels(models)
}

func FromModels(models []model.Schedule) []ScheduleResponse {
	res := make([]ScheduleResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

// Event is published after a slot changes hands. It never carries patient data.
type Event struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	ScheduleID int64     `json:"schedule_id"`
	DoctorID   int64     `json:"doctor_id"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventTypeBooked   = "schedule.booked"
	EventTypeReleased = "schedule.released"
)
