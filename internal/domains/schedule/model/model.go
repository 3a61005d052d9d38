package model

import (
	"agenda/shared/model"
	"database/sql"
	"time"
)

const (
	TableName  = "schedules"
	EntityName = "schedule"

	FieldID           = "id"
	FieldDoctorID     = "doctor_id"
	FieldDate         = "date"
	FieldTime         = "time"
	FieldStatus       = "status"
	FieldPatientName  = "patient_name"
	FieldPatientPhone = "patient_phone"
	FieldBookedAt     = "booked_at"
)

const (
	StatusAvailable = "available"
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

// Schedule is a bookable slot. PatientName, PatientPhone and BookedAt are set
// if and only if Status is booked; patient fields hold hashes, never plaintext.
type Schedule struct {
	ID           int64          `db:"id"            insert:"-"`
	DoctorID     int64          `db:"doctor_id"`
	Date         time.Time      `db:"date"`
	Time         model.Clock    `db:"time"`
	Status       string         `db:"status"`
	PatientName  sql.NullString `db:"patient_name"`
	PatientPhone sql.NullString `db:"patient_phone"`
	BookedAt     sql.NullTime   `db:"booked_at"`
	model.Metadata
}

func (s Schedule) IsBooked() bool {
	return s.Status == StatusBooked
}
