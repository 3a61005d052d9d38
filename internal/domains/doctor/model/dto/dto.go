package dto

import (
	"agenda/internal/domains/doctor/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
	"database/sql"
)

type CreateDoctorRequest struct {
	Name      string `json:"name"      validate:"required,max=100"`
	Specialty string `json:"specialty" validate:"required,max=100"`
	Email     string `json:"email"     validate:"omitempty,email,max=100"`
	Phone     string `json:"phone"     validate:"omitempty,phone,max=20"`
}

// ToModel builds the row to persist. Email and phone must already be hashed.
func (c *CreateDoctorRequest) ToModel(hashedEmail, hashedPhone string) model.Doctor {
	now := timezone.Now()

	return model.Doctor{
		Name:      c.Name,
		Specialty: c.Specialty,
		Email:     nullable(hashedEmail),
		Phone:     nullable(hashedPhone),
		Active:    true,
		Metadata: gModel.Metadata{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

type UpdateDoctorRequest struct {
	Name      string `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Specialty string `db:"specialty" json:"specialty" validate:"omitempty,max=100"`
	Email     string `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	Phone     string `db:"phone"     json:"phone"     validate:"omitempty,phone,max=20"`
	Active    *bool  `db:"active"    json:"active"    validate:"omitempty"`
}

func (u UpdateDoctorRequest) IsEmpty() bool {
	return u.Name == "" && u.Specialty == "" && u.Email == "" && u.Phone == "" && u.Active == nil
}

type DoctorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	PhoneSuffix string `json:"phone_suffix,omitempty"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *DoctorResponse) FromModel(model model.Doctor) {
	r.ID = model.ID
	r.Name = model.Name
	r.Specialty = model.Specialty
	r.PhoneSuffix = model.PhoneSuffix()
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// WithContact echoes the plaintext contact values supplied by the caller, since
// the stored ones cannot be reversed.
func (r *DoctorResponse) WithContact(email, phone string) {
	r.Email = email
	r.Phone = phone
}

type GetDoctorsResponse struct {
	Doctors   []DoctorResponse `json:"doctors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetDoctorsResponse) FromModels(models []model.Doctor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Doctors = make([]DoctorResponse, len(models))
	for i, mod := range models {
		r.Doctors[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	DoctorID       int64  `json:"doctor_id"`
	Date           string `json:"date"`
	Available      bool   `json:"available"`
	AvailableSlots int    `json:"available_slots"`
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
