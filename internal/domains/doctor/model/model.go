package model

import (
	"agenda/shared/model"
	"database/sql"
	"strings"
)

const (
	TableName  = "doctors"
	EntityName = "doctor"

	FieldID        = "id"
	FieldName      = "name"
	FieldSpecialty = "specialty"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldActive    = "active"
)

// Doctor email and phone are stored hashed. Phone keeps its last four digits
// after a ':' so staff can recognise a number without storing it.
type Doctor struct {
	ID        int64          `db:"id"        insert:"-"`
	Name      string         `db:"name"`
	Specialty string         `db:"specialty"`
	Email     sql.NullString `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Active    bool           `db:"active"`
	model.Metadata
}

// PhoneSuffix returns the clear digits kept at the end of the stored phone hash.
func (d Doctor) PhoneSuffix() string {
	if !d.Phone.Valid {
		return ""
	}

	idx := strings.LastIndexByte(d.Phone.String, ':')
	if idx < 0 {
		return ""
	}

	return d.Phone.String[idx+1:]
}
