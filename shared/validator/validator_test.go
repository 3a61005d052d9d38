package validator_test

import (
	"agenda/shared/failure"
	"agenda/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	DoctorID int64  `json:"doctor_id" validate:"required,gt=0"`
	Date     string `json:"date"      validate:"required,dateonly"`
	Time     string `json:"time"      validate:"required,clock"`
	Phone    string `json:"phone"     validate:"omitempty,phone"`
	Status   string `json:"status"    validate:"omitempty,oneof=available booked cancelled"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		req     slotRequest
		wantMsg string
	}{
		{
			name: "valid",
			req:  slotRequest{DoctorID: 1, Date: "2025-05-01", Time: "09:30", Phone: "(11) 98888-7777"},
		},
		{
			name:    "missing doctor uses json name",
			req:     slotRequest{Date: "2025-05-01", Time: "09:30"},
			wantMsg: "doctor_id is required",
		},
		{
			name:    "bad date",
			req:     slotRequest{DoctorID: 1, Date: "01/05/2025", Time: "09:30"},
			wantMsg: "date must be a date formatted as YYYY-MM-DD",
		},
		{
			name:    "bad clock",
			req:     slotRequest{DoctorID: 1, Date: "2025-05-01", Time: "9h30"},
			wantMsg: "time must be a time formatted as HH:MM",
		},
		{
			name:    "short phone",
			req:     slotRequest{DoctorID: 1, Date: "2025-05-01", Time: "09:30:00", Phone: "1234"},
			wantMsg: "phone must contain at least 8 digits",
		},
		{
			name:    "unknown status",
			req:     slotRequest{DoctorID: 1, Date: "2025-05-01", Time: "09:30", Status: "pending"},
			wantMsg: "status must be one of available booked cancelled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantMsg == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	require.NoError(t, validator.ValidateVar("2025-05-01", "dateonly"))
	require.NoError(t, validator.ValidateVar("", "empty"))

	err := validator.ValidateVar("", "required")
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, http.StatusBadRequest))
}

func TestValidate(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		var req slotRequest

		err := validator.Validate(strings.NewReader(`{"doctor_id":3,"date":"2025-05-01","time":"10:00"}`), &req)
		require.NoError(t, err)
		assert.Equal(t, int64(3), req.DoctorID)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		var req slotRequest

		err := validator.Validate(strings.NewReader(`{"doctor_id":`), &req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "failed to decode request body")
	})

	t.Run("decoded but invalid", func(t *testing.T) {
		var req slotRequest

		err := validator.Validate(strings.NewReader(`{"doctor_id":0,"date":"2025-05-01","time":"10:00"}`), &req)
		require.Error(t, err)
		assert.Equal(t, "doctor_id is required", err.Error())
	})
}
