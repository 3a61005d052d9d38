package model_test

import (
	"agenda/internal/domains/dialogue/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	assert.Equal(t, model.IntentListDoctors, model.ParseIntent("Listar medicos"))
	assert.Equal(t, model.IntentConfirmCancellation, model.ParseIntent("Confirmar cancelamento"))
	assert.Equal(t, model.IntentUnknown, model.ParseIntent("Default Fallback Intent"))
	assert.Equal(t, model.IntentUnknown, model.ParseIntent(""))
}

func TestDraftMerge(t *testing.T) {
	draft := model.Draft{DoctorID: 4, ScheduleID: 11, PatientName: "Maria"}

	merged := draft.Merge(model.Draft{ScheduleID: 12, PatientPhone: "11988887777"})

	assert.Equal(t, model.Draft{DoctorID: 4, ScheduleID: 12, PatientName: "Maria", PatientPhone: "11988887777"}, merged)
	assert.Equal(t, []string{"doctorId", "patientName", "patientPhone", "scheduleId"}, merged.Keys())
	assert.False(t, merged.IsEmpty())
	assert.True(t, model.Draft{}.IsEmpty())
}
