package service

import (
	"agenda/internal/domains/dialogue/model"
	"agenda/internal/domains/dialogue/model/dto"
	"strings"
)

// contextParams returns the parameters of the first platform context whose name
// contains name, accepting the underscored spelling of its first hyphen too.
// It never returns nil.
func contextParams(contexts []dto.Context, name string) dto.Parameters {
	underscored := strings.Replace(name, "-", "_", 1)

	for _, ctx := range contexts {
		if !strings.Contains(ctx.Name, name) && !strings.Contains(ctx.Name, underscored) {
			continue
		}

		if ctx.Parameters == nil {
			return dto.Parameters{}
		}

		return ctx.Parameters
	}

	return dto.Parameters{}
}

// draftFromContext reads the draft fields a stage context mirrors.
func draftFromContext(params dto.Parameters) model.Draft {
	draft := model.Draft{
		ScheduleTime: params.String(model.ParamScheduleTime),
		PatientName:  params.String(model.ParamPatientName),
		PatientPhone: params.String(model.ParamPatientPhone),
	}

	draft.DoctorID, _ = params.Int64(model.ParamDoctorID)
	draft.ScheduleID, _ = params.Int64(model.ParamScheduleID)

	return draft
}

// resolveDraft merges the two sources of dialogue state. The session store wins
// field by field; the platform context fills whatever the store lost, for
// instance after a restart or an eviction.
func resolveDraft(stored model.Draft, params dto.Parameters) model.Draft {
	return draftFromContext(params).Merge(stored)
}

// stageParams renders the draft fields carried to the next stage.
func stageParams(draft model.Draft, keys ...string) dto.Parameters {
	all := dto.Parameters{
		model.ParamDoctorID:     draft.DoctorID,
		model.ParamScheduleID:   draft.ScheduleID,
		model.ParamScheduleTime: draft.ScheduleTime,
		model.ParamPatientName:  draft.PatientName,
		model.ParamPatientPhone: draft.PatientPhone,
	}

	params := make(dto.Parameters, len(keys))
	for _, key := range keys {
		params[key] = all[key]
	}

	return params
}

// clearedContexts expires every stage context of session.
func clearedContexts(session string) []dto.Context {
	names := []string{
		model.ContextAwaitingSchedule,
		model.ContextAwaitingName,
		model.ContextAwaitingPhone,
		model.ContextAwaitingConfirmation,
		model.ContextBookingData,
	}

	contexts := make([]dto.Context, len(names))
	for i, name := range names {
		contexts[i] = dto.NewContext(session, name, model.LifespanClear, nil)
	}

	return contexts
}
