package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/schedule/model"
	gDto "agenda/shared/dto"
	gRepo "agenda/shared/repository"
	"context"
)

type Schedule interface {
	InsertReturning(ctx context.Context, model model.Schedule) (model.Schedule, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Schedule, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Schedule, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// UpdateReturning is the only write path for status transitions: the filter
	// carries the expected current status so check and set are one statement.
	UpdateReturning(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (model.Schedule, bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Schedule]
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Schedule](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// SlotFilter matches the slots of a doctor on a date, optionally narrowed by status.
func SlotFilter(doctorID int64, date, status string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldDoctorID, Value: doctorID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if status != "" {
		filters = append(filters, gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// GuardedFilter matches one slot by id only while it is in the expected status.
func GuardedFilter(id int64, status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// NaturalKeyFilter matches one slot by (doctor, date, time) while it is in the expected status.
func NaturalKeyFilter(doctorID int64, date, clock, status string) gDto.FilterGroup {
	filter := SlotFilter(doctorID, date, status)
	filter.Filters = append(filter.Filters,
		gDto.Filter{Field: model.FieldTime, Value: clock, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	)

	return filter
}
