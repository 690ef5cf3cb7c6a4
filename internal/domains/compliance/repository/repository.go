package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fleetdesk/infras/otel"
	"fleetdesk/infras/postgres"
	"fleetdesk/internal/domains/compliance/model"
	gDto "fleetdesk/shared/dto"
	gRepo "fleetdesk/shared/repository"
)

type Compliance interface {
	Insert(ctx context.Context, record model.Record) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Record, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Record, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Record]
}

func New(db *postgres.Connection, otl otel.Otel) Compliance {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Record](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
