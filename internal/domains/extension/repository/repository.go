package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fleetdesk/infras/otel"
	"fleetdesk/infras/postgres"
	"fleetdesk/internal/domains/extension/model"
	gDto "fleetdesk/shared/dto"
	gRepo "fleetdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Extension interface {
	Insert(ctx context.Context, extension model.Extension) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, extension model.Extension) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Extension, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Extension, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Extension]
}

func New(db *postgres.Connection, otl otel.Otel) Extension {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Extension](model.EntityName, model.TableName, model.FieldID, db, otl),
	}
}
