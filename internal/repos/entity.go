package repos

import (
	"context"
	"errors"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/stratahub/strata-portal/internal/pkg/errors"
	"github.com/stratahub/strata-portal/internal/platform/logger"
)

// EntityRepo is the storage access layer shared by every generated CRUD
// surface. The model type comes from the registry at call time, so one repo
// serves all registered models.
type EntityRepo interface {
	List(ctx context.Context, tx *gorm.DB, modelType reflect.Type, scopes ...func(*gorm.DB) *gorm.DB) (any, error)
	GetByID(ctx context.Context, tx *gorm.DB, modelType reflect.Type, id string) (any, error)
	Create(ctx context.Context, tx *gorm.DB, entity any) error
	Save(ctx context.Context, tx *gorm.DB, entity any) error
	DeleteByID(ctx context.Context, tx *gorm.DB, modelType reflect.Type, id string) error
}

type entityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityRepo(db *gorm.DB, baseLog *logger.Logger) EntityRepo {
	return &entityRepo{db: db, log: baseLog.With("repo", "EntityRepo")}
}

func (er *entityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

// List loads entities with their to-one relations preloaded, so relational
// paths in tables and serializers resolve. Returns a []*T as any.
func (er *entityRepo) List(
	ctx context.Context, tx *gorm.DB, modelType reflect.Type, scopes ...func(*gorm.DB) *gorm.DB,
) (any, error) {
	slicePtr := reflect.New(reflect.SliceOf(reflect.PointerTo(modelType)))

	q := er.conn(tx).WithContext(ctx).
		Model(reflect.New(modelType).Interface()).
		Preload(clause.Associations)
	for _, scope := range scopes {
		q = scope(q)
	}
	if err := q.Find(slicePtr.Interface()).Error; err != nil {
		return nil, err
	}
	return slicePtr.Elem().Interface(), nil
}

// GetByID loads one entity with its to-one relations preloaded.
func (er *entityRepo) GetByID(
	ctx context.Context, tx *gorm.DB, modelType reflect.Type, id string,
) (any, error) {
	entity := reflect.New(modelType).Interface()
	err := er.conn(tx).WithContext(ctx).
		Preload(clause.Associations).
		First(entity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (er *entityRepo) Create(ctx context.Context, tx *gorm.DB, entity any) error {
	return er.conn(tx).WithContext(ctx).Create(entity).Error
}

func (er *entityRepo) Save(ctx context.Context, tx *gorm.DB, entity any) error {
	return er.conn(tx).WithContext(ctx).Save(entity).Error
}

func (er *entityRepo) DeleteByID(
	ctx context.Context, tx *gorm.DB, modelType reflect.Type, id string,
) error {
	entity := reflect.New(modelType).Interface()
	res := er.conn(tx).WithContext(ctx).Delete(entity, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.ErrNotFound
	}
	return nil
}
