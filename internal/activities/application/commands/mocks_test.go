package commands

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

type txKey struct{}

type mockActivityRepo struct {
	mock.Mock
}

func (m *mockActivityRepo) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *mockActivityRepo) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *mockActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockActivityRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockActivityRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return m.Called(ctx, id, completed).Error(0)
}

func (m *mockActivityRepo) AddCompletion(ctx context.Context, c *domain.Completion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockActivityRepo) ListCompletions(ctx context.Context, activityID int64) ([]domain.Completion, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).([]domain.Completion), args.Error(1)
}

type mockContextRepo struct {
	mock.Mock
}

func (m *mockContextRepo) List(ctx context.Context) ([]domain.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Context), args.Error(1)
}

func (m *mockContextRepo) FindByID(ctx context.Context, id int64) (*domain.Context, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Context), args.Error(1)
}

func (m *mockContextRepo) FindActive(ctx context.Context, now time.Time) ([]domain.Context, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Context), args.Error(1)
}

func (m *mockContextRepo) Create(ctx context.Context, c *domain.Context) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContextRepo) Update(ctx context.Context, c *domain.Context) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockContextRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

// committingUoW expects one successful unit of work.
func committingUoW(ctx, txCtx context.Context) *mockUnitOfWork {
	uow := new(mockUnitOfWork)
	uow.On("Begin", ctx).Return(txCtx, nil)
	uow.On("Commit", txCtx).Return(nil)
	return uow
}

// failingUoW expects one unit of work that is rolled back.
func failingUoW(ctx, txCtx context.Context) *mockUnitOfWork {
	uow := new(mockUnitOfWork)
	uow.On("Begin", ctx).Return(txCtx, nil)
	uow.On("Rollback", txCtx).Return(nil)
	return uow
}
