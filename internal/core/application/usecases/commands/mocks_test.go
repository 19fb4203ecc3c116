package commands_test

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/kitchenorder"
	"kitchen/internal/core/domain/model/pizza"

	"github.com/stretchr/testify/mock"
)

type MockKitchenOrderRepository struct{ mock.Mock }

func (m *MockKitchenOrderRepository) Add(ctx context.Context, o *kitchenorder.KitchenOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockKitchenOrderRepository) FindByRef(ctx context.Context, ref kernel.KitchenOrderRef) (*kitchenorder.KitchenOrder, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchenorder.KitchenOrder), args.Error(1)
}

type MockPizzaRepository struct{ mock.Mock }

func (m *MockPizzaRepository) FindByRef(ctx context.Context, ref kernel.PizzaRef) (*pizza.Pizza, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pizza.Pizza), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic kernel.Topic, event kernel.Event, opts ...kernel.PublishOption) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}
