package commands_test

import (
	"errors"
	"testing"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/model/user"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func customerActor() services.Actor {
	return services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	actor := customerActor()
	cmd, err := commands.NewCreateOrderCommand(
		actor, kernel.NewUUID(), "123 Main St", "456 Oak Ave", "Box", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.StatusPending, created.Status())
	assert.Nil(t, created.DeliveryPerson())
	assert.Empty(t, created.History())
	assert.True(t, actor.ID.IsEqual(created.Customer()))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "order.created", publisher.events[0].EventName())

	orderRepo.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	tests := []struct {
		name string
		role user.Role
	}{
		{"admin may not place orders", user.RoleAdmin},
		{"delivery person may not place orders", user.RoleDelivery},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actor := services.Actor{ID: kernel.NewUUID(), Role: tc.role}
			cmd, err := commands.NewCreateOrderCommand(
				actor, kernel.NewUUID(), "123 Main St", "456 Oak Ave", "Box", nil, nil)
			require.NoError(t, err)

			factory := new(MockOrderUoWFactory)
			publisher := new(MockEventPublisher)
			h := commands.NewCreateOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)

			_, err = h.Handle(ctx, cmd)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrForbidden)
			assert.Empty(t, publisher.events)
			factory.AssertNotCalled(t, "Create")
		})
	}
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, services.NewAccessPolicy(), new(MockEventPublisher))

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(
		customerActor(), kernel.NewUUID(), "123 Main St", "456 Oak Ave", "Box", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Empty(t, publisher.events)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(
		customerActor(), kernel.NewUUID(), "123 Main St", "456 Oak Ave", "Box", nil, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewCreateOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	// no live event may be published for a change that failed to persist
	assert.Empty(t, publisher.events)
}
