package commands_test

import (
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

func adminActor() services.Actor {
	return services.Actor{ID: kernel.NewUUID(), Role: user.RoleAdmin}
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"123 Main St", "456 Oak Ave", "Box",
		nil, nil,
	)
	require.NoError(t, err)
	return o
}

func newCourier(t *testing.T, id kernel.UUID) *user.User {
	t.Helper()
	u, err := user.NewUser(id, "Sam Courier", user.RoleDelivery)
	require.NoError(t, err)
	return u
}

func TestAssignOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignOrderCommand(adminActor(), aggregate.ID(), courierID, "closest")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, courierID).Return(newCourier(t, courierID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.StatusPending).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusAssigned, assigned.Status())
	require.NotNil(t, assigned.DeliveryPerson())
	assert.True(t, courierID.IsEqual(*assigned.DeliveryPerson()))
	require.Len(t, assigned.History(), 1)
	assert.Equal(t, "closest", assigned.History()[0].Notes)

	require.Len(t, publisher.events, 1)
	event, ok := publisher.events[0].(order.AssignedEvent)
	require.True(t, ok)
	assert.Equal(t, "Sam Courier", event.DeliveryPersonName)

	orderRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignOrderCommandHandler_Handle_DefaultNotesNameTheCourier(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignOrderCommand(adminActor(), aggregate.ID(), courierID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, courierID).Return(newCourier(t, courierID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.StatusPending).Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), new(MockEventPublisher))
	assigned, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Len(t, assigned.History(), 1)
	assert.Equal(t, "Assigned to Sam Courier", assigned.History()[0].Notes)
}

func TestAssignOrderCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	actor := services.Actor{ID: kernel.NewUUID(), Role: user.RoleCustomer}
	cmd, err := commands.NewAssignOrderCommand(actor, kernel.NewUUID(), kernel.NewUUID(), "")
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	publisher := new(MockEventPublisher)
	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)

	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrForbidden)
	factory.AssertNotCalled(t, "Create")
}

func TestAssignOrderCommandHandler_Handle_UnavailableCourier(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t)
	courierID := kernel.NewUUID()
	courier := newCourier(t, courierID)
	require.NoError(t, courier.SetAvailability(false))

	cmd, err := commands.NewAssignOrderCommand(adminActor(), aggregate.ID(), courierID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, courierID).Return(courier, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, order.StatusPending, aggregate.Status())
	assert.Empty(t, publisher.events)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignOrderCommandHandler_Handle_CustomerAsTargetRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t)
	targetID := kernel.NewUUID()
	target, err := user.NewUser(targetID, "Casey Customer", user.RoleCustomer)
	require.NoError(t, err)

	cmd, err := commands.NewAssignOrderCommand(adminActor(), aggregate.ID(), targetID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, targetID).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAssignOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t)
	require.NoError(t, aggregate.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))
	courierID := kernel.NewUUID()

	cmd, err := commands.NewAssignOrderCommand(adminActor(), aggregate.ID(), courierID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, courierID).Return(newCourier(t, courierID), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), new(MockEventPublisher))
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestAssignOrderCommandHandler_Handle_ConflictFromGuardedUpdate(t *testing.T) {
	ctx := t.Context()
	aggregate := newPendingOrder(t)
	courierID := kernel.NewUUID()
	cmd, err := commands.NewAssignOrderCommand(adminActor(), aggregate.ID(), courierID, "")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	conflict := errs.NewConflictError("order", aggregate.ID().String())
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, courierID).Return(newCourier(t, courierID), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.StatusPending).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	publisher := new(MockEventPublisher)

	h := commands.NewAssignOrderCommandHandler(factory, services.NewAccessPolicy(), publisher)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.Empty(t, publisher.events)
}
