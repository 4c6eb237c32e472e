package postgres_test

import (
	"context"
	"testing"
	"time"

	"deliveryhub/internal/adapters/out/postgres"
	"deliveryhub/internal/adapters/out/postgres/orderrepo"
	"deliveryhub/internal/adapters/out/postgres/outboxrepo"
	"deliveryhub/internal/adapters/out/postgres/userrepo"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that order mutations and their
// outbox records commit and roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&userrepo.UserDTO{},
		&outboxrepo.MessageDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, users, outbox_messages").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"123 Main St", "456 Oak Ave", "Box",
		nil, nil,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) newOutboxMessage(orderID kernel.UUID) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:        kernel.NewUUID(),
		EventName: "order.created",
		OrderID:   orderID,
		Payload:   []byte(`{"orderId":"` + orderID.String() + `"}`),
		CreatedAt: time.Now().UTC(),
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndOutboxTogether() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.newOutboxMessage(aggregate.ID())))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(loaded))

	pending, err := outboxrepo.NewGormOutboxRepository(suite.db).GetNotPublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal("order.created", pending[0].EventName)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBoth() {
	ctx := context.Background()
	aggregate := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.newOutboxMessage(aggregate.ID())))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, aggregate.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	pending, err := outboxrepo.NewGormOutboxRepository(suite.db).GetNotPublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBeginFails() {
	uow := suite.factory.Create()

	err := uow.Commit(context.Background())

	suite.Require().Error(err)
	suite.ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGuardedUpdateInsideTransaction() {
	// the loser's transaction sees zero affected rows after the winner
	// commits, surfacing Conflict inside the losing unit of work
	ctx := context.Background()
	aggregate := suite.newOrder()
	repo := orderrepo.NewGormOrderRepository(suite.db)
	suite.Require().NoError(repo.Add(ctx, aggregate))

	winner, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))
	suite.Require().NoError(repo.UpdateInStatus(ctx, winner, order.StatusPending))

	loser, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(loser.Cancel(loser.Customer(), "too slow"))
	err = uow.OrderRepository().UpdateInStatus(ctx, loser, order.StatusPending)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrConflict)
	suite.Require().NoError(uow.Rollback(ctx))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
