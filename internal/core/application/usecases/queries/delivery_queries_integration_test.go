package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"porter/internal/adapters/out/postgres/deliveryrepo"
	"porter/internal/adapters/out/postgres/porterrepo"
	"porter/internal/adapters/out/postgres/trackingrepo"
	"porter/internal/core/application/usecases/queries"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/tracking"
	"porter/internal/core/domain/services"
)

// mockAggregateTracker satisfies the repositories' tracker dependency for
// tests that do not care about post-commit processing.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// DeliveryQueriesTestSuite exercises the read-side handlers against a real
// PostgreSQL database seeded with one delivery per lifecycle bucket.
type DeliveryQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	activeHandler    queries.GetActiveDeliveriesQueryHandler
	historyHandler   queries.GetDeliveryHistoryQueryHandler
	availableHandler queries.GetAvailableDeliveriesQueryHandler
	unpaidHandler    queries.GetUnpaidDeliveriesQueryHandler
	statsHandler     queries.GetDeliveryStatsQueryHandler
	trackingHandler  queries.GetTrackingPointsQueryHandler

	deliveryRepo *deliveryrepo.GormDeliveryRepository
	trackingRepo *trackingrepo.GormTrackingRepository

	user     delivery.Actor
	stranger delivery.Actor
	porter   delivery.Actor
	admin    delivery.Actor

	pending   *delivery.Delivery
	accepted  *delivery.Delivery
	delivered *delivery.Delivery
	cancelled *delivery.Delivery
	foreign   *delivery.Delivery
}

func (suite *DeliveryQueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &porterrepo.PorterDTO{}, &trackingrepo.TrackingPointDTO{})
	suite.Require().NoError(err)

	suite.activeHandler = queries.NewGetActiveDeliveriesQueryHandler(db)
	suite.historyHandler = queries.NewGetDeliveryHistoryQueryHandler(db)
	suite.availableHandler = queries.NewGetAvailableDeliveriesQueryHandler(db)
	suite.unpaidHandler = queries.NewGetUnpaidDeliveriesQueryHandler(db)
	suite.statsHandler = queries.NewGetDeliveryStatsQueryHandler(db)
	suite.trackingHandler = queries.NewGetTrackingPointsQueryHandler(db)

	suite.deliveryRepo = deliveryrepo.NewGormDeliveryRepository(db, &mockAggregateTracker{})
	suite.trackingRepo = trackingrepo.NewGormTrackingRepository(db)

	suite.user = suite.newActor(delivery.RoleUser)
	suite.stranger = suite.newActor(delivery.RoleUser)
	suite.porter = suite.newActor(delivery.RolePorter)
	suite.admin = suite.newActor(delivery.RoleAdmin)
}

func (suite *DeliveryQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// SetupTest reseeds the lifecycle fixture: the user owns one delivery in
// each bucket, the stranger owns an unassigned pending one, the porter is
// assigned to the accepted and delivered ones.
func (suite *DeliveryQueriesTestSuite) SetupTest() {
	ctx := context.Background()

	err := suite.db.Exec("TRUNCATE TABLE deliveries, tracking_points").Error
	suite.Require().NoError(err)

	suite.pending = suite.newDelivery(suite.user.ID(), 4*time.Hour)
	suite.foreign = suite.newDelivery(suite.stranger.ID(), 2*time.Hour)

	suite.accepted = suite.newDelivery(suite.user.ID(), 6*time.Hour)
	suite.Require().NoError(suite.accepted.Accept(suite.porter.ID()))

	suite.delivered = suite.newDelivery(suite.user.ID(), 8*time.Hour)
	suite.Require().NoError(suite.delivered.Accept(suite.porter.ID()))
	for _, next := range []delivery.Status{delivery.PickedUp, delivery.InTransit, delivery.Delivered} {
		suite.Require().NoError(suite.delivered.Advance(next))
	}

	suite.cancelled = suite.newDelivery(suite.user.ID(), 10*time.Hour)
	suite.Require().NoError(suite.cancelled.Cancel())

	for _, aggregate := range []*delivery.Delivery{
		suite.pending, suite.foreign, suite.accepted, suite.delivered, suite.cancelled,
	} {
		suite.Require().NoError(suite.deliveryRepo.Add(ctx, aggregate))
	}
}

func (suite *DeliveryQueriesTestSuite) TestActiveDeliveries_UserScope() {
	query, err := queries.NewGetActiveDeliveriesQuery(suite.user)
	suite.Require().NoError(err)

	result, err := suite.activeHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.assertIDs(result, suite.accepted.ID(), suite.pending.ID())
}

func (suite *DeliveryQueriesTestSuite) TestActiveDeliveries_PorterScope() {
	query, err := queries.NewGetActiveDeliveriesQuery(suite.porter)
	suite.Require().NoError(err)

	result, err := suite.activeHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.assertIDs(result, suite.accepted.ID())
}

func (suite *DeliveryQueriesTestSuite) TestActiveDeliveries_AdminSeesAll() {
	query, err := queries.NewGetActiveDeliveriesQuery(suite.admin)
	suite.Require().NoError(err)

	result, err := suite.activeHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.assertIDs(result, suite.accepted.ID(), suite.pending.ID(), suite.foreign.ID())
}

func (suite *DeliveryQueriesTestSuite) TestActiveDeliveries_SortedByScheduledTimeDesc() {
	query, err := queries.NewGetActiveDeliveriesQuery(suite.admin)
	suite.Require().NoError(err)

	result, err := suite.activeHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().NotEmpty(result)

	for i := range len(result) - 1 {
		suite.False(result[i].ScheduledTime.Before(result[i+1].ScheduledTime),
			"Deliveries should be sorted newest scheduled first")
	}
}

func (suite *DeliveryQueriesTestSuite) TestDeliveryHistory_UserScope() {
	query, err := queries.NewGetDeliveryHistoryQuery(suite.user)
	suite.Require().NoError(err)

	result, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.assertIDs(result, suite.cancelled.ID(), suite.delivered.ID())
}

func (suite *DeliveryQueriesTestSuite) TestDeliveryHistory_StrangerSeesNothing() {
	query, err := queries.NewGetDeliveryHistoryQuery(suite.stranger)
	suite.Require().NoError(err)

	result, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *DeliveryQueriesTestSuite) TestAvailableDeliveries_WholePool() {
	query, err := queries.NewGetAvailableDeliveriesQuery(suite.porter)
	suite.Require().NoError(err)

	result, err := suite.availableHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	// The pool ignores ownership and hides anything already assigned.
	suite.assertIDs(result, suite.foreign.ID(), suite.pending.ID())
	for _, r := range result {
		suite.Nil(r.PorterID, "Pool entries never carry a porter")
	}
}

func (suite *DeliveryQueriesTestSuite) TestUnpaidDeliveries_UserScope() {
	query, err := queries.NewGetUnpaidDeliveriesQuery(suite.user)
	suite.Require().NoError(err)

	result, err := suite.unpaidHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.assertIDs(result, suite.delivered.ID())
	suite.Equal(delivery.PaymentPending.String(), result[0].PaymentStatus)
}

func (suite *DeliveryQueriesTestSuite) TestUnpaidDeliveries_SettledFeeDisappears() {
	ctx := context.Background()

	suite.Require().NoError(suite.delivered.MarkPaid())
	suite.Require().NoError(suite.deliveryRepo.Update(ctx, suite.delivered))

	query, err := queries.NewGetUnpaidDeliveriesQuery(suite.user)
	suite.Require().NoError(err)

	result, err := suite.unpaidHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *DeliveryQueriesTestSuite) TestDeliveryStats_User() {
	query, err := queries.NewGetDeliveryStatsQuery(suite.user)
	suite.Require().NoError(err)

	result, err := suite.statsHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(4), result.Total)
	suite.Equal(int64(1), result.Pending)
	suite.Equal(int64(1), result.Accepted)
	suite.Equal(int64(1), result.Delivered)
	suite.Equal(int64(1), result.Cancelled)
	suite.InDelta(suite.delivered.Amount(), result.UnpaidAmount, 0.01)
}

func (suite *DeliveryQueriesTestSuite) TestDeliveryStats_AdminCountsEverything() {
	query, err := queries.NewGetDeliveryStatsQuery(suite.admin)
	suite.Require().NoError(err)

	result, err := suite.statsHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(int64(5), result.Total)
	suite.Equal(int64(2), result.Pending)
}

func (suite *DeliveryQueriesTestSuite) TestTrackingPoints_OrderedOldestFirst() {
	ctx := context.Background()
	base := time.Now().UTC()

	// Insert out of order to prove the handler sorts by recording time.
	second := suite.newTrackingPoint(suite.accepted.ID(), base.Add(10*time.Minute))
	first := suite.newTrackingPoint(suite.accepted.ID(), base)
	suite.Require().NoError(suite.trackingRepo.Add(ctx, second))
	suite.Require().NoError(suite.trackingRepo.Add(ctx, first))

	query, err := queries.NewGetTrackingPointsQuery(suite.accepted.ID(), suite.user)
	suite.Require().NoError(err)

	result, err := suite.trackingHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(first.ID().IsEqual(result[0].ID))
	suite.True(second.ID().IsEqual(result[1].ID))
}

func (suite *DeliveryQueriesTestSuite) TestTrackingPoints_OutOfScopeTrailIsEmpty() {
	ctx := context.Background()
	point := suite.newTrackingPoint(suite.accepted.ID(), time.Now().UTC())
	suite.Require().NoError(suite.trackingRepo.Add(ctx, point))

	query, err := queries.NewGetTrackingPointsQuery(suite.accepted.ID(), suite.stranger)
	suite.Require().NoError(err)

	result, err := suite.trackingHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *DeliveryQueriesTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.activeHandler.Handle(context.Background(), queries.GetActiveDeliveriesQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetActiveDeliveriesQuery constructor")
}

// TestSQLAgreesWithViewFilter runs the same fixture through the pure
// domain ViewFilter and asserts the SQL read models select the same
// deliveries for every actor, so the two definitions of the scoping rules
// cannot drift apart silently.
func (suite *DeliveryQueriesTestSuite) TestSQLAgreesWithViewFilter() {
	ctx := context.Background()
	filter := services.NewViewFilter()
	all := []*delivery.Delivery{
		suite.pending, suite.foreign, suite.accepted, suite.delivered, suite.cancelled,
	}

	for _, actor := range []delivery.Actor{suite.user, suite.stranger, suite.porter, suite.admin} {
		activeQuery, err := queries.NewGetActiveDeliveriesQuery(actor)
		suite.Require().NoError(err)
		active, err := suite.activeHandler.Handle(ctx, activeQuery)
		suite.Require().NoError(err)
		suite.ElementsMatch(domainIDs(filter.ActiveFor(actor, all)), responseIDs(active))

		historyQuery, err := queries.NewGetDeliveryHistoryQuery(actor)
		suite.Require().NoError(err)
		history, err := suite.historyHandler.Handle(ctx, historyQuery)
		suite.Require().NoError(err)
		suite.ElementsMatch(domainIDs(filter.HistoryFor(actor, all)), responseIDs(history))
	}

	availableQuery, err := queries.NewGetAvailableDeliveriesQuery(suite.porter)
	suite.Require().NoError(err)
	available, err := suite.availableHandler.Handle(ctx, availableQuery)
	suite.Require().NoError(err)
	suite.ElementsMatch(domainIDs(filter.AvailableFor(suite.porter, all)), responseIDs(available))
}

func domainIDs(deliveries []*delivery.Delivery) []string {
	ids := make([]string, len(deliveries))
	for i, d := range deliveries {
		ids[i] = d.ID().String()
	}
	return ids
}

func responseIDs(result []queries.DeliveryQueryResponse) []string {
	ids := make([]string, len(result))
	for i, d := range result {
		ids[i] = d.ID.String()
	}
	return ids
}

func (suite *DeliveryQueriesTestSuite) newActor(role delivery.Role) delivery.Actor {
	actor, err := delivery.NewActor(kernel.NewUUID(), role)
	suite.Require().NoError(err)
	return actor
}

func (suite *DeliveryQueriesTestSuite) newDelivery(userID kernel.UUID, in time.Duration) *delivery.Delivery {
	pickup, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road, Bengaluru")
	suite.Require().NoError(err)
	dropoff, err := kernel.NewGeoPoint(12.2958, 76.6394, "Sayyaji Rao Road, Mysuru")
	suite.Require().NoError(err)

	aggregate, err := delivery.NewDelivery(
		kernel.NewUUID(),
		userID,
		pickup,
		dropoff,
		delivery.PackageSmall,
		2.5,
		"Documents",
		time.Now().UTC().Add(in),
		250.0,
		false,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *DeliveryQueriesTestSuite) newTrackingPoint(deliveryID kernel.UUID, at time.Time) *tracking.TrackingPoint {
	position, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road, Bengaluru")
	suite.Require().NoError(err)

	point, err := tracking.NewTrackingPoint(kernel.NewUUID(), deliveryID, position, at)
	suite.Require().NoError(err)
	return point
}

// assertIDs checks the result contains exactly the given deliveries, in order.
func (suite *DeliveryQueriesTestSuite) assertIDs(result []queries.DeliveryQueryResponse, ids ...kernel.UUID) {
	suite.Require().Len(result, len(ids))
	for i, id := range ids {
		suite.True(id.IsEqual(result[i].ID), "position %d: expected %s, got %s", i, id, result[i].ID)
	}
}

func TestDeliveryQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryQueriesTestSuite))
}
