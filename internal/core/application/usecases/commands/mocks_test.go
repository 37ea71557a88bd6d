package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"porter/internal/core/application/usecases/commands"
	"porter/internal/core/domain/model/delivery"
	"porter/internal/core/domain/model/kernel"
	"porter/internal/core/domain/model/porter"
	"porter/internal/core/domain/model/tracking"
	"porter/internal/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}
func (m *MockDeliveryRepository) GetAllStalePending(ctx context.Context, olderThanHours int) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, olderThanHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockPorterRepository struct{ mock.Mock }

func (m *MockPorterRepository) Add(ctx context.Context, p *porter.Porter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPorterRepository) Update(ctx context.Context, p *porter.Porter) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPorterRepository) Get(ctx context.Context, id kernel.UUID) (*porter.Porter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*porter.Porter), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Add(ctx context.Context, p *tracking.TrackingPoint) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockTrackingRepository) GetByDeliveryID(ctx context.Context, id kernel.UUID) ([]*tracking.TrackingPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.TrackingPoint), args.Error(1)
}

type MockDeliveryUoW struct{ mock.Mock }

func (m *MockDeliveryUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeliveryUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeliveryUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDeliveryUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockFulfillmentUoW struct{ mock.Mock }

func (m *MockFulfillmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFulfillmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFulfillmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockFulfillmentUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}
func (m *MockFulfillmentUoW) PorterRepository() ports.PorterRepository {
	args := m.Called()
	return args.Get(0).(ports.PorterRepository)
}
func (m *MockFulfillmentUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockPorterUoW struct{ mock.Mock }

func (m *MockPorterUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPorterUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPorterUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPorterUoW) PorterRepository() ports.PorterRepository {
	args := m.Called()
	return args.Get(0).(ports.PorterRepository)
}

type MockPorterUoWFactory struct{ mock.Mock }

func (m *MockPorterUoWFactory) Create() commands.PorterUoW {
	args := m.Called()
	return args.Get(0).(commands.PorterUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, kind ports.DeliveryEventKind, id kernel.UUID) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Charge(ctx context.Context, d *delivery.Delivery) (ports.PaymentReceipt, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(ports.PaymentReceipt), args.Error(1)
}

// Test data helpers shared across handler tests.

func testActor(t *testing.T, role delivery.Role) delivery.Actor {
	t.Helper()
	actor, err := delivery.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return actor
}

func testGeoPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road, Bengaluru")
	require.NoError(t, err)
	return p
}

func testPendingDelivery(t *testing.T, userID kernel.UUID) *delivery.Delivery {
	t.Helper()
	pickup, err := kernel.NewGeoPoint(12.9716, 77.5946, "MG Road")
	require.NoError(t, err)
	dropoff, err := kernel.NewGeoPoint(12.9352, 77.6245, "Koramangala")
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), userID, pickup, dropoff,
		delivery.PackageSmall, 1.0, "", time.Now().Add(time.Hour), 99.0, false)
	require.NoError(t, err)
	return d
}

func testDeliveredDelivery(t *testing.T, userID, porterID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d := testPendingDelivery(t, userID)
	require.NoError(t, d.Accept(porterID))
	require.NoError(t, d.Advance(delivery.PickedUp))
	require.NoError(t, d.Advance(delivery.InTransit))
	require.NoError(t, d.Advance(delivery.Delivered))
	return d
}

func testPorterProfile(t *testing.T, porterID kernel.UUID) *porter.Porter {
	t.Helper()
	p, err := porter.NewPorter(porterID, "Ravi Kumar", "+919876543210")
	require.NoError(t, err)
	return p
}
