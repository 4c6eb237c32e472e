package order_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"12 Baker Street",
		"221b Baker Street",
		"Box of books",
		nil,
		nil,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order with no delivery person and empty history", func(t *testing.T) {
		before := time.Now().UTC()
		o := newTestOrder(t)
		after := time.Now().UTC()

		require.NoError(t, o.Validate())
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.DeliveryPerson())
		assert.Empty(t, o.History())
		assert.Nil(t, o.EstimatedDeliveryTime())
		assert.Nil(t, o.ActualPickupTime())
		assert.Nil(t, o.ActualDeliveryTime())
		assert.Nil(t, o.Tracking().CurrentLocation)
		assert.False(t, o.CreatedAt().Before(before))
		assert.False(t, o.CreatedAt().After(after))
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
	})

	t.Run("should trim addresses and description", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"  12 Baker Street  ", "\t221b Baker Street\n", "  Box of books ",
			nil, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, "12 Baker Street", o.PickupAddress())
		assert.Equal(t, "221b Baker Street", o.DropAddress())
		assert.Equal(t, "Box of books", o.ItemDescription())
	})

	t.Run("should estimate delivery time when both coordinates are present", func(t *testing.T) {
		pickup, err := kernel.NewGeoPoint(55.7558, 37.6173)
		require.NoError(t, err)
		drop, err := kernel.NewGeoPoint(55.7601, 37.6188)
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"12 Baker Street", "221b Baker Street", "Box of books",
			&pickup, &drop,
		)

		require.NoError(t, err)
		require.NotNil(t, o.EstimatedDeliveryTime())
		assert.True(t, o.EstimatedDeliveryTime().After(o.CreatedAt().Add(29*time.Minute)))
	})

	t.Run("should not estimate delivery time when a coordinate is missing", func(t *testing.T) {
		pickup, err := kernel.NewGeoPoint(55.7558, 37.6173)
		require.NoError(t, err)

		o, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			"12 Baker Street", "221b Baker Street", "Box of books",
			&pickup, nil,
		)

		require.NoError(t, err)
		assert.Nil(t, o.EstimatedDeliveryTime())
	})

	t.Run("should reject missing required fields", func(t *testing.T) {
		tests := []struct {
			name        string
			pickup      string
			drop        string
			description string
		}{
			{"empty pickup address", "", "221b Baker Street", "Box of books"},
			{"blank pickup address", "   ", "221b Baker Street", "Box of books"},
			{"empty drop address", "12 Baker Street", "", "Box of books"},
			{"empty item description", "12 Baker Street", "221b Baker Street", ""},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.NewOrder(
					kernel.NewUUID(), kernel.NewUUID(),
					tc.pickup, tc.drop, tc.description,
					nil, nil,
				)

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsRequired)
			})
		}
	})

	t.Run("should reject overlong addresses", func(t *testing.T) {
		long := make([]byte, 501)
		for i := range long {
			long[i] = 'a'
		}

		_, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(),
			string(long), "221b Baker Street", "Box of books",
			nil, nil,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject empty identifiers", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{}, kernel.NewUUID(),
			"12 Baker Street", "221b Baker Street", "Box of books",
			nil, nil,
		)

		require.Error(t, err)
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should assign a pending order", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryPerson := kernel.NewUUID()
		admin := kernel.NewUUID()

		err := o.Assign(deliveryPerson, admin, "closest courier")

		require.NoError(t, err)
		assert.Equal(t, order.StatusAssigned, o.Status())
		require.NotNil(t, o.DeliveryPerson())
		assert.True(t, deliveryPerson.IsEqual(*o.DeliveryPerson()))

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusAssigned, history[0].Status)
		assert.True(t, admin.IsEqual(history[0].UpdatedBy))
		assert.Equal(t, "closest courier", history[0].Notes)
	})

	t.Run("should reject assigning twice", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))

		err := o.Assign(kernel.NewUUID(), kernel.NewUUID(), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, o.History(), 1)
	})

	t.Run("should reject assigning a cancelled order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(o.Customer(), "changed my mind"))

		err := o.Assign(kernel.NewUUID(), kernel.NewUUID(), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})

	t.Run("should reject an empty delivery person identifier", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Assign(kernel.UUID{}, kernel.NewUUID(), "")

		require.Error(t, err)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.Nil(t, o.DeliveryPerson())
	})
}

func TestOrder_MarkPickedUp(t *testing.T) {
	t.Run("should mark an assigned order picked up and stamp pickup time", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryPerson := kernel.NewUUID()
		require.NoError(t, o.Assign(deliveryPerson, kernel.NewUUID(), ""))

		err := o.MarkPickedUp(deliveryPerson, "")

		require.NoError(t, err)
		assert.Equal(t, order.StatusPickedUp, o.Status())
		require.NotNil(t, o.ActualPickupTime())
		assert.Len(t, o.History(), 2)
	})

	t.Run("should reject picking up a pending order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.MarkPickedUp(kernel.NewUUID(), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Nil(t, o.ActualPickupTime())
	})
}

func TestOrder_MarkDelivered(t *testing.T) {
	t.Run("should deliver a picked-up order and stamp delivery time", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryPerson := kernel.NewUUID()
		require.NoError(t, o.Assign(deliveryPerson, kernel.NewUUID(), ""))
		require.NoError(t, o.MarkPickedUp(deliveryPerson, ""))

		err := o.MarkDelivered(deliveryPerson, "left at the door")

		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, o.Status())
		require.NotNil(t, o.ActualDeliveryTime())
		assert.True(t, o.Status().IsTerminal())

		history := o.History()
		require.Len(t, history, 3)
		assert.Equal(t, "left at the door", history[2].Notes)
	})

	t.Run("should reject delivering before pickup", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))

		err := o.MarkDelivered(kernel.NewUUID(), "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel a pending order", func(t *testing.T) {
		o := newTestOrder(t)
		customer := o.Customer()

		err := o.Cancel(customer, "changed my mind")

		require.NoError(t, err)
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.True(t, o.Status().IsTerminal())

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.StatusCancelled, history[0].Status)
		assert.Equal(t, "changed my mind", history[0].Notes)
	})

	t.Run("should reject cancelling twice without double-appending history", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Cancel(o.Customer(), "first"))

		err := o.Cancel(o.Customer(), "second")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Len(t, o.History(), 1)
	})

	t.Run("should reject cancelling an assigned order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))

		err := o.Cancel(o.Customer(), "too late")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}

func TestOrder_History(t *testing.T) {
	t.Run("should grow by one entry per transition with non-decreasing timestamps", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryPerson := kernel.NewUUID()

		require.NoError(t, o.Assign(deliveryPerson, kernel.NewUUID(), ""))
		require.NoError(t, o.MarkPickedUp(deliveryPerson, ""))
		require.NoError(t, o.MarkDelivered(deliveryPerson, ""))

		history := o.History()
		require.Len(t, history, 3)
		assert.Equal(t, order.StatusAssigned, history[0].Status)
		assert.Equal(t, order.StatusPickedUp, history[1].Status)
		assert.Equal(t, order.StatusDelivered, history[2].Status)
		for i := 1; i < len(history); i++ {
			assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
		}
	})

	t.Run("should return a copy that does not expose internal state", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), "original"))

		history := o.History()
		history[0].Notes = "tampered"

		assert.Equal(t, "original", o.History()[0].Notes)
	})
}

func TestOrder_UpdateLocation(t *testing.T) {
	position := func(t *testing.T) kernel.GeoPoint {
		t.Helper()
		p, err := kernel.NewGeoPoint(55.7558, 37.6173)
		require.NoError(t, err)
		return p
	}

	t.Run("should record location while assigned", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))

		err := o.UpdateLocation(position(t))

		require.NoError(t, err)
		require.NotNil(t, o.Tracking().CurrentLocation)
		require.NotNil(t, o.Tracking().LastLocationUpdate)
	})

	t.Run("should record location while picked up", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryPerson := kernel.NewUUID()
		require.NoError(t, o.Assign(deliveryPerson, kernel.NewUUID(), ""))
		require.NoError(t, o.MarkPickedUp(deliveryPerson, ""))

		require.NoError(t, o.UpdateLocation(position(t)))
	})

	t.Run("should reject location on a pending order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.UpdateLocation(position(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o.Tracking().CurrentLocation)
	})

	t.Run("should reject location after delivery", func(t *testing.T) {
		o := newTestOrder(t)
		deliveryPerson := kernel.NewUUID()
		require.NoError(t, o.Assign(deliveryPerson, kernel.NewUUID(), ""))
		require.NoError(t, o.MarkPickedUp(deliveryPerson, ""))
		require.NoError(t, o.MarkDelivered(deliveryPerson, ""))

		err := o.UpdateLocation(position(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not append history", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Assign(kernel.NewUUID(), kernel.NewUUID(), ""))
		require.NoError(t, o.UpdateLocation(position(t)))

		assert.Len(t, o.History(), 1)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a persisted order", func(t *testing.T) {
		id := kernel.NewUUID()
		customer := kernel.NewUUID()
		deliveryPerson := kernel.NewUUID()
		now := time.Now().UTC()
		history := []order.HistoryEntry{
			{Status: order.StatusAssigned, Timestamp: now, UpdatedBy: kernel.NewUUID()},
		}

		o, err := order.RestoreOrder(
			id, customer, &deliveryPerson,
			"12 Baker Street", "221b Baker Street", "Box of books",
			nil, nil,
			order.StatusAssigned, history, order.Tracking{},
			nil, nil, nil,
			now, now,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, id.IsEqual(o.ID()))
		assert.Equal(t, order.StatusAssigned, o.Status())
		require.NotNil(t, o.DeliveryPerson())
		assert.Len(t, o.History(), 1)
	})

	t.Run("should reject an invalid stored status", func(t *testing.T) {
		now := time.Now().UTC()

		_, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			"12 Baker Street", "221b Baker Street", "Box of books",
			nil, nil,
			order.StatusUnknown, nil, order.Tracking{},
			nil, nil, nil,
			now, now,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject an order not built through a constructor", func(t *testing.T) {
		var o order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
