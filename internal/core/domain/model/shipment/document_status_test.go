package shipment_test

import (
	"fmt"
	"testing"

	"freightops/internal/core/domain/model/shipment"
	"freightops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(shipment.DocumentStatusUnknown))
		assert.Equal(t, 1, int(shipment.Pending))
		assert.Equal(t, 2, int(shipment.DocumentRetained))
		assert.Equal(t, 3, int(shipment.PickedUp))
		assert.Equal(t, 4, int(shipment.DocumentDelivered))
	})
}

func TestDocumentStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []shipment.DocumentStatus{
			shipment.Pending,
			shipment.DocumentRetained,
			shipment.PickedUp,
			shipment.DocumentDelivered,
		}

		for _, status := range validStatuses {
			require.NoError(t, status.Validate(), "%s should be valid", status.String())
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []shipment.DocumentStatus{
			shipment.DocumentStatusUnknown,
			shipment.DocumentStatus(-1),
			shipment.DocumentStatus(5),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), "document status is invalid")
			})
		}
	})
}

func TestDocumentStatus_String(t *testing.T) {
	t.Run("should return correct string for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   shipment.DocumentStatus
			expected string
		}{
			{shipment.Pending, "Pending"},
			{shipment.DocumentRetained, "Retained"},
			{shipment.PickedUp, "PickedUp"},
			{shipment.DocumentDelivered, "Delivered"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return Unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "Unknown", shipment.DocumentStatusUnknown.String())
		assert.Equal(t, "Unknown", shipment.DocumentStatus(99).String())
	})
}

func TestDocumentStatusFromString(t *testing.T) {
	t.Run("should parse valid status strings", func(t *testing.T) {
		testCases := []struct {
			raw      string
			expected shipment.DocumentStatus
		}{
			{"Pending", shipment.Pending},
			{"Retained", shipment.DocumentRetained},
			{"PickedUp", shipment.PickedUp},
			{"Delivered", shipment.DocumentDelivered},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should parse %s", tc.raw), func(t *testing.T) {
				status, err := shipment.DocumentStatusFromString(tc.raw)

				require.NoError(t, err)
				assert.Equal(t, tc.expected, status)
			})
		}
	})

	t.Run("should reject unknown status strings", func(t *testing.T) {
		invalidInputs := []string{"", "Unknown", "pending", "InTransit"}

		for _, raw := range invalidInputs {
			t.Run(fmt.Sprintf("should reject %q", raw), func(t *testing.T) {
				status, err := shipment.DocumentStatusFromString(raw)

				require.Error(t, err)
				assert.Equal(t, shipment.DocumentStatusUnknown, status)
				assert.Contains(t, err.Error(), fmt.Sprintf("%q is not a valid document status", raw))
			})
		}
	})
}

func TestDocumentStatus_Retain(t *testing.T) {
	t.Run("should allow transition from Pending to Retained", func(t *testing.T) {
		newStatus, err := shipment.Pending.Retain()

		require.NoError(t, err)
		assert.Equal(t, shipment.DocumentRetained, newStatus)
	})

	t.Run("should allow re-retaining as a no-op", func(t *testing.T) {
		newStatus, err := shipment.DocumentRetained.Retain()

		require.NoError(t, err)
		assert.Equal(t, shipment.DocumentRetained, newStatus)
	})

	t.Run("should reject retaining picked up or delivered documents", func(t *testing.T) {
		rejectedStatuses := []shipment.DocumentStatus{
			shipment.PickedUp,
			shipment.DocumentDelivered,
			shipment.DocumentStatusUnknown,
		}

		for _, status := range rejectedStatuses {
			t.Run(fmt.Sprintf("should reject retaining from %s", status.String()), func(t *testing.T) {
				newStatus, err := status.Retain()

				require.Error(t, err)
				assert.Equal(t, shipment.DocumentStatus(0), newStatus)
				assert.Contains(t, err.Error(), fmt.Sprintf("%s is not a valid status to retain", status.String()))
			})
		}
	})
}

func TestDocumentStatus_Release(t *testing.T) {
	t.Run("should allow transition from Retained to Pending", func(t *testing.T) {
		newStatus, err := shipment.DocumentRetained.Release()

		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, newStatus)
	})

	t.Run("should allow releasing a pending document as a no-op", func(t *testing.T) {
		newStatus, err := shipment.Pending.Release()

		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, newStatus)
	})

	t.Run("should reject releasing picked up or delivered documents", func(t *testing.T) {
		rejectedStatuses := []shipment.DocumentStatus{
			shipment.PickedUp,
			shipment.DocumentDelivered,
		}

		for _, status := range rejectedStatuses {
			_, err := status.Release()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "is not a valid status to release")
		}
	})
}

func TestDocumentStatus_PickUp(t *testing.T) {
	t.Run("should allow transition from Pending to PickedUp", func(t *testing.T) {
		newStatus, err := shipment.Pending.PickUp()

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUp, newStatus)
	})

	t.Run("should allow re-picking-up as a no-op", func(t *testing.T) {
		newStatus, err := shipment.PickedUp.PickUp()

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUp, newStatus)
	})

	t.Run("should reject picking up a retained document", func(t *testing.T) {
		newStatus, err := shipment.DocumentRetained.PickUp()

		require.Error(t, err)
		assert.Equal(t, shipment.DocumentStatus(0), newStatus)
		assert.Contains(t, err.Error(), "Retained is not a valid status to pick up")
	})

	t.Run("should reject picking up a delivered document", func(t *testing.T) {
		_, err := shipment.DocumentDelivered.PickUp()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Delivered is not a valid status to pick up")
	})
}

func TestDocumentStatus_Deliver(t *testing.T) {
	t.Run("should allow transition from Pending to Delivered", func(t *testing.T) {
		newStatus, err := shipment.Pending.Deliver()

		require.NoError(t, err)
		assert.Equal(t, shipment.DocumentDelivered, newStatus)
	})

	t.Run("should allow re-delivering as a no-op", func(t *testing.T) {
		newStatus, err := shipment.DocumentDelivered.Deliver()

		require.NoError(t, err)
		assert.Equal(t, shipment.DocumentDelivered, newStatus)
	})

	t.Run("should reject delivering a retained document", func(t *testing.T) {
		newStatus, err := shipment.DocumentRetained.Deliver()

		require.Error(t, err)
		assert.Equal(t, shipment.DocumentStatus(0), newStatus)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "Retained is not a valid status to deliver")
	})

	t.Run("should reject delivering a picked up document", func(t *testing.T) {
		// PickedUp and Delivered stay distinct states; one does not flow
		// into the other.
		_, err := shipment.PickedUp.Deliver()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "PickedUp is not a valid status to deliver")
	})
}

func TestDocumentStatus_StateMachine(t *testing.T) {
	t.Run("should follow the retention round trip", func(t *testing.T) {
		status := shipment.Pending

		status, err := status.Retain()
		require.NoError(t, err)
		assert.Equal(t, shipment.DocumentRetained, status)

		status, err = status.Release()
		require.NoError(t, err)
		assert.Equal(t, shipment.Pending, status)

		status, err = status.Deliver()
		require.NoError(t, err)
		assert.Equal(t, shipment.DocumentDelivered, status)
	})

	t.Run("should block delivery while retained", func(t *testing.T) {
		status, err := shipment.Pending.Retain()
		require.NoError(t, err)

		_, err = status.PickUp()
		require.Error(t, err)
		_, err = status.Deliver()
		require.Error(t, err)
	})
}
