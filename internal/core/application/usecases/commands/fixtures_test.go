package commands_test

import (
	"testing"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/core/domain/model/kernel"
	"freightops/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/require"
)

func testDeliveryInput() commands.DeliveryInput {
	return commands.DeliveryInput{
		ReceiverName: "Ana",
		DeliveryDate: "2026-03-01",
		DeliveryTime: "14:30",
	}
}

func testRetentionInput() commands.RetentionInput {
	return commands.RetentionInput{
		Reason: "missing customs clearance",
		Amount: "250,75",
	}
}

// newTestShipment builds an in-transit shipment with one pending document
// per given name.
func newTestShipment(t *testing.T, documentNames ...string) *shipment.Shipment {
	t.Helper()

	s, err := shipment.NewShipment(
		kernel.NewUUID(), kernel.NewUUID(), "CTE-100", "Skyfreight", shipment.Air, 3, 120.5)
	require.NoError(t, err)

	for _, name := range documentNames {
		_, err = s.AddDocument(name, "", nil, 0, 0, "", false)
		require.NoError(t, err)
	}
	return s
}
