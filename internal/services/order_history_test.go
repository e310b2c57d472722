package services_test

import (
	"testing"

	"furniro/internal/models"
	"furniro/internal/repositories"
	"furniro/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestOrderHistoryService_AppendAndList(t *testing.T) {
	store := repositories.NewMockStateStore()
	orders := services.NewOrderHistoryService(store)

	assert.Empty(t, orders.List("guest-id"))

	orders.Append("guest-id", models.Order{ID: "order-1", Status: models.OrderStatusPending})
	orders.Append("guest-id", models.Order{ID: "order-2", Status: models.OrderStatusPending})

	// Newest first.
	listed := orders.List("guest-id")
	assert.Len(t, listed, 2)
	assert.Equal(t, "order-2", listed[0].ID)
	assert.Equal(t, "order-1", listed[1].ID)

	assert.Empty(t, orders.List("someone-else"))
}

func TestOrderHistoryService_MarkPaid(t *testing.T) {
	store := repositories.NewMockStateStore()
	orders := services.NewOrderHistoryService(store)

	orders.Append("guest-id", models.Order{ID: "order-1", Status: models.OrderStatusPending, PaymentIntentID: "pi_1"})

	assert.NoError(t, orders.MarkPaid("guest-id", "pi_1"))
	assert.Equal(t, models.OrderStatusPaid, orders.List("guest-id")[0].Status)

	// Marking again is a no-op, not an error.
	assert.NoError(t, orders.MarkPaid("guest-id", "pi_1"))

	// Unknown intents are reported so the webhook can answer 404.
	assert.Error(t, orders.MarkPaid("guest-id", "pi_unknown"))
	assert.Error(t, orders.MarkPaid("someone-else", "pi_1"))
}

func TestOrderHistoryService_MarkPaidRejectsEmptyIntentID(t *testing.T) {
	store := repositories.NewMockStateStore()
	orders := services.NewOrderHistoryService(store)

	// A bank-transfer order carries no intent ID; an empty confirmation must
	// not match it.
	orders.Append("guest-id", models.Order{ID: "order-1", Status: models.OrderStatusPending})

	assert.Error(t, orders.MarkPaid("guest-id", ""))
	assert.Equal(t, models.OrderStatusPending, orders.List("guest-id")[0].Status)
}
