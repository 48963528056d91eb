package worker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderPlacedMessage(t *testing.T) {
	msg := OrderPlacedMessage("a1b2c3d4-0000-0000-0000-000000000000")
	assert.Equal(t, "Your order a1b2c3d4 has been received and is pending confirmation.", msg)
}

func TestOrderStatusMessage(t *testing.T) {
	msg := OrderStatusMessage("a1b2c3d4-0000-0000-0000-000000000000", "accepted")
	assert.Equal(t, "Your order a1b2c3d4 has been accepted.", msg)

	msg = OrderStatusMessage("short", "rejected")
	assert.Equal(t, "Your order short has been rejected.", msg)
}
