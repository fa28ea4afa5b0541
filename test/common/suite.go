package common

import (
	"os"
	"testing"

	"crms/pkg/client"
)

// IntegrationTestSuite drives a running server through the typed API
// clients. Tests using it skip unless TEST_SERVER_URL is set.
type IntegrationTestSuite struct {
	Users     *client.UserClient
	Resources *client.ResourceClient
	Bookings  *client.BookingClient
}

func NewIntegrationTestSuite(t *testing.T) *IntegrationTestSuite {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration test")
	}

	return &IntegrationTestSuite{
		Users:     client.NewUserClient(serverURL),
		Resources: client.NewResourceClient(serverURL),
		Bookings:  client.NewBookingClient(serverURL),
	}
}
