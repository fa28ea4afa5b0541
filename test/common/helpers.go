package common

import (
	"context"
	"testing"

	"crms/pkg/client"
	"crms/pkg/model"
)

func MustCreateUser(t *testing.T, users *client.UserClient, user *model.User) *model.User {
	t.Helper()

	resp, err := users.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 creating user, got %d: %s", resp.StatusCode, resp.ToString())
	}

	created, err := users.DecodeUser(resp)
	if err != nil {
		t.Fatalf("failed to decode created user: %v", err)
	}

	t.Cleanup(func() {
		_, _ = users.Delete(context.Background(), created.ID)
	})
	return created
}

func MustCreateResource(t *testing.T, resources *client.ResourceClient, resource *model.Resource) *model.Resource {
	t.Helper()

	resp, err := resources.Create(context.Background(), resource)
	if err != nil {
		t.Fatalf("failed to create resource: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201 creating resource, got %d: %s", resp.StatusCode, resp.ToString())
	}

	created, err := resources.DecodeResource(resp)
	if err != nil {
		t.Fatalf("failed to decode created resource: %v", err)
	}

	t.Cleanup(func() {
		_, _ = resources.Delete(context.Background(), created.ID)
	})
	return created
}
