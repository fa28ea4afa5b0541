package client

import (
	"context"
	"net/url"

	"crms/pkg/model"
)

type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(baseURL string) *UserClient {
	return &UserClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *UserClient) Create(ctx context.Context, user *model.User) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/users", user)
}

func (c *UserClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/users")
}

func (c *UserClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/users/"+url.PathEscape(id))
}

func (c *UserClient) DecodeUser(resp *Response) (*model.User, error) {
	return decodeData[*model.User](resp)
}

func (c *UserClient) DecodeUsers(resp *Response) ([]*model.User, error) {
	return decodeData[[]*model.User](resp)
}
