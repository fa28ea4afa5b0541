package client

import (
	"context"
	"net/url"

	"crms/pkg/model"
)

type ResourceClient struct {
	httpClient *HttpClient
}

func NewResourceClient(baseURL string) *ResourceClient {
	return &ResourceClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ResourceClient) Create(ctx context.Context, resource *model.Resource) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/resources", resource)
}

func (c *ResourceClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/resources")
}

func (c *ResourceClient) Update(ctx context.Context, id string, update *model.ResourceUpdate) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/resources/"+url.PathEscape(id), update)
}

func (c *ResourceClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/resources/"+url.PathEscape(id))
}

func (c *ResourceClient) DecodeResource(resp *Response) (*model.Resource, error) {
	return decodeData[*model.Resource](resp)
}

func (c *ResourceClient) DecodeResources(resp *Response) ([]*model.Resource, error) {
	return decodeData[[]*model.Resource](resp)
}
