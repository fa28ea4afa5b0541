package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"crms/pkg/model"
)

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *BookingClient) Create(ctx context.Context, userID, resourceID string, req *model.BookingRequest) (*Response, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("resourceId", resourceID)
	return c.httpClient.POST(ctx, "/api/bookings?"+q.Encode(), req)
}

func (c *BookingClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/bookings")
}

func (c *BookingClient) GetPage(ctx context.Context, limit int, offset int64) (*Response, error) {
	path := fmt.Sprintf("/api/bookings?limit=%d&offset=%d", limit, offset)
	return c.httpClient.GET(ctx, path)
}

func (c *BookingClient) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*Response, error) {
	q := url.Values{}
	q.Set("status", string(status))
	path := "/api/bookings/" + url.PathEscape(id) + "/status?" + q.Encode()
	return c.httpClient.PUT(ctx, path, nil)
}

func (c *BookingClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/bookings/"+url.PathEscape(id))
}

func (c *BookingClient) GetByUser(ctx context.Context, userID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/bookings/user/"+url.PathEscape(userID))
}

func (c *BookingClient) GetByResource(ctx context.Context, resourceID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/bookings/resource/"+url.PathEscape(resourceID))
}

func (c *BookingClient) CheckAvailability(ctx context.Context, resourceID, date, timeSlot string) (*Response, error) {
	q := url.Values{}
	q.Set("resourceId", resourceID)
	q.Set("date", date)
	q.Set("timeSlot", timeSlot)
	return c.httpClient.GET(ctx, "/api/bookings/check-availability?"+q.Encode())
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	return decodeData[*model.Booking](resp)
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, error) {
	return decodeData[[]*model.Booking](resp)
}

func (c *BookingClient) DecodeBookingPage(resp *Response) ([]*model.Booking, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated resp:\n%s\n%w", resp.ToString(), err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(wrapper.Data, &bookings); err != nil {
		return nil, nil, fmt.Errorf("could not decode booking list:\n%s\n%w", resp.ToString(), err)
	}

	metadata := &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}

	return bookings, metadata, nil
}

func (c *BookingClient) DecodeAvailability(resp *Response) (*model.Availability, error) {
	return decodeData[*model.Availability](resp)
}
