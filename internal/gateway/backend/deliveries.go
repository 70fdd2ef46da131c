package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
)

const deliveriesPath = "/api/deliveries/"

func deliveryPath(id int64) string {
	return deliveriesPath + strconv.FormatInt(id, 10) + "/"
}

// ListDeliveries returns every delivery visible to the current user.
func (c *Client) ListDeliveries(ctx context.Context) ([]Delivery, error) {
	var out []Delivery
	if err := c.doJSON(ctx, http.MethodGet, deliveriesPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDelivery returns a single delivery.
func (c *Client) GetDelivery(ctx context.Context, id int64) (*Delivery, error) {
	var out Delivery
	if err := c.doJSON(ctx, http.MethodGet, deliveryPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDelivery posts form as multipart/form-data.
func (c *Client) CreateDelivery(ctx context.Context, form CreateDeliveryForm) (*Delivery, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := form.encode(mw); err != nil {
		return nil, fmt.Errorf("encode delivery form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encode delivery form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, deliveriesPath, &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var out Delivery
	if err := decodeBody(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchDelivery applies a partial update.
func (c *Client) PatchDelivery(ctx context.Context, id int64, patch DeliveryPatch) (*Delivery, error) {
	var out Delivery
	if err := c.doJSON(ctx, http.MethodPatch, deliveryPath(id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDelivery removes a delivery.
func (c *Client) DeleteDelivery(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, deliveryPath(id), nil, nil)
}
