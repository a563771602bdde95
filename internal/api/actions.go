package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"

	"meetingmind/internal/meeting"
)

// ListActions returns the action items matching f. Only non-empty filter
// fields reach the query string.
func (c *Client) ListActions(ctx context.Context, f meeting.ActionFilter) ([]meeting.ActionItem, error) {
	values, err := query.Values(f)
	if err != nil {
		return nil, &Error{Op: "list actions", Message: pickMessage("", err.Error()), Err: fmt.Errorf("encode action filter: %w", err)}
	}
	body, err := c.do(ctx, request{
		op:     "list actions",
		method: http.MethodGet,
		path:   "/actions",
		query:  values,
	})
	if err != nil {
		return nil, err
	}
	out := []meeting.ActionItem{}
	if err := decodeData("list actions", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateAction sends a partial update and returns the stored record.
func (c *Client) UpdateAction(ctx context.Context, id string, patch meeting.ActionPatch) (meeting.ActionItem, error) {
	body, err := c.do(ctx, request{
		op:     "update action",
		method: http.MethodPatch,
		path:   "/actions/" + url.PathEscape(id),
		body:   patch,
	})
	if err != nil {
		return meeting.ActionItem{}, err
	}
	var out meeting.ActionItem
	if err := decodeData("update action", body, &out); err != nil {
		return meeting.ActionItem{}, err
	}
	return out, nil
}

func (c *Client) DeleteAction(ctx context.Context, id string) error {
	body, err := c.do(ctx, request{
		op:     "delete action",
		method: http.MethodDelete,
		path:   "/actions/" + url.PathEscape(id),
	})
	if err != nil {
		return err
	}
	return decodeData("delete action", body, nil)
}
