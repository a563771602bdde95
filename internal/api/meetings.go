package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"meetingmind/internal/meeting"
)

// CreateMeeting stores a new pending meeting and returns its identifier.
func (c *Client) CreateMeeting(ctx context.Context, in meeting.NewMeeting) (meeting.Created, error) {
	if in.Participants == nil {
		in.Participants = []string{}
	}
	body, err := c.do(ctx, request{
		op:     "create meeting",
		method: http.MethodPost,
		path:   "/meetings/create",
		body:   in,
	})
	if err != nil {
		return meeting.Created{}, err
	}
	var out meeting.Created
	if err := decodeData("create meeting", body, &out); err != nil {
		return meeting.Created{}, err
	}
	return out, nil
}

// ProcessMeeting asks the backend to run AI extraction. A response with
// AISuccess=false is not an error: the backend stored demo output instead.
func (c *Client) ProcessMeeting(ctx context.Context, id string) (meeting.Processed, error) {
	body, err := c.do(ctx, request{
		op:     "process meeting",
		method: http.MethodPost,
		path:   "/meetings/process",
		body:   map[string]string{"meeting_id": id},
	})
	if err != nil {
		return meeting.Processed{}, err
	}
	var out meeting.Processed
	if err := json.Unmarshal(body, &out); err != nil {
		return meeting.Processed{}, &Error{Op: "process meeting", Message: "invalid response from server", Err: fmt.Errorf("parse process meeting response: %w", err)}
	}
	return out, nil
}

// ListMeetings returns meetings, filtered server-side when search is set.
func (c *Client) ListMeetings(ctx context.Context, search string) ([]meeting.Meeting, error) {
	var query url.Values
	if search != "" {
		query = url.Values{"search": {search}}
	}
	body, err := c.do(ctx, request{
		op:     "list meetings",
		method: http.MethodGet,
		path:   "/meetings",
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	out := []meeting.Meeting{}
	if err := decodeData("list meetings", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMeeting(ctx context.Context, id string) (meeting.Meeting, error) {
	body, err := c.do(ctx, request{
		op:     "get meeting",
		method: http.MethodGet,
		path:   "/meetings/" + url.PathEscape(id),
	})
	if err != nil {
		return meeting.Meeting{}, err
	}
	var out meeting.Meeting
	if err := decodeData("get meeting", body, &out); err != nil {
		return meeting.Meeting{}, err
	}
	return out, nil
}
