package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	interrors "github.com/brokerdesk/reminders/internal/errors"
	"github.com/brokerdesk/reminders/internal/types"
)

// CreateReminder creates a reminder on the backend and returns the
// server copy with its assigned id. Used both for explicit creation and
// for promoting local records.
func CreateReminder(ctx context.Context, httpClient *http.Client, baseURL, token string, req types.CreateReminderRequest) (*types.RawReminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.ScheduledTime.IsZero() {
		return nil, fmt.Errorf("scheduledTime must be set")
	}
	url := fmt.Sprintf("%s/api/reminders", baseURL)
	httpReq, err := newRequest(ctx, http.MethodPost, url, token, req)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, interrors.NewNetworkError("create reminder", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "create reminder")
	}

	var cr types.CreateReminderResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, err
	}
	return &cr.Reminder, nil
}
