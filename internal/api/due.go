package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	interrors "github.com/brokerdesk/reminders/internal/errors"
	"github.com/brokerdesk/reminders/internal/types"
)

// FetchDueForStaff queries the admin feed of reminders due across all
// monitored staff. The server has already applied the due-window test.
func FetchDueForStaff(ctx context.Context, httpClient *http.Client, baseURL, token string) ([]types.StaffDue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/admin/reminders/due", baseURL)
	httpReq, err := newRequest(ctx, http.MethodGet, url, token, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, interrors.NewNetworkError("fetch due for staff", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "fetch due for staff")
	}

	var sr types.StaffDueResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return sr.Staff, nil
}

// FetchPending queries the caller's own pending reminders. The endpoint
// does not pre-filter by time; the caller must apply the due-window test.
func FetchPending(ctx context.Context, httpClient *http.Client, baseURL, token string) ([]types.RawReminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/reminders/pending", baseURL)
	httpReq, err := newRequest(ctx, http.MethodGet, url, token, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, interrors.NewNetworkError("fetch pending", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "fetch pending")
	}

	var pr types.PendingResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, err
	}
	return pr.Reminders, nil
}
