package api

import (
	"context"
	"fmt"
	"net/http"

	interrors "github.com/brokerdesk/reminders/internal/errors"
	"github.com/brokerdesk/reminders/internal/types"
)

// CompleteReminder marks a reminder completed with the user's response.
// The response must be validated non-empty by the caller before any
// derived metrics are computed; it is re-checked here so the invariant
// holds regardless of call path.
func CompleteReminder(ctx context.Context, httpClient *http.Client, baseURL, token, reminderID string, req types.CompleteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(reminderID, "reminderId"); err != nil {
		return err
	}
	if err := types.ValidateResponseText(req.Response); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/reminders/%s/complete", baseURL, reminderID)
	httpReq, err := newRequest(ctx, http.MethodPost, url, token, req)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return interrors.NewNetworkError("complete reminder", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "complete reminder")
	}
	return nil
}

// SnoozeReminder asks the backend to reschedule the reminder by the
// given number of minutes.
func SnoozeReminder(ctx context.Context, httpClient *http.Client, baseURL, token, reminderID string, minutes int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(reminderID, "reminderId"); err != nil {
		return err
	}
	if err := types.ValidateSnoozeMinutes(minutes); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/reminders/%s/snooze", baseURL, reminderID)
	httpReq, err := newRequest(ctx, http.MethodPost, url, token, types.SnoozeRequest{Minutes: minutes})
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return interrors.NewNetworkError("snooze reminder", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "snooze reminder")
	}
	return nil
}

// DismissReminder marks a reminder dismissed. No response is required.
func DismissReminder(ctx context.Context, httpClient *http.Client, baseURL, token, reminderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(reminderID, "reminderId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/reminders/%s/dismiss", baseURL, reminderID)
	httpReq, err := newRequest(ctx, http.MethodPost, url, token, nil)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return interrors.NewNetworkError("dismiss reminder", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "dismiss reminder")
	}
	return nil
}

// UpdateRepeat changes a reminder's repeat configuration.
func UpdateRepeat(ctx context.Context, httpClient *http.Client, baseURL, token, reminderID string, req types.UpdateRepeatRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(reminderID, "reminderId"); err != nil {
		return err
	}
	if err := types.ValidateRepeatType(req.RepeatType); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/reminders/%s", baseURL, reminderID)
	httpReq, err := newRequest(ctx, http.MethodPatch, url, token, req)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return interrors.NewNetworkError("update repeat", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "update repeat")
	}
	return nil
}
