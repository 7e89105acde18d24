package api

import (
	"context"
	"fmt"
	"net/http"

	interrors "github.com/brokerdesk/reminders/internal/errors"
	"github.com/brokerdesk/reminders/internal/types"
)

// SendQualityAlert notifies the oversight endpoint that a completion
// response fell below the quality threshold. Best-effort: callers run it
// through the executor and never block a completion on its outcome.
func SendQualityAlert(ctx context.Context, httpClient *http.Client, baseURL, token string, req types.QualityAlertRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(req.ReminderID, "reminderId"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/admin/quality-alerts", baseURL)
	httpReq, err := newRequest(ctx, http.MethodPost, url, token, req)
	if err != nil {
		return err
	}
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return interrors.NewNetworkError("send quality alert", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return interrors.NewHTTPError(resp.StatusCode, readBody(resp.Body), "send quality alert")
	}
	return nil
}
