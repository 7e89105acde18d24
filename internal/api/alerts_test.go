package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brokerdesk/reminders/internal/types"
)

func TestSendQualityAlert_Success(t *testing.T) {
	t.Parallel()
	var gotReq types.QualityAlertRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	req := types.QualityAlertRequest{ReminderID: "r1", Response: "ok thanks", WordCount: 2}
	if err := SendQualityAlert(context.Background(), srv.Client(), srv.URL, "tok", req); err != nil {
		t.Fatalf("send alert: %v", err)
	}
	if gotReq.ReminderID != "r1" || gotReq.WordCount != 2 {
		t.Fatalf("request body mismatch: %+v", gotReq)
	}
}

func TestSendQualityAlert_MissingID(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	if err := SendQualityAlert(context.Background(), srv.Client(), srv.URL, "tok", types.QualityAlertRequest{}); err == nil {
		t.Fatal("expected validation error for missing reminder id")
	}
}

func TestSendQualityAlert_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := SendQualityAlert(context.Background(), srv.Client(), srv.URL, "tok", types.QualityAlertRequest{ReminderID: "r1"}); err == nil {
		t.Fatal("expected error for 500")
	}
}
