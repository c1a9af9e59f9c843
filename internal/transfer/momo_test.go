package transfer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/techreviewhub/automation/internal/domain"
	"github.com/techreviewhub/automation/internal/transfer"
)

func momoServer(t *testing.T, statusBody string, submitCode int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /collection/token/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Ocp-Apim-Subscription-Key") == "" {
			t.Error("missing subscription key on token request")
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok"})
	})
	mux.HandleFunc("POST /collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Reference-Id") == "" {
			t.Error("missing X-Reference-Id on submission")
		}
		var body struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
			Payer    struct {
				PartyIDType string `json:"partyIdType"`
				PartyID     string `json:"partyId"`
			} `json:"payer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad submission body: %v", err)
		}
		if body.Payer.PartyIDType != "MSISDN" {
			t.Errorf("expected MSISDN payer, got %q", body.Payer.PartyIDType)
		}
		w.WriteHeader(submitCode)
	})
	mux.HandleFunc("GET /collection/v1_0/requesttopay/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(statusBody))
	})
	return httptest.NewServer(mux)
}

func newMomo(srv *httptest.Server) *transfer.MomoClient {
	return transfer.NewMomoClient(srv.URL, "key", "secret", "sub", "live", time.Second)
}

func TestMomoClient_SubmitAccepted(t *testing.T) {
	srv := momoServer(t, `{"status":"SUCCESSFUL"}`, http.StatusAccepted)
	defer srv.Close()

	c := newMomo(srv)
	if err := c.Submit(context.Background(), "tx-1", 120.5, "GHS", "0543936684"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMomoClient_SubmitRejected(t *testing.T) {
	srv := momoServer(t, `{}`, http.StatusBadRequest)
	defer srv.Close()

	c := newMomo(srv)
	if err := c.Submit(context.Background(), "tx-1", 120.5, "GHS", "0543936684"); err == nil {
		t.Fatal("expected an error on non-202 response")
	}
}

func TestMomoClient_StatusMapping(t *testing.T) {
	tests := []struct {
		body string
		want domain.TransferStatus
	}{
		{`{"status":"SUCCESSFUL"}`, domain.TransferSuccessful},
		{`{"status":"PENDING"}`, domain.TransferPending},
		{`{"status":"FAILED"}`, domain.TransferFailed},
		{`{"status":"REJECTED"}`, domain.TransferFailed},
	}
	for _, tc := range tests {
		srv := momoServer(t, tc.body, http.StatusAccepted)
		c := newMomo(srv)

		got, err := c.Status(context.Background(), "tx-1")
		if err != nil {
			t.Fatalf("body %s: unexpected error: %v", tc.body, err)
		}
		if got != tc.want {
			t.Errorf("body %s: expected %s, got %s", tc.body, tc.want, got)
		}
		srv.Close()
	}
}
