package billing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTariffClientBillAmount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("purpose") != "domestic" || q.Get("phase") != "single" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"error":false,"totalValue":412.75}`))
	}))
	defer srv.Close()

	client := NewTariffClient(srv.URL, "domestic", "bimonthly")
	got := client.BillAmount(context.Background(), 150, PhaseSingle)
	if got != 412.75 {
		t.Errorf("BillAmount = %v, want 412.75", got)
	}
}

func TestTariffClientDegradesToZero(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "service reports error flag",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":true,"totalValue":99}`))
			},
		},
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewTariffClient(srv.URL, "domestic", "bimonthly")
			if got := client.BillAmount(context.Background(), 150, PhaseSingle); got != 0 {
				t.Errorf("BillAmount = %v, want 0", got)
			}
		})
	}
}
