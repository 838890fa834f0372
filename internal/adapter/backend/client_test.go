package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type recorderStub struct {
	mu    sync.Mutex
	kinds []string
}

func (r *recorderStub) BackendError(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

func newTestClient(t *testing.T, handler http.Handler, opts Options) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewHTTPClient(srv.URL+"/api", testLogger(), opts)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger(), Options{}); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger(), Options{}); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	client, err := NewHTTPClient("http://pos.local", testLogger(), Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.httpClient.Timeout)
	}
}

func TestHTTPClientLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a token")
		}
		var req loginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "cashier" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(loginResponse{Token: "tok", User: model.User{ID: "1", Username: "cashier"}})
	}), Options{})

	token, user, err := client.Login(context.Background(), "cashier", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "tok" || user.Username != "cashier" {
		t.Fatalf("unexpected login result %q %+v", token, user)
	}

	_, _, err = client.Login(context.Background(), "cashier", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestHTTPClientOrderAndReceipt(t *testing.T) {
	var gotAuth []string
	var mu sync.Mutex
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		mu.Unlock()
		switch r.URL.Path {
		case "/api/orders/42":
			_, _ = io.WriteString(w, `{"id":"42","orderNumber":"POS-42","orderType":"POS_SALE","paymentStatus":"PAID","total":"12.50","payments":[{"id":"p1","method":"CASH","amount":"12.50","status":"COMPLETED"}]}`)
		case "/api/receipts/order/42":
			_, _ = io.WriteString(w, `{"cashier":"Ana","orderNumber":"POS-42","total":12.5,"items":[{"name":"Coffee","quantity":2,"unitPrice":"6.25","total":"12.50"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}), Options{Transport: &session.Transport{}})

	creds := model.Credentials{Token: "tok", Generation: 1}

	order, err := client.Order(context.Background(), creds, "42")
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if order.Type != model.OrderTypePOSSale || order.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("unexpected order %+v", order)
	}
	if !order.Total.Equal(decimal.RequireFromString("12.5")) || len(order.Payments) != 1 {
		t.Fatalf("unexpected order totals %+v", order)
	}

	receipt, err := client.Receipt(context.Background(), creds, "42")
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if receipt.Cashier != "Ana" || len(receipt.Items) != 1 || receipt.Items[0].Quantity != 2 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	for _, h := range gotAuth {
		if h != "Bearer tok" {
			t.Fatalf("expected bearer token on every request, got %q", h)
		}
	}
}

func TestHTTPClientDocument(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.EscapedPath() {
		case "/api/invoices/order/42/pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write(pdf)
		case "/api/receipts/order/a%2Fb/thermal":
			_, _ = w.Write([]byte{0x1b, 0x40, 'h', 'i'})
		case "/api/proformas/order/empty/pdf":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		}
	}), Options{})

	payload, err := client.Document(context.Background(), model.Credentials{}, "/invoices/order/42/pdf")
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if string(payload.Data) != string(pdf) || payload.ContentType != "application/pdf" {
		t.Fatalf("unexpected payload %+v", payload)
	}

	payload, err = client.Document(context.Background(), model.Credentials{}, "/receipts/order/a%2Fb/thermal")
	if err != nil {
		t.Fatalf("thermal document: %v", err)
	}
	if payload.ContentType == "" || len(payload.Data) != 4 {
		t.Fatalf("unexpected thermal payload %+v", payload)
	}

	_, err = client.Document(context.Background(), model.Credentials{}, "/proformas/order/empty/pdf")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		t.Fatalf("expected server error for empty payload, got %v", err)
	}
}

func TestHTTPClientErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"token expired"}`, KindAuth, authMessage},
		{"forbidden", http.StatusForbidden, "", KindAuth, authMessage},
		{"not found with message", http.StatusNotFound, `{"message":"Order 42 has no invoice"}`, KindClient, "Order 42 has no invoice"},
		{"not found fallback", http.StatusNotFound, "", KindClient, clientFallbacks[http.StatusNotFound]},
		{"conflict fallback", http.StatusConflict, `{}`, KindClient, clientFallbacks[http.StatusConflict]},
		{"unprocessable", http.StatusUnprocessableEntity, "not json", KindClient, clientFallbacks[http.StatusUnprocessableEntity]},
		{"too many", http.StatusTooManyRequests, "", KindClient, clientFallbacks[http.StatusTooManyRequests]},
		{"teapot", http.StatusTeapot, "", KindClient, genericMessage},
		{"server", http.StatusInternalServerError, `{"message":"stack trace"}`, KindServer, serverMessage},
		{"gateway", http.StatusBadGateway, "", KindServer, serverMessage},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorderStub{}
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Retry-After", "2")
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}), Options{Recorder: rec})

			_, err := client.Order(context.Background(), model.Credentials{Token: "tok"}, "42")
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Kind != tc.kind || apiErr.Status != tc.status {
				t.Fatalf("expected %s/%d, got %s/%d", tc.kind, tc.status, apiErr.Kind, apiErr.Status)
			}
			if got := OperatorMessage(err); got != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, got)
			}
			if errors.Is(err, ErrUnauthorized) != (tc.kind == KindAuth) {
				t.Fatalf("unexpected ErrUnauthorized match for %s", tc.kind)
			}
			if tc.status == http.StatusTooManyRequests && apiErr.RetryAfter != 2*time.Second {
				t.Fatalf("expected retry-after 2s, got %s", apiErr.RetryAfter)
			}
			if len(rec.kinds) != 1 || rec.kinds[0] != string(tc.kind) {
				t.Fatalf("expected recorded kind %s, got %v", tc.kind, rec.kinds)
			}
		})
	}
}

func TestHTTPClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewHTTPClient(url, testLogger(), Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Order(context.Background(), model.Credentials{}, "42")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
	if OperatorMessage(err) != networkMessage {
		t.Fatalf("unexpected message %q", OperatorMessage(err))
	}
}

func TestHTTPClientTimeout(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}), Options{Timeout: 50 * time.Millisecond})
	defer close(release)

	_, err := client.Document(context.Background(), model.Credentials{}, "/receipts/order/1/pdf")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network error on timeout, got %v", err)
	}
}

func TestHTTPClientRateLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":"1"}`)
	}), Options{Rate: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if _, err := client.Order(ctx, model.Credentials{}, "1"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	_, err := client.Order(ctx, model.Credentials{}, "1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetwork {
		t.Fatalf("expected limiter to reject second request within deadline, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d := parseRetryAfter(""); d != 5*time.Second {
		t.Fatalf("unexpected default %s", d)
	}
	if d := parseRetryAfter("3"); d != 3*time.Second {
		t.Fatalf("unexpected seconds %s", d)
	}
	if d := parseRetryAfter("garbage"); d != 5*time.Second {
		t.Fatalf("unexpected fallback %s", d)
	}
	future := time.Now().Add(time.Minute).UTC().Format(http.TimeFormat)
	if d := parseRetryAfter(future); d <= 0 || d > time.Minute {
		t.Fatalf("unexpected http-date duration %s", d)
	}
}

func TestOperatorMessageForForeignError(t *testing.T) {
	if OperatorMessage(errors.New("boom")) != genericMessage {
		t.Fatal("expected generic message for non-backend errors")
	}
}
