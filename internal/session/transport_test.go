package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

type invalidatorStub struct {
	mu    sync.Mutex
	calls []model.Credentials
}

func (s *invalidatorStub) Invalidate(_ context.Context, creds model.Credentials, _ string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, creds)
	return true
}

func TestTransportAttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	inv := &invalidatorStub{}
	client := &http.Client{Transport: &Transport{Invalidator: inv}}

	ctx := WithCredentials(context.Background(), model.Credentials{Token: "tok", Generation: 1})
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected authorization header %q", gotAuth)
	}
	if req.Header.Get("Authorization") != "" {
		t.Fatal("original request must not be mutated")
	}
	if len(inv.calls) != 0 {
		t.Fatal("unexpected invalidation")
	}
}

func TestTransportInvalidatesOnRejection(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer srv.Close()

			inv := &invalidatorStub{}
			client := &http.Client{Transport: &Transport{Invalidator: inv}}
			creds := model.Credentials{Token: "tok", Generation: 3}

			req, _ := http.NewRequestWithContext(WithCredentials(context.Background(), creds), http.MethodGet, srv.URL, nil)
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("do: %v", err)
			}
			resp.Body.Close()

			if len(inv.calls) != 1 || inv.calls[0] != creds {
				t.Fatalf("expected one invalidation with request credentials, got %+v", inv.calls)
			}
		})
	}
}

func TestTransportAnonymousRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("anonymous request must not carry a token")
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	inv := &invalidatorStub{}
	client := &http.Client{Transport: &Transport{Invalidator: inv}}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if len(inv.calls) != 0 {
		t.Fatal("anonymous 401 must not invalidate")
	}
}
