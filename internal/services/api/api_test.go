package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"gitfolio/internal/adapters/github"
	"gitfolio/internal/adapters/stackexchange"
	"gitfolio/internal/platform/config"
	phttp "gitfolio/internal/platform/net/http"
	"gitfolio/internal/services/api"
)

// mountTestAPI wires the full API against unreachable upstreams. Routing and
// cache-priming behavior can be exercised without any network traffic
func mountTestAPI(t *testing.T) *chi.Mux {
	t.Helper()
	t.Setenv("GITHUB_USER", "octocat")

	mux := chi.NewRouter()
	api.Mount(phttp.AdaptChi(mux), api.Options{
		Config: config.New(),
		GitHub: github.NewClient(github.Options{BaseURL: "http://127.0.0.1:1"}),
		Stack:  stackexchange.NewClient(stackexchange.Options{BaseURL: "http://127.0.0.1:1"}),
	})
	return mux
}

func TestMountMetaHealth(t *testing.T) {
	mux := mountTestAPI(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestMountVersionEndpoint(t *testing.T) {
	mux := mountTestAPI(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/version", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"service":"gitfolio-api"`) {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestMountCachePrimingEndpoints(t *testing.T) {
	mux := mountTestAPI(t)

	cases := []struct {
		path string
		want string
	}{
		{"/api/v1/github", "max-age=600"},
		{"/api/v1/stackexchange", "max-age=300"},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, c.path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("HEAD %s status=%d", c.path, rec.Code)
			continue
		}
		cc := rec.Header().Get("Cache-Control")
		if !strings.Contains(cc, c.want) {
			t.Errorf("HEAD %s Cache-Control=%q want %q", c.path, cc, c.want)
		}
	}
}

func TestMountUnknownRoute(t *testing.T) {
	mux := mountTestAPI(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rec.Code)
	}
}
