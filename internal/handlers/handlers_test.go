package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"nilepress/internal/config"
	"nilepress/internal/content"
)

// testService builds a service without a database. Only paths that fail
// validation before any query are exercised through it.
func testService() *content.Service {
	cfg := &config.Config{
		Env:           "testing",
		SiteURL:       "http://localhost:8080",
		Locales:       []string{"en", "ar"},
		DefaultLocale: "en",
	}
	return content.New(nil, cfg, nil)
}

// serve routes a request through a chi router so URL params resolve.
func serve(method, target string, body string, register func(chi.Router)) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	register(r)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSearchRejectsShortTerm(t *testing.T) {
	p := NewPublic(testService(), nil)

	rr := serve(http.MethodGet, "/api/blog/search?q=a", "", func(r chi.Router) {
		r.Get("/api/blog/search", p.Search)
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rr.Code)
	}

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message == "" {
		t.Error("expected a top-level message")
	}
	if len(body.Errors["q"]) == 0 {
		t.Errorf("expected field errors for q, got %v", body.Errors)
	}
}

func TestSubmitContactRejectsMalformedJSON(t *testing.T) {
	p := NewPublic(testService(), nil)

	rr := serve(http.MethodPost, "/api/contact", "{not json", func(r chi.Router) {
		r.Post("/api/contact", p.SubmitContact)
	})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
}

func TestSubmitContactFieldErrors(t *testing.T) {
	p := NewPublic(testService(), nil)

	payload := `{"name":"Jo","email":"bad","subject":"Hey","message":"short","region":"FR"}`
	rr := serve(http.MethodPost, "/api/contact", payload, func(r chi.Router) {
		r.Post("/api/contact", p.SubmitContact)
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rr.Code)
	}

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, field := range []string{"name", "email", "subject", "message", "region"} {
		if len(body.Errors[field]) == 0 {
			t.Errorf("expected errors for field %q", field)
		}
	}
}

func TestAdminRejectsInvalidID(t *testing.T) {
	a := NewAdmin(testService())

	endpoints := []struct {
		name    string
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{"update", http.MethodPut, "/api/admin/posts/{id}", a.UpdatePost},
		{"publish", http.MethodPost, "/api/admin/posts/{id}/publish", a.PublishPost},
		{"delete", http.MethodDelete, "/api/admin/posts/{id}", a.DeletePost},
		{"restore", http.MethodPost, "/api/admin/posts/{id}/restore", a.RestorePost},
		{"recalculate", http.MethodPost, "/api/admin/posts/{id}/seo/recalculate", a.RecalculateSEO},
		{"suggestions", http.MethodGet, "/api/admin/posts/{id}/seo/suggestions", a.Suggestions},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			target := strings.Replace(ep.path, "{id}", "not-a-uuid", 1)
			rr := serve(ep.method, target, "{}", func(r chi.Router) {
				r.Method(ep.method, ep.path, ep.handler)
			})
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rr.Code)
			}
		})
	}
}

func TestCreatePostValidationErrors(t *testing.T) {
	a := NewAdmin(testService())

	// Missing the required English title.
	payload := `{"title":{"ar":"عنوان"}}`
	rr := serve(http.MethodPost, "/api/admin/posts", payload, func(r chi.Router) {
		r.Post("/api/admin/posts", a.CreatePost)
	})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rr.Code)
	}

	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Errors["title"]) == 0 {
		t.Errorf("expected errors for title, got %v", body.Errors)
	}
}

func TestEnvelopeShape(t *testing.T) {
	rr := httptest.NewRecorder()
	total, perPage, page := 42, 10, 2
	respond(rr, http.StatusOK, []string{"a"}, &Meta{
		Locale:  "ar",
		Region:  "EG",
		Total:   &total,
		PerPage: &perPage,
		Page:    &page,
	})

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["data"]; !ok {
		t.Error("expected data key")
	}
	var meta Meta
	if err := json.Unmarshal(body["meta"], &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.Locale != "ar" || meta.Region != "EG" || *meta.Total != 42 {
		t.Errorf("meta round-trip: %+v", meta)
	}
}
