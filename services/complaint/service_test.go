package complaint

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"civicportal/client"
	"civicportal/models"
)

func newTestService(t *testing.T, handler http.Handler) *DefaultService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &DefaultService{API: client.New(server.URL, func() string { return "tok" })}
}

func validSubmit() SubmitInput {
	return SubmitInput{
		Title:       "  Broken streetlight  ",
		Description: "Dark corner near the market",
		Category:    "cat1",
		Province:    "p1",
		District:    "d1",
		Sector:      "s1",
	}
}

func TestSubmit_ValidationBeforeNetwork(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the network")
	}))

	cases := []struct {
		field string
		mut   func(*SubmitInput)
	}{
		{"title", func(in *SubmitInput) { in.Title = "   " }},
		{"description", func(in *SubmitInput) { in.Description = "" }},
		{"category", func(in *SubmitInput) { in.Category = "" }},
		{"province", func(in *SubmitInput) { in.Province = "" }},
		{"district", func(in *SubmitInput) { in.District = "" }},
		{"sector", func(in *SubmitInput) { in.Sector = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			input := validSubmit()
			tc.mut(&input)
			_, err := svc.Submit(context.Background(), input)
			var verr ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected ValidationError on %s, got %v", tc.field, err)
			}
		})
	}
}

func TestSubmit_MultipartFieldsAndDefaults(t *testing.T) {
	var form map[string]string
	var hadImage bool
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		form = map[string]string{}
		for key := range r.MultipartForm.Value {
			form[key] = r.FormValue(key)
		}
		_, _, err := r.FormFile("image")
		hadImage = err == nil
		json.NewEncoder(w).Encode(map[string]any{"_id": "comp1", "title": form["title"], "status": "pending"})
	}))

	input := validSubmit()
	input.ImageName = "evidence.jpg"
	input.Image = strings.NewReader("jpeg")
	created, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != "comp1" {
		t.Fatalf("unexpected created complaint %+v", created)
	}

	if form["title"] != "Broken streetlight" {
		t.Fatalf("title must be trimmed, got %q", form["title"])
	}
	if form["priority"] != "medium" {
		t.Fatalf("priority must default to medium, got %q", form["priority"])
	}
	if _, ok := form["cell"]; ok {
		t.Fatal("unset optional fields must be omitted")
	}
	if !hadImage {
		t.Fatal("image attachment missing from form")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"message": "Complaint not found"})
	}))

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_ForwardsFiltersAndPagination(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("limit") != "10" || q.Get("status") != "pending" || q.Get("search") != "road" {
			t.Errorf("filters not forwarded: %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"complaints": []map[string]any{{"_id": "c1", "title": "Road", "status": "pending"}},
			"pagination": map[string]any{"page": 2, "limit": 10, "total": 25},
		})
	}))

	page, err := svc.List(context.Background(), ListFilter{
		Page: 2, Limit: 10, Status: models.StatusPending, Search: "road",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Complaints) != 1 || page.Complaints[0].ID != "c1" {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Pagination.TotalPages() != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.Pagination.TotalPages())
	}
}

func TestMine_UsesMyComplaintsEndpoint(t *testing.T) {
	var path string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"complaints": []any{}, "pagination": map[string]any{}})
	}))

	if _, err := svc.Mine(context.Background(), ListFilter{}); err != nil {
		t.Fatalf("mine: %v", err)
	}
	if path != "/api/complaints/my-complaints" {
		t.Fatalf("unexpected path %q", path)
	}
}
