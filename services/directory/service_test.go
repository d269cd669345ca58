package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func TestListUsers_FilterQuery(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("role") != "institution" || q.Get("approvalStatus") != "approved" {
			t.Errorf("filters not forwarded: %v", q)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"users":      []map[string]any{{"_id": "i1", "role": "institution"}},
			"pagination": map[string]any{"page": 1, "limit": 10, "total": 1},
		})
	}))

	page, err := svc.ListUsers(context.Background(), UserFilter{
		Role: models.RoleInstitution, ApprovalStatus: models.ApprovalApproved,
	})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(page.Users) != 1 || page.Users[0].Role != models.RoleInstitution {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestSetApproval_PayloadShapes(t *testing.T) {
	var path string
	var body map[string]string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))

	if err := svc.SetApproval(context.Background(), "i1", models.ApprovalApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if path != "/api/users/i1/approval" {
		t.Fatalf("unexpected path %q", path)
	}
	if body["approvalStatus"] != "approved" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["rejectionReason"]; ok {
		t.Fatal("approval must not carry a rejection reason")
	}

	if err := svc.SetApproval(context.Background(), "i1", models.ApprovalRejected, "incomplete documents"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if body["approvalStatus"] != "rejected" || body["rejectionReason"] != "incomplete documents" {
		t.Fatalf("unexpected rejection body %v", body)
	}
}

func TestCategories_CRUDPaths(t *testing.T) {
	var (
		method string
		path   string
	)
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{"_id": "cat1", "name": "Water"})
	}))
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, CategoryInput{Name: "Water", NameKinyarwanda: "Amazi"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if method != http.MethodPost || path != "/api/categories" {
		t.Fatalf("create used %s %s", method, path)
	}

	if _, err := svc.UpdateCategory(ctx, "cat1", CategoryInput{Name: "Water"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if method != http.MethodPut || path != "/api/categories/cat1" {
		t.Fatalf("update used %s %s", method, path)
	}

	if err := svc.DeleteCategory(ctx, "cat1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if method != http.MethodDelete || path != "/api/categories/cat1" {
		t.Fatalf("delete used %s %s", method, path)
	}
}
