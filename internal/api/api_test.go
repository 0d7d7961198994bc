package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avetisov/modera/internal/listingservice"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/query"
	"github.com/avetisov/modera/internal/testutil"
)

// testEnv sets up a seeded service and the API router.
func testEnv(t *testing.T, strict bool) (*listingservice.Service, http.Handler) {
	t.Helper()
	svc, _ := testutil.Service(t, strict)
	authSvc := testutil.Auth(t)
	router := NewRouter(svc, authSvc, authSvc, nil, 0)
	return svc, router
}

// do performs a request, optionally authenticated with a fresh session token.
func do(t *testing.T, router http.Handler, method, target string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if authed {
		authSvc := testutil.Auth(t)
		_, token, err := authSvc.Login(testutil.AdminEmail, testutil.AdminPassword)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSetsSessionCookie(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPost, "/auth/login",
		map[string]string{"email": testutil.AdminEmail, "password": testutil.AdminPassword}, false)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp UserResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.User.Email != testutil.AdminEmail {
		t.Errorf("response = %+v", resp)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "auth-token" || cookies[0].Value == "" {
		t.Errorf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie not HttpOnly")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPost, "/auth/login",
		map[string]string{"email": testutil.AdminEmail, "password": "wrong"}, false)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestLoginMalformedBody(t *testing.T) {
	_, router := testEnv(t, false)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestMeRequiresSession(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodGet, "/auth/me", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = do(t, router, http.MethodGet, "/auth/me", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp UserResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.User.Role != "admin" {
		t.Errorf("user = %+v", resp.User)
	}
}

func TestLoginCookieRoundTrip(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPost, "/auth/login",
		map[string]string{"email": testutil.AdminEmail, "password": testutil.AdminPassword}, false)
	cookie := w.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("me with login cookie = %d, want 200", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPost, "/auth/logout", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Errorf("cookies = %+v", cookies)
	}
}

func TestListListingsUnauthorized(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodGet, "/listings", nil, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp errResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Success || resp.Message != "Unauthorized" {
		t.Errorf("body = %+v", resp)
	}
}

func TestListListingsPaginated(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodGet, "/listings?page=2&limit=3", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ListingPageResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 3 {
		t.Errorf("len = %d, want 3", len(resp.Data))
	}
	want := query.Pagination{Page: 2, Limit: 3, Total: 8, TotalPages: 3}
	if resp.Pagination != want {
		t.Errorf("pagination = %+v, want %+v", resp.Pagination, want)
	}
	// Page 2 of size 3 holds listings 4-6.
	if resp.Data[0].ID != "4" {
		t.Errorf("first id = %q, want 4", resp.Data[0].ID)
	}
}

func TestListListingsStatusFilter(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodGet, "/listings?status=pending&limit=5", nil, true)
	var resp ListingPageResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Pagination.Total != 4 {
		t.Errorf("total = %d, want 4 pending", resp.Pagination.Total)
	}
	for _, l := range resp.Data {
		if l.Status != models.StatusPending {
			t.Errorf("listing %s status = %q", l.ID, l.Status)
		}
	}
}

func TestGetListing(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodGet, "/listings/2", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ListingResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Brand != "Tesla" {
		t.Errorf("brand = %q", resp.Data.Brand)
	}

	w = do(t, router, http.MethodGet, "/listings/nonexistent", nil, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing listing status = %d, want 404", w.Code)
	}
}

func TestUpdateListing(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPut, "/listings/1",
		map[string]any{"title": "New title", "pricePerDay": 135}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ListingResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Title != "New title" || resp.Data.PricePerDay != 135 {
		t.Errorf("listing = %+v", resp.Data)
	}
	// Audit fields survive any PUT body.
	if resp.Data.SubmittedBy != "user1@example.com" {
		t.Errorf("submittedBy = %q", resp.Data.SubmittedBy)
	}
}

func TestUpdateListingIgnoresIdentityFields(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPut, "/listings/1",
		map[string]any{"id": "999", "submittedBy": "intruder@example.com", "title": "Renamed"}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp ListingResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.ID != "1" || resp.Data.SubmittedBy != "user1@example.com" {
		t.Errorf("identity fields mutated: %+v", resp.Data)
	}
	if resp.Data.Title != "Renamed" {
		t.Errorf("title = %q", resp.Data.Title)
	}
}

func TestUpdateListingErrors(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPut, "/listings/nonexistent", map[string]any{"title": "x"}, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}

	req := httptest.NewRequest(http.MethodPut, "/listings/1", bytes.NewReader([]byte("{broken")))
	authSvc := testutil.Auth(t)
	_, token, _ := authSvc.Login(testutil.AdminEmail, testutil.AdminPassword)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req)
	if w2.Code != http.StatusInternalServerError {
		t.Errorf("malformed body status = %d, want 500", w2.Code)
	}

	w = do(t, router, http.MethodPut, "/listings/1", map[string]any{"status": "archived"}, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid status in patch = %d, want 400", w.Code)
	}
}

func TestSetListingStatus(t *testing.T) {
	_, router := testEnv(t, false)

	// Listing 3 is seeded rejected; permissive mode approves it anyway.
	w := do(t, router, http.MethodPatch, "/listings/3/status", map[string]string{"status": "approved"}, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ListingResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", resp.Data.Status)
	}
}

func TestSetListingStatusErrors(t *testing.T) {
	_, router := testEnv(t, false)

	w := do(t, router, http.MethodPatch, "/listings/1/status", map[string]string{"status": "archived"}, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid enum status = %d, want 400", w.Code)
	}

	w = do(t, router, http.MethodPatch, "/listings/nonexistent/status", map[string]string{"status": "approved"}, true)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestSetListingStatusStrictMode(t *testing.T) {
	_, router := testEnv(t, true)

	// Listing 2 is seeded approved; strict mode refuses to flip it.
	w := do(t, router, http.MethodPatch, "/listings/2/status", map[string]string{"status": "rejected"}, true)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}

	// Pending listings can still be decided.
	w = do(t, router, http.MethodPatch, "/listings/1/status", map[string]string{"status": "approved"}, true)
	if w.Code != http.StatusOK {
		t.Errorf("pending decision status = %d, want 200", w.Code)
	}
}

func TestNotificationsListAndDismiss(t *testing.T) {
	_, router := testEnv(t, false)

	// A moderation decision produces a notification.
	do(t, router, http.MethodPatch, "/listings/1/status", map[string]string{"status": "approved"}, true)

	w := do(t, router, http.MethodGet, "/notifications", nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp NotificationListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 {
		t.Fatalf("notifications = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].Message != "Listing approved successfully" {
		t.Errorf("message = %q", resp.Data[0].Message)
	}

	w = do(t, router, http.MethodDelete, "/notifications/"+resp.Data[0].ID, nil, true)
	if w.Code != http.StatusOK {
		t.Fatalf("dismiss status = %d", w.Code)
	}

	w = do(t, router, http.MethodGet, "/notifications", nil, true)
	resp = NotificationListResponse{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 0 {
		t.Errorf("notifications after dismiss = %d, want 0", len(resp.Data))
	}
}
