package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"campusleave/internal/app/server"
	"campusleave/internal/domain/auth"
	"campusleave/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		Environment:        "test",
		SeedCampusName:     "Test Campus",
		SeedCampusCode:     "TEST",
		SeedAdminEmail:     "admin@test.local",
		SeedAdminPassword:  "ChangeMe123!",
		EmailFrom:          "no-reply@test.local",
		RunMigrations:      true,
		RunSeed:            true,
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
		CORSOrigins:        []string{"*"},
		DraftTTL:           time.Hour,
		ReminderInterval:   time.Hour,
		ReminderAfter:      time.Hour,
	}
}

func startApp(t *testing.T) (*server.App, *httptest.Server, config.Config) {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	t.Cleanup(app.Close)

	ts := httptest.NewServer(app.Router)
	t.Cleanup(ts.Close)
	return app, ts, cfg
}

func TestNonTeachingLeaveJourney(t *testing.T) {
	_, ts, cfg := startApp(t)

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	campusID := firstCampusID(t, client, ts.URL, token)
	departmentID := createDepartment(t, client, ts.URL, token, campusID)
	employeeEmail := fmt.Sprintf("clerk-%d@example.com", time.Now().UnixNano())
	employeeID := createEmployee(t, client, ts.URL, token, campusID, departmentID, employeeEmail, "non_teaching")

	adjustBalance(t, client, ts.URL, token, employeeID, "CL", 10)

	start := time.Now().AddDate(0, 0, 7).UTC().Truncate(24 * time.Hour)
	resp := postJSON(t, client, ts.URL+"/api/v1/leave/requests", token, map[string]any{
		"employeeId":        employeeID,
		"leaveType":         "CL",
		"startDate":         start.Format(time.RFC3339),
		"endDate":           start.AddDate(0, 0, 1).Format(time.RFC3339),
		"reason":            "family function",
		"alternateSchedule": []any{},
	})
	var created map[string]string
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created["status"] != "pending" {
		t.Fatalf("new request status = %q, want pending", created["status"])
	}

	resp = putJSON(t, client, ts.URL+"/api/v1/leave/requests/"+created["id"]+"/transition", token, map[string]any{
		"action": "approve",
	})
	var transitioned map[string]any
	if err := json.Unmarshal(resp.Data, &transitioned); err != nil {
		t.Fatalf("failed to decode transition response: %v", err)
	}
	if transitioned["status"] != "approved" {
		t.Fatalf("status after approval = %v, want approved", transitioned["status"])
	}

	balances := listBalances(t, client, ts.URL, token, employeeID)
	var clBalance, clUsed float64
	for _, b := range balances {
		if b["leaveType"] == "CL" {
			clBalance, _ = b["balance"].(float64)
			clUsed, _ = b["used"].(float64)
		}
	}
	if clBalance != 8 || clUsed != 2 {
		t.Fatalf("CL balance after approval = %v used %v, want 8 used 2", clBalance, clUsed)
	}
}

func TestTeachingWizardJourney(t *testing.T) {
	app, ts, cfg := startApp(t)

	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	campusID := firstCampusID(t, client, ts.URL, adminToken)
	departmentID := createDepartment(t, client, ts.URL, adminToken, campusID)

	now := time.Now().UnixNano()
	substituteID := createEmployee(t, client, ts.URL, adminToken, campusID, departmentID,
		fmt.Sprintf("substitute-%d@example.com", now), "teaching")

	teacherEmail := fmt.Sprintf("teacher-%d@example.com", now)
	teacherPassword := "Teacher123!"
	teacherUserID := createUser(t, app, teacherEmail, teacherPassword, auth.RoleEmployee)
	teacherID := createEmployee(t, client, ts.URL, adminToken, campusID, departmentID, teacherEmail, "teaching")
	linkEmployeeUser(t, app, teacherID, teacherUserID)

	token := login(t, client, ts.URL, teacherEmail, teacherPassword)

	if env := postJSON(t, client, ts.URL+"/api/v1/leave/wizard", token, nil); env.Error != nil {
		t.Fatalf("wizard open failed: %v", env.Error)
	}

	day := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	patchJSON(t, client, ts.URL+"/api/v1/leave/wizard", token, map[string]any{
		"leaveType": "CL",
		"startDate": day,
		"endDate":   day,
		"reason":    "medical appointment",
	})

	resp := postJSON(t, client, ts.URL+"/api/v1/leave/wizard/advance", token, nil)
	var draft map[string]any
	if err := json.Unmarshal(resp.Data, &draft); err != nil {
		t.Fatalf("failed to decode advance response: %v", err)
	}
	if step, _ := draft["step"].(float64); step != 2 {
		t.Fatalf("step after advance = %v, want 2", draft["step"])
	}

	postJSON(t, client, ts.URL+"/api/v1/leave/wizard/periods", token, map[string]any{
		"periodNumber":      1,
		"substituteFaculty": substituteID,
		"assignedClass":     "10-A",
	})

	resp = postJSON(t, client, ts.URL+"/api/v1/leave/wizard/submit", token, nil)
	var submitted map[string]string
	if err := json.Unmarshal(resp.Data, &submitted); err != nil {
		t.Fatalf("failed to decode submit response: %v", err)
	}
	if submitted["status"] != "pending" {
		t.Fatalf("submitted status = %q, want pending", submitted["status"])
	}

	// The draft is discarded on success; a second submit has nothing to
	// work on.
	code := rawStatus(t, client, http.MethodPost, ts.URL+"/api/v1/leave/wizard/submit", token, nil)
	if code != http.StatusNotFound {
		t.Fatalf("re-submit status = %d, want 404", code)
	}

	requests := listRequests(t, client, ts.URL, token)
	if len(requests) != 1 {
		t.Fatalf("teacher sees %d requests, want 1", len(requests))
	}
}

func TestEmployeeCannotReadOthersBalances(t *testing.T) {
	app, ts, cfg := startApp(t)

	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	campusID := firstCampusID(t, client, ts.URL, adminToken)
	departmentID := createDepartment(t, client, ts.URL, adminToken, campusID)

	now := time.Now().UnixNano()
	otherID := createEmployee(t, client, ts.URL, adminToken, campusID, departmentID,
		fmt.Sprintf("other-%d@example.com", now), "non_teaching")

	email := fmt.Sprintf("worker-%d@example.com", now)
	password := "Worker123!"
	userID := createUser(t, app, email, password, auth.RoleEmployee)
	ownID := createEmployee(t, client, ts.URL, adminToken, campusID, departmentID, email, "non_teaching")
	linkEmployeeUser(t, app, ownID, userID)

	token := login(t, client, ts.URL, email, password)

	code := rawStatus(t, client, http.MethodGet, ts.URL+"/api/v1/leave/balances?employeeId="+otherID, token, nil)
	if code != http.StatusForbidden {
		t.Fatalf("cross-employee balance read status = %d, want 403", code)
	}
}

func TestHODCannotDecideOutsideDepartment(t *testing.T) {
	app, ts, cfg := startApp(t)

	client := ts.Client()
	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	campusID := firstCampusID(t, client, ts.URL, adminToken)
	deptA := createDepartment(t, client, ts.URL, adminToken, campusID)
	deptB := createDepartment(t, client, ts.URL, adminToken, campusID)

	now := time.Now().UnixNano()
	hodAEmail := fmt.Sprintf("hod-a-%d@example.com", now)
	hodAPassword := "HodAlpha123!"
	hodAUserID := createUser(t, app, hodAEmail, hodAPassword, auth.RoleHOD)
	hodAEmployeeID := createEmployee(t, client, ts.URL, adminToken, campusID, deptA, hodAEmail, "teaching")
	linkEmployeeUser(t, app, hodAEmployeeID, hodAUserID)

	clerkID := createEmployee(t, client, ts.URL, adminToken, campusID, deptB,
		fmt.Sprintf("clerk-b-%d@example.com", now), "non_teaching")

	start := time.Now().AddDate(0, 0, 7).UTC().Truncate(24 * time.Hour)
	resp := postJSON(t, client, ts.URL+"/api/v1/leave/requests", adminToken, map[string]any{
		"employeeId":        clerkID,
		"leaveType":         "CL",
		"startDate":         start.Format(time.RFC3339),
		"endDate":           start.Format(time.RFC3339),
		"reason":            "errand",
		"alternateSchedule": []any{},
	})
	var created map[string]string
	if err := json.Unmarshal(resp.Data, &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	transitionURL := ts.URL + "/api/v1/leave/requests/" + created["id"] + "/transition"

	hodAToken := login(t, client, ts.URL, hodAEmail, hodAPassword)
	code := rawStatus(t, client, http.MethodPut, transitionURL, hodAToken, map[string]any{
		"action":  "reject",
		"remarks": "cannot spare cover that week",
	})
	if code != http.StatusForbidden {
		t.Fatalf("cross-department rejection status = %d, want 403", code)
	}

	// The request's own HOD still decides it.
	hodBEmail := fmt.Sprintf("hod-b-%d@example.com", now)
	hodBPassword := "HodBravo123!"
	hodBUserID := createUser(t, app, hodBEmail, hodBPassword, auth.RoleHOD)
	hodBEmployeeID := createEmployee(t, client, ts.URL, adminToken, campusID, deptB, hodBEmail, "teaching")
	linkEmployeeUser(t, app, hodBEmployeeID, hodBUserID)

	hodBToken := login(t, client, ts.URL, hodBEmail, hodBPassword)
	resp = putJSON(t, client, transitionURL, hodBToken, map[string]any{
		"action":  "reject",
		"remarks": "cannot spare cover that week",
	})
	var transitioned map[string]any
	if err := json.Unmarshal(resp.Data, &transitioned); err != nil {
		t.Fatalf("failed to decode transition response: %v", err)
	}
	if transitioned["status"] != "rejected" {
		t.Fatalf("status after own-department rejection = %v, want rejected", transitioned["status"])
	}
}

func TestLeaveRequestIdempotencyKey(t *testing.T) {
	_, ts, cfg := startApp(t)

	client := ts.Client()
	token := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	campusID := firstCampusID(t, client, ts.URL, token)
	departmentID := createDepartment(t, client, ts.URL, token, campusID)
	employeeID := createEmployee(t, client, ts.URL, token, campusID, departmentID,
		fmt.Sprintf("idem-%d@example.com", time.Now().UnixNano()), "non_teaching")
	adjustBalance(t, client, ts.URL, token, employeeID, "CL", 5)

	start := time.Now().AddDate(0, 0, 14).UTC().Truncate(24 * time.Hour)
	body := map[string]any{
		"employeeId":        employeeID,
		"leaveType":         "CL",
		"startDate":         start.Format(time.RFC3339),
		"endDate":           start.Format(time.RFC3339),
		"reason":            "errand",
		"alternateSchedule": []any{},
	}

	key := fmt.Sprintf("retry-%d", time.Now().UnixNano())
	first := postJSONWithHeaders(t, client, ts.URL+"/api/v1/leave/requests", token, body, map[string]string{"Idempotency-Key": key})
	second := postJSONWithHeaders(t, client, ts.URL+"/api/v1/leave/requests", token, body, map[string]string{"Idempotency-Key": key})

	var a, b map[string]string
	if err := json.Unmarshal(first.Data, &a); err != nil {
		t.Fatalf("failed to decode first response: %v", err)
	}
	if err := json.Unmarshal(second.Data, &b); err != nil {
		t.Fatalf("failed to decode second response: %v", err)
	}
	if a["id"] == "" || a["id"] != b["id"] {
		t.Fatalf("retry created a different request: %q vs %q", a["id"], b["id"])
	}
}

func createUser(t *testing.T, app *server.App, email, password, role string) string {
	t.Helper()
	ctx := context.Background()

	var roleID string
	if err := app.DB.QueryRow(ctx, "SELECT id FROM roles WHERE name = $1", role).Scan(&roleID); err != nil {
		t.Fatalf("failed to load role %s: %v", role, err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	var userID string
	if err := app.DB.QueryRow(ctx, `
    INSERT INTO users (email, password_hash, role_id)
    VALUES ($1,$2,$3)
    RETURNING id
  `, email, hash, roleID).Scan(&userID); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return userID
}

func linkEmployeeUser(t *testing.T, app *server.App, employeeID, userID string) {
	t.Helper()
	if _, err := app.DB.Exec(context.Background(), "UPDATE employees SET user_id = $2 WHERE id = $1", employeeID, userID); err != nil {
		t.Fatalf("failed to link employee to user: %v", err)
	}
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("login returned empty token")
	}
	return payload.Token
}

func firstCampusID(t *testing.T, client *http.Client, baseURL, token string) string {
	t.Helper()
	resp := getJSON(t, client, baseURL+"/api/v1/campuses", token)
	var campuses []map[string]any
	if err := json.Unmarshal(resp.Data, &campuses); err != nil {
		t.Fatalf("failed to decode campuses: %v", err)
	}
	if len(campuses) == 0 {
		t.Fatal("no seeded campus")
	}
	id, _ := campuses[0]["id"].(string)
	return id
}

func createDepartment(t *testing.T, client *http.Client, baseURL, token, campusID string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/departments", token, map[string]string{
		"campusId": campusID,
		"name":     "Physics",
		"code":     fmt.Sprintf("PHY-%d", time.Now().UnixNano()),
	})
	var payload map[string]string
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode department response: %v", err)
	}
	return payload["id"]
}

func createEmployee(t *testing.T, client *http.Client, baseURL, token, campusID, departmentID, email, model string) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/employees", token, map[string]string{
		"campusId":      campusID,
		"departmentId":  departmentID,
		"firstName":     "Journey",
		"lastName":      "Employee",
		"email":         email,
		"designation":   "Staff",
		"employeeModel": model,
	})
	var payload map[string]string
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode employee response: %v", err)
	}
	return payload["id"]
}

func adjustBalance(t *testing.T, client *http.Client, baseURL, token, employeeID, kind string, amount float64) {
	t.Helper()
	postJSON(t, client, baseURL+"/api/v1/leave/balances/adjust", token, map[string]any{
		"employeeId": employeeID,
		"leaveType":  kind,
		"amount":     amount,
	})
}

func listBalances(t *testing.T, client *http.Client, baseURL, token, employeeID string) []map[string]any {
	t.Helper()
	resp := getJSON(t, client, baseURL+"/api/v1/leave/balances?employeeId="+employeeID, token)
	var payload []map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode balances response: %v", err)
	}
	return payload
}

func listRequests(t *testing.T, client *http.Client, baseURL, token string) []map[string]any {
	t.Helper()
	resp := getJSON(t, client, baseURL+"/api/v1/leave/requests", token)
	var payload struct {
		Items []map[string]any `json:"items"`
	}
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode requests response: %v", err)
	}
	return payload.Items
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body, nil)
}

func postJSONWithHeaders(t *testing.T, client *http.Client, url, token string, body any, headers map[string]string) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, body, headers)
}

func putJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPut, url, token, body, nil)
}

func patchJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPatch, url, token, body, nil)
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodGet, url, token, nil, nil)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, headers map[string]string) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d for %s %s: %s", resp.StatusCode, method, url, string(raw))
	}
	return env
}

// rawStatus issues a request and returns only the status code, for
// asserting rejections.
func rawStatus(t *testing.T, client *http.Client, method, url, token string, body any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode
}
