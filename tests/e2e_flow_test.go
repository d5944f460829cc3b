package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdesk/crewdesk/internal/config"
	"github.com/crewdesk/crewdesk/internal/server"
)

// envelope mirrors the standard response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func TestGoldenPath(t *testing.T) {
	// 1. Setup Infrastructure
	// MongoDB (Container)
	db, cleanupDB := SetupTestDB(t)
	defer cleanupDB()

	// Redis (Miniredis for speed/simplicity)
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	blobs := NewMemoryBlobStore()

	// Config (Minimal)
	cfg := &config.Config{}
	cfg.Server.MaxUploadSizeMB = 10
	cfg.Server.AllowedUploadTypes = []string{"application/pdf", "application/octet-stream"}
	cfg.JWT.Secret = "test-secret-key-123"
	cfg.JWT.TokenTTL = time.Hour
	cfg.Meeting.BaseURL = "https://meet.test"

	// 2. Initialize App
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     db,
		RedisClient: redisClient,
		BlobStore:   blobs,
	})

	// Helper for requests
	request := func(method, path, token string, body interface{}) *http.Response {
		var bodyReader io.Reader
		if body != nil {
			jsonBytes, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(jsonBytes)
		}
		req, _ := http.NewRequest(method, path, bodyReader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	decode := func(resp *http.Response, out interface{}) envelope {
		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		if out != nil && env.Data != nil {
			require.NoError(t, json.Unmarshal(env.Data, out))
		}
		return env
	}

	// ==========================================
	// STEP 1: First registration becomes admin
	// ==========================================
	resp := request("POST", "/v1/auth/register", "", map[string]string{
		"name":     "Root Admin",
		"email":    "admin@crewdesk.io",
		"password": "supersecret",
	})
	require.Equal(t, 201, resp.StatusCode)

	var authData struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	decode(resp, &authData)
	adminToken := authData.Token
	require.NotEmpty(t, adminToken)
	assert.Equal(t, "admin", authData.User["role"])

	fmt.Println("✓ Admin Registered")

	// Second registration is a plain employee.
	resp = request("POST", "/v1/auth/register", "", map[string]string{
		"name":     "Jane Employee",
		"email":    "jane@crewdesk.io",
		"password": "supersecret",
	})
	require.Equal(t, 201, resp.StatusCode)
	decode(resp, &authData)
	janeToken := authData.Token
	janeID := authData.User["id"].(string)
	assert.Equal(t, "employee", authData.User["role"])

	fmt.Println("✓ Employee Registered")

	// ==========================================
	// STEP 2: Gate behavior
	// ==========================================
	// No token
	resp = request("GET", "/v1/me", "", nil)
	assert.Equal(t, 401, resp.StatusCode)

	// Tampered token
	resp = request("GET", "/v1/me", adminToken+"x", nil)
	assert.Equal(t, 401, resp.StatusCode)

	// Employee hits an admin route
	resp = request("GET", "/v1/admin/employees", janeToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	// Admin passes
	resp = request("GET", "/v1/admin/employees", adminToken, nil)
	assert.Equal(t, 200, resp.StatusCode)

	fmt.Println("✓ Auth Gates Verified")

	// ==========================================
	// STEP 3: Admin creates a manager
	// ==========================================
	resp = request("POST", "/v1/admin/employees", adminToken, map[string]string{
		"name":     "Mark Manager",
		"email":    "mark@crewdesk.io",
		"password": "supersecret",
		"role":     "manager",
	})
	require.Equal(t, 201, resp.StatusCode)

	var markData map[string]interface{}
	decode(resp, &markData)

	resp = request("POST", "/v1/auth/login", "", map[string]string{
		"email":    "mark@crewdesk.io",
		"password": "supersecret",
	})
	require.Equal(t, 200, resp.StatusCode)
	decode(resp, &authData)
	markToken := authData.Token

	fmt.Println("✓ Manager Created & Logged In")

	// ==========================================
	// STEP 4: Attendance
	// ==========================================
	resp = request("POST", "/v1/attendance/checkin", janeToken, nil)
	require.Equal(t, 201, resp.StatusCode)

	// Second check-in on the same day is rejected.
	resp = request("POST", "/v1/attendance/checkin", janeToken, nil)
	assert.Equal(t, 400, resp.StatusCode)
	env := decode(resp, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "Already checked in today", env.Error)

	resp = request("POST", "/v1/attendance/checkout", janeToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	var checkout map[string]interface{}
	decode(resp, &checkout)
	assert.Equal(t, "half_day", checkout["status"], "immediate checkout is under four hours")

	resp = request("GET", "/v1/attendance", janeToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	var myAttendance []map[string]interface{}
	decode(resp, &myAttendance)
	assert.Len(t, myAttendance, 1)

	fmt.Println("✓ Attendance Flow Verified")

	// ==========================================
	// STEP 5: Payroll
	// ==========================================
	resp = request("POST", "/v1/admin/payroll", adminToken, map[string]interface{}{
		"employee_id": janeID,
		"month":       8,
		"year":        2026,
		"basic":       5000,
		"allowances":  800,
		"deductions":  300,
	})
	require.Equal(t, 201, resp.StatusCode)

	var slip map[string]interface{}
	decode(resp, &slip)
	slipID := slip["id"].(string)
	assert.Equal(t, "pending", slip["status"])
	assert.EqualValues(t, 5500, slip["net"])

	// Duplicate period conflicts.
	resp = request("POST", "/v1/admin/payroll", adminToken, map[string]interface{}{
		"employee_id": janeID,
		"month":       8,
		"year":        2026,
		"basic":       5000,
	})
	assert.Equal(t, 409, resp.StatusCode)

	// Release, then a second release fails.
	resp = request("POST", "/v1/admin/payroll/"+slipID+"/release", adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(resp, &slip)
	assert.Equal(t, "released", slip["status"])
	assert.NotEmpty(t, slip["release_date"])

	resp = request("POST", "/v1/admin/payroll/"+slipID+"/release", adminToken, nil)
	assert.Equal(t, 400, resp.StatusCode)

	// Employees cannot cut payroll.
	resp = request("POST", "/v1/admin/payroll", janeToken, map[string]interface{}{
		"employee_id": janeID, "month": 9, "year": 2026, "basic": 1,
	})
	assert.Equal(t, 403, resp.StatusCode)

	// Jane sees her own slip.
	resp = request("GET", "/v1/payroll", janeToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	var mySlips []map[string]interface{}
	decode(resp, &mySlips)
	assert.Len(t, mySlips, 1)

	fmt.Println("✓ Payroll Flow Verified")

	// ==========================================
	// STEP 6: Tickets & ownership
	// ==========================================
	resp = request("POST", "/v1/tickets", janeToken, map[string]string{
		"subject":     "Laptop broken",
		"description": "Screen flickers",
		"priority":    "high",
	})
	require.Equal(t, 201, resp.StatusCode)

	var ticket map[string]interface{}
	decode(resp, &ticket)
	ticketID := ticket["id"].(string)

	// The manager is not a member of Jane's ticket.
	resp = request("GET", "/v1/tickets/"+ticketID, markToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	// Admin bypasses membership.
	resp = request("GET", "/v1/tickets/"+ticketID, adminToken, nil)
	assert.Equal(t, 200, resp.StatusCode)

	// Owner adds a message and admin resolves.
	resp = request("POST", "/v1/tickets/"+ticketID+"/messages", janeToken, map[string]string{
		"body": "It got worse today",
	})
	assert.Equal(t, 200, resp.StatusCode)

	resp = request("PATCH", "/v1/admin/tickets/"+ticketID+"/status", adminToken, map[string]string{
		"status": "resolved",
	})
	require.Equal(t, 200, resp.StatusCode)
	decode(resp, &ticket)
	assert.Equal(t, "resolved", ticket["status"])

	fmt.Println("✓ Ticket Flow Verified")

	// ==========================================
	// STEP 7: File sharing
	// ==========================================
	var uploadBody bytes.Buffer
	mw := multipart.NewWriter(&uploadBody)
	fw, err := mw.CreateFormFile("file", "handbook.pdf")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest("POST", "/v1/files", &uploadBody)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+janeToken)
	uploadResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 201, uploadResp.StatusCode)

	var doc map[string]interface{}
	decode(uploadResp, &doc)
	docID := doc["id"].(string)
	assert.Equal(t, 1, blobs.Len())

	// A content type outside the configured allowlist is rejected.
	var exeBody bytes.Buffer
	exeWriter := multipart.NewWriter(&exeBody)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="tool.exe"`)
	partHeader.Set("Content-Type", "application/x-msdownload")
	part, err := exeWriter.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("MZ fake"))
	require.NoError(t, err)
	require.NoError(t, exeWriter.Close())

	req, _ = http.NewRequest("POST", "/v1/files", &exeBody)
	req.Header.Set("Content-Type", exeWriter.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+janeToken)
	rejectResp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, rejectResp.StatusCode)
	assert.Equal(t, 1, blobs.Len(), "rejected upload must not reach the blob store")

	// Unshared file is invisible to the manager.
	resp = request("GET", "/v1/files/"+docID, markToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	// Share, then the manager can read it.
	markID := markData["id"].(string)
	resp = request("POST", "/v1/files/"+docID+"/share", janeToken, map[string]interface{}{
		"user_ids": []string{markID},
	})
	require.Equal(t, 200, resp.StatusCode)

	resp = request("GET", "/v1/files/"+docID, markToken, nil)
	assert.Equal(t, 200, resp.StatusCode)

	fmt.Println("✓ File Sharing Verified")

	// ==========================================
	// STEP 8: Meetings
	// ==========================================
	resp = request("POST", "/v1/meetings", markToken, map[string]interface{}{
		"title":            "Sprint Planning",
		"agenda":           "Next sprint scope",
		"starts_at":        time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"duration_minutes": 45,
		"participants":     []string{janeID},
	})
	require.Equal(t, 201, resp.StatusCode)

	var meeting map[string]interface{}
	decode(resp, &meeting)
	meetingID := meeting["id"].(string)
	assert.NotEmpty(t, meeting["room_code"])
	assert.Contains(t, meeting["join_url"], "https://meet.test/")

	// Participant reads, non-organizer cannot mutate.
	resp = request("GET", "/v1/meetings/"+meetingID, janeToken, nil)
	assert.Equal(t, 200, resp.StatusCode)

	resp = request("PUT", "/v1/meetings/"+meetingID, janeToken, map[string]interface{}{
		"title":            "Hijacked",
		"starts_at":        time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"duration_minutes": 30,
	})
	assert.Equal(t, 403, resp.StatusCode)

	fmt.Println("✓ Meeting Flow Verified")

	// ==========================================
	// STEP 9: Reviews
	// ==========================================
	resp = request("POST", "/v1/manager/reviews", markToken, map[string]interface{}{
		"employee_id": janeID,
		"period":      "2026-H1",
		"rating":      4,
		"strengths":   "Reliable delivery",
	})
	require.Equal(t, 201, resp.StatusCode)

	var review map[string]interface{}
	decode(resp, &review)
	reviewID := review["id"].(string)

	// Admins pass the manager gate too.
	resp = request("POST", "/v1/manager/reviews", adminToken, map[string]interface{}{
		"employee_id": janeID, "period": "2026-H2", "rating": 5,
	})
	assert.Equal(t, 201, resp.StatusCode)

	// Employees cannot author reviews.
	resp = request("POST", "/v1/manager/reviews", janeToken, map[string]interface{}{
		"employee_id": janeID, "period": "2026-H1", "rating": 5,
	})
	assert.Equal(t, 403, resp.StatusCode)

	// Only the subject can acknowledge, admins included.
	resp = request("POST", "/v1/reviews/"+reviewID+"/ack", adminToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	resp = request("POST", "/v1/reviews/"+reviewID+"/ack", janeToken, nil)
	require.Equal(t, 200, resp.StatusCode)
	decode(resp, &review)
	assert.NotEmpty(t, review["acked_at"])

	fmt.Println("✓ Review Flow Verified")

	// ==========================================
	// STEP 10: Dashboard (cached)
	// ==========================================
	resp = request("GET", "/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	var summary map[string]interface{}
	decode(resp, &summary)
	assert.EqualValues(t, 3, summary["employees"])

	// The summary is now cached in Redis.
	assert.True(t, mr.Exists("dashboard:summary"))

	resp = request("GET", "/v1/admin/dashboard", janeToken, nil)
	assert.Equal(t, 403, resp.StatusCode)

	fmt.Println("✓ Dashboard Verified")
}
