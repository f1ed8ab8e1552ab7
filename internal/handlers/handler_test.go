package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/univflow/admission-api/internal/cache"
	"github.com/univflow/admission-api/internal/chat"
	"github.com/univflow/admission-api/internal/middleware"
	"github.com/univflow/admission-api/internal/models"
	"github.com/univflow/admission-api/internal/utils"
	"github.com/univflow/admission-api/internal/workflow"
)

// fakeRemote accepts every write and assigns sequential student ids.
type fakeRemote struct {
	nextID     int
	failUpdate bool
}

func (f *fakeRemote) ListAgents(context.Context) []models.User { return nil }

func (f *fakeRemote) ListStudents(context.Context) []models.Student { return nil }

func (f *fakeRemote) SaveAgent(context.Context, models.User) bool { return true }

func (f *fakeRemote) DeleteAgent(context.Context, string) bool { return true }

func (f *fakeRemote) UpdateAgent(context.Context, string, models.User) bool { return true }

func (f *fakeRemote) CreateStudent(_ context.Context, s models.Student) *models.Student {
	f.nextID++
	s.ID = "S" + strconv.Itoa(f.nextID)
	return &s
}

func (f *fakeRemote) UpdateStudent(context.Context, string, models.StudentPatch) bool {
	return !f.failUpdate
}

func (f *fakeRemote) DeleteStudent(context.Context, string) bool { return true }

func newTestServer(t *testing.T, remote *fakeRemote) (*httptest.Server, *workflow.Tracker) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	tracker := workflow.NewTracker(remote)
	hash, err := utils.HashPassword("123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	tracker.SeedUsers([]models.User{{
		ID: "admin", Username: "admin", Name: "Administrator",
		Role: models.RoleAdmin, Password: hash,
	}})

	h := NewHandler(tracker, chat.NewLog(cache.NewMemoryStore(), 10))

	r := gin.New()
	r.POST("/auth/login", h.Login)
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/agents", h.ListAgents)
		api.POST("/agents", h.AddAgent)
		api.GET("/students", h.ListStudents)
		api.POST("/enquiries", h.CreateEnquiry)
		api.POST("/students/:id/application-fee", h.PayApplicationFee)
		api.POST("/students/:id/registration-fee", h.PayRegistrationFee)
		api.GET("/workflow", h.GetWorkflow)
		api.POST("/chat", h.PostChatMessage)
		api.GET("/chat", h.GetChatMessages)
	}

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, tracker
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, url, identifier, credential string) string {
	t.Helper()
	resp := doJSON(t, http.MethodPost, url+"/auth/login", "", gin.H{
		"identifier": identifier,
		"credential": credential,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected login 200, got %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return out.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server, _ := newTestServer(t, &fakeRemote{})

	resp := doJSON(t, http.MethodPost, server.URL+"/auth/login", "", gin.H{
		"identifier": "admin",
		"credential": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestAgentManagementRoleGate(t *testing.T) {
	server, _ := newTestServer(t, &fakeRemote{})
	adminToken := login(t, server.URL, "admin", "123")

	// Admin creates an agent.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/agents", adminToken, gin.H{
		"name": "Asha", "agentId": "AG-1", "mobile": "9990001111",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// Duplicate mobile is refused.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/agents", adminToken, gin.H{
		"name": "Ravi", "agentId": "AG-2", "mobile": "9990001111",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", resp.StatusCode)
	}

	// The agent signs in and may not manage agents.
	agentToken := login(t, server.URL, "9990001111", "AG-1")
	resp = doJSON(t, http.MethodPost, server.URL+"/api/agents", agentToken, gin.H{
		"name": "Mallory", "agentId": "AG-9", "mobile": "1112223333",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for agent, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, server.URL+"/api/agents", agentToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for agent listing, got %d", resp.StatusCode)
	}
}

func TestEnquiryAndAdvanceOverHTTP(t *testing.T) {
	remote := &fakeRemote{}
	server, tracker := newTestServer(t, remote)
	adminToken := login(t, server.URL, "admin", "123")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/agents", adminToken, gin.H{
		"name": "Asha", "agentId": "AG-1", "mobile": "9990001111",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	agentToken := login(t, server.URL, "9990001111", "AG-1")

	resp = doJSON(t, http.MethodPost, server.URL+"/api/enquiries", agentToken, gin.H{
		"name": "Jane Doe", "mobile": "8880001111",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created models.Student
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode student: %v", err)
	}
	if created.ID == "" || created.AgentID != "AG-1" {
		t.Fatalf("expected owned record with id, got %+v", created)
	}

	// Missing payment fields stop before any remote call.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/students/"+created.ID+"/application-fee", agentToken, gin.H{
		"date": "2026-08-30",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing application number, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, server.URL+"/api/students/"+created.ID+"/application-fee", agentToken, gin.H{
		"date": "2026-08-30", "applicationNo": "APP-1001",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	got, ok := tracker.Student(created.ID)
	if !ok {
		t.Fatal("expected record in tracker")
	}
	if got.ApplicationFee == nil || *got.ApplicationFee != 250 {
		t.Fatalf("expected application fee recorded, got %+v", got.ApplicationFee)
	}

	// A failing remote halts progression with a gateway error.
	remote.failUpdate = true
	resp = doJSON(t, http.MethodPost, server.URL+"/api/students/"+created.ID+"/registration-fee", agentToken, gin.H{
		"date": "2026-08-30", "registrationNo": "REG-1",
	})
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 on remote failure, got %d", resp.StatusCode)
	}
	got, _ = tracker.Student(created.ID)
	if got.RegistrationFee != nil {
		t.Fatal("expected registration fee unchanged after remote failure")
	}
}

func TestChatOverHTTP(t *testing.T) {
	server, _ := newTestServer(t, &fakeRemote{})
	adminToken := login(t, server.URL, "admin", "123")

	resp := doJSON(t, http.MethodPost, server.URL+"/api/chat", adminToken, gin.H{"text": "hello team"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/api/chat", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var messages []models.ChatMessage
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Text != "hello team" {
		t.Fatalf("expected one message, got %+v", messages)
	}
}
