package handlers

import (
	"context"
	"net/http"
	"time"

	"crowdcount/internal/models"
	"crowdcount/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAccounts struct {
	registerUser *models.User
	registerErr  error
	loginUser    *models.User
	loginErr     error
	getUser      *models.User
	getErr       error

	lastRegister struct {
		username, email, password string
	}
	lastLoginEmail    string
	lastLoginPassword string
	lastGetID         int
}

func (m *mockAccounts) Register(_ context.Context, username, email, password string) (*models.User, error) {
	m.lastRegister.username = username
	m.lastRegister.email = email
	m.lastRegister.password = password
	return m.registerUser, m.registerErr
}

func (m *mockAccounts) Login(_ context.Context, email, password string) (*models.User, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginUser, m.loginErr
}

func (m *mockAccounts) GetByID(_ context.Context, id int) (*models.User, error) {
	m.lastGetID = id
	return m.getUser, m.getErr
}

type mockSessions struct {
	issueToken  string
	issueErr    error
	validateID  int
	validateErr error

	issuedFor         []int
	validatedTokens   []string
	invalidatedTokens []string
}

func (m *mockSessions) Issue(userID int) (string, error) {
	m.issuedFor = append(m.issuedFor, userID)
	return m.issueToken, m.issueErr
}

func (m *mockSessions) Validate(token string) (int, error) {
	m.validatedTokens = append(m.validatedTokens, token)
	return m.validateID, m.validateErr
}

func (m *mockSessions) Invalidate(token string) {
	m.invalidatedTokens = append(m.invalidatedTokens, token)
}

type mockAnalytics struct {
	dashboard service.DashboardAnalytics
	video     service.VideoAnalytics
}

func (m *mockAnalytics) Dashboard() service.DashboardAnalytics { return m.dashboard }
func (m *mockAnalytics) VideoFeeds() service.VideoAnalytics    { return m.video }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Config{SessionTTL: time.Hour})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: token}
}
