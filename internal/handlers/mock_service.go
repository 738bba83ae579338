package handlers

import (
	"context"
	"net/http"
	"time"

	"recipeshare/internal/models"
	"recipeshare/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser  *models.User
	signUpSess  *models.Session
	signUpErr   error
	loginUser   *models.User
	loginSess   *models.Session
	loginErr    error
	logoutErr   error
	currentUser *models.User
	currentErr  error
	resolveID   int
	resolveErr  error

	lastSignUp       service.SignUpParams
	lastLogin        service.Credentials
	lastLogoutToken  string
	lastCurrentToken string
	lastResolveToken string
}

func (m *mockAuth) SignUp(_ context.Context, p service.SignUpParams) (*models.User, *models.Session, error) {
	m.lastSignUp = p
	return m.signUpUser, m.signUpSess, m.signUpErr
}

func (m *mockAuth) Login(_ context.Context, c service.Credentials) (*models.User, *models.Session, error) {
	m.lastLogin = c
	return m.loginUser, m.loginSess, m.loginErr
}

func (m *mockAuth) Logout(_ context.Context, token string) error {
	m.lastLogoutToken = token
	return m.logoutErr
}

func (m *mockAuth) CurrentUser(_ context.Context, token string) (*models.User, error) {
	m.lastCurrentToken = token
	return m.currentUser, m.currentErr
}

func (m *mockAuth) ResolveSession(_ context.Context, token string) (int, error) {
	m.lastResolveToken = token
	return m.resolveID, m.resolveErr
}

type mockRecipes struct {
	createResp *models.Recipe
	createErr  error
	listResp   []models.Recipe
	listErr    error

	lastCreateUserID int
	lastCreateParams service.CreateRecipeParams
	createCalls      int
}

func (m *mockRecipes) Create(_ context.Context, userID int, p service.CreateRecipeParams) (*models.Recipe, error) {
	m.createCalls++
	m.lastCreateUserID = userID
	m.lastCreateParams = p
	return m.createResp, m.createErr
}

func (m *mockRecipes) List(_ context.Context) ([]models.Recipe, error) {
	return m.listResp, m.listErr
}

type mockActivity struct {
	resp       []models.ActivityEvent
	err        error
	lastFilter service.LogFilter
	lastSince  time.Time
}

func (m *mockActivity) Events(_ context.Context, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

func (m *mockActivity) EventsSince(_ context.Context, after time.Time) ([]models.ActivityEvent, error) {
	m.lastSince = after
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func withSessionCookie(req *http.Request, token string) {
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
}
