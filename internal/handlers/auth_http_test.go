package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuscare/internal/models"
	"campuscare/internal/service"
	"campuscare/internal/utils"
)

// stubUserRepo backs handler tests with a fixed single account.
type stubUserRepo struct {
	user *models.User
	hash string
}

func (s *stubUserRepo) Create(_ context.Context, u *models.User, passwordHash string) error {
	u.ID = 1
	s.user = u
	s.hash = passwordHash
	return nil
}

func (s *stubUserRepo) GetByEmailAndRole(_ context.Context, email string, role models.Role) (*models.User, string, error) {
	if s.user != nil && s.user.Email == email && s.user.Role == role {
		return s.user, s.hash, nil
	}
	return nil, "", nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, nil
}

func (s *stubUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	return s.user != nil && s.user.Email == email, nil
}

func (s *stubUserRepo) UpdatePasswordHash(_ context.Context, id int64, passwordHash string) error {
	s.hash = passwordHash
	return nil
}

func (s *stubUserRepo) SetAvailability(context.Context, int64, models.Availability) error { return nil }
func (s *stubUserRepo) FirstAdmin(context.Context) (*models.User, error)                  { return nil, nil }
func (s *stubUserRepo) ListByRole(context.Context, models.Role) ([]models.User, error)    { return nil, nil }
func (s *stubUserRepo) ListWorkers(context.Context, string) ([]models.WorkerSummary, error) {
	return nil, nil
}
func (s *stubUserRepo) DeleteWorker(context.Context, int64) error { return nil }

func authFixture(t *testing.T) (*AuthHTTP, *stubUserRepo) {
	t.Helper()
	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)
	repo := &stubUserRepo{
		user: &models.User{ID: 1, Name: "Nino", Email: "nino@uni.edu", Role: models.RoleStudent},
		hash: hash,
	}
	return NewAuthHTTP(service.NewAuthService(repo, "test-secret"), repo), repo
}

func TestLoginSetsSessionCookie(t *testing.T) {
	h, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"nino@uni.edu","password":"hunter22","role":"Student"}`))
	rec := httptest.NewRecorder()
	h.Login()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			session = c
		}
	}
	require.NotNil(t, session, "login must set the session cookie")
	assert.True(t, session.HttpOnly)
	assert.NotEmpty(t, session.Value)

	claims, err := utils.ParseJWT("test-secret", session.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "Student", claims.Role)
}

func TestLoginBadCredentialsIs401(t *testing.T) {
	h, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"nino@uni.edu","password":"wrong","role":"Student"}`))
	rec := httptest.NewRecorder()
	h.Login()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	h, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"nino@uni.edu","password":"hunter22","role":"superuser"}`))
	rec := httptest.NewRecorder()
	h.Login()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmailIs409(t *testing.T) {
	h, _ := authFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Other","email":"nino@uni.edu","password":"hunter22","confirmPassword":"hunter22"}`))
	rec := httptest.NewRecorder()
	h.Register()(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogoutExpiresSessionCookie(t *testing.T) {
	h, _ := authFixture(t)

	rec := httptest.NewRecorder()
	h.Logout()(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}
