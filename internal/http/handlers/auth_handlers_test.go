package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
	"github.com/AI-Matrix-Zoo/smart-community-sub000/internal/mocks"
)

type handlerFixture struct {
	handlers        *AuthHandlers
	registrationSvc *mocks.MockRegistrationService
	authSvc         *mocks.MockAuthService
	cache           *mocks.MockVerificationCache
	notifier        *mocks.MockNotifier
}

func newFixture(t *testing.T, exposeCode bool) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &handlerFixture{
		registrationSvc: mocks.NewMockRegistrationService(),
		authSvc:         mocks.NewMockAuthService(),
		cache:           mocks.NewMockVerificationCache(),
		notifier:        mocks.NewMockNotifier(),
	}
	f.handlers = NewAuthHandlers(f.registrationSvc, f.authSvc, f.cache, f.notifier, t.TempDir(), exposeCode)
	return f
}

func performJSON(handler gin.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler(c)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestSendCode(t *testing.T) {
	t.Run("email identifier with exposed code", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.SendCode, http.MethodPost, "/auth/send-verification-code",
			gin.H{"identifier": "user@example.com", "type": "email"})

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, "482193", data["code"])

		require.Len(t, f.notifier.Sent, 1)
		assert.Equal(t, domain.IdentifierEmail, f.notifier.Sent[0].Kind)
		assert.Equal(t, "user@example.com", f.notifier.Sent[0].Recipient)
	})

	t.Run("code hidden when not exposed", func(t *testing.T) {
		f := newFixture(t, false)

		w := performJSON(f.handlers.SendCode, http.MethodPost, "/auth/send-verification-code",
			gin.H{"identifier": "user@example.com", "type": "email"})

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, w)
		assert.NotContains(t, data, "code")
	})

	t.Run("phone identifier routes to sms channel", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.SendCode, http.MethodPost, "/auth/send-verification-code",
			gin.H{"identifier": "13812345678", "type": "sms"})

		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, f.notifier.Sent, 1)
		assert.Equal(t, domain.IdentifierPhone, f.notifier.Sent[0].Kind)
	})

	t.Run("unclassifiable identifier", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.SendCode, http.MethodPost, "/auth/send-verification-code",
			gin.H{"identifier": "nonsense", "type": "email"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, f.notifier.Sent)
	})

	t.Run("delivery failure yields generic 500", func(t *testing.T) {
		f := newFixture(t, true)
		f.notifier.SendFunc = func(kind domain.IdentifierKind, recipient, code string) bool { return false }

		w := performJSON(f.handlers.SendCode, http.MethodPost, "/auth/send-verification-code",
			gin.H{"identifier": "user@example.com", "type": "email"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "smtp")
	})
}

func TestVerifyCode(t *testing.T) {
	t.Run("valid code", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.VerifyCode, http.MethodPost, "/auth/verify-code",
			gin.H{"identifier": "user@example.com", "code": "482193", "type": "email"})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong code", func(t *testing.T) {
		f := newFixture(t, true)
		f.cache.VerifyFunc = func(ctx context.Context, identifier, code string) bool { return false }

		w := performJSON(f.handlers.VerifyCode, http.MethodPost, "/auth/verify-code",
			gin.H{"identifier": "user@example.com", "code": "000000", "type": "email"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegister(t *testing.T) {
	t.Run("json success", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.Register, http.MethodPost, "/auth/register", gin.H{
			"name":             "张三",
			"building":         "3",
			"unit":             "2",
			"room":             "301",
			"password":         "secret123",
			"email":            "user@example.com",
			"verificationCode": "482193",
			"verificationType": "email",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, "mock-token", data["token"])

		user := data["user"].(map[string]any)
		assert.Equal(t, "3栋", user["building"])
		assert.Equal(t, "2单元", user["unit"])
		assert.NotContains(t, user, "password")
		assert.NotContains(t, user, "password_hash")

		assert.Equal(t, "482193", f.registrationSvc.LastInput.VerificationCode)
	})

	t.Run("room conflict reports field-specific reason", func(t *testing.T) {
		f := newFixture(t, true)
		f.registrationSvc.RegisterFunc = func(ctx context.Context, input domain.RegistrationInput) (*domain.AuthResult, error) {
			return nil, domain.ErrRoomTaken
		}

		w := performJSON(f.handlers.Register, http.MethodPost, "/auth/register", gin.H{
			"name": "张三", "building": "3", "unit": "2", "room": "301",
			"password": "secret123", "email": "user@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), domain.ErrRoomTaken.Error())
	})

	t.Run("internal error stays generic", func(t *testing.T) {
		f := newFixture(t, true)
		f.registrationSvc.RegisterFunc = func(ctx context.Context, input domain.RegistrationInput) (*domain.AuthResult, error) {
			return nil, context.DeadlineExceeded
		}

		w := performJSON(f.handlers.Register, http.MethodPost, "/auth/register", gin.H{
			"name": "张三", "building": "3", "unit": "2", "room": "301",
			"password": "secret123", "email": "user@example.com",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "deadline")
	})

	t.Run("binding failure", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.Register, http.MethodPost, "/auth/register", gin.H{
			"name": "张三",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t, true)
		f.authSvc.LoginFunc = func(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
			return &domain.AuthResult{
				User:  &domain.User{ID: "u1", Name: identifier, Role: domain.RoleUser, Phone: "13812345678"},
				Token: "session-token",
			}, nil
		}

		w := performJSON(f.handlers.Login, http.MethodPost, "/auth/login",
			gin.H{"identifier": "张三", "password": "secret123"})

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeData(t, w)
		assert.Equal(t, "session-token", data["token"])
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newFixture(t, true)

		w := performJSON(f.handlers.Login, http.MethodPost, "/auth/login",
			gin.H{"identifier": "ghost", "password": "secret123"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No account")
	})

	t.Run("wrong password distinguished from unknown user", func(t *testing.T) {
		f := newFixture(t, true)
		f.authSvc.LoginFunc = func(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		}

		w := performJSON(f.handlers.Login, http.MethodPost, "/auth/login",
			gin.H{"identifier": "张三", "password": "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Wrong password")
	})
}

func TestUserJSONHidesPlaceholderPhone(t *testing.T) {
	u := &domain.User{ID: "u1", Phone: "p_01HWABCDEF0123456789ABCDEF"}
	assert.Equal(t, "", userJSON(u)["phone"])

	u.Phone = "13812345678"
	assert.Equal(t, "13812345678", userJSON(u)["phone"])
}
