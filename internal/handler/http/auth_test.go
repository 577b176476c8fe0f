package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sanoneto/registro-horas/internal/logger"
	"github.com/sanoneto/registro-horas/internal/service"
	"github.com/sanoneto/registro-horas/internal/store"
	"github.com/sanoneto/registro-horas/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func decodeLoginResponse(t *testing.T, body []byte) models.LoginResponse {
	t.Helper()
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// ---- register ----

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m serviceMocks)
		wantStatus int
		wantMsg    string
		wantToken  string
	}{
		{
			name: "success",
			body: `{"username":"alice","password":"s3cret","role":"ESTAGIARIO"}`,
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Register(gomock.Any(), models.RegisterRequest{
					Username: "alice", Password: "s3cret", Role: "ESTAGIARIO",
				}).Return("tok-1", nil)
			},
			wantStatus: http.StatusOK,
			wantMsg:    "registration successful",
			wantToken:  "tok-1",
		},
		{
			name:       "invalid JSON",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidJSON,
		},
		{
			name:       "missing role",
			body:       `{"username":"alice","password":"s3cret"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blank username",
			body:       `{"username":"   ","password":"s3cret","role":"ADMIN"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "username taken",
			body: `{"username":"alice","password":"s3cret","role":"ADMIN"}`,
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return("", store.ErrUsernameTaken)
			},
			wantStatus: http.StatusBadRequest,
			wantMsg:    store.ErrUsernameTaken.Error(),
		},
		{
			name: "store unavailable",
			body: `{"username":"alice","password":"s3cret","role":"ADMIN"}`,
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Register(gomock.Any(), gomock.Any()).Return("", store.ErrStoreUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    http.StatusText(http.StatusServiceUnavailable),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			rec := doRequest(router, http.MethodPost, "/api/auth/register", tt.body, "")

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				resp := decodeLoginResponse(t, rec.Body.Bytes())
				assert.Equal(t, tt.wantMsg, resp.Message)
				assert.Equal(t, tt.wantToken, resp.Token)
				return
			}
			resp := decodeErrorResponse(t, rec)
			assert.Equal(t, tt.wantStatus, resp.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

// ---- login ----

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m serviceMocks)
		wantStatus int
		wantMsg    string
	}{
		{
			name: "success",
			body: `{"username":"alice","password":"s3cret"}`,
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "s3cret"}).
					Return("tok-1", nil)
			},
			wantStatus: http.StatusOK,
			wantMsg:    "login successful",
		},
		{
			name:       "invalid JSON",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgInvalidJSON,
		},
		{
			name:       "missing password",
			body:       `{"username":"alice"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "wrong credentials",
			body: `{"username":"alice","password":"nope"}`,
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", service.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			wantMsg:    service.ErrInvalidCredentials.Error(),
		},
		{
			name: "unexpected error hides details",
			body: `{"username":"alice","password":"s3cret"}`,
			setup: func(m serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return("", errors.New("pq: connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			rec := doRequest(router, http.MethodPost, "/api/auth/login", tt.body, "")

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				resp := decodeLoginResponse(t, rec.Body.Bytes())
				assert.Equal(t, tt.wantMsg, resp.Message)
				assert.Equal(t, "tok-1", resp.Token)
				return
			}
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, decodeErrorResponse(t, rec).Message)
			}
		})
	}
}

func TestLogin_InvalidBearerStillRejected(t *testing.T) {
	router, m := newTestRouter(t)
	m.auth.EXPECT().Authenticate(gomock.Any(), "stale").Return(models.Identity{}, service.ErrTokenRevoked)

	rec := doRequest(router, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"s3cret"}`, "stale")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, msgTokenRevoked, decodeErrorResponse(t, rec).Message)
}

// ---- logout ----

func TestLogout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, m := newTestRouter(t)
		identity := internIdentity()
		m.auth.EXPECT().Authenticate(gomock.Any(), identity.Token).Return(identity, nil)
		m.auth.EXPECT().Logout(gomock.Any(), identity).Return(nil)

		rec := doRequest(router, http.MethodPost, "/api/auth/logout", "", identity.Token)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"logged out"}`, rec.Body.String())
	})

	t.Run("service error", func(t *testing.T) {
		router, m := newTestRouter(t)
		identity := internIdentity()
		m.auth.EXPECT().Authenticate(gomock.Any(), identity.Token).Return(identity, nil)
		m.auth.EXPECT().Logout(gomock.Any(), identity).Return(store.ErrStoreUnavailable)

		rec := doRequest(router, http.MethodPost, "/api/auth/logout", "", identity.Token)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("handler without identity", func(t *testing.T) {
		svcs, _ := newServiceMocks(t)
		h := NewHandler(svcs, logger.Nop())
		rec := doRequest(http.HandlerFunc(h.logout), http.MethodPost, "/api/auth/logout", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, ErrNoIdentity.Error(), decodeErrorResponse(t, rec).Message)
	})
}

func TestLogoutAll(t *testing.T) {
	router, m := newTestRouter(t)
	identity := internIdentity()
	m.auth.EXPECT().Authenticate(gomock.Any(), identity.Token).Return(identity, nil)
	m.auth.EXPECT().LogoutAll(gomock.Any(), identity).Return(3, nil)

	rec := doRequest(router, http.MethodPost, "/api/auth/logout-all", "", identity.Token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"revoked 3 tokens"}`, rec.Body.String())
}

// ---- me ----

func TestMe(t *testing.T) {
	router, m := newTestRouter(t)
	identity := adminIdentity()
	identity.PublicID = uuid.MustParse("0192f3a4-0000-7000-8000-000000000002")
	m.auth.EXPECT().Authenticate(gomock.Any(), identity.Token).Return(identity, nil)

	rec := doRequest(router, http.MethodGet, "/api/auth/me", "", identity.Token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"public_id": "0192f3a4-0000-7000-8000-000000000002",
		"username": "root",
		"role": "ADMIN",
		"authorities": ["ROLE_ADMIN"]
	}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), identity.Token)
}
