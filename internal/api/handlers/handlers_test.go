package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jophkins/lastshoot/cmd/middleware"
	"github.com/Jophkins/lastshoot/internal/api"
	"github.com/Jophkins/lastshoot/internal/api/handlers"
	"github.com/Jophkins/lastshoot/internal/configuration"
)

const (
	testUsername = "admin"
	testPassword = "correct horse battery staple"
	testSecret   = "test-jwt-secret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	middleware.InitAuth(testSecret)
	handlers.Configure(configuration.AuthConfig{
		AdminUsername: testUsername,
		PasswordHash:  string(hash),
		JWTSecret:     testSecret,
	}, "https://cdn.example.com", zap.NewNop())

	os.Exit(m.Run())
}

func newRouter() *gin.Engine {
	r := gin.New()
	api.RegisterRoutes(r, zap.NewNop())
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": testUsername,
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLogin(t *testing.T) {
	r := newRouter()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		login(t, r)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": testUsername,
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	// A wrong username must be indistinguishable from a wrong password.
	t.Run("wrong username", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "someone-else",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("username of a different length", func(t *testing.T) {
		w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": testUsername + "x",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})
}

// Every state-mutating entry point answers the same 401 body before any
// pipeline logic runs.
func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newRouter()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/uploads/sign"},
		{http.MethodPost, "/api/photos/commit"},
		{http.MethodGet, "/api/photos"},
		{http.MethodPatch, "/api/photos/some-id"},
		{http.MethodPost, "/api/photos/some-id/delete"},
		{http.MethodPost, "/api/photos/some-id/restore"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := doJSON(r, rt.method, rt.path, "", gin.H{})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

			w = doJSON(r, rt.method, rt.path, "not-a-valid-token", gin.H{})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}

func TestSignUploadsValidation(t *testing.T) {
	r := newRouter()
	token := login(t, r)

	tooMany := make([]gin.H, 31)
	for i := range tooMany {
		tooMany[i] = gin.H{"filename": fmt.Sprintf("f%d.jpg", i), "contentType": "image/jpeg", "variant": "original"}
	}

	tests := []struct {
		name string
		body gin.H
	}{
		{"empty files", gin.H{"files": []gin.H{}}},
		{"missing files", gin.H{}},
		{"over batch limit", gin.H{"files": tooMany}},
		{"unknown variant", gin.H{"files": []gin.H{
			{"filename": "a.jpg", "contentType": "image/jpeg", "variant": "huge"},
		}}},
		{"missing content type", gin.H{"files": []gin.H{
			{"filename": "a.jpg", "variant": "original"},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/uploads/sign", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Invalid request", resp["error"])
			assert.NotEmpty(t, resp["details"])
		})
	}
}

func TestCommitPhotoValidation(t *testing.T) {
	r := newRouter()
	token := login(t, r)

	w := doJSON(r, http.MethodPost, "/api/photos/commit", token, gin.H{
		"previewKey": "preview/b1.jpg",
		"thumbKey":   "thumb/b1.jpg",
		// originalKey missing
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request", resp["error"])
}
