package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bhashaconnect/internal/db"
	"bhashaconnect/internal/domain"
	"bhashaconnect/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// testEnvelope mirrors the response envelope for assertions
type testEnvelope struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
	Errors  []string                   `json:"errors"`
}

// setupTest builds an in-memory database and a fully wired router.
// The single-connection pool keeps every query on the same :memory: DB.
func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	conn, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(conn))

	r := gin.New()
	RegisterRoutes(r, conn, nil, testSecret)
	return conn, r
}

// createUser inserts a user directly and returns it with a signed token
func createUser(t *testing.T, conn *gorm.DB, name, email, role string) (domain.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := domain.User{Name: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, conn.Create(&user).Error)
	token, err := utils.GenerateJWT(user.ID, user.Role, testSecret)
	require.NoError(t, err)
	return user, token
}

// doJSON performs one request against the router and returns the recorder
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeEnvelope parses the uniform response body
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// unmarshalData decodes one key of the envelope's data object
func unmarshalData(t *testing.T, env testEnvelope, key string, dest any) {
	t.Helper()
	raw, ok := env.Data[key]
	require.True(t, ok, "missing data key %q", key)
	require.NoError(t, json.Unmarshal(raw, dest))
}

// validJob returns a payload passing every job constraint
func validJob() gin.H {
	return gin.H{
		"title":       "Dev",
		"description": "1234567890",
		"category":    "Tech",
		"location":    "Pune",
		"language":    "English",
	}
}
