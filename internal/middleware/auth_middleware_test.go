package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/pkg/auth"
)

func newTestRouter(jwtService *auth.JWTService, teacherOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("", m.JWTAuth())
	if teacherOnly {
		group.Use(m.TeacherRequired())
	}
	group.GET("/protected", func(c *gin.Context) {
		id, _ := PrincipalID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.Hex()})
	})
	return router
}

func issueToken(t *testing.T, svc *auth.JWTService, isTeacher bool) (string, primitive.ObjectID) {
	t.Helper()
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  "jiri.pap@gmail.com",
		IsTeacher: isTeacher,
	}
	token, _, err := svc.GenerateToken(user)
	require.NoError(t, err)
	return token, user.ID
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute})
	router := newTestRouter(svc, false)

	token, userID := issueToken(t, svc, false)
	w := request(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute})
	router := newTestRouter(svc, false)

	w := request(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute})
	router := newTestRouter(svc, false)

	w := request(router, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: -time.Minute})
	router := newTestRouter(svc, false)

	token, _ := issueToken(t, svc, false)
	w := request(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestTeacherRequired(t *testing.T) {
	svc := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Minute})
	router := newTestRouter(svc, true)

	studentToken, _ := issueToken(t, svc, false)
	w := request(router, "Bearer "+studentToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	teacherToken, _ := issueToken(t, svc, true)
	w = request(router, "Bearer "+teacherToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
