package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jiripapousek/classwall/internal/app/models"
	"github.com/jiripapousek/classwall/internal/app/models/dto"
	"github.com/jiripapousek/classwall/internal/pkg/apperrors"
	pkgAuth "github.com/jiripapousek/classwall/internal/pkg/auth"
)

type recordingNotifier struct {
	mu        sync.Mutex
	usernames []string
	delivered chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{delivered: make(chan struct{}, 8)}
}

func (n *recordingNotifier) NotifyFailedLogin(_ context.Context, username string) error {
	n.mu.Lock()
	n.usernames = append(n.usernames, username)
	n.mu.Unlock()
	n.delivered <- struct{}{}
	return nil
}

func (n *recordingNotifier) recorded() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.usernames...)
}

func newTestJWTService() *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 30 * time.Minute,
		TokenIssuer:    "test",
	})
}

func seedUser(t *testing.T, users *fakeUserStore, username, password string, isTeacher bool) *models.User {
	t.Helper()
	hashed, err := pkgAuth.HashPassword(password)
	require.NoError(t, err)
	return users.add(&models.User{
		Username:       username,
		HashedPassword: hashed,
		IsTeacher:      isTeacher,
	})
}

func TestLoginIssuesToken(t *testing.T) {
	users := newFakeUserStore()
	notifier := newRecordingNotifier()
	svc := NewAuthService(users, newTestJWTService(), notifier, zerolog.Nop())

	seedUser(t, users, "jiri.pap@gmail.com", "correct-password", false)

	token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jiri.pap@gmail.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int((30 * time.Minute).Seconds()), token.ExpiresIn)
	assert.Empty(t, notifier.recorded())
}

func TestLoginWrongPasswordNotifies(t *testing.T) {
	users := newFakeUserStore()
	notifier := newRecordingNotifier()
	svc := NewAuthService(users, newTestJWTService(), notifier, zerolog.Nop())

	seedUser(t, users, "jiri.pap@gmail.com", "correct-password", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "jiri.pap@gmail.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	select {
	case <-notifier.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("failed-login notification was not delivered")
	}
	assert.Equal(t, []string{"jiri.pap@gmail.com"}, notifier.recorded())
}

func TestLoginUnknownUserDoesNotNotify(t *testing.T) {
	users := newFakeUserStore()
	notifier := newRecordingNotifier()
	svc := NewAuthService(users, newTestJWTService(), notifier, zerolog.Nop())

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody@example.com",
		Password: "whatever",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Only attempts against existing accounts are reported
	select {
	case <-notifier.delivered:
		t.Fatal("notification delivered for unknown username")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, newTestJWTService(), newRecordingNotifier(), zerolog.Nop())

	info, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:  "new.user@mail.muni.cz",
		Password:  "s3cr3tpassw0rd",
		IsTeacher: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "new.user@mail.muni.cz", info.Username)
	assert.True(t, info.IsTeacher)
	assert.Empty(t, info.ClassIDs)
	assert.Empty(t, info.CourseIDs)

	// The stored credential is a hash, never the password itself
	stored, err := users.FindByUsername(context.Background(), "new.user@mail.muni.cz")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cr3tpassw0rd", stored.HashedPassword)
	assert.True(t, pkgAuth.CheckPassword(stored.HashedPassword, "s3cr3tpassw0rd"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, newTestJWTService(), newRecordingNotifier(), zerolog.Nop())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "taken@mail.muni.cz",
		Password: "s3cr3tpassw0rd",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "taken@mail.muni.cz",
		Password: "otherpassword1",
	})
	require.ErrorIs(t, err, apperrors.ErrUsernameTaken)
}

func TestGetUserInfo(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, newTestJWTService(), newRecordingNotifier(), zerolog.Nop())

	classID := primitive.NewObjectID()
	user := users.add(&models.User{
		Username: "jiri.pap@gmail.com",
		ClassIDs: []primitive.ObjectID{classID},
	})

	info, err := svc.GetUserInfo(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), info.ID)
	assert.Equal(t, []string{classID.Hex()}, info.ClassIDs)
}
