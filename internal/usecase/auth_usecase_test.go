package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"soukly/internal/domain/entity"
	"soukly/pkg/errors"
)

func newAuthFixture(t *testing.T) (*AuthUseCase, *memUserRepo, *fakeAuthProvider, *fakePendingCache, *fakeMailer) {
	t.Helper()
	users := newMemUserRepo()
	provider := newFakeAuthProvider()
	cache := newFakePendingCache()
	mailer := &fakeMailer{}
	uc := NewAuthUseCase(users, provider, cache, mailer, "test-secret")
	return uc, users, provider, cache, mailer
}

func TestRegisterParksPendingRecord(t *testing.T) {
	uc, users, _, cache, mailer := newAuthFixture(t)

	user, err := uc.Register(context.Background(), RegisterInput{
		Name: "Nour", Email: "nour@example.com", Mobile: "+201000000001", Password: "hunter2secret",
	})
	require.NoError(t, err)

	// Provisional only: cached, mailed, not yet in the user store.
	assert.Contains(t, cache.entries, user.ID)
	assert.Equal(t, []string{"nour@example.com"}, mailer.sent)
	_, err = users.GetByID(context.Background(), user.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// Password is stored hashed, never plain.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2secret")))
}

func TestRegisterConflictLeavesNoCacheEntry(t *testing.T) {
	uc, _, provider, cache, _ := newAuthFixture(t)
	provider.existingEmails["taken@example.com"] = true

	_, err := uc.Register(context.Background(), RegisterInput{
		Name: "X", Email: "taken@example.com", Mobile: "+201000000002", Password: "password123",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
	assert.Empty(t, cache.entries)
}

func TestVerifyEmailPromotesCachedRecord(t *testing.T) {
	uc, users, _, cache, _ := newAuthFixture(t)

	registered, err := uc.Register(context.Background(), RegisterInput{
		Name: "Nour", Email: "nour@example.com", Mobile: "+201000000001", Password: "hunter2secret",
	})
	require.NoError(t, err)

	promoted, err := uc.VerifyEmail(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, promoted.Email)

	stored, err := users.GetByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, stored.Role)
	assert.Empty(t, cache.entries, "cache entry removed after promotion")

	// Clicking an expired or unknown link fails.
	_, err = uc.VerifyEmail(context.Background(), "never-registered")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func seedPhoneUser(t *testing.T, users *memUserRepo, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		ID:           "uid-phone",
		Mobile:       "+201000000009",
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestLoginWithPhoneLockout(t *testing.T) {
	uc, users, _, _, _ := newAuthFixture(t)
	user := seedPhoneUser(t, users, "correct-horse")

	for i := 0; i < 3; i++ {
		_, err := uc.LoginWithPhone(context.Background(), user.Mobile, "wrong")
		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	}

	// Third failure trips the lock; even the right password is refused.
	_, err := uc.LoginWithPhone(context.Background(), user.Mobile, "correct-horse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Too many failed attempts")

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.FailedLoginCount)
	require.NotNil(t, stored.LastFailedLogin)
}

func TestLoginWithPhoneLockExpiry(t *testing.T) {
	uc, users, _, _, _ := newAuthFixture(t)
	user := seedPhoneUser(t, users, "correct-horse")

	past := time.Now().Add(-11 * time.Minute)
	user.FailedLoginCount = 3
	user.LastFailedLogin = &past
	require.NoError(t, users.Update(context.Background(), user))

	result, err := uc.LoginWithPhone(context.Background(), user.Mobile, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	// An elapsed cooldown zeroes the counter before credentials are checked.
	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.FailedLoginCount)
	assert.Nil(t, stored.LastFailedLogin)
}

func TestLockExpiryStartsFreshStrikeWindow(t *testing.T) {
	uc, users, _, _, _ := newAuthFixture(t)
	user := seedPhoneUser(t, users, "correct-horse")

	past := time.Now().Add(-11 * time.Minute)
	user.FailedLoginCount = 3
	user.LastFailedLogin = &past
	require.NoError(t, users.Update(context.Background(), user))

	// One failure after the window opens a new window, it does not re-lock.
	_, err := uc.LoginWithPhone(context.Background(), user.Mobile, "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.FailedLoginCount)

	result, err := uc.LoginWithPhone(context.Background(), user.Mobile, "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLoginSuccessKeepsFailureCount(t *testing.T) {
	uc, users, _, _, _ := newAuthFixture(t)
	user := seedPhoneUser(t, users, "correct-horse")

	for i := 0; i < 2; i++ {
		_, err := uc.LoginWithPhone(context.Background(), user.Mobile, "wrong")
		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	}

	_, err := uc.LoginWithPhone(context.Background(), user.Mobile, "correct-horse")
	require.NoError(t, err)

	// Below the lockout threshold a successful login leaves the count alone.
	stored, err := users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.FailedLoginCount)
}

func TestLoginLockedRemainingMinutes(t *testing.T) {
	recent := time.Now().Add(-9*time.Minute - 30*time.Second)
	user := &entity.User{FailedLoginCount: 3, LastFailedLogin: &recent}

	locked, remaining := loginLocked(user, time.Now())
	assert.True(t, locked)
	assert.Equal(t, 1, remaining, "partial minutes round up")

	fresh := time.Now().Add(-time.Second)
	user.LastFailedLogin = &fresh
	locked, remaining = loginLocked(user, time.Now())
	assert.True(t, locked)
	assert.Equal(t, 10, remaining)

	user.FailedLoginCount = 2
	locked, _ = loginLocked(user, time.Now())
	assert.False(t, locked, "below the threshold there is no lock")
}

func TestPhoneTokenRoundTrip(t *testing.T) {
	uc, users, _, _, _ := newAuthFixture(t)
	user := seedPhoneUser(t, users, "correct-horse")

	result, err := uc.LoginWithPhone(context.Background(), user.Mobile, "correct-horse")
	require.NoError(t, err)

	uid, err := uc.VerifyPhoneToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, uid)

	_, err = uc.VerifyPhoneToken("not-a-jwt")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginWithEmailUnverified(t *testing.T) {
	uc, users, _, _, _ := newAuthFixture(t)
	require.NoError(t, users.Create(context.Background(), &entity.User{ID: "uid-1", Email: "a@example.com"}))

	_, err := uc.LoginWithEmail(context.Background(), "a@example.com", "pw")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginWithEmailTwoFactorGate(t *testing.T) {
	uc, users, provider, _, _ := newAuthFixture(t)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: "uid-2fa", Email: "two@example.com", IsTwoFactorAuth: true,
	}))
	provider.verifiedUIDs["uid-2fa"] = true

	result, err := uc.LoginWithEmail(context.Background(), "two@example.com", "pw")
	require.NoError(t, err)

	// No session yet: the caller must finish the TOTP step.
	assert.True(t, result.TwoFactorRequired)
	assert.Empty(t, result.IDToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "uid-2fa", result.UserID)
}

func TestLoginWithEmailIssuesSession(t *testing.T) {
	uc, users, provider, _, _ := newAuthFixture(t)
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: "uid-plain", Email: "plain@example.com",
	}))
	provider.verifiedUIDs["uid-plain"] = true

	result, err := uc.LoginWithEmail(context.Background(), "plain@example.com", "pw")
	require.NoError(t, err)
	assert.False(t, result.TwoFactorRequired)
	assert.NotEmpty(t, result.IDToken)
	assert.NotEmpty(t, result.RefreshToken)
}
