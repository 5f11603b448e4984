package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNeverExposesPasswordHash(t *testing.T) {
	env := setupTestEnv(t)
	result, err := env.auth.Register(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "  Ada@Example.com ",
		Phone:    "555-0101",
		Address:  "2 Loop Rd",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", result.User.Email)
	assert.Equal(t, constants.UserStatusActive, result.User.Status)
	assert.False(t, result.User.MemberSince.IsZero())
	assert.NotEqual(t, "secret123", result.User.PasswordHash)

	raw, err := json.Marshal(result.User)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password_hash")
	assert.NotContains(t, fields, "PasswordHash")
	assert.NotContains(t, fields, "password")

	assert.Equal(t, TokenTypeBearer, result.Session.TokenType)
	assert.Equal(t, 168*time.Hour, result.Session.ExpiresAt.Sub(result.Session.IssuedAt))
}

func TestRegisterDuplicateEmailAnyCase(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "dup@example.com")

	_, err := env.auth.Register(context.Background(), RegisterInput{
		Name: "Dup", Email: "DUP@Example.COM", Phone: "1", Address: "x", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Equal(t, int64(1), countRows(t, env.db, &models.User{}))
}

func TestRegisterValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Phone: " ", Address: "x", Password: "secret123"})
	assert.ErrorIs(t, err, ErrFieldsRequired)

	_, err = env.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@example.com", Phone: "1", Address: "x", Password: "12345"})
	assert.ErrorIs(t, err, ErrWeakPassword)
	var policyErr PasswordPolicyError
	require.True(t, errors.As(err, &policyErr))
	assert.Equal(t, "error.password_min_length", policyErr.Key())
	assert.Equal(t, []interface{}{6}, policyErr.Args())

	_, err = env.auth.Register(ctx, RegisterInput{Name: "A", Email: "not-an-email", Phone: "1", Address: "x", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestLoginDoesNotDistinguishUnknownEmailFromWrongPassword(t *testing.T) {
	env := setupTestEnv(t)
	env.registerUser(t, "known@example.com")
	ctx := context.Background()

	_, wrongPassword := env.auth.Login(ctx, "known@example.com", "not-the-password")
	_, unknownEmail := env.auth.Login(ctx, "ghost@example.com", "secret123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	_, err := env.auth.Login(ctx, "", "secret123")
	assert.ErrorIs(t, err, ErrLoginFieldsRequired)
}

func TestLoginIssuesSessionAndTouchesLastLogin(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "login@example.com")

	result, err := env.auth.Login(context.Background(), "LOGIN@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, result.User.LastLoginAt)

	claims, err := env.auth.ParseUserJWT(result.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "login@example.com", claims.Email)
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "disabled@example.com")
	require.NoError(t, env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error)

	result, err := env.auth.Login(context.Background(), "disabled@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserDisabled)
	require.NotNil(t, result)
	assert.Empty(t, result.Session.Token)
}

func TestParseUserJWTRejectsTamperedTokens(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "jwt@example.com")

	session, err := env.auth.IssueSession(user)
	require.NoError(t, err)

	_, err = ParseUserJWT("another-secret-another-secret-00", session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseUserJWT(testSecret, expiredToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, UserJWTClaims{UserID: user.ID})
	hs512Token, err := hs512.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseUserJWT(testSecret, hs512Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseUserJWT("", session.Token)
	assert.ErrorIs(t, err, ErrTokenSecretMissing)
}

func TestIssueSessionRequiresSecret(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "nosecret@example.com")
	env.cfg.UserJWT.SecretKey = ""

	_, err := env.auth.IssueSession(user)
	assert.ErrorIs(t, err, ErrTokenSecretMissing)
}

func TestUpdateProfileEmailUniqueness(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	alice := env.registerUser(t, "alice@example.com")
	env.registerUser(t, "bob@example.com")

	updated, err := env.auth.UpdateProfile(ctx, alice.ID, UpdateProfileInput{
		Name: "Alice B", Email: "ALICE@example.com", Phone: "555", Address: "3 New St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = env.auth.UpdateProfile(ctx, alice.ID, UpdateProfileInput{
		Name: "Alice", Email: "Bob@example.com", Phone: "555", Address: "x",
	})
	assert.ErrorIs(t, err, ErrEmailExists)

	_, err = env.auth.UpdateProfile(ctx, alice.ID, UpdateProfileInput{Name: "Alice", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrFieldsRequired)

	_, err = env.auth.UpdateProfile(ctx, 9999, UpdateProfileInput{
		Name: "Nobody", Email: "nobody@example.com", Phone: "1", Address: "x",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByIDMissing(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.auth.GetUserByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.registerUser(t, "pw@example.com")

	assert.ErrorIs(t, env.auth.ChangePassword(ctx, user.ID, "wrong-old", "newpass1"), ErrPasswordMismatch)
	assert.ErrorIs(t, env.auth.ChangePassword(ctx, user.ID, "secret123", "123"), ErrWeakPassword)
	require.NoError(t, env.auth.ChangePassword(ctx, user.ID, "secret123", "newpass1"))

	_, err := env.auth.Login(ctx, "pw@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "pw@example.com", "newpass1")
	assert.NoError(t, err)
}
