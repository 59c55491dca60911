package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"seaside_restaurant/internal/apperror"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type userFixture struct {
	db       *gorm.DB
	service  UserService
	mail     *fakeMailer
	throttle *fakeThrottle
}

func newUserFixture(t *testing.T) *userFixture {
	db := testDB(t)
	mail := &fakeMailer{}
	throttle := &fakeThrottle{}
	service := NewUserService(
		repository.NewUserRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewPasswordResetRepository(db),
		mail,
		throttle,
		AuthSettings{SiteURL: "https://seaside.example", ResetTokenTTL: time.Hour, ResetThrottle: time.Minute},
		testLogger(),
	)
	return &userFixture{db: db, service: service, mail: mail, throttle: throttle}
}

func validSignUp() SignUpInput {
	return SignUpInput{
		Email:     "anil@example.com",
		Password:  "secret1",
		FirstName: "Anil",
		LastName:  "Menon",
		Phone:     "9876543210",
		Address:   "Marine Drive",
	}
}

func TestSignUp(t *testing.T) {
	f := newUserFixture(t)

	user, customer, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)
	assert.Equal(t, "Anil Menon", user.Username, "username defaults to the full name")
	assert.NotEqual(t, "secret1", user.Password)
	assert.True(t, user.Active())
	require.NotNil(t, customer.UserID)
	assert.Equal(t, user.ID, *customer.UserID)
	assert.Equal(t, "Anil Menon", customer.Name)
	assert.Equal(t, "9876543210", customer.Phone)
}

func TestSignUp_Validation(t *testing.T) {
	f := newUserFixture(t)
	_, _, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(*SignUpInput)
		message string
	}{
		{"missing email", func(in *SignUpInput) { in.Email = "" }, "email is required"},
		{"missing phone", func(in *SignUpInput) { in.Phone = "" }, "phone is required"},
		{"bad email", func(in *SignUpInput) { in.Email = "anil@" }, "Invalid email format"},
		{"short password", func(in *SignUpInput) { in.Password = "abc" }, "Password must be at least 6 characters long"},
		{"phone with letters", func(in *SignUpInput) { in.Phone = "98765abcde" }, "Phone number must contain digits only"},
		{"short phone", func(in *SignUpInput) { in.Phone = "98765" }, "Phone number must be exactly 10 digits"},
		{"taken username", func(in *SignUpInput) { in.Email = "other@example.com" }, "Username already exists"},
		{"taken email", func(in *SignUpInput) { in.Username = "anil2" }, "Email already registered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSignUp()
			tt.mutate(&input)
			_, _, err := f.service.SignUp(input)
			require.Error(t, err)
			appErr, ok := apperror.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, 400, appErr.HTTPStatus())
		})
	}
}

func TestLogin(t *testing.T) {
	f := newUserFixture(t)
	user, signedUp, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)

	got, customer, err := f.service.Login("anil@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, signedUp.ID, customer.ID)

	_, _, err = f.service.Login("Anil Menon", "secret1")
	require.NoError(t, err)

	stored, err := repository.NewUserRepository(f.db).GetByID(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)

	_, _, err = f.service.Login("anil@example.com", "wrong-pass")
	assertKind(t, err, apperror.Unauthorized, "Invalid username/email or password")

	_, _, err = f.service.Login("nobody@example.com", "secret1")
	assertKind(t, err, apperror.Unauthorized, "Invalid email or password")

	_, _, err = f.service.Login("nobody", "secret1")
	assertKind(t, err, apperror.Unauthorized, "Invalid username or password")

	_, _, err = f.service.Login("", "")
	assertKind(t, err, apperror.Validation, "Username and password are required")
}

func TestLogin_CreatesMissingProfile(t *testing.T) {
	f := newUserFixture(t)

	legacy := &models.Customer{Name: "Legacy", Email: "legacy@example.com", Phone: "9000000000"}
	require.NoError(t, f.db.Create(legacy).Error)

	users := repository.NewUserRepository(f.db)
	for _, u := range []*models.User{
		{Username: "legacy", Email: "legacy@example.com", FirstName: "Old", LastName: "Timer", IsActive: 1},
		{Username: "fresh", Email: "fresh@example.com", FirstName: "New", LastName: "Comer", IsActive: 1},
	} {
		hash, err := hashPassword("secret1")
		require.NoError(t, err)
		u.Password = hash
		require.NoError(t, users.Create(u))
	}

	_, customer, err := f.service.Login("legacy", "secret1")
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, customer.ID, "profile with the same email is adopted")
	require.NotNil(t, customer.UserID)

	_, customer, err = f.service.Login("fresh", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "New Comer", customer.Name)

	_, again, err := f.service.Login("fresh", "secret1")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, again.ID)
}

func TestLogin_InactiveUser(t *testing.T) {
	f := newUserFixture(t)
	user, _, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)
	require.NoError(t, f.db.Model(user).Update("is_active", 0).Error)

	_, _, err = f.service.Login("anil@example.com", "secret1")
	assertKind(t, err, apperror.Unauthorized, "Invalid username/email or password")
}

func TestOwnerLogin(t *testing.T) {
	f := newUserFixture(t)

	admin := validSignUp()
	admin.Username = "owner"
	admin.Email = "owner@example.com"
	admin.Phone = "n/a"
	created, err := f.service.CreateAdmin(admin)
	require.NoError(t, err)
	assert.True(t, created.Owner())

	_, _, err = f.service.SignUp(validSignUp())
	require.NoError(t, err)

	user, err := f.service.OwnerLogin("owner", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = f.service.OwnerLogin("anil@example.com", "secret1")
	assertKind(t, err, apperror.Unauthorized, "Invalid username/email or password")
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newUserFixture(t)
	user, _, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)
	ctx := context.Background()

	result, err := f.service.ForgotPassword(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Empty(t, result.Token)

	result, err = f.service.ForgotPassword(ctx, "anil@example.com")
	require.NoError(t, err)
	assert.True(t, result.Sent)
	require.Len(t, f.mail.sent, 1)
	msg := f.mail.sent[0]
	assert.Equal(t, "Password Reset - Seaside Restaurant", msg.Subject)
	assert.Contains(t, msg.TextBody, "This link will expire in 1 hour.")

	idx := strings.Index(msg.TextBody, "token=")
	require.Positive(t, idx)
	token := strings.Fields(msg.TextBody[idx+len("token="):])[0]
	assert.Len(t, token, 50)
	assert.Contains(t, msg.TextBody, "https://seaside.example/reset-password?token="+token)

	_, err = f.service.ForgotPassword(ctx, "ANIL@example.com")
	assertKind(t, err, apperror.TooManyRequests, "Please wait before requesting another reset email")

	require.NoError(t, f.service.ResetPassword(token, "newsecret"))
	_, _, err = f.service.Login("anil@example.com", "newsecret")
	require.NoError(t, err)

	err = f.service.ResetPassword(token, "another1")
	assertKind(t, err, apperror.Validation, "Invalid or expired reset token")

	expired := &models.PasswordResetToken{UserID: user.ID, Token: "stale-token"}
	require.NoError(t, f.db.Create(expired).Error)
	require.NoError(t, f.db.Model(expired).Update("created_at", time.Now().UTC().Add(-2*time.Hour)).Error)
	err = f.service.ResetPassword("stale-token", "another1")
	assertKind(t, err, apperror.Validation, "Reset token has expired")
}

func TestForgotPassword_MailFailureReturnsToken(t *testing.T) {
	f := newUserFixture(t)
	f.mail.err = errors.New("ses unavailable")
	_, _, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)

	result, err := f.service.ForgotPassword(context.Background(), "anil@example.com")
	require.NoError(t, err)
	assert.False(t, result.Sent)
	assert.Len(t, result.Token, 50)
	assert.Equal(t, "https://seaside.example/reset-password?token="+result.Token, result.Link)

	_, err = f.service.ForgotPassword(context.Background(), "not-an-email")
	assertKind(t, err, apperror.Validation, "Invalid email format")
}

func TestChangePassword(t *testing.T) {
	f := newUserFixture(t)
	user, _, err := f.service.SignUp(validSignUp())
	require.NoError(t, err)

	assertKind(t, f.service.ChangePassword(user.ID, "wrong", "newsecret"), apperror.Validation, "Current password is incorrect")
	assertKind(t, f.service.ChangePassword(user.ID, "secret1", "abc"), apperror.Validation, "New password must be at least 6 characters long")
	assertKind(t, f.service.ChangePassword(user.ID, "secret1", "secret1"), apperror.Validation, "New password must be different from current password")
	assertKind(t, f.service.ChangePassword(999, "secret1", "newsecret"), apperror.Unauthorized, "User not found")

	require.NoError(t, f.service.ChangePassword(user.ID, "secret1", "newsecret"))
	_, _, err = f.service.Login("anil@example.com", "newsecret")
	require.NoError(t, err)
}

func TestHumanDuration(t *testing.T) {
	assert.Equal(t, "1 hour", humanDuration(time.Hour))
	assert.Equal(t, "2 hours", humanDuration(2*time.Hour))
	assert.Equal(t, "30 minutes", humanDuration(30*time.Minute))
}
