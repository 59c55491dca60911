package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"seaside_restaurant/internal/apperror"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/pkg/mailer"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	resetTokenLength  = 50
	tokenAlphabet     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type SignUpInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// ForgotPasswordResult is returned for every well-formed request. Token and
// Link are only set when the reset mail could not be delivered.
type ForgotPasswordResult struct {
	Sent  bool
	Token string
	Link  string
}

// Throttle limits repeated actions per key. Implemented by internal/redis.
type Throttle interface {
	Allow(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type AuthSettings struct {
	SiteURL       string
	ResetTokenTTL time.Duration
	ResetThrottle time.Duration
}

type UserService interface {
	SignUp(input SignUpInput) (*models.User, *models.Customer, error)
	CreateAdmin(input SignUpInput) (*models.User, error)
	Login(identifier, password string) (*models.User, *models.Customer, error)
	OwnerLogin(identifier, password string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error)
	ResetPassword(token, newPassword string) error
	ChangePassword(userID uint, currentPassword, newPassword string) error
	GetUserByUsername(username string) (*models.User, error)
	CreateUser(user *models.User, password string) error
}

type userService struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	resetRepo    repository.PasswordResetRepository
	mail         mailer.Mailer
	throttle     Throttle
	settings     AuthSettings
	log          *slog.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	resetRepo repository.PasswordResetRepository,
	mail mailer.Mailer,
	throttle Throttle,
	settings AuthSettings,
	log *slog.Logger,
) UserService {
	if settings.ResetTokenTTL == 0 {
		settings.ResetTokenTTL = time.Hour
	}
	return &userService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		resetRepo:    resetRepo,
		mail:         mail,
		throttle:     throttle,
		settings:     settings,
		log:          log,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *userService) CreateUser(user *models.User, password string) error {
	hashed, err := hashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userRepo.Create(user)
}

func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	return s.userRepo.GetByUsername(username)
}

func requireFields(fields []string, values map[string]string) error {
	for _, field := range fields {
		if values[field] == "" {
			return apperror.Invalid("%s is required", field)
		}
	}
	return nil
}

// validateAccount runs the checks shared by customer signup and admin creation.
func (s *userService) validateAccount(input *SignUpInput, checkPhone bool) error {
	err := requireFields(
		[]string{"email", "password", "first_name", "last_name", "phone"},
		map[string]string{
			"email":      input.Email,
			"password":   input.Password,
			"first_name": input.FirstName,
			"last_name":  input.LastName,
			"phone":      input.Phone,
		},
	)
	if err != nil {
		return err
	}

	if input.Username == "" {
		input.Username = input.FirstName + " " + input.LastName
	}

	if !validEmail(input.Email) {
		return apperror.Invalid("Invalid email format")
	}
	if len(input.Password) < minPasswordLength {
		return apperror.Invalid("Password must be at least 6 characters long")
	}

	if checkPhone {
		if !allDigits(input.Phone) {
			return apperror.Invalid("Phone number must contain digits only")
		}
		if len(input.Phone) != 10 {
			return apperror.Invalid("Phone number must be exactly 10 digits")
		}
	}

	exists, err := s.userRepo.UsernameExists(input.Username)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Duplicate("Username already exists")
	}

	exists, err = s.userRepo.EmailExists(input.Email)
	if err != nil {
		return err
	}
	if exists {
		return apperror.Duplicate("Email already registered")
	}
	return nil
}

func (s *userService) SignUp(input SignUpInput) (*models.User, *models.Customer, error) {
	if err := s.validateAccount(&input, true); err != nil {
		return nil, nil, err
	}

	user := &models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsActive:  1,
	}
	if err := s.CreateUser(user, input.Password); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	customer := &models.Customer{
		UserID:  &user.ID,
		Name:    user.FullName(),
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.log.Info("user registered", "user_id", user.ID, "customer_id", customer.ID)
	return user, customer, nil
}

func (s *userService) CreateAdmin(input SignUpInput) (*models.User, error) {
	if err := s.validateAccount(&input, false); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:    input.Username,
		Email:       input.Email,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		IsActive:    1,
		IsStaff:     1,
		IsSuperuser: 1,
	}
	if err := s.CreateUser(user, input.Password); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("admin registered", "user_id", user.ID)
	return user, nil
}

// authenticate looks the user up by email when identifier contains "@" and by
// username otherwise, then checks the password.
func (s *userService) authenticate(identifier, password string) (*models.User, bool, error) {
	if identifier == "" || password == "" {
		return nil, false, apperror.Invalid("Username and password are required")
	}

	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.userRepo.GetByEmail(identifier)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperror.Denied("Invalid email or password")
		}
	} else {
		user, err = s.userRepo.GetByUsername(identifier)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperror.Denied("Invalid username or password")
		}
	}
	if err != nil {
		return nil, false, err
	}

	return user, checkPassword(user.Password, password), nil
}

var errBadCredentials = apperror.Denied("Invalid username/email or password")

func (s *userService) Login(identifier, password string) (*models.User, *models.Customer, error) {
	user, ok, err := s.authenticate(identifier, password)
	if err != nil {
		return nil, nil, err
	}
	if !ok || !user.Active() {
		return nil, nil, errBadCredentials
	}

	customer, err := s.customerFor(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.TouchLastLogin(user.ID, time.Now().UTC()); err != nil {
		s.log.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}
	return user, customer, nil
}

// customerFor returns the profile linked to user, adopting a legacy profile
// with the same email or creating an empty one when none exists.
func (s *userService) customerFor(user *models.User) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByUserID(user.ID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer, err = s.customerRepo.GetByEmail(user.Email)
	switch {
	case err == nil:
		if customer.UserID == nil {
			if err := s.customerRepo.LinkUser(customer.ID, user.ID); err != nil {
				return nil, err
			}
			customer.UserID = &user.ID
		}
		return customer, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	customer = &models.Customer{
		UserID: &user.ID,
		Name:   user.FullName(),
		Email:  user.Email,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *userService) OwnerLogin(identifier, password string) (*models.User, error) {
	user, ok, err := s.authenticate(identifier, password)
	if err != nil {
		return nil, err
	}
	if !ok || !user.Owner() {
		s.log.Info("owner login refused", "user_id", user.ID, "password_ok", ok,
			"is_active", user.IsActive, "is_staff", user.IsStaff, "is_superuser", user.IsSuperuser)
		return nil, errBadCredentials
	}
	return user, nil
}

func generateToken(n int) (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = tokenAlphabet[idx.Int64()]
	}
	return string(b), nil
}

func (s *userService) ForgotPassword(ctx context.Context, email string) (*ForgotPasswordResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.Invalid("Email is required")
	}
	if !validEmail(email) {
		return nil, apperror.Invalid("Invalid email format")
	}

	if s.throttle != nil && s.settings.ResetThrottle > 0 {
		allowed, err := s.throttle.Allow(ctx, "forgot-password:"+email, s.settings.ResetThrottle)
		if err != nil {
			s.log.Warn("reset throttle unavailable", "error", err)
		} else if !allowed {
			return nil, apperror.New(apperror.TooManyRequests, "Please wait before requesting another reset email")
		}
	}

	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ForgotPasswordResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	token, err := generateToken(resetTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	if err := s.resetRepo.Create(&models.PasswordResetToken{UserID: user.ID, Token: token}); err != nil {
		return nil, fmt.Errorf("failed to save reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.settings.SiteURL, token)
	msg := mailer.Message{
		To:      []string{email},
		Subject: "Password Reset - Seaside Restaurant",
		TextBody: fmt.Sprintf(`Hi %s,

You requested to reset your password for your Seaside Restaurant account.

Click the link below to reset your password:
%s

This link will expire in %s.

If you didn't request this, please ignore this email.

Thanks,
Seaside Restaurant Team`, user.FirstName, link, humanDuration(s.settings.ResetTokenTTL)),
	}

	if err := s.mail.Send(ctx, msg); err != nil {
		s.log.Warn("reset email not sent, returning token to caller", "user_id", user.ID, "error", err)
		return &ForgotPasswordResult{Token: token, Link: link}, nil
	}
	return &ForgotPasswordResult{Sent: true}, nil
}

func humanDuration(d time.Duration) string {
	if d%time.Hour == 0 {
		if d == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", d/time.Hour)
	}
	return fmt.Sprintf("%d minutes", d/time.Minute)
}

func (s *userService) ResetPassword(token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperror.Invalid("Token and new password are required")
	}

	reset, err := s.resetRepo.GetUnused(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Invalid("Invalid or expired reset token")
	}
	if err != nil {
		return err
	}
	if reset.Expired(time.Now().UTC(), s.settings.ResetTokenTTL) {
		return apperror.Invalid("Reset token has expired")
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(reset.UserID, hashed); err != nil {
		return err
	}
	return s.resetRepo.MarkUsed(reset.ID)
}

func (s *userService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Denied("User not found")
	}
	if err != nil {
		return err
	}
	if !user.Active() {
		return apperror.Denied("User not found")
	}

	if !checkPassword(user.Password, currentPassword) {
		return apperror.Invalid("Current password is incorrect")
	}
	if len(newPassword) < minPasswordLength {
		return apperror.Invalid("New password must be at least 6 characters long")
	}
	if checkPassword(user.Password, newPassword) {
		return apperror.Invalid("New password must be different from current password")
	}

	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(user.ID, hashed)
}
