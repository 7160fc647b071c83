package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/backend/logging"
	"taskboard/backend/models"
	"taskboard/backend/repositories"
	"taskboard/backend/utils"
)

type UserService struct {
	Users          repositories.UserRepository
	Teams          repositories.TeamRepository
	HTTPClient     *http.Client
	CaptchaBreaker *gobreaker.CircuitBreaker
}

func NewUserService(users repositories.UserRepository, teams repositories.TeamRepository, httpClient *http.Client, captchaBreaker *gobreaker.CircuitBreaker) *UserService {
	return &UserService{
		Users:          users,
		Teams:          teams,
		HTTPClient:     httpClient,
		CaptchaBreaker: captchaBreaker,
	}
}

func validateCredentials(email, password string) bool {
	if len(email) < 5 || len(email) > 100 {
		return false
	}
	if len(password) < 6 || len(password) > 72 {
		return false
	}
	return true
}

// Register stores a new user with a hashed password. When a captcha
// token is supplied it is verified through the circuit breaker before
// anything is written.
func (s *UserService) Register(ctx context.Context, name, email, password, captchaToken string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !validateCredentials(email, password) {
		return nil, fmt.Errorf("%w: invalid credentials format", ErrValidation)
	}

	if captchaToken != "" {
		ok, err := s.verifyCaptcha(captchaToken)
		if err != nil {
			return nil, fmt.Errorf("captcha verification unavailable: %v", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: captcha verification failed", ErrValidation)
		}
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     html.EscapeString(name),
		Email:    email,
		Password: hashed,
	}
	if err := s.Users.Insert(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user with this email already exists", ErrConflict)
		}
		return nil, err
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User registered with email '%s'", user.Email)
	return user, nil
}

// Login checks the password and issues a signed token carrying the
// user's id. Failures are reported generically so the response does
// not distinguish an unknown email from a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if err != nil {
		return nil, "", err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgotPassword replaces the user's password with a random one and
// mails it to them.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return err
	}

	newPassword := utils.GenerateRandomPassword()
	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return err
	}

	subject := "Your new password"
	body := fmt.Sprintf("Your new password is: %s", newPassword)
	if err := utils.SendEmail(user.Email, subject, body); err != nil {
		return err
	}

	logging.Logger.Infof("Event ID: PASSWORD_RESET, Description: Password reset for user '%s'", user.Email)
	return nil
}

// ListUsers returns all users with an isOwner flag computed from team
// ownership, for member-picker dropdowns.
func (s *UserService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.Teams.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	owners := make(map[primitive.ObjectID]struct{}, len(teams))
	for _, t := range teams {
		owners[t.Owner] = struct{}{}
	}

	result := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		_, isOwner := owners[u.ID]
		result = append(result, models.PublicUser{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			IsAdmin: u.IsAdmin,
			IsOwner: isOwner,
		})
	}
	return result, nil
}

func (s *UserService) verifyCaptcha(token string) (bool, error) {
	result, err := s.CaptchaBreaker.Execute(func() (interface{}, error) {
		ok, err := utils.VerifyCaptcha(s.HTTPClient, token)
		if err != nil {
			return nil, err
		}
		return ok, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
