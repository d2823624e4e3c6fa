package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/ankleshchaudhari/store-rating-app/internal/jwt"
	"github.com/ankleshchaudhari/store-rating-app/internal/model"
	"github.com/ankleshchaudhari/store-rating-app/internal/repository"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,emailshape"`
	Address  string `json:"address" validate:"required,max=400"`
	Password string `json:"password" validate:"required,password"`
	Role     string `json:"role" validate:"omitempty,oneof=admin store_owner user"`
}

func (in *RegisterInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Address = strings.TrimSpace(in.Address)
	in.Role = strings.TrimSpace(in.Role)
}

// normalizeEmail makes addresses case-insensitive for uniqueness and login.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LoginResult struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

type AuthService interface {
	// Register is the public sign-up; the role is limited to the
	// self-registration allow-list.
	Register(ctx context.Context, in RegisterInput) (int64, error)
	// CreateUser is the admin path and accepts any role.
	CreateUser(ctx context.Context, in RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Authenticate verifies the token and re-reads the user so that a
	// deleted or re-roled account takes effect before the token expires.
	Authenticate(ctx context.Context, token string) (*model.Identity, error)
}

type AuthConfig struct {
	BcryptCost        int
	SelfRegisterRoles []string
}

type authService struct {
	userRepo     repository.UserRepository
	tokens       *jwt.Manager
	validate     *validator.Validate
	cost         int
	allowedRoles map[string]bool
	dummyHash    []byte
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, cfg AuthConfig) AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	allowed := make(map[string]bool, len(cfg.SelfRegisterRoles))
	for _, role := range cfg.SelfRegisterRoles {
		allowed[strings.TrimSpace(role)] = true
	}

	// Compared against when the email is unknown so both failure paths cost a bcrypt round.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("Dummy#Password1"), cost)

	return &authService{
		userRepo:     userRepo,
		tokens:       tokens,
		validate:     newValidator(),
		cost:         cost,
		allowedRoles: allowed,
		dummyHash:    dummy,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	in.normalize()
	if in.Role == "" {
		in.Role = model.RoleUser
	}

	if err := validateStruct(s.validate, &in); err != nil {
		return 0, err
	}

	if !s.allowedRoles[in.Role] {
		return 0, newValidationError("Role cannot be chosen at registration")
	}

	return s.createUser(ctx, in)
}

func (s *authService) CreateUser(ctx context.Context, in RegisterInput) (int64, error) {
	in.normalize()

	if err := validateStruct(s.validate, &in); err != nil {
		return 0, err
	}

	if in.Role == "" {
		return 0, newValidationError("All fields are required")
	}

	return s.createUser(ctx, in)
}

func (s *authService) createUser(ctx context.Context, in RegisterInput) (int64, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return 0, err
	}

	user := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		Address:      in.Address,
		PasswordHash: string(hashedPassword),
		Role:         in.Role,
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}

	return newID, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, newValidationError("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user.Identity()}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*model.Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	identity := user.Identity()
	return &identity, nil
}
