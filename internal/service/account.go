package service

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"bizportal/internal/apperr"
	"bizportal/internal/auth"
	"bizportal/internal/model"
	"bizportal/internal/repository"
)

// MinPasswordLen is the shortest password accepted at registration.
const MinPasswordLen = 8

// MaxPasswordLen is bcrypt's input limit in bytes.
const MaxPasswordLen = 72

const invalidCredentials = "invalid credentials"

// RegisterInput is a plain account registration of either role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

// ClientRegisterInput registers a tenant together with its company profile.
type ClientRegisterInput struct {
	Name     string
	Email    string
	Password string
	Profile  model.ClientProfile
}

// AuthResult is returned by registration and login.
type AuthResult struct {
	Account *model.Account `json:"user"`
	Token   string         `json:"token"`
}

// ClientAuthResult is returned by tenant registration.
type ClientAuthResult struct {
	Client *model.Client `json:"client"`
	Token  string        `json:"token"`
}

// AccountService defines registration, login and client administration.
type AccountService interface {
	// Register creates an account and returns it with a fresh token.
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)

	// RegisterClient creates a client account and its profile atomically.
	RegisterClient(ctx context.Context, in ClientRegisterInput) (*ClientAuthResult, error)

	// Login checks credentials. A non-empty want rejects accounts of another
	// role with the same error as a wrong password.
	Login(ctx context.Context, email, password string, want model.Role) (*AuthResult, error)

	// Profile returns the calling client's own account and profile.
	Profile(ctx context.Context, caller auth.Principal) (*model.Client, error)

	// ListClients returns tenant accounts. Admin only.
	ListClients(ctx context.Context, caller auth.Principal, limit, offset int) (*ListResult[model.Client], error)

	// SetClientActive activates or deactivates a tenant. Admin only.
	SetClientActive(ctx context.Context, caller auth.Principal, clientID string, active bool) error
}

// AccountOptions tune AccountService behaviour.
type AccountOptions struct {
	// AdminSignup allows Register with role admin.
	AdminSignup bool
	Now         func() time.Time
}

type accountService struct {
	repo   repository.AccountRepository
	tokens auth.Issuer
	opts   AccountOptions
}

// NewAccountService constructs a new AccountService.
func NewAccountService(repo repository.AccountRepository, tokens auth.Issuer, opts AccountOptions) AccountService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &accountService{repo: repo, tokens: tokens, opts: opts}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateCredentials(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("name is required")
	}
	if email == "" {
		return apperr.Validation("email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apperr.Validation("email is invalid")
	}
	if len(password) < MinPasswordLen {
		return apperr.Validation("password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLen {
		return apperr.Validation("password must be at most 72 bytes")
	}
	return nil
}

func (s *accountService) newAccount(name, email, password string, role model.Role) (*model.Account, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := s.opts.Now().UTC()
	return &model.Account{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *accountService) issue(acc *model.Account) (string, error) {
	return s.tokens.Issue(auth.Principal{AccountID: acc.ID, Email: acc.Email, Role: acc.Role})
}

func duplicate(err error) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return apperr.Conflict("an account with this email already exists")
	}
	return err
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if err := validateCredentials(in.Name, email, in.Password); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleClient
	}
	if !in.Role.Valid() {
		return nil, apperr.Validation("role must be admin or client")
	}
	if in.Role == model.RoleAdmin && !s.opts.AdminSignup {
		return nil, apperr.Forbidden("admin self-registration is disabled")
	}

	acc, err := s.newAccount(in.Name, email, in.Password, in.Role)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.Create(ctx, acc)
	if err != nil {
		return nil, duplicate(err)
	}
	token, err := s.issue(stored)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: stored, Token: token}, nil
}

func validateProfile(p model.ClientProfile) error {
	required := []struct {
		field, value string
	}{
		{"companyName", p.CompanyName},
		{"phoneNumber", p.PhoneNumber},
		{"address.street", p.Address.Street},
		{"address.city", p.Address.City},
		{"address.state", p.Address.State},
		{"address.zipCode", p.Address.ZipCode},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.Validation(r.field + " is required")
		}
	}
	if !model.ValidCompanySize(p.CompanySize) {
		return apperr.Validation("companySize is invalid")
	}
	return nil
}

func (s *accountService) RegisterClient(ctx context.Context, in ClientRegisterInput) (*ClientAuthResult, error) {
	email := normalizeEmail(in.Email)
	if err := validateCredentials(in.Name, email, in.Password); err != nil {
		return nil, err
	}
	if err := validateProfile(in.Profile); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Profile.Address.Country) == "" {
		in.Profile.Address.Country = model.DefaultCountry
	}

	acc, err := s.newAccount(in.Name, email, in.Password, model.RoleClient)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.CreateClient(ctx, &model.Client{Account: *acc, ClientProfile: in.Profile})
	if err != nil {
		return nil, duplicate(err)
	}
	token, err := s.issue(&stored.Account)
	if err != nil {
		return nil, err
	}
	return &ClientAuthResult{Client: stored, Token: token}, nil
}

func (s *accountService) Login(ctx context.Context, email, password string, want model.Role) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}

	acc, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			auth.BurnCompare(password)
			return nil, apperr.Unauthenticated(invalidCredentials)
		}
		return nil, err
	}
	if !auth.ComparePassword(acc.PasswordHash, password) {
		return nil, apperr.Unauthenticated(invalidCredentials)
	}
	if want != "" && acc.Role != want {
		return nil, apperr.Unauthenticated(invalidCredentials)
	}
	if !acc.IsActive {
		return nil, apperr.Forbidden("account is deactivated")
	}

	token, err := s.issue(acc)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Account: acc, Token: token}, nil
}

func (s *accountService) Profile(ctx context.Context, caller auth.Principal) (*model.Client, error) {
	if err := requireRole(caller, model.RoleClient); err != nil {
		return nil, err
	}
	c, err := s.repo.FindClient(ctx, caller.AccountID)
	if err != nil {
		return nil, notFound(err, "client")
	}
	return c, nil
}

func (s *accountService) ListClients(ctx context.Context, caller auth.Principal, limit, offset int) (*ListResult[model.Client], error) {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return nil, err
	}
	pq := pageQuery(limit, offset)
	res, err := s.repo.ListClients(ctx, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *accountService) SetClientActive(ctx context.Context, caller auth.Principal, clientID string, active bool) error {
	if err := requireRole(caller, model.RoleAdmin); err != nil {
		return err
	}
	if err := requireID(clientID); err != nil {
		return err
	}
	return notFound(s.repo.SetClientActive(ctx, clientID, active), "client")
}
