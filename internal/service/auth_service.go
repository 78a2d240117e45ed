package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fundraiser/internal/auth"
	apperrors "fundraiser/internal/errors"
	"fundraiser/internal/mailer"
	"fundraiser/internal/model"
	"fundraiser/internal/repository"
)

const (
	bcryptCost    = 10
	tokenByteLen  = 24
	verifySubject = "Verification Email"
)

// AuthService handles registration, email verification and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.Account, error)
	Login(ctx context.Context, email, password string) (token string, account *model.Account, err error)
	Verify(ctx context.Context, token string) error
}

type authService struct {
	accountRepo repository.AccountRepository
	tokenRepo   repository.TokenRepository
	jwtService  *auth.JWTService
	mailer      mailer.Mailer
	baseURL     string
	mailFrom    string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	accountRepo repository.AccountRepository,
	tokenRepo repository.TokenRepository,
	jwtService *auth.JWTService,
	m mailer.Mailer,
	baseURL, mailFrom string,
) AuthService {
	return &authService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		mailer:      m,
		baseURL:     baseURL,
		mailFrom:    mailFrom,
	}
}

// Register creates an account with a hashed password, issues a verification
// token and dispatches the verification email. Dispatch is fire-and-forget:
// a delivery failure is logged, never surfaced, and does not roll back the
// account.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.Account, error) {
	existing, err := s.accountRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	secret, err := newVerificationSecret()
	if err != nil {
		return nil, fmt.Errorf("generate verification token: %w", err)
	}
	token := &model.VerificationToken{
		AccountID: account.ID,
		Token:     secret,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, fmt.Errorf("create verification token: %w", err)
	}

	msg := s.buildVerificationEmail(email, secret)
	go func() {
		if err := s.mailer.Send(msg); err != nil {
			log.Printf("verification email to %s failed: %v", email, err)
		}
	}()

	return account, nil
}

func (s *authService) buildVerificationEmail(to, secret string) mailer.Message {
	link := fmt.Sprintf("%s/verifyuser/%s", s.baseURL, secret)
	return mailer.Message{
		From:    s.mailFrom,
		To:      to,
		Subject: verifySubject,
		Text:    "Click on the following link to activate " + link,
		HTML:    fmt.Sprintf("<a href='%s'><button>Verify Email</button></a>", link),
	}
}

// Login checks credentials and issues a signed token with the account's id
// and name as claims. Verification status is deliberately not checked, so
// unverified accounts can authenticate.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperrors.ErrEmailNotRegistered
		}
		return "", nil, fmt.Errorf("find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrIncorrectPassword
	}

	token, err := s.jwtService.GenerateToken(account.ID, account.Name)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, account, nil
}

// Verify redeems a verification token exactly once: the account flips to
// verified and the token record is deleted, so a replay fails with
// ErrTokenNotFound.
func (s *authService) Verify(ctx context.Context, token string) error {
	record, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTokenNotFound
		}
		return fmt.Errorf("find token: %w", err)
	}

	account, err := s.accountRepo.FindByID(ctx, record.AccountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	if account.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	if err := s.accountRepo.MarkVerified(ctx, account.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if err := s.tokenRepo.Delete(ctx, record.ID); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func newVerificationSecret() (string, error) {
	b := make([]byte, tokenByteLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
