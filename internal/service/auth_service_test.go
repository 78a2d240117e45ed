package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fundraiser/internal/auth"
	apperrors "fundraiser/internal/errors"
	"fundraiser/internal/mailer"
	"fundraiser/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Create(ctx context.Context, token *model.VerificationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) FindByToken(ctx context.Context, token string) (*model.VerificationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationToken), args.Error(1)
}

func (m *MockTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// chanMailer records dispatched messages for inspection.
type chanMailer struct {
	sent chan mailer.Message
}

func newChanMailer() *chanMailer {
	return &chanMailer{sent: make(chan mailer.Message, 1)}
}

func (c *chanMailer) Send(m mailer.Message) error {
	c.sent <- m
	return nil
}

func (c *chanMailer) wait(t *testing.T) mailer.Message {
	t.Helper()
	select {
	case m := <-c.sent:
		return m
	case <-time.After(time.Second):
		t.Fatal("no email dispatched within 1s")
		return mailer.Message{}
	}
}

const testBaseURL = "http://localhost:5000"

func newTestAuthService(accountRepo *MockAccountRepository, tokenRepo *MockTokenRepository, m mailer.Mailer) AuthService {
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(accountRepo, tokenRepo, jwtService, m, testBaseURL, "noreply@fundraiser.local")
}

func TestAuthService_Register(t *testing.T) {
	t.Run("successful registration dispatches verification email", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTokens := new(MockTokenRepository)
		mails := newChanMailer()

		var issued string
		mockAccounts.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound)
		mockAccounts.On("Create", mock.Anything, mock.AnythingOfType("*model.Account")).Return(nil)
		mockTokens.On("Create", mock.Anything, mock.AnythingOfType("*model.VerificationToken")).
			Run(func(args mock.Arguments) {
				issued = args.Get(1).(*model.VerificationToken).Token
			}).Return(nil)

		svc := newTestAuthService(mockAccounts, mockTokens, mails)
		account, err := svc.Register(context.Background(), "Bob", "bob@x.com", "secret")

		assert.NoError(t, err)
		assert.Equal(t, "Bob", account.Name)
		assert.Equal(t, "bob@x.com", account.Email)
		assert.NotEmpty(t, account.PasswordHash)
		assert.NotEqual(t, "secret", account.PasswordHash)
		assert.False(t, account.IsVerified)

		// 24 random bytes, hex encoded.
		assert.Len(t, issued, 48)

		msg := mails.wait(t)
		assert.Equal(t, "bob@x.com", msg.To)
		assert.Contains(t, msg.Text, testBaseURL+"/verifyuser/"+issued)
		assert.Contains(t, msg.HTML, issued)

		mockAccounts.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("duplicate email creates no account or token", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTokens := new(MockTokenRepository)

		mockAccounts.On("FindByEmail", mock.Anything, "bob@x.com").Return(&model.Account{Email: "bob@x.com"}, nil)

		svc := newTestAuthService(mockAccounts, mockTokens, newChanMailer())
		account, err := svc.Register(context.Background(), "Bob", "bob@x.com", "secret")

		assert.Nil(t, account)
		assert.Equal(t, apperrors.ErrEmailTaken, err)
		mockAccounts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockTokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	accountID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockAccountRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.Account{
					ID:           accountID,
					Name:         "Test User",
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "email not registered",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrEmailNotRegistered,
		},
		{
			name:     "incorrect password",
			email:    "test@example.com",
			password: "wrong",
			setupMock: func(m *MockAccountRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(&model.Account{
					ID:           accountID,
					Email:        "test@example.com",
					PasswordHash: string(hashed),
				}, nil)
			},
			expectedError: apperrors.ErrIncorrectPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAccounts := new(MockAccountRepository)
			tt.setupMock(mockAccounts)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockAccounts, new(MockTokenRepository), jwtService, newChanMailer(), testBaseURL, "noreply@fundraiser.local")

			token, account, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, account)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.email, account.Email)

				// The signed credential carries the account's identity claims.
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, accountID, claims.AccountID)
				assert.Equal(t, "Test User", claims.Name)
			}

			mockAccounts.AssertExpectations(t)
		})
	}
}

func TestAuthService_Verify(t *testing.T) {
	accountID := uuid.New()
	tokenID := uuid.New()

	t.Run("success flips the flag and deletes the token", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTokens := new(MockTokenRepository)

		mockTokens.On("FindByToken", mock.Anything, "tok123").Return(&model.VerificationToken{
			ID:        tokenID,
			AccountID: accountID,
			Token:     "tok123",
		}, nil)
		mockAccounts.On("FindByID", mock.Anything, accountID).Return(&model.Account{ID: accountID}, nil)
		mockAccounts.On("MarkVerified", mock.Anything, accountID).Return(nil)
		mockTokens.On("Delete", mock.Anything, tokenID).Return(nil)

		svc := newTestAuthService(mockAccounts, mockTokens, newChanMailer())
		err := svc.Verify(context.Background(), "tok123")

		assert.NoError(t, err)
		mockAccounts.AssertExpectations(t)
		mockTokens.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		mockTokens := new(MockTokenRepository)
		mockTokens.On("FindByToken", mock.Anything, "never-issued").Return(nil, gorm.ErrRecordNotFound)

		svc := newTestAuthService(new(MockAccountRepository), mockTokens, newChanMailer())
		err := svc.Verify(context.Background(), "never-issued")

		assert.Equal(t, apperrors.ErrTokenNotFound, err)
	})

	t.Run("account gone", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTokens := new(MockTokenRepository)

		mockTokens.On("FindByToken", mock.Anything, "tok123").Return(&model.VerificationToken{
			ID:        tokenID,
			AccountID: accountID,
		}, nil)
		mockAccounts.On("FindByID", mock.Anything, accountID).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestAuthService(mockAccounts, mockTokens, newChanMailer())
		err := svc.Verify(context.Background(), "tok123")

		assert.Equal(t, apperrors.ErrAccountNotFound, err)
	})

	t.Run("already verified", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTokens := new(MockTokenRepository)

		mockTokens.On("FindByToken", mock.Anything, "tok123").Return(&model.VerificationToken{
			ID:        tokenID,
			AccountID: accountID,
		}, nil)
		mockAccounts.On("FindByID", mock.Anything, accountID).Return(&model.Account{
			ID:         accountID,
			IsVerified: true,
		}, nil)

		svc := newTestAuthService(mockAccounts, mockTokens, newChanMailer())
		err := svc.Verify(context.Background(), "tok123")

		assert.Equal(t, apperrors.ErrAlreadyVerified, err)
		mockAccounts.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
		mockTokens.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("redeemed token cannot be replayed", func(t *testing.T) {
		mockAccounts := new(MockAccountRepository)
		mockTokens := new(MockTokenRepository)

		mockTokens.On("FindByToken", mock.Anything, "tok123").Return(&model.VerificationToken{
			ID:        tokenID,
			AccountID: accountID,
			Token:     "tok123",
		}, nil).Once()
		mockAccounts.On("FindByID", mock.Anything, accountID).Return(&model.Account{ID: accountID}, nil).Once()
		mockAccounts.On("MarkVerified", mock.Anything, accountID).Return(nil).Once()
		mockTokens.On("Delete", mock.Anything, tokenID).Return(nil).Once()
		// After deletion the token no longer resolves.
		mockTokens.On("FindByToken", mock.Anything, "tok123").Return(nil, gorm.ErrRecordNotFound).Once()

		svc := newTestAuthService(mockAccounts, mockTokens, newChanMailer())

		assert.NoError(t, svc.Verify(context.Background(), "tok123"))
		assert.Equal(t, apperrors.ErrTokenNotFound, svc.Verify(context.Background(), "tok123"))
		mockTokens.AssertExpectations(t)
	})
}
