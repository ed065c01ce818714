package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"soukly/internal/domain/entity"
	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
	"soukly/pkg/logger"
)

// phoneTokenTTL is the lifetime of the JWT issued by phone login.
const phoneTokenTTL = 14 * 24 * time.Hour

type AuthUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
	pendingCache PendingCache
	mailer       Mailer
	jwtSecret    []byte
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	authProvider AuthProvider,
	pendingCache PendingCache,
	mailer Mailer,
	jwtSecret string,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
		pendingCache: pendingCache,
		mailer:       mailer,
		jwtSecret:    []byte(jwtSecret),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Mobile   string
	Password string
	Gender   string
	Business bool
}

type EmailLoginResult struct {
	User              *entity.User `json:"user,omitempty"`
	IDToken           string       `json:"id_token,omitempty"`
	RefreshToken      string       `json:"refresh_token,omitempty"`
	UserID            string       `json:"user_id,omitempty"`
	TwoFactorRequired bool         `json:"two_factor_required"`
}

type PhoneLoginResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the provider account and parks the profile in the pending
// cache until the verification link is clicked. A conflicting email leaves no
// cache entry behind.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	exists, err := uc.authProvider.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, errors.Internal("Failed to check email availability", err)
	}
	if exists {
		return nil, errors.Conflict("Email already in use", nil)
	}

	uid, err := uc.authProvider.CreateUser(ctx, input.Email, input.Password, input.Mobile)
	if err != nil {
		return nil, errors.Internal("Failed to create account", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:            uid,
		Name:          input.Name,
		Email:         input.Email,
		Mobile:        input.Mobile,
		PasswordHash:  string(hash),
		Role:          entity.RoleUser,
		Gender:        input.Gender,
		Business:      input.Business,
		Active:        true,
		DateOfJoining: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	link, err := uc.authProvider.EmailVerificationLink(ctx, input.Email)
	if err != nil {
		return nil, errors.Internal("Failed to generate verification link", err)
	}
	if err := uc.mailer.SendVerificationLink(input.Email, link); err != nil {
		// The link stays valid; the client can request a resend.
		logger.Warn("failed to send verification mail to %s: %v", input.Email, err)
	}

	if err := uc.pendingCache.Set(ctx, user); err != nil {
		return nil, errors.Internal("Failed to store pending registration", err)
	}

	return user, nil
}

// VerifyEmail promotes the cached provisional record into the user store.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.pendingCache.Get(ctx, uid)
	if err != nil {
		return nil, errors.Unauthorized("Verification window expired or registration not found", err)
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.pendingCache.Delete(ctx, uid); err != nil {
		logger.Warn("failed to drop pending registration %s: %v", uid, err)
	}

	return user, nil
}

// LoginWithEmail authenticates against the identity provider. When the account
// has 2FA enabled no session is issued; the caller must complete the TOTP
// verification step with the returned refresh token.
func (uc *AuthUseCase) LoginWithEmail(ctx context.Context, email, password string) (*EmailLoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	verified, err := uc.authProvider.EmailVerified(ctx, user.ID)
	if err != nil {
		return nil, errors.Internal("Failed to check email verification", err)
	}
	if !verified {
		return nil, errors.Unauthorized("Email not verified", nil)
	}

	idToken, refreshToken, err := uc.authProvider.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	if user.IsTwoFactorAuth {
		return &EmailLoginResult{
			UserID:            user.ID,
			RefreshToken:      refreshToken,
			TwoFactorRequired: true,
		}, nil
	}

	return &EmailLoginResult{
		User:         user,
		IDToken:      idToken,
		RefreshToken: refreshToken,
	}, nil
}

// LoginWithPhone authenticates against the locally stored password hash and
// issues a 14-day HS256 token. Three failures lock the account for ten
// minutes.
func (uc *AuthUseCase) LoginWithPhone(ctx context.Context, mobile, password string) (*PhoneLoginResult, error) {
	user, err := uc.userRepo.GetByMobile(ctx, mobile)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	now := time.Now()
	if locked, remaining := loginLocked(user, now); locked {
		return nil, errors.Unauthorized(
			"Too many failed attempts, try again in "+minutesLabel(remaining), nil)
	}

	if user.FailedLoginCount >= maxFailedLogins {
		// The cooldown has elapsed; the next failure opens a fresh
		// three-strike window instead of re-locking immediately.
		user.FailedLoginCount = 0
		user.LastFailedLogin = nil
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Internal("Failed to reset login attempts", err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.FailedLoginCount++
		user.LastFailedLogin = &now
		if updateErr := uc.userRepo.Update(ctx, user); updateErr != nil {
			logger.Error("failed to record login failure for %s: %v", user.ID, updateErr)
		}
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	token, err := uc.issuePhoneToken(user.ID, now)
	if err != nil {
		return nil, errors.Internal("Failed to issue token", err)
	}

	return &PhoneLoginResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) issuePhoneToken(uid string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(phoneTokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
}

// VerifyPhoneToken validates an HS256 token from phone login and returns the
// subject UID.
func (uc *AuthUseCase) VerifyPhoneToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("Invalid token", err)
	}
	return claims.Subject, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	idToken, err := uc.authProvider.ExchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid refresh token", err)
	}
	return idToken, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.authProvider.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke session", err)
	}
	return nil
}

// ForgotPassword mails a reset link. Unknown addresses report success to avoid
// leaking which emails are registered.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	if _, err := uc.userRepo.GetByEmail(ctx, email); err != nil {
		logger.Debug("password reset requested for unknown email")
		return nil
	}

	link, err := uc.authProvider.PasswordResetLink(ctx, email)
	if err != nil {
		return errors.Internal("Failed to generate reset link", err)
	}
	if err := uc.mailer.SendPasswordResetLink(email, link); err != nil {
		return errors.Internal("Failed to send reset email", err)
	}
	return nil
}

func minutesLabel(n int) string {
	if n == 1 {
		return "1 minute"
	}
	return strconv.Itoa(n) + " minutes"
}
