package usecase

import (
	"bytes"
	"context"
	"image/png"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"soukly/internal/domain/repository"
	"soukly/pkg/errors"
)

type TwoFactorUseCase struct {
	userRepo     repository.UserRepository
	authProvider AuthProvider
}

func NewTwoFactorUseCase(userRepo repository.UserRepository, authProvider AuthProvider) *TwoFactorUseCase {
	return &TwoFactorUseCase{
		userRepo:     userRepo,
		authProvider: authProvider,
	}
}

type TwoFactorSetup struct {
	Secret string `json:"secret"`
	QRPNG  []byte `json:"qr_png"`
}

// Setup generates a TOTP secret, enables 2FA on the account immediately and
// returns the secret plus a QR code for authenticator apps.
func (uc *TwoFactorUseCase) Setup(ctx context.Context, userID string) (*TwoFactorSetup, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "soukly",
		AccountName: user.Email,
		SecretSize:  20,
	})
	if err != nil {
		return nil, errors.Internal("Failed to generate 2FA secret", err)
	}

	user.TwoFactorSecret = key.Secret()
	user.IsTwoFactorAuth = true
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	img, err := key.Image(200, 200)
	if err != nil {
		return nil, errors.Internal("Failed to render QR code", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Internal("Failed to encode QR code", err)
	}

	return &TwoFactorSetup{
		Secret: key.Secret(),
		QRPNG:  buf.Bytes(),
	}, nil
}

// Verify checks the 6-digit code (one time-step of drift tolerated) and, when
// it matches, completes the interrupted email login by exchanging the refresh
// token for a session token. An invalid code changes no state.
func (uc *TwoFactorUseCase) Verify(ctx context.Context, userID, code, refreshToken string) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.IsTwoFactorAuth || user.TwoFactorSecret == "" {
		return "", errors.BadRequest("Two-factor authentication is not enabled", nil)
	}

	valid, err := totp.ValidateCustom(code, user.TwoFactorSecret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", errors.Internal("Failed to validate code", err)
	}
	if !valid {
		return "", errors.Unauthorized("Invalid verification code", nil)
	}

	idToken, err := uc.authProvider.ExchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid refresh token", err)
	}
	return idToken, nil
}

// Disable turns 2FA off and clears the stored secret.
func (uc *TwoFactorUseCase) Disable(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.TwoFactorSecret = ""
	user.IsTwoFactorAuth = false
	return uc.userRepo.Update(ctx, user)
}
