package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"firebase.google.com/go/v4/auth"
)

// AuthClient wraps the Firebase Admin auth client plus the REST endpoints the
// Admin SDK does not cover (password sign-in, refresh-token exchange).
type AuthClient struct {
	client *auth.Client
	apiKey string
}

func NewAuthClient(client *auth.Client, apiKey string) *AuthClient {
	return &AuthClient{
		client: client,
		apiKey: apiKey,
	}
}

func (f *AuthClient) CreateUser(ctx context.Context, email, password, phone string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)
	if phone != "" {
		params = params.PhoneNumber(phone)
	}

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

// EmailVerified reports whether the user has confirmed their address with the
// identity provider.
func (f *AuthClient) EmailVerified(ctx context.Context, uid string) (bool, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return false, err
	}
	return user.EmailVerified, nil
}

// EmailExists reports whether the identity provider already has an account for
// the address.
func (f *AuthClient) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (f *AuthClient) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	return f.client.GetUser(ctx, uid)
}

func (f *AuthClient) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

func (f *AuthClient) RevokeRefreshTokens(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

func (f *AuthClient) EmailVerificationLink(ctx context.Context, email string) (string, error) {
	return f.client.EmailVerificationLink(ctx, email)
}

func (f *AuthClient) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return f.client.PasswordResetLink(ctx, email)
}

type signInResult struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
}

// SignInWithEmailPassword verifies credentials against the identitytoolkit
// REST endpoint and returns (idToken, refreshToken).
func (f *AuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", f.apiKey)

	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("sign-in rejected: %s", resp.Status)
	}

	var result signInResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", err
	}
	return result.IDToken, result.RefreshToken, nil
}

type refreshResult struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
}

// ExchangeRefreshToken trades a refresh token for a fresh ID token via the
// securetoken endpoint.
func (f *AuthClient) ExchangeRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	url := fmt.Sprintf("https://securetoken.googleapis.com/v1/token?key=%s", f.apiKey)

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": refreshToken,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh rejected: %s", resp.Status)
	}

	var result refreshResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.IDToken, nil
}
