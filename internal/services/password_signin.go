package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// SignInResult is a successful email/password sign-in
type SignInResult struct {
	UserID       string
	IDToken      string
	RefreshToken string
	ExpiresIn    time.Duration
}

// PasswordSigner signs users in with email and password
type PasswordSigner interface {
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)
}

// IdentityToolkitClient signs in through the Firebase Auth REST API. The
// Admin SDK cannot check passwords, so this goes through the same endpoint
// the client SDKs use.
type IdentityToolkitClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewIdentityToolkitClient creates a client. When emulatorHost is set
// requests go to the Auth emulator instead of Google.
func NewIdentityToolkitClient(apiKey, emulatorHost string, timeout time.Duration) *IdentityToolkitClient {
	baseURL := identityToolkitURL
	if emulatorHost != "" {
		baseURL = "http://" + emulatorHost + "/identitytoolkit.googleapis.com/v1"
	}
	return &IdentityToolkitClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityToolkitError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *IdentityToolkitClient) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "network request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr identityToolkitError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error.Message == "" {
			return nil, errors.Errorf("sign in failed with status %d", resp.StatusCode)
		}
		return nil, errors.New(apiErr.Error.Message)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode sign in response")
	}

	seconds, _ := strconv.Atoi(out.ExpiresIn)
	return &SignInResult{
		UserID:       out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    time.Duration(seconds) * time.Second,
	}, nil
}
