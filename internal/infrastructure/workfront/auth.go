package workfront

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docsync/backend/internal/config"
	"github.com/docsync/backend/internal/domain"
	"github.com/docsync/backend/internal/infrastructure/logger"
	"github.com/golang-jwt/jwt/v5"
)

// sessionTTL matches what Workfront grants for a JWT exchange. The whole run
// is expected to finish well inside it; the credential is never refreshed.
const sessionTTL = 3 * time.Minute

// CredentialProvider exchanges a signed RS256 assertion for a Workfront
// session credential. Each ObtainSession call produces a fresh credential;
// there is no retry, the caller decides whether to abort.
type CredentialProvider struct {
	cfg        config.OAuthConfig
	httpClient *http.Client
	logger     *logger.Logger
}

func NewCredentialProvider(cfg config.OAuthConfig, httpClient *http.Client, log *logger.Logger) *CredentialProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &CredentialProvider{cfg: cfg, httpClient: httpClient, logger: log}
}

func (p *CredentialProvider) ObtainSession(ctx context.Context) (*domain.SessionCredential, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(p.cfg.PrivateKey))
	if err != nil {
		return nil, &AuthError{Reason: "invalid RSA private key", Err: err}
	}

	now := time.Now()
	expiry := now.Add(sessionTTL)
	claims := jwt.MapClaims{
		"iss": p.cfg.CustomerID,
		"sub": p.cfg.UserID,
		"exp": expiry.Unix(),
	}
	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return nil, &AuthError{Reason: "failed to sign assertion", Err: err}
	}

	form := url.Values{}
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("jwt_token", assertion)

	exchangeURL := p.cfg.ExchangeURL()
	p.logger.Infow("requesting workfront session credential", "url", exchangeURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, exchangeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &AuthError{Reason: "failed to build exchange request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Reason: "exchange request failed", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{Reason: fmt.Sprintf("exchange rejected: status=%d body=%s", resp.StatusCode, string(body))}
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &AuthError{Reason: "failed to parse exchange response", Err: err}
	}
	if result.AccessToken == "" {
		return nil, &AuthError{Reason: "exchange response missing access_token"}
	}

	p.logger.Infow("workfront session credential obtained", "expires_at", expiry)

	return &domain.SessionCredential{Token: result.AccessToken, ExpiresAt: expiry}, nil
}
