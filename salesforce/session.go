package salesforce

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const tokenPath = "/services/oauth2/token"

// SessionManager owns the credentials and the current session. Login and
// re-login are exclusive mutations; concurrent requests may keep reading a
// stale token while a re-login is in flight.
type SessionManager struct {
	creds      Credentials
	loginURL   string
	apiVersion string
	httpClient *http.Client
	logger     zerolog.Logger

	mu      sync.RWMutex
	session *Session
}

func newSessionManager(creds Credentials, loginURL, apiVersion string, httpClient *http.Client, logger zerolog.Logger) *SessionManager {
	return &SessionManager{
		creds:      creds,
		loginURL:   strings.TrimRight(loginURL, "/"),
		apiVersion: apiVersion,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Login performs the OAuth2 password grant against the token endpoint and
// installs the resulting session. Calling it again replaces the session
// wholesale: new token, possibly new instance URL, nothing merged.
func (m *SessionManager) Login(ctx context.Context) (Session, error) {
	conf := &oauth2.Config{
		ClientID:     m.creds.ClientID,
		ClientSecret: m.creds.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  m.loginURL + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	// Salesforce expects the security token appended directly to the
	// password, no separator. The concatenation IS the password field.
	token, err := conf.PasswordCredentialsToken(ctx, m.creds.Username, m.creds.Password+m.creds.SecurityToken)
	if err != nil {
		return Session{}, loginError(err)
	}

	instanceURL, _ := token.Extra("instance_url").(string)
	if token.AccessToken == "" || instanceURL == "" {
		return Session{}, &AuthError{Message: "token response missing access_token or instance_url"}
	}

	session := Session{
		AccessToken: token.AccessToken,
		InstanceURL: strings.TrimRight(instanceURL, "/"),
		APIVersion:  m.apiVersion,
	}

	m.mu.Lock()
	m.session = &session
	m.mu.Unlock()

	m.logger.Debug().
		Str("instance_url", session.InstanceURL).
		Str("api_version", session.APIVersion).
		Msg("Logged in to Salesforce")

	return session, nil
}

// Current returns a copy of the active session, or a PreconditionError when
// no login has succeeded yet.
func (m *SessionManager) Current() (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return Session{}, &PreconditionError{}
	}
	return *m.session, nil
}

// LoggedIn reports whether a session exists.
func (m *SessionManager) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session != nil
}

// loginError maps a token retrieval failure to an AuthError. The oauth2
// package surfaces credential rejections as *oauth2.RetrieveError and
// transport failures as plain errors; both end up as AuthError per the
// error contract of the login handshake.
func loginError(err error) *AuthError {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		msg := retrieveErr.ErrorDescription
		if msg == "" {
			if d := gjson.GetBytes(retrieveErr.Body, "error_description"); d.Exists() {
				msg = d.String()
			} else if e := gjson.GetBytes(retrieveErr.Body, "error"); e.Exists() {
				msg = e.String()
			} else {
				msg = strings.TrimSpace(string(retrieveErr.Body))
			}
		}
		statusCode := 0
		if retrieveErr.Response != nil {
			statusCode = retrieveErr.Response.StatusCode
		}
		return &AuthError{StatusCode: statusCode, Message: msg, Cause: err}
	}
	return &AuthError{Message: err.Error(), Cause: err}
}
