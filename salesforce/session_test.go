package salesforce

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	ClientID:      "test-client-id",
	ClientSecret:  "test-client-secret",
	Username:      "user@example.com",
	Password:      "p",
	SecurityToken: "t",
}

func TestLogin_SendsPasswordGrant(t *testing.T) {
	var gotForm map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/services/oauth2/token", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())

		gotForm = map[string]string{
			"grant_type":    r.PostForm.Get("grant_type"),
			"client_id":     r.PostForm.Get("client_id"),
			"client_secret": r.PostForm.Get("client_secret"),
			"username":      r.PostForm.Get("username"),
			"password":      r.PostForm.Get("password"),
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-abc","instance_url":"https://na1.example.com/","token_type":"Bearer"}`)
	}))
	defer server.Close()

	client, err := NewClient(testCreds, zerolog.Nop(), WithLoginURL(server.URL))
	require.NoError(t, err)

	session, err := client.Login(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "password", gotForm["grant_type"])
	assert.Equal(t, "test-client-id", gotForm["client_id"])
	assert.Equal(t, "test-client-secret", gotForm["client_secret"])
	assert.Equal(t, "user@example.com", gotForm["username"])
	// Password and security token concatenated with no separator.
	assert.Equal(t, "pt", gotForm["password"])

	assert.Equal(t, "token-abc", session.AccessToken)
	assert.Equal(t, "https://na1.example.com", session.InstanceURL)
	assert.Equal(t, DefaultAPIVersion, session.APIVersion)
}

func TestLogin_CredentialRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"authentication failure"}`)
	}))
	defer server.Close()

	client, err := NewClient(testCreds, zerolog.Nop(), WithLoginURL(server.URL))
	require.NoError(t, err)

	_, err = client.Login(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
	assert.Equal(t, "authentication failure", authErr.Message)
}

func TestLogin_TransportFailure(t *testing.T) {
	client, err := NewClient(testCreds, zerolog.Nop(),
		WithLoginURL("http://127.0.0.1:1"),
		WithConnectTimeout(250*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Login(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Zero(t, authErr.StatusCode)
}

func TestLogin_MissingInstanceURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"token-abc","token_type":"Bearer"}`)
	}))
	defer server.Close()

	client, err := NewClient(testCreds, zerolog.Nop(), WithLoginURL(server.URL))
	require.NoError(t, err)

	_, err = client.Login(context.Background())
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Contains(t, authErr.Message, "instance_url")
}

func TestRelogin_ReplacesSession(t *testing.T) {
	var tokensSeen []string

	// Two instances: each issues its own token and points at itself, and
	// records the bearer token of every data request it receives.
	newInstance := func(token string) *httptest.Server {
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/services/oauth2/token" {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"access_token":%q,"instance_url":%q,"token_type":"Bearer"}`, token, server.URL)
				return
			}
			tokensSeen = append(tokensSeen, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{}`)
		}))
		return server
	}

	first := newInstance("token-1")
	defer first.Close()
	second := newInstance("token-2")
	defer second.Close()

	client, err := NewClient(testCreds, zerolog.Nop(), WithLoginURL(first.URL))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Login(ctx)
	require.NoError(t, err)
	_, err = client.OrgLimits(ctx)
	require.NoError(t, err)

	// Re-login against a different instance; both token and base URL must
	// be replaced wholesale.
	client.session.loginURL = second.URL
	_, err = client.Login(ctx)
	require.NoError(t, err)
	_, err = client.OrgLimits(ctx)
	require.NoError(t, err)

	require.Len(t, tokensSeen, 2)
	assert.Equal(t, "Bearer token-1", tokensSeen[0])
	assert.Equal(t, "Bearer token-2", tokensSeen[1])
}
