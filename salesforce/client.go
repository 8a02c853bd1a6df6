package salesforce

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const (
	// DefaultLoginURL is the production token endpoint host.
	DefaultLoginURL = "https://login.salesforce.com"
	// DefaultAPIVersion is the REST API version used when none is configured.
	DefaultAPIVersion = "59.0"

	defaultTimeout        = 60 * time.Second
	defaultConnectTimeout = 2 * time.Second
)

// Client wraps the Salesforce REST API. Every public operation issues one
// synchronous request through doRequest; there are no retries and no state
// beyond the session.
type Client struct {
	session    *SessionManager
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new Salesforce client. It validates the credentials
// but does not contact the service; call Login before any other operation.
func NewClient(creds Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidConfig)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: client secret is required", ErrInvalidConfig)
	}
	if creds.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidConfig)
	}
	if creds.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidConfig)
	}

	options := clientOptions{
		loginURL:       DefaultLoginURL,
		apiVersion:     DefaultAPIVersion,
		timeout:        defaultTimeout,
		connectTimeout: defaultConnectTimeout,
		verifyCert:     true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		transport := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: options.connectTimeout,
			}).DialContext,
		}
		if !options.verifyCert {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		httpClient = &http.Client{
			Timeout:   options.timeout,
			Transport: transport,
		}
	}

	return &Client{
		session:    newSessionManager(creds, options.loginURL, options.apiVersion, httpClient, logger),
		httpClient: httpClient,
		userAgent:  options.userAgent,
		logger:     logger,
	}, nil
}

// Login performs the password-grant handshake. It must succeed before any
// other operation; calling it again replaces the session.
func (c *Client) Login(ctx context.Context) (Session, error) {
	return c.session.Login(ctx)
}

// APIVersions lists the API versions available on the instance. This is the
// one unversioned endpoint.
func (c *Client) APIVersions(ctx context.Context) (Result, error) {
	return c.doRequest(ctx, RequestSpec{Method: http.MethodGet, Unversioned: true})
}

// OrgLimits retrieves the org's limits and current consumption.
func (c *Client) OrgLimits(ctx context.Context) (Result, error) {
	return c.doRequest(ctx, RequestSpec{Method: http.MethodGet, Path: "limits/"})
}

// AvailableResources lists the resources available under the versioned root.
func (c *Client) AvailableResources(ctx context.Context) (Result, error) {
	return c.doRequest(ctx, RequestSpec{Method: http.MethodGet})
}

// AllObjects lists every sObject type in the org.
func (c *Client) AllObjects(ctx context.Context) (Result, error) {
	return c.doRequest(ctx, RequestSpec{Method: http.MethodGet, Path: "sobjects/"})
}

// Create inserts a new record of the given object type.
func (c *Client) Create(ctx context.Context, object string, data map[string]any) (Result, error) {
	return c.doRequest(ctx, RequestSpec{
		Method: http.MethodPost,
		Path:   "sobjects/" + object,
		Body:   data,
	})
}

// Upsert creates or updates a record of the given object type.
func (c *Client) Upsert(ctx context.Context, object string, data map[string]any) (Result, error) {
	return c.doRequest(ctx, RequestSpec{
		Method: http.MethodPatch,
		Path:   "sobjects/" + object,
		Body:   data,
	})
}

// Update modifies an existing record by id.
func (c *Client) Update(ctx context.Context, object, id string, data map[string]any) (Result, error) {
	return c.doRequest(ctx, RequestSpec{
		Method: http.MethodPatch,
		Path:   "sobjects/" + object + "/" + id,
		Body:   data,
	})
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, object, id string) (Result, error) {
	return c.doRequest(ctx, RequestSpec{
		Method: http.MethodDelete,
		Path:   "sobjects/" + object + "/" + id,
	})
}

// Get retrieves a record by id, optionally restricted to the given fields.
func (c *Client) Get(ctx context.Context, object, id string, fields ...string) (Result, error) {
	spec := RequestSpec{
		Method: http.MethodGet,
		Path:   "sobjects/" + object + "/" + id,
	}
	if len(fields) > 0 {
		spec.Params = []Param{{Key: "fields", Value: strings.Join(fields, ",")}}
	}
	return c.doRequest(ctx, spec)
}

// doRequest is the single funnel every operation goes through: resolve the
// session, build the request, send it, classify the response.
func (c *Client) doRequest(ctx context.Context, spec RequestSpec) (Result, error) {
	session, err := c.session.Current()
	if err != nil {
		return nil, &PreconditionError{Op: opName(spec)}
	}

	requestURL := session.InstanceURL + "/services/data"
	if !spec.Unversioned {
		requestURL += "/v" + session.APIVersion + "/" + spec.Path
	}
	if len(spec.Params) > 0 {
		requestURL += "?" + encodeQuery(spec.Params)
	}

	var bodyReader io.Reader
	if spec.Body != nil && spec.Method != http.MethodGet {
		encoded, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, &ArgumentError{Param: "data", Message: "not JSON-encodable", Cause: err}
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, requestURL, bodyReader)
	if err != nil {
		return nil, &ArgumentError{Param: "path", Value: spec.Path, Message: "cannot build request", Cause: err}
	}

	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, value := range spec.Headers {
		req.Header.Set(key, value)
	}

	c.logger.Debug().
		Str("method", spec.Method).
		Str("url", requestURL).
		Msg("Making Salesforce API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: opName(spec), Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: opName(spec), Cause: err}
	}

	return classify(resp.StatusCode, body)
}

// classify maps a status code and body onto a result or an APIError.
//
//	304, empty body            -> {"message": "not modified since specified time"}
//	200/201/204/300, empty     -> {"success": true}
//	200/201/204/300, body      -> parsed JSON
//	anything else              -> APIError with the best-available message
func classify(statusCode int, body []byte) (Result, error) {
	body = bytes.TrimSpace(body)

	if statusCode == http.StatusNotModified && len(body) == 0 {
		return map[string]any{"message": "not modified since specified time"}, nil
	}

	switch statusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusMultipleChoices:
		if len(body) == 0 {
			return map[string]any{"success": true}, nil
		}
		var value Result
		if err := json.Unmarshal(body, &value); err != nil {
			return nil, &APIError{
				StatusCode: statusCode,
				Message:    "unparseable response body",
				Body:       string(body),
			}
		}
		return value, nil
	}

	return nil, &APIError{
		StatusCode: statusCode,
		Message:    errorMessage(statusCode, body),
		Body:       string(body),
	}
}

// errorMessage extracts the most specific failure description available:
// the OAuth-style error_description, then error, then the Salesforce error
// array's first message, then the raw body, then the HTTP status text.
func errorMessage(statusCode int, body []byte) string {
	if len(body) > 0 {
		if d := gjson.GetBytes(body, "error_description"); d.Exists() {
			return d.String()
		}
		if e := gjson.GetBytes(body, "error"); e.Exists() {
			return e.String()
		}
		if m := gjson.GetBytes(body, "0.message"); m.Exists() {
			return m.String()
		}
		return string(body)
	}
	return http.StatusText(statusCode)
}

// encodeQuery builds a query string with strict RFC 3986 component
// encoding. url.Values.Encode writes spaces as "+", which the query
// endpoints reject inside SOQL, so spaces must be "%20". Parameter order is
// preserved.
func encodeQuery(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(escapeComponent(p.Value))
	}
	return b.String()
}

func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func opName(spec RequestSpec) string {
	if spec.Path == "" {
		return spec.Method + " /services/data"
	}
	return spec.Method + " " + spec.Path
}
