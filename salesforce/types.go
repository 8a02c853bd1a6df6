package salesforce

// Credentials holds the OAuth2 password-grant inputs. Immutable after
// construction; owned by the session manager.
type Credentials struct {
	ClientID      string
	ClientSecret  string
	Username      string
	Password      string
	SecurityToken string
}

// Session is the product of a successful login. A re-login replaces the
// whole value; there is no expiry tracking, callers re-login when a token
// is rejected.
type Session struct {
	AccessToken string
	InstanceURL string
	APIVersion  string
}

// Param is a single query-string parameter. Parameters keep their insertion
// order on the wire.
type Param struct {
	Key   string
	Value string
}

// RequestSpec describes one API request. Built per call and discarded after
// the call completes.
type RequestSpec struct {
	// Method is one of GET, POST, PATCH, DELETE.
	Method string
	// Path is relative to the versioned API root, unless Unversioned is set,
	// in which case it is relative to /services/data.
	Path string
	// Unversioned requests skip the v{version} path segment. Only the API
	// version listing uses this.
	Unversioned bool
	// Params are appended to the URL for GET requests.
	Params []Param
	// Body is JSON-encoded for non-GET requests when non-nil.
	Body any
	// Headers are extra headers, e.g. If-Modified-Since for conditional
	// metadata fetches. They override the defaults on key collision.
	Headers map[string]string
}

// Result is the decoded JSON value returned by the API: map[string]any for
// objects, []any for arrays. Empty-body successes are reported as a
// synthetic map, see the response classification in doRequest.
type Result any
