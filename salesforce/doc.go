// Package salesforce provides a thin client for the Salesforce REST API.
//
// The client covers object CRUD, metadata retrieval, SOQL query execution,
// and discovery endpoints (API versions, org limits, available resources).
// Every operation is a single synchronous request/response pair; there is no
// caching, no queueing, and no retry logic.
//
// # Architecture
//
//   - Client: one public method per REST operation, all funneled through a
//     single request-building routine with uniform response classification
//   - SessionManager: owns the credentials, performs the OAuth2 password
//     grant, and holds the current bearer token and instance URL
//   - Errors: five structured error kinds so callers branch with errors.As
//
// # Usage
//
// Create a client, log in, then call operations:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := salesforce.NewClient(salesforce.Credentials{
//		ClientID:      "...",
//		ClientSecret:  "...",
//		Username:      "user@example.com",
//		Password:      "hunter2",
//		SecurityToken: "abc123",
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if _, err := client.Login(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	records, err := client.Query(ctx, "SELECT Id, Name FROM Account", false, false)
//
// # Error Handling
//
// Operations fail with exactly one of five error types:
//
//   - ArgumentError: invalid parameter, detected before any network call
//   - AuthError: the login handshake failed
//   - PreconditionError: an operation was invoked before Login succeeded
//   - TransportError: network, TLS, or timeout failure
//   - APIError: the service returned a failure status; carries the HTTP
//     status and the service-provided message when one exists
//
// APIError includes helper methods for classification:
//
//	var apiErr *salesforce.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// token rejected, re-login and retry at the call site
//	}
//
// The client never retries on the caller's behalf. Tokens are not tracked
// for expiry; when one is rejected, call Login again, which replaces the
// session wholesale. Re-login is safe under concurrency: it is an exclusive
// mutation, and requests already in flight simply finish with the token
// they read.
package salesforce
