package salesforce

import "context"

// API defines the interface for Salesforce API operations
type API interface {
	// Session lifecycle
	Login(ctx context.Context) (Session, error)

	// Discovery operations
	APIVersions(ctx context.Context) (Result, error)
	OrgLimits(ctx context.Context) (Result, error)
	AvailableResources(ctx context.Context) (Result, error)
	AllObjects(ctx context.Context) (Result, error)

	// Metadata operations
	ObjectMetadata(ctx context.Context, object string, describe bool, since string) (Result, error)

	// Record operations
	Create(ctx context.Context, object string, data map[string]any) (Result, error)
	Upsert(ctx context.Context, object string, data map[string]any) (Result, error)
	Update(ctx context.Context, object, id string, data map[string]any) (Result, error)
	Delete(ctx context.Context, object, id string) (Result, error)
	Get(ctx context.Context, object, id string, fields ...string) (Result, error)

	// Query operations
	Query(ctx context.Context, soql string, includeDeleted, explain bool) (Result, error)
}

// Compile-time check that Client satisfies API.
var _ API = (*Client)(nil)
