package salesforce

import (
	"context"
	"net/http"
)

// Query executes a SOQL query. The query string is passed through opaquely;
// the service does its own validation.
//
// When includeDeleted is set the queryAll/ endpoint is used, which returns
// records in the recycle bin as well. When explain is set the service
// returns the query plan instead of results; the plan endpoint takes the
// query in an "explain" parameter and no "q" parameter.
func (c *Client) Query(ctx context.Context, soql string, includeDeleted, explain bool) (Result, error) {
	path := "query/"
	if includeDeleted {
		path = "queryAll/"
	}

	param := Param{Key: "q", Value: soql}
	if explain {
		param = Param{Key: "explain", Value: soql}
	}

	return c.doRequest(ctx, RequestSpec{
		Method: http.MethodGet,
		Path:   path,
		Params: []Param{param},
	})
}
