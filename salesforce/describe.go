package salesforce

import (
	"context"
	"net/http"

	"github.com/araddon/dateparse"
)

// ObjectMetadata retrieves metadata for an sObject type. With describe set,
// the full describe/ sub-resource is fetched instead of the summary.
//
// since turns the call into a conditional fetch: it is parsed leniently
// (anything dateparse accepts), formatted as an RFC 1123 If-Modified-Since
// header, and a 304 from the service comes back as the synthetic
// not-modified result. An unparseable since value is an ArgumentError and
// no request is made.
func (c *Client) ObjectMetadata(ctx context.Context, object string, describe bool, since string) (Result, error) {
	path := "sobjects/" + object
	if describe {
		path += "/describe/"
	}

	spec := RequestSpec{Method: http.MethodGet, Path: path}

	if since != "" {
		t, err := dateparse.ParseAny(since)
		if err != nil {
			return nil, &ArgumentError{
				Param:   "since",
				Value:   since,
				Message: "not a valid date",
				Cause:   err,
			}
		}
		spec.Headers = map[string]string{
			"If-Modified-Since": t.UTC().Format(http.TimeFormat),
		}
	}

	return c.doRequest(ctx, spec)
}
