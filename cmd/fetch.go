package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const introQuery = `query IntrospectionQuery {
      __schema {
        queryType { name }
        mutationType { name }
        subscriptionType { name }
        types {
          ...FullType
        }
      }
    }

    fragment FullType on __Type {
      kind
      name
      description
      fields(includeDeprecated: true) {
        name
        description
        args {
          ...InputValue
        }
        type {
          ...TypeRef
        }
        isDeprecated
        deprecationReason
      }
      inputFields {
        ...InputValue
      }
      interfaces {
        ...TypeRef
      }
      enumValues(includeDeprecated: true) {
        name
        description
        isDeprecated
        deprecationReason
      }
      possibleTypes {
        ...TypeRef
      }
    }

    fragment InputValue on __InputValue {
      name
      description
      type { ...TypeRef }
      defaultValue
    }

    fragment TypeRef on __Type {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
                ofType {
                  kind
                  name
                  ofType {
                    kind
                    name
                  }
                }
              }
            }
          }
        }
      }
    }`

type gqlReq struct {
	Query         string `json:"query"`
	OperationName string `json:"operationName,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResp struct {
	Data   jsoniter.RawMessage `json:"data"`
	Errors []gqlError          `json:"errors"`
}

var introReq = gqlReq{Query: introQuery, OperationName: "IntrospectionQuery"}

// ResponseError represents a GraphQL response carrying errors.
type ResponseError struct {
	Endpoint string
	Messages []string
}

func (e ResponseError) Error() string {
	return fmt.Sprintf("gqldoc: introspection of %s failed: %s", e.Endpoint, strings.Join(e.Messages, "; "))
}

// data returns the data of resp, or a ResponseError if resp has errors.
func (resp *gqlResp) data(endpoint string) ([]byte, error) {
	if len(resp.Errors) > 0 {
		rerr := ResponseError{Endpoint: endpoint}
		for _, e := range resp.Errors {
			rerr.Messages = append(rerr.Messages, e.Message)
		}
		return nil, rerr
	}

	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, ResponseError{Endpoint: endpoint, Messages: []string{"response has no data"}}
	}
	return resp.Data, nil
}

// expandHeaders returns a copy of headers with environment variables expanded.
func expandHeaders(headers http.Header) http.Header {
	hs := make(http.Header, len(headers))
	for k, v := range headers {
		for _, s := range v {
			hs.Add(k, os.ExpandEnv(s))
		}
	}
	return hs
}

// introspect POSTs the introspection query to endpoint and returns the data
// of the response.
//
func introspect(ctx context.Context, client *http.Client, endpoint *url.URL, headers http.Header) ([]byte, error) {
	body, err := json.Marshal(introReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header = expandHeaders(headers)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	zap.L().Info("fetching types via introspection", zap.String("endpoint", endpoint.Redacted()), zap.Strings("headers", headerNames(headers)))
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("received introspection response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(b)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("gqldoc: unexpected status from %s: %s", endpoint.Redacted(), resp.Status)
	}

	var gResp gqlResp
	if err = json.Unmarshal(b, &gResp); err != nil {
		return nil, fmt.Errorf("gqldoc: invalid response from %s: %w", endpoint.Redacted(), err)
	}
	return gResp.data(endpoint.Redacted())
}

// headerNames lists the names of headers, leaving out their values.
func headerNames(headers http.Header) []string {
	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	return names
}
