package graphql

import "encoding/json"

// Document is a named GraphQL operation text.
type Document struct {
	Name  string
	Query string
}

// Operation is a Document bound to variables, as it travels through links.
type Operation struct {
	Document
	Variables map[string]any
}

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ErrorItem     `json:"errors"`
}

// cacheKey identifies a query result. json.Marshal sorts map keys, so equal
// variables give equal keys.
func cacheKey(doc Document, vars map[string]any) string {
	b, err := json.Marshal(vars)
	if err != nil {
		return doc.Query
	}
	return doc.Query + "\x00" + string(b)
}
