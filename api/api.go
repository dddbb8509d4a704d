// Package api holds the OpenAPI contract of the pizzeria HTTP interface.
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yml
var spec []byte

// Spec parses the embedded OpenAPI document. Each call returns a fresh copy.
func Spec() (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	return doc, nil
}

// Raw returns the embedded document as written.
func Raw() []byte {
	return append([]byte(nil), spec...)
}
