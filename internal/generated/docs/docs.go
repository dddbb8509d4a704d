// Package docs publishes the OpenAPI contract through swag so that
// echo-swagger can serve it at /swagger/doc.json.
package docs

import (
	"fmt"
	"sync"

	"pizzeria/api"

	"github.com/swaggo/swag"
)

var (
	registerOnce sync.Once
	registerErr  error
)

type document struct {
	json string
}

func (d document) ReadDoc() string {
	return d.json
}

// Register renders the contract as JSON and registers it under swag.Name.
// Repeated calls return the outcome of the first one.
func Register() error {
	registerOnce.Do(func() {
		doc, err := api.Spec()
		if err != nil {
			registerErr = err
			return
		}
		raw, err := doc.MarshalJSON()
		if err != nil {
			registerErr = fmt.Errorf("render openapi document: %w", err)
			return
		}
		swag.Register(swag.Name, document{json: string(raw)})
	})
	return registerErr
}
