package shared

import (
	"encoding/json"
	"net/http"
)

// DecodeJSON decodes the request body into the given struct.
// Unknown fields are rejected so typos in payloads surface as 400s instead
// of silently ignored fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
