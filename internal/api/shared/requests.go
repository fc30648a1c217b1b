package shared

import (
	"encoding/json"
	"errors"
	"net/http"
)

// MaxBodyBytes caps request bodies; articles are text, not uploads.
const MaxBodyBytes = 5 << 20

// ErrNotJSONObject is returned when a body is valid JSON but not an object.
var ErrNotJSONObject = errors.New("request body is not a JSON object")

// DecodeJSONObject decodes the request body as a JSON object. Numbers are
// decoded as float64.
func DecodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	var raw any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&raw); err != nil {
		return nil, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNotJSONObject
	}
	return obj, nil
}
