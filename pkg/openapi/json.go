package openapi

import (
	"encoding/json"
	"os"
)

// MarshalJSON renders the document as two-space-indented JSON, the form
// served at /openapi.json and checked into generated artifacts.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// WriteJSON renders the document and writes it to filename.
func WriteJSON(spec *Spec, filename string) error {
	data, err := MarshalJSON(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
