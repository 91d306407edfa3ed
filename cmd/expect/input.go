package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readInput reads a file, or stdin when path is "-" or empty.
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// decodeValue decodes a JSON document, falling back to YAML. JSON numbers
// are kept as json.Number so large integers survive.
func decodeValue(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	jsonErr := dec.Decode(&v)
	if jsonErr == nil {
		return v, nil
	}

	var y any
	if err := yaml.Unmarshal(trimmed, &y); err != nil {
		return nil, fmt.Errorf("input is neither JSON (%v) nor YAML (%w)", jsonErr, err)
	}
	return y, nil
}
