package changelog

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed example.yaml
var embeddedExample []byte

// Example returns the raw embedded example releases file.
// It is written by "relnotes init" as a starting point.
func Example() []byte {
	return embeddedExample
}

// LoadExample parses and validates the embedded example releases.
func LoadExample() ([]Release, error) {
	if len(embeddedExample) == 0 {
		return nil, fmt.Errorf("embedded example is empty (binary may have been built without embedded content)")
	}

	return LoadFromReader(bytes.NewReader(embeddedExample))
}
