package assembler

import (
	"encoding/json"
	"fmt"
)

// Input is the serialized form of a detection set: the pages to assemble
// plus an optional tag naming the pipeline that produced them. It is the
// shared wire shape of the CLI input file and the HTTP API request body.
type Input struct {
	DetectionOrigin string `json:"detection_origin,omitempty"`
	Pages           []Page `json:"pages"`
}

// ParseInput decodes detection input from JSON. Both the object form
// ({"pages": [...]}) and a bare page array are accepted.
func ParseInput(data []byte) (*Input, error) {
	var in Input
	if err := json.Unmarshal(data, &in); err == nil && in.Pages != nil {
		return &in, nil
	}

	var pages []Page
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parsing detection input: %w", err)
	}
	return &Input{Pages: pages}, nil
}
