package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter renders a comparison set as a JSON document ending in a
// newline, the same shape the breakup JSON export uses.
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the comparison set. Descriptions and recommendations are
// written verbatim, without HTML escaping.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", err
	}
	return buf.String(), nil
}
