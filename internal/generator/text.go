package generator

import (
	"bytes"
	"encoding/json"

	"DocPipeline/internal/detector"
)

func plainFromText(text string) ([]byte, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, errEmptyOutput
	}
	return []byte(cleaned + "\n"), nil
}

// jsonFromText prefers a fenced json block and pretty-prints when it parses.
func jsonFromText(text string) ([]byte, error) {
	body, ok := detector.ExtractJSONBlock(text)
	if !ok {
		body = CleanText(text)
	}
	if body == "" {
		return nil, errEmptyOutput
	}

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(body), "", "  "); err != nil {
		return []byte(body + "\n"), nil
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
