// Package detector infers which artifact, if any, a model reply asks for.
package detector

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"DocPipeline/internal/domain"
)

var (
	jsonBlock   = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	promptTag   = regexp.MustCompile(`(?i)\[PROMPT:\s*([^\]]+)\]`)
	markdownTbl = regexp.MustCompile(`\|(.+)\|\n *\|( *[-:]+[-| :]*?)\|\n((?: *\|.*(?:\n|$))+)`)
)

var errNotObject = errors.New("JSON block is not an object")

// keywords are checked in order after the structural signals.
var keywords = []struct {
	kind    domain.ArtifactKind
	pattern *regexp.Regexp
}{
	{domain.KindPdf, regexp.MustCompile(`\b(pdf|documento.*pdf)\b`)},
	{domain.KindExcel, regexp.MustCompile(`\b(excel|xlsx|planilha)\b`)},
	{domain.KindCsv, regexp.MustCompile(`\b(csv)\b`)},
}

// Detect runs the priority chain: chart block, prompt tag, table, keywords.
func Detect(text string) domain.DetectionOutcome {
	text = normalizeNewlines(text)
	if block, ok := ExtractJSONBlock(text); ok {
		if _, err := decodeObject(block); err == nil {
			return found(domain.KindChart, block)
		}
	}
	if m := promptTag.FindString(text); m != "" {
		return found(domain.KindImage, m)
	}
	if m := markdownTbl.FindString(text); m != "" {
		return found(domain.KindExcel, m)
	}

	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if m := kw.pattern.FindString(lower); m != "" {
			return found(kw.kind, m)
		}
	}
	return domain.DetectionOutcome{}
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

func found(kind domain.ArtifactKind, snippet string) domain.DetectionOutcome {
	return domain.DetectionOutcome{Detected: true, Kind: kind, Snippet: snippet}
}

// ExtractJSONBlock returns the body of the first fenced json block.
func ExtractJSONBlock(text string) (string, bool) {
	m := jsonBlock.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ExtractPrompt returns the trimmed text of the first [PROMPT: ...] tag.
func ExtractPrompt(text string) (string, bool) {
	m := promptTag.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	prompt := strings.TrimSpace(m[1])
	return prompt, prompt != ""
}

// ParseChartSpec decodes the fenced block of text into a chart configuration.
func ParseChartSpec(text string) (domain.ChartSpec, error) {
	block, ok := ExtractJSONBlock(text)
	if !ok {
		return nil, domain.ErrNoChartSpec
	}
	obj, err := decodeObject(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoChartSpec, err)
	}
	if _, ok := obj["data"].(map[string]any); !ok {
		return nil, fmt.Errorf("%w: missing data object", domain.ErrNoChartSpec)
	}
	return domain.ChartSpec(obj), nil
}

// decodeObject accepts strict JSON, then JSON5, then repaired JSON.
func decodeObject(block string) (map[string]any, error) {
	var obj map[string]any
	err := json.Unmarshal([]byte(block), &obj)
	if err == nil && obj != nil {
		return obj, nil
	}
	if err == nil {
		err = errNotObject
	}

	obj = nil
	if json5.Unmarshal([]byte(block), &obj) == nil && obj != nil {
		return obj, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(block)
	if repairErr != nil {
		return nil, fmt.Errorf("invalid JSON block: %w", err)
	}
	obj = nil
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil || obj == nil {
		return nil, errNotObject
	}
	return obj, nil
}
