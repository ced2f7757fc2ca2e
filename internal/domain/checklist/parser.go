package checklist

import (
	"regexp"
	"strings"

	"github.com/Jowenthebui/PO-Tracking/internal/domain/entity"
)

var itRefPattern = regexp.MustCompile(`(?i)IT-\d+`)

// FolderInfo is the structured data carried by a PO folder name
type FolderInfo struct {
	CapexOpex string `json:"capex_opex"`
	ITRefNo   string `json:"it_ref_no"`
	Title     string `json:"title"`
}

// ParseFolderName extracts classification, IT reference and title from a
// folder name following YYYY-MM-IT-NNN_Capex|Opex_Title. It never fails:
// missing parts fall back to CAPEX, IT-UNKNOWN and Untitled.
func ParseFolderName(folderName string) FolderInfo {
	raw := strings.TrimSpace(folderName)
	tokens := tokenize(raw)

	info := FolderInfo{
		CapexOpex: entity.CapexOpexCapex,
		ITRefNo:   entity.ITRefUnknown,
		Title:     entity.UntitledPO,
	}

	for _, tok := range tokens {
		switch strings.ToLower(tok) {
		case "capex":
			info.CapexOpex = entity.CapexOpexCapex
		case "opex":
			info.CapexOpex = entity.CapexOpexOpex
		}
	}

	if m := itRefPattern.FindString(raw); m != "" {
		info.ITRefNo = strings.ToUpper(m)
	}

	marker := -1
	for i, tok := range tokens {
		if isClassification(tok) {
			marker = i
			break
		}
	}

	switch {
	case marker >= 0 && marker+1 < len(tokens):
		info.Title = strings.Join(tokens[marker+1:], " ")
	case len(tokens) > 0:
		info.Title = strings.Join(tokens[1:], " ")
		if info.Title == "" {
			info.Title = raw
		}
	}

	return info
}

// tokenize splits on underscores and whitespace, dropping empty pieces
func tokenize(raw string) []string {
	var tokens []string
	for _, part := range strings.Split(raw, "_") {
		tokens = append(tokens, strings.Fields(part)...)
	}
	return tokens
}

func isClassification(tok string) bool {
	low := strings.ToLower(tok)
	return low == "capex" || low == "opex"
}
