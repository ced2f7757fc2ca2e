package service

import "github.com/Jowenthebui/PO-Tracking/internal/domain/checklist"

// Links holds the configured quick-link URLs
type Links struct {
	Notion            string
	Masterlist        string
	SharePoint        string
	CapexOpexTemplate string
}

// StepLink is a rendered hint link on a step
type StepLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// ForStep resolves the hint links of a step template. Blank URLs are dropped.
func (l Links) ForStep(tpl checklist.StepTemplate) []StepLink {
	links := make([]StepLink, 0, len(tpl.Hints))
	for _, hint := range tpl.Hints {
		var link StepLink
		switch hint {
		case checklist.HintCapexOpexTemplate:
			link = StepLink{Label: "Capex/Opex Template", URL: l.CapexOpexTemplate}
		case checklist.HintSharePoint:
			link = StepLink{Label: "SharePoint", URL: l.SharePoint}
		case checklist.HintMasterlist:
			link = StepLink{Label: "Masterlist", URL: l.Masterlist}
		}
		if link.URL != "" {
			links = append(links, link)
		}
	}
	return links
}

// Quick returns the links shown in the page header
func (l Links) Quick() []StepLink {
	all := []StepLink{
		{Label: "Notion", URL: l.Notion},
		{Label: "Masterlist", URL: l.Masterlist},
		{Label: "SharePoint", URL: l.SharePoint},
		{Label: "Capex/Opex Template", URL: l.CapexOpexTemplate},
	}
	links := make([]StepLink, 0, len(all))
	for _, link := range all {
		if link.URL != "" {
			links = append(links, link)
		}
	}
	return links
}
