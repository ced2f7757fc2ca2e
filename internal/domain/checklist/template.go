// Package checklist holds the fixed 9-step PO checklist and the pure rules
// derived from it: folder-name parsing, step completion, PO progress and
// payment overdue detection.
package checklist

// HintLink identifies a configured quick link shown on a step
type HintLink string

const (
	HintCapexOpexTemplate HintLink = "CAPEX_OPEX_TEMPLATE"
	HintSharePoint        HintLink = "SHAREPOINT"
	HintMasterlist        HintLink = "MASTERLIST"
)

// StepTemplate describes one step of the fixed checklist
type StepTemplate struct {
	No            int
	Title         string
	Description   string
	NeedsCheckbox bool
	AcceptsUpload bool
	Hints         []HintLink
}

// PaymentStepNo is the step whose age is watched for overdue payments
const PaymentStepNo = 9

var steps = []StepTemplate{
	{No: 1, Title: "Quotations", Description: "Please upload quotations.", AcceptsUpload: true},
	{No: 2, Title: "Create Capex/Opex Form in Excel", Description: "Fill in the CAPEX/OPEX form and upload the file.",
		AcceptsUpload: true, Hints: []HintLink{HintCapexOpexTemplate}},
	{No: 3, Title: "Combine Capex/Opex Form with Quotations",
		Description:   "Combine CAPEX/OPEX form with the quotations. If multiple vendor, put the chosen one first.",
		AcceptsUpload: true},
	{No: 4, Title: "Signed Combined File",
		Description:   "Please upload the signed CAPEX/OPEX form here and tick the checkbox after signed.",
		NeedsCheckbox: true, AcceptsUpload: true},
	{No: 5, Title: "Update Signed Capex/Opex Form to Admin",
		Description:   "Update to SharePoint and upload to Masterlist. Tick checkbox after done.",
		NeedsCheckbox: true, Hints: []HintLink{HintSharePoint, HintMasterlist}},
	{No: 6, Title: "PO",
		Description:   "Get PO from Admin, send it back to manager on Outlook. Upload PO here and tick checkbox after sending.",
		NeedsCheckbox: true, AcceptsUpload: true},
	{No: 7, Title: "Invoice", Description: "Get invoice from vendor and upload here.", AcceptsUpload: true},
	{No: 8, Title: "Update Invoice to Admin",
		Description:   "Upload invoice on Masterlist and SharePoint folder. Tick checkbox after done.",
		NeedsCheckbox: true, Hints: []HintLink{HintSharePoint, HintMasterlist}},
	{No: 9, Title: "Admin Make Payment",
		Description:   "Tick checkbox when payment is made. Optional: upload proof of payment.",
		NeedsCheckbox: true, AcceptsUpload: true},
}

// Steps returns a copy of the fixed checklist in step order
func Steps() []StepTemplate {
	out := make([]StepTemplate, len(steps))
	for i, s := range steps {
		out[i] = s.clone()
	}
	return out
}

// Lookup returns the template for a step number
func Lookup(stepNo int) (StepTemplate, bool) {
	if stepNo < 1 || stepNo > len(steps) {
		return StepTemplate{}, false
	}
	return steps[stepNo-1].clone(), true
}

func (s StepTemplate) clone() StepTemplate {
	s.Hints = append([]HintLink(nil), s.Hints...)
	return s
}
