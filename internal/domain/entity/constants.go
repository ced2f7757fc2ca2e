package entity

// Expenditure classification of a PO folder
const (
	CapexOpexCapex = "CAPEX"
	CapexOpexOpex  = "OPEX"
)

// ITRefUnknown is stored when a folder name carries no IT-<digits> reference
const ITRefUnknown = "IT-UNKNOWN"

// UntitledPO is the title used when a folder name yields no tokens
const UntitledPO = "Untitled"

// StepCount is the fixed number of checklist steps per PO folder
const StepCount = 9
