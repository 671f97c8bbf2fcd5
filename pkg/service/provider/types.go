package provider

// slotsResponse is the provider's wire format. The contract is opaque
// beyond "zero or more slots per pair"; unknown detail fields are carried
// through as-is.
type slotsResponse struct {
	Slots []slotEntry `json:"slots"`
}

type slotEntry struct {
	Country string         `json:"country"`
	City    string         `json:"city"`
	Date    string         `json:"date"`
	Details map[string]any `json:"details,omitempty"`
}
