package models

// ErrorResponse is the JSON error body. Optional slices name the accepted
// values when a selection was invalid.
type ErrorResponse struct {
	Error             string   `json:"error"`
	Message           string   `json:"message,omitempty"`
	Details           string   `json:"details,omitempty"`
	AvailablePlans    []string `json:"availablePlans,omitempty"`
	AvailableServices []string `json:"availableServices,omitempty"`
	Required          []string `json:"required,omitempty"`
}

func ErrorWith(err string) ErrorResponse {
	return ErrorResponse{Error: err}
}
