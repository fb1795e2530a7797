package core

import "fmt"

// ConfigurationError indicates live mode was requested without a usable
// endpoint or API key. No network call is attempted in this case.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// UpstreamError is a non-2xx answer from the live agent endpoint.
type UpstreamError struct {
	StatusCode int
	Status     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("agent endpoint error: %d %s", e.StatusCode, e.Status)
}

// NetworkError is a transport failure reaching the live endpoint. The
// user-facing message is stable; the original cause is kept for logs only.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return "failed to connect to the agent endpoint, check your endpoint and API key"
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// DataError is a malformed scenario library entry. It is fatal to simulated
// mode and raised at load time, never during classification.
type DataError struct {
	ScenarioID string
	Reason     string
}

func (e *DataError) Error() string {
	if e.ScenarioID == "" {
		return fmt.Sprintf("scenario library error: %s", e.Reason)
	}
	return fmt.Sprintf("scenario library error: scenario %q: %s", e.ScenarioID, e.Reason)
}
