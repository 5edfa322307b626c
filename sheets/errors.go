package sheets

import "fmt"

// ConfigurationError reports missing or malformed credential material or
// resource identifiers, detected before any remote call is made.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "sheets configuration: " + e.Reason
}

// SchemaError reports a tab whose layout cannot support the requested
// operation: no header row, or a key field absent from the header.
type SchemaError struct {
	Tab    string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("tab %q schema: %s", e.Tab, e.Reason)
}

// StoreUnavailableError reports a failed remote call (network, auth, quota,
// unknown tab). It is never retried here; callers decide.
type StoreUnavailableError struct {
	Op  string
	Tab string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("sheets %s on tab %q: %v", e.Op, e.Tab, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// NotFoundError reports a lookup whose target the caller expected to exist.
type NotFoundError struct {
	Tab string
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no row in tab %q for key %q", e.Tab, e.Key)
}
