package protocol

import "fmt"

// ProtocolError is raised by framing/codec violations. The network layer
// reacts by kicking the offending peer with this reason; it is never
// fatal to the host.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol violation: %s", e.Reason)
}

func newProtocolError(format string, args ...any) *ProtocolError {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}
