package matchers

import (
	"fmt"
	"testing"

	"literature-client/pkg/protocol"
)

// ActionMatcher matches a transport.Send payload carrying an outbound
// action of the given type.
type ActionMatcher struct {
	Matcher
	kind    protocol.ActionType
	payload []byte
	action  protocol.Payload
}

func NewActionMatcher(t *testing.T, kind protocol.ActionType) *ActionMatcher {
	return &ActionMatcher{
		Matcher: *NewMatcher(t),
		kind:    kind,
	}
}

func (m *ActionMatcher) Matches(x interface{}) bool {
	payload, ok := x.([]byte)
	if !ok {
		return false
	}

	action, err := protocol.UnmarshalAction(payload)
	if err != nil {
		return false
	}

	if action.Kind() != m.kind {
		return false
	}

	m.payload = payload
	m.action = action
	m.triggered <- action
	return true
}

func (m *ActionMatcher) String() string {
	return fmt.Sprintf("is %s action", m.kind)
}

func (m *ActionMatcher) Wait() protocol.Payload {
	return m.Matcher.Wait().(protocol.Payload)
}
