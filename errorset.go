package goSession

import "strings"

// ErrorSet is an ordered collection of human-readable validation messages.
// It is owned by a single [Session]; validators append to it through
// [ErrorSet.Add] and the lifecycle clears it on each save attempt and on
// destroy. The zero value is ready to use.
type ErrorSet struct {
	messages []string
}

// Add appends a validation message. Empty messages are ignored.
func (e *ErrorSet) Add(message string) {
	if message == "" {
		return
	}
	e.messages = append(e.messages, message)
}

// Clear removes all messages.
func (e *ErrorSet) Clear() {
	e.messages = e.messages[:0]
}

// Empty reports whether the set holds no messages.
func (e *ErrorSet) Empty() bool {
	return len(e.messages) == 0
}

// Len returns the number of messages.
func (e *ErrorSet) Len() int {
	return len(e.messages)
}

// Messages returns a copy of the messages in insertion order.
func (e *ErrorSet) Messages() []string {
	out := make([]string, len(e.messages))
	copy(out, e.messages)
	return out
}

// ToSentence joins the messages into a natural-language sentence:
// "a" for one message, "a and b" for two, "a, b, and c" beyond that.
func (e *ErrorSet) ToSentence() string {
	return joinSentence(e.messages)
}

func joinSentence(messages []string) string {
	switch len(messages) {
	case 0:
		return ""
	case 1:
		return messages[0]
	case 2:
		return messages[0] + " and " + messages[1]
	default:
		return strings.Join(messages[:len(messages)-1], ", ") + ", and " + messages[len(messages)-1]
	}
}
