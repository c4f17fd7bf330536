package models

// MessageLog is the append-only list of messages shown by one view.
// It has no capacity bound and no deduplication; order is arrival order.
type MessageLog struct {
	messages []DisplayMessage
}

// Append adds msg to the end of the log
func (l *MessageLog) Append(msg DisplayMessage) {
	l.messages = append(l.messages, msg)
}

// Ingest parses frame and appends it on success.
// A malformed frame leaves the log untouched.
func (l *MessageLog) Ingest(frame []byte) (DisplayMessage, error) {
	msg, err := ParseFrame(frame)
	if err != nil {
		return DisplayMessage{}, err
	}
	l.Append(msg)
	return msg, nil
}

// Len returns the number of messages
func (l *MessageLog) Len() int {
	return len(l.messages)
}

// Messages returns the messages in arrival order.
// The returned slice must not be modified.
func (l *MessageLog) Messages() []DisplayMessage {
	return l.messages
}

// LatestAnswer returns the answer of the newest message that has one
func (l *MessageLog) LatestAnswer() (string, bool) {
	for i := len(l.messages) - 1; i >= 0; i-- {
		if answer := l.messages[i].Answer(); answer != "" {
			return answer, true
		}
	}
	return "", false
}
