package game

// MessageCapacity is the number of messages kept.
const MessageCapacity = 3

// MessageLog is a fixed-capacity ring of the most recent messages. Adding
// to a full log drops the oldest entry.
type MessageLog struct {
	buf   [MessageCapacity]string
	start int
	n     int
}

// NewMessageLog returns a log holding the last MessageCapacity of msgs.
func NewMessageLog(msgs ...string) *MessageLog {
	l := &MessageLog{}
	for _, m := range msgs {
		l.Add(m)
	}
	return l
}

// Add appends a message.
func (l *MessageLog) Add(msg string) {
	if l.n < MessageCapacity {
		l.buf[(l.start+l.n)%MessageCapacity] = msg
		l.n++
		return
	}
	l.buf[l.start] = msg
	l.start = (l.start + 1) % MessageCapacity
}

// Messages returns the stored messages, oldest first.
func (l *MessageLog) Messages() []string {
	out := make([]string, l.n)
	for i := 0; i < l.n; i++ {
		out[i] = l.buf[(l.start+i)%MessageCapacity]
	}
	return out
}

// Len returns the number of stored messages.
func (l *MessageLog) Len() int {
	return l.n
}

// Last returns the most recent message, or "" if the log is empty.
func (l *MessageLog) Last() string {
	if l.n == 0 {
		return ""
	}
	return l.buf[(l.start+l.n-1)%MessageCapacity]
}
