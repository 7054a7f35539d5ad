package wire

// UnknownMessage carries the raw payload of a command this codec does
// not recognize. Per spec §4.2, an unrecognized command is not an error —
// it is handed to the caller opaquely so a future protocol extension
// doesn't break an older client.
type UnknownMessage struct {
	Command string
	Payload []byte
}

// AsUnknown wraps a frame whose command has no registered parser.
func AsUnknown(m Message) UnknownMessage {
	return UnknownMessage{Command: m.Command, Payload: m.Payload}
}
