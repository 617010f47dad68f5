package request

import "fmt"

// Message is the JSON body of a plain response.
type Message struct {
	Message string `json:"message"`
}

// NewMessage creates a new Message, formatting it when args are provided.
func NewMessage(message string, args ...any) *Message {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return &Message{
		Message: message,
	}
}

// MessageError is a response carrying both a message for the caller and the underlying error. An example is a
// request body that decodes but fails validation: the message says what was wrong, the error says why.
type MessageError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewMessageError creates a new MessageError.
func NewMessageError(message string, err error) *MessageError {
	me := &MessageError{
		Message: message,
	}
	if err != nil {
		me.Error = err.Error()
	}
	return me
}
