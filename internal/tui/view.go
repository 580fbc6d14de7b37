package tui

// UIState represents which surface has focus.
type UIState int

const (
	stateChatting UIState = iota
	stateContact
)

func (s UIState) String() string {
	switch s {
	case stateChatting:
		return "chatting"
	case stateContact:
		return "contact"
	default:
		return "unknown"
	}
}
