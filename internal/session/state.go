package session

// State represents persisted reader state. Theme is the literal "dark" or
// "light" string; empty means no explicit preference was ever made.
type State struct {
	Theme      string `json:"theme,omitempty"`
	ShowTagBar bool   `json:"show_tag_bar"`
}

// Default returns the default session state.
func Default() State {
	return State{
		ShowTagBar: true,
	}
}
