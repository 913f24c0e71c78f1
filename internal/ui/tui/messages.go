package tui

// levelLoadedMsg carries the next list down the tree, or why it could not
// be built.
type levelLoadedMsg struct {
	frame frame
	err   error
}
