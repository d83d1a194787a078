package views

// Messages shared between views and the app model

// BuildRequestMsg asks the app to build a summary from raw selector input.
type BuildRequestMsg struct {
	Input string
}

// SummaryMsg carries a finished summary to the preview view.
type SummaryMsg struct {
	Summary string
}

// BackMsg returns to the prompt view.
type BackMsg struct{}

// ErrMsg carries an error to be shown in the active view.
type ErrMsg struct {
	Err error
}
