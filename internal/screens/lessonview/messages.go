package lessonview

// refreshedMsg is sent when a server round trip completed and the open
// lesson state is current again.
type refreshedMsg struct{ err error }

// blockSavedMsg is sent when a block edit commit finished.
type blockSavedMsg struct{ err error }

// checkedMsg is sent when an answer check came back.
type checkedMsg struct{ err error }

// generatedMsg is sent when lesson content generation finished.
type generatedMsg struct {
	added int
	err   error
}
