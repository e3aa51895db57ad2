package document

// Session records whether the editor content is associated with a file on
// disk, and which one. The path is non-empty exactly when HasFile is true.
type Session struct {
	hasFile bool
	path    string
}

// NewSession returns a session with no associated file.
func NewSession() *Session {
	return &Session{}
}

// RecordOpened associates the session with path. The path comes from a
// confirmed dialog and is not validated here.
func (s *Session) RecordOpened(path string) {
	s.hasFile = true
	s.path = path
}

// RecordClosed drops the file association. Calling it twice is harmless.
func (s *Session) RecordClosed() {
	s.hasFile = false
	s.path = ""
}

// CurrentTarget returns the associated path. ok is false when there is no
// target and the caller has to ask for one.
func (s *Session) CurrentTarget() (path string, ok bool) {
	if !s.hasFile {
		return "", false
	}
	return s.path, true
}

// HasFile reports whether the document is associated with a file.
func (s *Session) HasFile() bool { return s.hasFile }
