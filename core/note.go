package core

// ReleaseNote is one pending change entry parsed from `<Number>.md`.
type ReleaseNote struct {
	// Number is the pull request number taken from the file name.
	Number   string
	Category string
	Authors  []string
	// Body is the trimmed free text describing the change.
	Body string
}

// FileName returns the name of the file the note is stored in.
func (n ReleaseNote) FileName() string {
	return n.Number + ".md"
}
