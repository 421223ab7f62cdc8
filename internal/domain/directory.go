package domain

// DirectoryEntry is a read-only view of a user record in the external
// directory. An empty PushAddress means the user cannot receive push
// delivery; that is not an error condition.
type DirectoryEntry struct {
	ID          string
	IsAdmin     bool
	PushAddress string
}
