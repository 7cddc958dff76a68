package organizer

// SetRenameForTests replaces the rename call and returns a restore func.
func SetRenameForTests(fn func(oldpath, newpath string) error) func() {
	prev := renameFile
	renameFile = fn
	return func() {
		renameFile = prev
	}
}
