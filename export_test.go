package tempfile

// resetDefaults clears the write-once process defaults so tests that
// exercise the override protocol do not poison the rest of the binary.
func resetDefaults() {
	defaults.Lock()
	defer defaults.Unlock()
	defaults.dir = ""
	defaults.dirSet = false
	defaults.prefix = ""
	defaults.prefixSet = false
	defaults.osTemp = ""
}
