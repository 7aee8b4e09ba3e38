package utils

// MaxRecentFiles bounds the recently-opened list kept per vault.
const MaxRecentFiles = 3

// BuildRecentFilesList moves path to the front of list, drops duplicates and
// keeps at most MaxRecentFiles entries. list is not modified.
func BuildRecentFilesList(list []string, path string) []string {
	out := make([]string, 0, MaxRecentFiles)
	out = append(out, path)
	for _, p := range list {
		if len(out) == MaxRecentFiles {
			break
		}
		if p == path {
			continue
		}
		out = append(out, p)
	}
	return out
}
