package models

// FileIndexVersion is the only FileIndexStore layout this build reads.
// Stores carrying any other version are discarded, never migrated.
const FileIndexVersion = 2

// FileIndexStorePath is the location of the desktop index file relative to
// the vault root.
const FileIndexStorePath = ".moryflow/file-index.json"

// FileIndexKVPrefix prefixes the key-value storage key of a vault index.
// The full key is the prefix followed by the vault path.
const FileIndexKVPrefix = "moryflow:file-index:"

// TrackedExtension is the extension of files the sync engine tracks.
const TrackedExtension = ".md"

// FileEntry is the sync metadata of one tracked file. Path is the identity key.
type FileEntry struct {
	// Path is relative to the vault root and uses forward slashes.
	Path string `json:"path"`

	// Hash is the lowercase hex SHA-256 digest of the file content.
	Hash string `json:"hash"`

	// VectorClock records which devices changed the content and how often.
	VectorClock VectorClock `json:"vectorClock"`

	// Mtime is the device-local modification time in unix milliseconds.
	Mtime int64 `json:"mtime"`

	// Size is the content length in bytes, when known.
	Size *int64 `json:"size,omitempty"`

	// Deleted marks a tombstone: the file was removed locally and the
	// deletion has not yet been confirmed by the server.
	Deleted bool `json:"deleted,omitempty"`
}

// Clone returns a copy of the entry that shares no mutable state with e.
func (e FileEntry) Clone() FileEntry {
	clone := e
	clone.VectorClock = e.VectorClock.Clone()
	if e.Size != nil {
		size := *e.Size
		clone.Size = &size
	}
	return clone
}

// Summary projects the entry onto its wire representation.
func (e FileEntry) Summary() FileSummary {
	return FileSummary{
		Path:        e.Path,
		Hash:        e.Hash,
		VectorClock: e.VectorClock.Clone(),
		Deleted:     e.Deleted,
	}
}

// FileIndexStore is the persisted manifest of a vault's tracked files.
type FileIndexStore struct {
	Version int         `json:"version"`
	Files   []FileEntry `json:"files"`
}

// NewFileIndexStore returns an empty store stamped with [FileIndexVersion].
func NewFileIndexStore() FileIndexStore {
	return FileIndexStore{Version: FileIndexVersion, Files: []FileEntry{}}
}

// ByPath indexes the store entries by path.
func (s FileIndexStore) ByPath() map[string]FileEntry {
	out := make(map[string]FileEntry, len(s.Files))
	for _, f := range s.Files {
		out[f.Path] = f
	}
	return out
}
