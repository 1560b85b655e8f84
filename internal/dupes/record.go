package dupes

// FileRecord is one regular file found by the walker. Order is the
// discovery index within a single walk and is the canonical tie-break.
type FileRecord struct {
	Path  string
	Size  int64
	Order int
}

// HashedRecord is a FileRecord with its content digest.
type HashedRecord struct {
	FileRecord
	Digest string
}

// SizeBucket holds every candidate of one exact byte size, in walk order.
type SizeBucket struct {
	Size  int64
	Files []FileRecord
}

// Group is a set of byte-identical files. Canonical is the earliest
// discovered member; Duplicates are the rest, in walk order.
type Group struct {
	Size       int64
	Digest     string
	Canonical  HashedRecord
	Duplicates []HashedRecord
}

// Duplicate is one entry of a scan result: a file whose content equals
// the file at DuplicateOf.
type Duplicate struct {
	Path        string `json:"path"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	DuplicateOf string `json:"duplicate_of"`
}

// State is a phase of the scan orchestrator.
type State int

const (
	StateIdle State = iota
	StateEnumeratingFiles
	StateGroupingBySize
	StateHashing
	StateGroupingByDigest
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:             "idle",
	StateEnumeratingFiles: "enumerating files",
	StateGroupingBySize:   "grouping by size",
	StateHashing:          "hashing",
	StateGroupingByDigest: "grouping by digest",
	StateDone:             "done",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
