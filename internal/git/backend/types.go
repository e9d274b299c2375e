package backend

type Ref struct {
	Name string // full name: refs/remotes/origin/main
	Hash string
}

// FileState is the change recorded for a path in one scope (index or working
// tree).
type FileState uint8

const (
	Unmodified FileState = iota
	Modified
	Deleted
	New
	TypeChange
	Renamed
	Conflicted
)

func (s FileState) String() string {
	switch s {
	case Unmodified:
		return "Unmodified"
	case Modified:
		return "Modified"
	case Deleted:
		return "Deleted"
	case New:
		return "New"
	case TypeChange:
		return "TypeChange"
	case Renamed:
		return "Renamed"
	case Conflicted:
		return "Conflicted"
	default:
		return "Unknown"
	}
}

type StatusEntry struct {
	Path     string
	Staging  FileState
	Worktree FileState
}

// Changed reports a tracked file that differs from the index on disk.
func (e StatusEntry) Changed() bool {
	switch e.Worktree {
	case Modified, Deleted, TypeChange, Renamed:
		return true
	}
	return false
}

// Untracked reports a file that exists only in the working tree.
func (e StatusEntry) Untracked() bool {
	return e.Worktree == New
}

// Staged reports a path whose index entry differs from HEAD.
func (e StatusEntry) Staged() bool {
	switch e.Staging {
	case Modified, Deleted, TypeChange, Renamed, New:
		return true
	}
	return false
}

// Clean reports an entry carrying no change in either scope.
func (e StatusEntry) Clean() bool {
	return e.Staging == Unmodified && e.Worktree == Unmodified
}
