package backend

import (
	"errors"
	"strings"
	"testing"
)

func TestParseStatusPorcelainV2(t *testing.T) {
	t.Parallel()

	nul := func(recs ...string) string {
		return strings.Join(recs, "\x00") + "\x00"
	}

	tests := []struct {
		name string
		in   string
		want []StatusEntry
	}{
		{name: "empty", in: "", want: nil},
		{
			name: "worktree_only",
			in:   nul("1 .M N... 100644 100644 100644 abcdef0 abcdef0 path.txt"),
			want: []StatusEntry{{Path: "path.txt", Worktree: Modified}},
		},
		{
			name: "staged_only",
			in:   nul("1 M. N... 100644 100644 100644 abcdef0 abcdef0 path.txt"),
			want: []StatusEntry{{Path: "path.txt", Staging: Modified}},
		},
		{
			name: "both",
			in:   nul("1 MM N... 100644 100644 100644 abcdef0 abcdef0 path.txt"),
			want: []StatusEntry{{Path: "path.txt", Staging: Modified, Worktree: Modified}},
		},
		{
			name: "added_then_deleted",
			in:   nul("1 AD N... 000000 100644 000000 0000000 abcdef0 gone.txt"),
			want: []StatusEntry{{Path: "gone.txt", Staging: New, Worktree: Deleted}},
		},
		{
			name: "typechange",
			in:   nul("1 .T N... 100644 100644 120000 abcdef0 abcdef0 link"),
			want: []StatusEntry{{Path: "link", Worktree: TypeChange}},
		},
		{
			name: "path_with_spaces",
			in:   nul("1 .M N... 100644 100644 100644 abcdef0 abcdef0 dir/a file.txt"),
			want: []StatusEntry{{Path: "dir/a file.txt", Worktree: Modified}},
		},
		{
			name: "rename_consumes_original_path",
			in: nul(
				"2 R. N... 100644 100644 100644 abcdef0 abcdef0 R100 new.txt",
				"old.txt",
				"? untracked.txt",
			),
			want: []StatusEntry{
				{Path: "new.txt", Staging: Renamed},
				{Path: "untracked.txt", Worktree: New},
			},
		},
		{
			name: "unmerged",
			in:   nul("u UU N... 100644 100644 100644 100644 abcdef0 abcdef0 abcdef0 conflict.txt"),
			want: []StatusEntry{{Path: "conflict.txt", Staging: Conflicted, Worktree: Conflicted}},
		},
		{
			name: "untracked",
			in:   nul("? untracked.txt"),
			want: []StatusEntry{{Path: "untracked.txt", Worktree: New}},
		},
		{
			name: "headers_and_ignored_skipped",
			in:   nul("# branch.oid abcdef0", "# branch.head main", "! ignored.txt"),
			want: nil,
		},
		{
			name: "missing_trailing_nul",
			in:   "? last.txt",
			want: []StatusEntry{{Path: "last.txt", Worktree: New}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseStatusPorcelainV2(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("parseStatusPorcelainV2() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseStatusPorcelainV2() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseStatusPorcelainV2_Malformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"1 .M N... 100644\x00",
		"2 R. N... 100644 100644 100644 abcdef0 abcdef0 R100 new.txt\x00",
		"u UU N...\x00",
	} {
		if _, err := parseStatusPorcelainV2(strings.NewReader(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseStatusPorcelainV2_Error(t *testing.T) {
	t.Parallel()

	_, err := parseStatusPorcelainV2(failingReader{})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseLeftRightCount(t *testing.T) {
	t.Parallel()

	ahead, behind, err := parseLeftRightCount("2\t3\n")
	if err != nil {
		t.Fatalf("parseLeftRightCount() error = %v", err)
	}
	if ahead != 2 || behind != 3 {
		t.Fatalf("parseLeftRightCount() = (%d, %d), want (2, 3)", ahead, behind)
	}

	for _, in := range []string{"", "2\n", "a\t3\n", "2\tb\n", "1\t2\t3\n"} {
		if _, _, err := parseLeftRightCount(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}
