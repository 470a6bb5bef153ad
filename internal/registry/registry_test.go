package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Iron-Ham/vslaunch/internal/editor"
)

// stubAutomation is a do-nothing automation handle; identity is all these tests need.
type stubAutomation struct{}

func (stubAutomation) Solution() (editor.SolutionInfo, error) { return editor.SolutionInfo{}, nil }
func (stubAutomation) OpenSolution(string) error { return nil }
func (stubAutomation) OpenFile(string) (editor.Window, error) { return nil, nil }
func (stubAutomation) ActivateMainWindow() error { return nil }

// fakeRegistry returns a fixed listing and counts enumerations.
type fakeRegistry struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	calls   int
}

func (f *fakeRegistry) Enumerate(context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.entries, f.err
}

func entry(name string) Entry {
	return Entry{Name: name, Automation: stubAutomation{}}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSnapshot_List(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    []string
	}{
		{
			name:    "empty registry",
			entries: nil,
			want:    []string{},
		},
		{
			name: "filters by prefix",
			entries: []Entry{
				entry("!VisualStudio.DTE.17.0:100"),
				entry("!SomethingElse:200"),
				entry("!VisualStudio.DTE.16.0:300"),
			},
			want: []string{"!VisualStudio.DTE.17.0:100", "!VisualStudio.DTE.16.0:300"},
		},
		{
			name: "skips entries without automation",
			entries: []Entry{
				{Name: "!VisualStudio.DTE.17.0:100"},
				entry("!VisualStudio.DTE.17.0:200"),
			},
			want: []string{"!VisualStudio.DTE.17.0:200"},
		},
		{
			name: "drops duplicate identities",
			entries: []Entry{
				entry("!VisualStudio.DTE.17.0:100"),
				entry("!VisualStudio.DTE.17.0:100"),
			},
			want: []string{"!VisualStudio.DTE.17.0:100"},
		},
		{
			name: "keeps registry order",
			entries: []Entry{
				entry("!VisualStudio.DTE.17.0:300"),
				entry("!VisualStudio.DTE.17.0:100"),
				entry("!VisualStudio.DTE.17.0:200"),
			},
			want: []string{
				"!VisualStudio.DTE.17.0:300",
				"!VisualStudio.DTE.17.0:100",
				"!VisualStudio.DTE.17.0:200",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewSnapshot(&fakeRegistry{entries: tt.entries}, "!VisualStudio.DTE", nil)
			got := names(snap.List(context.Background()))
			if len(got) != len(tt.want) {
				t.Fatalf("List() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("List()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSnapshot_ListRegistryError(t *testing.T) {
	reg := &fakeRegistry{
		entries: []Entry{entry("!VisualStudio.DTE.17.0:100")},
		err:     errors.New("rot unavailable"),
	}
	snap := NewSnapshot(reg, "!VisualStudio.DTE", nil)

	if got := snap.List(context.Background()); len(got) != 0 {
		t.Errorf("List() with registry error = %v, want empty", names(got))
	}
}

func TestSnapshot_LookupByProcessID(t *testing.T) {
	reg := &fakeRegistry{entries: []Entry{
		entry("!VisualStudio.DTE.17.0:4120"),
		entry("!VisualStudio.DTE.17.0:120"),
		entry("!SomethingElse:777"),
	}}
	snap := NewSnapshot(reg, "!VisualStudio.DTE", nil)

	tests := []struct {
		pid       int
		wantName  string
		wantFound bool
	}{
		{pid: 4120, wantName: "!VisualStudio.DTE.17.0:4120", wantFound: true},
		{pid: 120, wantName: "!VisualStudio.DTE.17.0:120", wantFound: true},
		{pid: 20, wantFound: false},
		{pid: 777, wantFound: false},
		{pid: 9999, wantFound: false},
	}

	for _, tt := range tests {
		got, found := snap.LookupByProcessID(context.Background(), tt.pid)
		if found != tt.wantFound {
			t.Errorf("LookupByProcessID(%d) found = %v, want %v", tt.pid, found, tt.wantFound)
			continue
		}
		if found && got.Name != tt.wantName {
			t.Errorf("LookupByProcessID(%d) = %q, want %q", tt.pid, got.Name, tt.wantName)
		}
	}
}

func TestSnapshot_ListQueriesEachTime(t *testing.T) {
	reg := &fakeRegistry{}
	snap := NewSnapshot(reg, "!VisualStudio.DTE", nil)

	snap.List(context.Background())
	reg.mu.Lock()
	reg.entries = []Entry{entry("!VisualStudio.DTE.17.0:1")}
	reg.mu.Unlock()

	if got := snap.List(context.Background()); len(got) != 1 {
		t.Errorf("second List() = %v, want the newly registered instance", names(got))
	}
	if reg.calls != 2 {
		t.Errorf("Enumerate called %d times, want 2", reg.calls)
	}
}

func TestMatchesPID(t *testing.T) {
	tests := []struct {
		name   string
		suffix string
		want   bool
	}{
		{"!VisualStudio.DTE.17.0:12", "12", true},
		{"!VisualStudio.DTE.17.0:412", "12", false},
		{"12", "12", true},
		{"!VisualStudio.DTE.17.0:13", "12", false},
	}
	for _, tt := range tests {
		if got := matchesPID(tt.name, tt.suffix); got != tt.want {
			t.Errorf("matchesPID(%q, %q) = %v, want %v", tt.name, tt.suffix, got, tt.want)
		}
	}
}
