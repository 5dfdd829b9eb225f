// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != len(issues) {
		t.Fatalf("Values() returned %d entries, want %d", len(values), len(issues))
	}
	for i, v := range values {
		if v.Id() != Id(i+1) {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, v.Id(), i+1)
		}
	}
	if values[len(values)-1].Id() != OutputWriteFailedId {
		t.Errorf("last id = %d, want OutputWriteFailedId", values[len(values)-1].Id())
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	entry := Get(CircularDependencyId)
	if entry == nil {
		t.Fatal("Get(CircularDependencyId) returned nil")
	}
	if !strings.Contains(string(entry.MarkdownMsg()), "Circular dependency") {
		t.Errorf("unexpected message: %s", entry.MarkdownMsg())
	}
	if Get(Id(999)) != nil {
		t.Error("Get() of an unknown id should return nil")
	}
}

func TestIssue_DocLinksAreCloned(t *testing.T) {
	t.Parallel()

	entry := &Issue{id: RefNotFoundId, docLinks: []HttpLink{"https://example.com/refs"}}
	links := entry.DocLinks()
	links[0] = "mutated"
	if entry.DocLinks()[0] != "https://example.com/refs" {
		t.Error("DocLinks() must return a copy")
	}
}

func TestIssue_Render(t *testing.T) {
	t.Parallel()

	entry := &Issue{
		id:       RefNotFoundId,
		mdMsg:    "# Unknown reference",
		docLinks: []HttpLink{"https://example.com/refs"},
	}
	out, err := entry.Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{"Unknown reference", "See also", "https://example.com/refs"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() output missing %q:\n%s", want, out)
		}
	}
}

func TestAllIssuesRender(t *testing.T) {
	t.Parallel()

	for _, entry := range Values() {
		if strings.TrimSpace(string(entry.MarkdownMsg())) == "" {
			t.Errorf("issue %d has an empty message", entry.Id())
		}
		if _, err := entry.Render("notty"); err != nil {
			t.Errorf("issue %d failed to render: %v", entry.Id(), err)
		}
	}
}
