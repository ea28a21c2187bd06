package models

import "testing"

func TestScopeKeyRoundTrip(t *testing.T) {
	scopes := []ScopeID{
		InboxScope(),
		ProjectTasksScope("p1"),
		HeaderTasksScope("h1"),
		ProjectHeadersScope("p1"),
		AreaProjectsScope("a1"),
		OrphanProjectsScope(),
		AreasScope(),
	}
	for _, s := range scopes {
		parsed, err := ParseScopeID(s.Key())
		if err != nil {
			t.Fatalf("%s: %v", s.Key(), err)
		}
		if parsed != s {
			t.Errorf("round trip %s: got %s", s.Key(), parsed.Key())
		}
	}
}

func TestParseScopeIDRejectsBadInput(t *testing.T) {
	bad := []string{
		"",
		"bogus",
		"inbox:p1",          // parentless kind with a parent
		"areas:a1",          // parentless kind with a parent
		"orphan-projects:x", // parentless kind with a parent
		"project",           // parented kind without a parent
		"header",
		"headers",
		"area",
	}
	for _, key := range bad {
		if _, err := ParseScopeID(key); err == nil {
			t.Errorf("ParseScopeID(%q) accepted", key)
		}
	}
}

func TestScopeKeysDistinct(t *testing.T) {
	// Same parent id under different kinds must stay separate scopes.
	a := ProjectTasksScope("x").Key()
	b := ProjectHeadersScope("x").Key()
	c := HeaderTasksScope("x").Key()
	if a == b || a == c || b == c {
		t.Errorf("scope keys collide: %q %q %q", a, b, c)
	}
}
