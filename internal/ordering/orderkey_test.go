package ordering

import "testing"

func TestAppendKey(t *testing.T) {
	if got := Append(nil); got != 0 {
		t.Errorf("first key = %d, want 0", got)
	}
	max := int32(40)
	if got := Append(&max); got != 50 {
		t.Errorf("append after 40 = %d, want 50", got)
	}
	// Appends after a bootstrap sentinel still move past it.
	max = BootstrapKey
	if got := Append(&max); got != BootstrapKey+Gap {
		t.Errorf("append after sentinel = %d, want %d", got, BootstrapKey+Gap)
	}
}

func TestSequence(t *testing.T) {
	if got := Sequence(0); len(got) != 0 {
		t.Errorf("Sequence(0) = %v", got)
	}
	got := Sequence(4)
	want := []int32{0, 10, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sequence(4) = %v, want %v", got, want)
		}
	}
}
