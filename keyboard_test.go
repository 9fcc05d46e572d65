package dp2200

import "testing"

func TestKeydownLatchesASCII(t *testing.T) {
	k := newKeyboard()
	k.Keydown("a")

	if k.Data() != 'a' {
		t.Fatalf("Data() = %q, want 'a'", k.Data())
	}
	if k.Status()&keyStatusReady == 0 {
		t.Fatalf("key-ready bit not set")
	}
}

func TestKeydownFixedMappings(t *testing.T) {
	cases := map[string]byte{"Enter": 13, "Cancel": 24, "Backspace": 8, "Delete": 127}
	for key, want := range cases {
		k := newKeyboard()
		k.Keydown(key)
		if k.Data() != want {
			t.Errorf("Keydown(%q) -> %d, want %d", key, k.Data(), want)
		}
	}
}

func TestKeyupClearsOnlyMatchingKey(t *testing.T) {
	k := newKeyboard()
	k.Keydown("a")
	k.Keyup("b")
	if k.Status()&keyStatusReady == 0 {
		t.Fatalf("key-ready cleared by an unrelated Keyup")
	}
	k.Keyup("a")
	if k.Status()&keyStatusReady != 0 {
		t.Fatalf("key-ready still set after matching Keyup")
	}
}

func TestStrobeClearsKeyReady(t *testing.T) {
	k := newKeyboard()
	k.Keydown("q")
	k.Strobe()
	if k.Status()&keyStatusReady != 0 {
		t.Fatalf("key-ready still set after Strobe")
	}
	// Data buffer itself is not cleared, only the ready flag.
	if k.Data() != 'q' {
		t.Fatalf("Data() = %q after Strobe, want 'q' to remain latched", k.Data())
	}
}

func TestChassisButtons(t *testing.T) {
	k := newKeyboard()
	k.Keydown("Tab")
	k.Keydown("Keyboard")
	if k.Status()&keyStatusDisplay == 0 {
		t.Fatalf("display (Tab) bit not set")
	}
	if k.Status()&keyStatusKeyboard == 0 {
		t.Fatalf("keyboard-button bit not set")
	}
	k.Keyup("Tab")
	k.Keyup("Keyboard")
	if k.Status()&(keyStatusDisplay|keyStatusKeyboard) != 0 {
		t.Fatalf("chassis button bits not cleared by Keyup")
	}
}

func TestUnrecognizedSymbolicKeyIgnored(t *testing.T) {
	k := newKeyboard()
	k.Keydown("F13")
	if k.Status()&keyStatusReady != 0 {
		t.Fatalf("unrecognized key unexpectedly latched")
	}
}
