// keyboard.go - Keyboard peripheral: key translation and chassis buttons
//
// Grounded on original_source/src/DP2200/keyboard.rs's convert_key table,
// extended with the Tab/"Keyboard" chassis-button state and status bits 2/3
// that spec.md adds but the draft keyboard.rs does not have.

package dp2200

// Status bit masks.
const (
	keyStatusReady    byte = 0x02
	keyStatusKeyboard byte = 0x04
	keyStatusDisplay  byte = 0x08
)

// Keyboard tracks the single latched keypress and the two chassis buttons
// (Tab/"Keyboard") that don't produce a data byte.
type Keyboard struct {
	keyBuf          byte
	keyReady        bool
	displayPressed  bool // Tab held
	keyboardPressed bool // "Keyboard" symbolic key held
}

func newKeyboard() *Keyboard {
	return &Keyboard{}
}

// Keydown translates a key name to an 8-bit code and latches it, or sets a
// chassis-button flag. Unrecognized symbolic keys are ignored.
func (k *Keyboard) Keydown(key string) {
	switch key {
	case "Enter":
		k.latch(13)
	case "Cancel":
		k.latch(24)
	case "Backspace":
		k.latch(8)
	case "Delete":
		k.latch(127)
	case "Tab":
		k.displayPressed = true
	case "Keyboard":
		k.keyboardPressed = true
	default:
		if r := []rune(key); len(r) == 1 && r[0] < 128 {
			k.latch(byte(r[0]))
		}
	}
}

func (k *Keyboard) latch(code byte) {
	k.keyBuf = code
	k.keyReady = true
}

// Keyup clears key_ready if the released key matches the latched one, and
// clears chassis-button flags for Tab/"Keyboard".
func (k *Keyboard) Keyup(key string) {
	switch key {
	case "Tab":
		k.displayPressed = false
	case "Keyboard":
		k.keyboardPressed = false
	case "Enter":
		k.release(13)
	case "Cancel":
		k.release(24)
	case "Backspace":
		k.release(8)
	case "Delete":
		k.release(127)
	default:
		if r := []rune(key); len(r) == 1 && r[0] < 128 {
			k.release(byte(r[0]))
		}
	}
}

func (k *Keyboard) release(code byte) {
	if k.keyBuf == code {
		k.keyReady = false
	}
}

// Status reports key-ready and the two chassis-button states.
func (k *Keyboard) Status() byte {
	var s byte
	if k.keyReady {
		s |= keyStatusReady
	}
	if k.keyboardPressed {
		s |= keyStatusKeyboard
	}
	if k.displayPressed {
		s |= keyStatusDisplay
	}
	return s
}

func (k *Keyboard) Data() byte { return k.keyBuf }

// Strobe clears key_ready: the CPU has consumed the key.
func (k *Keyboard) Strobe() { k.keyReady = false }

// Clock and WriteData satisfy Peripheral; the keyboard has nothing to
// advance and accepts no write-side commands.
func (k *Keyboard) Clock()           {}
func (k *Keyboard) WriteData(b byte) {}
