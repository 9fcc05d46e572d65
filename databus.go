// databus.go - Shared addressable bus between CPU and peripherals
//
// The databus multiplexes three fixed peripherals (Screen, Keyboard,
// Cassette) onto two shared bus addresses. Status/Data reads OR-combine
// every peripheral whose address matches the currently selected address;
// clock and strobe forward only to matching peripherals, faithfully
// modelling the original hardware where only the selected deck runs.

package dp2200

// Peripheral is the common interface implemented by Screen, Keyboard, and
// Cassette. The set is fixed at three; no registry or plugin mechanism.
type Peripheral interface {
	Clock()
	Strobe()
	Status() byte
	Data() byte
	WriteData(b byte)
}

// Well-known bus addresses (octal in the hardware manual).
const (
	screenKeyboardAddr byte = 0o341
	cassetteAddr       byte = 0o360
)

// busMode selects whether Input reads status or data bytes.
type busMode int

const (
	modeStatus busMode = iota
	modeData
)

type busSlot struct {
	addr byte
	p    Peripheral
}

// Databus dispatches Ex commands and Input/Write traffic to the three
// peripherals it owns.
type Databus struct {
	Screen   *Screen
	Keyboard *Keyboard
	Cassette *Cassette

	selectedAddr byte
	selectedMode busMode
}

// NewDatabus builds a databus with freshly constructed peripherals.
func NewDatabus() *Databus {
	return &Databus{
		Screen:   newScreen(),
		Keyboard: newKeyboard(),
		Cassette: newCassette(),
	}
}

// slots returns the fixed peripheral/address pairs in hardware order.
func (d *Databus) slots() [3]busSlot {
	return [3]busSlot{
		{screenKeyboardAddr, d.Screen},
		{screenKeyboardAddr, d.Keyboard},
		{cassetteAddr, d.Cassette},
	}
}

// matching calls fn for every peripheral whose address equals the
// currently selected address.
func (d *Databus) matching(fn func(Peripheral)) {
	for _, slot := range d.slots() {
		if slot.addr == d.selectedAddr {
			fn(slot.p)
		}
	}
}

// Read returns the OR-combine of status or data bytes (depending on the
// selected mode) across every peripheral at the selected address.
func (d *Databus) Read() byte {
	if d.selectedMode == modeStatus {
		return d.readStatus()
	}
	return d.readData()
}

func (d *Databus) readStatus() byte {
	var out byte
	d.matching(func(p Peripheral) { out |= p.Status() })
	return out
}

func (d *Databus) readData() byte {
	var out byte
	d.matching(func(p Peripheral) { out |= p.Data() })
	return out
}

// Write pushes a byte into every peripheral at the selected address.
func (d *Databus) Write(b byte) {
	d.matching(func(p Peripheral) { p.WriteData(b) })
}

// Strobe is emitted by the CPU on every Input. It forwards to the selected
// peripherals only in Data mode.
func (d *Databus) Strobe() {
	if d.selectedMode != modeData {
		return
	}
	d.matching(func(p Peripheral) { p.Strobe() })
}

// Clock ticks every ~97 CPU cycles (see clock.go) and forwards only to the
// peripherals at the selected address - unselected peripherals do not
// advance.
func (d *Databus) Clock() {
	d.matching(func(p Peripheral) { p.Clock() })
}

// ExecuteCommand dispatches an Ex command with the accumulator byte that
// accompanied it. Com4, Beep, Click, Wbk, and Rewind are accepted as
// no-ops per spec (unhandled peripheral commands, not fatal).
func (d *Databus) ExecuteCommand(inst Instruction, data byte) {
	switch inst.Kind {
	case Adr:
		d.selectedAddr = data
		d.selectedMode = modeStatus
	case Status:
		d.selectedMode = modeStatus
	case Data:
		d.selectedMode = modeData
	case Write:
		d.Write(data)
	case Com1:
		d.Screen.ControlWord(data)
	case Com2:
		d.Screen.SetHorizontal(data)
	case Com3:
		d.Screen.SetVertical(data)
	case Com4, Beep, Click, Wbk, Rewind:
		// accepted as no-op
	case Deck1Cmd:
		d.Cassette.ExDeck1()
	case Deck2Cmd:
		d.Cassette.ExDeck2()
	case Rbk:
		d.Cassette.ExRbk()
	case Bsp:
		d.Cassette.ExBsp()
	case Sf:
		d.Cassette.ExSf()
	case Sb:
		d.Cassette.ExSb()
	case Tstop:
		d.Cassette.ExTstop()
	}
}
