// cassette.go - Cassette peripheral: two-deck tape transport
//
// Grounded on original_source/src/DP2200/cassette.rs line for line: cell
// sequence, update_head/read_data gap handling, status byte bit layout,
// the Rbk/Sf/Sb/Bsp/Tstop command bodies, and the two-byte aggregate
// buffer (newest-first, get_data/strobe operating on the back/oldest
// element).

package dp2200

// MovementSpeed is a deck's current transport speed.
type MovementSpeed int

const (
	SpeedNone MovementSpeed = iota
	SpeedRegular
	SpeedRewind
)

// MovementDirection is a deck's current head direction.
type MovementDirection int

const (
	DirForward MovementDirection = iota
	DirBackward
)

// DeckId selects deck 1 or 2.
type DeckId int

const (
	Deck1 DeckId = iota
	Deck2
)

// Default subsampling cadence: one head movement per N databus ticks. The
// original source comments the datasheet-accurate 431 cycles/byte for
// Regular speed but ships 50 (its own deliberate acceleration for
// interactive use); this is preserved as the default and exposed as a
// tunable via Cassette.SetSpeed (spec.md Section 9 Open Question).
const (
	defaultRegularCycles = 50
	defaultRewindCycles  = 36
)

// CassetteDeck is one tape transport: a linear sequence of cells, a head
// position, and the gap-detection state machine.
type CassetteDeck struct {
	cells     []cell
	speed     MovementSpeed
	direction MovementDirection
	headPos   int

	cycleCount int
	dataBuf    byte
	hasData    bool

	gapDetected bool
	ignoreGap   bool
	stopOnGap   bool

	regularCycles int
	rewindCycles  int
}

func newCassetteDeck(tapBytes []byte) *CassetteDeck {
	return &CassetteDeck{
		cells:         parseTAP(tapBytes),
		regularCycles: defaultRegularCycles,
		rewindCycles:  defaultRewindCycles,
	}
}

func (d *CassetteDeck) readData() {
	if d.headPos < 0 || d.headPos >= len(d.cells) {
		return
	}
	c := d.cells[d.headPos]
	if !c.isGap {
		d.dataBuf = c.data
		d.hasData = true
		d.gapDetected = false
		d.ignoreGap = false
		return
	}
	if !d.ignoreGap {
		d.hasData = false
		d.gapDetected = true
		if d.stopOnGap {
			d.speed = SpeedNone
		}
	}
}

func (d *CassetteDeck) updateHead() {
	switch d.direction {
	case DirForward:
		if d.headPos < len(d.cells)-1 {
			d.headPos++
			d.readData()
		} else {
			d.speed = SpeedNone
		}
	case DirBackward:
		if d.headPos > 0 {
			d.headPos--
			d.readData()
		} else {
			d.speed = SpeedNone
		}
	}
}

func (d *CassetteDeck) clock() {
	d.cycleCount++

	var goal int
	switch d.speed {
	case SpeedNone:
		return
	case SpeedRegular:
		goal = d.regularCycles
	case SpeedRewind:
		goal = d.rewindCycles
	}

	if d.cycleCount >= goal {
		d.cycleCount = 0
		d.updateHead()
	}
}

// Cassette is the two-deck transport exposed to the databus: it selects
// one deck at a time and aggregates its read buffer into a two-byte,
// newest-first queue.
type Cassette struct {
	deck1, deck2 *CassetteDeck
	selectedDeck DeckId
	dataBuffer   []byte // index 0 = newest
}

func newCassette() *Cassette {
	return &Cassette{
		deck1: newCassetteDeck(nil),
		deck2: newCassetteDeck(nil),
	}
}

func (c *Cassette) selected() *CassetteDeck {
	if c.selectedDeck == Deck1 {
		return c.deck1
	}
	return c.deck2
}

// SetSpeed overrides the Regular/Rewind cycles-per-byte cadence on both
// decks (see defaultRegularCycles/defaultRewindCycles).
func (c *Cassette) SetSpeed(regularCycles, rewindCycles int) {
	for _, d := range [2]*CassetteDeck{c.deck1, c.deck2} {
		d.regularCycles = regularCycles
		d.rewindCycles = rewindCycles
	}
}

// Clock advances the selected deck and, if it produced a fresh byte,
// pushes it to the front of the two-byte aggregate buffer.
func (c *Cassette) Clock() {
	deck := c.selected()
	deck.clock()
	if deck.hasData {
		deck.hasData = false
		c.dataBuffer = append([]byte{deck.dataBuf}, c.dataBuffer...)
		if len(c.dataBuffer) > 2 {
			c.dataBuffer = c.dataBuffer[:2]
		}
	}
}

// Status reports the bit layout from spec.md Section 4.5.
func (c *Cassette) Status() byte {
	var status byte
	if len(c.dataBuffer) != 0 {
		status |= 1 << 2
	}

	deck := c.selected()
	if deck.speed == SpeedNone && len(deck.cells) != 0 {
		status |= 1 << 0
	}
	if deck.headPos == 0 || deck.headPos == len(deck.cells)-1 {
		status |= 1 << 1
	}
	if deck.gapDetected {
		status |= 1 << 4
	}
	if len(deck.cells) != 0 {
		status |= 1 << 6
	}
	return status
}

// Strobe pops the oldest (back) element of the aggregate buffer.
func (c *Cassette) Strobe() {
	if n := len(c.dataBuffer); n > 0 {
		c.dataBuffer = c.dataBuffer[:n-1]
	}
}

// Data returns the oldest (back) element without removing it, or 0 if the
// buffer is empty.
func (c *Cassette) Data() byte {
	if n := len(c.dataBuffer); n > 0 {
		return c.dataBuffer[n-1]
	}
	return 0
}

// WriteData is a no-op: write-to-tape (Wbk) is unimplemented, per spec.md.
func (c *Cassette) WriteData(b byte) {}

// ExTstop stops the selected deck and clears its read latch and the
// aggregate buffer.
func (c *Cassette) ExTstop() {
	deck := c.selected()
	deck.speed = SpeedNone
	deck.hasData = false
	c.dataBuffer = nil
}

func (c *Cassette) ExDeck1() { c.selectedDeck = Deck1 }
func (c *Cassette) ExDeck2() { c.selectedDeck = Deck2 }

// ExRbk (read block): forward, regular speed, stop on the next gap.
func (c *Cassette) ExRbk() {
	deck := c.selected()
	deck.direction = DirForward
	deck.speed = SpeedRegular
	if deck.headPos < len(deck.cells) && deck.cells[deck.headPos].isGap {
		deck.ignoreGap = true
	}
	deck.stopOnGap = true
}

// ExBsp (backspace): backward, regular speed. Matches
// original_source's ex_bsp exactly: unlike ExSf/ExSb it does not touch
// stop_on_gap, and it additionally clears gap_detected when starting from
// inside a gap.
func (c *Cassette) ExBsp() {
	deck := c.selected()
	deck.direction = DirBackward
	deck.speed = SpeedRegular
	if deck.headPos < len(deck.cells) && deck.cells[deck.headPos].isGap {
		deck.ignoreGap = true
		deck.gapDetected = false
	}
}

// ExSf (scan forward): forward, regular speed, do not stop on gap.
func (c *Cassette) ExSf() {
	deck := c.selected()
	deck.direction = DirForward
	deck.speed = SpeedRegular
	if deck.headPos < len(deck.cells) && deck.cells[deck.headPos].isGap {
		deck.ignoreGap = true
	}
	deck.stopOnGap = false
}

// ExSb (scan backward): backward, regular speed, do not stop on gap.
func (c *Cassette) ExSb() {
	deck := c.selected()
	deck.direction = DirBackward
	deck.speed = SpeedRegular
	if deck.headPos < len(deck.cells) && deck.cells[deck.headPos].isGap {
		deck.ignoreGap = true
	}
	deck.stopOnGap = false
}

// Load replaces a deck's tape with a freshly parsed TAP image.
func (c *Cassette) Load(deck DeckId, tapBytes []byte) {
	fresh := newCassetteDeck(tapBytes)
	if deck == Deck1 {
		c.deck1 = fresh
	} else {
		c.deck2 = fresh
	}
}

// FirstSector reads deck 1 forward from its start until the first gap,
// returning the collected bytes. Grounded on get_first_sector.
func (c *Cassette) FirstSector() []byte {
	var out []byte
	c.ExDeck1()
	c.ExTstop()
	c.deck1.headPos = 0
	c.ExRbk()
	for !c.deck1.gapDetected {
		c.Clock()
		if len(c.dataBuffer) != 0 {
			out = append(out, c.Data())
			c.Strobe()
		}
	}
	return out
}
