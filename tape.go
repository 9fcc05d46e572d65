// tape.go - TAP file parsing into cassette cell sequences
//
// Grounded on original_source/src/DP2200/cassette.rs's parse_tap: a TAP
// file is a sequence of records, each a 4-byte little-endian length, N
// data bytes, then a 4-byte trailer. The synthesized cell sequence is 10
// leading gap cells, then per record N data cells followed by 10 gap
// cells.

package dp2200

import "encoding/binary"

const tapGapRun = 10

// cell is one position on a cassette tape: either a recorded byte or a gap.
type cell struct {
	isGap bool
	data  byte
}

func gapCell() cell        { return cell{isGap: true} }
func dataCell(b byte) cell { return cell{data: b} }

// parseTAP synthesizes the cell sequence for a TAP file's raw bytes.
// Malformed trailing data (a truncated length or record) stops parsing at
// the last complete record rather than panicking.
func parseTAP(data []byte) []cell {
	cells := make([]cell, 0, len(data)+tapGapRun)
	for i := 0; i < tapGapRun; i++ {
		cells = append(cells, gapCell())
	}

	for len(data) >= 4 {
		secLen := binary.LittleEndian.Uint32(data[0:4])
		data = data[4:]
		if uint32(len(data)) < secLen {
			break
		}
		for i := uint32(0); i < secLen; i++ {
			cells = append(cells, dataCell(data[i]))
		}
		data = data[secLen:]
		for i := 0; i < tapGapRun; i++ {
			cells = append(cells, gapCell())
		}
		if len(data) < 4 {
			break
		}
		data = data[4:] // trailer
	}

	return cells
}
