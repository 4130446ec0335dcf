// Package board implements the bit-packed representation of a 4x4
// sliding-tile position. A full board fits in a single uint64: sixteen
// nibbles in row-major order, where a nibble holds the base-2 exponent
// of the tile on that cell (so nibble 5 means a 32 tile), and 0 means
// the cell is empty. Row 0 occupies the low 16 bits.
//
// Boards are immutable values. Every operation returns a new Board.
package board

import (
	"fmt"
	"math/bits"
	"strings"
)

// Board is a full 4x4 position packed into one machine word.
type Board uint64

// Row is a single row (or, after a transpose, a single column) of a
// Board: four nibbles in the low 16 bits. It doubles as the index into
// the precomputed transition tables.
type Row uint16

const (
	// Dim is the board dimension. The packing is hardwired to 4.
	Dim = 4
	// MaxRank is the largest exponent a nibble can hold (tile 32768).
	MaxRank = 15

	// RowMask selects one row's worth of nibbles.
	RowMask = 0xFFFF
	// ColMask selects one column from a row-major board.
	ColMask Board = 0x000F000F000F000F
)

// Rank returns the exponent at (row, col), 0 for an empty cell.
func (b Board) Rank(row, col int) int {
	shift := uint(row*16 + col*4)
	return int((b >> shift) & 0xF)
}

// WithRank returns a copy of b with the nibble at (row, col) set.
func (b Board) WithRank(row, col, rank int) Board {
	shift := uint(row*16 + col*4)
	return (b &^ (Board(0xF) << shift)) | (Board(rank&0xF) << shift)
}

// GetRow extracts row r as a 16-bit table index.
func (b Board) GetRow(r int) Row {
	return Row((b >> (uint(r) * 16)) & RowMask)
}

// WithRow returns a copy of b with row r replaced.
func (b Board) WithRow(r int, row Row) Board {
	shift := uint(r) * 16
	return (b &^ (Board(RowMask) << shift)) | (Board(row) << shift)
}

// Reverse mirrors the four nibbles of a row.
func (r Row) Reverse() Row {
	return (r&0xF)<<12 | (r&0xF0)<<4 | (r&0xF00)>>4 | (r&0xF000)>>12
}

// UnpackCol spreads a row's four nibbles into column 0 of an otherwise
// empty board, i.e. one nibble every 16 bits. Used to reassemble
// vertical moves without a second transpose.
func (r Row) UnpackCol() Board {
	tmp := Board(r)
	return (tmp | tmp<<12 | tmp<<24 | tmp<<36) & ColMask
}

// Transpose flips the board about its main diagonal, turning rows into
// columns. It is a bit-parallel involution: two rounds of masked swaps
// on 2x2 nibble blocks, with no per-cell loop. This sits on the hot
// path of every vertical move and every evaluation.
func (b Board) Transpose() Board {
	a1 := b & 0xF0F00F0FF0F00F0F
	a2 := b & 0x0000F0F00000F0F0
	a3 := b & 0x0F0F00000F0F0000
	a := a1 | a2<<12 | a3>>12
	b1 := a & 0xFF00FF0000FF00FF
	b2 := a & 0x00FF00FF00000000
	b3 := a & 0x00000000FF00FF00
	return b1 | b2>>24 | b3<<24
}

// CountEmpty returns the number of empty cells, branchlessly.
func (b Board) CountEmpty() int {
	x := ^(b | b>>1 | b>>2 | b>>3) & 0x1111111111111111
	x = (x + x>>4 + x>>8 + x>>12) & 0x000F000F000F000F
	return int((x + x>>16 + x>>32 + x>>48) & 0x1F)
}

// DistinctRanks counts the distinct non-zero exponents present. Boards
// carrying many distinct tiles need deeper lookahead to resolve their
// merge chains, so this drives the adaptive search depth.
func (b Board) DistinctRanks() int {
	var seen uint16
	for i := 0; i < 16; i++ {
		rank := (b >> (uint(i) * 4)) & 0xF
		if rank != 0 {
			seen |= 1 << rank
		}
	}
	return bits.OnesCount16(seen)
}

// MaxRank returns the largest exponent on the board.
func (b Board) MaxRank() int {
	max := 0
	for i := 0; i < 16; i++ {
		if r := int((b >> (uint(i) * 4)) & 0xF); r > max {
			max = r
		}
	}
	return max
}

// MaxTile returns the face value of the largest tile, 0 on an empty
// board.
func (b Board) MaxTile() int {
	r := b.MaxRank()
	if r == 0 {
		return 0
	}
	return 1 << uint(r)
}

func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Dim; r++ {
		for c := 0; c < Dim; c++ {
			rank := b.Rank(r, c)
			if rank == 0 {
				sb.WriteString("     .")
			} else {
				fmt.Fprintf(&sb, "%6d", 1<<uint(rank))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
