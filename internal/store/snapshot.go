package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/freeeve/greedychess/internal/board"
	"github.com/freeeve/greedychess/internal/game"
	"github.com/freeeve/greedychess/internal/notation"
)

// Snapshot file format:
//
//   Header (16 bytes, uncompressed):
//     - Magic (4): "GCSS"
//     - Version (2): 1
//     - Flags (2): bit 0 playing, bit 1 white to move, bit 2 has last move
//     - Checksum (4): CRC32 of the uncompressed body
//     - BodyLen (4): uncompressed body length
//   Body (compressed with zstd):
//     - Cells (64 x int16): signed cell values
//     - LastMove (4 + 1 + 2 + n): move, color, SAN length, SAN bytes
//     - Messages (1 + k x (2 + n)): count, then length-prefixed strings

const (
	SnapshotMagic      = "GCSS"
	SnapshotVersion    = 1
	SnapshotHeaderSize = 16

	flagPlaying    = 1 << 0
	flagWhitesTurn = 1 << 1
	flagLastMove   = 1 << 2
)

var (
	// ErrNotFound is returned when no snapshot has been saved yet.
	ErrNotFound = errors.New("not found")
	// ErrCorrupt is returned for snapshots that fail validation.
	ErrCorrupt = errors.New("corrupt snapshot")
)

// SnapshotHeader is the fixed-size prefix of a snapshot file.
type SnapshotHeader struct {
	Magic    [4]byte
	Version  uint16
	Flags    uint16
	Checksum uint32
	BodyLen  uint32
}

func encodeSnapshotHeader(h *SnapshotHeader) []byte {
	buf := make([]byte, SnapshotHeaderSize)
	copy(buf[0:4], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	binary.LittleEndian.PutUint32(buf[8:12], h.Checksum)
	binary.LittleEndian.PutUint32(buf[12:16], h.BodyLen)
	return buf
}

func decodeSnapshotHeader(buf []byte) (*SnapshotHeader, error) {
	if len(buf) < SnapshotHeaderSize {
		return nil, fmt.Errorf("%w: header too short", ErrCorrupt)
	}
	h := &SnapshotHeader{}
	copy(h.Magic[:], buf[0:4])
	if string(h.Magic[:]) != SnapshotMagic {
		return nil, fmt.Errorf("%w: invalid magic %q", ErrCorrupt, h.Magic)
	}
	h.Version = binary.LittleEndian.Uint16(buf[4:6])
	if h.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	}
	h.Flags = binary.LittleEndian.Uint16(buf[6:8])
	h.Checksum = binary.LittleEndian.Uint32(buf[8:12])
	h.BodyLen = binary.LittleEndian.Uint32(buf[12:16])
	return h, nil
}

// encodeSnapshotBody serializes st and returns the body with its flags.
func encodeSnapshotBody(st game.State) ([]byte, uint16) {
	var flags uint16
	if st.IsPlaying {
		flags |= flagPlaying
	}
	if st.IsWhitesTurn {
		flags |= flagWhitesTurn
	}

	body := make([]byte, 0, board.Size*2+64)
	for _, v := range st.Board.Cells() {
		body = binary.LittleEndian.AppendUint16(body, uint16(int16(v)))
	}

	if st.LastMove != nil {
		flags |= flagLastMove
		body = binary.LittleEndian.AppendUint32(body, uint32(st.LastMove.Move))
		body = append(body, byte(st.LastMove.Color))
		body = appendString(body, st.LastMove.SAN)
	}

	msgs := st.Messages
	if len(msgs) > game.MessageCapacity {
		msgs = msgs[len(msgs)-game.MessageCapacity:]
	}
	body = append(body, byte(len(msgs)))
	for _, m := range msgs {
		body = appendString(body, m)
	}
	return body, flags
}

func appendString(buf []byte, s string) []byte {
	if len(s) > 0xFFFF {
		s = s[:0xFFFF]
	}
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(s)))
	return append(buf, s...)
}

// bodyReader walks a snapshot body with bounds checks.
type bodyReader struct {
	buf []byte
	off int
	err error
}

func (r *bodyReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.buf) {
		r.err = fmt.Errorf("%w: body truncated at offset %d", ErrCorrupt, r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *bodyReader) readU8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *bodyReader) readU16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *bodyReader) readU32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *bodyReader) readString() string {
	n := int(r.readU16())
	return string(r.take(n))
}

func decodeSnapshotBody(body []byte, flags uint16) (game.State, error) {
	r := &bodyReader{buf: body}

	var cells [board.Size]int
	for i := range cells {
		cells[i] = int(int16(r.readU16()))
	}

	st := game.State{
		Board:        board.FromCells(cells),
		Selected:     -1,
		IsPlaying:    flags&flagPlaying != 0,
		IsWhitesTurn: flags&flagWhitesTurn != 0,
	}

	if flags&flagLastMove != 0 {
		m := notation.Move(r.readU32())
		c := board.Color(int8(r.readU8()))
		san := r.readString()
		if c != board.White && c != board.Black && r.err == nil {
			return game.State{}, fmt.Errorf("%w: invalid color %d", ErrCorrupt, c)
		}
		st.LastMove = &game.LastMove{Move: m, Color: c, SAN: san}
	}

	n := int(r.readU8())
	if n > game.MessageCapacity && r.err == nil {
		return game.State{}, fmt.Errorf("%w: %d messages", ErrCorrupt, n)
	}
	st.Messages = make([]string, 0, n)
	for i := 0; i < n; i++ {
		st.Messages = append(st.Messages, r.readString())
	}

	if r.err != nil {
		return game.State{}, r.err
	}
	if r.off != len(body) {
		return game.State{}, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(body)-r.off)
	}
	return st, nil
}

// EncodeSnapshot returns the header and uncompressed body for st.
func EncodeSnapshot(st game.State) (header, body []byte) {
	body, flags := encodeSnapshotBody(st)
	h := SnapshotHeader{
		Version:  SnapshotVersion,
		Flags:    flags,
		Checksum: crc32.ChecksumIEEE(body),
		BodyLen:  uint32(len(body)),
	}
	copy(h.Magic[:], SnapshotMagic)
	return encodeSnapshotHeader(&h), body
}

// DecodeSnapshot validates an uncompressed body against its header.
func DecodeSnapshot(header, body []byte) (game.State, error) {
	h, err := decodeSnapshotHeader(header)
	if err != nil {
		return game.State{}, err
	}
	if uint32(len(body)) != h.BodyLen {
		return game.State{}, fmt.Errorf("%w: body length %d, header says %d", ErrCorrupt, len(body), h.BodyLen)
	}
	if sum := crc32.ChecksumIEEE(body); sum != h.Checksum {
		return game.State{}, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return decodeSnapshotBody(body, h.Flags)
}
