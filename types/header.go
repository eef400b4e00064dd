package types

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the exact serialized size of a block header.
const HeaderSize = 80

// BlockHeader is the fixed 80-byte consensus header record. All multi-byte
// integer fields are little-endian on the wire; PrevBlock and MerkleRoot are
// carried in wire order (see Hash).
type BlockHeader struct {
	Version    int32  `json:"version"`
	PrevBlock  Hash   `json:"prevBlock"`
	MerkleRoot Hash   `json:"merkleRoot"`
	Timestamp  uint32 `json:"timestamp"`
	Bits       uint32 `json:"bits"`
	Nonce      uint32 `json:"nonce"`
}

// Serialize encodes the header into its canonical 80-byte wire form:
// version || prevBlock || merkleRoot || timestamp || bits || nonce.
// This is the exact byte string whose double-SHA256 is the block hash.
func (h *BlockHeader) Serialize() [HeaderSize]byte {
	var buf [HeaderSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Version))
	copy(buf[4:36], h.PrevBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	return buf
}

// DecodeHeader parses an 80-byte wire encoding into a BlockHeader.
func DecodeHeader(raw []byte) (BlockHeader, error) {
	var h BlockHeader
	if len(raw) != HeaderSize {
		return h, fmt.Errorf("invalid header length: got %d, want %d", len(raw), HeaderSize)
	}
	h.Version = int32(binary.LittleEndian.Uint32(raw[0:4]))
	copy(h.PrevBlock[:], raw[4:36])
	copy(h.MerkleRoot[:], raw[36:68])
	h.Timestamp = binary.LittleEndian.Uint32(raw[68:72])
	h.Bits = binary.LittleEndian.Uint32(raw[72:76])
	h.Nonce = binary.LittleEndian.Uint32(raw[76:80])
	return h, nil
}

// DecodeHeaderHex parses the hex form of an 80-byte header, as returned by
// Esplora-style /block/:hash/header endpoints.
func DecodeHeaderHex(hexStr string) (BlockHeader, error) {
	raw, err := HexToBytes(hexStr)
	if err != nil {
		return BlockHeader{}, fmt.Errorf("invalid header hex: %w", err)
	}
	return DecodeHeader(raw)
}
