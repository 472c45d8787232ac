package merkletree

import (
	"encoding/binary"
	"fmt"

	"github.com/pqledger/ledger-go/crypto"
	"github.com/pqledger/ledger-go/utils"
)

const (
	// NodeKeyIdentifier prefixes the storage key of a node record.
	NodeKeyIdentifier = 'N'
	// DataKeyIdentifier prefixes the storage key of the data of a key.
	DataKeyIdentifier = 'D'
	// HangingKeyIdentifier prefixes the storage key of a hanging node
	// table entry.
	HangingKeyIdentifier = 'H'
	// MetadataKeyIdentifier prefixes the fixed metadata keys.
	MetadataKeyIdentifier = 'M'

	// hash + hasLeft + hasRight + hasParent
	nodeHeaderSize = crypto.HashSizeByte + 3
)

var (
	rootHashKey  = []byte{MetadataKeyIdentifier, 'R'}
	numLeavesKey = []byte{MetadataKeyIdentifier, 'L'}
	depthKey     = []byte{MetadataKeyIdentifier, 'D'}
)

func nodeKey(h Hash) []byte {
	key := make([]byte, 0, 1+crypto.HashSizeByte)
	key = append(key, NodeKeyIdentifier)
	key = append(key, h[:]...)
	return key
}

func dataKey(k []byte) []byte {
	key := make([]byte, 0, 1+len(k))
	key = append(key, DataKeyIdentifier)
	key = append(key, k...)
	return key
}

func hangingKey(level uint32) []byte {
	key := make([]byte, 0, 1+4)
	key = append(key, HangingKeyIdentifier)
	key = append(key, utils.UInt32ToBytes(level)...)
	return key
}

func hangingLevel(key []byte) (uint32, error) {
	if len(key) != 1+4 || key[0] != HangingKeyIdentifier {
		return 0, fmt.Errorf("%w: hanging node key %x", ErrCorruptMetadata, key)
	}
	return binary.LittleEndian.Uint32(key[1:]), nil
}

// serializeNode encodes n as
// hash | hasLeft | hasRight | hasParent | [left] | [right] | [parent]
func serializeNode(n merkleNode) []byte {
	var left, right *Hash
	if in, ok := n.(*interiorNode); ok {
		left, right = in.left, in.right
	}
	b := n.base()
	buf := make([]byte, 0, nodeHeaderSize+3*crypto.HashSizeByte)
	buf = append(buf, b.hash[:]...)
	buf = append(buf,
		utils.BoolToByte(left != nil),
		utils.BoolToByte(right != nil),
		utils.BoolToByte(b.parent != nil))
	for _, h := range []*Hash{left, right, b.parent} {
		if h != nil {
			buf = append(buf, h[:]...)
		}
	}
	return buf
}

func deserializeNode(buf []byte) (merkleNode, error) {
	if len(buf) < nodeHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrCorruptNodeRecord, len(buf))
	}
	h := toHash(buf[:crypto.HashSizeByte])
	flags := buf[crypto.HashSizeByte:nodeHeaderSize]
	buf = buf[nodeHeaderSize:]

	var links [3]*Hash // left, right, parent
	for i, flag := range flags {
		switch flag {
		case 0:
			continue
		case 1:
		default:
			return nil, fmt.Errorf("%w: bad presence flag %d", ErrCorruptNodeRecord, flag)
		}
		if len(buf) < crypto.HashSizeByte {
			return nil, fmt.Errorf("%w: truncated record", ErrCorruptNodeRecord)
		}
		links[i] = hashPtr(toHash(buf[:crypto.HashSizeByte]))
		buf = buf[crypto.HashSizeByte:]
	}
	if len(buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptNodeRecord, len(buf))
	}

	base := node{hash: h, parent: links[2]}
	if links[0] == nil && links[1] == nil {
		return &leafNode{node: base}, nil
	}
	return &interiorNode{node: base, left: links[0], right: links[1]}, nil
}
