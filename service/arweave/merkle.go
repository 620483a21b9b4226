package arweave

import (
	"crypto/sha256"
	"math/big"
)

const (
	maxChunkSize = 256 * 1024
	minChunkSize = 32 * 1024
	noteSize     = 32
)

// chunk is a contiguous byte range of transaction data with its hash.
type chunk struct {
	dataHash []byte
	minByte  int
	maxByte  int
}

type merkleNode struct {
	id      []byte
	maxByte int
}

// chunkData splits data into chunks of at most maxChunkSize. When the
// remainder after a full chunk would fall below minChunkSize, the last
// two chunks are balanced instead.
func chunkData(data []byte) []chunk {
	var chunks []chunk
	rest := data
	cursor := 0

	for len(rest) >= maxChunkSize {
		size := maxChunkSize
		next := len(rest) - maxChunkSize
		if next > 0 && next < minChunkSize {
			size = (len(rest) + 1) / 2
		}

		sum := sha256.Sum256(rest[:size])
		chunks = append(chunks, chunk{
			dataHash: sum[:],
			minByte:  cursor,
			maxByte:  cursor + size,
		})
		cursor += size
		rest = rest[size:]
	}

	sum := sha256.Sum256(rest)
	chunks = append(chunks, chunk{
		dataHash: sum[:],
		minByte:  cursor,
		maxByte:  cursor + len(rest),
	})
	return chunks
}

// dataRoot computes the merkle root committed to by data_root.
// Empty data has no root.
func dataRoot(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	chunks := chunkData(data)
	nodes := make([]merkleNode, 0, len(chunks))
	for _, c := range chunks {
		nodes = append(nodes, merkleNode{
			id:      hashAll(hash(c.dataHash), hash(note(c.maxByte))),
			maxByte: c.maxByte,
		})
	}

	for len(nodes) > 1 {
		next := make([]merkleNode, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			if i+1 == len(nodes) {
				next = append(next, nodes[i])
				continue
			}
			left, right := nodes[i], nodes[i+1]
			next = append(next, merkleNode{
				id:      hashAll(hash(left.id), hash(right.id), hash(note(left.maxByte))),
				maxByte: right.maxByte,
			})
		}
		nodes = next
	}
	return nodes[0].id
}

// note encodes n as a 32-byte big-endian integer.
func note(n int) []byte {
	out := make([]byte, noteSize)
	return big.NewInt(int64(n)).FillBytes(out)
}

func hash(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}

func hashAll(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}
