package arweave

import (
	"crypto/sha512"
	"strconv"
)

// deepHash hashes a tree of byte blobs with SHA-384. Each item is either
// a []byte or a []any of further items.
func deepHash(item any) []byte {
	switch v := item.(type) {
	case []byte:
		tag := sha384([]byte("blob" + strconv.Itoa(len(v))))
		return sha384(append(tag, sha384(v)...))
	case []any:
		acc := sha384([]byte("list" + strconv.Itoa(len(v))))
		for _, child := range v {
			acc = sha384(append(acc, deepHash(child)...))
		}
		return acc
	default:
		panic("deepHash: unsupported item type")
	}
}

func sha384(b []byte) []byte {
	sum := sha512.Sum384(b)
	return sum[:]
}
