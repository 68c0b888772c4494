package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	collectionMetaPrefix = "colmeta"
	pointPrefix          = "colpt"
)

// makeCollectionMetaKey generates the key holding a collection's settings.
func makeCollectionMetaKey(collection string) []byte {
	return []byte(collectionMetaPrefix + ":" + collection)
}

// makePointKey generates a composite key for a point.
// Format: prefix:collection:id
func makePointKey(collection string, id uint64) []byte {
	prefix := makePointPrefix(collection)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], id)
	return buf
}

// makePointPrefix generates the iteration prefix for a collection's points.
func makePointPrefix(collection string) []byte {
	return []byte(pointPrefix + ":" + collection + ":")
}
