package sync

import (
	"encoding/binary"
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/spaolacci/murmur3"
)

// ring is a consistent hash ring over the stripe indices [0, stripes).
type ring struct {
	points *treemap.Map

	// first is the stripe at the lowest point, which keys hashing past the
	// highest point wrap around to.
	first int
}

func newRing(stripes int, replicas uint) *ring {
	points := treemap.NewWith(utils.Int64Comparator)

	for stripe := 0; stripe < stripes; stripe++ {
		seed, _ := murmur3.Sum128([]byte(fmt.Sprintf("stripe%d", stripe)))

		var buf [12]byte
		binary.LittleEndian.PutUint64(buf[:8], seed)
		for replica := uint(0); replica < replicas; replica++ {
			binary.LittleEndian.PutUint32(buf[8:], uint32(replica))
			point, _ := murmur3.Sum128(buf[:])
			points.Put(int64(point), stripe)
		}
	}

	r := &ring{points: points}
	if _, first := points.Min(); first != nil {
		r.first = first.(int)
	}
	return r
}

// shard returns the stripe owning key.
func (r *ring) shard(key []byte) int {
	hash, _ := murmur3.Sum128(key)
	if _, stripe := r.points.Ceiling(int64(hash)); stripe != nil {
		return stripe.(int)
	}
	return r.first
}
