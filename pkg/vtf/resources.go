package vtf

import (
	"encoding/binary"
	"fmt"
)

// Resource tags defined by the 7.3 container revision.
var (
	TagLowResImage   = [3]byte{0x01, 0, 0}
	TagHighResImage  = [3]byte{0x30, 0, 0}
	TagAnimatedSheet = [3]byte{0x10, 0, 0}
	TagCRC           = [3]byte{'C', 'R', 'C'}
	TagLODControl    = [3]byte{'L', 'O', 'D'}
	TagExtendedFlags = [3]byte{'T', 'S', 'O'}
	TagKeyValues     = [3]byte{'K', 'V', 'D'}
)

// ResourceFlagNoData marks entries whose value lives in the Offset field
// itself rather than in a data chunk.
const ResourceFlagNoData = 0x02

// Resource is one 7.3+ dictionary entry: a 3-byte tag, one flag byte and
// a byte offset into the file. Image data location still follows the
// legacy header arithmetic, so entries are informational here.
type Resource struct {
	Tag    [3]byte
	Flags  uint8
	Offset uint32
}

// Name returns the well-known name of the entry's tag, or a quoted form
// for tags this package does not know.
func (r Resource) Name() string {
	switch r.Tag {
	case TagLowResImage:
		return "low-res image"
	case TagHighResImage:
		return "high-res image"
	case TagAnimatedSheet:
		return "animated sheet"
	case TagCRC:
		return "CRC"
	case TagLODControl:
		return "LOD control"
	case TagExtendedFlags:
		return "extended flags"
	case TagKeyValues:
		return "key values"
	}
	return fmt.Sprintf("%q", r.Tag[:])
}

// parseResources reads count entries immediately following the fixed
// header. The caller has already checked that data covers them.
func parseResources(data []byte, count int) []Resource {
	res := make([]Resource, count)
	for i := range res {
		e := data[HeaderSize+i*8 : HeaderSize+i*8+8]
		copy(res[i].Tag[:], e[0:3])
		res[i].Flags = e[3]
		res[i].Offset = binary.LittleEndian.Uint32(e[4:8])
	}
	return res
}
