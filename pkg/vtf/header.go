package vtf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Signature is the 4-byte magic opening every container: "VTF" plus a
// trailing NUL.
var Signature = [4]byte{'V', 'T', 'F', 0}

const (
	// HeaderSize is the serialized size of the fixed header. Version 7.3
	// resource entries follow it; the in-stream HeaderLength stays
	// authoritative for locating image data.
	HeaderSize = 80

	// VersionMajor is the only major version ever shipped.
	VersionMajor = 7

	// MaxVersionMinor is the newest minor revision this package reads.
	MaxVersionMinor = 5

	// maxResources bounds the 7.3+ resource dictionary. Larger counts are
	// treated as corruption rather than allocated.
	maxResources = 32
)

// Header is the fixed container header. Field order follows the
// serialized layout; the padding regions between fields are implicit in
// the offsets EncodeTo and DecodeFrom use. Note that LowResFormat sits at
// byte 57, unaligned, so the struct cannot be block-copied from the wire.
type Header struct {
	Signature     [4]byte
	VersionMajor  uint32
	VersionMinor  uint32
	HeaderLength  uint32 // declared header size, including resource entries
	Width         uint16
	Height        uint16
	Flags         TextureFlags
	Frames        uint16
	FirstFrame    uint16
	Reflectivity  [3]float32
	BumpScale     float32
	Format        ImageFormat // high-res image data format
	MipmapCount   uint8
	LowResFormat  ImageFormat
	LowResWidth   uint8
	LowResHeight  uint8
	Depth         uint16 // 7.2+
	ResourceCount uint32 // 7.3+
}

// EncodeTo serializes the header into buf, which must hold at least
// HeaderSize bytes. Padding regions are zeroed.
func (h *Header) EncodeTo(buf []byte) {
	for i := 0; i < HeaderSize; i++ {
		buf[i] = 0
	}
	copy(buf[0:4], h.Signature[:])
	binary.LittleEndian.PutUint32(buf[4:8], h.VersionMajor)
	binary.LittleEndian.PutUint32(buf[8:12], h.VersionMinor)
	binary.LittleEndian.PutUint32(buf[12:16], h.HeaderLength)
	binary.LittleEndian.PutUint16(buf[16:18], h.Width)
	binary.LittleEndian.PutUint16(buf[18:20], h.Height)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(h.Flags))
	binary.LittleEndian.PutUint16(buf[24:26], h.Frames)
	binary.LittleEndian.PutUint16(buf[26:28], h.FirstFrame)
	for i, v := range h.Reflectivity {
		binary.LittleEndian.PutUint32(buf[32+i*4:36+i*4], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(h.BumpScale))
	binary.LittleEndian.PutUint32(buf[52:56], uint32(h.Format))
	buf[56] = h.MipmapCount
	binary.LittleEndian.PutUint32(buf[57:61], uint32(h.LowResFormat))
	buf[61] = h.LowResWidth
	buf[62] = h.LowResHeight
	binary.LittleEndian.PutUint16(buf[63:65], h.Depth)
	binary.LittleEndian.PutUint32(buf[68:72], h.ResourceCount)
}

// DecodeFrom deserializes the header from buf without validating it. buf
// must hold at least HeaderSize bytes.
func (h *Header) DecodeFrom(buf []byte) {
	copy(h.Signature[:], buf[0:4])
	h.VersionMajor = binary.LittleEndian.Uint32(buf[4:8])
	h.VersionMinor = binary.LittleEndian.Uint32(buf[8:12])
	h.HeaderLength = binary.LittleEndian.Uint32(buf[12:16])
	h.Width = binary.LittleEndian.Uint16(buf[16:18])
	h.Height = binary.LittleEndian.Uint16(buf[18:20])
	h.Flags = TextureFlags(binary.LittleEndian.Uint32(buf[20:24]))
	h.Frames = binary.LittleEndian.Uint16(buf[24:26])
	h.FirstFrame = binary.LittleEndian.Uint16(buf[26:28])
	for i := range h.Reflectivity {
		h.Reflectivity[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[32+i*4 : 36+i*4]))
	}
	h.BumpScale = math.Float32frombits(binary.LittleEndian.Uint32(buf[48:52]))
	h.Format = ImageFormat(int32(binary.LittleEndian.Uint32(buf[52:56])))
	h.MipmapCount = buf[56]
	h.LowResFormat = ImageFormat(int32(binary.LittleEndian.Uint32(buf[57:61])))
	h.LowResWidth = buf[61]
	h.LowResHeight = buf[62]
	h.Depth = binary.LittleEndian.Uint16(buf[63:65])
	h.ResourceCount = binary.LittleEndian.Uint32(buf[68:72])
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, validating the
// decoded header.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedInput, len(data), HeaderSize)
	}
	h.DecodeFrom(data)
	return h.Validate()
}

// Validate checks signature, version and structural sanity. It does not
// look at image data, so a valid header can still describe a payload the
// buffer does not contain.
func (h *Header) Validate() error {
	if h.Signature != Signature {
		return fmt.Errorf("%w: got %q", ErrBadSignature, h.Signature[:])
	}
	if h.VersionMajor != VersionMajor || h.VersionMinor > MaxVersionMinor {
		return fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, h.VersionMajor, h.VersionMinor)
	}
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: zero dimensions %dx%d", ErrInvalidHeader, h.Width, h.Height)
	}
	if h.VersionMinor >= 3 && h.ResourceCount > maxResources {
		return fmt.Errorf("%w: resource count %d exceeds %d", ErrInvalidHeader, h.ResourceCount, maxResources)
	}
	return nil
}
