package vtf

import (
	"fmt"
	"strings"
)

// TextureFlags is the header bitset controlling sampling, clamping and
// content hints. The writer stores whatever the caller sets; none of the
// bits change how pixel data is laid out.
type TextureFlags uint32

const (
	FlagPointSample       TextureFlags = 0x00000001
	FlagTrilinear         TextureFlags = 0x00000002
	FlagClampS            TextureFlags = 0x00000004
	FlagClampT            TextureFlags = 0x00000008
	FlagAnisotropic       TextureFlags = 0x00000010
	FlagHintDXT5          TextureFlags = 0x00000020
	FlagPWLCorrected      TextureFlags = 0x00000040
	FlagNormal            TextureFlags = 0x00000080
	FlagNoMip             TextureFlags = 0x00000100
	FlagNoLOD             TextureFlags = 0x00000200
	FlagAllMips           TextureFlags = 0x00000400
	FlagProcedural        TextureFlags = 0x00000800
	FlagOneBitAlpha       TextureFlags = 0x00001000
	FlagEightBitAlpha     TextureFlags = 0x00002000
	FlagEnvMap            TextureFlags = 0x00004000
	FlagRenderTarget      TextureFlags = 0x00008000
	FlagDepthRenderTarget TextureFlags = 0x00010000
	FlagNoDebugOverride   TextureFlags = 0x00020000
	FlagSingleCopy        TextureFlags = 0x00040000
	FlagPreSRGB           TextureFlags = 0x00080000
	FlagNoDepthBuffer     TextureFlags = 0x00800000
	FlagClampU            TextureFlags = 0x02000000
	FlagVertexTexture     TextureFlags = 0x04000000
	FlagSSBump            TextureFlags = 0x08000000
	FlagBorder            TextureFlags = 0x20000000
)

var flagNames = []struct {
	bit  TextureFlags
	name string
}{
	{FlagPointSample, "POINTSAMPLE"},
	{FlagTrilinear, "TRILINEAR"},
	{FlagClampS, "CLAMPS"},
	{FlagClampT, "CLAMPT"},
	{FlagAnisotropic, "ANISOTROPIC"},
	{FlagHintDXT5, "HINT_DXT5"},
	{FlagPWLCorrected, "PWL_CORRECTED"},
	{FlagNormal, "NORMAL"},
	{FlagNoMip, "NOMIP"},
	{FlagNoLOD, "NOLOD"},
	{FlagAllMips, "ALL_MIPS"},
	{FlagProcedural, "PROCEDURAL"},
	{FlagOneBitAlpha, "ONEBITALPHA"},
	{FlagEightBitAlpha, "EIGHTBITALPHA"},
	{FlagEnvMap, "ENVMAP"},
	{FlagRenderTarget, "RENDERTARGET"},
	{FlagDepthRenderTarget, "DEPTHRENDERTARGET"},
	{FlagNoDebugOverride, "NODEBUGOVERRIDE"},
	{FlagSingleCopy, "SINGLECOPY"},
	{FlagPreSRGB, "PRE_SRGB"},
	{FlagNoDepthBuffer, "NODEPTHBUFFER"},
	{FlagClampU, "CLAMPU"},
	{FlagVertexTexture, "VERTEXTEXTURE"},
	{FlagSSBump, "SSBUMP"},
	{FlagBorder, "BORDER"},
}

// String names the set bits separated by '|', keeping any unknown bits as
// a trailing hex remainder. The zero value renders as "0".
func (f TextureFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	rest := f
	for _, fn := range flagNames {
		if rest&fn.bit != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%08X", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
