package chip8vm

// smallFont is the 16-character 4x5 font, one glyph per 5 bytes, installed
// at 0x000. Values ported verbatim from nevisdale-go-chip8's font table.
var smallFont = [16 * smallGlyphLen]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// largeFont is the 16-character 8x10 SCHIP font, one glyph per 10 bytes,
// installed at 0x050. This table has no counterpart in the teacher repo
// (pre-SCHIP); it is the conventional SUPER-CHIP big font shared by most
// interpreters that implement FX30 (see the font.go row of DESIGN.md's
// core table).
var largeFont = [16 * largeGlyphLen]byte{
	0x3C, 0x7E, 0xE7, 0xC3, 0xC3, 0xC3, 0xC3, 0xE7, 0x7E, 0x3C, // 0
	0x18, 0x38, 0x58, 0x18, 0x18, 0x18, 0x18, 0x18, 0x18, 0x3C, // 1
	0x7E, 0xFF, 0xC3, 0x06, 0x0C, 0x18, 0x30, 0x60, 0xFF, 0xFF, // 2
	0x7E, 0xFF, 0xC3, 0x03, 0x0E, 0x0E, 0x03, 0xC3, 0xFF, 0x7E, // 3
	0x06, 0x0E, 0x1E, 0x36, 0x66, 0xC6, 0xFF, 0xFF, 0x06, 0x06, // 4
	0xFF, 0xFF, 0xC0, 0xC0, 0xFC, 0xFE, 0x03, 0xC3, 0xFF, 0x7E, // 5
	0x7E, 0xFF, 0xC3, 0xC0, 0xFC, 0xFE, 0xC3, 0xC3, 0xFF, 0x7E, // 6
	0xFF, 0xFF, 0x03, 0x06, 0x0C, 0x18, 0x30, 0x30, 0x30, 0x30, // 7
	0x7E, 0xFF, 0xC3, 0xC3, 0x7E, 0x7E, 0xC3, 0xC3, 0xFF, 0x7E, // 8
	0x7E, 0xFF, 0xC3, 0xC3, 0xFF, 0x7F, 0x03, 0xC3, 0xFF, 0x7E, // 9
	0x7E, 0xFF, 0xC3, 0xC3, 0xC3, 0xFF, 0xFF, 0xC3, 0xC3, 0xC3, // A
	0xFC, 0xFE, 0xC3, 0xC3, 0xFC, 0xFC, 0xC3, 0xC3, 0xFE, 0xFC, // B
	0x3C, 0x7E, 0xC3, 0xC0, 0xC0, 0xC0, 0xC0, 0xC3, 0x7E, 0x3C, // C
	0xFC, 0xFE, 0xC3, 0xC3, 0xC3, 0xC3, 0xC3, 0xC3, 0xFE, 0xFC, // D
	0xFF, 0xFF, 0xC0, 0xC0, 0xFF, 0xFF, 0xC0, 0xC0, 0xFF, 0xFF, // E
	0xFF, 0xFF, 0xC0, 0xC0, 0xFF, 0xFF, 0xC0, 0xC0, 0xC0, 0xC0, // F
}

// SmallFontAddr returns the memory address of the 4x5 glyph for the
// low nibble of digit.
func SmallFontAddr(digit uint8) uint16 {
	return smallFontBase + uint16(digit&0xF)*smallGlyphLen
}

// LargeFontAddr returns the memory address of the 8x10 glyph for the
// low nibble of digit.
func LargeFontAddr(digit uint8) uint16 {
	return largeFontBase + uint16(digit&0xF)*largeGlyphLen
}
