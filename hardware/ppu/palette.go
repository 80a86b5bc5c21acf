package ppu

// RGB is a single displayable color. The host decides what to do with it
// (an SDL texture, a PNG encoder, ...); this package only produces pixels.
type RGB struct {
	R, G, B uint8
}

// nesPalette is the canonical 64-entry NES master palette, indexed by the
// 6-bit color value produced by composing a pixel's palette RAM byte.
// Several commonly-circulated palette files disagree on the exact
// emphasis/gamma of a handful of entries; this is the widely used
// "2C02 default" table.
var nesPalette = [64]RGB{
	{0x7c, 0x7c, 0x7c}, {0x00, 0x00, 0xfc}, {0x00, 0x00, 0xbc}, {0x44, 0x28, 0xbc},
	{0x94, 0x00, 0x84}, {0xa8, 0x00, 0x20}, {0xa8, 0x10, 0x00}, {0x88, 0x14, 0x00},
	{0x50, 0x30, 0x00}, {0x00, 0x78, 0x00}, {0x00, 0x68, 0x00}, {0x00, 0x58, 0x00},
	{0x00, 0x40, 0x58}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xbc, 0xbc, 0xbc}, {0x00, 0x78, 0xf8}, {0x00, 0x58, 0xf8}, {0x68, 0x44, 0xfc},
	{0xd8, 0x00, 0xcc}, {0xe4, 0x00, 0x58}, {0xf8, 0x38, 0x00}, {0xe4, 0x5c, 0x10},
	{0xac, 0x7c, 0x00}, {0x00, 0xb8, 0x00}, {0x00, 0xa8, 0x00}, {0x00, 0xa8, 0x44},
	{0x00, 0x88, 0x88}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xf8, 0xf8, 0xf8}, {0x3c, 0xbc, 0xfc}, {0x68, 0x88, 0xfc}, {0x98, 0x78, 0xf8},
	{0xf8, 0x78, 0xf8}, {0xf8, 0x58, 0x98}, {0xf8, 0x78, 0x58}, {0xfc, 0xa0, 0x44},
	{0xf8, 0xb8, 0x00}, {0xb8, 0xf8, 0x18}, {0x58, 0xd8, 0x54}, {0x58, 0xf8, 0x98},
	{0x00, 0xe8, 0xd8}, {0x78, 0x78, 0x78}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	{0xfc, 0xfc, 0xfc}, {0xa4, 0xe4, 0xfc}, {0xb8, 0xb8, 0xf8}, {0xd8, 0xb8, 0xf8},
	{0xf8, 0xb8, 0xf8}, {0xf8, 0xa4, 0xc0}, {0xf0, 0xd0, 0xb0}, {0xfc, 0xe0, 0xa8},
	{0xf8, 0xd8, 0x78}, {0xd8, 0xf8, 0x78}, {0xb8, 0xf8, 0xb8}, {0xb8, 0xf8, 0xd8},
	{0x00, 0xfc, 0xfc}, {0xf8, 0xd8, 0xf8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}
