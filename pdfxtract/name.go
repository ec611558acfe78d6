// Copyright © 2026, SAS Institute Inc., Cary, NC, USA.  All Rights Reserved.
// SPDX-License-Identifier: BSD-3-Clause

// Glyph-name and single-byte encoding tables used when decoding text
// drawn with fonts that carry a /Differences array or a named simple
// encoding instead of a ToUnicode CMap.

package xtract

// winAnsiEncoding maps WinAnsiEncoding (CP1252) bytes to runes.
var winAnsiEncoding = [256]rune{
	0x0000, 0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006, 0x0007,
	0x0008, 0x0009, 0x000a, 0x000b, 0x000c, 0x000d, 0x000e, 0x000f,
	0x0010, 0x0011, 0x0012, 0x0013, 0x0014, 0x0015, 0x0016, 0x0017,
	0x0018, 0x0019, 0x001a, 0x001b, 0x001c, 0x001d, 0x001e, 0x001f,
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x0027,
	0x0028, 0x0029, 0x002a, 0x002b, 0x002c, 0x002d, 0x002e, 0x002f,
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037,
	0x0038, 0x0039, 0x003a, 0x003b, 0x003c, 0x003d, 0x003e, 0x003f,
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047,
	0x0048, 0x0049, 0x004a, 0x004b, 0x004c, 0x004d, 0x004e, 0x004f,
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057,
	0x0058, 0x0059, 0x005a, 0x005b, 0x005c, 0x005d, 0x005e, 0x005f,
	0x0060, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067,
	0x0068, 0x0069, 0x006a, 0x006b, 0x006c, 0x006d, 0x006e, 0x006f,
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077,
	0x0078, 0x0079, 0x007a, 0x007b, 0x007c, 0x007d, 0x007e, 0x007f,
	0x20ac, noRune, 0x201a, 0x0192, 0x201e, 0x2026, 0x2020, 0x2021,
	0x02c6, 0x2030, 0x0160, 0x2039, 0x0152, noRune, 0x017d, noRune,
	noRune, 0x2018, 0x2019, 0x201c, 0x201d, 0x2022, 0x2013, 0x2014,
	0x02dc, 0x2122, 0x0161, 0x203a, 0x0153, noRune, 0x017e, 0x0178,
	0x00a0, 0x00a1, 0x00a2, 0x00a3, 0x00a4, 0x00a5, 0x00a6, 0x00a7,
	0x00a8, 0x00a9, 0x00aa, 0x00ab, 0x00ac, 0x00ad, 0x00ae, 0x00af,
	0x00b0, 0x00b1, 0x00b2, 0x00b3, 0x00b4, 0x00b5, 0x00b6, 0x00b7,
	0x00b8, 0x00b9, 0x00ba, 0x00bb, 0x00bc, 0x00bd, 0x00be, 0x00bf,
	0x00c0, 0x00c1, 0x00c2, 0x00c3, 0x00c4, 0x00c5, 0x00c6, 0x00c7,
	0x00c8, 0x00c9, 0x00ca, 0x00cb, 0x00cc, 0x00cd, 0x00ce, 0x00cf,
	0x00d0, 0x00d1, 0x00d2, 0x00d3, 0x00d4, 0x00d5, 0x00d6, 0x00d7,
	0x00d8, 0x00d9, 0x00da, 0x00db, 0x00dc, 0x00dd, 0x00de, 0x00df,
	0x00e0, 0x00e1, 0x00e2, 0x00e3, 0x00e4, 0x00e5, 0x00e6, 0x00e7,
	0x00e8, 0x00e9, 0x00ea, 0x00eb, 0x00ec, 0x00ed, 0x00ee, 0x00ef,
	0x00f0, 0x00f1, 0x00f2, 0x00f3, 0x00f4, 0x00f5, 0x00f6, 0x00f7,
	0x00f8, 0x00f9, 0x00fa, 0x00fb, 0x00fc, 0x00fd, 0x00fe, 0x00ff,
}

// macRomanEncoding maps MacRomanEncoding bytes to runes.
var macRomanEncoding = [256]rune{
	0x0000, 0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006, 0x0007,
	0x0008, 0x0009, 0x000a, 0x000b, 0x000c, 0x000d, 0x000e, 0x000f,
	0x0010, 0x0011, 0x0012, 0x0013, 0x0014, 0x0015, 0x0016, 0x0017,
	0x0018, 0x0019, 0x001a, 0x001b, 0x001c, 0x001d, 0x001e, 0x001f,
	0x0020, 0x0021, 0x0022, 0x0023, 0x0024, 0x0025, 0x0026, 0x0027,
	0x0028, 0x0029, 0x002a, 0x002b, 0x002c, 0x002d, 0x002e, 0x002f,
	0x0030, 0x0031, 0x0032, 0x0033, 0x0034, 0x0035, 0x0036, 0x0037,
	0x0038, 0x0039, 0x003a, 0x003b, 0x003c, 0x003d, 0x003e, 0x003f,
	0x0040, 0x0041, 0x0042, 0x0043, 0x0044, 0x0045, 0x0046, 0x0047,
	0x0048, 0x0049, 0x004a, 0x004b, 0x004c, 0x004d, 0x004e, 0x004f,
	0x0050, 0x0051, 0x0052, 0x0053, 0x0054, 0x0055, 0x0056, 0x0057,
	0x0058, 0x0059, 0x005a, 0x005b, 0x005c, 0x005d, 0x005e, 0x005f,
	0x0060, 0x0061, 0x0062, 0x0063, 0x0064, 0x0065, 0x0066, 0x0067,
	0x0068, 0x0069, 0x006a, 0x006b, 0x006c, 0x006d, 0x006e, 0x006f,
	0x0070, 0x0071, 0x0072, 0x0073, 0x0074, 0x0075, 0x0076, 0x0077,
	0x0078, 0x0079, 0x007a, 0x007b, 0x007c, 0x007d, 0x007e, 0x007f,
	0x00c4, 0x00c5, 0x00c7, 0x00c9, 0x00d1, 0x00d6, 0x00dc, 0x00e1,
	0x00e0, 0x00e2, 0x00e4, 0x00e3, 0x00e5, 0x00e7, 0x00e9, 0x00e8,
	0x00ea, 0x00eb, 0x00ed, 0x00ec, 0x00ee, 0x00ef, 0x00f1, 0x00f3,
	0x00f2, 0x00f4, 0x00f6, 0x00f5, 0x00fa, 0x00f9, 0x00fb, 0x00fc,
	0x2020, 0x00b0, 0x00a2, 0x00a3, 0x00a7, 0x2022, 0x00b6, 0x00df,
	0x00ae, 0x00a9, 0x2122, 0x00b4, 0x00a8, 0x2260, 0x00c6, 0x00d8,
	0x221e, 0x00b1, 0x2264, 0x2265, 0x00a5, 0x00b5, 0x2202, 0x2211,
	0x220f, 0x03c0, 0x222b, 0x00aa, 0x00ba, 0x03a9, 0x00e6, 0x00f8,
	0x00bf, 0x00a1, 0x00ac, 0x221a, 0x0192, 0x2248, 0x2206, 0x00ab,
	0x00bb, 0x2026, 0x00a0, 0x00c0, 0x00c3, 0x00d5, 0x0152, 0x0153,
	0x2013, 0x2014, 0x201c, 0x201d, 0x2018, 0x2019, 0x00f7, 0x25ca,
	0x00ff, 0x0178, 0x2044, 0x20ac, 0x2039, 0x203a, 0xfb01, 0xfb02,
	0x2021, 0x00b7, 0x201a, 0x201e, 0x2030, 0x00c2, 0x00ca, 0x00c1,
	0x00cb, 0x00c8, 0x00cd, 0x00ce, 0x00cf, 0x00cc, 0x00d3, 0x00d4,
	0xf8ff, 0x00d2, 0x00da, 0x00db, 0x00d9, 0x0131, 0x02c6, 0x02dc,
	0x00af, 0x02d8, 0x02d9, 0x02da, 0x00b8, 0x02dd, 0x02db, 0x02c7,
}

// nameToRune maps the glyph names that appear in /Differences arrays to
// runes. It covers the Latin glyph repertoire bank statements use; names
// outside the table fall back to the raw code byte in dictEncoder.
var nameToRune = map[string]rune{
	"A":               0x0041,
	"AE":              0x00c6,
	"Aacute":          0x00c1,
	"Acircumflex":     0x00c2,
	"Adieresis":       0x00c4,
	"Agrave":          0x00c0,
	"Aring":           0x00c5,
	"Atilde":          0x00c3,
	"B":               0x0042,
	"C":               0x0043,
	"Ccedilla":        0x00c7,
	"D":               0x0044,
	"E":               0x0045,
	"Eacute":          0x00c9,
	"Ecircumflex":     0x00ca,
	"Edieresis":       0x00cb,
	"Egrave":          0x00c8,
	"Eth":             0x00d0,
	"Euro":            0x20ac,
	"F":               0x0046,
	"G":               0x0047,
	"H":               0x0048,
	"I":               0x0049,
	"Iacute":          0x00cd,
	"Icircumflex":     0x00ce,
	"Idieresis":       0x00cf,
	"Igrave":          0x00cc,
	"J":               0x004a,
	"K":               0x004b,
	"L":               0x004c,
	"Lslash":          0x0141,
	"M":               0x004d,
	"N":               0x004e,
	"Ntilde":          0x00d1,
	"O":               0x004f,
	"OE":              0x0152,
	"Oacute":          0x00d3,
	"Ocircumflex":     0x00d4,
	"Odieresis":       0x00d6,
	"Ograve":          0x00d2,
	"Oslash":          0x00d8,
	"Otilde":          0x00d5,
	"P":               0x0050,
	"Q":               0x0051,
	"R":               0x0052,
	"S":               0x0053,
	"Scaron":          0x0160,
	"T":               0x0054,
	"Thorn":           0x00de,
	"U":               0x0055,
	"Uacute":          0x00da,
	"Ucircumflex":     0x00db,
	"Udieresis":       0x00dc,
	"Ugrave":          0x00d9,
	"V":               0x0056,
	"W":               0x0057,
	"X":               0x0058,
	"Y":               0x0059,
	"Yacute":          0x00dd,
	"Ydieresis":       0x0178,
	"Z":               0x005a,
	"Zcaron":          0x017d,
	"a":               0x0061,
	"aacute":          0x00e1,
	"acircumflex":     0x00e2,
	"acute":           0x00b4,
	"adieresis":       0x00e4,
	"ae":              0x00e6,
	"agrave":          0x00e0,
	"ampersand":       0x0026,
	"aring":           0x00e5,
	"asciicircum":     0x005e,
	"asciitilde":      0x007e,
	"asterisk":        0x002a,
	"at":              0x0040,
	"atilde":          0x00e3,
	"b":               0x0062,
	"backslash":       0x005c,
	"bar":             0x007c,
	"braceleft":       0x007b,
	"braceright":      0x007d,
	"bracketleft":     0x005b,
	"bracketright":    0x005d,
	"breve":           0x02d8,
	"brokenbar":       0x00a6,
	"bullet":          0x2022,
	"c":               0x0063,
	"caron":           0x02c7,
	"ccedilla":        0x00e7,
	"cedilla":         0x00b8,
	"cent":            0x00a2,
	"circumflex":      0x02c6,
	"colon":           0x003a,
	"comma":           0x002c,
	"copyright":       0x00a9,
	"currency":        0x00a4,
	"d":               0x0064,
	"dagger":          0x2020,
	"daggerdbl":       0x2021,
	"degree":          0x00b0,
	"dieresis":        0x00a8,
	"divide":          0x00f7,
	"dollar":          0x0024,
	"dotaccent":       0x02d9,
	"dotlessi":        0x0131,
	"e":               0x0065,
	"eacute":          0x00e9,
	"ecircumflex":     0x00ea,
	"edieresis":       0x00eb,
	"egrave":          0x00e8,
	"eight":           0x0038,
	"ellipsis":        0x2026,
	"emdash":          0x2014,
	"endash":          0x2013,
	"equal":           0x003d,
	"eth":             0x00f0,
	"exclam":          0x0021,
	"exclamdown":      0x00a1,
	"f":               0x0066,
	"fi":              0xfb01,
	"five":            0x0035,
	"fl":              0xfb02,
	"florin":          0x0192,
	"four":            0x0034,
	"fraction":        0x2044,
	"g":               0x0067,
	"germandbls":      0x00df,
	"grave":           0x0060,
	"greater":         0x003e,
	"guillemotleft":   0x00ab,
	"guillemotright":  0x00bb,
	"guilsinglleft":   0x2039,
	"guilsinglright":  0x203a,
	"h":               0x0068,
	"hungarumlaut":    0x02dd,
	"hyphen":          0x002d,
	"i":               0x0069,
	"iacute":          0x00ed,
	"icircumflex":     0x00ee,
	"idieresis":       0x00ef,
	"igrave":          0x00ec,
	"j":               0x006a,
	"k":               0x006b,
	"l":               0x006c,
	"less":            0x003c,
	"logicalnot":      0x00ac,
	"lslash":          0x0142,
	"m":               0x006d,
	"macron":          0x00af,
	"middot":          0x00b7,
	"minus":           0x2212,
	"mu":              0x00b5,
	"multiply":        0x00d7,
	"n":               0x006e,
	"nbspace":         0x00a0,
	"nine":            0x0039,
	"ntilde":          0x00f1,
	"numbersign":      0x0023,
	"o":               0x006f,
	"oacute":          0x00f3,
	"ocircumflex":     0x00f4,
	"odieresis":       0x00f6,
	"oe":              0x0153,
	"ogonek":          0x02db,
	"ograve":          0x00f2,
	"one":             0x0031,
	"onehalf":         0x00bd,
	"onequarter":      0x00bc,
	"ordfeminine":     0x00aa,
	"ordmasculine":    0x00ba,
	"oslash":          0x00f8,
	"otilde":          0x00f5,
	"p":               0x0070,
	"paragraph":       0x00b6,
	"parenleft":       0x0028,
	"parenright":      0x0029,
	"percent":         0x0025,
	"period":          0x002e,
	"periodcentered":  0x00b7,
	"perthousand":     0x2030,
	"plus":            0x002b,
	"plusminus":       0x00b1,
	"q":               0x0071,
	"question":        0x003f,
	"questiondown":    0x00bf,
	"quotedbl":        0x0022,
	"quotedblbase":    0x201e,
	"quotedblleft":    0x201c,
	"quotedblright":   0x201d,
	"quoteleft":       0x2018,
	"quoteright":      0x2019,
	"quotesinglbase":  0x201a,
	"quotesingle":     0x0027,
	"r":               0x0072,
	"registered":      0x00ae,
	"ring":            0x02da,
	"s":               0x0073,
	"scaron":          0x0161,
	"section":         0x00a7,
	"semicolon":       0x003b,
	"seven":           0x0037,
	"sfthyphen":       0x00ad,
	"six":             0x0036,
	"slash":           0x002f,
	"space":           0x0020,
	"sterling":        0x00a3,
	"t":               0x0074,
	"thorn":           0x00fe,
	"three":           0x0033,
	"threequarters":   0x00be,
	"tilde":           0x02dc,
	"trademark":       0x2122,
	"two":             0x0032,
	"u":               0x0075,
	"uacute":          0x00fa,
	"ucircumflex":     0x00fb,
	"udieresis":       0x00fc,
	"ugrave":          0x00f9,
	"underscore":      0x005f,
	"v":               0x0076,
	"w":               0x0077,
	"x":               0x0078,
	"y":               0x0079,
	"yacute":          0x00fd,
	"ydieresis":       0x00ff,
	"yen":             0x00a5,
	"z":               0x007a,
	"zcaron":          0x017e,
	"zero":            0x0030,
}
