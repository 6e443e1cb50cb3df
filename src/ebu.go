package satradio

// EBU Latin character coding for broadcast metadata (station id, program
// text): a 256-entry byte<->rune table, direct index on decode and a
// precomputed reverse map on encode.

import (
	"strings"
	"unicode/utf8"
)

// ebuTable is the authoritative 256-entry EBU Latin repertoire, ported
// verbatim from the broadcast reference implementation's _charset table
// so encoded station-id metadata byte-matches receivers tuned to this
// character set. Codes 0x00-0x1F, 0x7F and a handful of high codes are
// unassigned (rendered as "?" on decode); every other code is a single
// printable rune, non-ASCII ones covering the accented-Latin and symbol
// repertoire EBU Latin adds for several European languages.
var ebuTable = [256]string{
	"", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "",
	"", "", "", "", "", "", "", "",
	` `, `!`, `"`, `#`, `¤`, `%`, `&`, `'`,
	`(`, `)`, `*`, `+`, `,`, `-`, `.`, `/`,
	`0`, `1`, `2`, `3`, `4`, `5`, `6`, `7`,
	`8`, `9`, `:`, `;`, `<`, `=`, `>`, `?`,
	`@`, `A`, `B`, `C`, `D`, `E`, `F`, `G`,
	`H`, `I`, `J`, `K`, `L`, `M`, `N`, `O`,
	`P`, `Q`, `R`, `S`, `T`, `U`, `V`, `W`,
	`X`, `Y`, `Z`, `[`, `\`, `]`, `―`, `_`,
	`‖`, `a`, `b`, `c`, `d`, `e`, `f`, `g`,
	`h`, `i`, `j`, `k`, `l`, `m`, `n`, `o`,
	`p`, `q`, `r`, `s`, `t`, `u`, `v`, `w`,
	`x`, `y`, `z`, `{`, `|`, `}`, `¯`, "",
	`á`, `à`, `é`, `è`, `í`, `ì`, `ó`, `ò`,
	`ú`, `ù`, `Ñ`, `Ç`, `Ş`, `β`, `¡`, `Ĳ`,
	`â`, `ä`, `ê`, `ë`, `î`, `ï`, `ô`, `ö`,
	`û`, `ü`, `ñ`, `ç`, `ş`, `ǧ`, `ı`, `ĳ`,
	`ª`, `α`, `©`, `‰`, `Ǧ`, `ě`, `ň`, `ő`,
	`π`, `€`, `£`, `$`, `←`, `↑`, `→`, `↓`,
	`º`, `¹`, `²`, `³`, `±`, `İ`, `ń`, `ű`,
	`µ`, `¿`, `÷`, `°`, `¼`, `½`, `¾`, `§`,
	`Á`, `À`, `É`, `È`, `Í`, `Ì`, `Ó`, `Ò`,
	`Ú`, `Ù`, `Ř`, `Č`, `Š`, `Ž`, `Ð`, `Ŀ`,
	`Â`, `Ä`, `Ê`, `Ë`, `Î`, `Ï`, `Ô`, `Ö`,
	`Û`, `Ü`, `ř`, `č`, `š`, `ž`, `đ`, `ŀ`,
	`Ã`, `Å`, `Æ`, `Œ`, `ŷ`, `Ý`, `Õ`, `Ø`,
	`Þ`, `Ŋ`, `Ŕ`, `Ć`, `Ś`, `Ź`, `Ŧ`, `ð`,
	`ã`, `å`, `æ`, `œ`, `ŵ`, `ý`, `õ`, `ø`,
	`þ`, `ŋ`, `ŕ`, `ć`, `ś`, `ź`, `ŧ`, "",
}

// ebuReverse maps each representable rune back to its EBU code, built
// once from ebuTable so EncodeEBU is a plain map lookup rather than a
// 256-entry scan per rune.
var ebuReverse = buildEBUReverse()

func buildEBUReverse() map[rune]byte {
	var r = make(map[rune]byte, 256)
	for i, s := range ebuTable {
		if s == "" {
			continue
		}
		var first, _ = utf8.DecodeRuneInString(s)
		r[first] = byte(i)
	}
	return r
}

// EncodeEBU maps a UTF-8 string to single-byte EBU Latin codes,
// substituting a space for any codepoint with no table entry.
func EncodeEBU(s string) []byte {
	var out = make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, ebuEncodeRune(r))
	}
	return out
}

func ebuEncodeRune(r rune) byte {
	if b, ok := ebuReverse[r]; ok {
		return b
	}
	return 0x20
}

// DecodeEBU maps single-byte EBU Latin codes back to UTF-8, rendering
// unassigned codes as "?".
func DecodeEBU(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if ebuTable[c] == "" {
			sb.WriteString("?")
		} else {
			sb.WriteString(ebuTable[c])
		}
	}
	return sb.String()
}
