package base

import (
	"fmt"
	"strings"
)

// LogHex renders b as a labeled hex dump, 16 bytes per line with an ASCII
// gutter, the format used throughout the teacher's debug logging.
func LogHex(s string, b []byte) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d):", s, len(b)))
	cnt := 0
	var sbl2 strings.Builder
	lastline := 0

	for _, v := range b {
		if (cnt & 0xf) == 0 {
			if sbl2.Len() != 0 {
				sb.WriteString(" ")
				sb.WriteString(sbl2.String())
				sb.WriteString("\n")
			} else {
				sb.WriteString("\n")
			}
			sbl2.Reset()
			sb.WriteString(fmt.Sprintf("%08X", cnt))
			lastline = 9
		}
		sb.WriteString(fmt.Sprintf(" %02X", v))
		sbl2.WriteString(byteToChar(v))
		lastline += 3
		cnt++
	}
	if sbl2.Len() != 0 {
		for lastline < 58 {
			sb.WriteString(" ")
			lastline++
		}
		sb.WriteString(sbl2.String())
	}

	return sb.String()
}

func byteToChar(d byte) string {
	if d >= 32 && d < 127 {
		return string(d)
	}
	return "."
}
