package fpdf

import "strings"

// Turkish-to-ASCII folding for deployments without cp1254-capable viewers.
var asciiFoldTable = map[rune]rune{
	'ç': 'c', 'Ç': 'C',
	'ğ': 'g', 'Ğ': 'G',
	'ı': 'i', 'İ': 'I',
	'ö': 'o', 'Ö': 'O',
	'ş': 's', 'Ş': 'S',
	'ü': 'u', 'Ü': 'U',
}

func foldToASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if folded, ok := asciiFoldTable[r]; ok {
			return folded
		}
		if r > 127 {
			return '?'
		}
		return r
	}, s)
}
