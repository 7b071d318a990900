// Package textnorm normaliza texto libre (títulos de cargo, nombres de usuario) antes
// de compararlo o persistirlo. Los teclados persa y árabe producen variantes distintas
// de ی/ک que se ven iguales en pantalla; sin normalizar, "مدیر مالی" puede duplicarse.
package textnorm

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var persianLetters = strings.NewReplacer(
	"ي", "ی", // ي árabe -> ی persa
	"ى", "ی", // ى alef maksura -> ی
	"ك", "ک", // ك árabe -> ک persa
	"\u200c\u200c", "\u200c", // ZWNJ duplicado
)

// Title devuelve el texto en NFC, sin caracteres de control, con letras persas
// unificadas y espacios colapsados.
func Title(s string) string {
	s = norm.NFC.String(XMLSafe(s))
	s = persianLetters.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Key devuelve la clave de comparación de un título: Title en minúsculas.
func Key(s string) string {
	return strings.ToLower(Title(s))
}

// Username normaliza un nombre de usuario: NFKC, sin espacios, en minúsculas.
func Username(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// XMLSafe elimina las runas que XML 1.0 no admite (controles C0 salvo tab, LF y CR,
// sustitutos y U+FFFE/U+FFFF).
func XMLSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return r
		case r < 0x20:
			return -1
		case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
			return -1
		}
		return r
	}, s)
}
