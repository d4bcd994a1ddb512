// Package textfix detecta la codificación de la exportación y repara el mojibake.
package textfix

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "latin1"
)

type Result struct {
	Text     string
	Encoding Encoding
}

// Artefactos de bytes CP850 leídos como Latin-1. Un solo pasaje por runa:
// la salida de una sustitución nunca vuelve a entrar a la tabla.
var runeTable = map[rune]rune{
	'¢':      'ó',
	'£':      'ú',
	'à':      'Ó',
	'µ':      'á',
	'¥':      'Ñ',
	'¤':      'ñ',
	'Ö':      'Í',
	'¡':      'í',
	'\u0080': 'Ç',
	'\u0082': 'é',
	'\u0084': 'ä',
	'\u0087': 'ç',
	'\u0090': 'É',
	'\u0094': 'ö',
	'\u0099': 'Ö',
	'\u009B': 'ø',
	'\u00a0': ' ',
}

// En CP850 la "á" es 0xA0, que en Latin-1 es NBSP y termina como espacio.
// Solo se buscan con el NBSP original: "el servicio" no debe tocarse.
var phraseFixes = strings.NewReplacer(
	"l\u00a0ser", "láser",
	"L\u00a0SER", "LÁSER",
	"Im\u00a0genes", "Imágenes",
	"f\u00a0cil", "fácil",
	"pr\u00a0ximo", "próximo",
	"m\u00a0s", "más",
	"M\u00a0S", "MÁS",
)

// Repair devuelve el texto sin tocar si es UTF-8 válido; si no, decodifica
// toda la entrada como Latin-1 y aplica la tabla fija de sustituciones.
func Repair(raw []byte) Result {
	if utf8.Valid(raw) {
		return Result{Text: string(raw), Encoding: UTF8}
	}
	// ISO-8859-1 mapea cada byte a una runa, el decoder no puede fallar.
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	return Result{Text: ApplyTable(string(decoded)), Encoding: Latin1}
}

// ApplyTable aplica la tabla de frases y después la de runas.
func ApplyTable(s string) string {
	return strings.Map(func(r rune) rune {
		if to, ok := runeTable[r]; ok {
			return to
		}
		return r
	}, phraseFixes.Replace(s))
}

// CleanField normaliza un campo ya decodificado: NBSP a espacio, colapsa
// espacios y recorta.
func CleanField(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Suspicious lista runas que indican una reparación incompleta: U+FFFD,
// controles C1 y la firma de UTF-8 doblemente codificado.
func Suspicious(s string) []rune {
	var out []rune
	prev := rune(0)
	for _, r := range s {
		switch {
		case r == utf8.RuneError:
			out = append(out, r)
		case r >= 0x80 && r <= 0x9F:
			out = append(out, r)
		case (prev == 'Ã' || prev == 'Â') && r >= 0x80 && r <= 0xBF:
			out = append(out, prev, r)
		}
		prev = r
	}
	return out
}
