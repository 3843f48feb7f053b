package policy

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeEmail recorta espacios y aplica case folding Unicode.
func NormalizeEmail(email string) string {
	// cases.Caser no es seguro entre goroutines; se crea uno por llamada.
	return cases.Fold().String(strings.TrimSpace(email))
}

// SameEmail compara dos emails normalizados; vacío nunca coincide.
func SameEmail(a, b string) bool {
	na, nb := NormalizeEmail(a), NormalizeEmail(b)
	return na != "" && na == nb
}
