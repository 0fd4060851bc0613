// Package refcode genera los códigos que ve el usuario (RR-..., APP-..., TXN-...).
package refcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Random devuelve n caracteres base36 en mayúsculas.
func Random(n int) string {
	if n <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand no falla en plataformas soportadas
			panic(err)
		}
		b.WriteByte(alphabet[v.Int64()])
	}
	return strings.ToUpper(b.String())
}

// Timestamp codifica los milisegundos unix de t en base36 mayúscula.
func Timestamp(t time.Time) string {
	return strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36))
}

// New arma PREFIX-<TIMESTAMP>-<RANDOM>.
func New(prefix string, t time.Time, randomLen int) string {
	parts := []string{strings.ToUpper(prefix), Timestamp(t)}
	if randomLen > 0 {
		parts = append(parts, Random(randomLen))
	}
	return strings.Join(parts, "-")
}
