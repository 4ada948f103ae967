// Package ledger contiene servicios de dominio puros del kardex.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FingerprintAction línea canónica de un lote para el cálculo de huella.
// TargetLocationID queda vacío cuando la acción no tiene destino explícito.
type FingerprintAction struct {
	Type             string
	ItemID           string
	SourceLocationID string
	TargetLocationID string
	Qty              decimal.Decimal
}

// Fingerprint serializa el conjunto de acciones de forma canónica (líneas
// normalizadas y ordenadas) y lo resume con SHA-256. El mismo lote lógico
// produce la misma huella sin importar el orden en que el cliente mande las
// líneas; la huella sirve de deduplicación cuando los idempotency keys del
// cliente faltan o colisionan.
func Fingerprint(actions []FingerprintAction) string {
	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		lines = append(lines, strings.Join([]string{
			a.Type,
			a.ItemID,
			a.SourceLocationID,
			a.TargetLocationID,
			a.Qty.String(),
		}, "|"))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(sum[:])
}

// BatchReference deriva la referencia de lote a partir de la huella. Un prefijo
// override del cliente fuerza una referencia distinta cuando se quiere postear
// de nuevo el mismo contenido a propósito (saltando la deduplicación por huella).
func BatchReference(fingerprint, override string) string {
	ref := "PA-" + fingerprint[:20]
	if override != "" {
		return override + ":" + ref
	}
	return ref
}
