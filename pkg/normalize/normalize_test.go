package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestion-api/pkg/normalize"
)

func TestFold(t *testing.T) {
	cases := map[string]string{
		"Café":           "cafe",
		"  AZÚCAR  ":     "azucar",
		"Panela":         "panela",
		"Ñame":           "name",
		"LIMÓN Tahití":   "limon tahiti",
		"":               "",
		"ya-normalizado": "ya-normalizado",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalize.Fold(in), "Fold(%q)", in)
	}
}

func TestFold_Simetrico(t *testing.T) {
	// La columna guardada y el término de búsqueda pasan por la misma función:
	// "cafe" encuentra "Café" porque ambos terminan en "cafe".
	assert.Equal(t, normalize.Fold("Café"), normalize.Fold("cafe"))
}
