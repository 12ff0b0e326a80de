package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_StripsPunctuationAndCase(t *testing.T) {
	assert.Equal(t, "mercadolibre", Key("Mercado Libre!"))
	assert.Equal(t, "mercadolibre", Key("MERCADOLIBRE"))
	assert.Equal(t, Key("Mercado Libre!"), Key("MERCADOLIBRE"))
}

func TestKey_Idempotent(t *testing.T) {
	inputs := []string{"", "Natura", "T&H Tabacos", "  S.A. de C.V.  ", "ñandú 99"}
	for _, s := range inputs {
		assert.Equal(t, Key(s), Key(Key(s)), "input %q", s)
	}
}

func TestKey_Empty(t *testing.T) {
	assert.Equal(t, "", Key(""))
	assert.Equal(t, "", Key("¡¿!? --- ..."))
}

func TestKey_DropsNonASCII(t *testing.T) {
	// Multibyte characters are outside the ASCII alphanumeric set and are
	// removed entirely, matching byte-level stripping on the stored side.
	assert.Equal(t, "peaflor", Key("Peñaflor"))
	assert.Equal(t, "razonsocial", Key("Razón Social"))
}

func TestKey_KeepsDigits(t *testing.T) {
	assert.Equal(t, "3msa", Key("3M S.A."))
	assert.Equal(t, "unilever2024", Key("Unilever 2024"))
}
