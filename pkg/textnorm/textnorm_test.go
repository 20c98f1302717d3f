package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/eventos-erp/pkg/textnorm"
)

func TestFold_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "canon nino", textnorm.Fold("Cañón Niño"))
	assert.Equal(t, "decoracao", textnorm.Fold("Decoração"))
}

func TestContains_IgnoraTildes(t *testing.T) {
	assert.True(t, textnorm.Contains("Mesa de Jardín", "jardin"))
	assert.True(t, textnorm.Contains("silla", "SIL"))
	assert.False(t, textnorm.Contains("silla", "mesa"))
}

func TestSKU_Normaliza(t *testing.T) {
	assert.Equal(t, "ABC-001", textnorm.SKU("  abc-001 "))
}
