package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/portal-api/pkg/textnorm"
)

func TestTitle_UnificaLetrasPersas(t *testing.T) {
	arabe := "مدير مالي" // ي árabe
	persa := "مدیر مالی" // ی persa
	assert.Equal(t, textnorm.Title(persa), textnorm.Title(arabe))
}

func TestTitle_ColapsaEspacios(t *testing.T) {
	assert.Equal(t, "Jefe de Ventas", textnorm.Title("  Jefe   de\tVentas "))
}

func TestKey_IgnoraMayusculas(t *testing.T) {
	assert.Equal(t, textnorm.Key("Sales Manager"), textnorm.Key("sales  manager"))
}

func TestUsername(t *testing.T) {
	assert.Equal(t, "admin", textnorm.Username("  ADMIN "))
	// NFKC convierte dígitos de ancho completo
	assert.Equal(t, "user1", textnorm.Username("user１"))
}

func TestXMLSafe_QuitaControles(t *testing.T) {
	assert.Equal(t, "Jefe\tde\nVentas", textnorm.XMLSafe("Je\x01fe\tde\nVen\x1ftas\uFFFE"))
	assert.Equal(t, "مدیر", textnorm.XMLSafe("مدیر"))
}

func TestTitle_SinControles(t *testing.T) {
	assert.Equal(t, "Jefe de Ventas", textnorm.Title("Jefe\x01 de\x00 Ventas"))
}
