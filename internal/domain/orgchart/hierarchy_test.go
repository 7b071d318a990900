package orgchart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/portal-api/internal/domain/orgchart"
)

func TestWouldCycle(t *testing.T) {
	m := orgchart.ParentMap{
		"cto": "ceo",
		"dev": "cto",
		"qa":  "cto",
	}

	assert.True(t, m.WouldCycle("cto", "cto"), "un cargo no puede ser su propio padre")
	assert.True(t, m.WouldCycle("cto", "dev"), "un cargo no puede colgar de su descendiente")
	assert.True(t, m.WouldCycle("ceo", "qa"))
	assert.False(t, m.WouldCycle("dev", "qa"), "mover entre hermanos es válido")
	assert.False(t, m.WouldCycle("dev", "ceo"))
	assert.False(t, m.WouldCycle("dev", ""), "volver a raíz siempre es válido")
}

func TestWouldCycle_CicloPreexistente(t *testing.T) {
	m := orgchart.ParentMap{"a": "b", "b": "a"}
	assert.False(t, m.WouldCycle("x", "a"), "no debe quedarse en bucle infinito")
}
