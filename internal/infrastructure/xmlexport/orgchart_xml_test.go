package xmlexport_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-api/internal/domain/orgchart"
	"github.com/jhoicas/portal-api/internal/infrastructure/xmlexport"
)

func sampleTree() []*orgchart.Node {
	x := 120.5
	return []*orgchart.Node{{
		ID: "ceo", Title: "Gerencia General", Order: 0, X: &x,
		Employees: []orgchart.Employee{{
			UserID: "u1", EmployeeID: "E1", FirstName: "Ana", LastName: "Ruiz", Role: "ADMIN",
			WorkloadPercentage: decimal.NewFromInt(100), IsPrimary: true,
		}},
		Children: []*orgchart.Node{
			{ID: "rrhh", Title: "Talento Humano & Cultura", Order: 1, Employees: []orgchart.Employee{}},
		},
	}}
}

func TestExport_DocumentoYDigestEstables(t *testing.T) {
	exp := xmlexport.NewOrgChartExporter()

	doc1, digest1, err := exp.Export(sampleTree())
	require.NoError(t, err)
	doc2, digest2, err := exp.Export(sampleTree())
	require.NoError(t, err)

	assert.Equal(t, doc1, doc2)
	assert.Equal(t, digest1, digest2)
	assert.Len(t, digest1, 64)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc1))
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "orgChart", root.Tag)
	assert.Equal(t, "1", root.SelectAttrValue("roots", ""))

	ceo := root.SelectElement("position")
	require.NotNil(t, ceo)
	assert.Equal(t, "120.5", ceo.SelectAttrValue("x", ""))
	assert.Equal(t, "Ana Ruiz", ceo.FindElement("employees/employee").Text())
	assert.Equal(t, "Talento Humano & Cultura", ceo.FindElement("children/position/title").Text())
}

func TestExport_CambioEnArbolCambiaDigest(t *testing.T) {
	exp := xmlexport.NewOrgChartExporter()
	_, before, err := exp.Export(sampleTree())
	require.NoError(t, err)

	tree := sampleTree()
	tree[0].Title = "Presidencia"
	_, after, err := exp.Export(tree)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestExport_ArbolVacio(t *testing.T) {
	doc, digest, err := xmlexport.NewOrgChartExporter().Export(nil)
	require.NoError(t, err)
	assert.Contains(t, string(doc), `roots="0"`)
	assert.NotEmpty(t, digest)
}

func TestExport_TituloConCaracteresDeControl(t *testing.T) {
	tree := []*orgchart.Node{{
		ID: "ops", Title: "Opera\x01ciones", Description: "turno\x0bnoche",
		Employees: []orgchart.Employee{{
			UserID: "u1", EmployeeID: "E1", FirstName: "Leo\x02", LastName: "Paz",
			WorkloadPercentage: decimal.NewFromInt(50),
		}},
	}}

	doc, _, err := xmlexport.NewOrgChartExporter().Export(tree)
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(doc))
	pos := parsed.Root().SelectElement("position")
	require.NotNil(t, pos)
	assert.Equal(t, "Operaciones", pos.SelectElement("title").Text())
	assert.Equal(t, "turnonoche", pos.SelectElement("description").Text())
	assert.Equal(t, "Leo Paz", pos.FindElement("employees/employee").Text())
}
