// Package xmlexport serializa el organigrama como XML canónico (C14N).
//
// El documento canónico es estable para el mismo árbol (orden de atributos y
// espacios normalizados), así que su SHA-256 sirve como ETag de la descarga.
package xmlexport

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/portal-api/internal/application/ports"
	"github.com/jhoicas/portal-api/internal/domain/orgchart"
	"github.com/jhoicas/portal-api/pkg/textnorm"
)

// Namespace del documento exportado.
const Namespace = "urn:company-portal:org-chart:1"

var _ ports.OrgChartExporter = (*OrgChartExporter)(nil)

// OrgChartExporter implementa ports.OrgChartExporter con etree + c14n.
type OrgChartExporter struct{}

// NewOrgChartExporter construye el exportador.
func NewOrgChartExporter() *OrgChartExporter { return &OrgChartExporter{} }

// Export devuelve el documento canónico y su digest SHA-256 en hex.
func (e *OrgChartExporter) Export(roots []*orgchart.Node) ([]byte, string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("orgChart")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("roots", strconv.Itoa(len(roots)))
	for _, n := range roots {
		writeNode(root, n)
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: serializar: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return canonical, hex.EncodeToString(sum[:]), nil
}

func writeNode(parent *etree.Element, n *orgchart.Node) {
	el := parent.CreateElement("position")
	el.CreateAttr("id", n.ID)
	el.CreateAttr("order", strconv.Itoa(n.Order))
	el.CreateAttr("aggregate", strconv.FormatBool(n.IsAggregate))
	if n.X != nil {
		el.CreateAttr("x", strconv.FormatFloat(*n.X, 'f', -1, 64))
	}
	if n.Y != nil {
		el.CreateAttr("y", strconv.FormatFloat(*n.Y, 'f', -1, 64))
	}
	el.CreateElement("title").SetText(textnorm.XMLSafe(n.Title))
	if n.Description != "" {
		el.CreateElement("description").SetText(textnorm.XMLSafe(n.Description))
	}

	if len(n.Employees) > 0 {
		emps := el.CreateElement("employees")
		for _, emp := range n.Employees {
			ee := emps.CreateElement("employee")
			ee.CreateAttr("userId", emp.UserID)
			ee.CreateAttr("employeeId", emp.EmployeeID)
			ee.CreateAttr("role", emp.Role)
			ee.CreateAttr("workload", emp.WorkloadPercentage.String())
			ee.CreateAttr("primary", strconv.FormatBool(emp.IsPrimary))
			ee.SetText(textnorm.XMLSafe(emp.FirstName + " " + emp.LastName))
		}
	}

	if len(n.Children) > 0 {
		children := el.CreateElement("children")
		for _, c := range n.Children {
			writeNode(children, c)
		}
	}
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
