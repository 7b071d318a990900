package ports

import "github.com/jhoicas/portal-api/internal/domain/orgchart"

// OrgChartExporter serializa el organigrama para descarga.
// Digest es un hash estable del documento canónico; el handler lo usa como ETag.
type OrgChartExporter interface {
	Export(roots []*orgchart.Node) (doc []byte, digest string, err error)
}
