// Package orgchart arma el organigrama a partir de cargos y ocupaciones.
//
// El armado es en dos pasadas: primero un nodo por cargo (con sus ocupantes vigentes),
// después cada nodo se cuelga de su padre si el padre está en el conjunto; si no, es raíz.
// Un padre inactivo o inexistente convierte al hijo en raíz en lugar de perderlo.
package orgchart

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/portal-api/internal/domain/entity"
)

// Employee ocupante de un cargo en el organigrama.
type Employee struct {
	UserID             string
	FirstName          string
	LastName           string
	Role               string
	EmployeeID         string
	ProfileImageURL    *string
	WorkloadPercentage decimal.Decimal
	IsPrimary          bool
	AssignmentID       string
}

// Node cargo del organigrama con sus ocupantes y subordinados.
type Node struct {
	ID               string
	Title            string
	Description      string
	Order            int
	IsAggregate      bool
	X                *float64
	Y                *float64
	ParentPositionID *string
	Employees        []Employee
	Children         []*Node
}

// Build arma el bosque de cargos. positions debe venir en el orden de presentación;
// los hijos conservan ese orden relativo. Las ocupaciones se filtran con Occupying(now).
func Build(positions []*entity.Position, occupancies []entity.Occupancy, now time.Time) []*Node {
	byPosition := make(map[string][]Employee)
	for i := range occupancies {
		o := &occupancies[i]
		if !o.Occupying(now) {
			continue
		}
		byPosition[o.PositionID] = append(byPosition[o.PositionID], Employee{
			UserID:             o.UserID,
			FirstName:          o.FirstName,
			LastName:           o.LastName,
			Role:               o.Role,
			EmployeeID:         o.EmployeeID,
			ProfileImageURL:    o.ProfileImageURL,
			WorkloadPercentage: o.WorkloadPercentage,
			IsPrimary:          o.IsPrimary,
			AssignmentID:       o.AssignmentID,
		})
	}

	// Primera pasada: nodos
	nodes := make(map[string]*Node, len(positions))
	ordered := make([]*Node, 0, len(positions))
	for _, p := range positions {
		if _, dup := nodes[p.ID]; dup {
			continue
		}
		employees := byPosition[p.ID]
		if employees == nil {
			employees = []Employee{}
		}
		n := &Node{
			ID:               p.ID,
			Title:            p.Title,
			Description:      p.Description,
			Order:            p.Order,
			IsAggregate:      p.IsAggregate,
			X:                p.X,
			Y:                p.Y,
			ParentPositionID: p.ParentPositionID,
			Employees:        employees,
			Children:         []*Node{},
		}
		nodes[p.ID] = n
		ordered = append(ordered, n)
	}

	// Segunda pasada: enlazar con el padre
	roots := make([]*Node, 0)
	for _, n := range ordered {
		if n.ParentPositionID != nil {
			if parent, ok := nodes[*n.ParentPositionID]; ok && parent != n {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return breakCycles(roots, ordered)
}

// breakCycles promueve a raíz los nodos que quedaron colgando de un ciclo (datos previos a la
// validación de ciclos): sin esto quedarían fuera del resultado.
func breakCycles(roots []*Node, all []*Node) []*Node {
	reached := make(map[*Node]bool, len(all))
	var walk func(n *Node)
	walk = func(n *Node) {
		if reached[n] {
			return
		}
		reached[n] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	for _, n := range all {
		if reached[n] {
			continue
		}
		// n está en un ciclo: cortarlo quitándolo de la lista de hijos de su padre
		if parent := findParent(all, n); parent != nil {
			parent.Children = removeChild(parent.Children, n)
		}
		roots = append(roots, n)
		walk(n)
	}
	return roots
}

func findParent(all []*Node, child *Node) *Node {
	for _, n := range all {
		for _, c := range n.Children {
			if c == child {
				return n
			}
		}
	}
	return nil
}

func removeChild(children []*Node, child *Node) []*Node {
	out := children[:0]
	for _, c := range children {
		if c != child {
			out = append(out, c)
		}
	}
	return out
}
