package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/portal-api/internal/application/dto"
	"github.com/jhoicas/portal-api/internal/application/ports"
	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/orgchart"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/pkg/logger"
	"github.com/jhoicas/portal-api/pkg/textnorm"
)

// PositionUseCase cargos y organigrama.
type PositionUseCase struct {
	positions   repository.PositionRepository
	assignments repository.AssignmentRepository
	exporter    ports.OrgChartExporter
	log         *logger.Logger
	now         func() time.Time
}

// NewPositionUseCase construye el caso de uso.
func NewPositionUseCase(
	positions repository.PositionRepository,
	assignments repository.AssignmentRepository,
	exporter ports.OrgChartExporter,
	log *logger.Logger,
) *PositionUseCase {
	return &PositionUseCase{
		positions:   positions,
		assignments: assignments,
		exporter:    exporter,
		log:         log,
		now:         time.Now,
	}
}

// Create da de alta un cargo. El título es único después de normalizar.
func (uc *PositionUseCase) Create(ctx context.Context, in dto.CreatePositionRequest) (*dto.PositionResponse, error) {
	title := textnorm.Title(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: el título del cargo es requerido", domain.ErrInvalidInput)
	}
	if err := uc.ensureTitleFree(ctx, title, ""); err != nil {
		return nil, err
	}
	parentID, err := OptionalID("parentPositionId", in.ParentPositionID)
	if err != nil {
		return nil, err
	}
	if parentID != nil {
		if _, err := uc.mustGet(ctx, *parentID, "cargo padre"); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	p := &entity.Position{
		ID:               uuid.New().String(),
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		ParentPositionID: parentID,
		Order:            in.Order,
		IsAggregate:      in.IsAggregate,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.positions.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info().Str("position_id", p.ID).Str("title", p.Title).Msg("cargo creado")
	return toPositionResponse(p, nil), nil
}

// List devuelve todos los cargos (order, title) con los ids de sus hijos.
func (uc *PositionUseCase) List(ctx context.Context) ([]dto.PositionResponse, error) {
	all, err := uc.positions.List(ctx)
	if err != nil {
		return nil, err
	}
	children := childIndex(all)
	out := make([]dto.PositionResponse, 0, len(all))
	for _, p := range all {
		out = append(out, *toPositionResponse(p, children[p.ID]))
	}
	return out, nil
}

// ListFlat devuelve los cargos activos sin anidar.
func (uc *PositionUseCase) ListFlat(ctx context.Context) ([]dto.PositionFlat, error) {
	active, err := uc.positions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PositionFlat, 0, len(active))
	for _, p := range active {
		out = append(out, *ToPositionFlat(p))
	}
	return out, nil
}

// Get devuelve un cargo con sus hijos.
func (uc *PositionUseCase) Get(ctx context.Context, id string) (*dto.PositionResponse, error) {
	p, err := uc.mustGet(ctx, id, "cargo")
	if err != nil {
		return nil, err
	}
	all, err := uc.positions.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPositionResponse(p, childIndex(all)[p.ID]), nil
}

// Update aplica una actualización parcial. Un cambio de padre pasa por la regla de ciclos.
func (uc *PositionUseCase) Update(ctx context.Context, id string, in dto.UpdatePositionRequest) (*dto.PositionResponse, error) {
	p, err := uc.mustGet(ctx, id, "cargo")
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		title := textnorm.Title(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: el título del cargo es requerido", domain.ErrInvalidInput)
		}
		if textnorm.Key(title) != textnorm.Key(p.Title) {
			if err := uc.ensureTitleFree(ctx, title, p.ID); err != nil {
				return nil, err
			}
		}
		p.Title = title
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
	if in.IsAggregate != nil {
		p.IsAggregate = *in.IsAggregate
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.ParentPositionID != nil {
		parentID, err := OptionalID("parentPositionId", in.ParentPositionID)
		if err != nil {
			return nil, err
		}
		if err := uc.checkParent(ctx, p.ID, parentID); err != nil {
			return nil, err
		}
		p.ParentPositionID = parentID
	}
	p.UpdatedAt = uc.now()
	if err := uc.positions.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.Get(ctx, p.ID)
}

// Delete elimina el cargo; sus hijos quedan como raíces y sus asignaciones se eliminan.
func (uc *PositionUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.mustGet(ctx, id, "cargo")
	if err != nil {
		return err
	}
	if err := uc.positions.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("position_id", id).Str("title", p.Title).Msg("cargo eliminado")
	return nil
}

// Reparent cuelga el cargo de parentID (nil = raíz). Usado por el drag-and-drop del organigrama.
func (uc *PositionUseCase) Reparent(ctx context.Context, id string, parentID *string) (*dto.PositionResponse, error) {
	if err := RequireID("positionId", id); err != nil {
		return nil, err
	}
	parent, err := OptionalID("parentId", parentID)
	if err != nil {
		return nil, err
	}
	p, err := uc.mustGet(ctx, id, "cargo")
	if err != nil {
		return nil, err
	}
	if err := uc.checkParent(ctx, id, parent); err != nil {
		return nil, err
	}
	if err := uc.positions.UpdateParent(ctx, id, parent); err != nil {
		return nil, err
	}
	ev := uc.log.Info().Str("position_id", id).Str("title", p.Title)
	if parent != nil {
		ev = ev.Str("parent_id", *parent)
	}
	ev.Msg("cargo reubicado en el organigrama")
	return uc.Get(ctx, id)
}

// UpdateCoordinates guarda la posición del nodo en el lienzo.
func (uc *PositionUseCase) UpdateCoordinates(ctx context.Context, id string, in dto.CoordinatesRequest) error {
	if err := RequireID("id", id); err != nil {
		return err
	}
	found, err := uc.positions.UpdateCoordinates(ctx, id, in.X, in.Y)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: cargo no encontrado", domain.ErrNotFound)
	}
	return nil
}

// OrgChart arma el organigrama de cargos activos con sus ocupantes vigentes.
func (uc *PositionUseCase) OrgChart(ctx context.Context) ([]dto.OrgChartNode, error) {
	roots, err := uc.buildTree(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrgChartNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, toOrgChartNode(r))
	}
	return out, nil
}

// ExportOrgChart devuelve el organigrama como documento XML canónico y su digest.
func (uc *PositionUseCase) ExportOrgChart(ctx context.Context) ([]byte, string, error) {
	roots, err := uc.buildTree(ctx)
	if err != nil {
		return nil, "", err
	}
	return uc.exporter.Export(roots)
}

func (uc *PositionUseCase) buildTree(ctx context.Context) ([]*orgchart.Node, error) {
	active, err := uc.positions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	occupancies, err := uc.assignments.ListOccupancies(ctx)
	if err != nil {
		return nil, err
	}
	return orgchart.Build(active, occupancies, uc.now()), nil
}

// checkParent valida que parentID exista y que no sea id ni un descendiente de id.
func (uc *PositionUseCase) checkParent(ctx context.Context, id string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	if *parentID == id {
		return fmt.Errorf("%w: un cargo no puede ser su propio padre", domain.ErrPositionCycle)
	}
	if _, err := uc.mustGet(ctx, *parentID, "cargo padre"); err != nil {
		return err
	}
	all, err := uc.positions.List(ctx)
	if err != nil {
		return err
	}
	if parentMap(all).WouldCycle(id, *parentID) {
		return fmt.Errorf("%w: el nuevo padre es descendiente del cargo", domain.ErrPositionCycle)
	}
	return nil
}

func (uc *PositionUseCase) ensureTitleFree(ctx context.Context, title, selfID string) error {
	existing, err := uc.positions.GetByTitle(ctx, title)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return fmt.Errorf("%w: ya existe un cargo con el título %q", domain.ErrDuplicate, title)
	}
	return nil
}

func (uc *PositionUseCase) mustGet(ctx context.Context, id, what string) (*entity.Position, error) {
	if err := RequireID("id", id); err != nil {
		return nil, err
	}
	p, err := uc.positions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s no encontrado", domain.ErrNotFound, what)
	}
	return p, nil
}

func parentMap(all []*entity.Position) orgchart.ParentMap {
	m := make(orgchart.ParentMap, len(all))
	for _, p := range all {
		if p.ParentPositionID != nil {
			m[p.ID] = *p.ParentPositionID
		}
	}
	return m
}

func childIndex(all []*entity.Position) map[string][]string {
	idx := make(map[string][]string)
	for _, p := range all {
		if p.ParentPositionID != nil {
			idx[*p.ParentPositionID] = append(idx[*p.ParentPositionID], p.ID)
		}
	}
	return idx
}

func toPositionResponse(p *entity.Position, childIDs []string) *dto.PositionResponse {
	return &dto.PositionResponse{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		ParentPositionID: p.ParentPositionID,
		Order:            p.Order,
		IsAggregate:      p.IsAggregate,
		X:                p.X,
		Y:                p.Y,
		IsActive:         p.IsActive,
		ChildIDs:         childIDs,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toOrgChartNode(n *orgchart.Node) dto.OrgChartNode {
	out := dto.OrgChartNode{
		ID:               n.ID,
		Title:            n.Title,
		Description:      n.Description,
		ParentPositionID: n.ParentPositionID,
		Order:            n.Order,
		IsAggregate:      n.IsAggregate,
		X:                n.X,
		Y:                n.Y,
		Employees:        make([]dto.OrgChartEmployee, 0, len(n.Employees)),
		Children:         make([]dto.OrgChartNode, 0, len(n.Children)),
	}
	for _, e := range n.Employees {
		out.Employees = append(out.Employees, dto.OrgChartEmployee{
			ID:                 e.UserID,
			AssignmentID:       e.AssignmentID,
			EmployeeID:         e.EmployeeID,
			FirstName:          e.FirstName,
			LastName:           e.LastName,
			Role:               e.Role,
			ProfileImageURL:    e.ProfileImageURL,
			WorkloadPercentage: e.WorkloadPercentage,
			IsPrimary:          e.IsPrimary,
		})
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, toOrgChartNode(c))
	}
	return out
}
