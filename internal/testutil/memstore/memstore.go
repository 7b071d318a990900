// Package memstore implementa los puertos de repositorio en memoria para los tests de
// casos de uso y handlers. Replica las reglas que en PostgreSQL imponen las constraints
// (unicidad, cascadas) para que los tests ejerzan el mismo comportamiento.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/portal-api/internal/domain"
	"github.com/jhoicas/portal-api/internal/domain/entity"
	"github.com/jhoicas/portal-api/internal/domain/repository"
	"github.com/jhoicas/portal-api/pkg/textnorm"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	users       map[string]*entity.User
	positions   map[string]*entity.Position
	contracts   map[string]*entity.Contract
	assignments map[string]*entity.Assignment
	surveys     map[string]*entity.Survey
	responses   []*entity.Response
	comments    []*entity.Comment
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		users:       map[string]*entity.User{},
		positions:   map[string]*entity.Position{},
		contracts:   map[string]*entity.Contract{},
		assignments: map[string]*entity.Assignment{},
		surveys:     map[string]*entity.Survey{},
	}
}

func (s *Store) Users() *UserRepo             { return &UserRepo{s} }
func (s *Store) Positions() *PositionRepo     { return &PositionRepo{s} }
func (s *Store) Contracts() *ContractRepo     { return &ContractRepo{s} }
func (s *Store) Assignments() *AssignmentRepo { return &AssignmentRepo{s} }
func (s *Store) Surveys() *SurveyRepo         { return &SurveyRepo{s} }
func (s *Store) Responses() *ResponseRepo     { return &ResponseRepo{s} }
func (s *Store) Comments() *CommentRepo       { return &CommentRepo{s} }
func (s *Store) Analytics() *AnalyticsRepo    { return &AnalyticsRepo{s} }

// RunStaffing serializa las transacciones de personal; no hay rollback.
func (s *Store) RunStaffing(ctx context.Context, fn func(repository.ContractRepository, repository.AssignmentRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Contracts(), s.Assignments())
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ── Users ───────────────────────────────────────────────────────────────────

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.Username == u.Username || x.EmployeeID == u.EmployeeID {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.users[id]), nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByUsernameOrEmployeeID(_ context.Context, username, employeeID string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username || u.EmployeeID == employeeID {
			return clone(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) ListSubordinates(_ context.Context, managerID string) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			out = append(out, clone(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.users {
		if x.ID != u.ID && x.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = clone(u)
	return nil
}

func (r *UserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.PasswordHash = hash
		u.UpdatedAt = at
	}
	return nil
}

func (r *UserRepo) ExistsWithRole(_ context.Context, role string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	for _, u := range r.s.users {
		if u.ManagerID != nil && *u.ManagerID == id {
			u.ManagerID = nil
		}
	}
	for cid, c := range r.s.contracts {
		if c.UserID == id {
			r.s.deleteContractLocked(cid)
		}
	}
	return nil
}

// ── Positions ───────────────────────────────────────────────────────────────

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo cargos en memoria.
type PositionRepo struct{ s *Store }

func (r *PositionRepo) Create(_ context.Context, p *entity.Position) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.positions {
		if textnorm.Key(x.Title) == textnorm.Key(p.Title) {
			return domain.ErrDuplicate
		}
	}
	r.s.positions[p.ID] = clone(p)
	return nil
}

func (r *PositionRepo) GetByID(_ context.Context, id string) (*entity.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.positions[id]), nil
}

func (r *PositionRepo) GetByTitle(_ context.Context, title string) (*entity.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := textnorm.Key(title)
	for _, p := range r.s.positions {
		if textnorm.Key(p.Title) == key {
			return clone(p), nil
		}
	}
	return nil, nil
}

func (r *PositionRepo) List(_ context.Context) ([]*entity.Position, error) {
	return r.list(false), nil
}

func (r *PositionRepo) ListActive(_ context.Context) ([]*entity.Position, error) {
	return r.list(true), nil
}

func (r *PositionRepo) list(activeOnly bool) []*entity.Position {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Position, 0, len(r.s.positions))
	for _, p := range r.s.positions {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func (r *PositionRepo) Update(_ context.Context, p *entity.Position) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.positions {
		if x.ID != p.ID && textnorm.Key(x.Title) == textnorm.Key(p.Title) {
			return domain.ErrDuplicate
		}
	}
	r.s.positions[p.ID] = clone(p)
	return nil
}

func (r *PositionRepo) UpdateParent(_ context.Context, id string, parentID *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.positions[id]; ok {
		p.ParentPositionID = clone(parentID)
	}
	return nil
}

func (r *PositionRepo) UpdateCoordinates(_ context.Context, id string, x, y *float64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.positions[id]
	if !ok {
		return false, nil
	}
	p.X, p.Y = clone(x), clone(y)
	return true, nil
}

func (r *PositionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.positions, id)
	for _, p := range r.s.positions {
		if p.ParentPositionID != nil && *p.ParentPositionID == id {
			p.ParentPositionID = nil
		}
	}
	for aid, a := range r.s.assignments {
		if a.PositionID == id {
			delete(r.s.assignments, aid)
		}
	}
	return nil
}

// ── Contracts ───────────────────────────────────────────────────────────────

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo contratos en memoria.
type ContractRepo struct{ s *Store }

func (r *ContractRepo) Create(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contracts[c.ID] = clone(c)
	return nil
}

func (r *ContractRepo) GetByID(_ context.Context, id string) (*entity.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.contracts[id]), nil
}

func (r *ContractRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Contract, error) {
	return r.GetByID(ctx, id)
}

func (r *ContractRepo) List(_ context.Context) ([]*entity.Contract, error) {
	return r.filter(func(*entity.Contract) bool { return true }), nil
}

func (r *ContractRepo) ListByUser(_ context.Context, userID string) ([]*entity.Contract, error) {
	return r.filter(func(c *entity.Contract) bool { return c.UserID == userID }), nil
}

func (r *ContractRepo) filter(keep func(*entity.Contract) bool) []*entity.Contract {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Contract
	for _, c := range r.s.contracts {
		if keep(c) {
			out = append(out, clone(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *ContractRepo) Update(_ context.Context, c *entity.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contracts[c.ID] = clone(c)
	return nil
}

func (r *ContractRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteContractLocked(id)
	return nil
}

func (s *Store) deleteContractLocked(id string) {
	delete(s.contracts, id)
	for aid, a := range s.assignments {
		if a.ContractID == id {
			delete(s.assignments, aid)
		}
	}
}

// ── Assignments ─────────────────────────────────────────────────────────────

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo asignaciones en memoria.
type AssignmentRepo struct{ s *Store }

func (r *AssignmentRepo) Create(_ context.Context, a *entity.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assignments[a.ID] = clone(a)
	return nil
}

func (r *AssignmentRepo) GetByID(_ context.Context, id string) (*entity.Assignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return clone(r.s.assignments[id]), nil
}

func (r *AssignmentRepo) List(_ context.Context) ([]*entity.Assignment, error) {
	return r.filter(func(*entity.Assignment) bool { return true }), nil
}

func (r *AssignmentRepo) ListByContract(_ context.Context, contractID string) ([]*entity.Assignment, error) {
	return r.filter(func(a *entity.Assignment) bool { return a.ContractID == contractID }), nil
}

func (r *AssignmentRepo) filter(keep func(*entity.Assignment) bool) []*entity.Assignment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Assignment
	for _, a := range r.s.assignments {
		if keep(a) {
			out = append(out, clone(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *AssignmentRepo) Update(_ context.Context, a *entity.Assignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.assignments[a.ID] = clone(a)
	return nil
}

func (r *AssignmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.assignments, id)
	return nil
}

func (r *AssignmentRepo) ListOccupancies(_ context.Context) ([]entity.Occupancy, error) {
	return r.occupancies(""), nil
}

func (r *AssignmentRepo) ListOccupanciesByPosition(_ context.Context, positionID string) ([]entity.Occupancy, error) {
	return r.occupancies(positionID), nil
}

func (r *AssignmentRepo) occupancies(positionID string) []entity.Occupancy {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Occupancy
	for _, a := range r.s.assignments {
		if positionID != "" && a.PositionID != positionID {
			continue
		}
		c, ok := r.s.contracts[a.ContractID]
		if !ok {
			continue
		}
		o := entity.Occupancy{
			AssignmentID:       a.ID,
			PositionID:         a.PositionID,
			ContractID:         c.ID,
			ContractStatus:     c.Status,
			EndDate:            a.EndDate,
			WorkloadPercentage: a.WorkloadPercentage,
			IsPrimary:          a.IsPrimary,
		}
		if u, ok := r.s.users[c.UserID]; ok {
			o.UserID = u.ID
			o.EmployeeID = u.EmployeeID
			o.FirstName = u.FirstName
			o.LastName = u.LastName
			o.Role = u.Role
			o.ProfileImageURL = u.ProfileImageURL
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssignmentID < out[j].AssignmentID })
	return out
}

// ── Surveys / Responses ─────────────────────────────────────────────────────

var (
	_ repository.SurveyRepository   = (*SurveyRepo)(nil)
	_ repository.ResponseRepository = (*ResponseRepo)(nil)
)

// SurveyRepo encuestas en memoria.
type SurveyRepo struct{ s *Store }

func cloneSurvey(sv *entity.Survey) *entity.Survey {
	if sv == nil {
		return nil
	}
	c := *sv
	c.Questions = append([]entity.Question(nil), sv.Questions...)
	sort.SliceStable(c.Questions, func(i, j int) bool { return c.Questions[i].Order < c.Questions[j].Order })
	return &c
}

func (r *SurveyRepo) Create(_ context.Context, sv *entity.Survey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.surveys[sv.ID] = cloneSurvey(sv)
	return nil
}

func (r *SurveyRepo) GetByID(_ context.Context, id string) (*entity.Survey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneSurvey(r.s.surveys[id]), nil
}

func (r *SurveyRepo) List(_ context.Context) ([]*entity.Survey, error) {
	return r.filter(false), nil
}

func (r *SurveyRepo) ListActive(_ context.Context) ([]*entity.Survey, error) {
	return r.filter(true), nil
}

func (r *SurveyRepo) filter(activeOnly bool) []*entity.Survey {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Survey
	for _, sv := range r.s.surveys {
		if activeOnly && !sv.IsActive {
			continue
		}
		out = append(out, cloneSurvey(sv))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *SurveyRepo) Delete(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sv, ok := r.s.surveys[id]
	if !ok {
		return false, nil
	}
	questions := map[string]bool{}
	for _, q := range sv.Questions {
		questions[q.ID] = true
	}
	kept := r.s.responses[:0]
	for _, resp := range r.s.responses {
		if !questions[resp.QuestionID] {
			kept = append(kept, resp)
		}
	}
	r.s.responses = kept
	delete(r.s.surveys, id)
	return true, nil
}

// ResponseRepo respuestas en memoria.
type ResponseRepo struct{ s *Store }

func (r *ResponseRepo) CreateBatch(_ context.Context, responses []*entity.Response) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, resp := range responses {
		r.s.responses = append(r.s.responses, clone(resp))
	}
	return nil
}

func (r *ResponseRepo) ListBySurvey(_ context.Context, surveyID string) ([]*entity.Response, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sv, ok := r.s.surveys[surveyID]
	if !ok {
		return nil, nil
	}
	questions := map[string]bool{}
	for _, q := range sv.Questions {
		questions[q.ID] = true
	}
	var out []*entity.Response
	for _, resp := range r.s.responses {
		if questions[resp.QuestionID] {
			out = append(out, clone(resp))
		}
	}
	return out, nil
}

// ── Comments ────────────────────────────────────────────────────────────────

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo buzón en memoria.
type CommentRepo struct{ s *Store }

func (r *CommentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.comments = append(r.s.comments, clone(c))
	return nil
}

func (r *CommentRepo) ListRecent(_ context.Context, limit int) ([]*entity.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Comment, 0, len(r.s.comments))
	for i := len(r.s.comments) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, clone(r.s.comments[i]))
	}
	return out, nil
}

func (r *CommentRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.comments), nil
}

// ── Analytics ───────────────────────────────────────────────────────────────

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo conteos sobre los datos en memoria.
type AnalyticsRepo struct{ s *Store }

func (r *AnalyticsRepo) CountUsers(_ context.Context) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	active := 0
	for _, u := range r.s.users {
		if u.IsActive {
			active++
		}
	}
	return len(r.s.users), active, nil
}

func (r *AnalyticsRepo) CountPositions(_ context.Context) (int, int, error) {
	occupied := map[string]bool{}
	now := time.Now()
	for _, o := range r.s.Assignments().occupancies("") {
		if o.Occupying(now) {
			occupied[o.PositionID] = true
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total, vacant := 0, 0
	for _, p := range r.s.positions {
		if !p.IsActive {
			continue
		}
		total++
		if !occupied[p.ID] {
			vacant++
		}
	}
	return total, vacant, nil
}

func (r *AnalyticsRepo) CountContractsByStatus(_ context.Context) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, c := range r.s.contracts {
		out[c.Status]++
	}
	return out, nil
}

func (r *AnalyticsRepo) CountActiveSurveys(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, sv := range r.s.surveys {
		if sv.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *AnalyticsRepo) CountSubmissions(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[string]bool{}
	for _, resp := range r.s.responses {
		seen[resp.SubmissionID] = true
	}
	return len(seen), nil
}

func (r *AnalyticsRepo) CountComments(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.comments), nil
}
