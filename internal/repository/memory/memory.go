// Package memory provides in-process implementations of the repository
// interfaces. Every method is safe for concurrent use; tests use it in place
// of MongoDB and Postgres.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robertopeiro12/buscocredito-sub002/internal/model"
	"github.com/robertopeiro12/buscocredito-sub002/internal/repository"
)

// ── Notificaciones ───────────────────────────────────────────────────────────

type NotificacionRepo struct {
	mu    sync.Mutex
	items map[string]model.Notificacion
	// Err, when set, is returned by every method.
	Err error
}

func NewNotificacionRepo() *NotificacionRepo {
	return &NotificacionRepo{items: make(map[string]model.Notificacion)}
}

func (r *NotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[n.ID]; ok {
		return repository.ErrDuplicate
	}
	r.items[n.ID] = *n
	return nil
}

func (r *NotificacionRepo) CreateMany(_ context.Context, batch []*model.Notificacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	seen := make(map[string]bool, len(batch))
	for _, n := range batch {
		if _, ok := r.items[n.ID]; ok || seen[n.ID] {
			return repository.ErrDuplicate
		}
		seen[n.ID] = true
	}
	for _, n := range batch {
		r.items[n.ID] = *n
	}
	return nil
}

func (r *NotificacionRepo) ListByRecipient(_ context.Context, recipientID string) ([]model.Notificacion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	list := make([]model.Notificacion, 0)
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *NotificacionRepo) CountUnread(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, it := range r.items {
		if it.RecipientID == recipientID && !it.Read {
			n++
		}
	}
	return n, nil
}

func (r *NotificacionRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	n, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	n.Read = true
	r.items[id] = n
	return nil
}

func (r *NotificacionRepo) DeleteAllByRecipient(_ context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var deleted int64
	for id, n := range r.items {
		if n.RecipientID == recipientID {
			delete(r.items, id)
			deleted++
		}
	}
	return deleted, nil
}

// Get returns a copy of the stored notification.
func (r *NotificacionRepo) Get(id string) (model.Notificacion, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	return n, ok
}

func (r *NotificacionRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// ── Signup tokens ────────────────────────────────────────────────────────────

type SignupTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.SignupToken // keyed by token value
	Err    error
}

func NewSignupTokenRepo() *SignupTokenRepo {
	return &SignupTokenRepo{tokens: make(map[string]*model.SignupToken)}
}

func (r *SignupTokenRepo) Create(_ context.Context, t *model.SignupToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.tokens[t.Token]; ok {
		return repository.ErrDuplicate
	}
	cp := *t
	r.tokens[t.Token] = &cp
	return nil
}

func (r *SignupTokenRepo) FindUnused(_ context.Context, token string) (*model.SignupToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.tokens[token]
	if !ok || t.Used {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *SignupTokenRepo) ConsumeIfUnused(_ context.Context, token, usedBy string, company *string, at time.Time) (*model.SignupToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	t, ok := r.tokens[token]
	if !ok || t.Used {
		return nil, repository.ErrNotFound
	}
	by := usedBy
	t.Used = true
	t.UsedBy = &by
	t.UsedByCompany = company
	t.UsedAt = &at
	cp := *t
	return &cp, nil
}

// Get returns a copy of the token document regardless of its state.
func (r *SignupTokenRepo) Get(token string) (model.SignupToken, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return model.SignupToken{}, false
	}
	return *t, true
}

// ── Cuentas ──────────────────────────────────────────────────────────────────

type CuentaRepo struct {
	mu      sync.Mutex
	cuentas map[string]model.Cuenta
	// UpsertErr makes Upsert fail, to exercise compensation paths.
	UpsertErr error
}

func NewCuentaRepo() *CuentaRepo {
	return &CuentaRepo{cuentas: make(map[string]model.Cuenta)}
}

func (r *CuentaRepo) Upsert(_ context.Context, c *model.Cuenta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	r.cuentas[c.ID] = *c
	return nil
}

func (r *CuentaRepo) FindByID(_ context.Context, id string) (*model.Cuenta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cuentas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CuentaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.cuentas[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.cuentas, id)
	return nil
}

func (r *CuentaRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cuentas)
}

// ── Credenciales ─────────────────────────────────────────────────────────────

type CredencialRepo struct {
	mu    sync.Mutex
	creds map[string]model.Credencial // keyed by ID
	// CreateErr and DeleteErr inject identity provider failures.
	CreateErr error
	DeleteErr error
}

func NewCredencialRepo() *CredencialRepo {
	return &CredencialRepo{creds: make(map[string]model.Credencial)}
}

func (r *CredencialRepo) Create(_ context.Context, c *model.Credencial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, existing := range r.creds {
		if strings.EqualFold(existing.Email, c.Email) {
			return repository.ErrDuplicate
		}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.creds[c.ID] = *c
	return nil
}

func (r *CredencialRepo) FindByEmail(_ context.Context, email string) (*model.Credencial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.creds {
		if strings.EqualFold(c.Email, email) {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CredencialRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	if _, ok := r.creds[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.creds, id)
	return nil
}

// Len reports how many credentials exist.
func (r *CredencialRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.creds)
}

// ── Solicitudes / propuestas ─────────────────────────────────────────────────

type SolicitudRepo struct {
	mu          sync.Mutex
	solicitudes map[string]model.Solicitud
	propuestas  map[string]model.Propuesta
}

func NewSolicitudRepo() *SolicitudRepo {
	return &SolicitudRepo{
		solicitudes: make(map[string]model.Solicitud),
		propuestas:  make(map[string]model.Propuesta),
	}
}

// Seed stores fixtures; the production repository never writes.
func (r *SolicitudRepo) Seed(s model.Solicitud, props ...model.Propuesta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.solicitudes[s.ID] = s
	for _, p := range props {
		r.propuestas[p.ID] = p
	}
}

func (r *SolicitudRepo) FindSolicitud(_ context.Context, id string) (*model.Solicitud, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.solicitudes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *SolicitudRepo) FindPropuesta(_ context.Context, id string) (*model.Propuesta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.propuestas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *SolicitudRepo) ListPropuestas(_ context.Context, solicitudID string) ([]model.Propuesta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]model.Propuesta, 0)
	for _, p := range r.propuestas {
		if p.SolicitudID == solicitudID {
			list = append(list, p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

var (
	_ repository.NotificacionRepository = (*NotificacionRepo)(nil)
	_ repository.SignupTokenRepository  = (*SignupTokenRepo)(nil)
	_ repository.CuentaRepository       = (*CuentaRepo)(nil)
	_ repository.CredencialRepository   = (*CredencialRepo)(nil)
	_ repository.SolicitudRepository    = (*SolicitudRepo)(nil)
)
