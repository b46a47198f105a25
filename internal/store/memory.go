package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwellcms/inkwell/internal/model"
)

// Memory is an in-memory Store used by development mode (--memory) and the
// test suite. All semantics match the Mongo implementation, including the
// atomic email uniqueness guarantee (enforced under the write lock).
type Memory struct {
	mu     sync.RWMutex
	admins map[string]model.AdminUser // keyed by email, as stored
	posts  map[string]model.BlogPost
	logos  map[string]model.PartnerLogo
	cases  map[string]model.CaseStudy
	leads  map[string]model.Lead
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		admins: make(map[string]model.AdminUser),
		posts:  make(map[string]model.BlogPost),
		logos:  make(map[string]model.PartnerLogo),
		cases:  make(map[string]model.CaseStudy),
		leads:  make(map[string]model.Lead),
	}
}

func (m *Memory) Ping(ctx context.Context) error { return nil }

func (m *Memory) Close(ctx context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

func (m *Memory) FindAdminByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admin, ok := m.admins[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &admin, nil
}

func (m *Memory) CreateAdmin(ctx context.Context, admin *model.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.admins[admin.Email]; exists {
		return ErrDuplicateEmail
	}
	if admin.ID == "" {
		admin.ID = newID()
	}
	admin.CreatedAt = time.Now().UTC()
	m.admins[admin.Email] = *admin
	return nil
}

func (m *Memory) UpdateAdminLastLogin(ctx context.Context, email string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[email]
	if !ok {
		return ErrNotFound
	}
	admin.LastLogin = &at
	m.admins[email] = admin
	return nil
}

func (m *Memory) ListAdmins(ctx context.Context) ([]model.AdminUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	admins := make([]model.AdminUser, 0, len(m.admins))
	for _, admin := range m.admins {
		admins = append(admins, admin)
	}
	sort.Slice(admins, func(i, j int) bool {
		return admins[i].CreatedAt.After(admins[j].CreatedAt)
	})
	return admins, nil
}

// ---------------------------------------------------------------------------
// Blog posts
// ---------------------------------------------------------------------------

func (m *Memory) CreateBlogPost(ctx context.Context, post *model.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if post.ID == "" {
		post.ID = newID()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	m.posts[post.ID] = *post
	return nil
}

func (m *Memory) ListBlogPosts(ctx context.Context, status string) ([]model.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	posts := []model.BlogPost{}
	for _, p := range m.posts {
		if status == "" || p.Status == status {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts, nil
}

func (m *Memory) GetBlogPost(ctx context.Context, id string) (*model.BlogPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &post, nil
}

func (m *Memory) UpdateBlogPost(ctx context.Context, post *model.BlogPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now().UTC()
	m.posts[post.ID] = *post
	return nil
}

func (m *Memory) DeleteBlogPost(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// ---------------------------------------------------------------------------
// Partner logos
// ---------------------------------------------------------------------------

func (m *Memory) CreatePartnerLogo(ctx context.Context, logo *model.PartnerLogo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logo.ID == "" {
		logo.ID = newID()
	}
	now := time.Now().UTC()
	logo.CreatedAt = now
	logo.UpdatedAt = now
	m.logos[logo.ID] = *logo
	return nil
}

func (m *Memory) ListPartnerLogos(ctx context.Context, active *bool) ([]model.PartnerLogo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logos := []model.PartnerLogo{}
	for _, l := range m.logos {
		if active == nil || l.IsActive == *active {
			logos = append(logos, l)
		}
	}
	sort.Slice(logos, func(i, j int) bool { return logos[i].Order < logos[j].Order })
	return logos, nil
}

func (m *Memory) GetPartnerLogo(ctx context.Context, id string) (*model.PartnerLogo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	logo, ok := m.logos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &logo, nil
}

func (m *Memory) UpdatePartnerLogo(ctx context.Context, logo *model.PartnerLogo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.logos[logo.ID]
	if !ok {
		return ErrNotFound
	}
	logo.CreatedAt = existing.CreatedAt
	logo.UpdatedAt = time.Now().UTC()
	m.logos[logo.ID] = *logo
	return nil
}

func (m *Memory) DeletePartnerLogo(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.logos[id]; !ok {
		return ErrNotFound
	}
	delete(m.logos, id)
	return nil
}

// ---------------------------------------------------------------------------
// Case studies
// ---------------------------------------------------------------------------

func (m *Memory) CreateCaseStudy(ctx context.Context, cs *model.CaseStudy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cs.ID == "" {
		cs.ID = newID()
	}
	now := time.Now().UTC()
	cs.CreatedAt = now
	cs.UpdatedAt = now
	m.cases[cs.ID] = *cs
	return nil
}

func (m *Memory) ListCaseStudies(ctx context.Context, status string) ([]model.CaseStudy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cases := []model.CaseStudy{}
	for _, c := range m.cases {
		if status == "" || c.Status == status {
			cases = append(cases, c)
		}
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].CreatedAt.After(cases[j].CreatedAt) })
	return cases, nil
}

func (m *Memory) GetCaseStudy(ctx context.Context, id string) (*model.CaseStudy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cs, ok := m.cases[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &cs, nil
}

func (m *Memory) UpdateCaseStudy(ctx context.Context, cs *model.CaseStudy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.cases[cs.ID]
	if !ok {
		return ErrNotFound
	}
	cs.CreatedAt = existing.CreatedAt
	cs.UpdatedAt = time.Now().UTC()
	m.cases[cs.ID] = *cs
	return nil
}

func (m *Memory) DeleteCaseStudy(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cases[id]; !ok {
		return ErrNotFound
	}
	delete(m.cases, id)
	return nil
}

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

func (m *Memory) CreateLead(ctx context.Context, lead *model.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lead.ID == "" {
		lead.ID = newID()
	}
	lead.CreatedAt = time.Now().UTC()
	m.leads[lead.ID] = *lead
	return nil
}

func (m *Memory) ListLeads(ctx context.Context) ([]model.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	leads := []model.Lead{}
	for _, l := range m.leads {
		leads = append(leads, l)
	}
	sort.Slice(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })
	return leads, nil
}
