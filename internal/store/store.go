// Package store persists Inkwell's documents. The Store interface is the
// boundary the rest of the application programs against; the Mongo
// implementation backs production and the in-memory implementation backs
// development mode and tests.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/inkwellcms/inkwell/internal/model"
)

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned by CreateAdmin when an account with the
	// same email already exists. The backing store enforces this atomically,
	// so concurrent registrations with one email yield exactly one account.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AdminStore is the credential store adapter consumed by the auth core.
type AdminStore interface {
	// FindAdminByEmail looks up an account by its unique email key.
	FindAdminByEmail(ctx context.Context, email string) (*model.AdminUser, error)

	// CreateAdmin inserts a new account, assigning ID and CreatedAt.
	CreateAdmin(ctx context.Context, admin *model.AdminUser) error

	// UpdateAdminLastLogin records a successful login timestamp.
	UpdateAdminLastLogin(ctx context.Context, email string, at time.Time) error

	// ListAdmins returns all admin accounts, newest first.
	ListAdmins(ctx context.Context) ([]model.AdminUser, error)
}

// ContentStore persists the three content collections.
type ContentStore interface {
	CreateBlogPost(ctx context.Context, post *model.BlogPost) error
	ListBlogPosts(ctx context.Context, status string) ([]model.BlogPost, error)
	GetBlogPost(ctx context.Context, id string) (*model.BlogPost, error)
	UpdateBlogPost(ctx context.Context, post *model.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error

	CreatePartnerLogo(ctx context.Context, logo *model.PartnerLogo) error
	ListPartnerLogos(ctx context.Context, active *bool) ([]model.PartnerLogo, error)
	GetPartnerLogo(ctx context.Context, id string) (*model.PartnerLogo, error)
	UpdatePartnerLogo(ctx context.Context, logo *model.PartnerLogo) error
	DeletePartnerLogo(ctx context.Context, id string) error

	CreateCaseStudy(ctx context.Context, cs *model.CaseStudy) error
	ListCaseStudies(ctx context.Context, status string) ([]model.CaseStudy, error)
	GetCaseStudy(ctx context.Context, id string) (*model.CaseStudy, error)
	UpdateCaseStudy(ctx context.Context, cs *model.CaseStudy) error
	DeleteCaseStudy(ctx context.Context, id string) error
}

// LeadStore persists lead-capture submissions.
type LeadStore interface {
	CreateLead(ctx context.Context, lead *model.Lead) error
	ListLeads(ctx context.Context) ([]model.Lead, error)
}

// Store is the full persistence surface.
type Store interface {
	AdminStore
	ContentStore
	LeadStore

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close(ctx context.Context) error
}

// Collections lists the document collections Inkwell manages, in the order
// reported by the /schema endpoint.
func Collections() []string {
	return []string{"adminuser", "blogpost", "partnerlogo", "casestudy", "lead"}
}
