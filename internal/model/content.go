package model

import "time"

// Content publication states. Drafts are only listed when requested
// explicitly via the status filter.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// BlogPost is a blog article stored in the "blogpost" collection. Content is
// opaque rich text (HTML or serialized editor state).
type BlogPost struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	Title           string     `json:"title" bson:"title"`
	Slug            string     `json:"slug" bson:"slug"`
	Excerpt         string     `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Content         string     `json:"content" bson:"content"`
	FeaturedImage   string     `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty" bson:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty" bson:"meta_description,omitempty"`
	Status          string     `json:"status" bson:"status"`
	Categories      []string   `json:"categories" bson:"categories"`
	Tags            []string   `json:"tags" bson:"tags"`
	PublishedAt     *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

// PartnerLogo is a partner logo entry stored in the "partnerlogo" collection.
// Listings are sorted by Order ascending.
type PartnerLogo struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	ImageURL  string    `json:"image_url" bson:"image_url"`
	Alt       string    `json:"alt" bson:"alt"`
	Link      string    `json:"link,omitempty" bson:"link,omitempty"`
	Order     int       `json:"order" bson:"order"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CaseStudy is a client case study stored in the "casestudy" collection.
type CaseStudy struct {
	ID            string     `json:"id" bson:"_id,omitempty"`
	Title         string     `json:"title" bson:"title"`
	Slug          string     `json:"slug" bson:"slug"`
	Client        string     `json:"client" bson:"client"`
	ProjectDate   *time.Time `json:"project_date,omitempty" bson:"project_date,omitempty"`
	Description   string     `json:"description,omitempty" bson:"description,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	Content       string     `json:"content,omitempty" bson:"content,omitempty"`
	Tags          []string   `json:"tags" bson:"tags"`
	Gallery       []string   `json:"gallery" bson:"gallery"`
	Status        string     `json:"status" bson:"status"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}
