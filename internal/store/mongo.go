package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/inkwellcms/inkwell/internal/model"
)

const (
	colAdmins    = "adminuser"
	colBlogPosts = "blogpost"
	colLogos     = "partnerlogo"
	colCases     = "casestudy"
	colLeads     = "lead"
)

// Mongo is the production Store backed by a MongoDB database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ Store = (*Mongo)(nil)

// NewMongo connects to the given MongoDB URI, verifies the connection, and
// ensures the indexes the application relies on. The unique index on
// adminuser.email is what makes concurrent duplicate registrations safe.
func NewMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	m := &Mongo{client: client, db: client.Database(dbName)}
	if err := m.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return m, nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(colAdmins).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create admin email index: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects from the database.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// newID returns a time-ordered unique document ID.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

func (m *Mongo) FindAdminByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := m.db.Collection(colAdmins).FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find admin by email: %w", err)
	}
	return &admin, nil
}

func (m *Mongo) CreateAdmin(ctx context.Context, admin *model.AdminUser) error {
	if admin.ID == "" {
		admin.ID = newID()
	}
	admin.CreatedAt = time.Now().UTC()

	if _, err := m.db.Collection(colAdmins).InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (m *Mongo) UpdateAdminLastLogin(ctx context.Context, email string, at time.Time) error {
	res, err := m.db.Collection(colAdmins).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"last_login": at}})
	if err != nil {
		return fmt.Errorf("update admin last login: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) ListAdmins(ctx context.Context) ([]model.AdminUser, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.db.Collection(colAdmins).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	var admins []model.AdminUser
	if err := cur.All(ctx, &admins); err != nil {
		return nil, fmt.Errorf("decode admins: %w", err)
	}
	return admins, nil
}

// ---------------------------------------------------------------------------
// Blog posts
// ---------------------------------------------------------------------------

func (m *Mongo) CreateBlogPost(ctx context.Context, post *model.BlogPost) error {
	if post.ID == "" {
		post.ID = newID()
	}
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	if _, err := m.db.Collection(colBlogPosts).InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert blog post: %w", err)
	}
	return nil
}

func (m *Mongo) ListBlogPosts(ctx context.Context, status string) ([]model.BlogPost, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.db.Collection(colBlogPosts).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []model.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode blog posts: %w", err)
	}
	return posts, nil
}

func (m *Mongo) GetBlogPost(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := m.db.Collection(colBlogPosts).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	return &post, nil
}

func (m *Mongo) UpdateBlogPost(ctx context.Context, post *model.BlogPost) error {
	post.UpdatedAt = time.Now().UTC()

	res, err := m.db.Collection(colBlogPosts).ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return fmt.Errorf("update blog post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteBlogPost(ctx context.Context, id string) error {
	return m.deleteByID(ctx, colBlogPosts, id)
}

// ---------------------------------------------------------------------------
// Partner logos
// ---------------------------------------------------------------------------

func (m *Mongo) CreatePartnerLogo(ctx context.Context, logo *model.PartnerLogo) error {
	if logo.ID == "" {
		logo.ID = newID()
	}
	now := time.Now().UTC()
	logo.CreatedAt = now
	logo.UpdatedAt = now

	if _, err := m.db.Collection(colLogos).InsertOne(ctx, logo); err != nil {
		return fmt.Errorf("insert partner logo: %w", err)
	}
	return nil
}

func (m *Mongo) ListPartnerLogos(ctx context.Context, active *bool) ([]model.PartnerLogo, error) {
	filter := bson.M{}
	if active != nil {
		filter["is_active"] = *active
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := m.db.Collection(colLogos).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list partner logos: %w", err)
	}
	defer cursor.Close(ctx)

	logos := []model.PartnerLogo{}
	if err := cursor.All(ctx, &logos); err != nil {
		return nil, fmt.Errorf("decode partner logos: %w", err)
	}
	return logos, nil
}

func (m *Mongo) GetPartnerLogo(ctx context.Context, id string) (*model.PartnerLogo, error) {
	var logo model.PartnerLogo
	err := m.db.Collection(colLogos).FindOne(ctx, bson.M{"_id": id}).Decode(&logo)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get partner logo: %w", err)
	}
	return &logo, nil
}

func (m *Mongo) UpdatePartnerLogo(ctx context.Context, logo *model.PartnerLogo) error {
	logo.UpdatedAt = time.Now().UTC()

	res, err := m.db.Collection(colLogos).ReplaceOne(ctx, bson.M{"_id": logo.ID}, logo)
	if err != nil {
		return fmt.Errorf("update partner logo: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeletePartnerLogo(ctx context.Context, id string) error {
	return m.deleteByID(ctx, colLogos, id)
}

// ---------------------------------------------------------------------------
// Case studies
// ---------------------------------------------------------------------------

func (m *Mongo) CreateCaseStudy(ctx context.Context, cs *model.CaseStudy) error {
	if cs.ID == "" {
		cs.ID = newID()
	}
	now := time.Now().UTC()
	cs.CreatedAt = now
	cs.UpdatedAt = now

	if _, err := m.db.Collection(colCases).InsertOne(ctx, cs); err != nil {
		return fmt.Errorf("insert case study: %w", err)
	}
	return nil
}

func (m *Mongo) ListCaseStudies(ctx context.Context, status string) ([]model.CaseStudy, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.db.Collection(colCases).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	defer cursor.Close(ctx)

	cases := []model.CaseStudy{}
	if err := cursor.All(ctx, &cases); err != nil {
		return nil, fmt.Errorf("decode case studies: %w", err)
	}
	return cases, nil
}

func (m *Mongo) GetCaseStudy(ctx context.Context, id string) (*model.CaseStudy, error) {
	var cs model.CaseStudy
	err := m.db.Collection(colCases).FindOne(ctx, bson.M{"_id": id}).Decode(&cs)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get case study: %w", err)
	}
	return &cs, nil
}

func (m *Mongo) UpdateCaseStudy(ctx context.Context, cs *model.CaseStudy) error {
	cs.UpdatedAt = time.Now().UTC()

	res, err := m.db.Collection(colCases).ReplaceOne(ctx, bson.M{"_id": cs.ID}, cs)
	if err != nil {
		return fmt.Errorf("update case study: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) DeleteCaseStudy(ctx context.Context, id string) error {
	return m.deleteByID(ctx, colCases, id)
}

// ---------------------------------------------------------------------------
// Leads
// ---------------------------------------------------------------------------

func (m *Mongo) CreateLead(ctx context.Context, lead *model.Lead) error {
	if lead.ID == "" {
		lead.ID = newID()
	}
	lead.CreatedAt = time.Now().UTC()

	if _, err := m.db.Collection(colLeads).InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (m *Mongo) ListLeads(ctx context.Context) ([]model.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.db.Collection(colLeads).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []model.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

func (m *Mongo) deleteByID(ctx context.Context, collection, id string) error {
	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
