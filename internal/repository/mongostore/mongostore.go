// Package mongostore implements the repository interfaces on MongoDB, one
// collection per entity.  Documents use the generated UUID string as _id.
package mongostore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/property-backoffice/internal/model"
	"github.com/iliyamo/property-backoffice/internal/repository"
)

// Collection names.
const (
	PropertiesColl  = "properties"
	TenantsColl     = "tenants"
	ContractorsColl = "contractors"
	MaintenanceColl = "maintenance_requests"
	UsersColl       = "users"
	TokensColl      = "refresh_tokens"
)

// NewStore wires one repository per collection of db.  Close disconnects
// the client that owns db.
func NewStore(db *mongo.Database) *repository.Store {
	return &repository.Store{
		Properties:  &PropertyRepo{c: coll[model.Property]{db.Collection(PropertiesColl)}},
		Tenants:     &TenantRepo{c: coll[model.Tenant]{db.Collection(TenantsColl)}},
		Contractors: &ContractorRepo{c: coll[model.Contractor]{db.Collection(ContractorsColl)}},
		Maintenance: &MaintenanceRepo{c: coll[model.MaintenanceRequest]{db.Collection(MaintenanceColl)}},
		Users:       &UserRepo{c: coll[model.User]{db.Collection(UsersColl)}},
		Tokens:      &TokenRepo{c: db.Collection(TokensColl)},
		Close:       func(ctx context.Context) error { return db.Client().Disconnect(ctx) },
	}
}

// EnsureIndexes creates the unique email indexes and the lookup indexes
// used by the listing filters.  It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		TenantsColl: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "propertyId", Value: 1}}},
		},
		ContractorsColl: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "skills", Value: 1}}},
		},
		UsersColl: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		MaintenanceColl: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "contractorId", Value: 1}}},
		},
		TokensColl: {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}
	for name, models := range specs {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

// coll wraps a collection with the typed CRUD helpers shared by the repos.
type coll[T any] struct{ c *mongo.Collection }

func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (c coll[T]) insert(ctx context.Context, v *T) error {
	_, err := c.c.InsertOne(ctx, v)
	return mapWriteErr(err)
}

func (c coll[T]) get(ctx context.Context, filter bson.M) (*T, error) {
	var v T
	if err := c.c.FindOne(ctx, filter).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (c coll[T]) list(ctx context.Context, filter bson.M, pg repository.Page) ([]*T, int64, error) {
	total, err := c.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	pg = pg.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(pg.Offset())).
		SetLimit(int64(pg.Limit))
	cur, err := c.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*T, 0, pg.Limit)
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (c coll[T]) count(ctx context.Context, filter bson.M) (int64, error) {
	return c.c.CountDocuments(ctx, filter)
}

// set applies a $set to one document by id.
func (c coll[T]) set(ctx context.Context, id string, fields bson.M) error {
	res, err := c.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return mapWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c coll[T]) remove(ctx context.Context, id string) error {
	res, err := c.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func now() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }

// PropertyRepo implements repository.PropertyRepository.
type PropertyRepo struct{ c coll[model.Property] }

func (r *PropertyRepo) Create(ctx context.Context, p *model.Property) error {
	p.ID = uuid.NewString()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	return r.c.insert(ctx, p)
}

func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*model.Property, error) {
	return r.c.get(ctx, bson.M{"_id": id})
}

// PropertyFilter converts f into a query document.
func PropertyFilter(f repository.PropertyFilter) bson.M {
	q := bson.M{}
	if f.Type != "" {
		q["type"] = f.Type
	}
	if f.Rented != nil {
		q["isRented"] = *f.Rented
	}
	return q
}

func (r *PropertyRepo) List(ctx context.Context, f repository.PropertyFilter, pg repository.Page) ([]*model.Property, int64, error) {
	return r.c.list(ctx, PropertyFilter(f), pg)
}

func (r *PropertyRepo) Count(ctx context.Context, f repository.PropertyFilter) (int64, error) {
	return r.c.count(ctx, PropertyFilter(f))
}

func (r *PropertyRepo) Update(ctx context.Context, p *model.Property) error {
	p.UpdatedAt = now()
	return r.c.set(ctx, p.ID, bson.M{
		"name": p.Name, "description": p.Description, "location": p.Location, "size": p.Size,
		"imageUrl": p.ImageURL, "type": p.Type, "rentAmount": p.RentAmount, "isRented": p.IsRented,
		"updatedAt": p.UpdatedAt,
	})
}

func (r *PropertyRepo) SetRented(ctx context.Context, id string, rented bool) error {
	return r.c.set(ctx, id, bson.M{"isRented": rented, "updatedAt": now()})
}

func (r *PropertyRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

// TenantRepo implements repository.TenantRepository.
type TenantRepo struct{ c coll[model.Tenant] }

func (r *TenantRepo) Create(ctx context.Context, t *model.Tenant) error {
	t.ID = uuid.NewString()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	return r.c.insert(ctx, t)
}

func (r *TenantRepo) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	return r.c.get(ctx, bson.M{"_id": id})
}

// TenantFilter converts f into a query document.
func TenantFilter(f repository.TenantFilter) bson.M {
	q := bson.M{}
	if f.PropertyID != "" {
		q["propertyId"] = f.PropertyID
	}
	if f.LeaseStatus != "" {
		q["leaseStatus"] = f.LeaseStatus
	}
	if f.Declined != nil {
		q["declined"] = *f.Declined
	}
	return q
}

func (r *TenantRepo) List(ctx context.Context, f repository.TenantFilter, pg repository.Page) ([]*model.Tenant, int64, error) {
	return r.c.list(ctx, TenantFilter(f), pg)
}

func (r *TenantRepo) Count(ctx context.Context, f repository.TenantFilter) (int64, error) {
	return r.c.count(ctx, TenantFilter(f))
}

func (r *TenantRepo) Update(ctx context.Context, t *model.Tenant) error {
	t.UpdatedAt = now()
	return r.c.set(ctx, t.ID, bson.M{
		"name": t.Name, "phoneNumber": t.Phone, "email": t.Email, "address": t.Address,
		"propertyId": t.PropertyID, "lease": t.Lease, "leaseStatus": t.LeaseStatus,
		"paymentStatus": t.PaymentStatus, "declined": t.Declined, "updatedAt": t.UpdatedAt,
	})
}

func (r *TenantRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

// ContractorRepo implements repository.ContractorRepository.
type ContractorRepo struct{ c coll[model.Contractor] }

func (r *ContractorRepo) Create(ctx context.Context, c *model.Contractor) error {
	c.ID = uuid.NewString()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return r.c.insert(ctx, c)
}

func (r *ContractorRepo) GetByID(ctx context.Context, id string) (*model.Contractor, error) {
	return r.c.get(ctx, bson.M{"_id": id})
}

// ContractorFilter converts f into a query document.  A skill matches
// any element of the skills array.
func ContractorFilter(f repository.ContractorFilter) bson.M {
	q := bson.M{}
	if f.Available != nil {
		q["available"] = *f.Available
	}
	if f.Skill != "" {
		q["skills"] = f.Skill
	}
	return q
}

func (r *ContractorRepo) List(ctx context.Context, f repository.ContractorFilter, pg repository.Page) ([]*model.Contractor, int64, error) {
	return r.c.list(ctx, ContractorFilter(f), pg)
}

func (r *ContractorRepo) Count(ctx context.Context, f repository.ContractorFilter) (int64, error) {
	return r.c.count(ctx, ContractorFilter(f))
}

func (r *ContractorRepo) Update(ctx context.Context, c *model.Contractor) error {
	c.UpdatedAt = now()
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return r.c.set(ctx, c.ID, bson.M{
		"name": c.Name, "email": c.Email, "phone": c.Phone, "skills": c.Skills,
		"available": c.Available, "updatedAt": c.UpdatedAt,
	})
}

func (r *ContractorRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

// MaintenanceRepo implements repository.MaintenanceRepository.
type MaintenanceRepo struct{ c coll[model.MaintenanceRequest] }

func (r *MaintenanceRepo) Create(ctx context.Context, m *model.MaintenanceRequest) error {
	m.ID = uuid.NewString()
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt
	if m.RequestDate.IsZero() {
		m.RequestDate = m.CreatedAt
	}
	return r.c.insert(ctx, m)
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id string) (*model.MaintenanceRequest, error) {
	return r.c.get(ctx, bson.M{"_id": id})
}

// MaintenanceFilter converts f into a query document.
func MaintenanceFilter(f repository.MaintenanceFilter) bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Priority != "" {
		q["priority"] = f.Priority
	}
	if f.TenantID != "" {
		q["tenantId"] = f.TenantID
	}
	if f.PropertyID != "" {
		q["propertyId"] = f.PropertyID
	}
	if f.ContractorID != "" {
		q["contractorId"] = f.ContractorID
	}
	return q
}

func (r *MaintenanceRepo) List(ctx context.Context, f repository.MaintenanceFilter, pg repository.Page) ([]*model.MaintenanceRequest, int64, error) {
	return r.c.list(ctx, MaintenanceFilter(f), pg)
}

func (r *MaintenanceRepo) Count(ctx context.Context, f repository.MaintenanceFilter) (int64, error) {
	return r.c.count(ctx, MaintenanceFilter(f))
}

func (r *MaintenanceRepo) Update(ctx context.Context, m *model.MaintenanceRequest) error {
	m.UpdatedAt = now()
	fields := bson.M{
		"tenantId": m.TenantID, "propertyId": m.PropertyID, "description": m.Description,
		"requestDate": m.RequestDate, "status": m.Status, "priority": m.Priority, "updatedAt": m.UpdatedAt,
	}
	if m.ContractorID != "" {
		fields["contractorId"] = m.ContractorID
	}
	if m.AssignmentDate != nil {
		fields["assignmentDate"] = *m.AssignmentDate
	}
	return r.c.set(ctx, m.ID, fields)
}

func (r *MaintenanceRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

// UserRepo implements repository.UserRepository.
type UserRepo struct{ c coll[model.User] }

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = normEmail(u.Email)
	u.ID = uuid.NewString()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	if u.AllowedURLs == nil {
		u.AllowedURLs = []string{}
	}
	return r.c.insert(ctx, u)
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.c.get(ctx, bson.M{"_id": id})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.c.get(ctx, bson.M{"email": normEmail(email)})
}

// UserFilter converts f into a query document.
func UserFilter(f repository.UserFilter) bson.M {
	q := bson.M{}
	if f.Role != "" {
		q["role"] = f.Role
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	return q
}

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter, pg repository.Page) ([]*model.User, int64, error) {
	return r.c.list(ctx, UserFilter(f), pg)
}

func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.Email = normEmail(u.Email)
	u.UpdatedAt = now()
	if u.AllowedURLs == nil {
		u.AllowedURLs = []string{}
	}
	return r.c.set(ctx, u.ID, bson.M{
		"name": u.Name, "email": u.Email, "passwordHash": u.PasswordHash, "role": u.Role,
		"status": u.Status, "allowedUrls": u.AllowedURLs, "updatedAt": u.UpdatedAt,
	})
}

func (r *UserRepo) SetToken(ctx context.Context, id string, token *string) error {
	if token == nil {
		res, err := r.c.c.UpdateOne(ctx, bson.M{"_id": id},
			bson.M{"$unset": bson.M{"token": ""}, "$set": bson.M{"updatedAt": now()}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return repository.ErrNotFound
		}
		return nil
	}
	return r.c.set(ctx, id, bson.M{"token": *token, "updatedAt": now()})
}

func (r *UserRepo) Delete(ctx context.Context, id string) error { return r.c.remove(ctx, id) }

// TokenRepo implements repository.TokenRepository over refresh_tokens,
// keyed by the token hash.
type TokenRepo struct{ c *mongo.Collection }

func (r *TokenRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error {
	_, err := r.c.InsertOne(ctx, model.RefreshToken{
		UserID: userID, TokenHash: tokenHash, ExpiresAt: exp.UTC(), CreatedAt: now(),
	})
	return mapWriteErr(err)
}

func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	var rt model.RefreshToken
	err := r.c.FindOne(ctx, bson.M{
		"_id":       tokenHash,
		"revokedAt": bson.M{"$exists": false},
		"expiresAt": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&rt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return rt.UserID, nil
}

func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.c.UpdateOne(ctx,
		bson.M{"_id": tokenHash, "revokedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revokedAt": now()}})
	return err
}

func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.c.UpdateMany(ctx,
		bson.M{"userId": userID, "revokedAt": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"revokedAt": now()}})
	return err
}
