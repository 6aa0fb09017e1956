package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) ports.UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type profileDoc struct {
	Bio                string               `bson:"bio"`
	Skills             []string             `bson:"skills"`
	Resume             string               `bson:"resume"`
	ResumeOriginalName string               `bson:"resume_original_name"`
	ProfilePhoto       string               `bson:"profile_photo"`
	SavedJobs          []primitive.ObjectID `bson:"saved_jobs"`
	Company            *primitive.ObjectID  `bson:"company,omitempty"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Fullname     string             `bson:"fullname"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	PhoneNumber  string             `bson:"phone_number"`
	Profile      profileDoc         `bson:"profile"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toUserDoc(u *domain.User) userDoc {
	company, _ := optionalObjectID(u.Profile.Company)
	skills := u.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return userDoc{
		Fullname:     u.Fullname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		PhoneNumber:  u.PhoneNumber,
		Profile: profileDoc{
			Bio:                u.Profile.Bio,
			Skills:             skills,
			Resume:             u.Profile.Resume,
			ResumeOriginalName: u.Profile.ResumeOriginalName,
			ProfilePhoto:       u.Profile.ProfilePhoto,
			SavedJobs:          objectIDs(u.Profile.SavedJobs),
			Company:            company,
		},
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func (d userDoc) toDomain() *domain.User {
	skills := d.Profile.Skills
	if skills == nil {
		skills = []string{}
	}
	return &domain.User{
		ID:           d.ID.Hex(),
		Fullname:     d.Fullname,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		PhoneNumber:  d.PhoneNumber,
		Profile: domain.Profile{
			Bio:                d.Profile.Bio,
			Skills:             skills,
			Resume:             d.Profile.Resume,
			ResumeOriginalName: d.Profile.ResumeOriginalName,
			ProfilePhoto:       d.Profile.ProfilePhoto,
			SavedJobs:          hexIDs(d.Profile.SavedJobs),
			Company:            hexOrEmpty(d.Profile.Company),
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// UpdateProfile rewrites the editable fields. The saved list is owned by
// AddSavedJob and RemoveSavedJob and is left untouched here.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	oid, ok := objectID(user.ID)
	if !ok {
		return domain.ErrUserNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toUserDoc(user)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"fullname":                     doc.Fullname,
		"email":                        doc.Email,
		"phone_number":                 doc.PhoneNumber,
		"profile.bio":                  doc.Profile.Bio,
		"profile.skills":               doc.Profile.Skills,
		"profile.resume":               doc.Profile.Resume,
		"profile.resume_original_name": doc.Profile.ResumeOriginalName,
		"profile.profile_photo":        doc.Profile.ProfilePhoto,
		"updated_at":                   doc.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddSavedJob pushes jobID only when the user exists and the list does not
// already hold it. The filter and the push are one document update, so
// concurrent saves of the same job cannot both succeed.
func (r *UserRepository) AddSavedJob(ctx context.Context, userID, jobID string) error {
	uid, ok := objectID(userID)
	if !ok {
		return domain.ErrUserNotFound
	}
	jid, ok := objectID(jobID)
	if !ok {
		return domain.ErrJobNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := saveJobUpdate(uid, jid, time.Now().UTC())
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.missOrConflict(ctx, uid, domain.ErrJobAlreadySaved)
}

func (r *UserRepository) RemoveSavedJob(ctx context.Context, userID, jobID string) error {
	uid, ok := objectID(userID)
	if !ok {
		return domain.ErrUserNotFound
	}
	jid, ok := objectID(jobID)
	if !ok {
		return domain.ErrJobNotSaved
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := unsaveJobUpdate(uid, jid, time.Now().UTC())
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return r.missOrConflict(ctx, uid, domain.ErrJobNotSaved)
}

// saveJobUpdate matches the user only while jid is absent from the list.
func saveJobUpdate(uid, jid primitive.ObjectID, now time.Time) (filter, update bson.M) {
	filter = bson.M{"_id": uid, "profile.saved_jobs": bson.M{"$ne": jid}}
	update = bson.M{
		"$push": bson.M{"profile.saved_jobs": jid},
		"$set":  bson.M{"updated_at": now},
	}
	return filter, update
}

// unsaveJobUpdate matches the user only while jid is in the list.
func unsaveJobUpdate(uid, jid primitive.ObjectID, now time.Time) (filter, update bson.M) {
	filter = bson.M{"_id": uid, "profile.saved_jobs": jid}
	update = bson.M{
		"$pull": bson.M{"profile.saved_jobs": jid},
		"$set":  bson.M{"updated_at": now},
	}
	return filter, update
}

// missOrConflict tells apart a missing user from a filter that excluded an
// existing one.
func (r *UserRepository) missOrConflict(ctx context.Context, uid primitive.ObjectID, conflict error) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": uid})
	if err != nil {
		return fmt.Errorf("count user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return conflict
}

func (r *UserRepository) PullSavedJobFromAll(ctx context.Context, jobID string) (int64, error) {
	jid, ok := objectID(jobID)
	if !ok {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateMany(ctx,
		bson.M{"profile.saved_jobs": jid},
		bson.M{"$pull": bson.M{"profile.saved_jobs": jid}},
	)
	if err != nil {
		return 0, fmt.Errorf("pull saved job: %w", err)
	}
	return res.ModifiedCount, nil
}
