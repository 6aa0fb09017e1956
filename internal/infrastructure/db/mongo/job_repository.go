package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobportal/jobboard-api/internal/core/domain"
	"github.com/jobportal/jobboard-api/internal/core/ports"
)

// JobRepository implements ports.JobRepository using MongoDB.
type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) ports.JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type jobDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Title           string               `bson:"title"`
	Description     string               `bson:"description"`
	Requirements    []string             `bson:"requirements"`
	Salary          float64              `bson:"salary"`
	Location        string               `bson:"location"`
	JobType         string               `bson:"job_type"`
	ExperienceLevel string               `bson:"experience_level"`
	Position        int                  `bson:"position"`
	Company         *primitive.ObjectID  `bson:"company,omitempty"`
	CompanyName     string               `bson:"company_name,omitempty"`
	CompanyLogo     string               `bson:"company_logo,omitempty"`
	ApplyLink       string               `bson:"apply_link,omitempty"`
	Source          string               `bson:"source"`
	CreatedBy       *primitive.ObjectID  `bson:"created_by,omitempty"`
	Applications    []primitive.ObjectID `bson:"applications"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

// jobDetailDoc is the shape produced by detailPipeline.
type jobDetailDoc struct {
	Job             jobDoc           `bson:",inline"`
	CompanyDocs     []companyDoc     `bson:"company_docs"`
	ApplicationDocs []applicationDoc `bson:"application_docs"`
}

func toJobDoc(j *domain.Job) (jobDoc, error) {
	company, ok := optionalObjectID(j.CompanyID)
	if !ok {
		return jobDoc{}, fmt.Errorf("%w: malformed company id", domain.ErrInvalidInput)
	}
	creator, ok := optionalObjectID(j.CreatedBy)
	if !ok {
		return jobDoc{}, fmt.Errorf("%w: malformed creator id", domain.ErrInvalidInput)
	}
	requirements := j.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	return jobDoc{
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    requirements,
		Salary:          j.Salary,
		Location:        j.Location,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		Position:        j.Position,
		Company:         company,
		CompanyName:     j.CompanyName,
		CompanyLogo:     j.CompanyLogo,
		ApplyLink:       j.ApplyLink,
		Source:          string(j.Source),
		CreatedBy:       creator,
		Applications:    objectIDs(j.Applications),
		CreatedAt:       j.CreatedAt.UTC(),
		UpdatedAt:       j.UpdatedAt.UTC(),
	}, nil
}

func (d jobDoc) toDomain() domain.Job {
	requirements := d.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	return domain.Job{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		Requirements:    requirements,
		Salary:          d.Salary,
		Location:        d.Location,
		JobType:         d.JobType,
		ExperienceLevel: d.ExperienceLevel,
		Position:        d.Position,
		CompanyID:       hexOrEmpty(d.Company),
		CompanyName:     d.CompanyName,
		CompanyLogo:     d.CompanyLogo,
		ApplyLink:       d.ApplyLink,
		Source:          domain.JobSource(d.Source),
		CreatedBy:       hexOrEmpty(d.CreatedBy),
		Applications:    hexIDs(d.Applications),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (d jobDetailDoc) toDomain() domain.JobDetail {
	detail := domain.JobDetail{
		Job:          d.Job.toDomain(),
		Applications: make([]domain.Application, 0, len(d.ApplicationDocs)),
	}
	if len(d.CompanyDocs) > 0 {
		c := d.CompanyDocs[0].toDomain()
		detail.Company = &c
	}
	for _, a := range d.ApplicationDocs {
		detail.Applications = append(detail.Applications, a.toDomain())
	}
	return detail
}

// detailPipeline matches jobs, sorts them newest first and joins the
// referenced company and applications.
func detailPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionCompanies,
			"localField":   "company",
			"foreignField": "_id",
			"as":           "company_docs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionApplications,
			"localField":   "applications",
			"foreignField": "_id",
			"as":           "application_docs",
		}}},
	}
}

func (r *JobRepository) aggregate(ctx context.Context, match bson.M) ([]domain.JobDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, detailPipeline(match))
	if err != nil {
		return nil, err
	}
	var docs []jobDetailDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.JobDetail, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toJobDoc(job)
	if err != nil {
		return err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	job.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

// InsertMany writes the batch in one ordered insert.
func (r *JobRepository) InsertMany(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(jobs))
	for i, j := range jobs {
		doc, err := toJobDoc(j)
		if err != nil {
			return err
		}
		doc.ID = primitive.NewObjectID()
		docs[i] = doc
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert jobs: %w", err)
	}
	for i, j := range jobs {
		j.ID = docs[i].(jobDoc).ID.Hex()
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	job := doc.toDomain()
	return &job, nil
}

func (r *JobRepository) FindDetail(ctx context.Context, id string) (*domain.JobDetail, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	jobs, err := r.aggregate(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, domain.ErrJobNotFound
	}
	return &jobs[0], nil
}

// Search quotes the keyword so that regex metacharacters match literally.
func (r *JobRepository) Search(ctx context.Context, keyword string) ([]domain.JobDetail, error) {
	return r.aggregate(ctx, searchFilter(keyword))
}

func searchFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": re},
		bson.M{"description": re},
	}}
}

func (r *JobRepository) ListByCreator(ctx context.Context, creatorID string) ([]domain.JobDetail, error) {
	oid, ok := objectID(creatorID)
	if !ok {
		return []domain.JobDetail{}, nil
	}
	return r.aggregate(ctx, bson.M{"created_by": oid})
}

func (r *JobRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.JobDetail, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.JobDetail{}, nil
	}
	found, err := r.aggregate(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	return orderByIDs(found, ids), nil
}

// orderByIDs returns jobs in the order of ids, dropping ids with no job.
func orderByIDs(jobs []domain.JobDetail, ids []string) []domain.JobDetail {
	byID := make(map[string]domain.JobDetail, len(jobs))
	for _, j := range jobs {
		byID[j.ID] = j
	}
	out := make([]domain.JobDetail, 0, len(ids))
	for _, id := range ids {
		if j, ok := byID[id]; ok {
			out = append(out, j)
		}
	}
	return out
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrJobNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) AddApplication(ctx context.Context, jobID, applicationID string) error {
	jid, ok := objectID(jobID)
	if !ok {
		return domain.ErrJobNotFound
	}
	aid, ok := objectID(applicationID)
	if !ok {
		return fmt.Errorf("%w: malformed application id", domain.ErrInvalidInput)
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": jid},
		bson.M{
			"$push": bson.M{"applications": aid},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return fmt.Errorf("link application: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
