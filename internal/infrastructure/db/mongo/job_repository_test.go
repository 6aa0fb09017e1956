package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

func TestSearchFilter_EmptyMatchesAll(t *testing.T) {
	if f := searchFilter(""); len(f) != 0 {
		t.Fatalf("expected empty filter, got %v", f)
	}
}

func TestSearchFilter_QuotesKeyword(t *testing.T) {
	f := searchFilter("c++ (senior)")
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with two clauses, got %v", f)
	}
	re := or[0].(bson.M)["title"].(primitive.Regex)
	if re.Pattern != `c\+\+ \(senior\)` {
		t.Errorf("pattern = %q", re.Pattern)
	}
	if re.Options != "i" {
		t.Errorf("options = %q, want i", re.Options)
	}
}

func TestOrderByIDs(t *testing.T) {
	jobs := []domain.JobDetail{
		{Job: domain.Job{ID: "a"}},
		{Job: domain.Job{ID: "b"}},
		{Job: domain.Job{ID: "c"}},
	}
	got := orderByIDs(jobs, []string{"c", "missing", "a"})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestJobDoc_RoundTrip(t *testing.T) {
	company := primitive.NewObjectID()
	creator := primitive.NewObjectID()
	app := primitive.NewObjectID()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	in := &domain.Job{
		Title:        "Engineer",
		Requirements: []string{"go"},
		Salary:       90000,
		Position:     2,
		CompanyID:    company.Hex(),
		CreatedBy:    creator.Hex(),
		Source:       domain.SourceManual,
		Applications: []string{app.Hex()},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	doc, err := toJobDoc(in)
	if err != nil {
		t.Fatalf("toJobDoc: %v", err)
	}
	doc.ID = primitive.NewObjectID()

	out := doc.toDomain()
	if out.CompanyID != in.CompanyID || out.CreatedBy != in.CreatedBy {
		t.Fatalf("references lost: %+v", out)
	}
	if len(out.Applications) != 1 || out.Applications[0] != app.Hex() {
		t.Fatalf("applications lost: %v", out.Applications)
	}
	if out.ID != doc.ID.Hex() {
		t.Fatalf("id = %q", out.ID)
	}
}

func TestToJobDoc_ExternalJobHasNoReferences(t *testing.T) {
	doc, err := toJobDoc(&domain.Job{Title: "Data Engineer", Source: domain.SourceExternal})
	if err != nil {
		t.Fatalf("toJobDoc: %v", err)
	}
	if doc.Company != nil || doc.CreatedBy != nil {
		t.Fatalf("expected nil references, got %v %v", doc.Company, doc.CreatedBy)
	}
	if doc.Requirements == nil {
		t.Fatal("expected empty requirements slice")
	}
}

func TestToJobDoc_MalformedCompany(t *testing.T) {
	_, err := toJobDoc(&domain.Job{CompanyID: "not-hex"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestJobDetailDoc_ExpandsReferences(t *testing.T) {
	company := companyDoc{ID: primitive.NewObjectID(), Name: "Acme", UserID: primitive.NewObjectID()}
	app := applicationDoc{ID: primitive.NewObjectID(), Status: "pending"}
	d := jobDetailDoc{
		Job:             jobDoc{ID: primitive.NewObjectID(), Title: "Engineer"},
		CompanyDocs:     []companyDoc{company},
		ApplicationDocs: []applicationDoc{app},
	}

	out := d.toDomain()
	if out.Company == nil || out.Company.Name != "Acme" {
		t.Fatalf("company not expanded: %+v", out.Company)
	}
	if len(out.Applications) != 1 || out.Applications[0].ID != app.ID.Hex() {
		t.Fatalf("applications not expanded: %+v", out.Applications)
	}
}

func TestObjectID_Malformed(t *testing.T) {
	if _, ok := objectID("xyz"); ok {
		t.Fatal("expected malformed id to be rejected")
	}
	if got := objectIDs([]string{"xyz", primitive.NilObjectID.Hex()}); len(got) != 1 {
		t.Fatalf("expected 1 valid id, got %d", len(got))
	}
}
