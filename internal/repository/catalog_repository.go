package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/skooli/timetable-backend/internal/model"
)

// Catalog is the read-only lookup surface of the two external collaborators:
// the class-subject catalog and the enrollment service. This core never
// writes through it.
type Catalog interface {
	ResolveClassSubject(ctx context.Context, id uuid.UUID) (*model.ClassSubject, error)
	// ClassForStudent resolves a student's current class for an academic year.
	ClassForStudent(ctx context.Context, studentID, academicYearID uuid.UUID) (uuid.UUID, error)
}

// CatalogRepository implements Catalog against the catalog tables, which are
// owned elsewhere and only read here.
type CatalogRepository struct {
	db DBTX
}

var _ Catalog = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(db DBTX) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ResolveClassSubject resolves a class-subject id into its (subject, teacher,
// class) tuple with display names.
func (r *CatalogRepository) ResolveClassSubject(ctx context.Context, id uuid.UUID) (*model.ClassSubject, error) {
	cs := &model.ClassSubject{}
	err := r.db.QueryRow(ctx,
		`SELECT cs.id, cs.school_class_id, cs.subject_id, cs.teacher_id,
		        sub.name, t.name, sc.name
		 FROM class_subjects cs
		 JOIN subjects sub      ON sub.id = cs.subject_id
		 JOIN teachers t        ON t.id = cs.teacher_id
		 JOIN school_classes sc ON sc.id = cs.school_class_id
		 WHERE cs.id = $1`, id,
	).Scan(&cs.ID, &cs.SchoolClassID, &cs.SubjectID, &cs.TeacherID,
		&cs.SubjectName, &cs.TeacherName, &cs.ClassName)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// ClassForStudent resolves the class a student is enrolled in for a year.
func (r *CatalogRepository) ClassForStudent(ctx context.Context, studentID, academicYearID uuid.UUID) (uuid.UUID, error) {
	var classID uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT school_class_id FROM enrollments
		 WHERE student_id = $1 AND academic_year_id = $2`,
		studentID, academicYearID,
	).Scan(&classID)
	return classID, err
}
