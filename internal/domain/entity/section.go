package entity

// Section represents an enrollment cohort a student joins at sign-up.
// Sections are read-only from the portal's point of view; the registrar
// maintains them out of band.
type Section struct {
	SectionCode string      // Unique code identifying the cohort, e.g. "STEM-11A".
	Program     string      // Program or strand the cohort belongs to.
	YearLevel   string      // Year or grade level of the cohort.
	StudentType StudentType // Which student population the cohort serves.
}

// Subject is a course offered to a cohort. Subjects flagged as defaults are
// auto-assigned to new students of the matching cohort after sign-up.
type Subject struct {
	SubjectCode string      // Unique course code, e.g. "GE-MATH1".
	Name        string      // Display name of the course.
	Program     string      // Program or strand the course belongs to.
	YearLevel   string      // Year or grade level the course is offered at.
	StudentType StudentType // Which student population takes the course.
	IsDefault   bool        // Whether new students are enrolled automatically.
}
