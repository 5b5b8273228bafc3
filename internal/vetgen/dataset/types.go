package dataset

import "time"

// DateLayout is the calendar-date layout used in every sheet.
const DateLayout = "2006-01-02"

// Date is a calendar day without a clock component.
type Date struct {
	t time.Time
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// AddDays moves the date by n calendar days (negative n goes back).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of calendar days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) IsZero() bool           { return d.t.IsZero() }
func (d Date) Time() time.Time        { return d.t }

func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// Status is the lab result flag relative to the exam's normal range.
type Status string

const (
	StatusNormal Status = "N"
	StatusLow    Status = "L"
	StatusHigh   Status = "H"
)

// ExamKind separates numeric lab exams from imaging studies.
type ExamKind string

const (
	ExamGeneral ExamKind = "일반"
	ExamImaging ExamKind = "영상"
)

// Patient is one registered animal.
type Patient struct {
	ID           string
	Name         string
	Owner        string
	Species      string
	Breed        string
	Gender       string
	BirthDate    Date
	RegisteredOn Date
	Neutered     string
	WeightKg     float64
	Microchip    string
}

// Visit is a single clinic visit for a patient.
type Visit struct {
	PatientID string
	Date      Date
	Type      string
	Complaint string
	Diagnosis string
	Treatment string
	Status    string
	Vet       string
	Note      string
}

// ExamDefinition is a row of the exam master catalog.
// Imaging exams carry no normal range (Min and Max are nil).
type ExamDefinition struct {
	Code       string
	Name       string
	Category   string
	Kind       ExamKind
	Unit       string
	Min        *float64
	Max        *float64
	BodyRegion string
}

// HasRange reports whether the exam defines a numeric normal range.
func (e ExamDefinition) HasRange() bool {
	return e.Min != nil && e.Max != nil
}

// Classify flags value against the inclusive normal range [Min, Max].
// Exams without a range always classify as normal.
func (e ExamDefinition) Classify(value float64) Status {
	if !e.HasRange() {
		return StatusNormal
	}
	switch {
	case value < *e.Min:
		return StatusLow
	case value > *e.Max:
		return StatusHigh
	default:
		return StatusNormal
	}
}

// TestResult is one lab value for a patient. All results of a patient share a date.
type TestResult struct {
	PatientID string
	ExamCode  string
	Date      Date
	Value     float64
	ValueText string
	Status    Status
	Note      string
}

// QuestionTemplate is one questionnaire item. Order restarts at 1 per category.
type QuestionTemplate struct {
	Category   string
	Question   string
	Kind       string
	BodyRegion string
	Order      int
}

// Medication is a prescription; EndDate is StartDate plus DurationDays.
type Medication struct {
	PatientID    string
	Drug         string
	Dosage       string
	Frequency    string
	DurationDays int
	StartDate    Date
	EndDate      Date
	Category     string
	Note         string
}

// Dataset holds the six generated tables in generation order.
type Dataset struct {
	Patients          []Patient
	Visits            []Visit
	ExamDefinitions   []ExamDefinition
	TestResults       []TestResult
	QuestionTemplates []QuestionTemplate
	Medications       []Medication
}

// Counts is the number of rows per table.
type Counts struct {
	Patients          int `yaml:"patients" json:"patients"`
	Visits            int `yaml:"visits" json:"visits"`
	ExamDefinitions   int `yaml:"exam_definitions" json:"exam_definitions"`
	TestResults       int `yaml:"test_results" json:"test_results"`
	QuestionTemplates int `yaml:"question_templates" json:"question_templates"`
	Medications       int `yaml:"medications" json:"medications"`
}

func (d *Dataset) Counts() Counts {
	return Counts{
		Patients:          len(d.Patients),
		Visits:            len(d.Visits),
		ExamDefinitions:   len(d.ExamDefinitions),
		TestResults:       len(d.TestResults),
		QuestionTemplates: len(d.QuestionTemplates),
		Medications:       len(d.Medications),
	}
}

// Exam looks up an exam definition by code.
func (d *Dataset) Exam(code string) (ExamDefinition, bool) {
	for _, e := range d.ExamDefinitions {
		if e.Code == code {
			return e, true
		}
	}
	return ExamDefinition{}, false
}
