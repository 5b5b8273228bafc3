package generator

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// Table sizes. Visits, test results and medications only cover a prefix
// of the patient table.
const (
	PatientCount       = 50
	VisitPatients      = 40
	TestPatients       = 35
	MedicationPatients = 30
)

// DefaultSeed reproduces the reference sample workbook.
const DefaultSeed int64 = 42

// Options controls a generation run.
type Options struct {
	// Seed drives every random draw. Equal seeds with equal AsOf dates
	// produce equal datasets.
	Seed int64
	// AsOf is the reference "today" all relative dates are computed from.
	// Zero means the current local date.
	AsOf time.Time
}

// generator carries the seeded faker and reference date through one run.
type generator struct {
	f    *gofakeit.Faker
	asOf dataset.Date
}

// Generate builds the six clinic tables. It never fails: every draw uses
// a fixed, non-empty vocabulary or a well-formed range.
func Generate(opts Options) *dataset.Dataset {
	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	g := &generator{
		f:    newFaker(opts.Seed),
		asOf: dataset.DateOf(asOf),
	}

	log := logger.L()
	log.Debugw("Generating dataset", "seed", opts.Seed, "as_of", g.asOf.String())

	ds := &dataset.Dataset{}
	ds.Patients = g.patients(PatientCount)
	ds.Visits = g.visits(ds.Patients[:VisitPatients])
	ds.ExamDefinitions = dataset.ExamCatalog()
	ds.TestResults = g.testResults(ds.Patients[:TestPatients], ds.ExamDefinitions)
	ds.QuestionTemplates = dataset.QuestionCatalog()
	ds.Medications = g.medications(ds.Patients[:MedicationPatients])

	c := ds.Counts()
	log.Debugw("Generation complete",
		"patients", c.Patients,
		"visits", c.Visits,
		"test_results", c.TestResults,
		"medications", c.Medications)
	return ds
}

// newFaker seeds a faker the way gofakeit.New does, except that zero is
// an ordinary seed rather than a request for a crypto random one.
func newFaker(seed int64) *gofakeit.Faker {
	u := uint64(seed)
	return gofakeit.NewFaker(rand.NewPCG(u, u), false)
}

// PatientID formats the sequential animal number, e.g. 1 -> A0001.
func PatientID(i int) string {
	return fmt.Sprintf("A%04d", i)
}

func (g *generator) patients(n int) []dataset.Patient {
	out := make([]dataset.Patient, 0, n)
	for i := 1; i <= n; i++ {
		gender := g.pick(dataset.Genders)
		p := dataset.Patient{
			ID:           PatientID(i),
			Name:         fmt.Sprintf("%s%d", g.pick(dataset.PetNames), i),
			Owner:        g.pick(dataset.OwnerNames),
			Species:      dataset.Species,
			Breed:        g.pick(dataset.Breeds),
			Gender:       gender,
			BirthDate:    g.daysAgo(365, 3650),
			RegisteredOn: g.daysAgo(1, 730),
		}
		if isNeutered(gender) {
			p.Neutered = dataset.Yes
		} else {
			p.Neutered = g.pick([]string{dataset.Yes, dataset.No})
		}
		p.WeightKg = round(g.f.Float64Range(2.5, 35.0), 1)
		// 70% of animals are chipped
		if g.f.Float64() > 0.3 {
			p.Microchip = fmt.Sprintf("%s%d", dataset.MicrochipPrefix, g.f.Number(100000000, 999999999))
		}
		out = append(out, p)
	}
	logger.L().Debugw("Generated patients", "count", len(out))
	return out
}

func (g *generator) visits(patients []dataset.Patient) []dataset.Visit {
	var out []dataset.Visit
	for _, p := range patients {
		n := g.f.Number(1, 5)
		for j := 0; j < n; j++ {
			v := dataset.Visit{
				PatientID: p.ID,
				Date:      g.daysAgo(1, 365),
				Type:      g.pick(dataset.VisitTypes),
				Complaint: g.pick(dataset.Complaints),
				Diagnosis: g.pick(dataset.Diagnoses),
			}
			if g.f.Float64() > 0.3 {
				v.Treatment = dataset.TreatmentMedication
			} else {
				v.Treatment = dataset.TreatmentExam
			}
			v.Status = g.pick(dataset.VisitStatuses)
			v.Vet = g.pick(dataset.Veterinarians)
			out = append(out, v)
		}
	}
	logger.L().Debugw("Generated visits", "patients", len(patients), "count", len(out))
	return out
}

func (g *generator) testResults(patients []dataset.Patient, exams []dataset.ExamDefinition) []dataset.TestResult {
	var out []dataset.TestResult
	for _, p := range patients {
		n := g.f.Number(3, 10)
		date := g.daysAgo(1, 180)
		for _, exam := range g.sample(exams, n) {
			if exam.Kind != dataset.ExamGeneral || !exam.HasRange() {
				continue
			}
			value := round(g.labValue(exam), 2)
			out = append(out, dataset.TestResult{
				PatientID: p.ID,
				ExamCode:  exam.Code,
				Date:      date,
				Value:     value,
				Status:    exam.Classify(value),
			})
		}
	}
	logger.L().Debugw("Generated test results", "patients", len(patients), "count", len(out))
	return out
}

// labValue draws a value that is normal 80% of the time, otherwise low or
// high with equal odds.
func (g *generator) labValue(exam dataset.ExamDefinition) float64 {
	lo, hi := *exam.Min, *exam.Max
	if g.f.Float64() < 0.8 {
		return g.f.Float64Range(lo, hi)
	}
	if g.f.Float64() < 0.5 {
		return g.f.Float64Range(lo*0.5, lo)
	}
	return g.f.Float64Range(hi, hi*1.5)
}

func (g *generator) medications(patients []dataset.Patient) []dataset.Medication {
	var out []dataset.Medication
	for _, p := range patients {
		// 60% of patients get a prescription
		if g.f.Float64() <= 0.4 {
			continue
		}
		n := g.f.Number(1, 3)
		for j := 0; j < n; j++ {
			start := g.daysAgo(1, 90)
			duration := g.f.Number(3, 14)
			out = append(out, dataset.Medication{
				PatientID:    p.ID,
				Drug:         g.pick(dataset.DrugNames),
				Dosage:       fmt.Sprintf("%d%s", g.f.Number(5, 50), dataset.DosageUnit),
				Frequency:    g.pick(dataset.Frequencies),
				DurationDays: duration,
				StartDate:    start,
				EndDate:      start.AddDays(duration),
				Category:     g.pick(dataset.MedicationCategories),
			})
		}
	}
	logger.L().Debugw("Generated medications", "patients", len(patients), "count", len(out))
	return out
}

// pick returns a uniformly chosen element of list.
func (g *generator) pick(list []string) string {
	return list[g.f.Number(0, len(list)-1)]
}

// daysAgo returns asOf minus a uniform offset in [lo, hi] days.
func (g *generator) daysAgo(lo, hi int) dataset.Date {
	return g.asOf.AddDays(-g.f.Number(lo, hi))
}

// sample draws n distinct exams without replacement (partial Fisher-Yates).
// n is capped at len(exams).
func (g *generator) sample(exams []dataset.ExamDefinition, n int) []dataset.ExamDefinition {
	if n > len(exams) {
		n = len(exams)
	}
	idx := make([]int, len(exams))
	for i := range idx {
		idx[i] = i
	}
	out := make([]dataset.ExamDefinition, 0, n)
	for i := 0; i < n; i++ {
		j := g.f.Number(i, len(idx)-1)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, exams[idx[i]])
	}
	return out
}

func isNeutered(gender string) bool {
	return strings.Contains(gender, dataset.NeuterMarker)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
