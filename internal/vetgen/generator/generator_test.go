package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

var fixedAsOf = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func generateFixed(t *testing.T) *dataset.Dataset {
	t.Helper()
	return Generate(Options{Seed: DefaultSeed, AsOf: fixedAsOf})
}

func patientIndex(t *testing.T, id string) int {
	t.Helper()
	for i := 1; i <= PatientCount; i++ {
		if PatientID(i) == id {
			return i
		}
	}
	t.Fatalf("patient id %q outside A0001..A%04d", id, PatientCount)
	return 0
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generateFixed(t)
	b := generateFixed(t)
	assert.Equal(t, a, b)

	c := Generate(Options{Seed: DefaultSeed + 1, AsOf: fixedAsOf})
	assert.NotEqual(t, a.Patients, c.Patients, "different seeds should diverge")
}

func TestGenerate_ZeroSeedIsReproducible(t *testing.T) {
	for _, seed := range []int64{0, -1} {
		a := Generate(Options{Seed: seed, AsOf: fixedAsOf})
		b := Generate(Options{Seed: seed, AsOf: fixedAsOf})
		assert.Equal(t, a, b, "seed %d", seed)
	}
	zero := Generate(Options{Seed: 0, AsOf: fixedAsOf})
	assert.NotEqual(t, generateFixed(t).Patients, zero.Patients)
}

func TestNewFaker_MatchesGofakeitForNonZeroSeeds(t *testing.T) {
	for _, seed := range []int64{1, DefaultSeed, 2024} {
		ours := newFaker(seed)
		theirs := gofakeit.New(uint64(seed))
		for i := 0; i < 10; i++ {
			assert.Equal(t, theirs.Number(0, 1_000_000), ours.Number(0, 1_000_000), "seed %d draw %d", seed, i)
		}
	}
}

func TestGenerate_QuietAtInfo(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { logger.SetLogger(nil) })

	generateFixed(t)
	assert.Zero(t, logs.Len(), "generation should only log at debug")
}

func TestGenerate_FirstPatient(t *testing.T) {
	a := generateFixed(t)
	b := generateFixed(t)

	p := a.Patients[0]
	assert.Equal(t, "A0001", p.ID)
	assert.Equal(t, b.Patients[0].Breed, p.Breed)
	assert.Equal(t, b.Patients[0].Gender, p.Gender)
	assert.Equal(t, b.Patients[0].WeightKg, p.WeightKg)
	assert.True(t, strings.HasSuffix(p.Name, "1"), "name %q carries the index", p.Name)
}

func TestGenerate_TableSizes(t *testing.T) {
	ds := generateFixed(t)

	require.Len(t, ds.Patients, PatientCount)
	assert.Len(t, ds.ExamDefinitions, 15)
	assert.Len(t, ds.QuestionTemplates, 13)

	for i, p := range ds.Patients {
		assert.Equal(t, PatientID(i+1), p.ID)
	}

	perPatient := map[string]int{}
	for _, v := range ds.Visits {
		idx := patientIndex(t, v.PatientID)
		assert.LessOrEqual(t, idx, VisitPatients, "visit for %s", v.PatientID)
		perPatient[v.PatientID]++
	}
	// every one of the first 40 patients gets 1..5 visits
	assert.Len(t, perPatient, VisitPatients)
	for id, n := range perPatient {
		assert.GreaterOrEqual(t, n, 1, id)
		assert.LessOrEqual(t, n, 5, id)
	}

	for _, r := range ds.TestResults {
		assert.LessOrEqual(t, patientIndex(t, r.PatientID), TestPatients, "test result for %s", r.PatientID)
	}

	meds := map[string]int{}
	for _, m := range ds.Medications {
		assert.LessOrEqual(t, patientIndex(t, m.PatientID), MedicationPatients, "medication for %s", m.PatientID)
		meds[m.PatientID]++
	}
	for id, n := range meds {
		assert.GreaterOrEqual(t, n, 1, id)
		assert.LessOrEqual(t, n, 3, id)
	}
}

func TestGenerate_PatientInvariants(t *testing.T) {
	asOf := dataset.DateOf(fixedAsOf)
	for _, seed := range []int64{1, 7, DefaultSeed, 2024} {
		ds := Generate(Options{Seed: seed, AsOf: fixedAsOf})
		for _, p := range ds.Patients {
			assert.Equal(t, dataset.Species, p.Species)
			assert.Contains(t, dataset.Genders, p.Gender)
			assert.Contains(t, dataset.Breeds, p.Breed)
			assert.Contains(t, dataset.OwnerNames, p.Owner)

			if strings.Contains(p.Gender, dataset.NeuterMarker) {
				assert.Equal(t, dataset.Yes, p.Neutered, "%s is %s", p.ID, p.Gender)
			} else {
				assert.Contains(t, []string{dataset.Yes, dataset.No}, p.Neutered)
			}

			assert.GreaterOrEqual(t, p.WeightKg, 2.5)
			assert.LessOrEqual(t, p.WeightKg, 35.0)
			assert.InDelta(t, p.WeightKg, round(p.WeightKg, 1), 1e-9)

			age := asOf.DaysSince(p.BirthDate)
			assert.GreaterOrEqual(t, age, 365)
			assert.LessOrEqual(t, age, 3650)
			reg := asOf.DaysSince(p.RegisteredOn)
			assert.GreaterOrEqual(t, reg, 1)
			assert.LessOrEqual(t, reg, 730)

			if p.Microchip != "" {
				assert.Regexp(t, `^KR[1-9][0-9]{8}$`, p.Microchip)
			}
		}
	}
}

func TestGenerate_VisitFields(t *testing.T) {
	asOf := dataset.DateOf(fixedAsOf)
	ds := generateFixed(t)
	require.NotEmpty(t, ds.Visits)
	for _, v := range ds.Visits {
		ago := asOf.DaysSince(v.Date)
		assert.GreaterOrEqual(t, ago, 1)
		assert.LessOrEqual(t, ago, 365)
		assert.Contains(t, dataset.VisitTypes, v.Type)
		assert.Contains(t, dataset.Complaints, v.Complaint)
		assert.Contains(t, dataset.Diagnoses, v.Diagnosis)
		assert.Contains(t, []string{dataset.TreatmentMedication, dataset.TreatmentExam}, v.Treatment)
		assert.Contains(t, dataset.VisitStatuses, v.Status)
		assert.Contains(t, dataset.Veterinarians, v.Vet)
		assert.Empty(t, v.Note)
	}
}

func TestGenerate_TestResultsMatchRanges(t *testing.T) {
	asOf := dataset.DateOf(fixedAsOf)
	for _, seed := range []int64{3, 11, DefaultSeed, 99} {
		ds := Generate(Options{Seed: seed, AsOf: fixedAsOf})
		require.NotEmpty(t, ds.TestResults)

		dates := map[string]dataset.Date{}
		seen := map[string]bool{}
		for _, r := range ds.TestResults {
			exam, ok := ds.Exam(r.ExamCode)
			require.True(t, ok, "unknown exam %s", r.ExamCode)
			require.Equal(t, dataset.ExamGeneral, exam.Kind, "imaging exams yield no results")

			switch r.Status {
			case dataset.StatusNormal:
				assert.GreaterOrEqual(t, r.Value, *exam.Min)
				assert.LessOrEqual(t, r.Value, *exam.Max)
			case dataset.StatusLow:
				assert.Less(t, r.Value, *exam.Min)
				assert.GreaterOrEqual(t, r.Value, *exam.Min*0.5-0.005)
			case dataset.StatusHigh:
				assert.Greater(t, r.Value, *exam.Max)
				assert.LessOrEqual(t, r.Value, *exam.Max*1.5+0.005)
			default:
				t.Fatalf("unexpected status %q", r.Status)
			}
			assert.InDelta(t, r.Value, round(r.Value, 2), 1e-9)

			key := r.PatientID + "/" + r.ExamCode
			assert.False(t, seen[key], "exam %s repeated", key)
			seen[key] = true

			if d, ok := dates[r.PatientID]; ok {
				assert.Equal(t, d, r.Date, "batch date for %s", r.PatientID)
			} else {
				dates[r.PatientID] = r.Date
			}
			ago := asOf.DaysSince(r.Date)
			assert.GreaterOrEqual(t, ago, 1)
			assert.LessOrEqual(t, ago, 180)
			assert.Empty(t, r.ValueText)
		}
	}
}

func TestGenerate_MedicationDates(t *testing.T) {
	asOf := dataset.DateOf(fixedAsOf)
	for _, seed := range []int64{5, DefaultSeed, 1000} {
		ds := Generate(Options{Seed: seed, AsOf: fixedAsOf})
		for _, m := range ds.Medications {
			assert.Equal(t, m.StartDate.AddDays(m.DurationDays), m.EndDate)
			assert.Equal(t, m.DurationDays, m.EndDate.DaysSince(m.StartDate))
			assert.GreaterOrEqual(t, m.DurationDays, 3)
			assert.LessOrEqual(t, m.DurationDays, 14)

			ago := asOf.DaysSince(m.StartDate)
			assert.GreaterOrEqual(t, ago, 1)
			assert.LessOrEqual(t, ago, 90)

			assert.Regexp(t, `^([5-9]|[1-4][0-9]|50)mg$`, m.Dosage)
			assert.Contains(t, dataset.DrugNames, m.Drug)
			assert.Contains(t, dataset.Frequencies, m.Frequency)
			assert.Contains(t, dataset.MedicationCategories, m.Category)
		}
	}
}

func TestSample_DistinctAndCapped(t *testing.T) {
	g := &generator{f: gofakeit.New(1), asOf: dataset.DateOf(fixedAsOf)}
	exams := dataset.ExamCatalog()

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"three", 3, 3},
		{"ten", 10, 10},
		{"all", len(exams), len(exams)},
		{"over cap", len(exams) + 5, len(exams)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.sample(exams, tt.n)
			require.Len(t, got, tt.want)
			codes := map[string]bool{}
			for _, e := range got {
				assert.False(t, codes[e.Code], "duplicate %s", e.Code)
				codes[e.Code] = true
			}
		})
	}
}

func TestIsNeutered(t *testing.T) {
	assert.True(t, isNeutered("중성화 수컷"))
	assert.True(t, isNeutered("중성화 암컷"))
	assert.False(t, isNeutered("수컷"))
	assert.False(t, isNeutered("암컷"))
}
