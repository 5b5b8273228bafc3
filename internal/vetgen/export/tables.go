package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
)

// Sheet names, in workbook order.
const (
	SheetPatients          = "환자정보"
	SheetVisits            = "방문기록"
	SheetExamMaster        = "검사항목마스터"
	SheetTestResults       = "검사결과"
	SheetQuestionTemplates = "문진템플릿"
	SheetMedications       = "약물처방"
)

// Table is one named sheet: a header row followed by data rows.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

var (
	patientHeaders  = []string{"동물번호", "동물명", "보호자명", "종", "품종", "성별", "생년월일", "등록일", "중성화여부", "체중(kg)", "마이크로칩번호"}
	visitHeaders    = []string{"동물번호", "방문일", "방문유형", "주증상", "진단", "처치", "상태", "수의사명", "메모"}
	examHeaders     = []string{"검사코드", "검사명", "검사카테고리", "검사유형", "단위", "정상범위최소", "정상범위최대", "관련신체부위"}
	resultHeaders   = []string{"동물번호", "검사코드", "검사일", "검사값", "검사값텍스트", "상태", "메모"}
	questionHeaders = []string{"카테고리", "문항", "문항유형", "관련신체부위", "표시순서"}
	medHeaders      = []string{"동물번호", "약물명", "용량", "투여빈도", "투여기간(일)", "시작일", "종료일", "카테고리", "메모"}
)

// Tables lays the dataset out as the six workbook sheets. Missing normal
// ranges become nil cells.
func Tables(ds *dataset.Dataset) []Table {
	patients := Table{Name: SheetPatients, Headers: patientHeaders}
	for _, p := range ds.Patients {
		patients.Rows = append(patients.Rows, []any{
			p.ID, p.Name, p.Owner, p.Species, p.Breed, p.Gender,
			p.BirthDate.String(), p.RegisteredOn.String(), p.Neutered, p.WeightKg, p.Microchip,
		})
	}

	visits := Table{Name: SheetVisits, Headers: visitHeaders}
	for _, v := range ds.Visits {
		visits.Rows = append(visits.Rows, []any{
			v.PatientID, v.Date.String(), v.Type, v.Complaint, v.Diagnosis, v.Treatment, v.Status, v.Vet, v.Note,
		})
	}

	exams := Table{Name: SheetExamMaster, Headers: examHeaders}
	for _, e := range ds.ExamDefinitions {
		exams.Rows = append(exams.Rows, []any{
			e.Code, e.Name, e.Category, string(e.Kind), e.Unit, optional(e.Min), optional(e.Max), e.BodyRegion,
		})
	}

	results := Table{Name: SheetTestResults, Headers: resultHeaders}
	for _, r := range ds.TestResults {
		results.Rows = append(results.Rows, []any{
			r.PatientID, r.ExamCode, r.Date.String(), r.Value, r.ValueText, string(r.Status), r.Note,
		})
	}

	questions := Table{Name: SheetQuestionTemplates, Headers: questionHeaders}
	for _, q := range ds.QuestionTemplates {
		questions.Rows = append(questions.Rows, []any{
			q.Category, q.Question, q.Kind, q.BodyRegion, q.Order,
		})
	}

	meds := Table{Name: SheetMedications, Headers: medHeaders}
	for _, m := range ds.Medications {
		meds.Rows = append(meds.Rows, []any{
			m.PatientID, m.Drug, m.Dosage, m.Frequency, m.DurationDays,
			m.StartDate.String(), m.EndDate.String(), m.Category, m.Note,
		})
	}

	return []Table{patients, visits, exams, results, questions, meds}
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Fingerprint is a sha256 over sheet names, headers and cell values. Equal
// datasets give equal fingerprints regardless of how the workbook encoder
// lays out its zip entries.
func Fingerprint(tables []Table) string {
	h := sha256.New()
	for _, t := range tables {
		fmt.Fprintf(h, "%s\x1d", t.Name)
		for _, col := range t.Headers {
			fmt.Fprintf(h, "%s\x1f", col)
		}
		h.Write([]byte{'\x1e'})
		for _, row := range t.Rows {
			for _, v := range row {
				fmt.Fprintf(h, "%v\x1f", v)
			}
			h.Write([]byte{'\x1e'})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
