package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/export"
	"github.com/vaibhaw-/VetGen/internal/vetgen/generator"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// Report summarises a loaded database: row counts read back from the
// tables plus the number of rows breaking a dataset invariant.
type Report struct {
	Counts             dataset.Counts
	OrphanRows         int
	OutOfRangeIDs      int
	StatusMismatches   int
	NeuteredMismatches int
}

// OK reports whether no invariant violations were found.
func (r Report) OK() bool {
	return r.OrphanRows == 0 && r.OutOfRangeIDs == 0 && r.StatusMismatches == 0 && r.NeuteredMismatches == 0
}

// Check queries a database populated by Load and reports what it finds.
func Check(ctx context.Context, db *sql.DB, d export.Dialect) (Report, error) {
	if _, err := export.ParseDialect(string(d)); err != nil {
		return Report{}, err
	}
	tn := d.TableName
	var r Report

	count := func(label, q string, dest *int, args ...any) error {
		if err := db.QueryRowContext(ctx, q, args...).Scan(dest); err != nil {
			return fmt.Errorf("check %s: %w", label, err)
		}
		logger.L().Debugw("Check query", "check", label, "rows", *dest)
		return nil
	}

	for _, c := range []struct {
		table string
		dest  *int
	}{
		{"patient", &r.Counts.Patients},
		{"visit", &r.Counts.Visits},
		{"exam_definition", &r.Counts.ExamDefinitions},
		{"test_result", &r.Counts.TestResults},
		{"question_template", &r.Counts.QuestionTemplates},
		{"medication", &r.Counts.Medications},
	} {
		if err := count(c.table, "SELECT COUNT(*) FROM "+tn(c.table), c.dest); err != nil {
			return Report{}, err
		}
	}

	for _, child := range []string{"visit", "test_result", "medication"} {
		var n int
		q := fmt.Sprintf(`SELECT COUNT(*) FROM %s c LEFT JOIN %s p ON p.patient_id = c.patient_id
WHERE p.patient_id IS NULL`, tn(child), tn("patient"))
		if err := count("orphans in "+child, q, &n); err != nil {
			return Report{}, err
		}
		r.OrphanRows += n
	}

	// ids must be A0001..A0050 in the patient table and every child table
	first, last := generator.PatientID(1), generator.PatientID(generator.PatientCount)
	for _, table := range []string{"patient", "visit", "test_result", "medication"} {
		var n int
		q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE LENGTH(patient_id) <> %d OR patient_id < %s OR patient_id > %s`,
			tn(table), len(first), d.Placeholder(1), d.Placeholder(2))
		if err := count("id range in "+table, q, &n, first, last); err != nil {
			return Report{}, err
		}
		r.OutOfRangeIDs += n
	}

	statusQ := fmt.Sprintf(`SELECT COUNT(*) FROM %s r JOIN %s e ON e.exam_code = r.exam_code
WHERE e.normal_min IS NOT NULL AND r.value IS NOT NULL AND NOT (
 (r.value < e.normal_min AND r.status = %s) OR
 (r.value > e.normal_max AND r.status = %s) OR
 (r.value >= e.normal_min AND r.value <= e.normal_max AND r.status = %s))`,
		tn("test_result"), tn("exam_definition"), d.Placeholder(1), d.Placeholder(2), d.Placeholder(3))
	if err := count("result status", statusQ, &r.StatusMismatches,
		string(dataset.StatusLow), string(dataset.StatusHigh), string(dataset.StatusNormal)); err != nil {
		return Report{}, err
	}

	neuterQ := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE gender LIKE %s AND neutered <> %s`,
		tn("patient"), d.Placeholder(1), d.Placeholder(2))
	if err := count("neutered flag", neuterQ, &r.NeuteredMismatches,
		"%"+dataset.NeuterMarker+"%", dataset.Yes); err != nil {
		return Report{}, err
	}

	logger.L().Infow("Database checked",
		"dialect", d,
		"patients", r.Counts.Patients,
		"orphans", r.OrphanRows,
		"out_of_range_ids", r.OutOfRangeIDs,
		"status_mismatches", r.StatusMismatches,
		"neutered_mismatches", r.NeuteredMismatches)
	return r, nil
}

// String renders the report as the lines printed by the CLI.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "환자 수: %d\n", r.Counts.Patients)
	fmt.Fprintf(&b, "방문 기록: %d\n", r.Counts.Visits)
	fmt.Fprintf(&b, "검사 결과: %d\n", r.Counts.TestResults)
	fmt.Fprintf(&b, "약물 처방: %d\n", r.Counts.Medications)
	fmt.Fprintf(&b, "orphan rows: %d\n", r.OrphanRows)
	fmt.Fprintf(&b, "out of range ids: %d\n", r.OutOfRangeIDs)
	fmt.Fprintf(&b, "status mismatches: %d\n", r.StatusMismatches)
	fmt.Fprintf(&b, "neutered mismatches: %d\n", r.NeuteredMismatches)
	return b.String()
}
