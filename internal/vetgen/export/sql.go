package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vaibhaw-/VetGen/internal/vetgen/dataset"
	"github.com/vaibhaw-/VetGen/internal/vetgen/logger"
)

// Dialect selects the SQL flavour for DDL, table names and placeholders.
type Dialect string

const (
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// ErrUnknownDialect is returned for dialects other than postgres, mysql and sqlite.
var ErrUnknownDialect = errors.New("unknown sql dialect")

// ParseDialect validates a dialect name.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case Postgres, MySQL, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, s)
	}
}

// TableName qualifies a base table name. Postgres uses a "vet" schema;
// mysql and sqlite use a "vet_" prefix instead.
func (d Dialect) TableName(base string) string {
	if d == Postgres {
		return "vet." + base
	}
	return "vet_" + base
}

// Placeholder returns the i-th (1-based) bind parameter.
func (d Dialect) Placeholder(i int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", i)
	}
	return "?"
}

type colType int

const (
	colText colType = iota
	colDate
	colReal
	colInt
)

func (d Dialect) sqlType(t colType) string {
	switch t {
	case colDate:
		if d == SQLite {
			return "TEXT"
		}
		return "DATE"
	case colReal:
		switch d {
		case Postgres:
			return "NUMERIC(10,2)"
		case MySQL:
			return "DECIMAL(10,2)"
		default:
			return "REAL"
		}
	case colInt:
		if d == SQLite {
			return "INTEGER"
		}
		return "INT"
	default:
		if d == MySQL {
			return "VARCHAR(255)"
		}
		return "TEXT"
	}
}

// Column is one SQL column; Constraint is appended verbatim after the type
// and may reference other tables through {{table}} placeholders.
type Column struct {
	Name       string
	Type       colType
	Constraint string
}

// SQLTable is a dataset table laid out for relational storage.
type SQLTable struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// SQLTables returns the tables in dependency order: referenced tables
// (patient, exam_definition) come before the tables pointing at them.
func SQLTables(ds *dataset.Dataset) []SQLTable {
	patient := SQLTable{Name: "patient", Columns: []Column{
		{Name: "patient_id", Type: colText, Constraint: "PRIMARY KEY"},
		{Name: "name", Type: colText, Constraint: "NOT NULL"},
		{Name: "owner_name", Type: colText, Constraint: "NOT NULL"},
		{Name: "species", Type: colText, Constraint: "NOT NULL"},
		{Name: "breed", Type: colText, Constraint: "NOT NULL"},
		{Name: "gender", Type: colText, Constraint: "NOT NULL"},
		{Name: "birth_date", Type: colDate, Constraint: "NOT NULL"},
		{Name: "registered_on", Type: colDate, Constraint: "NOT NULL"},
		{Name: "neutered", Type: colText, Constraint: "NOT NULL"},
		{Name: "weight_kg", Type: colReal, Constraint: "NOT NULL"},
		{Name: "microchip", Type: colText},
	}}
	for _, p := range ds.Patients {
		patient.Rows = append(patient.Rows, []any{
			p.ID, p.Name, p.Owner, p.Species, p.Breed, p.Gender,
			p.BirthDate.String(), p.RegisteredOn.String(), p.Neutered, p.WeightKg, p.Microchip,
		})
	}

	exam := SQLTable{Name: "exam_definition", Columns: []Column{
		{Name: "exam_code", Type: colText, Constraint: "PRIMARY KEY"},
		{Name: "name", Type: colText, Constraint: "NOT NULL"},
		{Name: "category", Type: colText, Constraint: "NOT NULL"},
		{Name: "kind", Type: colText, Constraint: "NOT NULL"},
		{Name: "unit", Type: colText},
		{Name: "normal_min", Type: colReal},
		{Name: "normal_max", Type: colReal},
		{Name: "body_region", Type: colText},
	}}
	for _, e := range ds.ExamDefinitions {
		exam.Rows = append(exam.Rows, []any{
			e.Code, e.Name, e.Category, string(e.Kind), e.Unit, optional(e.Min), optional(e.Max), e.BodyRegion,
		})
	}

	question := SQLTable{Name: "question_template", Columns: []Column{
		{Name: "category", Type: colText, Constraint: "NOT NULL"},
		{Name: "question", Type: colText, Constraint: "NOT NULL"},
		{Name: "kind", Type: colText, Constraint: "NOT NULL"},
		{Name: "body_region", Type: colText},
		{Name: "display_order", Type: colInt, Constraint: "NOT NULL"},
	}}
	for _, q := range ds.QuestionTemplates {
		question.Rows = append(question.Rows, []any{q.Category, q.Question, q.Kind, q.BodyRegion, q.Order})
	}

	visit := SQLTable{Name: "visit", Columns: []Column{
		{Name: "patient_id", Type: colText, Constraint: "NOT NULL REFERENCES {{patient}}(patient_id)"},
		{Name: "visit_date", Type: colDate, Constraint: "NOT NULL"},
		{Name: "visit_type", Type: colText, Constraint: "NOT NULL"},
		{Name: "complaint", Type: colText},
		{Name: "diagnosis", Type: colText},
		{Name: "treatment", Type: colText},
		{Name: "status", Type: colText, Constraint: "NOT NULL"},
		{Name: "vet_name", Type: colText},
		{Name: "note", Type: colText},
	}}
	for _, v := range ds.Visits {
		visit.Rows = append(visit.Rows, []any{
			v.PatientID, v.Date.String(), v.Type, v.Complaint, v.Diagnosis, v.Treatment, v.Status, v.Vet, v.Note,
		})
	}

	result := SQLTable{Name: "test_result", Columns: []Column{
		{Name: "patient_id", Type: colText, Constraint: "NOT NULL REFERENCES {{patient}}(patient_id)"},
		{Name: "exam_code", Type: colText, Constraint: "NOT NULL REFERENCES {{exam_definition}}(exam_code)"},
		{Name: "test_date", Type: colDate, Constraint: "NOT NULL"},
		{Name: "value", Type: colReal},
		{Name: "value_text", Type: colText},
		{Name: "status", Type: colText, Constraint: "NOT NULL"},
		{Name: "note", Type: colText},
	}}
	for _, r := range ds.TestResults {
		result.Rows = append(result.Rows, []any{
			r.PatientID, r.ExamCode, r.Date.String(), r.Value, r.ValueText, string(r.Status), r.Note,
		})
	}

	med := SQLTable{Name: "medication", Columns: []Column{
		{Name: "patient_id", Type: colText, Constraint: "NOT NULL REFERENCES {{patient}}(patient_id)"},
		{Name: "drug_name", Type: colText, Constraint: "NOT NULL"},
		{Name: "dosage", Type: colText, Constraint: "NOT NULL"},
		{Name: "frequency", Type: colText, Constraint: "NOT NULL"},
		{Name: "duration_days", Type: colInt, Constraint: "NOT NULL"},
		{Name: "start_date", Type: colDate, Constraint: "NOT NULL"},
		{Name: "end_date", Type: colDate, Constraint: "NOT NULL"},
		{Name: "category", Type: colText},
		{Name: "note", Type: colText},
	}}
	for _, m := range ds.Medications {
		med.Rows = append(med.Rows, []any{
			m.PatientID, m.Drug, m.Dosage, m.Frequency, m.DurationDays,
			m.StartDate.String(), m.EndDate.String(), m.Category, m.Note,
		})
	}

	return []SQLTable{patient, exam, question, visit, result, med}
}

func (d Dialect) constraint(c string) string {
	for _, base := range []string{"patient", "exam_definition"} {
		c = strings.ReplaceAll(c, "{{"+base+"}}", d.TableName(base))
	}
	return c
}

// CreateTableSQL renders the CREATE TABLE statement for t.
func CreateTableSQL(d Dialect, t SQLTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", d.TableName(t.Name))
	for i, c := range t.Columns {
		fmt.Fprintf(&b, "    %s %s", c.Name, d.sqlType(c.Type))
		if c.Constraint != "" {
			// mysql ignores inline REFERENCES, so the FKs go in table constraints below
			if d == MySQL && strings.Contains(c.Constraint, "REFERENCES") {
				b.WriteString(" NOT NULL")
			} else {
				b.WriteString(" " + d.constraint(c.Constraint))
			}
		}
		if i < len(t.Columns)-1 || (d == MySQL && hasForeignKeys(t)) {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	if d == MySQL {
		var fks []string
		for _, c := range t.Columns {
			if idx := strings.Index(c.Constraint, "REFERENCES"); idx >= 0 {
				fks = append(fks, fmt.Sprintf("    FOREIGN KEY (%s) %s", c.Name, d.constraint(c.Constraint[idx:])))
			}
		}
		b.WriteString(strings.Join(fks, ",\n"))
		if len(fks) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;")
	} else {
		b.WriteString(");")
	}
	return b.String()
}

func hasForeignKeys(t SQLTable) bool {
	for _, c := range t.Columns {
		if strings.Contains(c.Constraint, "REFERENCES") {
			return true
		}
	}
	return false
}

// DropTableSQL renders a DROP TABLE IF EXISTS for t.
func DropTableSQL(d Dialect, t SQLTable) string {
	if d == Postgres {
		return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", d.TableName(t.Name))
	}
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", d.TableName(t.Name))
}

// InsertSQL renders a parameterised INSERT for one row of t.
func InsertSQL(d Dialect, t SQLTable) string {
	names := make([]string, len(t.Columns))
	ph := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
		ph[i] = d.Placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.TableName(t.Name), strings.Join(names, ", "), strings.Join(ph, ", "))
}

// sqlEscape escapes single quotes for safe inline SQL generation.
func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// literal renders v as an inline SQL literal.
func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + sqlEscape(x) + "'"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return "'" + sqlEscape(fmt.Sprint(x)) + "'"
	}
}

// WriteSQL writes a self-contained seed script (DDL plus INSERTs) for the
// dataset in the given dialect.
func WriteSQL(w io.Writer, d Dialect, ds *dataset.Dataset) error {
	if _, err := ParseDialect(string(d)); err != nil {
		return err
	}
	tables := SQLTables(ds)
	ew := &errWriter{w: w}

	ew.printf("-- Generated SQL for %s\n", d)
	switch d {
	case Postgres:
		ew.printf("-- Import with: psql -U <user> -d <database> -f <file>\n\n")
		ew.printf("CREATE SCHEMA IF NOT EXISTS vet;\n")
	case MySQL:
		ew.printf("-- Import with: mysql -u <user> -p <database> < <file>\n\n")
	default:
		ew.printf("-- Import with: sqlite3 <database> < <file>\n\n")
	}

	for i := len(tables) - 1; i >= 0; i-- {
		ew.printf("%s\n", DropTableSQL(d, tables[i]))
	}
	ew.printf("\n")
	for _, t := range tables {
		ew.printf("%s\n\n", CreateTableSQL(d, t))
	}

	for _, t := range tables {
		names := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			names[i] = c.Name
		}
		cols := strings.Join(names, ", ")
		for _, row := range t.Rows {
			vals := make([]string, len(row))
			for i, v := range row {
				vals[i] = literal(v)
			}
			ew.printf("INSERT INTO %s (%s) VALUES (%s);\n", d.TableName(t.Name), cols, strings.Join(vals, ", "))
		}
		ew.printf("\n-- Inserted %d rows into %s\n\n", len(t.Rows), d.TableName(t.Name))
		logger.L().Debugw("SQL rows written", "table", d.TableName(t.Name), "rows", len(t.Rows))
	}

	if ew.err != nil {
		return fmt.Errorf("write sql: %w", ew.err)
	}
	return nil
}

// errWriter remembers the first write error so the script can be emitted
// without checking every Fprintf.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
