package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/pltr/core"
)

// Column names of the header row.
const (
	ColMachines = "M"
	ColJobs     = "N"
	ColRelease  = "r"
	ColDeadline = "d"
	ColVolume   = "p"
)

var columns = []string{ColMachines, ColJobs, ColRelease, ColDeadline, ColVolume}

var (
	// ErrMissingColumn indicates a header without one of M, N, r, d, p.
	ErrMissingColumn = errors.New("dataset: missing column")

	// ErrMalformedField indicates a field that does not parse.
	ErrMalformedField = errors.New("dataset: malformed field")

	// ErrLengthMismatch indicates a list whose length differs from N.
	ErrLengthMismatch = errors.New("dataset: list length does not match N")
)

// RecordError locates a failed record. Record counts data rows from 1;
// Column is empty when the failure concerns the record as a whole (for
// example an instance that core.NewInstance rejects).
type RecordError struct {
	Record int
	Column string
	Err    error
}

func (e *RecordError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("dataset: record %d: %v", e.Record, e.Err)
	}

	return fmt.Sprintf("dataset: record %d, column %s: %v", e.Record, e.Column, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Option configures Parse.
type Option func(*options)

type options struct {
	skip  func(*RecordError)
	lower int
}

// WithSkipInvalid makes Parse report malformed records to fn and continue
// instead of failing. fn may be nil to drop them silently.
func WithSkipInvalid(fn func(*RecordError)) Option {
	return func(o *options) {
		if fn == nil {
			fn = func(*RecordError) {}
		}
		o.skip = fn
	}
}

// WithLowerBound sets q for every parsed instance (default 1).
func WithLowerBound(q int) Option {
	return func(o *options) { o.lower = q }
}

// Load opens path and parses it. See Parse.
func Load(path string, ids *core.IDGenerator, opts ...Option) ([]*core.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	return Parse(f, ids, opts...)
}

// Parse reads every record of r into an instance, in file order. A nil ids
// starts a fresh generator at 0.
//
// Errors: a header problem wraps ErrMissingColumn; the first bad record is
// returned as *RecordError unless WithSkipInvalid is set. No instance of a
// bad record is ever returned.
func Parse(r io.Reader, ids *core.IDGenerator, opts ...Option) ([]*core.Instance, error) {
	o := options{lower: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if ids == nil {
		ids = core.NewIDGenerator(0)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	cr.FieldsPerRecord = len(header)

	var insts []*core.Instance
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return insts, nil
		}
		var inst *core.Instance
		if err != nil {
			err = &RecordError{Record: n, Err: err}
		} else {
			inst, err = parseRecord(n, rec, index, ids, o.lower)
		}
		if err != nil {
			var re *RecordError
			if o.skip == nil || !errors.As(err, &re) {
				return nil, err
			}
			o.skip(re)

			continue
		}
		insts = append(insts, inst)
	}
}

func parseRecord(n int, rec []string, index map[string]int, ids *core.IDGenerator, q int) (*core.Instance, error) {
	field := func(col string) string { return rec[index[col]] }
	fail := func(col string, err error) error { return &RecordError{Record: n, Column: col, Err: err} }

	m, err := parseInt(field(ColMachines))
	if err != nil {
		return nil, fail(ColMachines, err)
	}
	count, err := parseInt(field(ColJobs))
	if err != nil {
		return nil, fail(ColJobs, err)
	}
	release, err := parseList(field(ColRelease), count)
	if err != nil {
		return nil, fail(ColRelease, err)
	}
	deadline, err := parseList(field(ColDeadline), count)
	if err != nil {
		return nil, fail(ColDeadline, err)
	}
	volume, err := parseMatrixMin(field(ColVolume), count)
	if err != nil {
		return nil, fail(ColVolume, err)
	}

	jobs := make([]core.Job, count)
	for j := range jobs {
		if jobs[j], err = ids.NewJob(release[j], deadline[j], volume[j]); err != nil {
			return nil, &RecordError{Record: n, Err: err}
		}
	}
	inst, err := core.NewInstance(jobs, m, q)
	if err != nil {
		return nil, &RecordError{Record: n, Err: err}
	}

	return inst, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedField, s)
	}

	return v, nil
}

// parseList reads "[a, b, c]" and checks it has n entries.
func parseList(s string, n int) ([]int, error) {
	body := strings.Trim(strings.TrimSpace(s), "[]")
	if strings.TrimSpace(body) == "" {
		if n == 0 {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: got 0, want %d", ErrLengthMismatch, n)
	}
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(parts), n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := parseInt(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

// parseMatrixMin reads "[..];[..]" rows of n entries and returns the
// column minima.
func parseMatrixMin(s string, n int) ([]int, error) {
	var mins []int
	for _, row := range strings.Split(s, ";") {
		vals, err := parseList(row, n)
		if err != nil {
			return nil, err
		}
		if mins == nil {
			mins = vals

			continue
		}
		for j, v := range vals {
			mins[j] = min(mins[j], v)
		}
	}

	return mins, nil
}

// Write emits insts in the layout Parse reads, one processing-time row per
// instance.
func Write(w io.Writer, insts []*core.Instance) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	for _, inst := range insts {
		jobs := inst.Jobs()
		r := make([]int, len(jobs))
		d := make([]int, len(jobs))
		p := make([]int, len(jobs))
		for i, j := range jobs {
			r[i], d[i], p[i] = j.Release, j.Deadline, j.Volume
		}
		rec := []string{
			strconv.Itoa(inst.Machines()),
			strconv.Itoa(len(jobs)),
			formatList(r),
			formatList(d),
			formatList(p),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	return nil
}

func formatList(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
