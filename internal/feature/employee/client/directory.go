package client

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"employee_directory/internal/feature/employee/transport/http/dto"
)

// API is the subset of Client the Directory needs.
type API interface {
	List(ctx context.Context) ([]dto.Employee, error)
	Create(ctx context.Context, in dto.EmployeeRequest) (*dto.Employee, error)
	Update(ctx context.Context, id uint, in dto.EmployeeRequest) (*dto.Employee, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

// Column is a displayable, sortable employee field.
type Column string

const (
	ColumnName     Column = "name"
	ColumnEmail    Column = "email"
	ColumnPosition Column = "position"
)

// Columns lists the table columns in display order.
var Columns = []Column{ColumnName, ColumnEmail, ColumnPosition}

// Label is the column header text.
func (c Column) Label() string {
	switch c {
	case ColumnName:
		return "Name"
	case ColumnEmail:
		return "Email"
	case ColumnPosition:
		return "Position"
	}
	return string(c)
}

// ParseColumn accepts a column key case-insensitively.
func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Columns, c) {
		return "", fmt.Errorf("unknown column %q (want name, email or position)", s)
	}
	return c, nil
}

// Value returns the field of e shown in column c.
func (c Column) Value(e dto.Employee) string {
	switch c {
	case ColumnName:
		return e.Name
	case ColumnEmail:
		return e.Email
	case ColumnPosition:
		return e.Position
	}
	return ""
}

// Direction is the sort order of the active key.
type Direction int

const (
	Asc Direction = iota
	Desc
)

// Label is "A-Z" or "Z-A".
func (d Direction) Label() string {
	if d == Desc {
		return "Z-A"
	}
	return "A-Z"
}

// Summary describes the current view for the table header.
type Summary struct {
	Total     int
	Filtered  int
	SortKey   Column // empty when unsorted
	SortLabel string
}

// Directory holds the full record set fetched from the server and derives the
// displayed view from it. The record set only changes by refetching, which
// happens after every successful mutation. A Directory is not safe for
// concurrent use.
type Directory struct {
	api API

	records []dto.Employee
	search  string
	sortKey Column
	sortDir Direction
	hidden  map[Column]bool
}

// NewDirectory returns an empty directory. Call Refresh to load records.
func NewDirectory(api API) *Directory {
	return &Directory{api: api, hidden: map[Column]bool{}}
}

// Refresh replaces the record set with the server's. On error the previous
// records are kept.
func (d *Directory) Refresh(ctx context.Context) error {
	records, err := d.api.List(ctx)
	if err != nil {
		return err
	}
	d.records = records
	return nil
}

// RefreshError reports a mutation the server applied whose follow-up refetch
// failed. The record set still holds the records from before the mutation.
type RefreshError struct {
	// Employee is the created or updated record; nil after a delete.
	Employee *dto.Employee
	// DeletedRows is set after a delete.
	DeletedRows int64
	Err         error
}

func (e *RefreshError) Error() string {
	return "saved, but reloading employees failed: " + e.Err.Error()
}

func (e *RefreshError) Unwrap() error { return e.Err }

// Create adds an employee, then refetches. If only the refetch fails the
// error is a *RefreshError.
func (d *Directory) Create(ctx context.Context, in dto.EmployeeRequest) error {
	e, err := d.api.Create(ctx, in)
	if err != nil {
		return err
	}
	if err := d.Refresh(ctx); err != nil {
		return &RefreshError{Employee: e, Err: err}
	}
	return nil
}

// Update edits an employee, then refetches. If only the refetch fails the
// error is a *RefreshError.
func (d *Directory) Update(ctx context.Context, id uint, in dto.EmployeeRequest) error {
	e, err := d.api.Update(ctx, id, in)
	if err != nil {
		return err
	}
	if err := d.Refresh(ctx); err != nil {
		return &RefreshError{Employee: e, Err: err}
	}
	return nil
}

// Delete removes an employee, then refetches. If only the refetch fails the
// error is a *RefreshError.
func (d *Directory) Delete(ctx context.Context, id uint) error {
	n, err := d.api.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := d.Refresh(ctx); err != nil {
		return &RefreshError{DeletedRows: n, Err: err}
	}
	return nil
}

// Records returns a copy of the full record set in server order.
func (d *Directory) Records() []dto.Employee {
	return slices.Clone(d.records)
}

// SetSearch sets the filter term. A blank term matches everything.
func (d *Directory) SetSearch(term string) {
	d.search = term
}

// ToggleSort activates key ascending, or flips to descending when key is
// already active and ascending.
func (d *Directory) ToggleSort(key Column) {
	if d.sortKey == key && d.sortDir == Asc {
		d.sortDir = Desc
		return
	}
	d.sortKey, d.sortDir = key, Asc
}

// SetSort activates key with an explicit direction.
func (d *Directory) SetSort(key Column, dir Direction) {
	d.sortKey, d.sortDir = key, dir
}

// ClearSort restores the filtered order.
func (d *Directory) ClearSort() {
	d.sortKey, d.sortDir = "", Asc
}

// ToggleColumn flips the visibility of c.
func (d *Directory) ToggleColumn(c Column) {
	d.hidden[c] = !d.hidden[c]
}

// SetVisibleColumns shows exactly cols.
func (d *Directory) SetVisibleColumns(cols []Column) {
	for _, c := range Columns {
		d.hidden[c] = !slices.Contains(cols, c)
	}
}

// VisibleColumns returns the shown columns in display order.
func (d *Directory) VisibleColumns() []Column {
	out := make([]Column, 0, len(Columns))
	for _, c := range Columns {
		if !d.hidden[c] {
			out = append(out, c)
		}
	}
	return out
}

// View returns the filtered records, sorted by the active key if any.
func (d *Directory) View() []dto.Employee {
	out := filter(d.records, d.search)
	if d.sortKey == "" {
		return out
	}
	key, dir := d.sortKey, d.sortDir
	slices.SortStableFunc(out, func(a, b dto.Employee) int {
		c := cmp.Compare(key.Value(a), key.Value(b))
		if dir == Desc {
			return -c
		}
		return c
	})
	return out
}

// Summary reports total and filtered counts and the active sort.
func (d *Directory) Summary() Summary {
	s := Summary{
		Total:    len(d.records),
		Filtered: len(filter(d.records, d.search)),
		SortKey:  d.sortKey,
	}
	if d.sortKey != "" {
		s.SortLabel = d.sortDir.Label()
	}
	return s
}

// filter returns the records where name, email or position contains term,
// ignoring case. The result never aliases records.
func filter(records []dto.Employee, term string) []dto.Employee {
	if strings.TrimSpace(term) == "" {
		return slices.Clone(records)
	}
	needle := strings.ToLower(term)
	out := make([]dto.Employee, 0, len(records))
	for _, e := range records {
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Email), needle) ||
			strings.Contains(strings.ToLower(e.Position), needle) {
			out = append(out, e)
		}
	}
	return out
}
