package idldb

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/idlmap/pkg/idl"
	"github.com/mesh-intelligence/idlmap/pkg/types"
)

// OrderByDir is the direction of one ORDER BY entry.
type OrderByDir string

// Order directions.
const (
	OrderAsc  OrderByDir = "ASC"
	OrderDesc OrderByDir = "DESC"
)

// OrderBy is one (field, direction) ordering pair.
type OrderBy struct {
	Field string
	Dir   OrderByDir
}

// Pager bounds the size and starting point of a result set.
type Pager struct {
	Limit  int
	Offset int
}

// ClassSearch is a complete class-level query specification: the class to
// search plus an optional filter, ordering, and pager. A ClassSearch is
// built by the caller and consumed by a single Translator call.
type ClassSearch struct {
	Class   string
	Filter  map[string]any
	OrderBy []OrderBy
	Pager   *Pager
}

// Filter operands accepted in an explicit comparison object.
var knownOperands = map[string]bool{
	"IS":     true,
	"IS NOT": true,
	"<":      true,
	"<=":     true,
	">":      true,
	">=":     true,
	"<>":     true,
	"!=":     true,
}

// compare is one comparison leaf of a predicate tree: a field, an
// operator, and either a single literal or an IN list.
type compare struct {
	field string
	op    string
	value any
	list  []any
}

// pred is a conjunction tree of comparisons. Only AND composition exists
// in the filter grammar, so a branch is simply a list of children.
type pred struct {
	leaf *compare
	and  []pred
}

// stmt is the compiled internal form of one SELECT statement. It is
// rendered to SQL text in a single step so the compiler's output can be
// tested without a database.
type stmt struct {
	selectList []string
	table      string
	where      *pred
	orderBy    []OrderBy
	pager      *Pager
}

// Compile turns a ClassSearch into a single SELECT statement. Every
// field named by the filter and ordering is validated against the class
// before any SQL text is produced.
func Compile(reg *idl.Registry, search ClassSearch) (string, error) {
	class := reg.Class(search.Class)
	if class == nil {
		return "", fmt.Errorf("%w: %q", types.ErrNoSuchClass, search.Class)
	}
	if class.Table == "" {
		return "", fmt.Errorf("%w: %q", types.ErrNoTableForClass, search.Class)
	}

	st := stmt{
		selectList: selectFields(class),
		table:      class.Table,
		orderBy:    search.OrderBy,
		pager:      search.Pager,
	}

	where, err := compileFilter(class, search.Filter)
	if err != nil {
		return "", err
	}
	st.where = where

	if err := validateOrderBy(class, search.OrderBy); err != nil {
		return "", err
	}

	return st.render(), nil
}

// CompileSelect returns the comma-separated select list for a class:
// its non-virtual field names in sorted order. The row mapper consumes
// columns in this exact order.
func CompileSelect(class *idl.Class) string {
	return strings.Join(selectFields(class), ", ")
}

// CompileFilter compiles a filter specification into a WHERE clause,
// without the WHERE keyword. An empty filter compiles to "".
func CompileFilter(class *idl.Class, filter map[string]any) (string, error) {
	where, err := compileFilter(class, filter)
	if err != nil {
		return "", err
	}
	if where == nil {
		return "", nil
	}
	var sb strings.Builder
	where.render(&sb)
	return sb.String(), nil
}

// CompileOrderBy renders an ORDER BY clause. An empty list renders "".
func CompileOrderBy(class *idl.Class, orderBy []OrderBy) (string, error) {
	if err := validateOrderBy(class, orderBy); err != nil {
		return "", err
	}
	return renderOrderBy(orderBy), nil
}

// CompilePager renders a LIMIT/OFFSET clause. A nil pager renders "".
func CompilePager(pager *Pager) string {
	if pager == nil {
		return ""
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", pager.Limit, pager.Offset)
}

func selectFields(class *idl.Class) []string {
	fields := class.RealFields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// realField resolves a filter or order-by field name against the class,
// rejecting names the class does not declare and virtual fields that
// have no backing column.
func realField(class *idl.Class, name string) (*idl.Field, error) {
	field, ok := class.Fields[name]
	if !ok || field.Virtual {
		return nil, fmt.Errorf("%w: %s.%s", types.ErrUnknownField, class.Name, name)
	}
	return field, nil
}

// compileFilter builds the predicate tree for a filter specification.
// Field names iterate in sorted order so the same filter always compiles
// to the same SQL text.
func compileFilter(class *idl.Class, filter map[string]any) (*pred, error) {
	if len(filter) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(filter))
	for name := range filter {
		names = append(names, name)
	}
	sort.Strings(names)

	root := pred{and: make([]pred, 0, len(names))}
	for _, name := range names {
		if _, err := realField(class, name); err != nil {
			return nil, err
		}
		sub, err := compileFieldFilter(name, filter[name])
		if err != nil {
			return nil, err
		}
		root.and = append(root.and, sub...)
	}
	return &root, nil
}

// compileFieldFilter compiles the sub-query for a single field.
func compileFieldFilter(field string, spec any) ([]pred, error) {
	switch v := spec.(type) {
	case nil, bool:
		return []pred{{leaf: &compare{field: field, op: "IS", value: v}}}, nil
	case string, float64, int, int64:
		return []pred{{leaf: &compare{field: field, op: "=", value: v}}}, nil
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf(
				"%w: empty membership list for field %q", types.ErrInvalidFilterShape, field)
		}
		for _, item := range v {
			if !isLiteral(item) {
				return nil, fmt.Errorf(
					"%w: non-literal in membership list for field %q",
					types.ErrInvalidFilterShape, field)
			}
		}
		return []pred{{leaf: &compare{field: field, op: "IN", list: v}}}, nil
	case map[string]any:
		return compileComparisons(field, v)
	default:
		return nil, fmt.Errorf(
			"%w: unsupported value %T for field %q", types.ErrInvalidFilterShape, spec, field)
	}
}

// compileComparisons compiles an explicit comparison object. Multiple
// operands on one field are allowed and AND together, so a bounded range
// can be expressed in one filter entry. Operands iterate in sorted order
// for deterministic output.
func compileComparisons(field string, comps map[string]any) ([]pred, error) {
	if len(comps) == 0 {
		return nil, fmt.Errorf(
			"%w: empty comparison object for field %q", types.ErrInvalidFilterShape, field)
	}

	ops := make([]string, 0, len(comps))
	for op := range comps {
		ops = append(ops, op)
	}
	sort.Strings(ops)

	out := make([]pred, 0, len(ops))
	for _, op := range ops {
		normalized := strings.ToUpper(strings.TrimSpace(op))
		if !knownOperands[normalized] {
			return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedOperand, op)
		}
		value := comps[op]
		if !isLiteral(value) {
			return nil, fmt.Errorf(
				"%w: non-literal comparison value for field %q",
				types.ErrInvalidFilterShape, field)
		}
		out = append(out, pred{leaf: &compare{field: field, op: normalized, value: value}})
	}
	return out, nil
}

func isLiteral(v any) bool {
	switch v.(type) {
	case nil, bool, string, float64, int, int64:
		return true
	default:
		return false
	}
}

// render produces the final SQL text from the internal representation.
func (s *stmt) render() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(s.selectList, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(s.table)

	if s.where != nil {
		sb.WriteString(" WHERE ")
		s.where.render(&sb)
	}
	if clause := renderOrderBy(s.orderBy); clause != "" {
		sb.WriteString(" ")
		sb.WriteString(clause)
	}
	if clause := CompilePager(s.pager); clause != "" {
		sb.WriteString(" ")
		sb.WriteString(clause)
	}
	return sb.String()
}

func (p *pred) render(sb *strings.Builder) {
	if p.leaf != nil {
		p.leaf.render(sb)
		return
	}
	for i := range p.and {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		p.and[i].render(sb)
	}
}

func (c *compare) render(sb *strings.Builder) {
	sb.WriteString(c.field)
	sb.WriteString(" ")
	sb.WriteString(c.op)
	sb.WriteString(" ")
	if c.op == "IN" {
		sb.WriteString("(")
		for i, item := range c.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(sqlLiteral(item))
		}
		sb.WriteString(")")
		return
	}
	sb.WriteString(sqlLiteral(c.value))
}

func renderOrderBy(orderBy []OrderBy) string {
	if len(orderBy) == 0 {
		return ""
	}
	parts := make([]string, len(orderBy))
	for i, ob := range orderBy {
		parts[i] = ob.Field + " " + string(ob.Dir)
	}
	return "ORDER BY " + strings.Join(parts, ", ")
}

func validateOrderBy(class *idl.Class, orderBy []OrderBy) error {
	for _, ob := range orderBy {
		if _, err := realField(class, ob.Field); err != nil {
			return err
		}
		if ob.Dir != OrderAsc && ob.Dir != OrderDesc {
			return fmt.Errorf(
				"%w: bad order direction %q", types.ErrInvalidFilterShape, ob.Dir)
		}
	}
	return nil
}

// sqlLiteral renders one literal value. Embedded quote characters in
// strings are doubled; this is the sole injection defense for literal
// values, since this layer uses no parameter binding. Callers must have
// checked isLiteral first.
func sqlLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		// Unreachable: isLiteral gates every value before rendering.
		return "NULL"
	}
}
