package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// RowsToNode converts rows to Shape's unified AST.
//
// The result is an *ast.ArrayDataNode of rows, each row an *ast.ArrayDataNode
// of *ast.LiteralNode string fields.
//
// Example:
//
//	rows, _ := csv.ParseCSV("a,b\n1,2", csv.DefaultOptions())
//	node := csv.RowsToNode(rows)
func RowsToNode(rows []Row) *ast.ArrayDataNode {
	pos := ast.ZeroPosition()
	records := make([]ast.SchemaNode, len(rows))
	for i, row := range rows {
		records[i] = rowToNode(row, pos)
	}
	return ast.NewArrayDataNode(records, pos)
}

func rowToNode(row Row, pos ast.Position) *ast.ArrayDataNode {
	fields := make([]ast.SchemaNode, len(row))
	for i, field := range row {
		fields[i] = ast.NewLiteralNode(field, pos)
	}
	return ast.NewArrayDataNode(fields, pos)
}

// Node converts the result to Shape's unified AST.
// Captured headers, if any, come first, followed by the data rows.
func (r Result) Node() *ast.ArrayDataNode {
	if len(r.Headers) == 0 {
		return RowsToNode(r.Rows)
	}
	rows := make([]Row, 0, len(r.Rows)+1)
	rows = append(rows, r.Headers)
	rows = append(rows, r.Rows...)
	return RowsToNode(rows)
}

// NodeToRows converts an AST produced by RowsToNode back to rows.
//
// Non-string literal values are formatted with %v. Any other node shape
// returns an error wrapping ErrUnsupportedNode.
func NodeToRows(node ast.SchemaNode) ([]Row, error) {
	file, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("%w: file is %T", ErrUnsupportedNode, node)
	}

	elements := file.Elements()
	rows := make([]Row, len(elements))
	for i, elem := range elements {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("%w: row %d is %T", ErrUnsupportedNode, i, elem)
		}
		fields := record.Elements()
		row := make(Row, len(fields))
		for j, f := range fields {
			lit, ok := f.(*ast.LiteralNode)
			if !ok {
				return nil, fmt.Errorf("%w: row %d field %d is %T", ErrUnsupportedNode, i, j, f)
			}
			if s, ok := lit.Value().(string); ok {
				row[j] = s
			} else {
				row[j] = fmt.Sprintf("%v", lit.Value())
			}
		}
		rows[i] = row
	}
	return rows, nil
}
