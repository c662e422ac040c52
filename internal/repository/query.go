package repository

import "github.com/Masterminds/squirrel"

// pageQuery builds a row-ordered LIMIT/OFFSET select over table.
func pageQuery(table, columns string, limit, offset int) (string, []any, error) {
	return squirrel.Select(columns).
		From(table).
		OrderBy("id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
