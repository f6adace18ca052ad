package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel с плейсхолдерами postgres ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

// Overlaps условие пересечения интервала [startCol, endCol) с [from, to) (открытые границы)
func Overlaps(startCol, endCol string, from, to interface{}) squirrel.And {
	return squirrel.And{
		squirrel.Lt{startCol: to},
		squirrel.Gt{endCol: from},
	}
}
