package repos

import sq "github.com/Masterminds/squirrel"

const devicesTable = "devices"

// createDevicesTable is valid for both SQLite and Postgres.
const createDevicesTable = `CREATE TABLE IF NOT EXISTS devices (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	kind TEXT NOT NULL,
	record TEXT NOT NULL,
	is_on BOOLEAN
)`

var recordColumns = []string{"position", "id", "kind", "record", "is_on"}

func selectRecords(builder sq.StatementBuilderType) sq.SelectBuilder {
	return builder.Select(recordColumns...).
		From(devicesTable).
		OrderBy("position")
}

// insertRecords returns nil when there is nothing to insert.
func insertRecords(builder sq.StatementBuilderType, rows []recordRow) *sq.InsertBuilder {
	if len(rows) == 0 {
		return nil
	}

	insert := builder.Insert(devicesTable).Columns(recordColumns...)
	for _, row := range rows {
		insert = insert.Values(row.Position, row.ID, row.Kind, row.Record, row.On != nil && *row.On)
	}

	return &insert
}
