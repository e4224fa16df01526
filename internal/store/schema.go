package store

import "strings"

// tableName is the single logical table owned by the store
const tableName = "media"

// ColumnType is the declared scalar type of a schema column
type ColumnType int

const (
	TypeInteger ColumnType = iota
	TypeText
)

func (t ColumnType) String() string {
	if t == TypeInteger {
		return "INTEGER"
	}
	return "TEXT"
}

// Column describes one schema column. ddl overrides the plain type
// declaration for columns with constraints or defaults.
type Column struct {
	Name string
	Type ColumnType
	ddl  string
}

// columns is the authoritative, ordered schema of the media table
var columns = []Column{
	{Name: "id", Type: TypeInteger, ddl: "INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT"},
	{Name: "protection", Type: TypeInteger},
	{Name: "deletion_mark", Type: TypeInteger},

	{Name: "title", Type: TypeText},

	{Name: "author", Type: TypeText},
	{Name: "series", Type: TypeText},
	{Name: "series_index", Type: TypeText},
	{Name: "category", Type: TypeText},

	{Name: "brand", Type: TypeText},
	{Name: "publisher", Type: TypeText},
	{Name: "company", Type: TypeText},
	{Name: "club", Type: TypeText},

	{Name: "description", Type: TypeText},
	{Name: "release_date", Type: TypeText},
	{Name: "price", Type: TypeText},
	{Name: "product_number", Type: TypeText},
	{Name: "jancode", Type: TypeText},

	{Name: "media_type", Type: TypeText},

	{Name: "rating", Type: TypeText},

	{Name: "still_width", Type: TypeText},
	{Name: "still_height", Type: TypeText},

	{Name: "video_codec_name", Type: TypeText},
	{Name: "video_width", Type: TypeText},
	{Name: "video_height", Type: TypeText},

	{Name: "audio_codec_name", Type: TypeText},
	{Name: "audio_sample_rate", Type: TypeText},

	{Name: "duration", Type: TypeText},

	{Name: "save_dir_path", Type: TypeText},
	{Name: "file_name", Type: TypeText},
	{Name: "file_hash_algorithm", Type: TypeText},
	{Name: "file_hash_data", Type: TypeText},

	{Name: "updated_at", Type: TypeText, ddl: "TEXT NOT NULL DEFAULT (DATETIME('now', 'localtime'))"},
	{Name: "created_at", Type: TypeText, ddl: "TEXT NOT NULL DEFAULT (DATETIME('now', 'localtime'))"},
}

// managedColumns are set by the store, never by callers
var managedColumns = map[string]bool{
	"id":         true,
	"updated_at": true,
	"created_at": true,
}

// columnTypes is the name -> type lookup derived from columns
var columnTypes = func() map[string]ColumnType {
	m := make(map[string]ColumnType, len(columns))
	for _, c := range columns {
		m[c.Name] = c.Type
	}
	return m
}()

// columnNames is the ordered name list derived from columns
var columnNames = func() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}()

// createTableSQL builds the idempotent DDL for the media table, its
// dedup index and the updated_at refresh trigger.
func createTableSQL() string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		if c.ddl != "" {
			defs[i] = c.Name + " " + c.ddl
		} else {
			defs[i] = c.Name + " " + c.Type.String()
		}
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + tableName + " (\n  ")
	b.WriteString(strings.Join(defs, ",\n  "))
	b.WriteString("\n);\n")

	// Non-empty content hashes are the dedup key; a constraint violation
	// on insert doubles as the duplicate signal under concurrency
	b.WriteString("CREATE UNIQUE INDEX IF NOT EXISTS idx_" + tableName + "_file_hash " +
		"ON " + tableName + "(file_hash_data) WHERE file_hash_data <> '';\n")

	b.WriteString("CREATE INDEX IF NOT EXISTS idx_" + tableName + "_media_type " +
		"ON " + tableName + "(media_type);\n")

	b.WriteString("CREATE TRIGGER IF NOT EXISTS trg_" + tableName + "_updated_at " +
		"AFTER UPDATE ON " + tableName + " " +
		"BEGIN " +
		"UPDATE " + tableName + " SET updated_at = DATETIME('now', 'localtime') " +
		"WHERE rowid = NEW.rowid; " +
		"END;\n")

	return b.String()
}
