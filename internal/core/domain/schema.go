package domain

// Schema identifiers.
const (
	SchemaConfig = "loru-config"
	SchemaBOM    = "loru-bom"
)

// DefaultSchemaURL is the upstream schema host used when schema_url is unset.
const DefaultSchemaURL = "https://raw.githubusercontent.com/loru-dev/loru/main/definitions"

// SchemaLatest is used when a member pins no schema version.
const SchemaLatest = "latest"

// SchemaRequest identifies a schema document to fetch.
type SchemaRequest struct {
	Schema  string
	Version string
	// MetaFile is the config file the request originates from.
	MetaFile string
}

// SchemaAction selects what the schemas command does after fetching.
type SchemaAction string

const (
	// SchemaFetch only populates the cache.
	SchemaFetch SchemaAction = "fetch"
	// SchemaValidate checks formatting and validates configs against the schema.
	SchemaValidate SchemaAction = "validate"
	// SchemaFormat formats configs and validates them against the schema.
	SchemaFormat SchemaAction = "fmt"
)
