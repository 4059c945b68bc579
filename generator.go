package seogen

// Compile-time interface verification.
var (
	_ MetadataDeriver = (*Generator)(nil)
	_ SchemaGenerator = (*Generator)(nil)
)

// Generator derives metadata and structured data with a fixed configuration.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	Config Config
}

// NewGenerator creates a new Generator.
func NewGenerator(cfg Config) *Generator {
	return &Generator{Config: cfg}
}

// DeriveMetadata computes SEO metadata for a record.
func (g *Generator) DeriveMetadata(r *Record) (*Metadata, error) {
	return DeriveMetadata(r, g.Config)
}

// GenerateSchema builds structured data for a record served at url.
func (g *Generator) GenerateSchema(r *Record, url string) (StructuredData, error) {
	return GenerateSchema(r, url, g.Config)
}
