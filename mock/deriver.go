package mock

import "github.com/fwojciec/seogen"

// Compile-time interface verification.
var (
	_ seogen.MetadataDeriver = (*MetadataDeriver)(nil)
	_ seogen.SchemaGenerator = (*SchemaGenerator)(nil)
)

// MetadataDeriver is a mock implementation of seogen.MetadataDeriver.
type MetadataDeriver struct {
	DeriveMetadataFn func(r *seogen.Record) (*seogen.Metadata, error)
}

func (d *MetadataDeriver) DeriveMetadata(r *seogen.Record) (*seogen.Metadata, error) {
	return d.DeriveMetadataFn(r)
}

// SchemaGenerator is a mock implementation of seogen.SchemaGenerator.
type SchemaGenerator struct {
	GenerateSchemaFn func(r *seogen.Record, url string) (seogen.StructuredData, error)
}

func (g *SchemaGenerator) GenerateSchema(r *seogen.Record, url string) (seogen.StructuredData, error) {
	return g.GenerateSchemaFn(r, url)
}
