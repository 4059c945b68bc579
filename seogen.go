// Package seogen generates search-engine pages from a table of content records.
// It ingests one record per page, indexes records by a slug derived from the
// title, and for a requested slug derives SEO metadata and a schema.org
// JSON-LD document shaped by the detected content type.
//
// This package contains domain types, interfaces and the pure derivation
// logic following Ben Johnson's Standard Package Layout. Implementations
// that touch the outside world live in subdirectories named after their
// primary dependency (e.g., sqlite/, redis/, http/).
package seogen
