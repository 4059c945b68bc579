package seogen

// CollisionPolicy decides what BuildIndex does when two records share a slug.
type CollisionPolicy int

const (
	// FirstMatchWins keeps the earliest record for a slug. Later records
	// with the same slug are unreachable and reported as collisions.
	FirstMatchWins CollisionPolicy = iota

	// RejectCollisions fails the build with ECONFLICT.
	RejectCollisions
)

// Collision describes a record shadowed by an earlier record with the same slug.
type Collision struct {
	Slug     string `json:"slug"`
	Kept     int    `json:"kept"`     // row position of the reachable record
	Shadowed int    `json:"shadowed"` // row position of the unreachable record
	Title    string `json:"title"`    // title of the unreachable record
}

// Index maps slugs to records. It is built once per ingestion and never
// modified afterwards, so it is safe for concurrent reads.
type Index struct {
	records    map[string]*Record
	positions  map[string]int
	slugs      []string
	collisions []Collision
}

// BuildIndex slugifies every record title and indexes the records in order.
func BuildIndex(records []*Record, policy CollisionPolicy) (*Index, error) {
	idx := &Index{
		records:   make(map[string]*Record, len(records)),
		positions: make(map[string]int, len(records)),
		slugs:     make([]string, 0, len(records)),
	}

	for i, r := range records {
		slug := Slugify(r.Title)
		if kept, ok := idx.positions[slug]; ok {
			if policy == RejectCollisions {
				return nil, Errorf(ECONFLICT, "rows %d and %d share slug %q", kept+1, i+1, slug)
			}
			idx.collisions = append(idx.collisions, Collision{
				Slug:     slug,
				Kept:     kept,
				Shadowed: i,
				Title:    r.Title,
			})
			continue
		}
		idx.records[slug] = r
		idx.positions[slug] = i
		idx.slugs = append(idx.slugs, slug)
	}

	return idx, nil
}

// Lookup returns the record for an exact slug.
// Returns ENOTFOUND if no record has that slug.
func (idx *Index) Lookup(slug string) (*Record, error) {
	if idx != nil {
		if r, ok := idx.records[slug]; ok {
			return r, nil
		}
	}
	return nil, Errorf(ENOTFOUND, "page %q not found", slug)
}

// Slugs returns the reachable slugs in table order.
func (idx *Index) Slugs() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.slugs...)
}

// Collisions returns the records shadowed during the build.
func (idx *Index) Collisions() []Collision {
	if idx == nil {
		return nil
	}
	return append([]Collision(nil), idx.collisions...)
}

// Len returns the number of reachable records.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.slugs)
}
