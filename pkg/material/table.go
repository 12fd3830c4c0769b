package material

// ID references a material stored in a Table.
type ID int32

// Table owns every material of a scene. Primitives refer to entries by ID so
// the geometry arena holds no pointers.
type Table struct {
	materials []Material
}

// NewTable creates an empty material table
func NewTable() *Table {
	return &Table{}
}

// Add stores a material and returns its ID
func (t *Table) Add(m Material) ID {
	t.materials = append(t.materials, m)
	return ID(len(t.materials) - 1)
}

// Get returns the material for id. The table must not be modified while
// rendering, so the returned pointer is safe to share between workers.
func (t *Table) Get(id ID) *Material {
	return &t.materials[id]
}

// Len returns the number of materials in the table
func (t *Table) Len() int {
	return len(t.materials)
}
