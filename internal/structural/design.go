// Package structural sizes the primary structural members of the building
// (one beam, one column and one isolated footing) with simplified
// single-case formulas and fixed M20/Fe415 material assumptions.
package structural

// Design collects the three sized members.
type Design struct {
	Beam    BeamDesign    `json:"beam"`
	Column  ColumnDesign  `json:"column"`
	Footing FootingDesign `json:"footing"`
}

// Adequate reports whether every member design is valid.
func (d Design) Adequate() bool {
	return d.Beam.IsAdequate && d.Column.IsAdequate && d.Footing.IsAdequate
}

// DesignMembers sizes the beam over the given span, the column for the
// column load and the footing under it.
func DesignMembers(span, liveLoad, columnLoadKN, height, soilCapacity float64) Design {
	return Design{
		Beam:    DesignBeam(span, liveLoad, DefaultDeadLoad),
		Column:  DesignColumn(columnLoadKN, height),
		Footing: DesignFooting(columnLoadKN, soilCapacity),
	}
}
