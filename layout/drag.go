package layout

// DragState is the builder's drag machine: idle until Start, back to idle
// on End. Only the id of the single dragged node is tracked; there is no
// multi-select drag.
type DragState struct {
	dragging bool
	nodeID   string
}

// Start enters the dragging state for the given node id.
func (d *DragState) Start(id string) {
	d.dragging = true
	d.nodeID = id
}

// End returns to idle and reports the id that was being dragged.
func (d *DragState) End() string {
	id := d.nodeID
	d.dragging = false
	d.nodeID = ""
	return id
}

// Dragging reports whether a drag is in progress.
func (d *DragState) Dragging() bool {
	return d.dragging
}

// NodeID returns the id of the node being dragged, or "" when idle.
func (d *DragState) NodeID() string {
	return d.nodeID
}

// DropSection applies a section drag: the dragged section lands exactly at
// the target section's index and the sections in between shift (array-move
// semantics, no before/after distinction). Dropping a section onto itself
// or onto a target that no longer resolves is a silent no-op.
func DropSection(sections []Section, dragID, targetID string) []Section {
	from := sectionIndex(sections, dragID)
	to := sectionIndex(sections, targetID)
	if from < 0 || to < 0 || from == to {
		return sections
	}
	return ReorderSections(sections, from, to)
}

// TargetColumn records where a picker was opened: the column that receives
// the picked module or block. A stale target (the column was deleted while
// the picker was open) simply fails to resolve and the pick is dropped.
type TargetColumn struct {
	SectionID string `json:"sectionId"`
	RowID     string `json:"rowId"`
	ColumnID  string `json:"columnId"`
}

// Resolves reports whether the target still addresses a column in sections.
func (t TargetColumn) Resolves(sections []Section) bool {
	si, _, _ := columnPath(sections, t.SectionID, t.RowID, t.ColumnID)
	return si >= 0
}

// Place appends the module to the target column, assigning a fresh id.
// An unresolvable target returns sections unchanged.
func (t TargetColumn) Place(sections []Section, g *Generator, m Module) []Section {
	return AddModule(sections, g, t.SectionID, t.RowID, t.ColumnID, m)
}
