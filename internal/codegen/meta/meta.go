package meta

// Metadata holds everything loaded for one generation run.
// Shared between the generator orchestrator and the PHP emitter.
type Metadata struct {
	Table        *Table   // wrappable functions, keyed by name
	Excluded     []string // names that are never wrapped
	SpecialCases []string // extra names for the list outputs only
	Skipped      []string // table records that do not use a failure sentinel
}

// Wrappable returns the table entries that are not excluded, in table order.
func (m *Metadata) Wrappable() []FunctionSpec {
	if m.Table == nil {
		return nil
	}
	return m.Table.Without(m.Excluded)
}

// Eligible returns the sorted eligible-name list for this run.
func (m *Metadata) Eligible() []string {
	var specs []FunctionSpec
	if m.Table != nil {
		specs = m.Table.Specs()
	}
	return EligibleNames(specs, m.SpecialCases, m.Excluded)
}
