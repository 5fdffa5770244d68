package d2interface

// Module is a host module as seen by the resolver: its runtime load base and
// its export table. Ordinal returns the absolute address of an export.
type Module interface {
	Base() uintptr
	Ordinal(ord uint16) (uintptr, bool)
}

type resolvedField struct {
	spec    FieldSpec
	addr    uintptr
	present bool
}

// Resolution is a table bound to one module. It is immutable.
type Resolution struct {
	table  string
	fields []resolvedField
	index  map[string]int
}

// ResolvedField is a diagnostic view of one resolved field.
type ResolvedField struct {
	FieldSpec
	Addr    uintptr
	Present bool
}

// Resolve maps every field of t to an absolute address in m. It reads no
// host memory. If any ordinal is missing from m's exports, Resolve returns
// an *UnresolvedSymbolError for that field and no Resolution.
func Resolve(t Table, m Module) (*Resolution, error) {
	base := m.Base()
	r := &Resolution{
		table:  t.Name,
		fields: make([]resolvedField, 0, len(t.Fields)),
		index:  make(map[string]int, len(t.Fields)),
	}
	for _, f := range t.Fields {
		rf := resolvedField{spec: f}
		switch f.Address.kind {
		case AddrOffset:
			rf.addr = base + uintptr(f.Address.offset)
			rf.present = true
		case AddrOrdinal:
			addr, ok := m.Ordinal(f.Address.ordinal)
			if !ok {
				return nil, &UnresolvedSymbolError{Table: t.Name, Field: f.Name, Ordinal: f.Address.ordinal}
			}
			rf.addr = addr
			rf.present = true
		}
		r.index[f.Name] = len(r.fields)
		r.fields = append(r.fields, rf)
	}
	return r, nil
}

func (r *Resolution) Table() string {
	return r.table
}

func (r *Resolution) Fields() []ResolvedField {
	out := make([]ResolvedField, len(r.fields))
	for i, f := range r.fields {
		out[i] = ResolvedField{FieldSpec: f.spec, Addr: f.addr, Present: f.present}
	}
	return out
}

func (r *Resolution) field(name string) (resolvedField, bool) {
	i, ok := r.index[name]
	if !ok {
		return resolvedField{}, false
	}
	return r.fields[i], true
}
