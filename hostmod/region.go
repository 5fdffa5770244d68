package hostmod

// region is one span of the host address space as reported by the loader.
// ok is set when the span is committed with an accepted protection.
type region struct {
	base, size uintptr
	ok         bool
}

// covered reports whether every byte of [addr, addr+size) lies in regions
// that query reports ok. Empty ranges and ranges that wrap the address space
// are rejected.
func covered(addr, size uintptr, query func(uintptr) (region, error)) bool {
	if size == 0 || addr+size < addr {
		return false
	}
	end := addr + size
	for cur := addr; cur < end; {
		r, err := query(cur)
		if err != nil || !r.ok || r.base > cur {
			return false
		}
		next := r.base + r.size
		if next < r.base {
			// runs to the top of the address space
			return true
		}
		if next <= cur {
			return false
		}
		cur = next
	}
	return true
}
