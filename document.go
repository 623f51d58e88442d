package cfgkv

// Len returns the number of entries.
func (d Document) Len() int { return len(d) }

// Lookup returns the value of the first entry whose key and kind both match.
func (d Document) Lookup(kind Kind, key string) (Value, bool) {
	for _, e := range d {
		if e.Key == key && e.Kind() == kind {
			return e.Value, true
		}
	}
	return nil, false
}

// Primitive returns the first primitive entry named key.
func (d Document) Primitive(key string) (Primitive, bool) {
	v, ok := d.Lookup(KindPrimitive, key)
	if !ok {
		return Primitive{}, false
	}
	return v.(Primitive), true
}

// Array returns the first array entry named key.
func (d Document) Array(key string) (Array, bool) {
	v, ok := d.Lookup(KindArray, key)
	if !ok {
		return nil, false
	}
	return v.(Array), true
}

// Keys returns the entry keys in document order, duplicates included.
func (d Document) Keys() []string {
	keys := make([]string, len(d))
	for i, e := range d {
		keys[i] = e.Key
	}
	return keys
}

// Release drops every entry so the tree can be reclaimed. It is safe to call
// on a nil pointer and more than once.
func (d *Document) Release() {
	if d == nil {
		return
	}
	for i := range *d {
		(*d)[i] = Entry{}
	}
	*d = nil
}
