package plotitem

// From converts a loosely typed value into an item: an Item is returned
// as-is, a string becomes a Func, and anything else becomes Data.
// created reports whether the caller now owns a new item.
func From(v any) (item Item, created bool, err error) {
	switch x := v.(type) {
	case Item:
		return x, false, nil
	case string:
		f, err := NewFunc(x)
		if err != nil {
			return nil, false, err
		}
		return f, true, nil
	default:
		d, err := NewData(x)
		if err != nil {
			return nil, false, err
		}
		return d, true, nil
	}
}
