package pkgmeta

import "fmt"

// Metadata is a tagged value: exactly one of Text, Size, Timestamp, List or
// Path is meaningful, selected by Kind.
type Metadata struct {
	Kind Shape

	text string
	size uint64
	ts   int64
	list []string
	path string
}

// Text constructs a scalar-text Metadata value.
func Text(v string) Metadata { return Metadata{Kind: ShapeText, text: v} }

// Size constructs a non-negative integer Metadata value.
func Size(v uint64) Metadata { return Metadata{Kind: ShapeSize, size: v} }

// Timestamp constructs a seconds-since-epoch Metadata value.
func Timestamp(v int64) Metadata { return Metadata{Kind: ShapeTimestamp, ts: v} }

// List constructs an ordered, possibly-empty Metadata value.
func List(v []string) Metadata { return Metadata{Kind: ShapeList, list: v} }

// Path constructs a relative-path Metadata value.
func Path(v string) Metadata { return Metadata{Kind: ShapePath, path: v} }

// AsText returns the scalar text value, panicking if Kind is not ShapeText.
func (m Metadata) AsText() string {
	if m.Kind != ShapeText {
		panic(fmt.Sprintf("pkgmeta: AsText on %v metadata", m.Kind))
	}
	return m.text
}

// AsSize returns the integer value, panicking if Kind is not ShapeSize.
func (m Metadata) AsSize() uint64 {
	if m.Kind != ShapeSize {
		panic(fmt.Sprintf("pkgmeta: AsSize on %v metadata", m.Kind))
	}
	return m.size
}

// AsTimestamp returns the epoch-seconds value, panicking if Kind is not
// ShapeTimestamp.
func (m Metadata) AsTimestamp() int64 {
	if m.Kind != ShapeTimestamp {
		panic(fmt.Sprintf("pkgmeta: AsTimestamp on %v metadata", m.Kind))
	}
	return m.ts
}

// AsList returns the ordered values, panicking if Kind is not ShapeList.
func (m Metadata) AsList() []string {
	if m.Kind != ShapeList {
		panic(fmt.Sprintf("pkgmeta: AsList on %v metadata", m.Kind))
	}
	return m.list
}

// AsPath returns the path string, panicking if Kind is not ShapePath.
func (m Metadata) AsPath() string {
	if m.Kind != ShapePath {
		panic(fmt.Sprintf("pkgmeta: AsPath on %v metadata", m.Kind))
	}
	return m.path
}

// Lines renders the underlying datum as the value lines a desc section
// emits for it: one line for scalars, one per element for a List.
func (m Metadata) Lines() []string {
	switch m.Kind {
	case ShapeText:
		return []string{m.text}
	case ShapeSize:
		return []string{fmt.Sprintf("%d", m.size)}
	case ShapeTimestamp:
		return []string{fmt.Sprintf("%d", m.ts)}
	case ShapePath:
		return []string{m.path}
	case ShapeList:
		return m.list
	default:
		return nil
	}
}

// FromValues builds the Metadata value for entry from its accumulated
// value lines, coercing to entry's canonical Shape. This is the one
// (Entry, values) -> Metadata coercion table, used both when parsing
// .PKGINFO and when parsing desc files.
func FromValues(entry Entry, values []string) (Metadata, error) {
	shape, ok := ShapeOf(entry)
	if !ok {
		shape = ShapeText
	}

	switch shape {
	case ShapeList:
		return List(append([]string(nil), values...)), nil
	case ShapePath:
		if len(values) == 0 {
			return Path(""), nil
		}
		return Path(values[0]), nil
	default:
		var v string
		if len(values) > 0 {
			v = values[0]
		}
		switch shape {
		case ShapeSize:
			var n uint64
			if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
				return Metadata{}, fmt.Errorf("pkgmeta: %s is not a size: %q", entry, v)
			}
			return Size(n), nil
		case ShapeTimestamp:
			var n int64
			if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
				return Metadata{}, fmt.Errorf("pkgmeta: %s is not a timestamp: %q", entry, v)
			}
			return Timestamp(n), nil
		default:
			return Text(v), nil
		}
	}
}
