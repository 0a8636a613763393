package domain

// EntityKind names the shared entities that are resolved by slug.
type EntityKind int

const (
	KindCreator EntityKind = iota + 1
	KindGenre
)

func (k EntityKind) String() string {
	switch k {
	case KindCreator:
		return "creator"
	case KindGenre:
		return "genre"
	default:
		return "unknown"
	}
}
