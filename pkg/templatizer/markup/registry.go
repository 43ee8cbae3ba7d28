package markup

// Ids of the reserved tag names. NewRegistry registers them first, in this
// order, so every registry agrees on them.
const (
	TagIf = iota
	TagLoop
	TagDoLoop
	TagInclude
)

var reservedTags = []string{KeywordIf, KeywordLoop, KeywordDoLoop, KeywordInclude}

// Registry hands out a stable id for every distinct tag name seen during
// compilation. It is append-only and not safe for concurrent use.
type Registry struct {
	names []string
	index map[string]int
}

// NewRegistry returns a registry with the reserved names pre-registered.
func NewRegistry() *Registry {
	r := &Registry{index: make(map[string]int)}
	for _, name := range reservedTags {
		r.Lookup(name)
	}
	return r
}

// Lookup returns the id of name, registering it if it was not seen before.
func (r *Registry) Lookup(name string) int {
	if id, ok := r.index[name]; ok {
		return id
	}
	id := len(r.names)
	r.names = append(r.names, name)
	r.index[name] = id
	return id
}

// Name returns the tag name registered under id.
func (r *Registry) Name(id int) (string, bool) {
	if id < 0 || id >= len(r.names) {
		return "", false
	}
	return r.names[id], true
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return len(r.names)
}

// Directive classifies a tag id.
func (r *Registry) Directive(id int) Directive {
	return directiveForTag(id)
}

// IsReserved reports whether id belongs to a name that is never emitted as
// literal markup.
func (r *Registry) IsReserved(id int) bool {
	return id >= 0 && id < len(reservedTags)
}

func directiveForTag(id int) Directive {
	switch id {
	case TagIf:
		return DirectiveIf
	case TagLoop:
		return DirectiveLoop
	case TagDoLoop:
		return DirectiveDoLoop
	default:
		return DirectiveNone
	}
}
