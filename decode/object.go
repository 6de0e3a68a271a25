package decode

// Fields maps an object key to the visitor for its value. Returning nil
// discards the value, which is how unknown members are ignored.
type Fields func(key string) Visitor

// Object decodes a JSON object by routing each member through fields.
// Members named in required must be present (null counts as present).
func Object(fields Fields, required ...string) Visitor {
	return ObjectThen(fields, nil, required...)
}

// ObjectThen is like Object and calls then after the required members have
// been checked.
func ObjectThen(fields Fields, then func() error, required ...string) Visitor {
	return &objectVisitor{Base: Base{"object"}, fields: fields, then: then, required: required}
}

type objectVisitor struct {
	Base
	fields   Fields
	then     func() error
	required []string
}

func (o *objectVisitor) Object() (ObjectVisitor, error) {
	return &objectState{o: o, seen: make([]bool, len(o.required))}, nil
}

type objectState struct {
	o    *objectVisitor
	seen []bool
}

func (s *objectState) Key(name string) Visitor {
	for i, r := range s.o.required {
		if r == name {
			s.seen[i] = true
		}
	}
	return s.o.fields(name)
}

func (s *objectState) Finish() error {
	for i, ok := range s.seen {
		if !ok {
			return MissingFieldError(s.o.required[i])
		}
	}
	if s.o.then != nil {
		return s.o.then()
	}
	return nil
}

// Union decodes an object discriminated by the string member named tag.
//
// Member order in a JSON object is not guaranteed, so the object is first
// captured as a tree; once the tag is known the tree is walked into the
// visitor returned by variant. When variant returns nil the tag is unknown:
// unknown is called with the raw object if non-nil (an open union), otherwise
// decoding fails (a closed union).
func Union(tag string, variant func(tag string) Visitor, unknown func(tag string, raw map[string]any) error) Visitor {
	return &unionVisitor{Base: Base{"object"}, tag: tag, variant: variant, unknown: unknown}
}

type unionVisitor struct {
	Base
	tag     string
	variant func(string) Visitor
	unknown func(string, map[string]any) error
}

func (u *unionVisitor) Object() (ObjectVisitor, error) {
	return &unionState{u: u, captureObject: captureObject{m: map[string]any{}}}, nil
}

type unionState struct {
	captureObject
	u *unionVisitor
}

func (s *unionState) Finish() error {
	raw := s.m
	tagPtr := "/" + escapePointer(s.u.tag)
	val, present := raw[s.u.tag]
	if !present {
		return MissingFieldError(s.u.tag)
	}
	tag, ok := val.(string)
	if !ok {
		return &Error{Pointer: tagPtr, Expected: "string discriminator"}
	}
	v := s.u.variant(tag)
	if v == nil {
		if s.u.unknown != nil {
			return s.u.unknown(tag, raw)
		}
		return &Error{Pointer: tagPtr, Expected: "known variant", Token: tag}
	}
	return Walk(raw, v)
}
