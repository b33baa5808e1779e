package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// PathSeparator joins the segments of a relational field path, e.g. "owner__email".
const PathSeparator = "__"

// FieldKind classifies the basic shape of a model attribute.
type FieldKind string

const (
	Scalar       FieldKind = "scalar"
	Choice       FieldKind = "choice"
	RelationOne  FieldKind = "relation-one"
	RelationMany FieldKind = "relation-many"
)

// Descriptor is the static description of one model attribute, computed once per type.
type Descriptor struct {
	// Name is the snake-case attribute name used in field lists and paths.
	Name   string
	Column string
	GoName string
	Kind   FieldKind
	// GoType is the field type as declared; RelatedType is the element struct
	// type for relation fields.
	GoType      reflect.Type
	RelatedType reflect.Type
	Choices     []string

	Editable          bool
	AutoPopulated     bool
	PrimaryKey        bool
	TypeDiscriminator bool
	// Internal marks attributes that exist for the storage layer's benefit
	// (owned foreign-key columns, parent-link pointers) and never appear in
	// smart defaults.
	Internal bool
}

func (d Descriptor) IsRelation() bool {
	return d.Kind == RelationOne || d.Kind == RelationMany
}

// ResolvedField is a field path resolved against a model's schema, one
// descriptor per path segment with the leaf attribute last.
type ResolvedField struct {
	Path     string
	Segments []Descriptor
}

func (rf ResolvedField) Leaf() Descriptor {
	return rf.Segments[len(rf.Segments)-1]
}

func (rf ResolvedField) Relational() bool {
	return len(rf.Segments) > 1
}

// GoPath returns the Go struct field names along the path.
func (rf ResolvedField) GoPath() []string {
	names := make([]string, len(rf.Segments))
	for i, d := range rf.Segments {
		names[i] = d.GoName
	}
	return names
}

// FieldNotFoundError reports a field list entry that does not exist on the
// model's schema, or a path that traverses a non-relation attribute.
type FieldNotFoundError struct {
	Model string
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("schema: field %q does not exist on model %s", e.Field, e.Model)
}

// portalOptions are the attribute hints carried in the `portal` struct tag.
// The tag is the explicit predicate set for classification that the storage
// schema alone cannot express: `portal:"choice=a|b|c"`, `portal:"discriminator"`,
// `portal:"internal"`.
type portalOptions struct {
	choice        bool
	choices       []string
	discriminator bool
	internal      bool
}

func parsePortalTag(tag string) portalOptions {
	var opts portalOptions
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "discriminator":
			opts.discriminator = true
		case part == "internal":
			opts.internal = true
		case part == "choice":
			opts.choice = true
		case strings.HasPrefix(part, "choice="):
			opts.choice = true
			opts.choices = strings.Split(strings.TrimPrefix(part, "choice="), "|")
		}
	}
	return opts
}
