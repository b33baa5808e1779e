package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	gormschema "gorm.io/gorm/schema"
)

// Introspector enumerates the declared attributes of GORM models. Descriptors
// are computed once per type and cached for the process lifetime; all reads
// after that are lock-free.
type Introspector struct {
	namer       gormschema.Namer
	parseCache  *sync.Map
	descriptors sync.Map // reflect.Type -> []Descriptor
}

func NewIntrospector() *Introspector {
	return &Introspector{
		namer:      gormschema.NamingStrategy{},
		parseCache: &sync.Map{},
	}
}

// Describe returns the attribute descriptors for a model type in declaration order.
func (in *Introspector) Describe(t reflect.Type) ([]Descriptor, error) {
	t, err := indirectStruct(t)
	if err != nil {
		return nil, err
	}
	if cached, ok := in.descriptors.Load(t); ok {
		return cached.([]Descriptor), nil
	}

	sch, err := gormschema.Parse(reflect.New(t).Interface(), in.parseCache, in.namer)
	if err != nil {
		return nil, fmt.Errorf("parse schema for %s: %w", t.Name(), err)
	}

	// Foreign-key columns owned by this schema are internal: the relation
	// field itself stands in for them. Polymorphic type columns act as type
	// discriminators.
	ownedFK := map[string]bool{}
	polyType := map[string]bool{}
	for _, rel := range sch.Relationships.Relations {
		for _, ref := range rel.References {
			if !ref.OwnPrimaryKey && ref.ForeignKey != nil && ref.ForeignKey.Schema == sch {
				ownedFK[ref.ForeignKey.Name] = true
			}
		}
		if rel.Polymorphic != nil && rel.Polymorphic.PolymorphicType != nil &&
			rel.Polymorphic.PolymorphicType.Schema == sch {
			polyType[rel.Polymorphic.PolymorphicType.Name] = true
		}
	}

	descs := make([]Descriptor, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		rel, isRel := sch.Relationships.Relations[f.Name]
		if !isRel && f.DataType == "" {
			// Ignored by the storage layer (gorm:"-"), invisible here too.
			continue
		}

		opts := parsePortalTag(f.Tag.Get("portal"))
		d := Descriptor{
			Name:   in.namer.ColumnName("", f.Name),
			Column: f.DBName,
			GoName: f.Name,
			GoType: f.FieldType,
		}

		switch {
		case isRel:
			switch rel.Type {
			case gormschema.HasMany, gormschema.Many2Many:
				d.Kind = RelationMany
			default:
				d.Kind = RelationOne
			}
			related, err := indirectStruct(f.FieldType)
			if err != nil {
				return nil, fmt.Errorf("relation %s.%s: %w", t.Name(), f.Name, err)
			}
			d.RelatedType = related
		case opts.choice:
			d.Kind = Choice
			d.Choices = opts.choices
		default:
			d.Kind = Scalar
		}

		d.PrimaryKey = f.PrimaryKey
		d.AutoPopulated = f.AutoCreateTime != 0 || f.AutoUpdateTime != 0 ||
			(!f.Creatable && !f.Updatable)
		d.TypeDiscriminator = opts.discriminator || polyType[f.Name]
		d.Internal = opts.internal || ownedFK[f.Name] || strings.HasSuffix(d.Name, "_ptr")
		d.Editable = f.Creatable && f.Updatable && !d.AutoPopulated

		descs = append(descs, d)
	}

	actual, _ := in.descriptors.LoadOrStore(t, descs)
	return actual.([]Descriptor), nil
}

// DescribeModel is Describe for a model instance or pointer.
func (in *Introspector) DescribeModel(model any) ([]Descriptor, error) {
	return in.Describe(reflect.TypeOf(model))
}

// ResolvePath resolves a (possibly relational) field path against a model
// type. Every segment before the leaf must be a relation attribute.
func (in *Introspector) ResolvePath(t reflect.Type, path string) (ResolvedField, error) {
	rf := ResolvedField{Path: path}
	cur, err := indirectStruct(t)
	if err != nil {
		return rf, err
	}

	segments := strings.Split(path, PathSeparator)
	for i, seg := range segments {
		descs, err := in.Describe(cur)
		if err != nil {
			return rf, err
		}
		d, ok := findDescriptor(descs, seg)
		if !ok {
			return rf, &FieldNotFoundError{Model: cur.Name(), Field: path}
		}
		rf.Segments = append(rf.Segments, d)
		if i < len(segments)-1 {
			if !d.IsRelation() {
				return rf, &FieldNotFoundError{Model: cur.Name(), Field: path}
			}
			cur = d.RelatedType
		}
	}
	return rf, nil
}

// TableName returns the storage table name for a model type.
func (in *Introspector) TableName(t reflect.Type) (string, error) {
	t, err := indirectStruct(t)
	if err != nil {
		return "", err
	}
	sch, err := gormschema.Parse(reflect.New(t).Interface(), in.parseCache, in.namer)
	if err != nil {
		return "", err
	}
	return sch.Table, nil
}

func findDescriptor(descs []Descriptor, name string) (Descriptor, bool) {
	for _, d := range descs {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// indirectStruct unwraps pointers and slices down to the underlying struct type.
func indirectStruct(t reflect.Type) (reflect.Type, error) {
	for t != nil && (t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice) {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %v is not a struct model", t)
	}
	return t, nil
}
