package components

import (
	"reflect"
	"time"

	"gorm.io/datatypes"

	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/schema"
)

// FormField is one editable input of a generated form.
type FormField struct {
	Name     string   `json:"name"`
	Widget   string   `json:"widget"`
	Required bool     `json:"required"`
	Choices  []string `json:"choices,omitempty"`
}

// Form is the editable single-entity component. Field resolution has already
// rejected relational paths by the time a form is generated.
type Form struct {
	base
	formFields []FormField
}

type FormStrategy struct{}

func (FormStrategy) ComponentKind() registry.Kind { return registry.KindForm }

func (FormStrategy) Generate(cfg *registry.ModelConfig, fields []schema.ResolvedField) (registry.Component, error) {
	formFields := make([]FormField, 0, len(fields))
	for _, rf := range fields {
		leaf := rf.Leaf()
		formFields = append(formFields, FormField{
			Name:     leaf.Name,
			Widget:   widgetFor(leaf),
			Required: requiredFor(leaf),
			Choices:  leaf.Choices,
		})
	}
	return &Form{
		base:       base{kind: registry.KindForm, model: cfg.ModelType(), fields: fields},
		formFields: formFields,
	}, nil
}

// Fields returns the form's input descriptors in resolution order.
func (f *Form) Fields() []FormField { return f.formFields }

// Decode filters a decoded JSON body down to the fields this form binds.
// Keys outside the form are dropped; no value validation happens here.
func (f *Form) Decode(payload map[string]any) map[string]any {
	out := make(map[string]any, len(f.formFields))
	for _, ff := range f.formFields {
		if v, ok := payload[ff.Name]; ok {
			out[ff.Name] = v
		}
	}
	return out
}

var (
	timeType     = reflect.TypeOf(time.Time{})
	jsonType     = reflect.TypeOf(datatypes.JSON{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// widgetFor picks the input widget per attribute shape. This mapping is the
// form strategy's own policy, not part of the resolver's contract.
func widgetFor(d schema.Descriptor) string {
	switch d.Kind {
	case schema.Choice:
		return "select"
	case schema.RelationOne:
		return "related"
	case schema.RelationMany:
		return "related-multi"
	}
	t := d.GoType
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return "datetime"
	case t == jsonType:
		return "json"
	case t == durationType:
		return "number"
	}
	switch t.Kind() {
	case reflect.Bool:
		return "checkbox"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "text"
	}
}

func requiredFor(d schema.Descriptor) bool {
	if d.IsRelation() {
		return false
	}
	return d.GoType.Kind() != reflect.Ptr
}
