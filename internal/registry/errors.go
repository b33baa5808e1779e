package registry

import "fmt"

// Every error in this package reflects a configuration authoring defect, not a
// transient condition. None are retried or recovered internally; they surface
// at startup or on first use of the offending component.

// DuplicateRegistrationError reports a second registration for a model.
type DuplicateRegistrationError struct {
	Model string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("registry: model %s is already registered", e.Model)
}

// UnregisteredModelError reports a lookup for a model nobody registered.
type UnregisteredModelError struct {
	Model string
}

func (e *UnregisteredModelError) Error() string {
	return fmt.Sprintf("registry: model %s is not registered", e.Model)
}

// InvalidFieldPathError reports a relational path bound to an editable
// component. There is no single owning instance to write back to through a
// relation, so forms reject them.
type InvalidFieldPathError struct {
	Model string
	Kind  Kind
	Path  string
}

func (e *InvalidFieldPathError) Error() string {
	return fmt.Sprintf("registry: relational path %q is not allowed in the %s component of model %s",
		e.Path, e.Kind, e.Model)
}

// UnknownFieldError reports a configured field name that does not exist on the
// model's schema. Field lists are validated on first resolution, not at
// registration, to tolerate registration-order dependencies across modules.
type UnknownFieldError struct {
	Model string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("registry: field %q does not exist on model %s", e.Field, e.Model)
}

// CircularGenerationError reports component generation recursively requesting
// its own in-progress component. Always a bug, never retried.
type CircularGenerationError struct {
	Model string
	Kind  Kind
}

func (e *CircularGenerationError) Error() string {
	return fmt.Sprintf("registry: circular generation of the %s component of model %s", e.Kind, e.Model)
}
