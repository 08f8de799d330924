package provisioning

import "fmt"

// Kind identifies the type of a provisioned resource.
type Kind string

// Resource kinds, in the order a bot deployment creates them.
const (
	KindRole            Kind = "role"
	KindFunction        Kind = "function"
	KindPermission      Kind = "permission"
	KindBot             Kind = "bot"
	KindLocale          Kind = "locale"
	KindIntent          Kind = "intent"
	KindSlot            Kind = "slot"
	KindBuild           Kind = "build"
	KindVersion         Kind = "version"
	KindAlias           Kind = "alias"
	KindAliasPermission Kind = "alias-permission"
)

// ResourceRef identifies a remote resource created or found by a step.
// It is an immutable value.
type ResourceRef struct {
	Kind Kind
	// ID is the remote identifier (bot id, intent id, role name, ...).
	ID string
	// Qualifier scopes ID: a bot version, a locale id, an alias version.
	Qualifier string
	ARN       string
	Name      string
}

// IsZero reports whether the ref is empty.
func (r ResourceRef) IsZero() bool {
	return r == ResourceRef{}
}

func (r ResourceRef) String() string {
	id := r.ID
	if id == "" {
		id = r.Name
	}
	if r.Qualifier != "" {
		return fmt.Sprintf("%s/%s@%s", r.Kind, id, r.Qualifier)
	}
	return fmt.Sprintf("%s/%s", r.Kind, id)
}
