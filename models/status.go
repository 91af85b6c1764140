package models

// StatusAPIVersion and StatusKind are the canonical identity tags of a
// Status document regardless of which resource the operation touched.
const (
	StatusAPIVersion = "v1"
	StatusKind       = "Status"
)

// Status is the machine-readable result of an operation that does not
// return the resource itself, deletes in particular.
type Status struct {
	TypeMeta
	Metadata ObjectMeta     `kform:"name=metadata"`
	Status   string         `kform:"name=status,optional,enum=Success|Failure"`
	Message  string         `kform:"name=message,optional,desc='human-readable description of the outcome'"`
	Reason   string         `kform:"name=reason,optional"`
	Details  *StatusDetails `kform:"name=details"`
	Code     int            `kform:"name=code,optional"`
}

// StatusDetails names the resource the status refers to.
type StatusDetails struct {
	Name  string `kform:"name=name,optional"`
	Group string `kform:"name=group,optional"`
	Kind  string `kform:"name=kind,optional"`
	UID   string `kform:"name=uid,optional"`
}

// DeleteOptions tunes a delete request.
type DeleteOptions struct {
	TypeMeta
	GracePeriodSeconds *int64 `kform:"name=gracePeriodSeconds"`
	PropagationPolicy  string `kform:"name=propagationPolicy,optional,enum=Orphan|Background|Foreground"`
}
