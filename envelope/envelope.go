// Package envelope wraps responses whose body is a versioned document.
//
// A response is either already in hand (Resolved) or still being produced
// by a worker (Pending, fed through a Handle channel). Get blocks for the
// outcome, decodes the body through the registry, and yields the typed
// value together with the transport code and headers.
//
// An Envelope instance has a single owner; it is not for concurrent use.
package envelope

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kindform/go-kindform/debug"
	"github.com/kindform/go-kindform/gomap"
	"github.com/kindform/go-kindform/ir"
	"github.com/kindform/go-kindform/models"
	"github.com/kindform/go-kindform/registry"
)

var (
	// ErrTimeout reports that the outcome did not arrive in time. The
	// envelope stays pending; a later Get may still succeed.
	ErrTimeout = errors.New("timed out waiting for response")

	// ErrBadResponse reports a response body with an unusable shape.
	ErrBadResponse = errors.New("bad response body")
)

// Result is one response as produced by a worker.
type Result struct {
	Body    *ir.Node
	Code    int
	Headers http.Header
}

// Outcome is what a worker delivers: a result or the error that prevented
// one.
type Outcome struct {
	Result Result
	Err    error
}

// Handle delivers exactly one Outcome and is then closed.
type Handle <-chan Outcome

// Go runs f in a goroutine and returns the handle its outcome will arrive
// on.
func Go(f func() (Result, error)) Handle {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		res, err := f()
		ch <- Outcome{Result: res, Err: err}
	}()
	return ch
}

// Done returns an already-delivered handle.
func Done(res Result) Handle {
	ch := make(chan Outcome, 1)
	ch <- Outcome{Result: res}
	close(ch)
	return ch
}

// Failed returns a handle delivering only an error.
func Failed(err error) Handle {
	ch := make(chan Outcome, 1)
	ch <- Outcome{Err: err}
	close(ch)
	return ch
}

type deleteIdentity struct {
	apiVersion string
	kind       string
}

// Envelope is a response in one of two states: pending on its handle, or
// resolved with a result (or error) in hand.
type Envelope struct {
	reg    *registry.Registry
	handle Handle

	resolved  bool
	res       Result
	err       error
	deleteFor *deleteIdentity
}

type Option func(*Envelope)

// WithRegistry decodes bodies against reg instead of the default registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Envelope) { e.reg = reg }
}

// ForDelete marks the envelope as the response to deleting the named
// resource. Delete responses may carry a Status body stamped with the
// deleted resource's own identity tags; such a body is decoded as a
// Status.
func ForDelete(apiVersion, kind string) Option {
	return func(e *Envelope) {
		e.deleteFor = &deleteIdentity{apiVersion: apiVersion, kind: kind}
	}
}

// Resolved wraps a result that is already in hand. The envelope starts in
// its terminal state: Wait returns nil, Ready is true.
func Resolved(res Result, opts ...Option) *Envelope {
	e := &Envelope{resolved: true, res: res}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pending wraps an in-flight call.
func Pending(h Handle, opts ...Option) *Envelope {
	e := &Envelope{handle: h}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Get waits for the outcome and decodes it, returning the typed payload,
// the transport code and the headers. A timeout <= 0 blocks indefinitely.
// On ErrTimeout the envelope stays pending. A body with unregistered
// identity tags comes back as *gomap.Unstructured.
func (e *Envelope) Get(timeout time.Duration) (registry.Object, int, http.Header, error) {
	if err := e.Wait(timeout); err != nil {
		return nil, 0, nil, err
	}
	if e.err != nil {
		return nil, e.res.Code, e.res.Headers, e.err
	}
	obj, err := e.decode()
	return obj, e.res.Code, e.res.Headers, err
}

// Wait blocks until the outcome arrives or timeout elapses; timeout <= 0
// blocks indefinitely. On a resolved envelope it returns immediately with
// the outcome's error, nil for one constructed via Resolved.
func (e *Envelope) Wait(timeout time.Duration) error {
	if e.resolved {
		return e.err
	}
	if timeout <= 0 {
		e.complete(<-e.handle)
		return e.err
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case out := <-e.handle:
		e.complete(out)
		return e.err
	case <-t.C:
		return ErrTimeout
	}
}

// Ready reports whether the outcome is in hand, consuming it from the
// handle when it has just arrived. A resolved envelope is always ready.
func (e *Envelope) Ready() bool {
	if e.resolved {
		return true
	}
	select {
	case out := <-e.handle:
		e.complete(out)
		return true
	default:
		return false
	}
}

// Successful waits for the outcome and reports whether it is a non-error
// result with a code below 400.
func (e *Envelope) Successful() bool {
	if err := e.Wait(0); err != nil {
		return false
	}
	return e.res.Code < 400
}

func (e *Envelope) complete(out Outcome) {
	e.resolved = true
	e.res = out.Result
	e.err = out.Err
}

// decode turns the resolved body into a typed value. A nil or null body
// has no payload. Delete responses get the one documented rewrite: a
// Status-shaped body carrying the deleted resource's identity tags is
// restamped as v1/Status before decoding.
func (e *Envelope) decode() (registry.Object, error) {
	body := e.res.Body
	if body == nil || body.Type == ir.NullType {
		return nil, nil
	}
	if body.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %s document", ErrBadResponse, body.Type)
	}
	if e.deleteFor != nil && e.statusShaped(body) {
		if debug.Envelope() {
			debug.Logf("restamping delete response (%s, %s) as status\n",
				e.deleteFor.apiVersion, e.deleteFor.kind)
		}
		body = body.Clone()
		body.Set("apiVersion", ir.FromString(models.StatusAPIVersion))
		body.Set("kind", ir.FromString(models.StatusKind))
	}
	obj, err := gomap.FromDocument(body, e.reg)
	if errors.Is(err, registry.ErrNotRegistered) {
		return &gomap.Unstructured{Node: body}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return obj, nil
}

// statusShaped: the body claims the deleted resource's identity but reads
// like a Status, a status field and no spec or data.
func (e *Envelope) statusShaped(body *ir.Node) bool {
	if ir.GetString(body, "apiVersion") != e.deleteFor.apiVersion ||
		ir.GetString(body, "kind") != e.deleteFor.kind {
		return false
	}
	status := ir.Get(body, "status")
	if status == nil || status.Type != ir.StringType {
		return false
	}
	return ir.Get(body, "spec") == nil && ir.Get(body, "data") == nil
}
