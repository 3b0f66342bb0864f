package tracelet

import (
	"reflect"
	"sync"
)

// Parameter describes one declared parameter of an instrumented callable.
type Parameter struct {
	// Name is the parameter name as it appears in the snapshot.
	Name string

	// HasDefault marks a parameter that the callable satisfies itself when
	// the caller does not supply it. Defaulted, unsupplied parameters never
	// appear in a snapshot.
	HasDefault bool

	// VariadicKeyword marks a trailing catch-all for keyword arguments that
	// match no declared parameter. At most one, and only in last position.
	VariadicKeyword bool
}

// Signature is the declared parameter shape of an instrumented callable.
// Shapes are supplied explicitly at registration time rather than discovered
// by reflection at call time, so "could not introspect" becomes "shape was
// never registered" and still degrades to a nil snapshot.
type Signature struct {
	// Params is the ordered parameter list.
	Params []Parameter

	// Bound marks a method shape whose first parameter is the receiver.
	// The receiver is excluded from snapshots.
	Bound bool
}

// valid reports whether the signature is well formed: the receiver slot
// exists when Bound, parameter names are unique and non-empty, and a
// variadic-keyword parameter only appears last.
func (s *Signature) valid() bool {
	params := s.Params
	if s.Bound {
		if len(params) == 0 {
			return false
		}
		params = params[1:]
	}
	seen := make(map[string]bool, len(params))
	for i, p := range params {
		if p.Name == "" || seen[p.Name] {
			return false
		}
		seen[p.Name] = true
		if p.VariadicKeyword && i != len(params)-1 {
			return false
		}
	}
	return true
}

// BindArguments reconstructs the named-argument mapping for one concrete
// invocation of a callable with the given signature. The result reflects
// what the caller explicitly passed: positional arguments are matched to
// parameters in order, keyword arguments by name, and parameters satisfied
// only by their declared default are excluded. A bound receiver is excluded.
// Keyword arguments matching no declared parameter are folded into a nested
// map under the variadic-keyword parameter's name, when one is declared.
//
// BindArguments returns nil, never an error, when the snapshot cannot be
// reconstructed: nil or malformed signature, more positional arguments than
// declared parameters, a keyword argument with no home, a duplicate binding,
// or a required parameter left unsupplied. Callers treat nil as "no snapshot
// available" and record the span without inputs.
//
// Arguments are never mutated; the returned map is freshly allocated.
func BindArguments(sig *Signature, args []any, kwargs map[string]any) map[string]any {
	if sig == nil || !sig.valid() {
		return nil
	}

	params := sig.Params
	if sig.Bound {
		params = params[1:]
	}

	var catchall string
	named := params
	if n := len(params); n > 0 && params[n-1].VariadicKeyword {
		catchall = params[n-1].Name
		named = params[:n-1]
	}

	if len(args) > len(named) {
		return nil
	}

	inputs := make(map[string]any, len(args)+len(kwargs))
	for i, arg := range args {
		inputs[named[i].Name] = arg
	}

	var extra map[string]any
	for name, value := range kwargs {
		p, declared := findParam(named, name)
		switch {
		case declared:
			if _, dup := inputs[p.Name]; dup {
				return nil
			}
			inputs[p.Name] = value
		case catchall != "":
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[name] = value
		default:
			return nil
		}
	}
	if extra != nil {
		inputs[catchall] = extra
	}

	// Every non-defaulted parameter must have been supplied by the caller.
	for _, p := range named {
		if p.HasDefault {
			continue
		}
		if _, ok := inputs[p.Name]; !ok {
			return nil
		}
	}

	return inputs
}

func findParam(params []Parameter, name string) (Parameter, bool) {
	for _, p := range params {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// SignatureRegistry maps callables to their registered signatures. The
// call-interception layer registers a shape once at instrumentation time and
// resolves it on every invocation via CaptureInputs.
//
// SignatureRegistry is safe for concurrent use.
type SignatureRegistry struct {
	mu   sync.RWMutex
	sigs map[uintptr]*Signature
}

// NewSignatureRegistry creates an empty signature registry.
func NewSignatureRegistry() *SignatureRegistry {
	return &SignatureRegistry{sigs: make(map[uintptr]*Signature)}
}

// Register records the signature for fn. Registering a non-function value
// or a nil signature is a no-op.
func (r *SignatureRegistry) Register(fn any, sig *Signature) {
	key, ok := callableKey(fn)
	if !ok || sig == nil {
		return
	}
	r.mu.Lock()
	r.sigs[key] = sig
	r.mu.Unlock()
}

// Lookup resolves the registered signature for fn.
func (r *SignatureRegistry) Lookup(fn any) (*Signature, bool) {
	key, ok := callableKey(fn)
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	sig, ok := r.sigs[key]
	r.mu.RUnlock()
	return sig, ok
}

// CaptureInputs resolves fn's registered signature and binds the call-site
// arguments against it. It returns nil when fn's shape was never registered
// or when binding fails; it never returns an error, so an uninspectable
// callable costs the trace its input snapshot and nothing else.
func (r *SignatureRegistry) CaptureInputs(fn any, args []any, kwargs map[string]any) map[string]any {
	sig, ok := r.Lookup(fn)
	if !ok {
		return nil
	}
	return BindArguments(sig, args, kwargs)
}

// callableKey derives a registry key from a function value.
func callableKey(fn any) (uintptr, bool) {
	if fn == nil {
		return 0, false
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return 0, false
	}
	return v.Pointer(), true
}

// defaultRegistry backs the package-level registration functions.
var defaultRegistry = NewSignatureRegistry()

// RegisterSignature records fn's signature in the package-level registry.
func RegisterSignature(fn any, sig *Signature) {
	defaultRegistry.Register(fn, sig)
}

// CaptureFunctionInputs binds call-site arguments against fn's signature in
// the package-level registry. See SignatureRegistry.CaptureInputs.
func CaptureFunctionInputs(fn any, args []any, kwargs map[string]any) map[string]any {
	return defaultRegistry.CaptureInputs(fn, args, kwargs)
}
