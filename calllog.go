package calllog

import (
	"reflect"
	"runtime"

	"github.com/lexfrei/go-calllog/internal/middleware"
)

// Args carries the positional and named arguments of a decorated call.
type Args = middleware.Args

// Func is the calling convention every decorator preserves. The wrapped
// function receives exactly the ctx and Args passed to the outer call, and its
// result and error are returned unchanged.
type Func = middleware.Func

// Decorator wraps a Func identified by a qualified name.
type Decorator = middleware.Decorator

// UnknownName identifies functions whose name cannot be resolved.
const UnknownName = "unknown"

// Wrap decorates fn with the given decorators, the first being outermost.
// fn is identified by its qualified name as reported by the runtime,
// for example "github.com/acme/app/store.Load".
func Wrap(fn Func, decorators ...Decorator) Func {
	return WrapNamed(QualifiedName(fn), fn, decorators...)
}

// WrapNamed is like Wrap but identifies fn by an explicit name.
// Use it for closures, whose runtime names ("pkg.outer.func1") are unstable.
func WrapNamed(name string, fn Func, decorators ...Decorator) Func {
	if name == "" {
		name = UnknownName
	}

	return middleware.Chain(decorators...)(name, fn)
}

// Chain composes decorators into one. Chain(A, B)(name, fn) is A(B(fn)).
func Chain(decorators ...Decorator) Decorator {
	return middleware.Chain(decorators...)
}

// QualifiedName returns the package-qualified name of the function fn.
// It returns UnknownName when fn is not a non-nil function.
func QualifiedName(fn any) string {
	if fn == nil {
		return UnknownName
	}

	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return UnknownName
	}

	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return UnknownName
	}

	return f.Name()
}

// FormatArgs describes args the way LogArgs does: "without args",
// "with args = [...]", "with kwargs = map[...]" or "args = [...] and kwargs = map[...]".
func FormatArgs(args Args) string {
	return middleware.FormatArgs(args)
}
