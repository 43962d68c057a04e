package lang

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// FrameID addresses a scope frame within a Runtime.
type FrameID int

// NoFrame is the parent of a root frame.
const NoFrame FrameID = -1

type binding struct {
	value   *Value
	mutable bool
}

type frame struct {
	parent   FrameID
	bindings map[string]binding

	// pins counts evaluations using the frame as their scope.  children
	// counts live frames whose parent is this frame.
	pins     int
	children int

	// captured is set once a closure holds a handle to the frame.  Captured
	// frames are only freed by Runtime.Collect.
	captured bool
	live     bool
	marked   bool
}

// Runtime is the state shared by every Env in a tree of scopes.  Scope frames
// live in an arena owned by the Runtime and are addressed by FrameID.  A
// Runtime is not safe for concurrent use.
type Runtime struct {
	Reader Reader
	Stack  *CallStack
	Stdout io.Writer
	Stderr io.Writer
	Exit   func(code int)
	// Natives holds host state that libraries attach to the runtime, keyed by
	// library.
	Natives map[string]interface{}

	frames []frame
	free   []FrameID

	// temps holds values the evaluator has computed but not yet stored.
	temps []*Value

	// ncaptured is the number of live captured frames.  A collection runs
	// at the next function call once it reaches nextCollect.
	ncaptured   int
	nextCollect int
}

// Env is a handle to one scope frame.  Envs are small values; copying one
// copies the handle, not the frame.
type Env struct {
	Runtime *Runtime
	ID      FrameID
}

// NewEnv returns a root environment backed by a new Runtime.
func NewEnv() *Env {
	rt := &Runtime{
		Stack:       &CallStack{MaxHeight: DefaultMaxStackHeight},
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Exit:        os.Exit,
		Natives:     make(map[string]interface{}),
		nextCollect: minCollect,
	}
	return rt.newFrame(NoFrame)
}

// InitializeUserEnv applies config to env and binds the default builtins and
// global constants in it.
func InitializeUserEnv(env *Env, config ...Config) error {
	for _, fn := range config {
		if err := fn(env); err != nil {
			return err
		}
	}
	if err := env.AddBuiltins(); err != nil {
		return err
	}
	env.Set("null", Null())
	return nil
}

// newFrame returns a pinned frame, reusing a free slot of the arena when
// there is one.
func (rt *Runtime) newFrame(parent FrameID) *Env {
	f := frame{
		parent:   parent,
		bindings: make(map[string]binding),
		pins:     1,
		live:     true,
	}
	if parent != NoFrame {
		rt.frames[parent].children++
	}
	if n := len(rt.free); n > 0 {
		id := rt.free[n-1]
		rt.free = rt.free[:n-1]
		rt.frames[id] = f
		return &Env{Runtime: rt, ID: id}
	}
	rt.frames = append(rt.frames, f)
	return &Env{Runtime: rt, ID: FrameID(len(rt.frames) - 1)}
}

// FrameCount returns the number of live frames in the arena.
func (rt *Runtime) FrameCount() int {
	return len(rt.frames) - len(rt.free)
}

// freeFrame discards frame id and returns its parent.
func (rt *Runtime) freeFrame(id FrameID) FrameID {
	f := &rt.frames[id]
	parent := f.parent
	if f.captured {
		rt.ncaptured--
	}
	*f = frame{parent: NoFrame}
	rt.free = append(rt.free, id)
	if parent != NoFrame && rt.frames[parent].live {
		rt.frames[parent].children--
	}
	return parent
}

// tryFree frees id if nothing holds it, then does the same for its
// ancestors.
func (rt *Runtime) tryFree(id FrameID) {
	for id != NoFrame {
		f := &rt.frames[id]
		if !f.live || f.pins > 0 || f.children > 0 || f.captured {
			return
		}
		id = rt.freeFrame(id)
	}
}

func (env *Env) frame() *frame {
	return &env.Runtime.frames[env.ID]
}

// Extend returns a new empty child scope of env.  The scope stays alive
// until it is released by the evaluator; scopes created by hosts, like the
// REPL, live as long as the Runtime.
func (env *Env) Extend() *Env {
	return env.Runtime.newFrame(env.ID)
}

// Parent returns the enclosing scope of env, or nil if env is a root.
func (env *Env) Parent() *Env {
	parent := env.frame().parent
	if parent == NoFrame {
		return nil
	}
	return &Env{Runtime: env.Runtime, ID: parent}
}

// Root returns the outermost scope enclosing env.
func (env *Env) Root() *Env {
	for {
		parent := env.Parent()
		if parent == nil {
			return env
		}
		env = parent
	}
}

// Get returns the value bound to name in the nearest scope that binds it.
func (env *Env) Get(name string) (*Value, bool) {
	for id := env.ID; id != NoFrame; {
		f := &env.Runtime.frames[id]
		if b, ok := f.bindings[name]; ok {
			return b.value, true
		}
		id = f.parent
	}
	return nil, false
}

// Set binds name to v in env itself as an immutable binding, shadowing any
// binding of name in an enclosing scope.  An existing binding of name in env
// is overwritten.
func (env *Env) Set(name string, v *Value) {
	env.Define(name, v, false)
}

// Define binds name to v in env itself.  Only mutable bindings may be changed
// with Mutate.
func (env *Env) Define(name string, v *Value, mutable bool) {
	if v == nil {
		panic("nil value")
	}
	env.frame().bindings[name] = binding{value: v, mutable: mutable}
}

// Mutate overwrites the nearest existing binding of name and returns v.
// Mutate never creates a binding: ErrUnbound is returned when no scope binds
// name and ErrImmutable when the nearest binding is not mutable.
func (env *Env) Mutate(name string, v *Value) (*Value, error) {
	for id := env.ID; id != NoFrame; {
		f := &env.Runtime.frames[id]
		if b, ok := f.bindings[name]; ok {
			if !b.mutable {
				return nil, ErrImmutable
			}
			f.bindings[name] = binding{value: v, mutable: true}
			return v, nil
		}
		id = f.parent
	}
	return nil, ErrUnbound
}

// Names returns the sorted names visible from env.
func (env *Env) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for id := env.ID; id != NoFrame; id = env.Runtime.frames[id].parent {
		for name := range env.Runtime.frames[id].bindings {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// AddBuiltins binds the given funs to their names in env.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *Env) AddBuiltins(funs ...BuiltinDef) error {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		if _, exists := env.Get(f.Name()); exists {
			return fmt.Errorf("name already defined: %s", f.Name())
		}
		env.Set(f.Name(), BuiltinValue(f))
	}
	return nil
}

// capture marks env as referenced by a closure.
func (env *Env) capture() {
	f := env.frame()
	if !f.captured {
		f.captured = true
		env.Runtime.ncaptured++
	}
}

// release ends the evaluation using env as its scope.  The frame is freed
// at once unless a closure captured it or a child frame is still alive.
func (env *Env) release() {
	env.frame().pins--
	env.Runtime.tryFree(env.ID)
}
