package lang

// minCollect is the smallest number of live captured frames that triggers a
// collection.
const minCollect = 64

// ValueHolder is implemented by host state stored in Runtime.Natives that
// keeps values between evaluations.  Frames reachable from the held values
// survive collection.
type ValueHolder interface {
	Values() []*Value
}

// Collect frees captured frames that can no longer be reached.  Roots are
// the frames of running evaluations and host scopes, values the evaluator
// holds between steps, and the values of every ValueHolder in Natives.
//
// A function value kept by the host must be reachable from one of these
// roots, otherwise calling it after a collection is undefined.
func (rt *Runtime) Collect() {
	m := &marker{rt: rt}
	for id := range rt.frames {
		if f := &rt.frames[id]; f.live && f.pins > 0 {
			m.frame(FrameID(id))
		}
	}
	for _, v := range rt.temps {
		m.value(v)
	}
	for _, native := range rt.Natives {
		if h, ok := native.(ValueHolder); ok {
			for _, v := range h.Values() {
				m.value(v)
			}
		}
	}
	for len(m.work) > 0 {
		id := m.work[len(m.work)-1]
		m.work = m.work[:len(m.work)-1]
		for _, b := range rt.frames[id].bindings {
			m.value(b.value)
		}
	}
	for id := range rt.frames {
		f := &rt.frames[id]
		switch {
		case !f.live:
		case f.marked:
			f.marked = false
		default:
			rt.freeFrame(FrameID(id))
		}
	}
	rt.nextCollect = 2 * rt.ncaptured
	if rt.nextCollect < minCollect {
		rt.nextCollect = minCollect
	}
}

func (rt *Runtime) maybeCollect() {
	if rt.ncaptured >= rt.nextCollect {
		rt.Collect()
	}
}

// hold roots vs until unhold is called with the returned mark.
func (rt *Runtime) hold(vs ...*Value) int {
	mark := len(rt.temps)
	rt.temps = append(rt.temps, vs...)
	return mark
}

func (rt *Runtime) unhold(mark int) {
	for i := mark; i < len(rt.temps); i++ {
		rt.temps[i] = nil
	}
	rt.temps = rt.temps[:mark]
}

type marker struct {
	rt   *Runtime
	work []FrameID
}

// frame marks id and its ancestors, queueing their bindings.
func (m *marker) frame(id FrameID) {
	for id != NoFrame {
		f := &m.rt.frames[id]
		if f.marked || !f.live {
			return
		}
		f.marked = true
		m.work = append(m.work, id)
		id = f.parent
	}
}

func (m *marker) value(v *Value) {
	if v == nil {
		return
	}
	switch v.Type {
	case TFunction:
		if v.Env != nil && v.Env.Runtime == m.rt {
			m.frame(v.Env.ID)
		}
	case TArray, TReturn:
		for _, c := range v.Cells {
			m.value(c)
		}
	case THash:
		for _, c := range v.Map {
			m.value(c)
		}
	}
}
