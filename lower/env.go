package lower

// Env is the lexical scope of the definition being lowered, mapping names to
// sugared values.
type Env struct {
	Parent *Env
	Vars   map[string]SugaredValue
}

func (e *Env) Get(name string) (SugaredValue, bool) {
	if v, ok := e.Vars[name]; ok {
		return v, true
	}
	if e.Parent != nil {
		return e.Parent.Get(name)
	}
	return nil, false
}

func (e *Env) Def(name string, val SugaredValue) {
	if e.Vars == nil {
		e.Vars = make(map[string]SugaredValue)
	}
	e.Vars[name] = val
}

func (e *Env) NewChild() *Env {
	return &Env{
		Parent: e,
	}
}
