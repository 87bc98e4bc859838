package lower

// Resolver supplies sugared values for free variables, names not bound in
// the lexical scope of the definition being lowered. Lookup is by exact name;
// absence is reported by the second result. Resolvers must tolerate repeated
// calls with the same name during one compilation.
type Resolver interface {
	Resolve(name string) (SugaredValue, bool)
}

type ResolverFunc func(name string) (SugaredValue, bool)

func (f ResolverFunc) Resolve(name string) (SugaredValue, bool) {
	return f(name)
}

type ResolverMap map[string]SugaredValue

func (m ResolverMap) Resolve(name string) (SugaredValue, bool) {
	v, ok := m[name]
	return v, ok
}
