package lower

// VarargOutputs means the caller accepts however many outputs the callee
// produces, for example when the outputs are packed into a tuple on the left
// hand side of an assignment.
const VarargOutputs = -1

// CallsiteDescriptor is the statically computed output-arity contract of a
// call expression. It is produced from the syntactic context of the call and
// validated by the callee during lowering.
type CallsiteDescriptor struct {
	NOutputs     int
	AllowVarargs bool
}

// one value in expression position
var valueCallsite = CallsiteDescriptor{NOutputs: 1}

// forward all outputs
var varargCallsite = CallsiteDescriptor{NOutputs: VarargOutputs, AllowVarargs: true}

// Check validates an actual output count against the descriptor.
func (cd CallsiteDescriptor) Check(actual int) bool {
	if cd.AllowVarargs {
		return true
	}
	return cd.NOutputs == actual
}
