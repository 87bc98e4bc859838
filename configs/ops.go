package configs

import (
	"github.com/reusee/graphscript/graphir"
)

// opsSchema validates operator extension files, e.g.
//
//	ops: [
//		{name: "conv", inputs: 3, outputs: 1},
//	]
const opsSchema = `
ops?: [...{
	name!:    string
	inputs!:  int & >=-1
	outputs!: int & >=0
}]
`

// NewOpsLoader loads operator-table extensions from cue files.
func NewOpsLoader(filePaths []string) Loader {
	return NewLoader(filePaths, opsSchema)
}

// LoadOps collects all operator specs declared under "ops" in the loader's
// files, in file order.
func LoadOps(loader Loader) ([]graphir.OpSpec, error) {
	var specs []graphir.OpSpec
	for value, err := range loader.IterCueValues("ops") {
		if err != nil {
			return nil, err
		}
		var batch []graphir.OpSpec
		if err := value.Decode(&batch); err != nil {
			return nil, err
		}
		specs = append(specs, batch...)
	}
	return specs, nil
}
