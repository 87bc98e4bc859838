package main

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/reusee/dscope"

	"github.com/reusee/graphscript/cmds"
	"github.com/reusee/graphscript/configs"
	"github.com/reusee/graphscript/debugs"
	"github.com/reusee/graphscript/graphir"
	"github.com/reusee/graphscript/logs"
	"github.com/reusee/graphscript/lower"
	"github.com/reusee/graphscript/modes"
	"github.com/reusee/graphscript/syncs"
	"github.com/reusee/graphscript/vars"
)

var (
	opsFiles   = cmds.Collect[string]("-ops")
	dumpGraphs = cmds.Switch("-dump")
	inspectIt  = cmds.Switch("-inspect")
)

var numJobs *int

func init() {
	cmds.Define("-jobs", cmds.Func(func(n *int) {
		numJobs = n
	}).Desc("max concurrent file compilations, defaults to the number of CPUs"))
}

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		inspect debugs.Inspect,
	) {

		specs, err := configs.LoadOps(configs.NewOpsLoader(*opsFiles))
		ce(err)
		ops := graphir.DefaultOps().Extend(specs...)

		paths := cmds.Rest()
		if len(paths) == 0 {
			os.Stderr.WriteString("no input files\n")
			os.Exit(-1)
		}

		type result struct {
			module *graphir.Module
			err    error
		}
		results := make([]result, len(paths))

		sem := syncs.NewSemaphore(vars.FirstNonZero(
			vars.DerefOrZero(numJobs),
			runtime.NumCPU(),
		))
		var wg sync.WaitGroup
		for i, path := range paths {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sem.Acquire()
				defer sem.Release()

				ctx, _ := newSpan(ctx, "")
				logger.InfoContext(ctx, "compile",
					"path", path,
				)
				module, err := compileFile(path, ops)
				if err != nil {
					logger.ErrorContext(ctx, "compile failed",
						"path", path,
						"error", err,
					)
				} else {
					logger.InfoContext(ctx, "compiled",
						"path", path,
						"methods", module.MethodNames(),
					)
				}
				results[i] = result{
					module: module,
					err:    err,
				}
			}()
		}
		wg.Wait()

		failed := false
		for i, res := range results {
			if res.err != nil {
				os.Stderr.WriteString(res.err.Error())
				os.Stderr.WriteString("\n")
				failed = true
				continue
			}
			if *dumpGraphs {
				for _, name := range res.module.MethodNames() {
					meth, ok := res.module.Method(name)
					if !ok {
						continue
					}
					os.Stdout.WriteString(name + " = ")
					os.Stdout.WriteString(meth.Graph.String())
				}
			}
			if *inspectIt {
				inspect(ctx, paths[i], res.module, nil)
			}
		}
		if failed {
			os.Exit(-1)
		}

	})

}

// compileFile lowers every definition in one script file into a fresh
// module. Definitions may call definitions compiled before them in the same
// file.
func compileFile(path string, ops graphir.OpTable) (*graphir.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	module := graphir.NewModule()
	resolver := lower.ResolverFunc(func(name string) (lower.SugaredValue, bool) {
		if meth, ok := module.Method(name); ok {
			return lower.NewMethodValue(meth), true
		}
		return nil, false
	})
	if err := lower.DefineMethodsFromSource(module, path, f, ops, resolver, nil); err != nil {
		return nil, err
	}
	return module, nil
}
