package cmds

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/reusee/graphscript/vars"
)

// Executor maps flag-like names to commands. Arguments not matching any
// command are collected as rest arguments.
type Executor struct {
	commands map[string]*Command
	rest     []string
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}

	usage := Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).
		Desc("print this usage").
		Alias("help", "-help", "--help")
	ret.Define("-h", usage)

	return ret
}

func (p *Executor) Define(name string, command *Command) {
	if _, ok := p.commands[name]; ok {
		panic(fmt.Errorf("duplicated command %s", name))
	}
	p.commands[name] = command
	for _, name := range command.Aliases {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

func (p *Executor) Execute(args []string) error {
	for len(args) > 0 {
		name := strings.TrimSpace(args[0])
		args = args[1:]

		command, ok := p.commands[name]
		if !ok {
			p.rest = append(p.rest, name)
			continue
		}

		var callArgs []reflect.Value
		for i, max := 0, command.Func.Type().NumIn(); i < max; i++ {
			value, err := getArg(command.Func.Type().In(i), args)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				args = args[1:]
			}
			callArgs = append(callArgs, value)
		}
		rets := command.Func.Call(callArgs)
		if len(rets) > 0 {
			if err, ok := rets[0].Interface().(error); ok && err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

// Rest returns the arguments that did not match any defined command.
func (p *Executor) Rest() []string {
	return p.rest
}

func (p *Executor) PrintUsage() {
	seen := make(map[*Command]bool)
	var names []string
	for name, command := range p.commands {
		if seen[command] {
			continue
		}
		seen[command] = true
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		command := p.commands[name]
		fmt.Printf("%s\n", name)
		if command.Description != "" {
			fmt.Printf("\t%s\n", command.Description)
		}
	}
}

func getArg(t reflect.Type, args []string) (ret reflect.Value, err error) {
	if len(args) == 0 {

		if t.Kind() == reflect.Pointer {
			// optional, use zero value
			return reflect.New(t.Elem()), nil
		}

		return ret, fmt.Errorf("expecting argument, got nothing")
	}

	if t.Kind() == reflect.Pointer {
		elemValue, err := getArg(t.Elem(), args)
		if err != nil {
			return ret, err
		}
		ret = elemValue.Addr()
		return ret, nil
	}

	str := args[0]

	ret = reflect.New(t).Elem()

	switch t.Kind() {

	case reflect.Bool:
		ret.SetBool(vars.StrToBool(str))
		return

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to int: %w", str, err)
		}
		ret.SetInt(v)
		return ret, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(str, 10, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to unsigned int: %w", str, err)
		}
		ret.SetUint(v)
		return ret, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return ret, fmt.Errorf("convert %s to float: %w", str, err)
		}
		ret.SetFloat(v)
		return ret, nil

	case reflect.String:
		ret.SetString(str)
		return

	}

	return ret, fmt.Errorf("unsupported type: %v", t)
}
