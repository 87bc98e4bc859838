package main

import (
	"github.com/reusee/dscope"

	"github.com/reusee/graphscript/debugs"
	"github.com/reusee/graphscript/logs"
)

type Module struct {
	dscope.Module
	Logs   logs.Module
	Debugs debugs.Module
}
