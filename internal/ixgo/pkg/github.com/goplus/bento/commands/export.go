// export by github.com/goplus/ixgo/cmd/qexp

package commands

import (
	q "github.com/goplus/bento/commands"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "commands",
		Path: "github.com/goplus/bento/commands",
		Deps: map[string]string{
			"context":                                   "context",
			"errors":                                    "errors",
			"fmt":                                       "fmt",
			"github.com/goplus/bento/internal/cmddata":  "cmddata",
			"github.com/goplus/bento/internal/hooks":    "hooks",
			"github.com/goplus/bento/internal/registry": "registry",
			"github.com/goplus/bento/internal/schedule": "schedule",
			"github.com/goplus/bento/pkgs/pkgdesc":      "pkgdesc",
			"github.com/spf13/pflag":                    "pflag",
			"go.uber.org/zap":                           "zap",
			"io":                                        "io",
			"slices":                                    "slices",
			"strings":                                   "strings",
		},
		Interfaces: map[string]reflect.Type{
			"Command":   reflect.TypeOf((*q.Command)(nil)).Elem(),
			"Describer": reflect.TypeOf((*q.Describer)(nil)).Elem(),
		},
		NamedTypes: map[string]reflect.Type{
			"CommandFunc":    reflect.TypeOf((*q.CommandFunc)(nil)).Elem(),
			"Context":        reflect.TypeOf((*q.Context)(nil)).Elem(),
			"ContextFactory": reflect.TypeOf((*q.ContextFactory)(nil)).Elem(),
			"ExecutionError": reflect.TypeOf((*q.ExecutionError)(nil)).Elem(),
			"GlobalContext":  reflect.TypeOf((*q.GlobalContext)(nil)).Elem(),
			"Hook":           reflect.TypeOf((*q.Hook)(nil)).Elem(),
			"Option":         reflect.TypeOf((*q.Option)(nil)).Elem(),
			"OptionsContext": reflect.TypeOf((*q.OptionsContext)(nil)).Elem(),
			"Session":        reflect.TypeOf((*q.Session)(nil)).Elem(),
			"Stage":          reflect.TypeOf((*q.Stage)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars: map[string]reflect.Value{
			"ErrDuplicateGroup": reflect.ValueOf(&q.ErrDuplicateGroup),
			"ErrDuplicateOpt":   reflect.ValueOf(&q.ErrDuplicateOpt),
			"ErrUnknownGroup":   reflect.ValueOf(&q.ErrUnknownGroup),
			"ErrUsage":          reflect.ValueOf(&q.ErrUsage),
		},
		Funcs: map[string]reflect.Value{
			"NewContext":        reflect.ValueOf(q.NewContext),
			"NewGlobalContext":  reflect.ValueOf(q.NewGlobalContext),
			"NewOptionsContext": reflect.ValueOf(q.NewOptionsContext),
		},
		TypedConsts: map[string]ixgo.TypedConst{
			"StageContext":  {Typ: reflect.TypeOf(q.StageContext), Value: constant.MakeString(string(q.StageContext))},
			"StagePostHook": {Typ: reflect.TypeOf(q.StagePostHook), Value: constant.MakeString(string(q.StagePostHook))},
			"StagePreHook":  {Typ: reflect.TypeOf(q.StagePreHook), Value: constant.MakeString(string(q.StagePreHook))},
			"StageRun":      {Typ: reflect.TypeOf(q.StageRun), Value: constant.MakeString(string(q.StageRun))},
		},
		UntypedConsts: map[string]ixgo.UntypedConst{},
	})
}
