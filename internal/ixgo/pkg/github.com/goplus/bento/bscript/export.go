// export by github.com/goplus/ixgo/cmd/qexp

package bscript

import (
	q "github.com/goplus/bento/bscript"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "bscript",
		Path: "github.com/goplus/bento/bscript",
		Deps: map[string]string{
			"github.com/goplus/bento/commands": "commands",
			"github.com/qiniu/x/gsh":           "gsh",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"Decl":     reflect.TypeOf((*q.Decl)(nil)).Elem(),
			"DeclKind": reflect.TypeOf((*q.DeclKind)(nil)).Elem(),
			"HookApp":  reflect.TypeOf((*q.HookApp)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"Gopt_HookApp_Main": reflect.ValueOf(q.Gopt_HookApp_Main),
		},
		TypedConsts: map[string]ixgo.TypedConst{
			"DeclAfter":    {Typ: reflect.TypeOf(q.DeclAfter), Value: constant.MakeInt64(int64(q.DeclAfter))},
			"DeclBefore":   {Typ: reflect.TypeOf(q.DeclBefore), Value: constant.MakeInt64(int64(q.DeclBefore))},
			"DeclPostHook": {Typ: reflect.TypeOf(q.DeclPostHook), Value: constant.MakeInt64(int64(q.DeclPostHook))},
			"DeclPreHook":  {Typ: reflect.TypeOf(q.DeclPreHook), Value: constant.MakeInt64(int64(q.DeclPreHook))},
		},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"GopPackage": {Typ: "untyped bool", Value: constant.MakeBool(bool(q.GopPackage))},
		},
	})
}
