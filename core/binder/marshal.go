package binder

import (
	"reflect"
	"unsafe"

	perror "github.com/nyan233/littlebind/core/protocol/error"
	lreflect "github.com/nyan233/littlebind/internal/reflect"
)

// 调用期的收窄/转换辅助函数, 失败时panic并携带可区分的错误码:
// 目标收窄失败是TargetCastErr, 参数/值转换失败是ValueCastErr

func narrowTarget(target interface{}, owner reflect.Type, name string) reflect.Value {
	value, ok := lreflect.ToDeclared(target, owner)
	if !ok {
		panic(perror.LWarpStdError(perror.ErrTargetCast,
			owner.String(), name, lreflect.TypeNameOf(target)))
	}
	return value
}

// narrowPointer 底层路径使用, 收窄之后直接取eface的data指针
// owner必须是指针类型, 所以类型一致时data就是结构体的基地址
func narrowPointer(target interface{}, owner reflect.Type, name string) unsafe.Pointer {
	if target == nil || reflect.TypeOf(target) != owner {
		panic(perror.LWarpStdError(perror.ErrTargetCast,
			owner.String(), name, lreflect.TypeNameOf(target)))
	}
	base := lreflect.InterDataPointer(target)
	if base == nil {
		panic(perror.LWarpStdError(perror.ErrTargetCast,
			owner.String(), name, "nil pointer"))
	}
	return base
}

func convertArg(arg interface{}, typ reflect.Type, name string, index int) reflect.Value {
	value, ok := lreflect.ToDeclared(arg, typ)
	if !ok {
		panic(perror.LWarpStdError(perror.ErrValueCast,
			name, index, typ.String(), lreflect.TypeNameOf(arg)))
	}
	return value
}

func convertValue(val interface{}, typ reflect.Type, name string) reflect.Value {
	value, ok := lreflect.ToDeclared(val, typ)
	if !ok {
		panic(perror.LWarpStdError(perror.ErrValueCast,
			name, typ.String(), lreflect.TypeNameOf(val)))
	}
	return value
}
