package binder

import (
	"reflect"

	"github.com/nyan233/littlebind/core/member"
	perror "github.com/nyan233/littlebind/core/protocol/error"
	"github.com/nyan233/littlebind/pkg/common/logger"
)

// 三种thunk签名, 也是本库对外承诺的调用约定
// thunk本身不持有任何可变状态, 编译一次之后可以被任意多个goroutine并发调用
type (
	// MethodThunk args的长度和顺序必须和方法的形参列表完全一致
	// 方法没有返回值时thunk返回nil
	MethodThunk func(target interface{}, args []interface{}) interface{}
	// ReadThunk 读属性或者字段
	ReadThunk func(target interface{}) interface{}
	// WriteThunk 写属性或者字段, 值无法转换到声明类型时目标保持原样
	WriteThunk func(target interface{}, value interface{})
)

// BindMethod 将方法描述符编译为MethodThunk
// 编译期解析出全部反射元数据, 调用期只做收窄/转换/调用三件事
// 变长参数和多返回值的方法属于不支持的签名, 在编译期拒绝
func BindMethod(desc *member.Descriptor) (MethodThunk, perror.LErrorDesc) {
	if desc == nil || desc.Kind() != member.KindMethod {
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, descKind(desc), "BindMethod")
	}
	var (
		owner  = desc.Owner()
		name   = desc.Name()
		fn     = desc.Method().Func
		fnType = fn.Type()
	)
	if fnType.IsVariadic() {
		return nil, perror.LWarpStdError(perror.ErrSignatureNotSupport,
			owner.String(), name, "variadic method")
	}
	if fnType.NumOut() > 1 {
		return nil, perror.LWarpStdError(perror.ErrSignatureNotSupport,
			owner.String(), name, "more than one result")
	}
	// 参数绑定表只在编译期存在: 形参k从擦除参数列表的第k个槽位取值
	argsType := make([]reflect.Type, 0, fnType.NumIn()-1)
	for i := 1; i < fnType.NumIn(); i++ {
		argsType = append(argsType, fnType.In(i))
	}
	hasResult := fnType.NumOut() == 1
	logger.DefaultLogger.Debug("littlebind: method thunk compiled: %s.%s", owner.String(), name)
	return func(target interface{}, args []interface{}) interface{} {
		in := make([]reflect.Value, len(argsType)+1)
		in[0] = narrowTarget(target, owner, name)
		for k, typ := range argsType {
			// args比形参列表短时这里按原样抛出越界panic
			in[k+1] = convertArg(args[k], typ, name, k)
		}
		out := fn.Call(in)
		if !hasResult {
			return nil
		}
		return out[0].Interface()
	}, nil
}

func descKind(desc *member.Descriptor) string {
	if desc == nil {
		return "nil descriptor"
	}
	return desc.Kind().String()
}
