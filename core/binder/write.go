package binder

import (
	"reflect"
	"unsafe"

	"github.com/nyan233/littlebind/core/member"
	perror "github.com/nyan233/littlebind/core/protocol/error"
	"github.com/nyan233/littlebind/pkg/common/logger"
)

// BindWrite 将属性或者字段描述符编译为WriteThunk
//
// 属性的写入经过写访问器, 没有写访问器的属性在编译期拒绝,
// 绝不会把失败推迟到调用期
//
// 字段的写入不走reflect.Value.Set的常规路径: 对未导出字段Set会直接panic,
// 而且两类字段没有必要走不同的路径, 所以统一使用底层路径:
// 取目标eface的data指针, 加上编译期算好的偏移, 通过reflect.NewAt对
// 字段槽位直写. 这要求声明实例为指针类型, 非指针实例在编译期拒绝
func BindWrite(desc *member.Descriptor) (WriteThunk, perror.LErrorDesc) {
	if desc == nil {
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, descKind(desc), "BindWrite")
	}
	var (
		owner = desc.Owner()
		name  = desc.Name()
	)
	switch desc.Kind() {
	case member.KindProperty:
		setter, ok := desc.Setter()
		if !ok {
			return nil, perror.LWarpStdError(perror.ErrSetterNotfound, owner.String(), name)
		}
		fn := setter.Func
		valueType := fn.Type().In(1)
		logger.DefaultLogger.Debug("littlebind: write thunk compiled: %s.%s", owner.String(), name)
		return func(target interface{}, value interface{}) {
			// 先转换值再收窄目标, 两者都通过之后才真正调用访问器
			converted := convertValue(value, valueType, name)
			fn.Call([]reflect.Value{narrowTarget(target, owner, name), converted})
		}, nil
	case member.KindField:
		if owner.Kind() != reflect.Ptr {
			return nil, perror.LWarpStdError(perror.ErrTargetNotAddressable, owner.String(), name)
		}
		fieldType := desc.Field().Type
		offset := desc.FieldOffset()
		logger.DefaultLogger.Debug("littlebind: low-level write thunk compiled: %s.%s", owner.String(), name)
		return func(target interface{}, value interface{}) {
			// 值的转换先于任何内存写入, 转换失败时字段保持原样
			converted := convertValue(value, fieldType, name)
			base := narrowPointer(target, owner, name)
			reflect.NewAt(fieldType, unsafe.Add(base, offset)).Elem().Set(converted)
		}, nil
	default:
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, descKind(desc), "BindWrite")
	}
}
