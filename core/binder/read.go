package binder

import (
	"reflect"
	"unsafe"

	"github.com/nyan233/littlebind/core/member"
	perror "github.com/nyan233/littlebind/core/protocol/error"
	"github.com/nyan233/littlebind/pkg/common/logger"
)

// BindRead 将属性或者字段描述符编译为ReadThunk
// 属性经过读访问器, 没有读访问器的属性在编译期拒绝
// 导出字段走预解析的反射路径, 未导出字段reflect.Value.Interface()会拒绝,
// 只能走底层的eface偏移路径, 该路径要求声明实例为指针类型
func BindRead(desc *member.Descriptor) (ReadThunk, perror.LErrorDesc) {
	if desc == nil {
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, descKind(desc), "BindRead")
	}
	var (
		owner = desc.Owner()
		name  = desc.Name()
	)
	switch desc.Kind() {
	case member.KindProperty:
		getter, ok := desc.Getter()
		if !ok {
			return nil, perror.LWarpStdError(perror.ErrGetterNotfound, owner.String(), name)
		}
		fn := getter.Func
		logger.DefaultLogger.Debug("littlebind: read thunk compiled: %s.%s", owner.String(), name)
		return func(target interface{}) interface{} {
			out := fn.Call([]reflect.Value{narrowTarget(target, owner, name)})
			return out[0].Interface()
		}, nil
	case member.KindField:
		field := desc.Field()
		if field.PkgPath != "" {
			return bindLowLevelRead(desc)
		}
		index := field.Index
		isPtr := owner.Kind() == reflect.Ptr
		logger.DefaultLogger.Debug("littlebind: read thunk compiled: %s.%s", owner.String(), name)
		return func(target interface{}) interface{} {
			value := narrowTarget(target, owner, name)
			if isPtr {
				if value.IsNil() {
					panic(perror.LWarpStdError(perror.ErrTargetCast,
						owner.String(), name, "nil pointer"))
				}
				value = value.Elem()
			}
			return value.FieldByIndex(index).Interface()
		}, nil
	default:
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, descKind(desc), "BindRead")
	}
}

func bindLowLevelRead(desc *member.Descriptor) (ReadThunk, perror.LErrorDesc) {
	var (
		owner     = desc.Owner()
		name      = desc.Name()
		fieldType = desc.Field().Type
		offset    = desc.FieldOffset()
	)
	if owner.Kind() != reflect.Ptr {
		return nil, perror.LWarpStdError(perror.ErrTargetNotAddressable, owner.String(), name)
	}
	logger.DefaultLogger.Debug("littlebind: low-level read thunk compiled: %s.%s", owner.String(), name)
	return func(target interface{}) interface{} {
		base := narrowPointer(target, owner, name)
		return reflect.NewAt(fieldType, unsafe.Add(base, offset)).Elem().Interface()
	}, nil
}
