package reflect

import (
	"reflect"
	"unsafe"
)

type Eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type Iface struct {
	itab unsafe.Pointer
	data unsafe.Pointer
}

// InterDataPointer 获得val对应eface-data指针的值
// 指针类型的val的data就是指针本身, 所以对*T来说返回值即是T的地址
func InterDataPointer(val interface{}) unsafe.Pointer {
	return (*Eface)(unsafe.Pointer(&val)).data
}

// ToDeclared 将擦除的值转换到声明的类型, 返回的ok指示转换是否合法
// 合法的转换只有两种: 类型完全一致/可赋值到声明的接口类型
// nil值只能转换到可空的类型, 对应的结果是该类型的零值
// 除此之外不做任何隐式转换, 数值的宽化也不允许
func ToDeclared(val interface{}, typ reflect.Type) (reflect.Value, bool) {
	if val == nil {
		if Nilable(typ.Kind()) {
			return reflect.Zero(typ), true
		}
		return reflect.Value{}, false
	}
	value := reflect.ValueOf(val)
	if value.Type() == typ {
		return value, true
	}
	if value.Type().AssignableTo(typ) {
		return value, true
	}
	return reflect.Value{}, false
}

// Nilable 报告kind对应的类型是否可以持有nil
func Nilable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Ptr, reflect.Interface, reflect.Slice,
		reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// TypeNameOf 返回擦除值的类型名字, 只在拼装错误信息时使用
func TypeNameOf(val interface{}) string {
	if val == nil {
		return "<nil>"
	}
	return reflect.TypeOf(val).String()
}
