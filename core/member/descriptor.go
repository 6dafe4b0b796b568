package member

import (
	"reflect"

	perror "github.com/nyan233/littlebind/core/protocol/error"
)

type Kind uint8

const (
	KindMethod Kind = iota + 1
	KindProperty
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindMethod:
		return "method"
	case KindProperty:
		return "property"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Descriptor 描述声明类型上的一个成员, 是{方法/属性/字段}上的和类型
// 由Describe系列函数构造, 构造之后不再修改, 可以被任意多个绑定共享
//
// 属性遵循Go的访问器习惯: 读访问器是X() T, 写访问器是SetX(T)
// 两个访问器允许缺失任意一个, 缺失只在绑定真正需要它时才算错误
type Descriptor struct {
	kind  Kind
	owner reflect.Type
	name  string

	method reflect.Method

	// 字段相对结构体起始地址的偏移, 跨多层非指针嵌入时为各层偏移之和
	field       reflect.StructField
	fieldOffset uintptr

	getter    reflect.Method
	setter    reflect.Method
	hasGetter bool
	hasSetter bool
}

// DescribeMethod 在实例i的类型上解析名字为name的方法
func DescribeMethod(i interface{}, name string) (*Descriptor, perror.LErrorDesc) {
	owner, err := ownerTypeOf(i)
	if err != nil {
		return nil, err
	}
	method, ok := owner.MethodByName(name)
	if !ok {
		return nil, perror.LWarpStdError(perror.ErrMemberNotfound, owner.String(), name)
	}
	return &Descriptor{
		kind:   KindMethod,
		owner:  owner,
		name:   name,
		method: method,
	}, nil
}

// DescribeProperty 在实例i的类型上解析名字为name的属性
// 解析时只要求读写访问器至少存在一个, 形状不符的方法视作访问器缺失
func DescribeProperty(i interface{}, name string) (*Descriptor, perror.LErrorDesc) {
	owner, err := ownerTypeOf(i)
	if err != nil {
		return nil, err
	}
	desc := &Descriptor{
		kind:  KindProperty,
		owner: owner,
		name:  name,
	}
	if getter, ok := owner.MethodByName(name); ok && isGetterShape(getter) {
		desc.getter = getter
		desc.hasGetter = true
	}
	if setter, ok := owner.MethodByName("Set" + name); ok && isSetterShape(setter) {
		desc.setter = setter
		desc.hasSetter = true
	}
	if !desc.hasGetter && !desc.hasSetter {
		return nil, perror.LWarpStdError(perror.ErrMemberNotfound, owner.String(), name)
	}
	return desc, nil
}

// DescribeField 在实例i的结构体类型上解析名字为name的字段, 未导出字段也可以被描述
// 嵌入提升的字段同样支持, 但跨越指针嵌入的提升字段无法换算出稳定偏移, 会被拒绝
func DescribeField(i interface{}, name string) (*Descriptor, perror.LErrorDesc) {
	owner, err := ownerTypeOf(i)
	if err != nil {
		return nil, err
	}
	structTyp := owner
	if structTyp.Kind() == reflect.Ptr {
		structTyp = structTyp.Elem()
	}
	if structTyp.Kind() != reflect.Struct {
		return nil, perror.LWarpStdError(perror.ErrOwnerNotSupport, owner.String())
	}
	field, ok := structTyp.FieldByName(name)
	if !ok {
		return nil, perror.LWarpStdError(perror.ErrMemberNotfound, owner.String(), name)
	}
	var offset uintptr
	cur := structTyp
	for n, idx := range field.Index {
		sub := cur.Field(idx)
		offset += sub.Offset
		if n == len(field.Index)-1 {
			break
		}
		cur = sub.Type
		if cur.Kind() == reflect.Ptr {
			return nil, perror.LWarpStdError(perror.ErrSignatureNotSupport,
				owner.String(), name, "field promoted through embedded pointer")
		}
	}
	return &Descriptor{
		kind:        KindField,
		owner:       owner,
		name:        name,
		field:       field,
		fieldOffset: offset,
	}, nil
}

func (d *Descriptor) Kind() Kind {
	return d.kind
}

func (d *Descriptor) Owner() reflect.Type {
	return d.owner
}

func (d *Descriptor) Name() string {
	return d.name
}

func (d *Descriptor) Method() reflect.Method {
	return d.method
}

func (d *Descriptor) Field() reflect.StructField {
	return d.field
}

func (d *Descriptor) FieldOffset() uintptr {
	return d.fieldOffset
}

func (d *Descriptor) Getter() (reflect.Method, bool) {
	return d.getter, d.hasGetter
}

func (d *Descriptor) Setter() (reflect.Method, bool) {
	return d.setter, d.hasSetter
}

func ownerTypeOf(i interface{}) (reflect.Type, perror.LErrorDesc) {
	if i == nil {
		return nil, perror.LWarpStdError(perror.ErrOwnerNotSupport, "nil instance")
	}
	return reflect.TypeOf(i), nil
}

// 读访问器: 除去接收器无输入, 单个返回值
func isGetterShape(method reflect.Method) bool {
	typ := method.Func.Type()
	return typ.NumIn() == 1 && typ.NumOut() == 1
}

// 写访问器: 除去接收器单个输入, 无返回值
func isSetterShape(method reflect.Method) bool {
	typ := method.Func.Type()
	return typ.NumIn() == 2 && typ.NumOut() == 0 && !typ.IsVariadic()
}
