package error

// 定义littlebind内部会使用到的错误码

type Code int

func (c Code) String() string {
	return mappingStr[c]
}

const (
	Success              = 200  // 成功返回
	Unknown              = 300  // 不是littlebind可以识别的错误
	MemberNotfound       = 1404 // 声明类型上没有被描述的成员
	KindMismatch         = 1406 // 描述符的成员种类和绑定入口不匹配
	OwnerNotSupport      = 1407 // 注册的实例不是结构体或者结构体指针
	GetterNotfound       = 2404 // 属性缺少读访问器
	SetterNotfound       = 2405 // 属性缺少写访问器
	SignatureNotSupport  = 2060 // 变长参数/多返回值/跨指针提升字段等不被支持的成员形状
	TargetNotAddressable = 2061 // 字段的底层写入要求目标为指针类型
	TargetCastErr        = 1040 // 调用时目标实例收窄到声明类型失败
	ValueCastErr         = 1041 // 调用时擦除的参数/值转换到声明类型失败
)

var mappingStr = map[Code]string{
	Success:              "Success",
	Unknown:              "Unknown",
	MemberNotfound:       "MemberNotfound",
	KindMismatch:         "KindMismatch",
	OwnerNotSupport:      "OwnerNotSupport",
	GetterNotfound:       "GetterNotfound",
	SetterNotfound:       "SetterNotfound",
	SignatureNotSupport:  "SignatureNotSupport",
	TargetNotAddressable: "TargetNotAddressable",
	TargetCastErr:        "TargetCastErr",
	ValueCastErr:         "ValueCastErr",
}
