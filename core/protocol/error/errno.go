package error

// 预定义的标准错误, 这些值是共享的, 绑定现场的信息通过LWarpStdError附加
var (
	ErrMemberNotfound       = LNewStdError(MemberNotfound, "member not found on declaring type")
	ErrKindMismatch         = LNewStdError(KindMismatch, "descriptor kind does not match bind entry")
	ErrOwnerNotSupport      = LNewStdError(OwnerNotSupport, "declaring instance is not a struct or struct pointer")
	ErrGetterNotfound       = LNewStdError(GetterNotfound, "property has no getter")
	ErrSetterNotfound       = LNewStdError(SetterNotfound, "property has no setter")
	ErrSignatureNotSupport  = LNewStdError(SignatureNotSupport, "member signature not supported")
	ErrTargetNotAddressable = LNewStdError(TargetNotAddressable, "field access requires a pointer declaring instance")
	ErrTargetCast           = LNewStdError(TargetCastErr, "target cannot narrow to declaring type")
	ErrValueCast            = LNewStdError(ValueCastErr, "erased value cannot convert to declared type")
)
