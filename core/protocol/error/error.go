package error

// LErrorDesc littlebind内部使用的标准错误描述
type LErrorDesc interface {
	Code() int
	Message() string
	AppendMore(more interface{})
	Mores() []interface{}
	error
}

// LNewErrorDesc 用于生产littlebind中的标准错误
type LNewErrorDesc func(code int, message string, mores ...interface{}) LErrorDesc

// LWarpErrorDesc 用于包装littlebind中的标准错误
type LWarpErrorDesc func(desc LErrorDesc, mores ...interface{}) LErrorDesc
