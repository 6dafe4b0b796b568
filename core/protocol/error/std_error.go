package error

import (
	"encoding/json"
)

type LStdError struct {
	LCode    Code          `json:"code"`
	LMessage string        `json:"message"`
	LMores   []interface{} `json:"mores"`
}

func LNewStdError(code int, message string, mores ...interface{}) LErrorDesc {
	return &LStdError{
		LCode:    Code(code),
		LMessage: message,
		LMores:   mores,
	}
}

// LWarpStdError 包装一个已有的标准错误, 不会修改被包装的错误
func LWarpStdError(desc LErrorDesc, mores ...interface{}) LErrorDesc {
	newMores := make([]interface{}, 0, len(desc.Mores())+len(mores))
	newMores = append(newMores, desc.Mores()...)
	newMores = append(newMores, mores...)
	return &LStdError{
		LCode:    Code(desc.Code()),
		LMessage: desc.Message(),
		LMores:   newMores,
	}
}

func (L *LStdError) Code() int {
	return int(L.LCode)
}

func (L *LStdError) Message() string {
	return L.LMessage
}

func (L *LStdError) AppendMore(more interface{}) {
	L.LMores = append(L.LMores, more)
}

func (L *LStdError) Mores() []interface{} {
	return L.LMores
}

func (L *LStdError) Error() string {
	bytes, err := json.Marshal(L)
	if err != nil {
		panic("json.Marshal failed : " + err.Error())
	}
	return string(bytes)
}
