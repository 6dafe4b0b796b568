package cache

import (
	"reflect"

	"github.com/nyan233/littlebind/core/binder"
	"github.com/nyan233/littlebind/core/container"
	"github.com/nyan233/littlebind/core/member"
	perror "github.com/nyan233/littlebind/core/protocol/error"
)

type Op uint8

const (
	OpCall Op = iota + 1
	OpRead
	OpWrite
)

// Identity 编译产物的键: 声明类型+成员种类+成员名+访问方向
type Identity struct {
	Owner reflect.Type
	Kind  member.Kind
	Name  string
	Op    Op
}

func IdentityOf(desc *member.Descriptor, op Op) Identity {
	return Identity{
		Owner: desc.Owner(),
		Kind:  desc.Kind(),
		Name:  desc.Name(),
		Op:    op,
	}
}

// Group 按成员身份记忆化编译好的thunk, 绑定器本身不做缓存
// 并发的两次未命中会触发两次编译, 独立编译出的thunk是可互换的,
// 哪一个留在Map里都不影响调用结果
type Group struct {
	methods *container.RCUMap[Identity, binder.MethodThunk]
	reads   *container.RCUMap[Identity, binder.ReadThunk]
	writes  *container.RCUMap[Identity, binder.WriteThunk]
}

func NewGroup() *Group {
	return &Group{
		methods: container.NewRCUMap[Identity, binder.MethodThunk](),
		reads:   container.NewRCUMap[Identity, binder.ReadThunk](),
		writes:  container.NewRCUMap[Identity, binder.WriteThunk](),
	}
}

func (g *Group) Method(desc *member.Descriptor) (binder.MethodThunk, perror.LErrorDesc) {
	if desc == nil {
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, "nil descriptor", "Group.Method")
	}
	key := IdentityOf(desc, OpCall)
	if thunk, ok := g.methods.LoadOk(key); ok {
		return thunk, nil
	}
	thunk, err := binder.BindMethod(desc)
	if err != nil {
		return nil, err
	}
	g.methods.Store(key, thunk)
	return thunk, nil
}

func (g *Group) Read(desc *member.Descriptor) (binder.ReadThunk, perror.LErrorDesc) {
	if desc == nil {
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, "nil descriptor", "Group.Read")
	}
	key := IdentityOf(desc, OpRead)
	if thunk, ok := g.reads.LoadOk(key); ok {
		return thunk, nil
	}
	thunk, err := binder.BindRead(desc)
	if err != nil {
		return nil, err
	}
	g.reads.Store(key, thunk)
	return thunk, nil
}

func (g *Group) Write(desc *member.Descriptor) (binder.WriteThunk, perror.LErrorDesc) {
	if desc == nil {
		return nil, perror.LWarpStdError(perror.ErrKindMismatch, "nil descriptor", "Group.Write")
	}
	key := IdentityOf(desc, OpWrite)
	if thunk, ok := g.writes.LoadOk(key); ok {
		return thunk, nil
	}
	thunk, err := binder.BindWrite(desc)
	if err != nil {
		return nil, err
	}
	g.writes.Store(key, thunk)
	return thunk, nil
}

// Len 当前缓存的thunk数量
func (g *Group) Len() int {
	return g.methods.Len() + g.reads.Len() + g.writes.Len()
}
