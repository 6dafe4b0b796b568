package binder

import (
	"reflect"
	"testing"

	"github.com/nyan233/littlebind/core/member"
	perror "github.com/nyan233/littlebind/core/protocol/error"
	"github.com/stretchr/testify/assert"
)

type calcBase struct {
	Generation int
}

type calcObject struct {
	calcBase
	Count   int
	label   string
	mode    int
	history []int
}

func (c *calcObject) Add(a, b int) int {
	c.history = append(c.history, a+b)
	return a + b
}

func (c *calcObject) Reset() {
	c.Count = 0
	c.history = nil
}

func (c *calcObject) Describe(prefix string, err error) string {
	if err == nil {
		return prefix + ":<nil>"
	}
	return prefix + ":" + err.Error()
}

func (c *calcObject) Sum(vs ...int) int {
	total := 0
	for _, v := range vs {
		total += v
	}
	return total
}

func (c *calcObject) Pair() (int, int) { return 1, 2 }

func (c *calcObject) Label() string { return c.label }

func (c *calcObject) SetLabel(label string) { c.label = label }

func (c *calcObject) Version() int { return 1 }

func (c *calcObject) SetMode(m int) { c.mode = m }

// 捕获thunk调用期的panic并要求其携带标准错误
func catchLError(t *testing.T, fn func()) perror.LErrorDesc {
	t.Helper()
	var desc perror.LErrorDesc
	func() {
		defer func() {
			t.Helper()
			recovered := recover()
			if recovered == nil {
				t.Fatal("expected panic but got none")
			}
			lErr, ok := recovered.(perror.LErrorDesc)
			if !ok {
				t.Fatalf("panic value is not LErrorDesc: %v", recovered)
			}
			desc = lErr
		}()
		fn()
	}()
	return desc
}

func mustDescribe(t *testing.T, describe func(interface{}, string) (*member.Descriptor, perror.LErrorDesc), i interface{}, name string) *member.Descriptor {
	t.Helper()
	desc, err := describe(i, name)
	if err != nil {
		t.Fatal(err)
	}
	return desc
}

func TestMethodThunk(t *testing.T) {
	desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Add")
	thunk, err := BindMethod(desc)
	if err != nil {
		t.Fatal(err)
	}
	instance := new(calcObject)
	result := thunk(instance, []interface{}{3, 4})
	assert.Equal(t, 7, result)
	// 和直接反射调用的结果一致
	direct := reflect.ValueOf(instance).MethodByName("Add").
		Call([]reflect.Value{reflect.ValueOf(3), reflect.ValueOf(4)})
	assert.Equal(t, direct[0].Interface(), result)
}

func TestMethodThunkVoid(t *testing.T) {
	desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Reset")
	thunk, err := BindMethod(desc)
	if err != nil {
		t.Fatal(err)
	}
	instance := &calcObject{Count: 10}
	assert.Nil(t, thunk(instance, nil))
	assert.Equal(t, 0, instance.Count)
}

func TestMethodThunkInterfaceParam(t *testing.T) {
	desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Describe")
	thunk, err := BindMethod(desc)
	if err != nil {
		t.Fatal(err)
	}
	instance := new(calcObject)
	assert.Equal(t, "E:"+assert.AnError.Error(), thunk(instance, []interface{}{"E", assert.AnError}))
	// nil可以转换到接口形参
	assert.Equal(t, "E:<nil>", thunk(instance, []interface{}{"E", nil}))
}

func TestMethodThunkFailures(t *testing.T) {
	desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Add")
	thunk, err := BindMethod(desc)
	if err != nil {
		t.Fatal(err)
	}
	t.Run("TargetMismatch", func(t *testing.T) {
		lErr := catchLError(t, func() {
			thunk("not a calc object", []interface{}{1, 2})
		})
		assert.Equal(t, perror.TargetCastErr, lErr.Code())
	})
	t.Run("ArgMismatch", func(t *testing.T) {
		lErr := catchLError(t, func() {
			thunk(new(calcObject), []interface{}{1, "2"})
		})
		assert.Equal(t, perror.ValueCastErr, lErr.Code())
	})
	t.Run("NoWiden", func(t *testing.T) {
		// int32不会被静默宽化到int
		lErr := catchLError(t, func() {
			thunk(new(calcObject), []interface{}{int32(1), 2})
		})
		assert.Equal(t, perror.ValueCastErr, lErr.Code())
	})
	t.Run("ShortArgs", func(t *testing.T) {
		// 参数列表过短按原样抛出越界panic, 不做默认值补齐
		assert.Panics(t, func() {
			thunk(new(calcObject), []interface{}{1})
		})
	})
}

func TestMethodThunkRejects(t *testing.T) {
	t.Run("Variadic", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Sum")
		thunk, err := BindMethod(desc)
		assert.Nil(t, thunk)
		assert.NotNil(t, err)
		assert.Equal(t, perror.SignatureNotSupport, err.Code())
	})
	t.Run("MultiResult", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Pair")
		thunk, err := BindMethod(desc)
		assert.Nil(t, thunk)
		assert.NotNil(t, err)
		assert.Equal(t, perror.SignatureNotSupport, err.Code())
	})
	t.Run("KindMismatch", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeField, new(calcObject), "Count")
		thunk, err := BindMethod(desc)
		assert.Nil(t, thunk)
		assert.NotNil(t, err)
		assert.Equal(t, perror.KindMismatch, err.Code())
	})
	t.Run("NilDescriptor", func(t *testing.T) {
		thunk, err := BindMethod(nil)
		assert.Nil(t, thunk)
		assert.NotNil(t, err)
		assert.Equal(t, perror.KindMismatch, err.Code())
	})
}

func TestReadThunk(t *testing.T) {
	t.Run("ExportedField", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeField, new(calcObject), "Count")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, 5, thunk(&calcObject{Count: 5}))
	})
	t.Run("ExportedFieldByValue", func(t *testing.T) {
		// 非指针实例的导出字段读取走装箱副本
		desc := mustDescribe(t, member.DescribeField, calcObject{}, "Count")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, 9, thunk(calcObject{Count: 9}))
	})
	t.Run("UnexportedField", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeField, new(calcObject), "label")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, "hello", thunk(&calcObject{label: "hello"}))
	})
	t.Run("PromotedField", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeField, new(calcObject), "Generation")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		instance := new(calcObject)
		instance.Generation = 3
		assert.Equal(t, 3, thunk(instance))
	})
	t.Run("Property", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeProperty, new(calcObject), "Label")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, "prop", thunk(&calcObject{label: "prop"}))
	})
	t.Run("MissingGetter", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeProperty, new(calcObject), "Mode")
		thunk, err := BindRead(desc)
		assert.Nil(t, thunk)
		assert.NotNil(t, err)
		assert.Equal(t, perror.GetterNotfound, err.Code())
	})
	t.Run("TargetMismatch", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeField, new(calcObject), "Count")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		lErr := catchLError(t, func() {
			thunk(100)
		})
		assert.Equal(t, perror.TargetCastErr, lErr.Code())
	})
	t.Run("NilTarget", func(t *testing.T) {
		desc := mustDescribe(t, member.DescribeField, new(calcObject), "Count")
		thunk, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		lErr := catchLError(t, func() {
			thunk((*calcObject)(nil))
		})
		assert.Equal(t, perror.TargetCastErr, lErr.Code())
	})
}

func TestWriteThunkRoundTrip(t *testing.T) {
	roundTrip := func(t *testing.T, name string, value interface{}) {
		t.Helper()
		instance := new(calcObject)
		writeDesc := mustDescribe(t, member.DescribeField, instance, name)
		write, err := BindWrite(writeDesc)
		if err != nil {
			t.Fatal(err)
		}
		read, err := BindRead(writeDesc)
		if err != nil {
			t.Fatal(err)
		}
		write(instance, value)
		assert.Equal(t, value, read(instance))
	}
	t.Run("ExportedField", func(t *testing.T) {
		roundTrip(t, "Count", 42)
	})
	t.Run("UnexportedField", func(t *testing.T) {
		roundTrip(t, "label", "written")
	})
	t.Run("PromotedField", func(t *testing.T) {
		roundTrip(t, "Generation", 7)
	})
	t.Run("ReferenceField", func(t *testing.T) {
		roundTrip(t, "history", []int{1, 2, 3})
	})
	t.Run("Property", func(t *testing.T) {
		instance := new(calcObject)
		desc := mustDescribe(t, member.DescribeProperty, instance, "Label")
		write, err := BindWrite(desc)
		if err != nil {
			t.Fatal(err)
		}
		read, err := BindRead(desc)
		if err != nil {
			t.Fatal(err)
		}
		write(instance, "via setter")
		assert.Equal(t, "via setter", read(instance))
		assert.Equal(t, "via setter", instance.label)
	})
}

type paddedBase struct {
	flag byte
	// flag之后有对齐填充, total在嵌入层内的偏移非零
	total int64
}

type paddedObject struct {
	lead byte
	paddedBase
	Tail int32
}

// 提升的未导出字段: 总偏移跨过两层填充, 写入不能波及相邻字段
func TestWriteThunkPromotedUnexported(t *testing.T) {
	instance := &paddedObject{lead: 1, Tail: 3}
	instance.flag = 2
	instance.total = 7
	desc := mustDescribe(t, member.DescribeField, instance, "total")
	write, err := BindWrite(desc)
	if err != nil {
		t.Fatal(err)
	}
	read, err := BindRead(desc)
	if err != nil {
		t.Fatal(err)
	}
	write(instance, int64(99))
	assert.Equal(t, int64(99), read(instance))
	assert.Equal(t, int64(99), instance.total)
	assert.Equal(t, byte(1), instance.lead)
	assert.Equal(t, byte(2), instance.flag)
	assert.Equal(t, int32(3), instance.Tail)
	// int不会宽化到int64, 转换失败时字段保持原值
	lErr := catchLError(t, func() {
		write(instance, 100)
	})
	assert.Equal(t, perror.ValueCastErr, lErr.Code())
	assert.Equal(t, int64(99), instance.total)
}

func TestWriteThunkMissingSetter(t *testing.T) {
	// 没有写访问器的属性必须在编译期失败, 不会产出半成品thunk
	desc := mustDescribe(t, member.DescribeProperty, new(calcObject), "Version")
	thunk, err := BindWrite(desc)
	assert.Nil(t, thunk)
	assert.NotNil(t, err)
	assert.Equal(t, perror.SetterNotfound, err.Code())
}

func TestWriteThunkBadValue(t *testing.T) {
	instance := &calcObject{Count: 11}
	desc := mustDescribe(t, member.DescribeField, instance, "Count")
	thunk, err := BindWrite(desc)
	if err != nil {
		t.Fatal(err)
	}
	lErr := catchLError(t, func() {
		thunk(instance, "not an int")
	})
	assert.Equal(t, perror.ValueCastErr, lErr.Code())
	// 转换失败必须发生在写入之前, 字段保持原值
	assert.Equal(t, 11, instance.Count)
}

func TestWriteThunkNonPointerOwner(t *testing.T) {
	desc := mustDescribe(t, member.DescribeField, calcObject{}, "Count")
	thunk, err := BindWrite(desc)
	assert.Nil(t, thunk)
	assert.NotNil(t, err)
	assert.Equal(t, perror.TargetNotAddressable, err.Code())
}

func TestThunkInterchangeable(t *testing.T) {
	desc := mustDescribe(t, member.DescribeMethod, new(calcObject), "Add")
	thunk1, err := BindMethod(desc)
	if err != nil {
		t.Fatal(err)
	}
	// 第二个thunk从独立的描述符编译
	desc2 := mustDescribe(t, member.DescribeMethod, new(calcObject), "Add")
	thunk2, err := BindMethod(desc2)
	if err != nil {
		t.Fatal(err)
	}
	instance := new(calcObject)
	assert.Equal(t, thunk1(instance, []interface{}{20, 22}), thunk2(instance, []interface{}{20, 22}))
	assert.Equal(t, []int{42, 42}, instance.history)
}
