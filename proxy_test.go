package abd_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/abd"
	"github.com/xmidt-org/abd/abdtest"
)

type Base struct {
	calls int
}

func (b *Base) Calls() int {
	return b.calls
}

type Calculator struct {
	Base
	total int
}

func (c *Calculator) Add(v int) int {
	c.calls++
	c.total += v
	return c.total
}

func (c *Calculator) Divide(v int) (int, error) {
	c.calls++
	if v == 0 {
		return 0, errors.New("division by zero")
	}

	c.total /= v
	return c.total, nil
}

func (c *Calculator) String() string {
	return fmt.Sprintf("Calculator(%d)", c.total)
}

type ProxySuite struct {
	suite.Suite
}

func (suite *ProxySuite) newProxy(object any, inv abd.Invoker, opts ...abd.ProxyOption) *abd.Proxy {
	p, err := abd.NewProxy(object, inv, opts...)
	suite.Require().NoError(err)
	suite.Require().NotNil(p)
	return p
}

func (suite *ProxySuite) TestMethods() {
	p := suite.newProxy(new(Calculator), abd.Passthrough{})
	suite.Equal("abd_test.Calculator", p.Name())

	// String is a fmt hook, and is excluded, while the promoted Calls method is included
	suite.Equal([]string{"Add", "Calls", "Divide"}, p.Names())

	w, ok := p.Method("Add")
	suite.Require().True(ok)
	suite.Equal("abd_test.Calculator.Add", w.Name())

	_, ok = p.Method("String")
	suite.False(ok)
}

func (suite *ProxySuite) TestEveryCallIntercepted() {
	var (
		r      abdtest.Recorder
		object = new(Calculator)
		p      = suite.newProxy(object, &r)
	)

	results, err := p.CallArgs("Add", 5)
	suite.NoError(err)
	suite.Equal(abd.Results{5}, results)

	results, err = p.CallArgs("Add", 10)
	suite.NoError(err)
	suite.Equal(abd.Results{15}, results)

	results, err = p.CallArgs("Divide", 3)
	suite.NoError(err)
	suite.Equal(abd.Results{5}, results)

	_, err = p.CallArgs("Divide", 0)
	suite.EqualError(err, "division by zero")

	results, err = p.CallArgs("Calls")
	suite.NoError(err)
	suite.Equal(abd.Results{4}, results)

	suite.Equal(
		[]string{
			"abd_test.Calculator.Add",
			"abd_test.Calculator.Add",
			"abd_test.Calculator.Divide",
			"abd_test.Calculator.Divide",
			"abd_test.Calculator.Calls",
		},
		r.Names(),
	)

	// direct calls on the object are not intercepted
	object.Add(1)
	suite.Equal(5, r.Len())
}

func (suite *ProxySuite) TestUnknownMethod() {
	p := suite.newProxy(new(Calculator), abd.Passthrough{})
	_, err := p.CallArgs("Multiply", 2)

	var ce *abd.CallError
	suite.Require().ErrorAs(err, &ce)
	suite.Equal("abd_test.Calculator", ce.Name)
}

func (suite *ProxySuite) TestOptions() {
	suite.Run("IncludeHooks", func() {
		p := suite.newProxy(new(Calculator), abd.Passthrough{}, abd.IncludeHooks())
		suite.Equal([]string{"Add", "Calls", "Divide", "String"}, p.Names())

		results, err := p.CallArgs("String")
		suite.NoError(err)
		suite.Equal(abd.Results{"Calculator(0)"}, results)
	})

	suite.Run("Only", func() {
		p := suite.newProxy(new(Calculator), abd.Passthrough{}, abd.Only("Add"))
		suite.Equal([]string{"Add"}, p.Names())
	})

	suite.Run("Exclude", func() {
		p := suite.newProxy(new(Calculator), abd.Passthrough{}, abd.Exclude("Calls"))
		suite.Equal([]string{"Add", "Divide"}, p.Names())
	})

	suite.Run("MethodOptions", func() {
		p := suite.newProxy(
			new(Calculator),
			abd.Passthrough{},
			abd.AllMethods(abd.WithDoc("calculator")),
			abd.MethodOptions("Add", abd.WithParams("v"), abd.WithDoc("adds to the total")),
		)

		add, _ := p.Method("Add")
		suite.Equal("adds to the total", add.Doc())

		divide, _ := p.Method("Divide")
		suite.Equal("calculator", divide.Doc())

		results, err := p.Call("Add", abd.Args().With("v", 3))
		suite.NoError(err)
		suite.Equal(abd.Results{3}, results)
	})
}

func (suite *ProxySuite) TestErrors() {
	testCases := []struct {
		name   string
		object any
		inv    abd.Invoker
		opts   []abd.ProxyOption
		target bool
	}{
		{name: "NilObject", object: nil, inv: abd.Passthrough{}, target: true},
		{name: "NilPointer", object: (*Calculator)(nil), inv: abd.Passthrough{}, target: true},
		{name: "NoMethods", object: 123, inv: abd.Passthrough{}, target: true},
		{name: "NilInvoker", object: new(Calculator), inv: nil},
		{name: "UnknownOnly", object: new(Calculator), inv: abd.Passthrough{}, opts: []abd.ProxyOption{abd.Only("Missing")}, target: true},
		{name: "UnproxiedMethodOptions", object: new(Calculator), inv: abd.Passthrough{}, opts: []abd.ProxyOption{abd.MethodOptions("String")}, target: true},
		{name: "BadMethodOptions", object: new(Calculator), inv: abd.Passthrough{}, opts: []abd.ProxyOption{abd.MethodOptions("Add", abd.WithParams("a", "b"))}},
	}

	for _, testCase := range testCases {
		suite.Run(testCase.name, func() {
			p, err := abd.NewProxy(testCase.object, testCase.inv, testCase.opts...)
			suite.Nil(p)
			suite.Error(err)
			if testCase.target {
				suite.ErrorIs(err, abd.ErrInvalidTarget)
			}
		})
	}
}

func (suite *ProxySuite) TestDecorated() {
	object := new(Calculator)
	p := suite.newProxy(object, abd.Passthrough{})

	actual, ok := abd.Decorated[*Calculator](p)
	suite.True(ok)
	suite.Same(object, actual)
	suite.Same(object, p.Object())

	_, ok = abd.Decorated[fmt.Stringer](p)
	suite.True(ok)

	_, ok = abd.Decorated[error](p)
	suite.False(ok)
}

func TestProxy(t *testing.T) {
	suite.Run(t, new(ProxySuite))
}
