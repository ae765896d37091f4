package abddefault

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/abd"
)

type pair struct {
	A any
	B any
}

func makePair(a, b any) pair {
	return pair{A: a, B: b}
}

type DefaultSuite struct {
	suite.Suite
}

func (suite *DefaultSuite) newDefault(target any, defaults map[string]any, opts ...abd.Option) *Default {
	d, err := New(target, defaults, opts...)
	suite.Require().NoError(err)
	suite.Require().NotNil(d)
	return d
}

func (suite *DefaultSuite) call(d *Default, c abd.Call) pair {
	results, err := d.Call(c)
	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	return results.First().(pair)
}

func (suite *DefaultSuite) TestPrecedence() {
	d := suite.newDefault(
		makePair,
		map[string]any{"a": 1, "b": 2},
		abd.WithParams("a", "b"),
	)

	suite.Equal(pair{1, 2}, suite.call(d, abd.Args()))
	suite.Equal(pair{"a", 2}, suite.call(d, abd.Args("a")))
	suite.Equal(pair{1, "b"}, suite.call(d, abd.Args().With("b", "b")))
	suite.Equal(pair{"x", "y"}, suite.call(d, abd.Args("x", "y")))

	// a positional argument wins over a keyword for the same parameter
	suite.Equal(pair{"pos", 2}, suite.call(d, abd.Args("pos").With("a", "kw")))
}

func (suite *DefaultSuite) TestPartialDefaults() {
	d := suite.newDefault(
		makePair,
		map[string]any{"b": "default"},
		abd.WithParams("a", "b"),
	)

	suite.Equal(pair{"given", "default"}, suite.call(d, abd.Args("given")))

	_, err := d.CallArgs()
	var ce *abd.CallError
	suite.ErrorAs(err, &ce)
}

func (suite *DefaultSuite) TestSetOptions() {
	d := suite.newDefault(
		makePair,
		map[string]any{"a": 1, "b": 2},
		abd.WithParams("a", "b"),
	)

	d.SetOptions(nil, map[string]any{"a": "new", "b": "defaults"})
	suite.Equal(pair{"new", "defaults"}, suite.call(d, abd.Args()))
}

func (suite *DefaultSuite) TestVariadic() {
	d := suite.newDefault(
		func(sep string, values ...int) int {
			total := 0
			for _, v := range values {
				total += v
			}

			return total + len(sep)
		},
		map[string]any{"sep": ","},
		abd.WithParams("sep"),
	)

	results, err := d.Call(abd.Args())
	suite.NoError(err)
	suite.Equal(abd.Results{1}, results)

	results, err = d.CallArgs("--", 1, 2, 3)
	suite.NoError(err)
	suite.Equal(abd.Results{8}, results)
}

func (suite *DefaultSuite) TestUnknownDefault() {
	d := suite.newDefault(
		makePair,
		map[string]any{"c": 3},
		abd.WithParams("a", "b"),
	)

	_, err := d.CallArgs(1, 2)
	suite.Error(err)
}

func (suite *DefaultSuite) TestNoParams() {
	d, err := New(makePair, map[string]any{"a": 1})
	suite.Nil(d)
	suite.ErrorIs(err, ErrNoParams)
}

func (suite *DefaultSuite) TestInvalidTarget() {
	d, err := New(123, nil, abd.WithParams("a"))
	suite.Nil(d)
	suite.ErrorIs(err, abd.ErrInvalidTarget)
}

func (suite *DefaultSuite) TestString() {
	d := suite.newDefault(
		makePair,
		map[string]any{"a": 1, "b": 2},
		abd.WithName("pair"),
		abd.WithParams("a", "b"),
	)

	suite.Equal("@Default(a=1, b=2) -> pair", d.String())
}

func TestDefault(t *testing.T) {
	suite.Run(t, new(DefaultSuite))
}
