package abdredo

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/abd"
)

type RedoSuite struct {
	suite.Suite

	printed []int
}

func (suite *RedoSuite) SetupTest() {
	suite.printed = nil
}

func (suite *RedoSuite) print(num int) int {
	suite.printed = append(suite.printed, num)
	return num
}

func (suite *RedoSuite) newRedo(opts ...Option) *Redo {
	r, err := New(suite.print, append(opts, WrapperOptions(abd.WithName("print")))...)
	suite.Require().NoError(err)
	suite.Require().NotNil(r)
	return r
}

func (suite *RedoSuite) callRange(r *Redo, n int) {
	for i := 0; i < n; i++ {
		results, err := r.CallArgs(i)
		suite.Require().NoError(err)
		suite.Require().Equal(abd.Results{i}, results)
	}
}

func (suite *RedoSuite) TestRedoLast() {
	r := suite.newRedo()
	suite.callRange(r, 10)
	suite.Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, suite.printed)

	suite.printed = nil
	replays := r.RedoLast(10)
	suite.Equal([]int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, suite.printed)
	suite.Len(replays, 10)

	suite.printed = nil
	suite.Equal([]any{9, 8, 7}, Firsts(r.RedoLast(3)))
	suite.Equal([]int{9, 8, 7}, suite.printed)

	// replays are not remembered
	suite.Equal(10, r.Len())
}

func (suite *RedoSuite) TestRedoFirst() {
	r := suite.newRedo()
	suite.callRange(r, 10)

	suite.printed = nil
	suite.Equal([]any{0, 1, 2, 3, 4}, Firsts(r.RedoFirst(5)))
	suite.Equal([]int{0, 1, 2, 3, 4}, suite.printed)
}

func (suite *RedoSuite) TestCounts() {
	r := suite.newRedo()
	suite.callRange(r, 3)

	suite.Nil(r.RedoLast(0))
	suite.Nil(r.RedoFirst(0))
	suite.Equal([]any{2, 1}, Firsts(r.RedoLast(-2)))
	suite.Equal([]any{0, 1}, Firsts(r.RedoFirst(-2)))
	suite.Equal([]any{2, 1, 0}, Firsts(r.RedoLast(100)))
	suite.Equal([]any{0, 1, 2}, Firsts(r.RedoFirst(100)))
}

func (suite *RedoSuite) TestExtremeCounts() {
	r := suite.newRedo()
	suite.callRange(r, 3)

	for _, n := range []int{math.MinInt, math.MinInt + 1, math.MaxInt} {
		suite.Run(fmt.Sprint(n), func() {
			suite.NotPanics(func() {
				suite.Equal([]any{2, 1, 0}, Firsts(r.RedoLast(n)))
				suite.Equal([]any{0, 1, 2}, Firsts(r.RedoFirst(n)))
			})
		})
	}
}

func (suite *RedoSuite) TestCallsAreCopied() {
	r, err := New(
		func(a, b int) int { return a + b },
		WrapperOptions(abd.WithParams("a", "b")),
	)

	suite.Require().NoError(err)

	var (
		args   = []any{1}
		kwargs = map[string]any{"b": 2}
	)

	results, err := r.Call(abd.Call{Args: args, Kwargs: kwargs})
	suite.Require().NoError(err)
	suite.Equal(abd.Results{3}, results)

	args[0] = 99
	kwargs["b"] = 100
	kwargs["c"] = 0

	expected := abd.Call{Args: []any{1}, Kwargs: map[string]any{"b": 2}}
	suite.Equal([]abd.Call{expected}, r.History())

	// changes to a returned history are not remembered either
	r.History()[0].Args[0] = 50
	suite.Equal([]any{3}, Firsts(r.RedoLast(1)))
	suite.Equal(expected, r.RedoFirst(1)[0].Call)
}

func (suite *RedoSuite) TestEmpty() {
	r := suite.newRedo()
	suite.Zero(r.Len())
	suite.Empty(r.History())
	suite.Nil(r.RedoLast(5))
	suite.Nil(r.RedoFirst(5))
}

func (suite *RedoSuite) TestMaxLen() {
	r := suite.newRedo(MaxLen(3))
	v, ok := r.Option(MaxLenOption)
	suite.True(ok)
	suite.Equal(3, v)

	suite.callRange(r, 5)
	suite.Equal(3, r.Len())
	suite.Equal([]abd.Call{abd.Args(2), abd.Args(3), abd.Args(4)}, r.History())
	suite.Equal([]any{4, 3, 2}, Firsts(r.RedoLast(10)))
	suite.Equal([]any{2, 3, 4}, Firsts(r.RedoFirst(10)))
}

func (suite *RedoSuite) TestDefaultMaxLen() {
	r := suite.newRedo()
	suite.callRange(r, DefaultMaxLen+5)
	suite.Equal(DefaultMaxLen, r.Len())
	suite.Equal(abd.Args(5), r.History()[0])
}

func (suite *RedoSuite) TestInvalidMaxLen() {
	for _, n := range []int{0, -1} {
		r, err := New(suite.print, MaxLen(n))
		suite.Nil(r)
		suite.ErrorIs(err, ErrInvalidMaxLen)
	}
}

func (suite *RedoSuite) TestInvalidTarget() {
	r, err := New("not a function")
	suite.Nil(r)
	suite.ErrorIs(err, abd.ErrInvalidTarget)
}

func (suite *RedoSuite) TestFailedCallsRemembered() {
	var fail = true
	r, err := New(func() error {
		if fail {
			return errors.New("expected")
		}

		return nil
	})

	suite.Require().NoError(err)

	_, err = r.CallArgs()
	suite.Error(err)

	replays := r.RedoLast(1)
	suite.Require().Len(replays, 1)
	suite.Error(replays[0].Err)

	fail = false
	replays = r.RedoLast(1)
	suite.Require().Len(replays, 1)
	suite.NoError(replays[0].Err)
}

func (suite *RedoSuite) TestString() {
	r := suite.newRedo(MaxLen(3))
	suite.Equal("@Redo(maxlen=3) -> print", r.String())
}

func (suite *RedoSuite) TestConcurrentCalls() {
	r, err := New(func(i int) int { return i }, MaxLen(1000))
	suite.Require().NoError(err)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				r.CallArgs(g*50 + i)
			}
		}(g)
	}

	wg.Wait()
	suite.Equal(500, r.Len())

	seen := make(map[any]bool)
	for _, c := range r.History() {
		seen[c.Args[0]] = true
	}

	suite.Len(seen, 500, fmt.Sprintf("history: %v", r.History()))
}

func TestRedo(t *testing.T) {
	suite.Run(t, new(RedoSuite))
}
