package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject_ValueReturnsCurrent(t *testing.T) {
	s := NewSubject(42)
	assert.Equal(t, 42, s.Value())

	s.Set(43)
	assert.Equal(t, 43, s.Value())
}

func TestSubscribe_DeliversCurrentValueImmediately(t *testing.T) {
	s := NewSubject("initial")

	var got []string
	s.Subscribe(func(v string) { got = append(got, v) })

	assert.Equal(t, []string{"initial"}, got)
}

func TestSubscribe_DeliversEveryMutationInOrder(t *testing.T) {
	s := NewSubject(0)

	var got []int
	s.Subscribe(func(v int) { got = append(got, v) })

	s.Set(1)
	s.Set(2)
	s.Set(3)

	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestSubscribe_MultipleSubscribersObserveIdenticalValues(t *testing.T) {
	s := NewSubject(0)

	var a, b []int
	s.Subscribe(func(v int) { a = append(a, v) })
	s.Set(1)
	s.Subscribe(func(v int) { b = append(b, v) })
	s.Set(2)

	assert.Equal(t, []int{0, 1, 2}, a)
	// Replay depth is 1: the late subscriber sees only the latest value onward.
	assert.Equal(t, []int{1, 2}, b)
}

func TestCancel_StopsDelivery(t *testing.T) {
	s := NewSubject(0)

	var got []int
	cancel := s.Subscribe(func(v int) { got = append(got, v) })

	s.Set(1)
	cancel()
	s.Set(2)

	assert.Equal(t, []int{0, 1}, got)
}

func TestCancel_IsIdempotent(t *testing.T) {
	s := NewSubject(0)
	cancel := s.Subscribe(func(int) {})
	cancel()
	cancel()
	s.Set(1)
}

func TestCancel_DoesNotAffectOtherSubscribers(t *testing.T) {
	s := NewSubject(0)

	var kept []int
	cancel := s.Subscribe(func(int) {})
	s.Subscribe(func(v int) { kept = append(kept, v) })

	cancel()
	s.Set(5)

	assert.Equal(t, []int{0, 5}, kept)
}
