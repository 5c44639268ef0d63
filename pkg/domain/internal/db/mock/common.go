package mocks

// CallLog records the arguments of each call made against a mock,
// in call order.
type CallLog[T any] []T

// Times returns how many calls are recorded.
func (l CallLog[T]) Times() uint {
	return uint(len(l))
}
