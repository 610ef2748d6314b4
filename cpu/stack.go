package cpu

const (
	STACK_LIMIT = 16 // Maximum stack depth
)

// Stack holds the return addresses of outstanding calls.
type Stack struct {
	Data    [STACK_LIMIT]uint16
	Pointer int // Number of saved addresses.
}

// Push saves a return address.
func (s *Stack) Push(address uint16) (err error) {
	if s.Pointer >= len(s.Data) {
		err = ErrStackOverflow
		return
	}

	s.Data[s.Pointer] = address
	s.Pointer++
	return
}

// Pop removes and returns the most recently saved return address.
func (s *Stack) Pop() (address uint16, err error) {
	if s.Pointer <= 0 {
		err = ErrStackUnderflow
		return
	}

	s.Pointer--
	address = s.Data[s.Pointer]
	return
}
