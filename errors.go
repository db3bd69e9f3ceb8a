package trailer

type trailerError string

var _ error = trailerError("")

func (err trailerError) Error() string {
	return string(err)
}

const (
	ErrInvalidCapacity  = trailerError("capacity must be non-negative")
	ErrCapacityOverflow = trailerError("header size and capacity overflow the size type")
	ErrZeroSize         = trailerError("combined size must be at least 1 byte")
	ErrClosed           = trailerError("trailer is closed")
)
