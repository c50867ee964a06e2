package parser

import (
	"github.com/edwingeng/deque"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// Stream is a double-ended queue of component values consumed from the
// front. Every parsing layer reads its input through a Stream.
type Stream struct {
	q    deque.Deque
	last ast.ComponentValue // most recently consumed value, for error positions
}

// NewStream returns a stream over values.
func NewStream(values []ast.ComponentValue) *Stream {
	s := &Stream{q: deque.NewDeque()}
	s.PushBack(values...)
	return s
}

// NewTokenStream returns a stream whose values are the given tokens.
func NewTokenStream(tokens []token.Token) *Stream {
	s := &Stream{q: deque.NewDeque()}
	for _, t := range tokens {
		s.q.PushBack(ast.NewToken(t))
	}
	return s
}

// Len returns the number of values left.
func (s *Stream) Len() int {
	return s.q.Len()
}

// Empty reports whether all values were consumed.
func (s *Stream) Empty() bool {
	return s.q.Empty()
}

// Consume removes and returns the front value.
func (s *Stream) Consume() (ast.ComponentValue, error) {
	if s.q.Empty() {
		return nil, s.errorAtEnd(ErrUnexpectedToken, "unexpected end of input")
	}
	v := s.q.PopFront().(ast.ComponentValue)
	s.last = v
	return v, nil
}

// ConsumeAs removes the front value, which must be of variant T.
func ConsumeAs[T ast.ComponentValue](s *Stream) (T, error) {
	var zero T
	v, ok := PeekAs[T](s, 0)
	if !ok {
		return zero, errorAt(ErrTypeMismatch, s.Peek(0), "expected %s, got %s", zero.Kind(), describe(s.Peek(0)))
	}
	s.q.PopFront()
	s.last = v
	return v, nil
}

// ConsumeToken removes the front value, which must be a token of type typ.
// msg is the error message used otherwise.
func (s *Stream) ConsumeToken(typ token.Type, msg string) (token.Token, error) {
	t, ok := s.PeekToken(0)
	if !ok || t.Type != typ {
		v := s.Peek(0)
		if v == nil {
			return token.Token{}, s.errorAtEnd(ErrUnexpectedToken, "%s, got end of input", msg)
		}
		return token.Token{}, errorAt(ErrUnexpectedToken, v, "%s, got %s", msg, describe(v))
	}
	s.q.PopFront()
	s.last = ast.NewToken(t)
	return t, nil
}

// Peek returns the value i positions from the front, or nil.
func (s *Stream) Peek(i int) ast.ComponentValue {
	if i < 0 || i >= s.q.Len() {
		return nil
	}
	return s.q.Peek(i).(ast.ComponentValue)
}

// PeekAs returns the value i positions from the front if it is of variant T.
func PeekAs[T ast.ComponentValue](s *Stream, i int) (T, bool) {
	v, ok := s.Peek(i).(T)
	return v, ok
}

// PeekToken returns the token i positions from the front.
func (s *Stream) PeekToken(i int) (token.Token, bool) {
	t, ok := PeekAs[ast.Token](s, i)
	return t.Token, ok
}

// Check reports whether the value i positions from the front is a token of
// type typ.
func (s *Stream) Check(typ token.Type, i int) bool {
	t, ok := s.PeekToken(i)
	return ok && t.Type == typ
}

// CheckLexeme reports whether the value i positions from the front is a
// token with the given lexeme.
func (s *Stream) CheckLexeme(lexeme string, i int) bool {
	t, ok := s.PeekToken(i)
	return ok && t.Lexeme == lexeme
}

// PushFront puts values back at the front, keeping their order.
func (s *Stream) PushFront(values ...ast.ComponentValue) {
	for i := len(values) - 1; i >= 0; i-- {
		s.q.PushFront(values[i])
	}
}

// PushBack appends values.
func (s *Stream) PushBack(values ...ast.ComponentValue) {
	for _, v := range values {
		s.q.PushBack(v)
	}
}

// Values returns the values left without consuming them.
func (s *Stream) Values() []ast.ComponentValue {
	out := make([]ast.ComponentValue, 0, s.q.Len())
	s.q.Range(func(_ int, v deque.Elem) bool {
		out = append(out, v.(ast.ComponentValue))
		return true
	})
	return out
}

// atEnd reports whether the stream is exhausted or at an EOF token.
func (s *Stream) atEnd() bool {
	return s.q.Empty() || s.Check(token.EOF, 0)
}

// atBlock reports whether the front value opens a '{' block, either as a raw
// token or as an already built simple block.
func (s *Stream) atBlock() bool {
	if s.Check(token.LeftBrace, 0) {
		return true
	}
	b, ok := PeekAs[*ast.SimpleBlock](s, 0)
	return ok && b.Open.Type == token.LeftBrace
}

func (s *Stream) errorAtEnd(err error, format string, args ...any) *Error {
	if s.last != nil {
		if t, ok := ast.FirstToken(s.last); ok {
			return newError(err, &t, format, args...)
		}
	}
	return newError(err, nil, format, args...)
}
