package pathkit

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

// commandArity is the number of arguments consumed per repetition of a
// command. Z takes none and cannot repeat.
var commandArity = map[byte]int{
	'M': 2,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
	'Z': 0,
}

// pathScanner walks path data byte by byte.
type pathScanner struct {
	b   []byte
	pos int
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// skipSeparators skips whitespace with at most one comma in it.
func (s *pathScanner) skipSeparators() {
	s.skipSpace()
	if s.pos < len(s.b) && s.b[s.pos] == ',' {
		s.pos++
		s.skipSpace()
	}
}

func (s *pathScanner) skipSpace() {
	for s.pos < len(s.b) && isSpace(s.b[s.pos]) {
		s.pos++
	}
}

func (s *pathScanner) done() bool {
	return s.pos >= len(s.b)
}

func (s *pathScanner) atNumber() bool {
	return s.pos < len(s.b) && isNumberStart(s.b[s.pos])
}

func (s *pathScanner) fail(cmd byte, reason string) error {
	return &MalformedPathError{Pos: s.pos + 1, Command: cmd, Reason: reason}
}

func (s *pathScanner) number(cmd byte) (float64, error) {
	f, n := strconv.ParseFloat(s.b[s.pos:])
	if n == 0 {
		return 0, s.fail(cmd, "expected number")
	}
	// "1e" scans as 1 followed by a letter that starts no command.
	if end := s.pos + n; end < len(s.b) && isLetter(s.b[end]) {
		if _, ok := commandArity[upperCommand(s.b[end])]; !ok {
			return 0, s.fail(cmd, "invalid number")
		}
	}
	s.pos += n
	return f, s.separator(cmd)
}

// separator skips the separator after an argument. An empty argument
// between two commas is an error.
func (s *pathScanner) separator(cmd byte) error {
	s.skipSeparators()
	if s.pos < len(s.b) && s.b[s.pos] == ',' {
		return s.fail(cmd, "empty argument")
	}
	return nil
}

// flag reads an arc flag. Flags are single digits and may be written
// without separators ("a1 1 0 0110,10").
func (s *pathScanner) flag(cmd byte) (bool, error) {
	if s.pos >= len(s.b) {
		return false, s.fail(cmd, "expected arc flag")
	}
	var v bool
	switch s.b[s.pos] {
	case '0':
	case '1':
		v = true
	default:
		return false, s.fail(cmd, "arc flags must be 0 or 1")
	}
	s.pos++
	return v, s.separator(cmd)
}

// args reads one repetition of cmd's arguments into dst. Arc flags are
// returned as 0 or 1.
func (s *pathScanner) args(cmd, upper byte, dst []float64) error {
	for j := range dst {
		if upper == 'A' && (j == 3 || j == 4) {
			v, err := s.flag(cmd)
			if err != nil {
				return err
			}
			dst[j] = 0
			if v {
				dst[j] = 1
			}
			continue
		}
		if !s.atNumber() {
			if j == 0 {
				return s.fail(cmd, "expected number")
			}
			return &MalformedPathError{
				Pos:     s.pos + 1,
				Command: cmd,
				Reason:  fmt.Sprintf("argument count is not a multiple of %d", len(dst)),
			}
		}
		v, err := s.number(cmd)
		if err != nil {
			return err
		}
		dst[j] = v
	}
	return nil
}

// Parse converts path data into a Path with absolute coordinates.
//
// Both absolute (upper case) and relative (lower case) forms of
// M L H V C S Q T A Z are accepted. Arguments may repeat without
// restating the command; extra pairs after M are treated as L.
// H and V become LineTo with one coordinate held. S and T reflect the
// previous control point through the current point when they follow a
// curve of the same family, and use the current point otherwise.
//
// Parse fails with a *MalformedPathError for unknown commands, bad
// numbers, or incomplete argument groups, and with a *StructuralError
// when the first command is not a move. An empty string yields an
// empty path.
func Parse(d string) (*Path, error) {
	s := &pathScanner{b: []byte(d)}
	p := NewPath()

	s.skipSeparators()
	if s.done() {
		return p, nil
	}
	if c := s.b[s.pos]; c != 'M' && c != 'm' {
		if _, ok := commandArity[upperCommand(c)]; !ok {
			return nil, s.fail(0, "path must start with a command")
		}
		return nil, &StructuralError{Index: 0, Err: ErrNoMoveTo}
	}

	var (
		f       [7]float64
		quadCtl Point // last Q/T control
		cubCtl  Point // last C/S second control
		prev    byte
	)
	for {
		s.skipSeparators()
		if s.done() {
			break
		}
		cmd := s.b[s.pos]
		upper := upperCommand(cmd)
		arity, ok := commandArity[upper]
		if !ok {
			return nil, s.fail(cmd, "unknown command")
		}
		s.pos++
		s.skipSeparators()

		if arity == 0 {
			p.Close()
			prev = upper
			continue
		}

		first := true
		for first || s.atNumber() {
			if err := s.args(cmd, upper, f[:arity]); err != nil {
				return nil, err
			}
			cur := p.CurrentPoint()
			rel := cmd != upper
			abs := func(x, y float64) Point {
				if rel {
					return Pt(cur.X+x, cur.Y+y)
				}
				return Pt(x, y)
			}

			switch upper {
			case 'M':
				pt := abs(f[0], f[1])
				if first {
					p.MoveTo(pt.X, pt.Y)
				} else {
					p.LineTo(pt.X, pt.Y)
				}
			case 'L':
				pt := abs(f[0], f[1])
				p.LineTo(pt.X, pt.Y)
			case 'H':
				x := f[0]
				if rel {
					x += cur.X
				}
				p.LineTo(x, cur.Y)
			case 'V':
				y := f[0]
				if rel {
					y += cur.Y
				}
				p.LineTo(cur.X, y)
			case 'C':
				c1, c2, pt := abs(f[0], f[1]), abs(f[2], f[3]), abs(f[4], f[5])
				p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
				cubCtl = c2
			case 'S':
				c1 := cur
				if prev == 'C' || prev == 'S' {
					c1 = cubCtl.Reflect(cur)
				}
				c2, pt := abs(f[0], f[1]), abs(f[2], f[3])
				p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
				cubCtl = c2
			case 'Q':
				c, pt := abs(f[0], f[1]), abs(f[2], f[3])
				p.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
				quadCtl = c
			case 'T':
				c := cur
				if prev == 'Q' || prev == 'T' {
					c = quadCtl.Reflect(cur)
				}
				pt := abs(f[0], f[1])
				p.QuadraticTo(c.X, c.Y, pt.X, pt.Y)
				quadCtl = c
			case 'A':
				pt := abs(f[5], f[6])
				p.ArcTo(f[0], f[1], f[2], f[3] == 1, f[4] == 1, pt.X, pt.Y)
			}
			prev = upper
			first = false
		}
	}
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(d string) *Path {
	p, err := Parse(d)
	if err != nil {
		panic(err)
	}
	return p
}

func upperCommand(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
