package wfc

import "unicode/utf8"

// Socket is the label carried by one edge of a tile.
type Socket string

// Reverse returns the socket read back to front.
func (s Socket) Reverse() Socket {
	runes := []rune(string(s))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return Socket(runes)
}

// Matches reports whether s can sit against other.
func (s Socket) Matches(other Socket) bool { return Compatible(s, other) }

// Compatible reports whether a reads identically to b reversed. The
// relation is symmetric, and a palindromic socket matches itself.
func Compatible(a, b Socket) bool {
	sa, sb := string(a), string(b)
	for len(sa) > 0 && len(sb) > 0 {
		ra, na := utf8.DecodeRuneInString(sa)
		rb, nb := utf8.DecodeLastRuneInString(sb)
		if ra != rb {
			return false
		}
		sa = sa[na:]
		sb = sb[:len(sb)-nb]
	}
	return len(sa) == 0 && len(sb) == 0
}

// Sockets holds one socket per side, indexed by Direction.
type Sockets [numDirections]Socket

// Side returns the socket on side d.
func (s Sockets) Side(d Direction) Socket { return s[d] }

// Rotate returns the sockets after n clockwise quarter turns. The socket
// that faced Left faces Up after one turn.
func (s Sockets) Rotate(n int) Sockets {
	n = ((n % numDirections) + numDirections) % numDirections
	out := s
	for i := 0; i < n; i++ {
		out = Sockets{
			Up:    out[Left],
			Right: out[Up],
			Down:  out[Right],
			Left:  out[Down],
		}
	}
	return out
}
