package core

import (
	"fmt"
	"strings"

	"github.com/team-phoenix/TestFront/libretro"
)

// Cores log through a C printf-style callback. Go cannot receive C
// varargs, so the bridge declares four extra integer parameters and, on
// ABIs where variadic integer arguments arrive in the same registers as
// fixed ones, interprets the common directives against them. Everywhere
// else the raw format string is forwarded untouched.

// formatLogMessage renders a core log format string best-effort. Supported
// directives: %s %d %i %u %x %X %c %p %%. Length modifiers (l, ll, z, h)
// are skipped. On the first directive that cannot be rendered, the rest of
// the format string is appended verbatim.
func formatLogMessage(format string, args [4]uintptr) string {
	format = strings.TrimRight(format, "\n")

	if !varargRegsValid || !strings.Contains(format, "%") {
		return format
	}

	var b strings.Builder
	argIdx := 0
	i := 0
	for i < len(format) {
		ch := format[i]
		if ch != '%' {
			b.WriteByte(ch)
			i++
			continue
		}

		// Scan past flags, width, and length modifiers.
		j := i + 1
		for j < len(format) && strings.IndexByte("-+ #0123456789.lzh", format[j]) >= 0 {
			j++
		}
		if j >= len(format) {
			b.WriteString(format[i:])
			break
		}

		verb := format[j]
		if verb == '%' {
			b.WriteByte('%')
			i = j + 1
			continue
		}
		if argIdx >= len(args) {
			b.WriteString(format[i:])
			break
		}

		arg := args[argIdx]
		switch verb {
		case 's':
			b.WriteString(libretro.GoStringAddr(arg))
		case 'd', 'i':
			b.WriteString(fmt.Sprintf("%d", int64(arg)))
		case 'u':
			b.WriteString(fmt.Sprintf("%d", uint64(arg)))
		case 'x':
			b.WriteString(fmt.Sprintf("%x", uint64(arg)))
		case 'X':
			b.WriteString(fmt.Sprintf("%X", uint64(arg)))
		case 'c':
			b.WriteByte(byte(arg))
		case 'p':
			b.WriteString(fmt.Sprintf("0x%x", uint64(arg)))
		default:
			// Float or unknown directive; registers don't carry it.
			b.WriteString(format[i:])
			return b.String()
		}
		argIdx++
		i = j + 1
	}

	return b.String()
}
