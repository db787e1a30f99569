package tson

// Cursor is a stateful read-cursor over an owned byte buffer. It never
// copies the buffer; every read either advances the index or returns a
// sub-slice that borrows it.
type Cursor struct {
	buf []byte
	i   int
}

// NewCursor wraps buf in a Cursor starting at index 0.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Index returns the current read position.
func (c *Cursor) Index() int { return c.i }

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Done reports whether the cursor has consumed the whole buffer.
func (c *Cursor) Done() bool { return c.i >= len(c.buf) }

// Peek returns the byte at the current position without advancing.
func (c *Cursor) Peek() byte { return c.buf[c.i] }

// ReadNext returns the byte at the current position and advances by one.
func (c *Cursor) ReadNext() byte {
	b := c.buf[c.i]
	c.i++
	return b
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) { c.i += n }

// SkipReverse moves the cursor back by n bytes.
func (c *Cursor) SkipReverse(n int) { c.i -= n }

// SkipRest advances the cursor to the end of the buffer.
func (c *Cursor) SkipRest() { c.i = len(c.buf) }

// Read returns the next n bytes and advances past them.
func (c *Cursor) Read(n int) []byte {
	b := c.buf[c.i : c.i+n]
	c.i += n
	return b
}

// ReadRange returns buf[a:b] without moving the cursor.
func (c *Cursor) ReadRange(a, b int) []byte {
	return c.buf[a:b]
}

// View returns the whole underlying buffer.
func (c *Cursor) View() []byte { return c.buf }

// ReadU32LE reads and decodes a little-endian u32 length field, advancing
// past it. Shared by the TSON codec and the query parser, both of which
// read the same length-prefix shape.
func (c *Cursor) ReadU32LE() uint32 { return le32(c.Read(lengthFieldSize)) }

// ReadF64LE reads and decodes a little-endian IEEE-754 double, advancing
// past it.
func (c *Cursor) ReadF64LE() float64 { return le64f(c.Read(floatFieldSize)) }
