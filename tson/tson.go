// Package tson implements TSON, the length-prefixed binary framing reefdb
// uses to store JSON-shaped documents: a tag byte precedes every value, and
// every composite (object or array) carries a little-endian u32 byte length
// so a reader can skip it without understanding its contents.
//
// The codec is single-pass in both directions. Encode walks minified JSON
// bytes once, writing TSON as it goes and back-patching composite lengths
// through an offset stack once each composite closes. Decode walks TSON
// bytes once, driven entirely by tag bytes; it steps over the length
// prefixes without using them.
package tson

import "errors"

// Tag bytes. One precedes every TSON value.
const (
	ObjectBegin byte = 0x00
	ObjectEnd   byte = 0x01
	ArrayBegin  byte = 0x02
	ArrayEnd    byte = 0x03
	String      byte = 0x04
	Number      byte = 0x05
	True        byte = 0x06
	False       byte = 0x07
	Null        byte = 0x08
	Pair        byte = 0x09
	Separator   byte = 0x0A
)

var (
	// ErrMalformedJSON indicates the encoder was given invalid JSON input.
	ErrMalformedJSON = errors.New("tson: malformed json")
	// ErrMalformedTSON indicates the decoder found an unrecognized tag or
	// an inconsistent length prefix.
	ErrMalformedTSON = errors.New("tson: malformed tson")
	// ErrUnsupportedType indicates the source JSON contained a value kind
	// the encoder refuses to store.
	ErrUnsupportedType = errors.New("tson: unsupported value type")
	// ErrInvalidID indicates a document's _id field was present but was
	// neither a string nor a number.
	ErrInvalidID = errors.New("tson: invalid _id")
)

const lengthFieldSize = 4
const floatFieldSize = 8
