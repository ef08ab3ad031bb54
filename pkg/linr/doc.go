// Package linr reads typed values from line-oriented text input.
//
// A read consumes exactly one line, splits it into a fixed number of
// delimiter-separated fields and converts each field with a parser resolved
// per type. Reads never panic: they return a Result holding either every
// requested value or the first Error met, in field order.
//
// Errors come in two classes. InvalidInput and OutOfRange are parse errors;
// the caller may ask again. EndOfFile and Unknown are stream errors; the
// caller should stop reading.
//
//	r, _ := linr.NewBufReader(os.Stdin, 0)
//	res := linr.Read2[int, float64](r, linr.Prompt("count and ratio: "))
//	if !res.OK() {
//		if res.Code().IsStream() {
//			return res.Err()
//		}
//		// ask again
//	}
//	count, ratio := res.Value().Unpack()
//
// Custom types are parsed by registering a ParseFunc. An override replaces
// the built-in conversion for its type on every read path, including tuple,
// array and Scan reads. Overrides may use the split package and Parse to
// decompose structured fields.
package linr
