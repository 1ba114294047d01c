// Package main provides C-compatible exports for the docxscrub library.
// Build with: go build -buildmode=c-shared -o docxscrub.dll
package main

/*
#include <stdlib.h>
#include <stdint.h>

// Result structure for operations that return data
typedef struct {
    char* data;
    int   data_len;
    char* error;
} ScrubResult;
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/bytedance/sonic"
	"github.com/docxscrub/docxscrub"
)

func main() {}

// ScrubFreeResult frees memory allocated by other Scrub functions.
// Must be called to avoid memory leaks.
//
//export ScrubFreeResult
func ScrubFreeResult(result C.ScrubResult) {
	if result.data != nil {
		C.free(unsafe.Pointer(result.data))
	}
	if result.error != nil {
		C.free(unsafe.Pointer(result.error))
	}
}

// makeResult creates a result with data.
func makeResult(data []byte) C.ScrubResult {
	var result C.ScrubResult
	if len(data) > 0 {
		result.data = (*C.char)(C.CBytes(data))
		result.data_len = C.int(len(data))
	}
	return result
}

// makeError creates a result with an error message.
func makeError(err error) C.ScrubResult {
	var result C.ScrubResult
	result.error = C.CString(err.Error())
	return result
}

// ScrubDocx rewrites a DOCX container held in memory, removing the
// configured characters from its run text.
// Parameters:
//   - data: pointer to the DOCX container bytes
//   - dataLen: length of the data
//   - charsetJSON: charset configuration (JSON object, see library docs)
//
// Returns ScrubResult with the rewritten container bytes or an error.
// Call ScrubFreeResult when done.
//
//export ScrubDocx
func ScrubDocx(data *C.char, dataLen C.int, charsetJSON *C.char) C.ScrubResult {
	set, err := docxscrub.ParseCharset([]byte(C.GoString(charsetJSON)))
	if err != nil {
		return makeError(err)
	}
	in := C.GoBytes(unsafe.Pointer(data), dataLen)
	out, _, err := docxscrub.Scrub(in, set)
	if err != nil {
		return makeError(err)
	}
	return makeResult(out)
}

// ScrubDocxSummary rewrites a DOCX container and returns a JSON summary
// instead of the container bytes: parts rewritten, entries copied, total
// characters removed, per-character counts keyed by U+XXXX, and any
// warnings.
//
//export ScrubDocxSummary
func ScrubDocxSummary(data *C.char, dataLen C.int, charsetJSON *C.char) C.ScrubResult {
	set, err := docxscrub.ParseCharset([]byte(C.GoString(charsetJSON)))
	if err != nil {
		return makeError(err)
	}
	in := C.GoBytes(unsafe.Pointer(data), dataLen)
	_, summary, err := docxscrub.Scrub(in, set)
	if err != nil {
		return makeError(err)
	}

	removed := make(map[string]int, len(summary.Removed))
	for r, n := range summary.Removed {
		removed[fmt.Sprintf("U+%04X", r)] = n
	}
	b, err := sonic.Marshal(map[string]any{
		"partsRewritten": summary.PartsRewritten,
		"entriesCopied":  summary.EntriesCopied,
		"totalRemoved":   summary.TotalRemoved(),
		"removed":        removed,
		"warnings":       summary.Warnings,
	})
	if err != nil {
		return makeError(err)
	}
	return makeResult(b)
}
