// Command objstorelib builds the engine as a C-callable shared library:
//
//	go build -buildmode=c-shared -o libobjstore.so ./cmd/objstorelib
//
// The exported surface deals only in integers, byte buffers and C strings.
// Every *C.char returned by an Objstore* function is a fresh allocation
// owned by the caller and must be released with ObjstoreFreeString.
package main

// #include <stdlib.h>
// #include <stdint.h>
// #include <pthread.h>
//
// // Identifies the calling thread so error reporting stays per-thread.
// static unsigned long long objstore_caller_id(void) {
//     return (unsigned long long)(uintptr_t)pthread_self();
// }
import "C"
import (
	"unsafe"

	"github.com/aweris/objstore"
	"github.com/aweris/objstore/internal/boundary"
)

var api = boundary.NewAPI(objstore.NewRegistry())

// callerID keys the last-error slot. Exported functions run on the calling
// OS thread, so pthread_self observed here is the C caller's thread.
func callerID() uint64 {
	return uint64(C.objstore_caller_id())
}

func goStrings(arr **C.char, count C.int) []string {
	if arr == nil || count <= 0 {
		return nil
	}
	cstrs := unsafe.Slice(arr, count)
	strs := make([]string, count)
	for i, s := range cstrs {
		strs[i] = C.GoString(s)
	}
	return strs
}

// ObjstoreNewStorage creates a backend of backendType configured from the
// parallel settingsKeys/settingsValues arrays and returns its handle, or a
// negative value on failure.
//
//export ObjstoreNewStorage
func ObjstoreNewStorage(backendType *C.char, settingsKeys, settingsValues **C.char, settingsCount C.int) C.int {
	keys := goStrings(settingsKeys, settingsCount)
	values := goStrings(settingsValues, settingsCount)
	return C.int(api.Open(callerID(), C.GoString(backendType), keys, values))
}

// ObjstorePut stores dataLen bytes of data under key. Returns 0 on success,
// negative on failure.
//
//export ObjstorePut
func ObjstorePut(handle C.int, key *C.char, data *C.char, dataLen C.int) C.int {
	var payload []byte
	if data != nil && dataLen > 0 {
		payload = C.GoBytes(unsafe.Pointer(data), dataLen)
	}
	return C.int(api.Put(callerID(), int(handle), C.GoString(key), payload))
}

// ObjstoreGet copies the object stored under key into buffer and returns
// its length. If the object exceeds bufferSize nothing is copied and a
// negative value is returned.
//
//export ObjstoreGet
func ObjstoreGet(handle C.int, key *C.char, buffer *C.char, bufferSize C.int) C.int {
	var dst []byte
	if buffer != nil && bufferSize > 0 {
		dst = unsafe.Slice((*byte)(unsafe.Pointer(buffer)), bufferSize)
	}
	return C.int(api.Get(callerID(), int(handle), C.GoString(key), dst))
}

// ObjstoreDelete removes the object stored under key. Returns 0 on success,
// negative on failure.
//
//export ObjstoreDelete
func ObjstoreDelete(handle C.int, key *C.char) C.int {
	return C.int(api.Delete(callerID(), int(handle), C.GoString(key)))
}

// ObjstoreClose releases the backend named by handle. Closing an unknown
// handle is a no-op.
//
//export ObjstoreClose
func ObjstoreClose(handle C.int) {
	api.Close(int(handle))
}

// ObjstoreGetLastError returns the calling thread's most recent failure
// message, or NULL if it has none. The caller owns the returned string.
//
//export ObjstoreGetLastError
func ObjstoreGetLastError() *C.char {
	msg, ok := api.LastError(callerID())
	if !ok {
		return nil
	}
	return C.CString(msg)
}

// ObjstoreVersion returns the engine version. The caller owns the returned
// string.
//
//export ObjstoreVersion
func ObjstoreVersion() *C.char {
	return C.CString(api.Version())
}

// ObjstoreFreeString releases a string previously returned by this library.
//
//export ObjstoreFreeString
func ObjstoreFreeString(str *C.char) {
	C.free(unsafe.Pointer(str))
}

func main() {}
