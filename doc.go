// Package objstore is an embeddable object-storage engine.
//
// Backends store immutable byte payloads under caller-chosen string keys.
// The engine ships one backend, the local filesystem backend, and an open
// factory so more can be registered. On top of the library sits a handle
// registry and a C-callable boundary (cmd/objstorelib) that exposes the
// engine to other languages through opaque integer handles.
//
// Basic usage (in-process):
//
//	backend, _ := objstore.New("local", objstore.NewSettings("path", "/var/data/objects"))
//
//	// Store content by key
//	backend.Put(ctx, "reports/2025/q1.json", bytes.NewReader(data))
//
//	// Retrieve content
//	rc, _ := backend.Get(ctx, "reports/2025/q1.json")
//	defer rc.Close()
//
//	// Remove it
//	backend.Delete(ctx, "reports/2025/q1.json")
//
// Handing backends across the C boundary:
//
//	reg := objstore.NewRegistry()
//	h, _ := reg.Register(backend)
//
//	b, release, _ := reg.Lookup(h)
//	defer release()
//	// ... use b; release keeps Unregister from closing it mid-operation
//
//	reg.Unregister(h)
//
// Keys look like slash-separated paths. The local backend maps them to
// files under its root and rejects anything that would resolve outside it.
// Writes are atomic with respect to readers: a concurrent Get observes the
// old payload or the new one, never a mix.
package objstore
