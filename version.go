package objstore

// Version is the engine version.
// Override at build time with:
//
//	go build -ldflags "-X github.com/aweris/objstore.Version=1.0.0"
var Version = "0.1.0"
