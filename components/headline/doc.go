// Package headline provides a small net/http component that serves the
// rotating headline as a deterministic frame timeline, so clients without the
// page runtime can replay the typewriter with the server's timings.
//
// The default handler responds to GET and HEAD requests and supports a
// frames parameter bounding the number of frames returned.
package headline
