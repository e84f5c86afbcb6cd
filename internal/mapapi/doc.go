// Package mapapi is the client facade for the remote mapping service. The
// service itself is proprietary and opaque; this package only calls its
// REST endpoints and hands the payloads through untouched.
//
// The facade mirrors the service's object graph: a root Namespace with
// wrap, control and layer sub-namespaces. Each sub-namespace exposes its
// operations as exported function-valued fields ("method slots") bound to
// default implementations at construction. Slots are the one sanctioned
// hook point for the patch package — harness scenarios wrap them in place
// to observe, time, or rewrite calls without forking the client.
//
// The namespace appears asynchronously: a Loader fetches service metadata
// in the background and publishes the finished graph on a Handle, the
// in-process analog of a script-injected global. Callers poll readiness
// through await.WaitFor rather than blocking on the loader.
package mapapi
