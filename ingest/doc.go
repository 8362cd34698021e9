// Package ingest ties raw ingress bytes to the kernel's two-phase model.
//
// An ingress adapter opens a Scope per received message, wraps the bytes in
// a borrowed View, and runs the synchronous listener phase against it. The
// scope's arena backs every borrowed allocation; ending the scope releases
// them all in one step. Discarding an uninteresting event therefore costs
// nothing: no copy, no parse, no per-allocation free.
//
//	scope := ingest.Begin(ingest.WithPool(pool), ingest.WithSource("ws"))
//	defer scope.End()
//
//	view := scope.View(raw)
//	cmd, ok := tokenizer.Listen(view.Text())
//	if !ok {
//	    return nil // rejected: nothing was allocated
//	}
//	return dispatcher.Dispatch(ctx, promote(cmd, &view))
//
// When a listener accepts, the minimal fields it extracted are promoted —
// copied into independently-owned values — and only the promoted data
// crosses into the asynchronous hook phase. The scope never does.
package ingest
