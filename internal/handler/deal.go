package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

// getDeal returns the active deal deadline and the remaining time. The UI's
// 1-second tick recomputes the display locally; it only refetches on load.
func (h *Handler) getDeal(w http.ResponseWriter, _ *http.Request) {
	deadline := h.deal.Deadline()
	remaining := h.deal.Remaining(h.now())

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("deadline", func(e *jx.Encoder) { e.Str(deadline.Format(time.RFC3339)) })
		e.Field("remaining", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("hours", func(e *jx.Encoder) { e.Int(remaining.Hours) })
				e.Field("minutes", func(e *jx.Encoder) { e.Int(remaining.Minutes) })
				e.Field("seconds", func(e *jx.Encoder) { e.Int(remaining.Seconds) })
			})
		})
	})
	writeJSON(w, http.StatusOK, &e)
}
