package http

import "net/http"

// handleAdvice runs the single advice request. The advisor never returns an
// error, only text: fixed fallbacks cover the disabled and failed cases.
// The pending indicator and the stale-response check live client-side.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	text := s.advisor.Advise(r.Context(), sess.Accounts(), sess.Transactions())
	s.renderPartial(w, r, "advice.html", struct{ Text string }{Text: text})
}
