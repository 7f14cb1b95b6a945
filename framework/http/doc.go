// Package http holds request and response helpers for handlers mounted on
// the framework router.
//
//	func (m *Inspector) list(w http.ResponseWriter, r *http.Request) {
//	    req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
//	    res.Success(m.filter(req.Query("state")))
//	}
package http
