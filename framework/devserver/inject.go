package devserver

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

// Script returns the browser snippet that reloads the page when the hub at
// path sends ReloadMessage.
func Script(path string) string {
	return `<script>(function(){` +
		`var s=new WebSocket((location.protocol==="https:"?"wss://":"ws://")+location.host+` + strconv.Quote(path) + `);` +
		`s.onmessage=function(e){if(e.data===` + strconv.Quote(ReloadMessage) + `){location.reload();}};` +
		`})();</script>`
}

// InjectReload adds the live-reload script to successful HTML responses of
// next, just before </body> or at the end of the document.
//
//	router.Static("/", "dist", devserver.InjectReload("/livereload"))
func InjectReload(path string) func(http.Handler) http.Handler {
	snippet := []byte(Script(path))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := &bufferedWriter{header: w.Header(), status: http.StatusOK}
			next.ServeHTTP(buf, r)

			body := buf.body.Bytes()
			if r.Method != http.MethodHead && buf.status == http.StatusOK && isHTML(w.Header().Get("Content-Type")) {
				body = inject(body, snippet)
				w.Header().Set("Content-Length", strconv.Itoa(len(body)))
			}

			w.WriteHeader(buf.status)
			if r.Method != http.MethodHead {
				_, _ = w.Write(body)
			}
		})
	}
}

func isHTML(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "text/html")
}

func inject(body, snippet []byte) []byte {
	i := bytes.LastIndex(bytes.ToLower(body), []byte("</body>"))
	if i < 0 {
		return append(body, snippet...)
	}
	out := make([]byte, 0, len(body)+len(snippet))
	out = append(out, body[:i]...)
	out = append(out, snippet...)
	return append(out, body[i:]...)
}

// bufferedWriter holds the response so it can be rewritten. Headers are
// shared with the real writer.
type bufferedWriter struct {
	header      http.Header
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.status = status
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.WriteHeader(http.StatusOK)
	return b.body.Write(p)
}
